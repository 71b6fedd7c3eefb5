package importer_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/importer"
	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/syncdesk-api/pkg/logger"
)

const userID = "user-1"

func newService(db *memDB) *importer.Service {
	return importer.NewService(stubCodec{}, db, logger.Nop(), 5)
}

func tenRows() []map[string]string {
	rows := make([]map[string]string, 0, 10)
	for i := 1; i <= 10; i++ {
		name := fmt.Sprintf("Project %d", i)
		if i == 7 {
			name = ""
		}
		rows = append(rows, map[string]string{
			"Name": name,
			"Song": fmt.Sprintf("Song %d", i),
			"Fee":  "1000",
		})
	}
	return rows
}

func TestCreate_TenRowsWithMissingProjectName(t *testing.T) {
	db := &memDB{}
	res, err := newService(db).Create(context.Background(), userID, dto.ImportCreateRequest{
		Data:               tenRows(),
		Mapping:            map[string]string{"Name": "projectName", "Song": "songTitle"},
		AutoCreateSongs:    true,
		AutoCreateContacts: false,
	})
	require.NoError(t, err)

	assert.Equal(t, 9, res.Created)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 10, res.TotalRows)
	assert.Equal(t, []dto.ImportRowError{{Row: 7, Error: "missing required field: projectName"}}, res.Errors)
	assert.NotEmpty(t, res.BatchID)

	assert.Len(t, db.deals, 9)
	assert.Len(t, db.songs, 9)
	require.Len(t, db.contacts, 1, "las filas sin contacto comparten el placeholder")
	assert.Equal(t, importer.PlaceholderContactName, db.contacts[0].Name)
	for _, d := range db.deals {
		assert.Equal(t, entity.StatusNewRequest, d.Status)
		assert.Equal(t, db.contacts[0].ID, d.ContactID)
	}
}

func TestCreate_MappingRejectedBeforeRows(t *testing.T) {
	tests := []struct {
		name    string
		mapping map[string]string
	}{
		{"sin projectName", map[string]string{"Song": "songTitle"}},
		{"campo desconocido", map[string]string{"Name": "projectName", "X": "budget"}},
		{"campo duplicado", map[string]string{"Name": "projectName", "Title": "projectName"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &memDB{}
			_, err := newService(db).Create(context.Background(), userID, dto.ImportCreateRequest{
				Data:    tenRows(),
				Mapping: tt.mapping,
			})
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Zero(t, db.txCount)
			assert.Empty(t, db.deals)
		})
	}
}

func TestCreate_SkipAndCaseInsensitiveMapping(t *testing.T) {
	db := &memDB{}
	res, err := newService(db).Create(context.Background(), userID, dto.ImportCreateRequest{
		Data:    []map[string]string{{"Name": "Ad", "Junk": "x"}},
		Mapping: map[string]string{"Name": "ProjectName", "Junk": "skip", "Other": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, db.songs, 1)
	assert.Equal(t, importer.PlaceholderSongTitle, db.songs[0].Title)
}

func TestCreate_AutoCreateDisabled(t *testing.T) {
	db := &memDB{
		songs:    []*entity.Song{{ID: "s-1", UserID: userID, Title: "Known Song"}},
		contacts: []*entity.Contact{{ID: "c-1", UserID: userID, Name: "Jane Sup", Email: "jane@tv.co"}},
	}
	data := []map[string]string{
		{"Project": "A", "Song": "known song", "Email": "JANE@tv.co"},
		{"Project": "B", "Song": "Unknown Song", "Email": "jane@tv.co"},
		{"Project": "C", "Song": "Known Song", "Email": "nobody@tv.co"},
	}
	res, err := newService(db).Create(context.Background(), userID, dto.ImportCreateRequest{
		Data:    data,
		Mapping: map[string]string{"Project": "projectName", "Song": "songTitle", "Email": "contactEmail"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, res.TotalRows, res.Created+res.Failed)
	assert.Equal(t, []dto.ImportRowError{
		{Row: 2, Error: `song "Unknown Song" not found`},
		{Row: 3, Error: `contact "nobody@tv.co" not found`},
	}, res.Errors)
	require.Len(t, db.deals, 1)
	assert.Equal(t, "s-1", db.deals[0].SongID)
	assert.Equal(t, "c-1", db.deals[0].ContactID)
	assert.Len(t, db.songs, 1)
}

func TestCreate_FailedRowRollsBack(t *testing.T) {
	db := &memDB{}
	res, err := newService(db).Create(context.Background(), userID, dto.ImportCreateRequest{
		Data:            []map[string]string{{"P": "A", "S": "Fresh Song", "C": "Ghost"}},
		Mapping:         map[string]string{"P": "projectName", "S": "songTitle", "C": "contactName"},
		AutoCreateSongs: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Empty(t, db.songs, "la canción creada en la fila fallida no se confirma")
}

func TestCreate_ParsesRowValues(t *testing.T) {
	db := &memDB{}
	data := []map[string]string{{
		"Project": "Car Ad", "Status": "Quoted", "Fee": "$1,250.50", "Excl": "Exclusive",
		"Air": "45292", "Contact": "Sam", "Email": "sam@agency.co", "Company": "Agency",
	}}
	res, err := newService(db).Create(context.Background(), userID, dto.ImportCreateRequest{
		Data: data,
		Mapping: map[string]string{
			"Project": "projectName", "Status": "status", "Fee": "totalFee", "Excl": "exclusivity",
			"Air": "airDate", "Contact": "contactName", "Email": "contactEmail", "Company": "contactCompany",
		},
		AutoCreateContacts: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Created, res.Errors)

	d := db.deals[0]
	assert.Equal(t, entity.StatusQuoted, d.Status)
	assert.NotNil(t, d.QuotedDate)
	assert.True(t, d.Exclusivity)
	assert.Equal(t, "1250.5", d.TotalFee.Decimal.String())
	require.NotNil(t, d.AirDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *d.AirDate)

	require.Len(t, db.contacts, 1)
	assert.Equal(t, "Sam", db.contacts[0].Name)
	assert.Equal(t, "sam@agency.co", db.contacts[0].Email)
	assert.Equal(t, "Agency", db.contacts[0].Company)
}

func TestCreate_RowValueErrors(t *testing.T) {
	data := []map[string]string{
		{"P": "A", "St": "maybe"},
		{"P": "B", "Fee": "lots"},
		{"P": "C", "Air": "someday"},
		{"P": "D", "Ex": "perhaps"},
	}
	res, err := newService(&memDB{}).Create(context.Background(), userID, dto.ImportCreateRequest{
		Data:    data,
		Mapping: map[string]string{"P": "projectName", "St": "status", "Fee": "totalFee", "Air": "airDate", "Ex": "exclusivity"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Failed)
	msgs := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		msgs = append(msgs, e.Error)
	}
	assert.Equal(t, []string{
		`unknown status "maybe"`,
		`invalid totalFee "lots"`,
		`invalid airDate "someday"`,
		`invalid exclusivity "perhaps"`,
	}, msgs)
}

func TestParse_PreviewIsBounded(t *testing.T) {
	rows := make([]map[string]string, 8)
	for i := range rows {
		rows[i] = map[string]string{"Name": strings.Repeat("x", i+1)}
	}
	svc := importer.NewService(stubCodec{sheet: &ports.Sheet{Headers: []string{"Name"}, Rows: rows}}, &memDB{}, nil, 3)

	res, err := svc.Parse("deals.csv", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, res.Headers)
	assert.Len(t, res.Preview, 3)
	assert.Len(t, res.Data, 8)
	assert.Equal(t, 8, res.TotalRows)
}

func TestParseAndCreate_XLSXDateAndFeeCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sh := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sh, "A1", &[]interface{}{"Project", "Air", "Fee"}))
	require.NoError(t, f.SetSheetRow(sh, "A2", &[]interface{}{"Car Ad", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 2500}))
	require.NoError(t, f.SetSheetRow(sh, "A3", &[]interface{}{"Trailer", time.Date(2024, 2, 1, 18, 30, 0, 0, time.UTC), "2.500,00 €"}))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sh, "B2", "B3", style))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	db := &memDB{}
	svc := importer.NewService(spreadsheet.NewCodec(), db, logger.Nop(), 5)
	parsed, err := svc.Parse("deals.xlsx", &buf)
	require.NoError(t, err)

	res, err := svc.Create(context.Background(), userID, dto.ImportCreateRequest{
		Data:    parsed.Data,
		Mapping: map[string]string{"Project": "projectName", "Air": "airDate", "Fee": "totalFee"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Created, res.Errors)

	require.NotNil(t, db.deals[0].AirDate)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *db.deals[0].AirDate)
	assert.Equal(t, "2500", db.deals[0].TotalFee.Decimal.String())
	require.NotNil(t, db.deals[1].AirDate)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *db.deals[1].AirDate)
	assert.Equal(t, "2500", db.deals[1].TotalFee.Decimal.String())
}
