package spreadsheet

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
)

func TestParseCSV_HeadersAndRows(t *testing.T) {
	in := "\xEF\xBB\xBF\n Project , Song,,Fee\nCar Ad,Night Drive,x,\"1,200\"\n,,,\nTrailer,Blue\n"
	sheet, err := NewCodec().Parse("deals.csv", strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Project", "Song", "Column 3", "Fee"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "1,200", sheet.Rows[0]["Fee"])
	assert.Equal(t, "Blue", sheet.Rows[1]["Song"])
	assert.Equal(t, "", sheet.Rows[1]["Fee"])
}

func TestParseCSV_Windows1252Fallback(t *testing.T) {
	// 0xE9 = é en Windows-1252; no es UTF-8 válido.
	in := []byte("Project;Contact\nCaf\xe9 Spot;Ren\xe9e\n")
	sheet, err := NewCodec().Parse("deals.CSV", bytes.NewReader(in))
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "Café Spot", sheet.Rows[0]["Project"])
	assert.Equal(t, "Renée", sheet.Rows[0]["Contact"])
}

func TestParse_DuplicateHeaders(t *testing.T) {
	sheet, err := NewCodec().Parse("d.csv", strings.NewReader("Fee,Fee\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Fee", "Fee (2)"}, sheet.Headers)
	assert.Equal(t, "2", sheet.Rows[0]["Fee (2)"])
}

func TestParse_Rejections(t *testing.T) {
	tests := []struct {
		name, filename, body string
	}{
		{"legacy xls", "old.xls", "whatever"},
		{"unknown extension", "notes.txt", "a,b"},
		{"empty csv", "empty.csv", "\n , \n"},
		{"broken xlsx", "broken.xlsx", "not a zip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec().Parse(tt.filename, strings.NewReader(tt.body))
			var ve *domain.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := NewCodec().WriteXLSX(&buf, []ports.Table{
		{Name: "Deals", Headers: []string{"Project", "Fee"}, Rows: [][]interface{}{{"Car Ad", 4500.5}, {"Trailer", ""}}},
		{Name: "Payments/2026", Headers: []string{"Amount"}, Rows: [][]interface{}{{750}}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Deals", "Payments-2026"}, f.GetSheetList())

	v, err := f.GetCellValue("Deals", "B2")
	require.NoError(t, err)
	assert.Equal(t, "4500.5", v)

	// La hoja de deals se vuelve a leer igual que una importación.
	var again bytes.Buffer
	require.NoError(t, f.Write(&again))
	sheet, err := NewCodec().Parse("export.xlsx", &again)
	require.NoError(t, err)
	assert.Equal(t, []string{"Project", "Fee"}, sheet.Headers)
	assert.Equal(t, "Car Ad", sheet.Rows[0]["Project"])
	assert.Len(t, sheet.Rows, 2)
}

func TestParseXLSX_RawCellValues(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sh := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sh, "A1", &[]interface{}{"Project", "Air", "Fee"}))
	require.NoError(t, f.SetCellValue(sh, "A2", "Car Ad"))
	require.NoError(t, f.SetCellValue(sh, "B2", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sh, "C2", 1500.5))

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sh, "B2", "B2", dateStyle))
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sh, "C2", "C2", moneyStyle))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	sheet, err := NewCodec().Parse("deals.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "45306", sheet.Rows[0]["Air"])
	assert.Equal(t, "1500.5", sheet.Rows[0]["Fee"])
	assert.Equal(t, "Car Ad", sheet.Rows[0]["Project"])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet3", sheetName("  ", 2))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40), 0)), 31)
}
