// Package importer convierte una hoja de cálculo en deals, resolviendo o creando las canciones
// y contactos referenciados. Cada fila se procesa en su propia transacción: un fallo en la fila N
// no afecta a las demás y los errores se acumulan por fila.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/pkg/logger"
)

// Placeholders compartidos para filas sin identidad de canción o contacto.
const (
	PlaceholderSongTitle   = "Untitled (imported)"
	PlaceholderContactName = "Unassigned (imported)"
)

// Service orquesta parse y create.
type Service struct {
	codec       ports.SpreadsheetCodec
	tx          TxRunner
	log         *logger.Logger
	previewRows int
	now         func() time.Time
}

// NewService construye el servicio. previewRows <= 0 usa 5.
func NewService(codec ports.SpreadsheetCodec, tx TxRunner, log *logger.Logger, previewRows int) *Service {
	if previewRows <= 0 {
		previewRows = 5
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{codec: codec, tx: tx, log: log.Named("importer"), previewRows: previewRows, now: time.Now}
}

// Parse lee el archivo y devuelve cabeceras, vista previa y todas las filas.
func (s *Service) Parse(filename string, r io.Reader) (*dto.ImportParseResult, error) {
	sheet, err := s.codec.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	n := s.previewRows
	if n > len(sheet.Rows) {
		n = len(sheet.Rows)
	}
	data := sheet.Rows
	if data == nil {
		data = []map[string]string{}
	}
	return &dto.ImportParseResult{
		Headers:   sheet.Headers,
		Preview:   data[:n],
		Data:      data,
		TotalRows: len(data),
	}, nil
}

// rowError error presentable al usuario; cualquier otro error se registra y se reporta genérico.
type rowError struct{ msg string }

func (e *rowError) Error() string { return e.msg }

func rowErrorf(format string, args ...interface{}) error {
	return &rowError{msg: fmt.Sprintf(format, args...)}
}

// Create valida el mapeo y crea un deal por fila. No hay clave de deduplicación:
// importar dos veces el mismo archivo duplica los registros.
func (s *Service) Create(ctx context.Context, userID string, req dto.ImportCreateRequest) (*dto.ImportResult, error) {
	mapping, err := ParseMapping(req.Mapping)
	if err != nil {
		return nil, err
	}
	res := &dto.ImportResult{
		BatchID:   ulid.Make().String(),
		TotalRows: len(req.Data),
		Errors:    []dto.ImportRowError{},
	}
	log := s.log.Zerolog().With().Str("batch_id", res.BatchID).Str("user_id", userID).Logger()

	for i, raw := range req.Data {
		row := i + 1
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := s.createRow(ctx, userID, mapping.Apply(raw), req)
		if err == nil {
			res.Created++
			continue
		}
		res.Failed++
		msg := err.Error()
		var re *rowError
		if !errors.As(err, &re) {
			log.Error().Err(err).Int("row", row).Msg("import: fallo interno en fila")
			msg = "could not create deal"
		}
		res.Errors = append(res.Errors, dto.ImportRowError{Row: row, Error: msg})
	}

	log.Info().Int("total", res.TotalRows).Int("created", res.Created).Int("failed", res.Failed).Msg("import terminado")
	return res, nil
}

// parsedRow valores ya convertidos antes de abrir la transacción.
type parsedRow struct {
	values      map[string]string
	status      entity.DealStatus
	exclusivity bool
	totalFee    decimal.NullDecimal
	pubFee      decimal.NullDecimal
	recFee      decimal.NullDecimal
	airDate     *time.Time
}

func parseRow(v map[string]string) (*parsedRow, error) {
	if v[FieldProjectName] == "" {
		return nil, rowErrorf("missing required field: projectName")
	}
	p := &parsedRow{values: v, status: entity.StatusNewRequest}
	if raw := v[FieldStatus]; raw != "" {
		st, ok := entity.NormalizeDealStatus(raw)
		if !ok {
			return nil, rowErrorf("unknown status %q", raw)
		}
		p.status = st
	}
	var err error
	if p.exclusivity, err = parseExclusivity(v[FieldExclusivity]); err != nil {
		return nil, rowErrorf("invalid exclusivity %q", v[FieldExclusivity])
	}
	for _, f := range []struct {
		name string
		dst  *decimal.NullDecimal
	}{
		{FieldTotalFee, &p.totalFee},
		{FieldPublishingFee, &p.pubFee},
		{FieldRecordingFee, &p.recFee},
	} {
		if *f.dst, err = parseMoney(v[f.name]); err != nil {
			return nil, rowErrorf("invalid %s %q", f.name, v[f.name])
		}
	}
	if p.airDate, err = parseDate(v[FieldAirDate]); err != nil {
		return nil, rowErrorf("invalid airDate %q", v[FieldAirDate])
	}
	return p, nil
}

func (s *Service) createRow(ctx context.Context, userID string, v map[string]string, req dto.ImportCreateRequest) error {
	p, err := parseRow(v)
	if err != nil {
		return err
	}
	return s.tx.RunImportRow(ctx, func(r Repos) error {
		songID, err := s.resolveSong(ctx, r, userID, v, req.AutoCreateSongs)
		if err != nil {
			return err
		}
		contactID, err := s.resolveContact(ctx, r, userID, v, req.AutoCreateContacts)
		if err != nil {
			return err
		}
		t := s.now()
		d := &entity.Deal{
			ID:            uuid.New().String(),
			UserID:        userID,
			ProjectName:   v[FieldProjectName],
			ProjectType:   v[FieldProjectType],
			SongID:        songID,
			ContactID:     contactID,
			Territory:     v[FieldTerritory],
			Exclusivity:   p.exclusivity,
			Description:   v[FieldDescription],
			Term:          v[FieldTerm],
			Usage:         v[FieldUsage],
			TotalFee:      p.totalFee,
			PublishingFee: p.pubFee,
			RecordingFee:  p.recFee,
			Notes:         v[FieldNotes],
			AirDate:       p.airDate,
			CreatedAt:     t,
			UpdatedAt:     t,
		}
		d.SetStatus(p.status, t)
		if err := r.Deals.Create(ctx, d); err != nil {
			return fmt.Errorf("insert deal: %w", err)
		}
		return nil
	})
}

func (s *Service) resolveSong(ctx context.Context, r Repos, userID string, v map[string]string, autoCreate bool) (string, error) {
	title, artist := v[FieldSongTitle], v[FieldSongArtist]
	placeholder := title == ""
	if placeholder {
		title, artist = PlaceholderSongTitle, ""
	}
	song, err := r.Songs.FindByTitle(ctx, userID, title, artist)
	if err != nil {
		return "", err
	}
	if song != nil {
		return song.ID, nil
	}
	if !autoCreate && !placeholder {
		return "", rowErrorf("song %q not found", title)
	}
	t := s.now()
	song = &entity.Song{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Artist:    artist,
		Composer:  v[FieldSongComposer],
		Publisher: v[FieldSongPublisher],
		Tags:      []string{},
		CreatedAt: t,
		UpdatedAt: t,
	}
	if placeholder {
		song.Composer, song.Publisher = "", ""
	}
	if err := r.Songs.Create(ctx, song); err != nil {
		return "", fmt.Errorf("insert song: %w", err)
	}
	return song.ID, nil
}

func (s *Service) resolveContact(ctx context.Context, r Repos, userID string, v map[string]string, autoCreate bool) (string, error) {
	name := v[FieldContactName]
	email := strings.ToLower(v[FieldContactEmail])

	var (
		c   *entity.Contact
		err error
	)
	switch {
	case email != "":
		c, err = r.Contacts.FindByEmail(ctx, userID, email)
		if err == nil && c == nil && name != "" {
			c, err = r.Contacts.FindByName(ctx, userID, name)
		}
	case name != "":
		c, err = r.Contacts.FindByName(ctx, userID, name)
	default:
		c, err = r.Contacts.FindByName(ctx, userID, PlaceholderContactName)
		if err == nil && c == nil {
			return s.createContact(ctx, r, userID, PlaceholderContactName, "", "", "")
		}
	}
	if err != nil {
		return "", err
	}
	if c != nil {
		return c.ID, nil
	}
	if !autoCreate {
		label := name
		if label == "" {
			label = email
		}
		return "", rowErrorf("contact %q not found", label)
	}
	if name == "" {
		name = email
		if i := strings.Index(email, "@"); i > 0 {
			name = email[:i]
		}
	}
	return s.createContact(ctx, r, userID, name, email, v[FieldContactPhone], v[FieldContactCompany])
}

func (s *Service) createContact(ctx context.Context, r Repos, userID, name, email, phone, company string) (string, error) {
	t := s.now()
	c := &entity.Contact{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Company:   company,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := r.Contacts.Create(ctx, c); err != nil {
		return "", fmt.Errorf("insert contact: %w", err)
	}
	return c.ID, nil
}
