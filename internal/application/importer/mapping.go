package importer

import (
	"sort"
	"strings"

	"github.com/jhoicas/syncdesk-api/internal/domain"
)

// Campos destino admitidos en el mapeo de columnas.
const (
	FieldProjectName    = "projectName"
	FieldProjectType    = "projectType"
	FieldSongTitle      = "songTitle"
	FieldSongArtist     = "songArtist"
	FieldSongComposer   = "songComposer"
	FieldSongPublisher  = "songPublisher"
	FieldContactName    = "contactName"
	FieldContactEmail   = "contactEmail"
	FieldContactPhone   = "contactPhone"
	FieldContactCompany = "contactCompany"
	FieldStatus         = "status"
	FieldTerritory      = "territory"
	FieldExclusivity    = "exclusivity"
	FieldDescription    = "description"
	FieldTerm           = "term"
	FieldUsage          = "usage"
	FieldTotalFee       = "totalFee"
	FieldPublishingFee  = "publishingFee"
	FieldRecordingFee   = "recordingFee"
	FieldNotes          = "notes"
	FieldAirDate        = "airDate"
)

// Fields enumeración cerrada de campos.
var Fields = []string{
	FieldProjectName, FieldProjectType,
	FieldSongTitle, FieldSongArtist, FieldSongComposer, FieldSongPublisher,
	FieldContactName, FieldContactEmail, FieldContactPhone, FieldContactCompany,
	FieldStatus, FieldTerritory, FieldExclusivity, FieldDescription, FieldTerm, FieldUsage,
	FieldTotalFee, FieldPublishingFee, FieldRecordingFee, FieldNotes, FieldAirDate,
}

var fieldByKey = func() map[string]string {
	m := make(map[string]string, len(Fields))
	for _, f := range Fields {
		m[strings.ToLower(f)] = f
	}
	return m
}()

// Mapping campo -> columna de la hoja, ya validado.
type Mapping map[string]string

// ParseMapping valida el mapeo columna -> campo antes de procesar filas.
// Rechaza campos desconocidos, campos asignados a más de una columna y la ausencia de projectName.
func ParseMapping(raw map[string]string) (Mapping, error) {
	columns := make([]string, 0, len(raw))
	for col := range raw {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	m := make(Mapping)
	var fields []domain.FieldError
	for _, col := range columns {
		target := strings.TrimSpace(raw[col])
		if target == "" || strings.EqualFold(target, "skip") {
			continue
		}
		field, ok := fieldByKey[strings.ToLower(target)]
		if !ok {
			fields = append(fields, domain.FieldError{Field: "mapping." + col, Message: "unknown field " + `"` + target + `"`})
			continue
		}
		if prev, dup := m[field]; dup {
			fields = append(fields, domain.FieldError{
				Field:   "mapping." + col,
				Message: "field " + field + " is already mapped to column " + `"` + prev + `"`,
			})
			continue
		}
		m[field] = col
	}
	if _, ok := m[FieldProjectName]; !ok {
		fields = append(fields, domain.FieldError{Field: "mapping", Message: "a column must be mapped to projectName"})
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError("Invalid column mapping", fields...)
	}
	return m, nil
}

// Apply extrae los valores de una fila según el mapeo (recortados).
func (m Mapping) Apply(row map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for field, col := range m {
		out[field] = strings.TrimSpace(row[col])
	}
	return out
}
