// Package spreadsheet lee CSV/XLSX para la importación de deals y escribe los libros XLSX de exportación.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
)

var _ ports.SpreadsheetCodec = (*Codec)(nil)

// MaxFileBytes tamaño máximo que se acepta leer.
const MaxFileBytes = 20 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Codec implementación de ports.SpreadsheetCodec con excelize y encoding/csv.
type Codec struct{}

func NewCodec() *Codec { return &Codec{} }

// Parse detecta el formato por extensión. La primera fila no vacía son las cabeceras.
func (c *Codec) Parse(filename string, r io.Reader) (*ports.Sheet, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return parseCSV(r)
	case ".xlsx":
		return parseXLSX(r)
	case ".xls":
		return nil, domain.NewValidationError("Legacy .xls files are not supported, save the file as .xlsx or .csv",
			domain.FieldError{Field: "file", Message: "unsupported format .xls"})
	default:
		return nil, domain.NewValidationError("Unsupported file type, upload a .csv or .xlsx file",
			domain.FieldError{Field: "file", Message: fmt.Sprintf("unsupported format %q", ext)})
	}
}

func parseCSV(r io.Reader) (*ports.Sheet, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(raw) > MaxFileBytes {
		return nil, domain.NewValidationError("File is too large")
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		// Exportaciones de Excel en Windows suelen venir en Windows-1252.
		if raw, err = charmap.Windows1252.NewDecoder().Bytes(raw); err != nil {
			return nil, domain.NewValidationError("File encoding could not be read")
		}
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = detectDelimiter(raw)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, domain.NewValidationError(fmt.Sprintf("Malformed CSV at line %d", pe.Line))
		}
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return toSheet(records)
}

// detectDelimiter elige ';' cuando la primera línea tiene más ';' que ','.
func detectDelimiter(raw []byte) rune {
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	if bytes.Count(first, []byte{';'}) > bytes.Count(first, []byte{','}) {
		return ';'
	}
	return ','
}

func parseXLSX(r io.Reader) (*ports.Sheet, error) {
	f, err := excelize.OpenReader(io.LimitReader(r, MaxFileBytes))
	if err != nil {
		return nil, domain.NewValidationError("The spreadsheet could not be read, check that it is a valid .xlsx file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewValidationError("The spreadsheet has no sheets")
	}
	// Valores crudos: las fechas llegan como número de serie y los importes sin formato de celda.
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return toSheet(records)
}

// toSheet convierte registros crudos en filas por cabecera. Omite filas en blanco.
func toSheet(records [][]string) (*ports.Sheet, error) {
	start := -1
	for i, rec := range records {
		if !blank(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, domain.NewValidationError("The file is empty")
	}

	headers := headerNames(records[start])
	sheet := &ports.Sheet{Headers: headers, Rows: []map[string]string{}}
	for _, rec := range records[start+1:] {
		if blank(rec) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// headerNames recorta cabeceras; vacías pasan a "Column N" y repetidas reciben sufijo " (2)", " (3)", ...
func headerNames(rec []string) []string {
	out := make([]string, len(rec))
	seen := make(map[string]int, len(rec))
	for i, h := range rec {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s (%d)", h, n)
		}
		out[i] = h
	}
	return out
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
