package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
)

const defaultSheet = "Sheet1"

// WriteXLSX escribe una hoja por tabla con la fila de cabecera en negrita y congelada.
func (c *Codec) WriteXLSX(w io.Writer, tables []ports.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2C3E50"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	if len(tables) == 0 {
		tables = []ports.Table{{Name: defaultSheet}}
	}
	for i, t := range tables {
		name := sheetName(t.Name, i)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("xlsx rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx new sheet %q: %w", name, err)
		}
		if err := writeTable(f, name, t, header); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, t ports.Table, headerStyle int) error {
	if len(t.Headers) > 0 {
		hdr := make([]interface{}, len(t.Headers))
		for i, h := range t.Headers {
			hdr[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
			return fmt.Errorf("xlsx header %q: %w", sheet, err)
		}
		last, _ := excelize.ColumnNumberToName(len(t.Headers))
		if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
			return fmt.Errorf("xlsx header style: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return fmt.Errorf("xlsx col width: %w", err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
		}); err != nil {
			return fmt.Errorf("xlsx panes: %w", err)
		}
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}
	return nil
}

// sheetName nombre válido para Excel: sin []:*?/\ y máximo 31 caracteres.
func sheetName(name string, i int) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = fmt.Sprintf("Sheet%d", i+1)
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
