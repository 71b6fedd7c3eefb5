package ports

import "io"

// Sheet contenido tabular leído de un CSV o XLSX. Cada fila usa las cabeceras como claves.
type Sheet struct {
	Headers []string
	Rows    []map[string]string
}

// Table hoja a escribir en una exportación.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// SpreadsheetCodec lee y escribe hojas de cálculo.
type SpreadsheetCodec interface {
	// Parse detecta el formato por la extensión de filename (.csv o .xlsx).
	Parse(filename string, r io.Reader) (*Sheet, error)
	// WriteXLSX escribe un libro con una hoja por tabla.
	WriteXLSX(w io.Writer, tables []Table) error
}
