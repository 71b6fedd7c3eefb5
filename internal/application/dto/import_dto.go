package dto

// ImportParseResult salida de /deals/import/parse.
type ImportParseResult struct {
	Headers   []string            `json:"headers"`
	Preview   []map[string]string `json:"preview"`
	Data      []map[string]string `json:"data"`
	TotalRows int                 `json:"totalRows"`
}

// ImportCreateRequest Mapping es {columna de la hoja: campo}; "" o "skip" ignora la columna.
type ImportCreateRequest struct {
	Data               []map[string]string `json:"data"`
	Mapping            map[string]string   `json:"mapping"`
	AutoCreateSongs    bool                `json:"autoCreateSongs"`
	AutoCreateContacts bool                `json:"autoCreateContacts"`
}

// ImportRowError fila fallida; Row es 1-based sobre las filas de datos.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult created + failed = totalRows.
type ImportResult struct {
	BatchID   string           `json:"batchId"`
	TotalRows int              `json:"totalRows"`
	Created   int              `json:"created"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors"`
}
