package dto

// ImportPreviewResponse respuesta de POST /import/preview. Rows se puede enviar
// tal cual a POST /records/bulk.
type ImportPreviewResponse struct {
	Rows        []MovementRequest `json:"rows"`
	Count       int               `json:"count"`
	PreviewRows int               `json:"previewRows"`
	Columns     map[string]string `json:"columns"`
	Ignored     []string          `json:"ignored"`
}
