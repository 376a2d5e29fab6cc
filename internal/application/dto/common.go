package dto

// ErrorResponse cuerpo de error HTTP: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// OKResponse respuesta de PUT y DELETE.
type OKResponse struct {
	OK bool `json:"ok"`
}

// BulkResponse respuesta de la carga masiva y de la importación.
type BulkResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}
