package dto

// PageRequest paginación para listados (page arranca en 1).
type PageRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse cuerpo de error HTTP: código estable verificable por máquina
// más mensaje legible. Nunca expone detalle interno de la DB.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
