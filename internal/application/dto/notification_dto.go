package dto

import "time"

// NotificationResponse salida de una notificación persistida.
type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// NotificationListResponse notificaciones del caller.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
}

// SearchResponse resultado combinado de la búsqueda global (ya acotado por
// el alcance del caller).
type SearchResponse struct {
	Students     []StudentResponse     `json:"students"`
	Applications []ApplicationResponse `json:"applications"`
}

// DocumentUploadResponse URL durable devuelta por object storage.
type DocumentUploadResponse struct {
	URL string `json:"url"`
}
