package entity

import "time"

// Tipos de notificación emitidos por el ciclo de vida de aplicaciones.
const (
	NotifyStageUpdated   = "stage_updated"
	NotifyStatusUpdated  = "status_updated"
	NotifyFinalDecision  = "final_decision"
	NotifyAppWithdrawn   = "application_withdrawn"
	NotifyAppCreated     = "application_created"
)

// Notification notificación persistida para un destinatario (user o student).
// La entrega en tiempo real es best-effort y vive en infrastructure/events.
type Notification struct {
	ID          string
	RecipientID string
	Type        string
	Title       string
	Message     string
	Data        map[string]any
	IsRead      bool
	CreatedAt   time.Time
}
