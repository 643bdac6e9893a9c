// Package ports declara los contratos hacia colaboradores externos del core:
// notificaciones, correo transaccional y object storage. Las implementaciones
// viven en infrastructure y se inyectan por constructor (nunca singletons).
package ports

import (
	"context"
	"io"
)

// Notification payload que el ciclo de vida entrega al colaborador de
// notificaciones. La entrega es best-effort: un fallo jamás revierte la
// mutación que la originó.
type Notification struct {
	RecipientID string         `json:"recipient_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
}

// Notifier capacidad de despachar una notificación (persistencia + push).
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// EventPublisher publica el evento en el stream en tiempo real (Kafka).
// Encolar nunca bloquea al caller; la cola llena descarta con un warn.
type EventPublisher interface {
	Publish(n Notification)
}

// Mailer envía correo transaccional (best-effort, como las notificaciones).
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// FileStorage sube un archivo a object storage y devuelve la URL durable.
// El core solo persiste la URL, nunca los bytes.
type FileStorage interface {
	Upload(ctx context.Context, objectName, contentType string, size int64, r io.Reader) (string, error)
}
