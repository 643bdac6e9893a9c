package repository

import (
	"context"

	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}
