package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre
// PostgreSQL. Data se guarda como JSONB.
type NotificationRepo struct {
	db DB
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones.
func NewNotificationRepository(db DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Create persiste una notificación para su destinatario.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	q := `
		INSERT INTO notifications (id, recipient_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, q,
		n.ID, n.RecipientID, n.Type, n.Title, n.Message, n.Data, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByRecipient notificaciones de un destinatario, más recientes primero.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*entity.Notification, error) {
	q := `
		SELECT id, recipient_id, type, title, message, data, is_read, created_at
		FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, q, recipientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &n.Data, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca como leída una notificación del propio destinatario.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
