package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
	"github.com/tu-usuario/admisiones-pro/pkg/logger"
)

// NotificationUseCase despacha y consulta notificaciones. Implementa
// ports.Notifier para los demás casos de uso: persiste la notificación y la
// publica al stream en tiempo real. Ambas patas son best-effort.
type NotificationUseCase struct {
	repo      repository.NotificationRepository
	publisher ports.EventPublisher
	log       *logger.Logger
}

var _ ports.Notifier = (*NotificationUseCase)(nil)

// NewNotificationUseCase construye el caso de uso. publisher puede ser nil
// cuando el stream está deshabilitado por configuración.
func NewNotificationUseCase(repo repository.NotificationRepository, publisher ports.EventPublisher, log *logger.Logger) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, publisher: publisher, log: log}
}

// Notify persiste y publica. Un fallo de persistencia se registra y se sigue
// adelante: la mutación que originó el evento ya está confirmada.
func (uc *NotificationUseCase) Notify(ctx context.Context, n ports.Notification) {
	rec := &entity.Notification{
		ID:          uuid.New().String(),
		RecipientID: n.RecipientID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Data:        n.Data,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		uc.log.Warn().Err(err).Str("type", n.Type).Str("recipient", n.RecipientID).
			Msg("notificación no persistida")
	}
	if uc.publisher != nil {
		uc.publisher.Publish(n)
	}
}

// List devuelve las notificaciones del caller, más reciente primero.
func (uc *NotificationUseCase) List(ctx context.Context, recipientID string, limit, offset int) (*dto.NotificationListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.repo.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationListResponse{Items: make([]dto.NotificationResponse, 0, len(items))}
	for _, n := range items {
		out.Items = append(out.Items, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca como leída una notificación propia del caller. El filtro
// por destinatario en el repositorio evita marcar notificaciones ajenas.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, recipientID string) error {
	return uc.repo.MarkRead(ctx, id, recipientID)
}
