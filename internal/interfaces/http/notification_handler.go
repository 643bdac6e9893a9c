package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
)

// NotificationHandler notificaciones del usuario autenticado.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler de notificaciones.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones del caller (más recientes primero)
// @Tags         notifications
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "filas a saltar"
// @Success      200  {object}  dto.NotificationListResponse
// @Security     BearerAuth
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar una notificación propia como leída
// @Tags         notifications
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
