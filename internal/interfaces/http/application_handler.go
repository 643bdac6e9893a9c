package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
)

// ApplicationHandler maneja el ciclo de vida de aplicaciones.
type ApplicationHandler struct {
	uc *usecase.ApplicationUseCase
}

// NewApplicationHandler construye el handler de aplicaciones.
func NewApplicationHandler(uc *usecase.ApplicationUseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear aplicación
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateApplicationRequest  true  "estudiante, programas y prioridades"
// @Success      201   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.StudentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "student_id es requerido"})
	}
	out, err := h.uc.Create(c.Context(), caller(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar aplicaciones visibles para el caller
// @Tags         applications
// @Produce      json
// @Param        search      query  string  false  "texto sobre el código compartible"
// @Param        student_id  query  string  false  "filtrar por estudiante"
// @Param        status      query  string  false  "filtrar por status"
// @Param        stage       query  string  false  "filtrar por etapa actual"
// @Param        agent_id    query  string  false  "filtrar por agente"
// @Param        withdrawn   query  bool    false  "filtrar por retiradas"
// @Param        page        query  int     false  "página (desde 1)"
// @Param        limit       query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.ApplicationListResponse
// @Security     BearerAuth
// @Router       /api/applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	var filters dto.ApplicationFilters
	if err := c.QueryParser(&filters); err != nil {
		return badBody(c)
	}
	page := query.Page{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}
	out, err := h.uc.List(c.Context(), caller(c), filters, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una aplicación por ID
// @Tags         applications
// @Produce      json
// @Param        id  path  string  true  "ID de la aplicación"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), caller(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener una aplicación por su código compartible
// @Tags         applications
// @Produce      json
// @Param        code  path  string  true  "código de la aplicación (ADM-XXXXXXXX)"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/applications/code/{code} [get]
func (h *ApplicationHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), caller(c), c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ToggleStage godoc
// @Summary      Marcar o desmarcar una etapa del checklist
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id     path  string                  true  "ID de la aplicación"
// @Param        stage  path  string                  true  "etapa del checklist"
// @Param        body   body  dto.ToggleStageRequest  true  "done, notes, attachments"
// @Success      200    {object}  dto.ApplicationResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/applications/{id}/stages/{stage} [patch]
func (h *ApplicationHandler) ToggleStage(c *fiber.Ctx) error {
	var in dto.ToggleStageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ToggleStage(c.Context(), caller(c), c.Params("id"), c.Params("stage"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Override godoc
// @Summary      Sobrescribir status o etapa actual (solo admin)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la aplicación"
// @Param        body  body  dto.OverrideRequest  true  "status y/o current_stage"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/applications/{id}/override [patch]
func (h *ApplicationHandler) Override(c *fiber.Ctx) error {
	var in dto.OverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Override(c.Context(), caller(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Withdraw godoc
// @Summary      Retirar una aplicación (terminal, idempotente)
// @Tags         applications
// @Produce      json
// @Param        id  path  string  true  "ID de la aplicación"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/applications/{id}/withdraw [post]
func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	out, err := h.uc.Withdraw(c.Context(), caller(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado físico de una aplicación (solo admin)
// @Tags         applications
// @Param        id  path  string  true  "ID de la aplicación"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), caller(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
