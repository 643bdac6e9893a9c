package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
)

// AgentHandler maneja la jerarquía de agentes.
type AgentHandler struct {
	uc *usecase.AgentUseCase
}

// NewAgentHandler construye el handler de agentes.
func NewAgentHandler(uc *usecase.AgentUseCase) *AgentHandler {
	return &AgentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear agente subordinado
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAgentRequest  true  "datos del subordinado"
// @Success      201   {object}  dto.AgentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/agents [post]
func (h *AgentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAgentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Level == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email, password y level son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.uc.CreateSubordinate(c.Context(), caller(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar agentes visibles para el caller
// @Tags         agents
// @Produce      json
// @Param        company_id  query  string  false  "requerido para admin"
// @Param        limit       query  int     false  "tamaño de página"
// @Param        offset      query  int     false  "filas a saltar"
// @Success      200  {object}  dto.AgentListResponse
// @Security     BearerAuth
// @Router       /api/agents [get]
func (h *AgentHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(c.Context(), caller(c), c.Query("company_id"), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un agente por ID
// @Tags         agents
// @Produce      json
// @Param        id  path  string  true  "ID del agente"
// @Success      200  {object}  dto.AgentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/agents/{id} [get]
func (h *AgentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), caller(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar un agente (nunca al owner)
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del agente"
// @Param        body  body  dto.SetAgentActiveRequest  true  "active"
// @Success      200   {object}  dto.AgentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/agents/{id}/active [patch]
func (h *AgentHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetAgentActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetActive(c.Context(), caller(c), c.Params("id"), in.Active)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Reassign godoc
// @Summary      Reasignar un agente bajo otro padre
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del agente"
// @Param        body  body  dto.ReassignAgentRequest  true  "parent_id"
// @Success      200   {object}  dto.AgentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/agents/{id}/parent [patch]
func (h *AgentHandler) Reassign(c *fiber.Ctx) error {
	var in dto.ReassignAgentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Reassign(c.Context(), caller(c), c.Params("id"), in.ParentID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
