package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
)

// ProgrammeHandler maneja el catálogo de programas académicos.
type ProgrammeHandler struct {
	uc *usecase.ProgrammeUseCase
}

// NewProgrammeHandler construye el handler de programas.
func NewProgrammeHandler(uc *usecase.ProgrammeUseCase) *ProgrammeHandler {
	return &ProgrammeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear programa (solo admin)
// @Tags         programmes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProgrammeRequest  true  "datos del programa"
// @Success      201   {object}  dto.ProgrammeResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/programmes [post]
func (h *ProgrammeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProgrammeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.UniversityID == "" || in.Name == "" || in.Level == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "university_id, name y level son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), caller(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar programas
// @Tags         programmes
// @Produce      json
// @Param        search         query  string  false  "texto sobre nombre y nivel"
// @Param        university_id  query  string  false  "filtrar por universidad"
// @Param        level          query  string  false  "foundation | bachelor | master | phd"
// @Param        page           query  int     false  "página (desde 1)"
// @Param        limit          query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.ProgrammeListResponse
// @Security     BearerAuth
// @Router       /api/programmes [get]
func (h *ProgrammeHandler) List(c *fiber.Ctx) error {
	page := query.Page{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}
	out, err := h.uc.List(c.Context(), c.Query("search"), c.Query("university_id"), c.Query("level"), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un programa por ID
// @Tags         programmes
// @Produce      json
// @Param        id  path  string  true  "ID del programa"
// @Success      200  {object}  dto.ProgrammeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/programmes/{id} [get]
func (h *ProgrammeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar un programa (solo admin)
// @Tags         programmes
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del programa"
// @Param        body  body  dto.UpdateProgrammeRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ProgrammeResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/programmes/{id} [put]
func (h *ProgrammeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProgrammeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), caller(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
