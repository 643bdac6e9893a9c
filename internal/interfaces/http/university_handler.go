package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
)

// UniversityHandler maneja el catálogo de universidades.
type UniversityHandler struct {
	uc *usecase.UniversityUseCase
}

// NewUniversityHandler construye el handler de universidades.
func NewUniversityHandler(uc *usecase.UniversityUseCase) *UniversityHandler {
	return &UniversityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear universidad (solo admin)
// @Tags         universities
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUniversityRequest  true  "datos de la universidad"
// @Success      201   {object}  dto.UniversityResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/universities [post]
func (h *UniversityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUniversityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.Context(), caller(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar universidades
// @Tags         universities
// @Produce      json
// @Param        search   query  string  false  "texto sobre nombre, país, ciudad"
// @Param        country  query  string  false  "filtrar por país"
// @Param        page     query  int     false  "página (desde 1)"
// @Param        limit    query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.UniversityListResponse
// @Security     BearerAuth
// @Router       /api/universities [get]
func (h *UniversityHandler) List(c *fiber.Ctx) error {
	page := query.Page{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 10)}
	out, err := h.uc.List(c.Context(), c.Query("search"), c.Query("country"), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una universidad por ID
// @Tags         universities
// @Produce      json
// @Param        id  path  string  true  "ID de la universidad"
// @Success      200  {object}  dto.UniversityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/universities/{id} [get]
func (h *UniversityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar una universidad (solo admin)
// @Tags         universities
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la universidad"
// @Param        body  body  dto.UpdateUniversityRequest  true  "campos a modificar"
// @Success      200   {object}  dto.UniversityResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/universities/{id} [put]
func (h *UniversityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUniversityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), caller(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
