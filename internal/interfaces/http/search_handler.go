package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
)

// SearchHandler búsqueda global acotada por alcance.
type SearchHandler struct {
	uc *usecase.SearchUseCase
}

// NewSearchHandler construye el handler de búsqueda.
func NewSearchHandler(uc *usecase.SearchUseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search godoc
// @Summary      Búsqueda combinada sobre estudiantes y aplicaciones
// @Tags         search
// @Produce      json
// @Param        q  query  string  true  "término de búsqueda"
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), caller(c), c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
