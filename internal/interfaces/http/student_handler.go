package http

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
	"github.com/tu-usuario/admisiones-pro/internal/application/usecase"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
)

// StudentHandler maneja estudiantes y sus documentos.
type StudentHandler struct {
	uc      *usecase.StudentUseCase
	storage ports.FileStorage
}

// NewStudentHandler construye el handler de estudiantes. storage puede ser
// nil cuando el object storage está deshabilitado (la subida responde 503).
func NewStudentHandler(uc *usecase.StudentUseCase, storage ports.FileStorage) *StudentHandler {
	return &StudentHandler{uc: uc, storage: storage}
}

// Create godoc
// @Summary      Crear estudiante
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStudentRequest  true  "datos del estudiante"
// @Success      201   {object}  dto.StudentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/students [post]
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStudentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "first_name es requerido"})
	}
	out, err := h.uc.Create(c.Context(), caller(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar estudiantes visibles para el caller
// @Tags         students
// @Produce      json
// @Param        search          query  string  false  "texto sobre nombre, email, pasaporte"
// @Param        profile_status  query  string  false  "incomplete | complete | verified"
// @Param        agent_id        query  string  false  "filtrar por agente"
// @Param        page            query  int     false  "página (desde 1)"
// @Param        limit           query  int     false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.StudentListResponse
// @Security     BearerAuth
// @Router       /api/students [get]
func (h *StudentHandler) List(c *fiber.Ctx) error {
	var filters dto.StudentFilters
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
// @Summary      Obtener un estudiante por ID
// @Tags         students
// @Produce      json
// @Param        id  path  string  true  "ID del estudiante"
// @Success      200  {object}  dto.StudentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/students/{id} [get]
func (h *StudentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), caller(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar un estudiante (campos opcionales)
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del estudiante"
// @Param        body  body  dto.UpdateStudentRequest  true  "campos a modificar"
// @Success      200   {object}  dto.StudentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/students/{id} [put]
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStudentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), caller(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UploadDocument godoc
// @Summary      Subir un documento del estudiante (multipart)
// @Tags         students
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true   "ID del estudiante"
// @Param        file  formData  file    true   "archivo"
// @Param        name  formData  string  false  "nombre visible (por defecto el del archivo)"
// @Param        type  formData  string  false  "passport | transcript | ielts | sop | other"
// @Success      201   {object}  dto.StudentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/students/{id}/documents [post]
func (h *StudentHandler) UploadDocument(c *fiber.Ctx) error {
	if h.storage == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_DISABLED", Message: "object storage no configurado"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo file requerido"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fail(c, err)
	}
	defer f.Close()

	studentID := c.Params("id")
	objectName := fmt.Sprintf("%s/%s%s", studentID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.storage.Upload(c.Context(), objectName, contentType, fileHeader.Size, f)
	if err != nil {
		return fail(c, err)
	}

	name := c.FormValue("name")
	if name == "" {
		name = fileHeader.Filename
	}
	docType := c.FormValue("type")
	if docType == "" {
		docType = "other"
	}
	out, err := h.uc.AddDocument(c.Context(), caller(c), studentID, dto.AddDocumentRequest{
		Name: name,
		Type: docType,
		URL:  url,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveDocument godoc
// @Summary      Borrar (lógicamente) un documento del estudiante
// @Tags         students
// @Produce      json
// @Param        id     path  string  true  "ID del estudiante"
// @Param        docID  path  string  true  "ID del documento"
// @Success      200  {object}  dto.StudentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/students/{id}/documents/{docID} [delete]
func (h *StudentHandler) RemoveDocument(c *fiber.Ctx) error {
	out, err := h.uc.RemoveDocument(c.Context(), caller(c), c.Params("id"), c.Params("docID"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
