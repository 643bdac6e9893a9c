package dto

import (
	"time"

	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
)

// CreateStudentRequest alta de estudiante. AgentID solo lo aporta un admin
// (en nombre de un agente); para agentes se ignora y se usa el propio.
type CreateStudentRequest struct {
	AgentID        string     `json:"agent_id"`
	FirstName      string     `json:"first_name" validate:"required"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email" validate:"omitempty,email"`
	Phone          string     `json:"phone"`
	Nationality    string     `json:"nationality"`
	PassportNumber string     `json:"passport_number"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
}

// UpdateStudentRequest edición con campos opcionales (allow-list explícita,
// nunca merge de JSON arbitrario).
type UpdateStudentRequest struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Phone          *string    `json:"phone"`
	Nationality    *string    `json:"nationality"`
	PassportNumber *string    `json:"passport_number"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	ProfileStatus  *string    `json:"profile_status" validate:"omitempty,oneof=incomplete complete verified"`
}

// StudentFilters filtros de listado/búsqueda (siempre AND con el alcance).
type StudentFilters struct {
	Search        string `query:"search"`
	ProfileStatus string `query:"profile_status"`
	AgentID       string `query:"agent_id"`
}

// AddDocumentRequest metadatos que acompañan la subida de un documento.
type AddDocumentRequest struct {
	Name string `json:"name"`
	Type string `json:"type" validate:"omitempty,oneof=passport transcript ielts sop other"`
	URL  string `json:"url"`
}

// StudentResponse salida de un estudiante.
type StudentResponse struct {
	ID             string                   `json:"id"`
	AgentID        string                   `json:"agent_id"`
	CompanyID      string                   `json:"company_id"`
	FirstName      string                   `json:"first_name"`
	LastName       string                   `json:"last_name"`
	Email          string                   `json:"email"`
	Phone          string                   `json:"phone"`
	Nationality    string                   `json:"nationality"`
	PassportNumber string                   `json:"passport_number"`
	DateOfBirth    *time.Time               `json:"date_of_birth,omitempty"`
	ProfileStatus  string                   `json:"profile_status"`
	Documents      []entity.StudentDocument `json:"documents"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// StudentListResponse página de estudiantes.
type StudentListResponse struct {
	Items []StudentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
