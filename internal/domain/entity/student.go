package entity

import "time"

// Estados de perfil de un estudiante.
const (
	ProfileIncomplete = "incomplete"
	ProfileComplete   = "complete"
	ProfileVerified   = "verified"
)

// Student representa un estudiante gestionado por un agente. AgentID es el
// agente creador y CompanyID se denormaliza de ese agente al crear; ambos son
// inmutables después de la creación.
type Student struct {
	ID             string
	AgentID        string
	CompanyID      string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Nationality    string
	PassportNumber string
	DateOfBirth    *time.Time
	ProfileStatus  string // incomplete, complete, verified
	Documents      []StudentDocument
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StudentDocument metadatos de un documento subido a object storage.
// Los documentos solo se anexan; el borrado es lógico vía IsDeleted.
type StudentDocument struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"` // passport, transcript, ielts, sop, other
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
	IsDeleted  bool      `json:"is_deleted"`
}
