package dto

import "time"

// CreateAgentRequest alta de un subordinado por un superior. ParentID es
// opcional: por defecto el padre es el creador; un owner puede colgar la hoja
// de un manager de su empresa.
type CreateAgentRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone"`
	Password string  `json:"password" validate:"required,min=8"`
	Level    string  `json:"level" validate:"required,oneof=manager admission counsellor"`
	ParentID *string `json:"parent_id"`
}

// SetAgentActiveRequest activa o desactiva un agente (nunca al owner).
type SetAgentActiveRequest struct {
	Active bool `json:"active"`
}

// ReassignAgentRequest mueve un agente bajo otro padre de la misma compañía.
type ReassignAgentRequest struct {
	ParentID string `json:"parent_id"`
}

// AgentResponse salida de un agente.
type AgentResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	Level     string    `json:"level"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgentListResponse lista de agentes visibles para el caller.
type AgentListResponse struct {
	Items []AgentResponse `json:"items"`
}
