package dto

import (
	"time"

	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
)

// CreateApplicationRequest alta de una aplicación. AgentID solo lo aporta un
// admin (creación en nombre de un agente); para agentes se usa el propio.
type CreateApplicationRequest struct {
	AgentID         string                     `json:"agent_id"`
	StudentID       string                     `json:"student_id" validate:"required"`
	ProgrammeIDs    []string                   `json:"programme_ids" validate:"required,min=1"`
	PriorityMapping []entity.ProgrammePriority `json:"priority_mapping" validate:"required,min=1"`
}

// ToggleStageRequest marca o desmarca una etapa del checklist.
type ToggleStageRequest struct {
	Done        bool     `json:"done"`
	Notes       string   `json:"notes"`
	Attachments []string `json:"attachments"`
}

// OverrideRequest sobrescritura directa de status/etapa (solo admin).
type OverrideRequest struct {
	Status       *string `json:"status"`
	CurrentStage *string `json:"current_stage"`
	Notes        string  `json:"notes"`
}

// ApplicationFilters filtros de listado (siempre AND con el alcance).
type ApplicationFilters struct {
	Search    string `query:"search"`
	StudentID string `query:"student_id"`
	Status    string `query:"status"`
	Stage     string `query:"stage"`
	AgentID   string `query:"agent_id"`
	Withdrawn *bool  `query:"withdrawn"`
}

// ApplicationResponse salida completa de una aplicación, con el checklist
// íntegro siempre inspeccionable.
type ApplicationResponse struct {
	ID              string                       `json:"id"`
	ApplicationCode string                       `json:"application_code"`
	StudentID       string                       `json:"student_id"`
	AgentID         string                       `json:"agent_id"`
	CompanyID       string                       `json:"company_id"`
	ProgrammeIDs    []string                     `json:"programme_ids"`
	PriorityMapping []entity.ProgrammePriority   `json:"priority_mapping"`
	Status          string                       `json:"status"`
	CurrentStage    string                       `json:"current_stage"`
	StageStatus     map[string]entity.StageState `json:"stage_status"`
	StageHistory    []entity.StageEvent          `json:"stage_history"`
	IsWithdrawn     bool                         `json:"is_withdrawn"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// ApplicationListResponse página de aplicaciones.
type ApplicationListResponse struct {
	Items []ApplicationResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
