package entity

import "time"

// ProgrammePriority asocia un programa con su prioridad [1,3] dentro de una
// aplicación. Las prioridades pueden repetirse; los empates se tratan como
// rango igual aguas abajo, el dominio no los reordena.
type ProgrammePriority struct {
	ProgrammeID string `json:"programme_id"`
	Priority    int    `json:"priority"`
}

// StageState estado de un hito del checklist de la aplicación.
type StageState struct {
	Done        bool       `json:"done"`
	DoneAt      *time.Time `json:"done_at,omitempty"`
	DoneBy      string     `json:"done_by,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Attachments []string   `json:"attachments,omitempty"`
}

// StageEvent entrada del log de auditoría de etapas (solo se anexa).
type StageEvent struct {
	Stage       string    `json:"stage"`
	Done        bool      `json:"done"`
	Notes       string    `json:"notes,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Application representa una solicitud de admisión de un estudiante a uno o
// más programas. CompanyID se fija al crear (igual al del agente creador) y es
// inmutable. StageStatus es un conjunto cerrado de claves: siempre contiene
// una entrada por cada etapa conocida, nunca acepta etapas desconocidas.
// Una vez IsWithdrawn es true la aplicación queda congelada (solo lectura).
type Application struct {
	ID              string
	ApplicationCode string // generado una vez, inmutable, único global
	StudentID       string
	AgentID         string
	CompanyID       string
	ProgrammeIDs    []string
	PriorityMapping []ProgrammePriority
	Status          string
	CurrentStage    string
	StageStatus     map[string]StageState
	StageHistory    []StageEvent
	IsWithdrawn     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
