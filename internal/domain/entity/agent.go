package entity

import "time"

// Niveles de la jerarquía de agentes (owner es el más alto).
const (
	LevelOwner      = "owner"
	LevelManager    = "manager"
	LevelAdmission  = "admission"
	LevelCounsellor = "counsellor"
)

// Agent es un nodo de la jerarquía de una agencia: el owner en la raíz,
// managers como hijos y admission/counsellor como hojas. ParentID apunta al
// superior directo; el owner no tiene padre. Invariante: toda la cadena de
// reporte comparte el mismo CompanyID (se valida al escribir, no al navegar).
type Agent struct {
	ID        string
	UserID    string // cuenta de acceso asociada
	CompanyID string
	Level     string  // owner, manager, admission, counsellor
	ParentID  *string // nil para owners
	Name      string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubordinateLevels niveles que un agente puede crear bajo su cargo.
// Un owner crea managers y hojas; un manager solo hojas bajo sí mismo.
func SubordinateLevels(level string) []string {
	switch level {
	case LevelOwner:
		return []string{LevelManager, LevelAdmission, LevelCounsellor}
	case LevelManager:
		return []string{LevelAdmission, LevelCounsellor}
	default:
		return nil
	}
}
