package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleAgent   = "agent"
	RoleStudent = "student"
)

// User representa una cuenta de acceso al sistema. Para agentes, el registro
// de jerarquía vive aparte en Agent (referenciado por UserID).
type User struct {
	ID           string
	CompanyID    string // vacío para administradores de plataforma
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, agent, student
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
