package entity

import "time"

// Company representa una agencia educativa: el tenant del sistema.
// Todos los agentes, estudiantes y aplicaciones pertenecen a exactamente una.
type Company struct {
	ID        string
	Name      string
	Country   string
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
