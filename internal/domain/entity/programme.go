package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles académicos de un programa.
const (
	ProgrammeFoundation = "foundation"
	ProgrammeBachelor   = "bachelor"
	ProgrammeMaster     = "master"
	ProgrammePhD        = "phd"
)

// Programme representa un programa académico ofrecido por una universidad.
// TuitionFee usa decimal para evitar errores de coma flotante con dinero.
type Programme struct {
	ID             string
	UniversityID   string
	Name           string
	Level          string // foundation, bachelor, master, phd
	DurationMonths int
	TuitionFee     decimal.Decimal
	Currency       string   // ISO 4217, ej. USD, GBP
	IntakeMonths   []string // ej. ["january", "september"]
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
