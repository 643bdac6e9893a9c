package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateUniversityRequest alta de universidad (solo admin).
type CreateUniversityRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Country string `json:"country"`
	City    string `json:"city"`
	Website string `json:"website"`
}

// UpdateUniversityRequest edición con campos opcionales.
type UpdateUniversityRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Country  *string `json:"country"`
	City     *string `json:"city"`
	Website  *string `json:"website"`
	IsActive *bool   `json:"is_active"`
}

// UniversityResponse salida de una universidad.
type UniversityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Website   string    `json:"website"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UniversityListResponse página de universidades.
type UniversityListResponse struct {
	Items []UniversityResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// CreateProgrammeRequest alta de programa (solo admin).
type CreateProgrammeRequest struct {
	UniversityID   string          `json:"university_id" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Level          string          `json:"level" validate:"required,oneof=foundation bachelor master phd"`
	DurationMonths int             `json:"duration_months" validate:"min=1"`
	TuitionFee     decimal.Decimal `json:"tuition_fee"`
	Currency       string          `json:"currency" validate:"omitempty,len=3"`
	IntakeMonths   []string        `json:"intake_months"`
}

// UpdateProgrammeRequest edición con campos opcionales.
type UpdateProgrammeRequest struct {
	Name           *string          `json:"name"`
	Level          *string          `json:"level" validate:"omitempty,oneof=foundation bachelor master phd"`
	DurationMonths *int             `json:"duration_months"`
	TuitionFee     *decimal.Decimal `json:"tuition_fee"`
	Currency       *string          `json:"currency" validate:"omitempty,len=3"`
	IntakeMonths   []string         `json:"intake_months"`
	IsActive       *bool            `json:"is_active"`
}

// ProgrammeResponse salida de un programa.
type ProgrammeResponse struct {
	ID             string          `json:"id"`
	UniversityID   string          `json:"university_id"`
	Name           string          `json:"name"`
	Level          string          `json:"level"`
	DurationMonths int             `json:"duration_months"`
	TuitionFee     decimal.Decimal `json:"tuition_fee"`
	Currency       string          `json:"currency"`
	IntakeMonths   []string        `json:"intake_months"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProgrammeListResponse página de programas.
type ProgrammeListResponse struct {
	Items []ProgrammeResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
