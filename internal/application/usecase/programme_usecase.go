package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/admisiones-pro/internal/application/dto"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
)

// ProgrammeUseCase catálogo global de programas académicos.
type ProgrammeUseCase struct {
	repo           repository.ProgrammeRepository
	universityRepo repository.UniversityRepository
}

// NewProgrammeUseCase construye el caso de uso.
func NewProgrammeUseCase(repo repository.ProgrammeRepository, universityRepo repository.UniversityRepository) *ProgrammeUseCase {
	return &ProgrammeUseCase{repo: repo, universityRepo: universityRepo}
}

// Create alta de programa (solo admin). La universidad debe existir.
func (uc *ProgrammeUseCase) Create(ctx context.Context, caller scope.Caller, in dto.CreateProgrammeRequest) (*dto.ProgrammeResponse, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	u, err := uc.universityRepo.GetByID(ctx, in.UniversityID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	now := time.Now()
	p := &entity.Programme{
		ID:             uuid.New().String(),
		UniversityID:   in.UniversityID,
		Name:           in.Name,
		Level:          in.Level,
		DurationMonths: in.DurationMonths,
		TuitionFee:     in.TuitionFee,
		Currency:       currency,
		IntakeMonths:   in.IntakeMonths,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toProgrammeResponse(p)
	return &out, nil
}

// GetByID lectura abierta a cualquier usuario autenticado.
func (uc *ProgrammeUseCase) GetByID(ctx context.Context, id string) (*dto.ProgrammeResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := toProgrammeResponse(p)
	return &out, nil
}

// List catálogo paginado; filtros por universidad y nivel académico.
func (uc *ProgrammeUseCase) List(ctx context.Context, search, universityID, level string, page query.Page) (*dto.ProgrammeListResponse, error) {
	page.Normalize()
	pred := query.New()
	pred.Text(query.ProgrammeTextColumns, search)
	if universityID != "" {
		pred.Eq("university_id", universityID)
	}
	if level != "" {
		pred.Eq("level", level)
	}

	items, total, err := uc.repo.List(ctx, pred, page)
	if err != nil {
		return nil, err
	}
	out := &dto.ProgrammeListResponse{
		Items: make([]dto.ProgrammeResponse, 0, len(items)),
		Page: dto.PageResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: query.TotalPages(total, page.Limit),
		},
	}
	for _, p := range items {
		out.Items = append(out.Items, toProgrammeResponse(p))
	}
	return out, nil
}

// Update edición parcial (solo admin).
func (uc *ProgrammeUseCase) Update(ctx context.Context, caller scope.Caller, id string, in dto.UpdateProgrammeRequest) (*dto.ProgrammeResponse, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Level != nil {
		p.Level = *in.Level
	}
	if in.DurationMonths != nil {
		p.DurationMonths = *in.DurationMonths
	}
	if in.TuitionFee != nil {
		p.TuitionFee = *in.TuitionFee
	}
	if in.Currency != nil {
		p.Currency = *in.Currency
	}
	if in.IntakeMonths != nil {
		p.IntakeMonths = in.IntakeMonths
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	out := toProgrammeResponse(p)
	return &out, nil
}
