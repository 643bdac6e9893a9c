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

// UniversityUseCase catálogo global de universidades. La lectura es para
// cualquier usuario autenticado; las mutaciones las restringe el router a
// admin y aquí se revalida el rol.
type UniversityUseCase struct {
	repo repository.UniversityRepository
}

// NewUniversityUseCase construye el caso de uso.
func NewUniversityUseCase(repo repository.UniversityRepository) *UniversityUseCase {
	return &UniversityUseCase{repo: repo}
}

// Create alta de universidad (solo admin).
func (uc *UniversityUseCase) Create(ctx context.Context, caller scope.Caller, in dto.CreateUniversityRequest) (*dto.UniversityResponse, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	u := &entity.University{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Country:   in.Country,
		City:      in.City,
		Website:   in.Website,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := toUniversityResponse(u)
	return &out, nil
}

// GetByID lectura abierta a cualquier usuario autenticado.
func (uc *UniversityUseCase) GetByID(ctx context.Context, id string) (*dto.UniversityResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	out := toUniversityResponse(u)
	return &out, nil
}

// List catálogo paginado con búsqueda por texto y filtro por país.
func (uc *UniversityUseCase) List(ctx context.Context, search, country string, page query.Page) (*dto.UniversityListResponse, error) {
	page.Normalize()
	pred := query.New()
	pred.Text(query.UniversityTextColumns, search)
	if country != "" {
		pred.Eq("country", country)
	}

	items, total, err := uc.repo.List(ctx, pred, page)
	if err != nil {
		return nil, err
	}
	out := &dto.UniversityListResponse{
		Items: make([]dto.UniversityResponse, 0, len(items)),
		Page: dto.PageResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: query.TotalPages(total, page.Limit),
		},
	}
	for _, u := range items {
		out.Items = append(out.Items, toUniversityResponse(u))
	}
	return out, nil
}

// Update edición parcial (solo admin).
func (uc *UniversityUseCase) Update(ctx context.Context, caller scope.Caller, id string, in dto.UpdateUniversityRequest) (*dto.UniversityResponse, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Country != nil {
		u.Country = *in.Country
	}
	if in.City != nil {
		u.City = *in.City
	}
	if in.Website != nil {
		u.Website = *in.Website
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	out := toUniversityResponse(u)
	return &out, nil
}
