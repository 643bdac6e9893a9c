package repository

import (
	"context"

	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
)

// UniversityRepository define el puerto de persistencia para University.
type UniversityRepository interface {
	Create(ctx context.Context, u *entity.University) error
	GetByID(ctx context.Context, id string) (*entity.University, error)
	Update(ctx context.Context, u *entity.University) error
	List(ctx context.Context, pred *query.Predicate, page query.Page) ([]*entity.University, int, error)
}

// ProgrammeRepository define el puerto de persistencia para Programme.
type ProgrammeRepository interface {
	Create(ctx context.Context, p *entity.Programme) error
	GetByID(ctx context.Context, id string) (*entity.Programme, error)
	Update(ctx context.Context, p *entity.Programme) error
	List(ctx context.Context, pred *query.Predicate, page query.Page) ([]*entity.Programme, int, error)
}
