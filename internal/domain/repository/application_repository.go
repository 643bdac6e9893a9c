package repository

import (
	"context"

	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
)

// ApplicationRepository define el puerto de persistencia para Application.
// Delete es el borrado físico de admin; el retiro (withdraw) es un Update.
type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	GetByCode(ctx context.Context, code string) (*entity.Application, error)
	Update(ctx context.Context, app *entity.Application) error
	List(ctx context.Context, pred *query.Predicate, page query.Page) ([]*entity.Application, int, error)
	Delete(ctx context.Context, id string) error
}
