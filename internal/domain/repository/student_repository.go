package repository

import (
	"context"

	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
)

// StudentRepository define el puerto de persistencia para Student.
// List recibe el predicado ya construido (alcance + filtros) y devuelve la
// página junto al total para calcular totalPages.
type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	GetByID(ctx context.Context, id string) (*entity.Student, error)
	Update(ctx context.Context, student *entity.Student) error
	List(ctx context.Context, pred *query.Predicate, page query.Page) ([]*entity.Student, int, error)
}
