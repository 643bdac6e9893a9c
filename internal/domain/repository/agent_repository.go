package repository

import (
	"context"

	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
)

// AgentRepository define el puerto de persistencia para la jerarquía de
// agentes. GetByUserID y ListByParent también satisfacen scope.AgentDirectory.
type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	GetByID(ctx context.Context, id string) (*entity.Agent, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Agent, error)
	ListByParent(ctx context.Context, parentID string) ([]*entity.Agent, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Agent, error)
	Update(ctx context.Context, agent *entity.Agent) error
}
