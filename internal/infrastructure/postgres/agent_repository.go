package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
	"github.com/tu-usuario/admisiones-pro/internal/domain/scope"
)

var (
	_ repository.AgentRepository = (*AgentRepo)(nil)
	_ scope.AgentDirectory       = (*AgentRepo)(nil)
)

// AgentRepo implementación del puerto AgentRepository sobre PostgreSQL.
// También sirve de AgentDirectory para el resolver de alcance.
type AgentRepo struct {
	db DB
}

// NewAgentRepository construye el adaptador de persistencia para agentes.
func NewAgentRepository(db DB) *AgentRepo {
	return &AgentRepo{db: db}
}

const agentColumns = `id, user_id, company_id, level, parent_id, name, email, phone, is_active, created_at, updated_at`

// Create persiste un nuevo agente.
func (r *AgentRepo) Create(ctx context.Context, a *entity.Agent) error {
	query := `
		INSERT INTO agents (` + agentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.UserID, a.CompanyID, a.Level, a.ParentID, a.Name, a.Email, a.Phone,
		a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

// GetByID obtiene un agente por ID.
func (r *AgentRepo) GetByID(ctx context.Context, id string) (*entity.Agent, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUserID obtiene el registro de jerarquía de una cuenta de agente.
func (r *AgentRepo) GetByUserID(ctx context.Context, userID string) (*entity.Agent, error) {
	return r.getBy(ctx, "user_id", userID)
}

func (r *AgentRepo) getBy(ctx context.Context, column, value string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE ` + column + ` = $1`
	var a entity.Agent
	err := r.db.QueryRow(ctx, query, value).Scan(
		&a.ID, &a.UserID, &a.CompanyID, &a.Level, &a.ParentID, &a.Name, &a.Email, &a.Phone,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agent by %s: %w", column, err)
	}
	return &a, nil
}

// ListByParent hijos directos de un agente (un solo nivel, sin nietos).
func (r *AgentRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE parent_id = $1 ORDER BY created_at`
	return r.list(ctx, query, parentID)
}

// ListByCompany agentes de un tenant con paginación.
func (r *AgentRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE company_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	return r.list(ctx, query, companyID, limit, offset)
}

func (r *AgentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Agent, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Agent
	for rows.Next() {
		var a entity.Agent
		if err := rows.Scan(&a.ID, &a.UserID, &a.CompanyID, &a.Level, &a.ParentID, &a.Name, &a.Email, &a.Phone, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza un agente (nivel, padre, activo, datos de contacto).
func (r *AgentRepo) Update(ctx context.Context, a *entity.Agent) error {
	query := `
		UPDATE agents SET level = $2, parent_id = $3, name = $4, email = $5, phone = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.Level, a.ParentID, a.Name, a.Email, a.Phone, a.IsActive, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update agent: %w", err)
	}
	return nil
}
