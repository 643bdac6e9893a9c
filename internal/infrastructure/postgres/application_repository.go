package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/admisiones-pro/internal/domain"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo implementación del puerto ApplicationRepository sobre
// PostgreSQL. priority_mapping, stage_status y stage_history son JSONB;
// programme_ids es text[]. pgx v5 los codifica/decodifica vía encoding/json.
type ApplicationRepo struct {
	db DB
}

// NewApplicationRepository construye el adaptador de persistencia para aplicaciones.
func NewApplicationRepository(db DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `id, application_code, student_id, agent_id, company_id, programme_ids, priority_mapping, status, current_stage, stage_status, stage_history, is_withdrawn, created_at, updated_at`

// Create persiste una nueva aplicación. El código es único global: una
// colisión sube como ErrDuplicate y el caso de uso regenera y reintenta.
func (r *ApplicationRepo) Create(ctx context.Context, a *entity.Application) error {
	q := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, q,
		a.ID, a.ApplicationCode, a.StudentID, a.AgentID, a.CompanyID,
		a.ProgrammeIDs, a.PriorityMapping, a.Status, a.CurrentStage,
		a.StageStatus, a.StageHistory, a.IsWithdrawn, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetByID obtiene una aplicación por ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	return r.getBy(ctx, "id", id)
}

// GetByCode obtiene una aplicación por su código compartible.
func (r *ApplicationRepo) GetByCode(ctx context.Context, code string) (*entity.Application, error) {
	return r.getBy(ctx, "application_code", code)
}

func (r *ApplicationRepo) getBy(ctx context.Context, column, value string) (*entity.Application, error) {
	q := `SELECT ` + applicationColumns + ` FROM applications WHERE ` + column + ` = $1`
	var a entity.Application
	err := r.db.QueryRow(ctx, q, value).Scan(
		&a.ID, &a.ApplicationCode, &a.StudentID, &a.AgentID, &a.CompanyID,
		&a.ProgrammeIDs, &a.PriorityMapping, &a.Status, &a.CurrentStage,
		&a.StageStatus, &a.StageHistory, &a.IsWithdrawn, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application by %s: %w", column, err)
	}
	return &a, nil
}

// Update persiste el estado completo de la máquina de etapas.
func (r *ApplicationRepo) Update(ctx context.Context, a *entity.Application) error {
	q := `
		UPDATE applications SET programme_ids = $2, priority_mapping = $3, status = $4,
			current_stage = $5, stage_status = $6, stage_history = $7,
			is_withdrawn = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, q,
		a.ID, a.ProgrammeIDs, a.PriorityMapping, a.Status, a.CurrentStage,
		a.StageStatus, a.StageHistory, a.IsWithdrawn, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

// List ejecuta el predicado (alcance + filtros) con paginación y total.
func (r *ApplicationRepo) List(ctx context.Context, pred *query.Predicate, page query.Page) ([]*entity.Application, int, error) {
	where, args := pred.Where()

	var total int
	countQ := `SELECT COUNT(*) FROM applications ` + where
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	listQ := fmt.Sprintf(`SELECT `+applicationColumns+` FROM applications %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, pred.NextArg(), pred.NextArg()+1)
	rows, err := r.db.Query(ctx, listQ, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Application
	for rows.Next() {
		var a entity.Application
		if err := rows.Scan(&a.ID, &a.ApplicationCode, &a.StudentID, &a.AgentID, &a.CompanyID,
			&a.ProgrammeIDs, &a.PriorityMapping, &a.Status, &a.CurrentStage,
			&a.StageStatus, &a.StageHistory, &a.IsWithdrawn, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan application: %w", err)
		}
		list = append(list, &a)
	}
	return list, total, rows.Err()
}

// Delete borrado físico (solo admin; distinto del retiro).
func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}
