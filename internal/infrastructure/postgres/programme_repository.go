package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/admisiones-pro/internal/domain/entity"
	"github.com/tu-usuario/admisiones-pro/internal/domain/query"
	"github.com/tu-usuario/admisiones-pro/internal/domain/repository"
)

var _ repository.ProgrammeRepository = (*ProgrammeRepo)(nil)

// ProgrammeRepo implementación del puerto ProgrammeRepository sobre PostgreSQL.
// tuition_fee es NUMERIC y llega como decimal gracias al codec registrado en
// el pool; intake_months es text[].
type ProgrammeRepo struct {
	db DB
}

// NewProgrammeRepository construye el adaptador de persistencia para programas.
func NewProgrammeRepository(db DB) *ProgrammeRepo {
	return &ProgrammeRepo{db: db}
}

const programmeColumns = `id, university_id, name, level, duration_months, tuition_fee, currency, intake_months, is_active, created_at, updated_at`

// Create persiste un nuevo programa.
func (r *ProgrammeRepo) Create(ctx context.Context, p *entity.Programme) error {
	q := `
		INSERT INTO programmes (` + programmeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, q,
		p.ID, p.UniversityID, p.Name, p.Level, p.DurationMonths, p.TuitionFee,
		p.Currency, p.IntakeMonths, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert programme: %w", err)
	}
	return nil
}

// GetByID obtiene un programa por ID.
func (r *ProgrammeRepo) GetByID(ctx context.Context, id string) (*entity.Programme, error) {
	q := `SELECT ` + programmeColumns + ` FROM programmes WHERE id = $1`
	var p entity.Programme
	err := r.db.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.UniversityID, &p.Name, &p.Level, &p.DurationMonths, &p.TuitionFee,
		&p.Currency, &p.IntakeMonths, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get programme by id: %w", err)
	}
	return &p, nil
}

// Update actualiza un programa.
func (r *ProgrammeRepo) Update(ctx context.Context, p *entity.Programme) error {
	q := `
		UPDATE programmes SET university_id = $2, name = $3, level = $4, duration_months = $5,
			tuition_fee = $6, currency = $7, intake_months = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.db.Exec(ctx, q,
		p.ID, p.UniversityID, p.Name, p.Level, p.DurationMonths, p.TuitionFee,
		p.Currency, p.IntakeMonths, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update programme: %w", err)
	}
	return nil
}

// List lista programas filtrados con paginación y total.
func (r *ProgrammeRepo) List(ctx context.Context, pred *query.Predicate, page query.Page) ([]*entity.Programme, int, error) {
	where, args := pred.Where()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM programmes `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count programmes: %w", err)
	}

	listQ := fmt.Sprintf(`SELECT `+programmeColumns+` FROM programmes %s ORDER BY name LIMIT $%d OFFSET $%d`,
		where, pred.NextArg(), pred.NextArg()+1)
	rows, err := r.db.Query(ctx, listQ, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list programmes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Programme
	for rows.Next() {
		var p entity.Programme
		if err := rows.Scan(&p.ID, &p.UniversityID, &p.Name, &p.Level, &p.DurationMonths, &p.TuitionFee,
			&p.Currency, &p.IntakeMonths, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan programme: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}
