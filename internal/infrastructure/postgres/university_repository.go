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

var _ repository.UniversityRepository = (*UniversityRepo)(nil)

// UniversityRepo implementación del puerto UniversityRepository sobre PostgreSQL.
type UniversityRepo struct {
	db DB
}

// NewUniversityRepository construye el adaptador de persistencia para universidades.
func NewUniversityRepository(db DB) *UniversityRepo {
	return &UniversityRepo{db: db}
}

const universityColumns = `id, name, country, city, website, is_active, created_at, updated_at`

// Create persiste una nueva universidad (nombre único).
func (r *UniversityRepo) Create(ctx context.Context, u *entity.University) error {
	q := `
		INSERT INTO universities (` + universityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, q,
		u.ID, u.Name, u.Country, u.City, u.Website, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert university: %w", err)
	}
	return nil
}

// GetByID obtiene una universidad por ID.
func (r *UniversityRepo) GetByID(ctx context.Context, id string) (*entity.University, error) {
	q := `SELECT ` + universityColumns + ` FROM universities WHERE id = $1`
	var u entity.University
	err := r.db.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Name, &u.Country, &u.City, &u.Website, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get university by id: %w", err)
	}
	return &u, nil
}

// Update actualiza una universidad.
func (r *UniversityRepo) Update(ctx context.Context, u *entity.University) error {
	q := `
		UPDATE universities SET name = $2, country = $3, city = $4, website = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.db.Exec(ctx, q,
		u.ID, u.Name, u.Country, u.City, u.Website, u.IsActive, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update university: %w", err)
	}
	return nil
}

// List lista universidades filtradas con paginación y total.
func (r *UniversityRepo) List(ctx context.Context, pred *query.Predicate, page query.Page) ([]*entity.University, int, error) {
	where, args := pred.Where()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM universities `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count universities: %w", err)
	}

	listQ := fmt.Sprintf(`SELECT `+universityColumns+` FROM universities %s ORDER BY name LIMIT $%d OFFSET $%d`,
		where, pred.NextArg(), pred.NextArg()+1)
	rows, err := r.db.Query(ctx, listQ, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list universities: %w", err)
	}
	defer rows.Close()

	var list []*entity.University
	for rows.Next() {
		var u entity.University
		if err := rows.Scan(&u.ID, &u.Name, &u.Country, &u.City, &u.Website, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan university: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}
