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

var _ repository.StudentRepository = (*StudentRepo)(nil)

// StudentRepo implementación del puerto StudentRepository sobre PostgreSQL.
// Documents se guarda como JSONB (solo se anexa, el borrado es lógico).
type StudentRepo struct {
	db DB
}

// NewStudentRepository construye el adaptador de persistencia para estudiantes.
func NewStudentRepository(db DB) *StudentRepo {
	return &StudentRepo{db: db}
}

const studentColumns = `id, agent_id, company_id, first_name, last_name, email, phone, nationality, passport_number, date_of_birth, profile_status, documents, created_at, updated_at`

// Create persiste un nuevo estudiante.
func (r *StudentRepo) Create(ctx context.Context, s *entity.Student) error {
	q := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, q,
		s.ID, s.AgentID, s.CompanyID, s.FirstName, s.LastName, s.Email, s.Phone,
		s.Nationality, s.PassportNumber, s.DateOfBirth, s.ProfileStatus, s.Documents,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// GetByID obtiene un estudiante por ID.
func (r *StudentRepo) GetByID(ctx context.Context, id string) (*entity.Student, error) {
	q := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	var s entity.Student
	err := r.db.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.AgentID, &s.CompanyID, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
		&s.Nationality, &s.PassportNumber, &s.DateOfBirth, &s.ProfileStatus, &s.Documents,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}
	return &s, nil
}

// Update actualiza un estudiante. AgentID y CompanyID no se tocan: son
// inmutables desde la creación.
func (r *StudentRepo) Update(ctx context.Context, s *entity.Student) error {
	q := `
		UPDATE students SET first_name = $2, last_name = $3, email = $4, phone = $5,
			nationality = $6, passport_number = $7, date_of_birth = $8,
			profile_status = $9, documents = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.db.Exec(ctx, q,
		s.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.Nationality,
		s.PassportNumber, s.DateOfBirth, s.ProfileStatus, s.Documents, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// List ejecuta el predicado (alcance + filtros) con paginación y devuelve la
// página junto al total de coincidencias.
func (r *StudentRepo) List(ctx context.Context, pred *query.Predicate, page query.Page) ([]*entity.Student, int, error) {
	where, args := pred.Where()

	var total int
	countQ := `SELECT COUNT(*) FROM students ` + where
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	listQ := fmt.Sprintf(`SELECT `+studentColumns+` FROM students %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, pred.NextArg(), pred.NextArg()+1)
	rows, err := r.db.Query(ctx, listQ, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var list []*entity.Student
	for rows.Next() {
		var s entity.Student
		if err := rows.Scan(&s.ID, &s.AgentID, &s.CompanyID, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
			&s.Nationality, &s.PassportNumber, &s.DateOfBirth, &s.ProfileStatus, &s.Documents,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan student: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}
