package employee

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sueldos/internal/cuit"
)

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, e Employee) (*Employee, error) {
	if !cuit.Valid(e.CUIL) {
		return nil, ErrInvalidCUIL
	}
	e.ID = uuid.NewString()
	e.CUIL = cuit.Format(e.CUIL)
	if e.Status == "" {
		e.Status = StatusActive
	}
	err := s.db.QueryRow(ctx, `
    INSERT INTO employees (id, company_id, first_name, last_name, cuil, hire_date, category, sub_category, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING created_at, updated_at
  `, e.ID, e.CompanyID, e.FirstName, e.LastName, e.CUIL, e.HireDate, e.Category, e.SubCategory, e.Status).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	if isForeignKeyViolation(err) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := s.db.QueryRow(ctx, `
    SELECT id, company_id, first_name, last_name, cuil, hire_date,
           COALESCE(category, ''), COALESCE(sub_category, ''), status, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&e.ID, &e.CompanyID, &e.FirstName, &e.LastName, &e.CUIL, &e.HireDate,
		&e.Category, &e.SubCategory, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) List(ctx context.Context, companyID string, limit, offset int) ([]Employee, int, error) {
	var total int
	var err error
	if companyID == "" {
		err = s.db.QueryRow(ctx, `SELECT COUNT(1) FROM employees`).Scan(&total)
	} else {
		err = s.db.QueryRow(ctx, `SELECT COUNT(1) FROM employees WHERE company_id = $1`, companyID).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}

	query := `
    SELECT id, company_id, first_name, last_name, cuil, hire_date,
           COALESCE(category, ''), COALESCE(sub_category, ''), status, created_at, updated_at
    FROM employees
  `
	args := []any{}
	if companyID != "" {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	if companyID == "" {
		query += ` ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	} else {
		query += ` ORDER BY last_name, first_name LIMIT $2 OFFSET $3`
	}
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.FirstName, &e.LastName, &e.CUIL, &e.HireDate,
			&e.Category, &e.SubCategory, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// Update rewrites the employee. Changing the hire date shifts the seniority
// base of every settlement recomputed afterwards.
func (s *Service) Update(ctx context.Context, id string, e Employee) (*Employee, error) {
	if !cuit.Valid(e.CUIL) {
		return nil, ErrInvalidCUIL
	}
	e.CUIL = cuit.Format(e.CUIL)
	cmd, err := s.db.Exec(ctx, `
    UPDATE employees
    SET company_id = $1,
        first_name = $2,
        last_name = $3,
        cuil = $4,
        hire_date = $5,
        category = $6,
        sub_category = $7,
        status = $8,
        updated_at = now()
    WHERE id = $9
  `, e.CompanyID, e.FirstName, e.LastName, e.CUIL, e.HireDate, e.Category, e.SubCategory, e.Status, id)
	if isForeignKeyViolation(err) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete refuses while settlements reference the employee.
func (s *Service) Delete(ctx context.Context, id string) error {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM settlements WHERE employee_id = $1`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrHasSettlements
	}
	cmd, err := s.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
