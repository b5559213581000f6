package company

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

func (s *Service) Create(ctx context.Context, c Company) (*Company, error) {
	if !cuit.Valid(c.CUIT) {
		return nil, ErrInvalidCUIT
	}
	c.ID = uuid.NewString()
	c.CUIT = cuit.Format(c.CUIT)
	err := s.db.QueryRow(ctx, `
    INSERT INTO companies (id, name, cuit, address)
    VALUES ($1, $2, $3, $4)
    RETURNING created_at, updated_at
  `, c.ID, c.Name, c.CUIT, c.Address).Scan(&c.CreatedAt, &c.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateCUIT
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Company, error) {
	var c Company
	err := s.db.QueryRow(ctx, `
    SELECT id, name, cuit, COALESCE(address, ''), created_at, updated_at
    FROM companies
    WHERE id = $1
  `, id).Scan(&c.ID, &c.Name, &c.CUIT, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Company, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM companies`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx, `
    SELECT id, name, cuit, COALESCE(address, ''), created_at, updated_at
    FROM companies
    ORDER BY name
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CUIT, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (s *Service) Update(ctx context.Context, id string, c Company) (*Company, error) {
	if !cuit.Valid(c.CUIT) {
		return nil, ErrInvalidCUIT
	}
	c.ID = id
	c.CUIT = cuit.Format(c.CUIT)
	cmd, err := s.db.Exec(ctx, `
    UPDATE companies
    SET name = $1,
        cuit = $2,
        address = $3,
        updated_at = now()
    WHERE id = $4
  `, c.Name, c.CUIT, c.Address, id)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateCUIT
	}
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete refuses while employees reference the company.
func (s *Service) Delete(ctx context.Context, id string) error {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(1) FROM employees WHERE company_id = $1`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrHasEmployees
	}
	cmd, err := s.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
