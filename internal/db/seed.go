package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"sueldos/internal/auth"
	"sueldos/internal/platform/config"
)

// Seed creates the initial admin user. It is a no-op when the seed
// credentials are absent or the user already exists.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	password := strings.TrimSpace(cfg.SeedAdminPassword)
	if email == "" || password == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3)", email, hash, auth.RoleAdmin)
	return err
}
