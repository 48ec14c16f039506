// Package repository provides persistence implementations for the API services.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// PostgresAuthRepository implements admin-account lookups using a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// GetAdmin fetches the admin account with the given username.
// It returns (nil, nil) when no such admin exists so the caller can treat
// a missing account and a wrong password uniformly.
func (r *PostgresAuthRepository) GetAdmin(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash FROM admins WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAdmin inserts a new admin account with a pre-hashed password.
// Returns the assigned id.
func (r *PostgresAuthRepository) CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2) RETURNING id`,
		username, passwordHash,
	).Scan(&id)
	return id, err
}
