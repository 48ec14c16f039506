package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// PostgresArchivoRepository implements the uploaded-file registry using a
// PostgreSQL database.
type PostgresArchivoRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresArchivoRepository creates a new PostgresArchivoRepository with
// the given database connection.
func NewPostgresArchivoRepository(db *sql.DB) *PostgresArchivoRepository {
	return &PostgresArchivoRepository{DB: db}
}

// Create registers an uploaded file and returns the record with its id and
// creation timestamp filled in.
func (r *PostgresArchivoRepository) Create(ctx context.Context, a *models.Archivo) (*models.Archivo, error) {
	created := *a
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO archivos (nombre, ruta, tipo, tamano) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		a.Nombre, a.Ruta, a.Tipo, a.Tamano,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches a file record by id. Returns (nil, nil) when not found.
func (r *PostgresArchivoRepository) Get(ctx context.Context, id int64) (*models.Archivo, error) {
	var a models.Archivo
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, nombre, ruta, COALESCE(tipo, ''), tamano, created_at FROM archivos WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Nombre, &a.Ruta, &a.Tipo, &a.Tamano, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns file records ordered by id, applying offset/limit paging.
func (r *PostgresArchivoRepository) List(ctx context.Context, offset, limit int) ([]models.Archivo, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT id, nombre, ruta, COALESCE(tipo, ''), tamano, created_at
		 FROM archivos ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Archivo{}
	for rows.Next() {
		var a models.Archivo
		if err := rows.Scan(&a.ID, &a.Nombre, &a.Ruta, &a.Tipo, &a.Tamano, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Delete removes a file record by id.
func (r *PostgresArchivoRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM archivos WHERE id = $1`, id)
	return err
}
