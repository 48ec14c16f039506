package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// PostgresPersonalRepository implements staff-identity persistence using a
// PostgreSQL database. Dates are read back as YYYY-MM-DD text so the wire
// format matches what the client stores.
type PostgresPersonalRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresPersonalRepository creates a new PostgresPersonalRepository with
// the given database connection.
func NewPostgresPersonalRepository(db *sql.DB) *PostgresPersonalRepository {
	return &PostgresPersonalRepository{DB: db}
}

const personalColumns = `id, nombre, COALESCE(cargo, ''), COALESCE(descripcion, ''),
	COALESCE(foto_url, ''), COALESCE(cv_url, ''), COALESCE(orcid, ''), COALESCE(email, ''),
	COALESCE(to_char(fecha_alta, 'YYYY-MM-DD'), ''), COALESCE(to_char(fecha_baja, 'YYYY-MM-DD'), ''),
	created_at, updated_at`

func scanPersonal(row interface{ Scan(...any) error }) (*models.Personal, error) {
	var p models.Personal
	err := row.Scan(
		&p.ID, &p.Nombre, &p.Cargo, &p.Descripcion,
		&p.FotoURL, &p.CVURL, &p.ORCID, &p.Email,
		&p.FechaAlta, &p.FechaBaja,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// EmailInUse reports whether a personal record other than excludeID already
// uses the given email. Empty emails are never considered in use.
func (r *PostgresPersonalRepository) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	if email == "" {
		return false, nil
	}
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM personal WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new personal record and returns it with server-assigned
// id and timestamps.
func (r *PostgresPersonalRepository) Create(ctx context.Context, p *models.Personal) (*models.Personal, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO personal (nombre, cargo, descripcion, foto_url, cv_url, orcid, email, fecha_alta)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::date)
		 RETURNING `+personalColumns,
		p.Nombre, p.Cargo, p.Descripcion, p.FotoURL, p.CVURL, p.ORCID, p.Email, p.FechaAlta,
	)
	return scanPersonal(row)
}

// List returns personal records ordered by id, applying offset/limit paging.
func (r *PostgresPersonalRepository) List(ctx context.Context, offset, limit int) ([]models.Personal, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT `+personalColumns+` FROM personal ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Personal{}
	for rows.Next() {
		p, err := scanPersonal(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// Get fetches a personal record by id. Returns (nil, nil) when not found.
func (r *PostgresPersonalRepository) Get(ctx context.Context, id int64) (*models.Personal, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`SELECT `+personalColumns+` FROM personal WHERE id = $1`,
		id,
	)
	p, err := scanPersonal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// Update overwrites the mutable fields of the record with id p.ID and bumps
// updated_at. Returns (nil, nil) when the record does not exist.
func (r *PostgresPersonalRepository) Update(ctx context.Context, p *models.Personal) (*models.Personal, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`UPDATE personal
		 SET nombre = $2, cargo = $3, descripcion = $4, foto_url = $5, cv_url = $6,
		     orcid = $7, email = $8, fecha_alta = NULLIF($9, '')::date, updated_at = now()
		 WHERE id = $1
		 RETURNING `+personalColumns,
		p.ID, p.Nombre, p.Cargo, p.Descripcion, p.FotoURL, p.CVURL, p.ORCID, p.Email, p.FechaAlta,
	)
	updated, err := scanPersonal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return updated, err
}

// SoftDelete sets fecha_baja on the record instead of removing the row.
// Returns the updated record, or (nil, nil) when it does not exist.
func (r *PostgresPersonalRepository) SoftDelete(ctx context.Context, id int64) (*models.Personal, error) {
	row := r.DB.QueryRowContext(
		ctx,
		`UPDATE personal SET fecha_baja = now()::date, updated_at = now()
		 WHERE id = $1
		 RETURNING `+personalColumns,
		id,
	)
	p, err := scanPersonal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}
