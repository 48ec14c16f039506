package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

func setupArchivoMock(t *testing.T) (*PostgresArchivoRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresArchivoRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCreateArchivo(t *testing.T) {
	repo, mock, cleanup := setupArchivoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO archivos (nombre, ruta, tipo, tamano)`)).
		WithArgs("cv.pdf", "/uploads/u_cv.pdf", "application/pdf", int64(1024)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), time.Now()))

	created, err := repo.Create(context.Background(), &models.Archivo{
		Nombre: "cv.pdf", Ruta: "/uploads/u_cv.pdf", Tipo: "application/pdf", Tamano: 1024,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 4 || created.Ruta != "/uploads/u_cv.pdf" {
		t.Errorf("unexpected record: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetArchivo_NotFound(t *testing.T) {
	repo, mock, cleanup := setupArchivoMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .+ FROM archivos WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "ruta", "tipo", "tamano", "created_at"}))

	a, err := repo.Get(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil record, got %+v", a)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDeleteArchivo(t *testing.T) {
	repo, mock, cleanup := setupArchivoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM archivos WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
