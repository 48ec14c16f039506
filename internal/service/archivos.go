package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// MaxFileSize is the upload size cap (50 MB).
const MaxFileSize = 50 * 1024 * 1024

// ErrFileEmpty is returned when an upload contains no data.
var ErrFileEmpty = errors.New("no se ha proporcionado un archivo válido")

// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
var ErrFileTooLarge = errors.New("el archivo supera el tamaño máximo permitido")

// ArchivoRepository defines the persistence operations required by the
// archivo service.
type ArchivoRepository interface {
	Create(ctx context.Context, a *models.Archivo) (*models.Archivo, error)
	Get(ctx context.Context, id int64) (*models.Archivo, error)
	List(ctx context.Context, offset, limit int) ([]models.Archivo, error)
	Delete(ctx context.Context, id int64) error
}

// ArchivoService stores uploaded files on local disk under uuid-prefixed
// names and registers them in the repository. The recorded ruta is the
// public path the server serves the file under.
type ArchivoService struct {
	repo ArchivoRepository
	dir  string
}

// NewArchivoService constructs an ArchivoService storing files under dir.
// The directory is created if missing.
func NewArchivoService(repo ArchivoRepository, dir string) (*ArchivoService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ArchivoService{repo: repo, dir: dir}, nil
}

// Save streams an upload to disk and registers it. filename is the original
// client filename, used for its extension and kept in the record.
func (s *ArchivoService) Save(ctx context.Context, filename, contentType string, r io.Reader) (*models.Archivo, error) {
	if filename == "" {
		return nil, ErrFileEmpty
	}

	stored := uuid.NewString() + "_" + sanitizeFilename(filename)
	full := filepath.Join(s.dir, stored)

	f, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	// One byte past the cap distinguishes "too large" from "exactly at the cap".
	n, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if n == 0 {
		_ = os.Remove(full)
		return nil, ErrFileEmpty
	}
	if n > MaxFileSize {
		_ = os.Remove(full)
		return nil, ErrFileTooLarge
	}

	a := &models.Archivo{
		Nombre: filename,
		Ruta:   "/" + path.Join("uploads", stored),
		Tipo:   contentType,
		Tamano: n,
	}
	created, err := s.repo.Create(ctx, a)
	if err != nil {
		_ = os.Remove(full)
		return nil, fmt.Errorf("register file: %w", err)
	}
	return created, nil
}

// Get fetches a file record by id, or (nil, nil) when it does not exist.
func (s *ArchivoService) Get(ctx context.Context, id int64) (*models.Archivo, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of file records. limit defaults to 10.
func (s *ArchivoService) List(ctx context.Context, offset, limit int) ([]models.Archivo, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.List(ctx, offset, limit)
}

// Delete removes both the registry row and the file on disk.
// Returns the deleted record, or (nil, nil) when it does not exist.
func (s *ArchivoService) Delete(ctx context.Context, id int64) (*models.Archivo, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := os.Remove(s.DiskPath(a)); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("remove file: %w", err)
	}
	return a, nil
}

// DiskPath resolves the on-disk location of a stored file from its ruta.
func (s *ArchivoService) DiskPath(a *models.Archivo) string {
	return filepath.Join(s.dir, path.Base(a.Ruta))
}

// sanitizeFilename strips directory components and characters that would be
// awkward in a stored name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
