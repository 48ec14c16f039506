package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// ErrNombreRequired is returned when a personal record is created without a name.
var ErrNombreRequired = errors.New("el campo nombre es obligatorio")

// ErrEmailTaken is returned when another live record already uses the email.
var ErrEmailTaken = errors.New("ya existe un personal con ese email")

// PersonalRepository defines the persistence operations required by the
// personal service.
type PersonalRepository interface {
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, p *models.Personal) (*models.Personal, error)
	List(ctx context.Context, offset, limit int) ([]models.Personal, error)
	Get(ctx context.Context, id int64) (*models.Personal, error)
	Update(ctx context.Context, p *models.Personal) (*models.Personal, error)
	SoftDelete(ctx context.Context, id int64) (*models.Personal, error)
}

// PersonalService implements staff-identity operations by delegating
// to a PersonalRepository.
type PersonalService struct {
	repo PersonalRepository
}

// NewPersonalService constructs a new PersonalService using the provided repository.
func NewPersonalService(repo PersonalRepository) *PersonalService {
	return &PersonalService{repo: repo}
}

// Create validates and inserts a new personal record.
// The name is mandatory and the email, when present, must be unique.
func (s *PersonalService) Create(ctx context.Context, p *models.Personal) (*models.Personal, error) {
	if p.Nombre == "" {
		return nil, ErrNombreRequired
	}
	taken, err := s.repo.EmailInUse(ctx, p.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}
	return s.repo.Create(ctx, p)
}

// List returns a page of personal records. limit defaults to 100.
func (s *PersonalService) List(ctx context.Context, offset, limit int) ([]models.Personal, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

// Get fetches a personal record by id, or (nil, nil) when it does not exist.
func (s *PersonalService) Get(ctx context.Context, id int64) (*models.Personal, error) {
	return s.repo.Get(ctx, id)
}

// Update applies upd to the record with the given id. With partial set, only
// non-empty fields of upd replace the stored values; otherwise upd overwrites
// all mutable fields. Returns (nil, nil) when the record does not exist.
func (s *PersonalService) Update(ctx context.Context, id int64, upd *models.Personal, partial bool) (*models.Personal, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	next := *upd
	next.ID = id
	if partial {
		next = *existing
		mergePersonal(&next, upd)
	}

	if next.Email != "" && next.Email != existing.Email {
		taken, err := s.repo.EmailInUse(ctx, next.Email, id)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}
	if next.Nombre == "" {
		return nil, ErrNombreRequired
	}

	return s.repo.Update(ctx, &next)
}

// Delete soft-deletes the record by setting its fecha_baja.
// Returns (nil, nil) when the record does not exist.
func (s *PersonalService) Delete(ctx context.Context, id int64) (*models.Personal, error) {
	return s.repo.SoftDelete(ctx, id)
}

// mergePersonal copies the non-empty fields of src onto dst.
func mergePersonal(dst, src *models.Personal) {
	if src.Nombre != "" {
		dst.Nombre = src.Nombre
	}
	if src.Cargo != "" {
		dst.Cargo = src.Cargo
	}
	if src.Descripcion != "" {
		dst.Descripcion = src.Descripcion
	}
	if src.FotoURL != "" {
		dst.FotoURL = src.FotoURL
	}
	if src.CVURL != "" {
		dst.CVURL = src.CVURL
	}
	if src.ORCID != "" {
		dst.ORCID = src.ORCID
	}
	if src.Email != "" {
		dst.Email = src.Email
	}
	if src.FechaAlta != "" {
		dst.FechaAlta = src.FechaAlta
	}
}
