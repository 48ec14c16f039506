package service

import (
	"context"
	"errors"
	"testing"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// fakePersonalRepo implements PersonalRepository for testing.
type fakePersonalRepo struct {
	emailInUse bool
	existing   *models.Personal

	created *models.Personal
	updated *models.Personal
}

func (f *fakePersonalRepo) EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error) {
	return f.emailInUse, nil
}

func (f *fakePersonalRepo) Create(ctx context.Context, p *models.Personal) (*models.Personal, error) {
	created := *p
	created.ID = 1
	f.created = &created
	return &created, nil
}

func (f *fakePersonalRepo) List(ctx context.Context, offset, limit int) ([]models.Personal, error) {
	return nil, nil
}

func (f *fakePersonalRepo) Get(ctx context.Context, id int64) (*models.Personal, error) {
	return f.existing, nil
}

func (f *fakePersonalRepo) Update(ctx context.Context, p *models.Personal) (*models.Personal, error) {
	f.updated = p
	return p, nil
}

func (f *fakePersonalRepo) SoftDelete(ctx context.Context, id int64) (*models.Personal, error) {
	return f.existing, nil
}

func TestCreate_RequiresNombre(t *testing.T) {
	s := NewPersonalService(&fakePersonalRepo{})
	_, err := s.Create(context.Background(), &models.Personal{Email: "a@b.c"})
	if !errors.Is(err, ErrNombreRequired) {
		t.Errorf("expected ErrNombreRequired, got %v", err)
	}
}

func TestCreate_RejectsDuplicateEmail(t *testing.T) {
	s := NewPersonalService(&fakePersonalRepo{emailInUse: true})
	_, err := s.Create(context.Background(), &models.Personal{Nombre: "Ana", Email: "a@b.c"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &fakePersonalRepo{}
	s := NewPersonalService(repo)

	created, err := s.Create(context.Background(), &models.Personal{Nombre: "Ana", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected assigned id, got %+v", created)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	s := NewPersonalService(&fakePersonalRepo{existing: nil})
	p, err := s.Update(context.Background(), 9, &models.Personal{Nombre: "X"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing record, got %+v", p)
	}
}

func TestUpdate_PartialMergesOnlyProvidedFields(t *testing.T) {
	repo := &fakePersonalRepo{existing: &models.Personal{
		ID: 1, Nombre: "Ana", Cargo: "Ingeniera", Email: "ana@agua.gub.uy", FechaAlta: "2024-03-01",
	}}
	s := NewPersonalService(repo)

	updated, err := s.Update(context.Background(), 1, &models.Personal{Cargo: "Directora"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Cargo != "Directora" {
		t.Errorf("expected cargo updated, got %q", updated.Cargo)
	}
	if updated.Nombre != "Ana" || updated.Email != "ana@agua.gub.uy" {
		t.Errorf("untouched fields must survive a partial update: %+v", updated)
	}
}

func TestUpdate_FullOverwrites(t *testing.T) {
	repo := &fakePersonalRepo{existing: &models.Personal{
		ID: 1, Nombre: "Ana", Cargo: "Ingeniera", Email: "ana@agua.gub.uy",
	}}
	s := NewPersonalService(repo)

	updated, err := s.Update(context.Background(), 1, &models.Personal{
		Nombre: "Ana María", Email: "ana@agua.gub.uy",
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Cargo != "" {
		t.Errorf("full update must overwrite omitted fields, got cargo %q", updated.Cargo)
	}
}

func TestList_DefaultsLimit(t *testing.T) {
	s := NewPersonalService(&fakePersonalRepo{})
	if _, err := s.List(context.Background(), 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
