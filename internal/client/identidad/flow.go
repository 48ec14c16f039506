// Package identidad implements the identity selection/creation flow: listing
// existing staff records, picking one as the acting identity, or creating a
// new one with an optional photo upload and a CV supplied as a link or an
// uploaded file.
package identidad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
)

// CVOption selects how the CV reference is provided.
type CVOption string

const (
	// CVLink supplies the CV as a raw URL; nothing is uploaded for it.
	CVLink CVOption = "link"
	// CVUpload uploads a local CV file and uses the resulting path.
	CVUpload CVOption = "upload"
)

// ErrNoSuchEntry is returned when selecting an index outside the loaded list.
var ErrNoSuchEntry = errors.New("no such identity entry")

// API is the remote surface the flow depends on.
type API interface {
	FetchPersonales(ctx context.Context) ([]models.Personal, error)
	CreatePersonal(ctx context.Context, p models.Personal) (*models.Personal, error)
	UploadFile(ctx context.Context, filename string, r io.Reader) (*models.Archivo, error)
}

// Session is the session surface the flow completes into.
type Session interface {
	SetPersonal(p models.Personal) error
}

// Form carries the fields of a new identity. The URL-ish fields stay optional;
// everything tagged required must be filled before any network call is made.
type Form struct {
	Nombre      string `validate:"required"`
	Cargo       string `validate:"required"`
	Descripcion string `validate:"required"`
	Email       string `validate:"required,email"`
	ORCID       string
	FechaAlta   string `validate:"required,datetime=2006-01-02"`

	// FotoPath is a local photo file to upload, or empty for none.
	FotoPath string
	// CVOption picks between CVLink and CVUpload.
	CVOption CVOption
	// CVLink is the raw CV URL used with the link option.
	CVLink string
	// CVPath is a local CV file to upload, used with the upload option.
	CVPath string
}

// Flow drives the chooser: it owns the fetched list and completes the session
// once an identity is selected or created.
type Flow struct {
	api      API
	session  Session
	validate *validator.Validate

	list []models.Personal
}

// New constructs a Flow over the given API and session.
func New(api API, session Session) *Flow {
	return &Flow{
		api:      api,
		session:  session,
		validate: validator.New(),
	}
}

// Load fetches the identity list. On failure the list stays empty and the
// error is returned for the caller to report; no navigation side effects.
func (f *Flow) Load(ctx context.Context) error {
	list, err := f.api.FetchPersonales(ctx)
	if err != nil {
		f.list = nil
		return fmt.Errorf("cargar identidades: %w", err)
	}
	f.list = list
	return nil
}

// List returns the currently loaded identity records.
func (f *Flow) List() []models.Personal {
	return f.list
}

// Select completes the session with the i-th loaded record (0-based).
// No server round-trip happens beyond the original list fetch.
func (f *Flow) Select(i int) (*models.Personal, error) {
	if i < 0 || i >= len(f.list) {
		return nil, ErrNoSuchEntry
	}
	p := f.list[i]
	if err := f.session.SetPersonal(p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create validates the form, performs the uploads strictly in sequence
// (photo first, then CV when the upload option is chosen), creates the
// record with the resulting references merged in, appends it to the list and
// completes the session with it. Any failure leaves the list and session
// untouched.
func (f *Flow) Create(ctx context.Context, form Form) (*models.Personal, error) {
	if err := f.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("formulario incompleto: %w", err)
	}

	fotoURL := ""
	if form.FotoPath != "" {
		a, err := f.uploadPath(ctx, form.FotoPath)
		if err != nil {
			return nil, fmt.Errorf("subir foto: %w", err)
		}
		fotoURL = a.Ruta
	}

	cvURL := ""
	switch form.CVOption {
	case CVUpload:
		if form.CVPath != "" {
			a, err := f.uploadPath(ctx, form.CVPath)
			if err != nil {
				return nil, fmt.Errorf("subir cv: %w", err)
			}
			cvURL = a.Ruta
		}
	default:
		cvURL = strings.TrimSpace(form.CVLink)
	}

	created, err := f.api.CreatePersonal(ctx, models.Personal{
		Nombre:      form.Nombre,
		Cargo:       form.Cargo,
		Descripcion: form.Descripcion,
		FotoURL:     fotoURL,
		CVURL:       cvURL,
		ORCID:       form.ORCID,
		Email:       form.Email,
		FechaAlta:   form.FechaAlta,
	})
	if err != nil {
		return nil, fmt.Errorf("crear identidad: %w", err)
	}

	if err := f.session.SetPersonal(*created); err != nil {
		return nil, err
	}
	f.list = append(f.list, *created)
	return created, nil
}

func (f *Flow) uploadPath(ctx context.Context, path string) (*models.Archivo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return f.api.UploadFile(ctx, filepath.Base(path), file)
}
