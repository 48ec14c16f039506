package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/service"
)

// fakeArchivoService implements ArchivoService for testing.
type fakeArchivoService struct {
	saved   *models.Archivo
	saveErr error
	record  *models.Archivo
}

func (f *fakeArchivoService) Save(ctx context.Context, filename, contentType string, r io.Reader) (*models.Archivo, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	data, _ := io.ReadAll(r)
	f.saved = &models.Archivo{ID: 1, Nombre: filename, Ruta: "/uploads/u_" + filename, Tipo: contentType, Tamano: int64(len(data))}
	return f.saved, nil
}

func (f *fakeArchivoService) Get(ctx context.Context, id int64) (*models.Archivo, error) {
	return f.record, nil
}

func (f *fakeArchivoService) List(ctx context.Context, offset, limit int) ([]models.Archivo, error) {
	return nil, nil
}

func (f *fakeArchivoService) Delete(ctx context.Context, id int64) (*models.Archivo, error) {
	return f.record, nil
}

func (f *fakeArchivoService) DiskPath(a *models.Archivo) string { return "" }

// newArchivoRouter mounts the handler under a chi router so URL params resolve.
func newArchivoRouter(svc ArchivoService) http.Handler {
	h := &ArchivoHandler{ArchivoService: svc}
	r := chi.NewRouter()
	r.Post("/archivos/upload", h.Upload)
	r.Get("/archivos/download/{id}", h.Download)
	r.Get("/archivos/files/", h.List)
	r.Delete("/archivos/files/{id}", h.Delete)
	return r
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestArchivoUpload_Created(t *testing.T) {
	svc := &fakeArchivoService{}
	h := &ArchivoHandler{ArchivoService: svc}

	body, contentType := multipartBody(t, "file", "cv.pdf", "%PDF-1.4")
	req := httptest.NewRequest("POST", "/archivos/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var a models.Archivo
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.Ruta != "/uploads/u_cv.pdf" {
		t.Errorf("unexpected ruta %q", a.Ruta)
	}
	if svc.saved.Tamano != 8 {
		t.Errorf("expected 8 bytes streamed to the service, got %d", svc.saved.Tamano)
	}
}

func TestArchivoUpload_MissingFileField(t *testing.T) {
	h := &ArchivoHandler{ArchivoService: &fakeArchivoService{}}

	body, contentType := multipartBody(t, "wrong", "cv.pdf", "data")
	req := httptest.NewRequest("POST", "/archivos/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestArchivoUpload_TooLarge(t *testing.T) {
	h := &ArchivoHandler{ArchivoService: &fakeArchivoService{saveErr: service.ErrFileTooLarge}}

	body, contentType := multipartBody(t, "file", "big.bin", "data")
	req := httptest.NewRequest("POST", "/archivos/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestArchivoDelete_NotFound(t *testing.T) {
	router := newArchivoRouter(&fakeArchivoService{record: nil})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/archivos/files/9", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestArchivoDownload_NotFound(t *testing.T) {
	router := newArchivoRouter(&fakeArchivoService{record: nil})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/archivos/download/9", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestArchivoDelete_ReturnsRecord(t *testing.T) {
	record := &models.Archivo{ID: 9, Nombre: "cv.pdf", Ruta: "/uploads/u_cv.pdf"}
	router := newArchivoRouter(&fakeArchivoService{record: record})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/archivos/files/9", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var a models.Archivo
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.ID != 9 || a.Nombre != "cv.pdf" {
		t.Errorf("unexpected record %+v", a)
	}
}
