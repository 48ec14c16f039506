package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/service"
)

// ArchivoService defines the interface for file-storage operations
// required by the ArchivoHandler.
type ArchivoService interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (*models.Archivo, error)
	Get(ctx context.Context, id int64) (*models.Archivo, error)
	List(ctx context.Context, offset, limit int) ([]models.Archivo, error)
	Delete(ctx context.Context, id int64) (*models.Archivo, error)
	DiskPath(a *models.Archivo) string
}

// ArchivoHandler handles HTTP requests for uploaded files.
type ArchivoHandler struct {
	ArchivoService ArchivoService
}

// Upload handles POST /archivos/upload requests. It expects a multipart body
// with a single file field named "file" and responds with the registered
// record (its ruta is the storable reference) and 201.
func (h *ArchivoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No se ha proporcionado un archivo válido")
		return
	}
	defer file.Close()

	a, err := h.ArchivoService.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, service.ErrFileEmpty) || errors.Is(err, service.ErrFileTooLarge) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

// Download handles GET /archivos/download/{id} requests, serving the stored
// file bytes under the original filename.
func (h *ArchivoHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.ArchivoService.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Archivo no encontrado")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+a.Nombre+`"`)
	http.ServeFile(w, r, h.ArchivoService.DiskPath(a))
}

// List handles GET /archivos/files/ requests with skip/limit paging.
func (h *ArchivoHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.ArchivoService.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Delete handles DELETE /archivos/files/{id} requests, removing the record
// and the stored file, and returning the removed record.
func (h *ArchivoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.ArchivoService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Archivo no encontrado")
		return
	}

	writeJSON(w, http.StatusOK, a)
}
