package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/models"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/service"
)

// PersonalService defines the interface for staff-identity operations
// required by the PersonalHandler.
type PersonalService interface {
	Create(ctx context.Context, p *models.Personal) (*models.Personal, error)
	List(ctx context.Context, offset, limit int) ([]models.Personal, error)
	Get(ctx context.Context, id int64) (*models.Personal, error)
	Update(ctx context.Context, id int64, upd *models.Personal, partial bool) (*models.Personal, error)
	Delete(ctx context.Context, id int64) (*models.Personal, error)
}

// PersonalHandler handles HTTP requests for staff-identity records.
type PersonalHandler struct {
	PersonalService PersonalService
}

// Create handles POST /personal requests, returning the created record with 201.
func (h *PersonalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Personal
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	created, err := h.PersonalService.Create(r.Context(), &p)
	if err != nil {
		if errors.Is(err, service.ErrNombreRequired) || errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /personal requests with offset/limit paging.
func (h *PersonalHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.PersonalService.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /personal/{id} requests.
func (h *PersonalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.PersonalService.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Personal no encontrado")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Update handles PUT /personal/{id} (full update) and PATCH /personal/{id}
// (partial update) requests.
func (h *PersonalHandler) Update(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}

		var upd models.Personal
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}

		p, err := h.PersonalService.Update(r.Context(), id, &upd, partial)
		if err != nil {
			if errors.Is(err, service.ErrNombreRequired) || errors.Is(err, service.ErrEmailTaken) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if p == nil {
			writeError(w, http.StatusNotFound, "Personal no encontrado")
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

// Delete handles DELETE /personal/{id} requests, soft-deleting the record
// and returning it.
func (h *PersonalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.PersonalService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Personal no encontrado")
		return
	}

	writeJSON(w, http.StatusOK, p)
}
