package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RosterService is the record CRUD contract the handler depends on
type RosterService[T any, R any] interface {
	Create(ctx context.Context, req R) (*T, error)
	Get(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int64, req R) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// RosterHandler serves CRUD endpoints for children, guardians or authorized persons
type RosterHandler[T any, R any] struct {
	service RosterService[T, R]
}

func NewRosterHandler[T any, R any](svc RosterService[T, R]) *RosterHandler[T, R] {
	return &RosterHandler[T, R]{service: svc}
}

// Routes registers the record endpoints on r
func (h *RosterHandler[T, R]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *RosterHandler[T, R]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

func (h *RosterHandler[T, R]) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[R](w, r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	record, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, record)
}

func (h *RosterHandler[T, R]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

func (h *RosterHandler[T, R]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	req, err := decodeBody[R](w, r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	record, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

func (h *RosterHandler[T, R]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
