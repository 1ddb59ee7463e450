package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"childcare/internal/models"
	"childcare/internal/validation"
)

// LinkService is the link manager contract the handler depends on
type LinkService[L any] interface {
	ListForChild(ctx context.Context, childID int64) ([]L, error)
	ListForParent(ctx context.Context, parentID int64) ([]L, error)
	LinkExists(ctx context.Context, parentID, childID int64) (bool, error)
	CreateLink(ctx context.Context, link L) (*L, error)
	UpdateLink(ctx context.Context, link L) error
	RemoveLink(ctx context.Context, parentID, childID int64) error
}

// LinkHandler serves one link resource. R is the request payload type.
type LinkHandler[L any, R any] struct {
	service       LinkService[L]
	parentSegment string
	parentParam   string
	validate      func(R) error
	convert       func(R) L
}

// NewGuardianChildLinkHandler serves /guardian-child-links
func NewGuardianChildLinkHandler(svc LinkService[models.GuardianChildLink]) *LinkHandler[models.GuardianChildLink, models.GuardianChildLinkRequest] {
	return &LinkHandler[models.GuardianChildLink, models.GuardianChildLinkRequest]{
		service:       svc,
		parentSegment: "guardian",
		parentParam:   "guardianId",
		validate:      validation.ValidateGuardianChildLink,
		convert:       models.NewGuardianChildLink,
	}
}

// NewAuthorizedPersonChildLinkHandler serves /authorized-person-child-links
func NewAuthorizedPersonChildLinkHandler(svc LinkService[models.AuthorizedPersonChildLink]) *LinkHandler[models.AuthorizedPersonChildLink, models.AuthorizedPersonChildLinkRequest] {
	return &LinkHandler[models.AuthorizedPersonChildLink, models.AuthorizedPersonChildLinkRequest]{
		service:       svc,
		parentSegment: "authorized-person",
		parentParam:   "authorizedPersonId",
		validate:      validation.ValidateAuthorizedPersonChildLink,
		convert:       models.NewAuthorizedPersonChildLink,
	}
}

// Routes registers the link endpoints on r
func (h *LinkHandler[L, R]) Routes(r chi.Router) {
	parent := "/" + h.parentSegment + "/{" + h.parentParam + "}"

	r.Get(parent, h.ListForParent)
	r.Get("/child/{childId}", h.ListForChild)
	r.Get(parent+"/child/{childId}", h.Exists)
	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Delete(parent+"/child/{childId}", h.Remove)
}

func (h *LinkHandler[L, R]) ListForParent(w http.ResponseWriter, r *http.Request) {
	parentID, err := pathID(r, h.parentParam)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	links, err := h.service.ListForParent(r.Context(), parentID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, links)
}

func (h *LinkHandler[L, R]) ListForChild(w http.ResponseWriter, r *http.Request) {
	childID, err := pathID(r, "childId")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	links, err := h.service.ListForChild(r.Context(), childID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, links)
}

// Exists answers with a bare JSON boolean
func (h *LinkHandler[L, R]) Exists(w http.ResponseWriter, r *http.Request) {
	parentID, childID, ok := h.pairFromPath(w, r)
	if !ok {
		return
	}

	exists, err := h.service.LinkExists(r.Context(), parentID, childID)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, exists)
}

func (h *LinkHandler[L, R]) Create(w http.ResponseWriter, r *http.Request) {
	link, ok := h.decodeLink(w, r)
	if !ok {
		return
	}

	created, err := h.service.CreateLink(r.Context(), link)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

func (h *LinkHandler[L, R]) Update(w http.ResponseWriter, r *http.Request) {
	link, ok := h.decodeLink(w, r)
	if !ok {
		return
	}

	if err := h.service.UpdateLink(r.Context(), link); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LinkHandler[L, R]) Remove(w http.ResponseWriter, r *http.Request) {
	parentID, childID, ok := h.pairFromPath(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveLink(r.Context(), parentID, childID); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LinkHandler[L, R]) decodeLink(w http.ResponseWriter, r *http.Request) (L, bool) {
	var link L

	req, err := decodeBody[R](w, r)
	if err != nil {
		respondWithError(w, r, err)
		return link, false
	}
	if err := h.validate(req); err != nil {
		respondWithError(w, r, badRequest(err.Error()))
		return link, false
	}
	return h.convert(req), true
}

func (h *LinkHandler[L, R]) pairFromPath(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	parentID, err := pathID(r, h.parentParam)
	if err != nil {
		respondWithError(w, r, err)
		return 0, 0, false
	}
	childID, err := pathID(r, "childId")
	if err != nil {
		respondWithError(w, r, err)
		return 0, 0, false
	}
	return parentID, childID, true
}
