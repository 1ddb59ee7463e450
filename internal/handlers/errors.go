package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"childcare/internal/domainerrors"
)

const problemContentType = "application/problem+json"

// problem is the error body returned for every failed request
type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// respondWithError writes err as a problem document. Internal failures are
// logged with their cause; clients only see a generic detail.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	code := domainerrors.CodeOf(err)
	status := code.HTTPStatus()

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request failed")
	}

	respondWithProblem(w, status, string(code), domainerrors.MessageOf(err))
}

func respondWithProblem(w http.ResponseWriter, status int, kind, detail string) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{
		Type:   kind,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}); err != nil {
		log.Error().Err(err).Msg("failed to encode problem response")
	}
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func badRequest(message string) error {
	return domainerrors.New(domainerrors.CodeBadRequest, message)
}
