package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"childcare/internal/domainerrors"
	"childcare/internal/models"
	"childcare/internal/security"
)

// RouterConfig carries the services exposed over HTTP
type RouterConfig struct {
	GuardianLinks         LinkService[models.GuardianChildLink]
	AuthorizedPersonLinks LinkService[models.AuthorizedPersonChildLink]
	Children              RosterService[models.Child, models.ChildRequest]
	Guardians             RosterService[models.Guardian, models.GuardianRequest]
	AuthorizedPersons     RosterService[models.AuthorizedPerson, models.AuthorizedPersonRequest]
	DB                    Pinger

	// Gatherer enables /metrics when set
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	// RateLimiter throttles /api/v1 per client when set
	RateLimiter *security.RateLimiter
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP
	TrustProxy bool
}

// NewRouter builds the HTTP handler for the API
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(Logging)
	r.Use(Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(Timeout(cfg.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, r, domainerrors.New(domainerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithProblem(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not supported on "+r.URL.Path)
	})

	if cfg.DB != nil {
		r.Method(http.MethodGet, "/healthz", NewHealthHandler(cfg.DB))
	}
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(RateLimit(cfg.RateLimiter))
		}
		if cfg.GuardianLinks != nil {
			r.Route("/guardian-child-links", NewGuardianChildLinkHandler(cfg.GuardianLinks).Routes)
		}
		if cfg.AuthorizedPersonLinks != nil {
			r.Route("/authorized-person-child-links", NewAuthorizedPersonChildLinkHandler(cfg.AuthorizedPersonLinks).Routes)
		}
		if cfg.Children != nil {
			r.Route("/children", NewRosterHandler(cfg.Children).Routes)
		}
		if cfg.Guardians != nil {
			r.Route("/guardians", NewRosterHandler(cfg.Guardians).Routes)
		}
		if cfg.AuthorizedPersons != nil {
			r.Route("/authorized-persons", NewRosterHandler(cfg.AuthorizedPersons).Routes)
		}
	})

	return r
}
