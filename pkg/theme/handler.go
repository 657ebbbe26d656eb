package theme

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/internal/audit"
	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/httpserver"
	"github.com/wapptv/storefront/internal/telemetry"
	"github.com/wapptv/storefront/pkg/realtime"
)

// Handler provides HTTP handlers for the themes API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a theme Handler backed by the given global pool.
func NewHandler(logger *slog.Logger, audit *audit.Writer, pool *pgxpool.Pool, notifier realtime.Notifier) *Handler {
	return &Handler{
		logger:  logger,
		audit:   audit,
		service: NewService(pool, notifier, logger),
	}
}

// Routes returns a chi.Router with theme routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.With(auth.RequireMinRole(auth.RoleEditor)).Post("/{id}/activate", h.handleActivate)
	return r
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("listing themes", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list themes")
		return
	}

	httpserver.Respond(w, http.StatusOK, items)
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "invalid theme ID")
		return
	}

	activated, err := h.service.Activate(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpserver.RespondError(w, http.StatusNotFound, "not_found", "theme not found")
			return
		}
		h.logger.Error("activating theme", "error", err, "id", id)
		telemetry.MutationFailuresTotal.WithLabelValues("theme_settings").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to activate theme")
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]string{"slug": activated.Slug})
		h.audit.LogFromRequest(r, "activate", "theme_settings", id, detail)
	}

	httpserver.Respond(w, http.StatusOK, activated)
}
