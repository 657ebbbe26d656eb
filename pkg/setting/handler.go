package setting

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/internal/audit"
	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/httpserver"
	"github.com/wapptv/storefront/internal/telemetry"
	"github.com/wapptv/storefront/pkg/realtime"
	"github.com/wapptv/storefront/pkg/tenant"
)

// Handler provides HTTP handlers for the settings API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a setting Handler backed by the given global pool.
func NewHandler(logger *slog.Logger, audit *audit.Writer, pool *pgxpool.Pool, notifier realtime.Notifier) *Handler {
	return &Handler{
		logger:  logger,
		audit:   audit,
		service: NewService(pool, notifier, logger),
	}
}

// Routes returns a chi.Router with settings routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.With(auth.RequireMinRole(auth.RoleEditor)).Put("/", h.handleSave)
	return r
}

// SaveRequest is the JSON body for PUT /api/v1/settings.
type SaveRequest struct {
	Settings map[string]string `json:"settings" validate:"required,min=1"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	items, err := h.service.List(r.Context(), ti.ID)
	if err != nil {
		h.logger.Error("listing settings", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list settings")
		return
	}

	httpserver.Respond(w, http.StatusOK, items)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	var req SaveRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Save(r.Context(), ti.ID, req.Settings); err != nil {
		h.logger.Error("saving settings", "error", err)
		telemetry.MutationFailuresTotal.WithLabelValues("admin_settings").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to save settings")
		return
	}

	if h.audit != nil {
		keys := make([]string, 0, len(req.Settings))
		for k := range req.Settings {
			keys = append(keys, k)
		}
		detail, _ := json.Marshal(map[string]any{"keys": keys})
		h.audit.LogFromRequest(r, "save", "admin_settings", ti.ID, detail)
	}

	httpserver.Respond(w, http.StatusOK, map[string]string{"status": "saved"})
}
