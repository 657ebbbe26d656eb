package reseller

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

// Handler provides HTTP handlers for the reseller settings API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a reseller Handler backed by the given global pool.
func NewHandler(logger *slog.Logger, audit *audit.Writer, pool *pgxpool.Pool, notifier realtime.Notifier) *Handler {
	return &Handler{
		logger:  logger,
		audit:   audit,
		service: NewService(pool, notifier, logger),
	}
}

// Routes returns a chi.Router with reseller settings routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleGet)
	r.With(auth.RequireMinRole(auth.RoleEditor)).Put("/", h.handleSave)
	return r
}

// SaveRequest is the JSON body for PUT /api/v1/reseller.
type SaveRequest struct {
	ShowSection bool   `json:"show_section"`
	Tiers       []Tier `json:"tiers" validate:"dive"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	settings, err := h.service.Get(r.Context(), ti.ID)
	if err != nil {
		h.logger.Error("getting reseller settings", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to get reseller settings")
		return
	}

	httpserver.Respond(w, http.StatusOK, settings)
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

	settings, err := h.service.Save(r.Context(), ti.ID, req.ShowSection, req.Tiers)
	if err != nil {
		h.logger.Error("saving reseller settings", "error", err)
		telemetry.MutationFailuresTotal.WithLabelValues("reseller_settings").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to save reseller settings")
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]any{
			"show_section": req.ShowSection,
			"tiers":        len(req.Tiers),
		})
		h.audit.LogFromRequest(r, "save", "reseller_settings", ti.ID, detail)
	}

	httpserver.Respond(w, http.StatusOK, settings)
}
