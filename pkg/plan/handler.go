package plan

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

// Handler provides HTTP handlers for the plans API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a plan Handler backed by the given global pool.
func NewHandler(logger *slog.Logger, audit *audit.Writer, pool *pgxpool.Pool, notifier realtime.Notifier) *Handler {
	return &Handler{
		logger:  logger,
		audit:   audit,
		service: NewService(pool, notifier, logger),
	}
}

// Routes returns a chi.Router with plan routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.With(auth.RequireMinRole(auth.RoleEditor)).Put("/", h.handleReplace)
	return r
}

// PlanInput is one plan in the replace payload.
type PlanInput struct {
	Name     string   `json:"name" validate:"required"`
	Price    string   `json:"price" validate:"required"`
	Period   string   `json:"period"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular"`
}

// ReplaceRequest is the JSON body for PUT /api/v1/plans. The stored list is
// replaced with exactly these plans, in order.
type ReplaceRequest struct {
	Plans []PlanInput `json:"plans" validate:"dive"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	items, err := h.service.List(r.Context(), ti.ID)
	if err != nil {
		h.logger.Error("listing plans", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list plans")
		return
	}

	httpserver.Respond(w, http.StatusOK, items)
}

func (h *Handler) handleReplace(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	var req ReplaceRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.Plans == nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "plans is required; send an empty list to clear")
		return
	}

	params := make([]InsertParams, len(req.Plans))
	for i, p := range req.Plans {
		params[i] = InsertParams{
			Name:     p.Name,
			Price:    p.Price,
			Period:   p.Period,
			Features: p.Features,
			Popular:  p.Popular,
		}
	}

	items, err := h.service.Replace(r.Context(), ti.ID, params)
	if err != nil {
		h.logger.Error("replacing plans", "error", err)
		telemetry.MutationFailuresTotal.WithLabelValues("plans").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to save plans")
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]any{"count": len(req.Plans)})
		h.audit.LogFromRequest(r, "replace", "plans", ti.ID, detail)
	}

	httpserver.Respond(w, http.StatusOK, items)
}
