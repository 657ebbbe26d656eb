package contact

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/internal/audit"
	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/httpserver"
	"github.com/wapptv/storefront/internal/telemetry"
	"github.com/wapptv/storefront/pkg/realtime"
	"github.com/wapptv/storefront/pkg/tenant"
)

// Handler provides HTTP handlers for the contacts API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a contact Handler backed by the given global pool.
func NewHandler(logger *slog.Logger, audit *audit.Writer, pool *pgxpool.Pool, notifier realtime.Notifier) *Handler {
	return &Handler{
		logger:  logger,
		audit:   audit,
		service: NewService(pool, notifier, logger),
	}
}

// Routes returns a chi.Router with contact routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleList)
	r.With(auth.RequireMinRole(auth.RoleEditor)).Put("/", h.handleReplace)
	return r
}

// ReplaceRequest is the JSON body for PUT /api/v1/contacts. The stored group
// is replaced with exactly these phones, in order. An explicit empty list
// clears the group.
type ReplaceRequest struct {
	Phones     []string `json:"phones" validate:"dive,e164"`
	IsReseller bool     `json:"is_reseller"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	isReseller := false
	if raw := r.URL.Query().Get("is_reseller"); raw != "" {
		var err error
		isReseller, err = strconv.ParseBool(raw)
		if err != nil {
			httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "is_reseller must be a boolean")
			return
		}
	}

	items, err := h.service.List(r.Context(), ti.ID, isReseller)
	if err != nil {
		h.logger.Error("listing contacts", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list contacts")
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
	if req.Phones == nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "phones is required; send an empty list to clear")
		return
	}

	items, err := h.service.Replace(r.Context(), ti.ID, req.IsReseller, req.Phones)
	if err != nil {
		h.logger.Error("replacing contacts", "error", err)
		telemetry.MutationFailuresTotal.WithLabelValues("contacts").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to save contacts")
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]any{
			"is_reseller": req.IsReseller,
			"count":       len(req.Phones),
		})
		h.audit.LogFromRequest(r, "replace", "contacts", ti.ID, detail)
	}

	httpserver.Respond(w, http.StatusOK, items)
}
