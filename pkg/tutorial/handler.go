package tutorial

import (
	"encoding/json"
	"errors"
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

// Handler provides HTTP handlers for the tutorials API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a tutorial Handler backed by the given global pool.
func NewHandler(logger *slog.Logger, audit *audit.Writer, pool *pgxpool.Pool, notifier realtime.Notifier) *Handler {
	return &Handler{
		logger:  logger,
		audit:   audit,
		service: NewService(pool, notifier, logger),
	}
}

// Routes returns a chi.Router with tutorial routes mounted. The guide type is
// part of the path: /tutorials/app, /tutorials/tv.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/{type}", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(auth.RequireMinRole(auth.RoleEditor)).Put("/", h.handleReplace)
	})
	return r
}

// StepInput is one step in the replace payload.
type StepInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	LinkURL     string `json:"link_url" validate:"omitempty,url"`
}

// ReplaceRequest is the JSON body for PUT /api/v1/tutorials/{type}.
type ReplaceRequest struct {
	Steps []StepInput `json:"steps" validate:"dive"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	items, err := h.service.List(r.Context(), ti.ID, chi.URLParam(r, "type"))
	if err != nil {
		if errors.Is(err, ErrUnknownType) {
			httpserver.RespondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		h.logger.Error("listing tutorials", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list tutorials")
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

	tutorialType := chi.URLParam(r, "type")
	if !IsValidType(tutorialType) {
		httpserver.RespondError(w, http.StatusNotFound, "not_found", "unknown tutorial type")
		return
	}

	var req ReplaceRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}
	if req.Steps == nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "steps is required; send an empty list to clear")
		return
	}

	params := make([]InsertParams, len(req.Steps))
	for i, step := range req.Steps {
		params[i] = InsertParams{
			Title:       step.Title,
			Description: step.Description,
			ImageURL:    step.ImageURL,
			LinkURL:     step.LinkURL,
		}
	}

	items, err := h.service.Replace(r.Context(), ti.ID, tutorialType, params)
	if err != nil {
		h.logger.Error("replacing tutorials", "error", err)
		telemetry.MutationFailuresTotal.WithLabelValues("tutorials").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to save tutorials")
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]any{"type": tutorialType, "count": len(req.Steps)})
		h.audit.LogFromRequest(r, "replace", "tutorials", ti.ID, detail)
	}

	httpserver.Respond(w, http.StatusOK, items)
}
