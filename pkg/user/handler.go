package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/internal/audit"
	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/httpserver"
	"github.com/wapptv/storefront/pkg/tenant"
)

// Handler provides HTTP handlers for the users API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a user Handler backed by the given global pool.
func NewHandler(logger *slog.Logger, audit *audit.Writer, pool *pgxpool.Pool) *Handler {
	return &Handler{
		logger:  logger,
		audit:   audit,
		service: NewService(pool, logger),
	}
}

// Routes returns a chi.Router with all user routes mounted. Managing users is
// an admin-only concern.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireRole(auth.RoleAdmin))
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
		r.Delete("/", h.handleDeactivate)
	})
	return r
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	var req CreateRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), ti.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			httpserver.RespondError(w, http.StatusBadRequest, "bad_request", err.Error())
		case errors.Is(err, ErrEmailTaken):
			httpserver.RespondError(w, http.StatusConflict, "conflict", "email already in use")
		default:
			h.logger.Error("creating user", "error", err)
			httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to create user")
		}
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]string{"email": resp.Email, "role": resp.Role})
		h.audit.LogFromRequest(r, "create", "user", resp.ID, detail)
	}

	httpserver.Respond(w, http.StatusCreated, resp)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	items, err := h.service.List(r.Context(), ti.ID)
	if err != nil {
		h.logger.Error("listing users", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list users")
		return
	}

	httpserver.Respond(w, http.StatusOK, map[string]any{
		"users": items,
		"count": len(items),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "invalid user ID")
		return
	}

	resp, err := h.service.Get(r.Context(), ti.ID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			httpserver.RespondError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		h.logger.Error("getting user", "error", err, "id", id)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to get user")
		return
	}

	httpserver.Respond(w, http.StatusOK, resp)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "invalid user ID")
		return
	}

	var req UpdateRequest
	if !httpserver.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), ti.ID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			httpserver.RespondError(w, http.StatusBadRequest, "bad_request", err.Error())
		case errors.Is(err, pgx.ErrNoRows):
			httpserver.RespondError(w, http.StatusNotFound, "not_found", "user not found")
		default:
			h.logger.Error("updating user", "error", err, "id", id)
			httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to update user")
		}
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]string{"email": resp.Email, "role": resp.Role})
		h.audit.LogFromRequest(r, "update", "user", id, detail)
	}

	httpserver.Respond(w, http.StatusOK, resp)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "invalid user ID")
		return
	}

	// The last admin deactivating themselves would lock the tenant out.
	if identity := auth.FromContext(r.Context()); identity != nil && identity.UserID != nil && *identity.UserID == id {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "cannot deactivate your own account")
		return
	}

	if err := h.service.Deactivate(r.Context(), ti.ID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			httpserver.RespondError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		h.logger.Error("deactivating user", "error", err, "id", id)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to deactivate user")
		return
	}

	if h.audit != nil {
		h.audit.LogFromRequest(r, "deactivate", "user", id, nil)
	}

	httpserver.Respond(w, http.StatusNoContent, nil)
}
