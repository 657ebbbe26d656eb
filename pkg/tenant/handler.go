package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/httpserver/respond"
)

var slugRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]{1,62}$`)

// Handler provides the admin HTTP API for managing tenants. Mounted behind
// the admin role only.
type Handler struct {
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// NewHandler creates a tenant Handler backed by the global pool.
func NewHandler(logger *slog.Logger, pool *pgxpool.Pool) *Handler {
	return &Handler{logger: logger, pool: pool}
}

// Routes returns a chi.Router with tenant management routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireRole(auth.RoleAdmin))
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Route("/{id}", func(r chi.Router) {
		r.Put("/", h.handleUpdate)
		r.Delete("/", h.handleDelete)
	})
	return r
}

// CreateRequest is the JSON body for POST /api/v1/tenants.
type CreateRequest struct {
	Name      string  `json:"name" validate:"required,min=2"`
	Slug      string  `json:"slug" validate:"required"`
	Domain    string  `json:"domain" validate:"required,hostname"`
	Subdomain *string `json:"subdomain" validate:"omitempty,hostname"`
	Active    bool    `json:"active"`
}

// UpdateRequest is the JSON body for PUT /api/v1/tenants/:id.
type UpdateRequest struct {
	Name      string  `json:"name" validate:"required,min=2"`
	Domain    string  `json:"domain" validate:"required,hostname"`
	Subdomain *string `json:"subdomain" validate:"omitempty,hostname"`
	Active    bool    `json:"active"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := NewStore(h.pool).List(r.Context())
	if err != nil {
		h.logger.Error("listing tenants", "error", err)
		respond.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list tenants")
		return
	}
	if items == nil {
		items = []Row{}
	}
	respond.Respond(w, http.StatusOK, items)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !respond.DecodeAndValidate(w, r, &req) {
		return
	}
	if !slugRegex.MatchString(req.Slug) {
		respond.RespondError(w, http.StatusBadRequest, "bad_request", "invalid tenant slug")
		return
	}

	row, err := NewStore(h.pool).Create(r.Context(), CreateParams{
		Name:      req.Name,
		Slug:      req.Slug,
		Domain:    req.Domain,
		Subdomain: req.Subdomain,
		Active:    req.Active,
	})
	if err != nil {
		h.logger.Error("creating tenant", "error", err)
		respond.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to create tenant")
		return
	}

	respond.Respond(w, http.StatusCreated, row)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.RespondError(w, http.StatusBadRequest, "bad_request", "invalid tenant ID")
		return
	}

	var req UpdateRequest
	if !respond.DecodeAndValidate(w, r, &req) {
		return
	}

	row, updateErr := NewStore(h.pool).Update(r.Context(), UpdateParams{
		ID:        id,
		Name:      req.Name,
		Domain:    req.Domain,
		Subdomain: req.Subdomain,
		Active:    req.Active,
	})
	if updateErr != nil {
		if errors.Is(updateErr, pgx.ErrNoRows) {
			respond.RespondError(w, http.StatusNotFound, "not_found", "tenant not found")
			return
		}
		h.logger.Error("updating tenant", "error", updateErr, "id", id)
		respond.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to update tenant")
		return
	}

	respond.Respond(w, http.StatusOK, row)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.RespondError(w, http.StatusBadRequest, "bad_request", "invalid tenant ID")
		return
	}

	if err := NewStore(h.pool).Delete(r.Context(), id); err != nil {
		h.logger.Error("deleting tenant", "error", err, "id", id)
		respond.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to delete tenant")
		return
	}

	respond.Respond(w, http.StatusNoContent, nil)
}
