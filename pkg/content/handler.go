package content

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/httpserver"
	"github.com/wapptv/storefront/pkg/message"
	"github.com/wapptv/storefront/pkg/tenant"
	"github.com/wapptv/storefront/pkg/whatsapp"
)

// Handler serves the assembled content document. The same document backs the
// public site (tenant resolved from the Host header) and the admin preview
// (tenant resolved from the session).
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler creates a content Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// PublicRoutes returns the routes served under the site's hostname.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleGet)
	r.Get("/whatsapp-link", h.handleWhatsAppLink)
	return r
}

// AdminRoutes returns the routes served under /api/v1/content.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleGet)
	r.With(auth.RequireMinRole(auth.RoleEditor)).Post("/refresh", h.handleRefresh)
	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusServiceUnavailable, "tenant_unresolved", "no tenant for this request")
		return
	}

	httpserver.Respond(w, http.StatusOK, h.service.Get(r.Context(), ti.ID))
}

// handleWhatsAppLink builds a wa.me link for one of the tenant's numbers.
// The contact is picked uniformly at random on every request so inbound
// conversations spread across the team.
func (h *Handler) handleWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusServiceUnavailable, "tenant_unresolved", "no tenant for this request")
		return
	}

	msgType := r.URL.Query().Get("type")
	if msgType == "" {
		msgType = message.TypeDefault
	}
	if !message.IsValidType(msgType) {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "unknown message type")
		return
	}

	c := h.service.Get(r.Context(), ti.ID)

	phones := c.Contacts
	if msgType == message.TypeReseller {
		phones = c.ResellerContacts
	}

	link, err := whatsapp.PickLink(phones, c.Messages[msgType])
	if err != nil {
		httpserver.RespondError(w, http.StatusNotFound, "not_found", "no contact numbers configured")
		return
	}

	httpserver.Respond(w, http.StatusOK, map[string]string{
		"url":  link,
		"type": msgType,
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	h.service.cache.Invalidate(ti.ID)
	httpserver.Respond(w, http.StatusOK, h.service.Refresh(r.Context(), ti.ID))
}
