package message

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

// Handler provides HTTP handlers for the messages API.
type Handler struct {
	logger  *slog.Logger
	audit   *audit.Writer
	service *Service
}

// NewHandler creates a message Handler backed by the given global pool.
func NewHandler(logger *slog.Logger, audit *audit.Writer, pool *pgxpool.Pool, notifier realtime.Notifier) *Handler {
	return &Handler{
		logger:  logger,
		audit:   audit,
		service: NewService(pool, notifier, logger),
	}
}

// Routes returns a chi.Router with message routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleGet)
	r.With(auth.RequireMinRole(auth.RoleEditor)).Put("/", h.handleSave)
	return r
}

// SaveRequest is the JSON body for PUT /api/v1/messages.
type SaveRequest struct {
	Messages    map[string]string `json:"messages"`
	ButtonTexts map[string]string `json:"button_texts"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	texts, err := h.service.Get(r.Context(), ti.ID)
	if err != nil {
		h.logger.Error("getting messages", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to get messages")
		return
	}

	httpserver.Respond(w, http.StatusOK, texts)
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
	if len(req.Messages) == 0 && len(req.ButtonTexts) == 0 {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "nothing to save")
		return
	}

	if err := h.service.Save(r.Context(), ti.ID, req.Messages, req.ButtonTexts); err != nil {
		if errors.Is(err, ErrUnknownType) {
			httpserver.RespondError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		h.logger.Error("saving messages", "error", err)
		telemetry.MutationFailuresTotal.WithLabelValues("messages").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to save messages")
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]any{
			"messages": len(req.Messages),
			"buttons":  len(req.ButtonTexts),
		})
		h.audit.LogFromRequest(r, "save", "messages", ti.ID, detail)
	}

	httpserver.Respond(w, http.StatusOK, map[string]string{"status": "saved"})
}
