package audit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/httpserver"
	"github.com/wapptv/storefront/pkg/tenant"
)

// Handler provides the read-only audit log API.
type Handler struct {
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// NewHandler creates an audit log Handler.
func NewHandler(logger *slog.Logger, pool *pgxpool.Pool) *Handler {
	return &Handler{logger: logger, pool: pool}
}

// Routes returns a chi.Router with audit log routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireRole(auth.RoleAdmin))
	r.Get("/", h.handleList)
	return r
}

// LogEntry is one row of the audit trail as served to the admin UI.
type LogEntry struct {
	ID         uuid.UUID       `json:"id"`
	UserID     *uuid.UUID      `json:"user_id,omitempty"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID *uuid.UUID      `json:"resource_id,omitempty"`
	Detail     json.RawMessage `json:"detail,omitempty"`
	IPAddress  *netip.Addr     `json:"ip_address,omitempty"`
	UserAgent  *string         `json:"user_agent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	limit, offset, err := pageParams(r)
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	rows, err := h.pool.Query(r.Context(), `
		SELECT id, user_id, action, resource, resource_id, detail, ip_address, user_agent, created_at
		FROM audit_log
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, ti.ID, limit, offset)
	if err != nil {
		h.logger.Error("listing audit log", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list audit log")
		return
	}
	defer rows.Close()

	entries := []LogEntry{}
	for rows.Next() {
		var (
			e          LogEntry
			userID     pgtype.UUID
			resourceID pgtype.UUID
		)
		if err := rows.Scan(&e.ID, &userID, &e.Action, &e.Resource, &resourceID,
			&e.Detail, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			h.logger.Error("scanning audit log entry", "error", err)
			httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list audit log")
			return
		}
		if userID.Valid {
			id := uuid.UUID(userID.Bytes)
			e.UserID = &id
		}
		if resourceID.Valid {
			id := uuid.UUID(resourceID.Bytes)
			e.ResourceID = &id
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		h.logger.Error("listing audit log", "error", err)
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list audit log")
		return
	}

	httpserver.Respond(w, http.StatusOK, entries)
}

func pageParams(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPageSize {
			return 0, 0, fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}
