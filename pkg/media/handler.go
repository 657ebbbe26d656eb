package media

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wapptv/storefront/internal/audit"
	"github.com/wapptv/storefront/internal/auth"
	"github.com/wapptv/storefront/internal/httpserver"
	"github.com/wapptv/storefront/internal/telemetry"
	"github.com/wapptv/storefront/pkg/setting"
	"github.com/wapptv/storefront/pkg/tenant"
)

// maxUploadBytes caps uploaded assets at 5 MiB.
const maxUploadBytes = 5 << 20

// Handler provides HTTP handlers for asset uploads. Uploaded URLs are written
// into the tenant's settings so the public content document picks them up.
type Handler struct {
	logger   *slog.Logger
	audit    *audit.Writer
	store    *DiskStore
	settings *setting.Service
}

// NewHandler creates a media Handler.
func NewHandler(logger *slog.Logger, audit *audit.Writer, store *DiskStore, settings *setting.Service) *Handler {
	return &Handler{
		logger:   logger,
		audit:    audit,
		store:    store,
		settings: settings,
	}
}

// Routes returns a chi.Router with upload routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(auth.RequireMinRole(auth.RoleEditor)).Post("/{kind}", h.handleUpload)
	return r
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ti := tenant.FromContext(r.Context())
	if ti == nil {
		httpserver.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing tenant")
		return
	}

	kind := chi.URLParam(r, "kind")
	settingKey, err := SettingKey(kind)
	if err != nil {
		httpserver.RespondError(w, http.StatusNotFound, "not_found", "unknown asset kind")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "expected a multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "missing file field")
		return
	}
	defer file.Close()

	url, err := h.store.Put(ti.ID, kind, header.Filename, file)
	if err != nil {
		if errors.Is(err, ErrBadExtension) {
			httpserver.RespondError(w, http.StatusBadRequest, "bad_request", "unsupported file type")
			return
		}
		h.logger.Error("storing asset", "error", err, "kind", kind)
		telemetry.MutationFailuresTotal.WithLabelValues("media").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to store file")
		return
	}

	if err := h.settings.Set(r.Context(), ti.ID, settingKey, url); err != nil {
		h.logger.Error("recording asset url", "error", err, "key", settingKey)
		telemetry.MutationFailuresTotal.WithLabelValues("media").Inc()
		httpserver.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to record file URL")
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]string{"kind": kind, "url": url})
		h.audit.LogFromRequest(r, "upload", "media", ti.ID, detail)
	}

	httpserver.Respond(w, http.StatusOK, map[string]string{"url": url})
}
