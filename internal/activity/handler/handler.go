package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"mergington/internal/activity/metrics"
	"mergington/internal/activity/models"
	"mergington/internal/platform/middleware"
	dErrors "mergington/pkg/domain-errors"
)

// Service defines the interface for roster operations.
type Service interface {
	List(ctx context.Context) (map[string]models.Activity, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) (string, error)
}

// Handler exposes the activity endpoints. It stays thin: parameter parsing
// and JSON envelopes here, everything else in the service.
type Handler struct {
	logger     *slog.Logger
	activities Service
	metrics    *metrics.Metrics
}

// New creates an activity Handler.
func New(activities Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:     logger,
		activities: activities,
		metrics:    m,
	}
}

// Register registers the activity routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	activityRouter := chi.NewRouter()
	activityRouter.Use(middleware.Recovery(h.logger))
	activityRouter.Use(middleware.RequestID)
	activityRouter.Use(middleware.Logger(h.logger))
	activityRouter.Use(middleware.Timeout(15 * time.Second))
	activityRouter.Use(middleware.Latency(h.metrics))
	activityRouter.Get("/activities", h.handleListActivities)
	activityRouter.Post("/activities/{name}/signup", h.handleSignup)
	activityRouter.Post("/activities/{name}/unregister", h.handleUnregister)

	r.Mount("/", activityRouter)
}

func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	name := activityName(r)
	message, err := h.activities.Signup(r.Context(), name, r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) handleUnregister(w http.ResponseWriter, r *http.Request) {
	name := activityName(r)
	message, err := h.activities.Unregister(r.Context(), name, r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// activityName extracts the {name} path parameter. chi leaves the value
// percent-encoded when the request path carried escapes, so decode it here.
func activityName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// writeError renders a domain error as the API's {"detail": ...} envelope.
// Unknown errors become an opaque 500 so internals never leak to callers.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := dErrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
	writeJSON(w, status, map[string]string{"detail": dErrors.MessageOf(err)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
