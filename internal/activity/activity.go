package activity

import (
	"log/slog"

	"mergington/internal/activity/handler"
	"mergington/internal/activity/metrics"
	"mergington/internal/activity/service"
)

// Service exposes roster listing and mutation.
type Service = service.Service

// Handler wires HTTP endpoints to the activity service.
type Handler = handler.Handler

// NewService constructs the activity service over the given roster store.
func NewService(store service.RosterStore, opts ...service.Option) *Service {
	return service.New(store, opts...)
}

// NewHandler constructs an HTTP handler for the activity routes.
func NewHandler(s *Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return handler.New(s, logger, m)
}
