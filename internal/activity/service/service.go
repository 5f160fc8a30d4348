package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mergington/internal/activity/metrics"
	"mergington/internal/activity/models"
	dErrors "mergington/pkg/domain-errors"
	"mergington/pkg/email"
	"mergington/pkg/platform/sentinel"
)

// RosterStore is the slice of the store the service needs.
type RosterStore interface {
	List(ctx context.Context) (map[string]models.Activity, error)
	AddParticipant(ctx context.Context, activity, email string) error
	RemoveParticipant(ctx context.Context, activity, email string) error
}

// Service orchestrates roster reads and mutations. It owns validation and
// the translation of store sentinel errors into caller-facing domain errors.
type Service struct {
	store   RosterStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store RosterStore, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every activity keyed by name. It never filters or paginates.
func (s *Service) List(ctx context.Context) (map[string]models.Activity, error) {
	activities, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list activities")
	}
	return activities, nil
}

// Signup adds the email to the activity's roster and returns the
// confirmation message shown to the student.
func (s *Service) Signup(ctx context.Context, activity, addr string) (string, error) {
	addr, err := s.validEmail(addr)
	if err != nil {
		return "", err
	}

	if err := s.store.AddParticipant(ctx, activity, addr); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return "", dErrors.New(dErrors.CodeNotFound, "Activity not found")
		case errors.Is(err, sentinel.ErrAlreadyRegistered):
			s.metrics.IncrementConflicts()
			return "", dErrors.Newf(dErrors.CodeConflict, "%s is already signed up for %s", addr, activity)
		default:
			s.logger.ErrorContext(ctx, "signup failed",
				"activity", activity,
				"error", err.Error(),
			)
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign up")
		}
	}

	s.logger.InfoContext(ctx, "participant signed up",
		"activity", activity,
		"email", addr,
	)
	s.metrics.IncrementSignups()
	return fmt.Sprintf("Signed up %s for %s", addr, activity), nil
}

// Unregister removes the email from the activity's roster and returns the
// confirmation message.
func (s *Service) Unregister(ctx context.Context, activity, addr string) (string, error) {
	addr, err := s.validEmail(addr)
	if err != nil {
		return "", err
	}

	if err := s.store.RemoveParticipant(ctx, activity, addr); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return "", dErrors.New(dErrors.CodeNotFound, "Activity not found")
		case errors.Is(err, sentinel.ErrNotRegistered):
			s.metrics.IncrementConflicts()
			return "", dErrors.Newf(dErrors.CodeConflict, "%s is not registered for %s", addr, activity)
		default:
			s.logger.ErrorContext(ctx, "unregister failed",
				"activity", activity,
				"error", err.Error(),
			)
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to unregister")
		}
	}

	s.logger.InfoContext(ctx, "participant unregistered",
		"activity", activity,
		"email", addr,
	)
	s.metrics.IncrementUnregistrations()
	return fmt.Sprintf("Unregistered %s from %s", addr, activity), nil
}

func (s *Service) validEmail(addr string) (string, error) {
	addr = email.Normalize(addr)
	if addr == "" {
		return "", dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !email.Valid(addr) {
		return "", dErrors.Newf(dErrors.CodeValidation, "%s is not a valid email address", addr)
	}
	return addr, nil
}
