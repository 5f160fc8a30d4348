package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"mergington/internal/activity/models"
	"mergington/pkg/platform/sentinel"
)

// InMemory keeps the registry in a process-local map. It is the default
// backend and the one tests run against; it intentionally favors clarity
// over performance.
type InMemory struct {
	mu         sync.RWMutex
	activities map[string]models.Activity
	snapshot   *FileSnapshot
}

// Option configures an InMemory store.
type Option func(*InMemory)

// WithSnapshot makes the store load its initial state from snap (falling
// back to the seed defaults when the file is absent) and rewrite the file
// after every successful mutation.
func WithSnapshot(snap *FileSnapshot) Option {
	return func(s *InMemory) { s.snapshot = snap }
}

// NewInMemory returns a store seeded with the default activities.
func NewInMemory(opts ...Option) *InMemory {
	s := &InMemory{activities: Defaults()}
	for _, opt := range opts {
		opt(s)
	}
	if s.snapshot != nil {
		if loaded, err := s.snapshot.Load(); err == nil && loaded != nil {
			s.activities = loaded
		}
	}
	return s
}

func (s *InMemory) List(_ context.Context) (map[string]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Activity, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

func (s *InMemory) AddParticipant(_ context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[activity]
	if !ok {
		return sentinel.ErrNotFound
	}
	if a.HasParticipant(email) {
		return sentinel.ErrAlreadyRegistered
	}
	a.Participants = append(slices.Clone(a.Participants), email)
	s.activities[activity] = a
	return s.persistLocked()
}

func (s *InMemory) RemoveParticipant(_ context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[activity]
	if !ok {
		return sentinel.ErrNotFound
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return sentinel.ErrNotRegistered
	}
	a.Participants = slices.Delete(slices.Clone(a.Participants), idx, idx+1)
	s.activities[activity] = a
	return s.persistLocked()
}

// Reset restores the seed defaults. Tests call this between cases so shared
// state never leaks across them.
func (s *InMemory) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = Defaults()
	_ = s.persistLocked()
}

func (s *InMemory) persistLocked() error {
	if s.snapshot == nil {
		return nil
	}
	if err := s.snapshot.Save(s.activities); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}
