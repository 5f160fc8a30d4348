package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/redis/go-redis/v9"

	"mergington/internal/activity/models"
	"mergington/pkg/platform/sentinel"
)

// rosterKey is the hash holding one JSON document per activity, keyed by
// activity name.
const rosterKey = "mergington:activities"

// Redis keeps the registry in a single Redis hash so rosters survive process
// restarts. Mutations are read-modify-write on one document, serialized by a
// process-local mutex; the service runs as a single instance.
type Redis struct {
	client *redis.Client
	mu     sync.Mutex
}

// NewRedis constructs the store and seeds any missing default activities.
// Seeding uses HSetNX per field so existing rosters are never overwritten.
func NewRedis(ctx context.Context, client *redis.Client) (*Redis, error) {
	s := &Redis{client: client}
	for name, a := range Defaults() {
		doc, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("encode seed activity %q: %w", name, err)
		}
		if err := client.HSetNX(ctx, rosterKey, name, doc).Err(); err != nil {
			return nil, fmt.Errorf("seed activity %q: %w", name, err)
		}
	}
	return s, nil
}

func (s *Redis) List(ctx context.Context) (map[string]models.Activity, error) {
	fields, err := s.client.HGetAll(ctx, rosterKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	out := make(map[string]models.Activity, len(fields))
	for name, doc := range fields {
		var a models.Activity
		if err := json.Unmarshal([]byte(doc), &a); err != nil {
			return nil, fmt.Errorf("decode activity %q: %w", name, err)
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		out[name] = a
	}
	return out, nil
}

func (s *Redis) AddParticipant(ctx context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.get(ctx, activity)
	if err != nil {
		return err
	}
	if a.HasParticipant(email) {
		return sentinel.ErrAlreadyRegistered
	}
	a.Participants = append(a.Participants, email)
	return s.put(ctx, activity, a)
}

func (s *Redis) RemoveParticipant(ctx context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.get(ctx, activity)
	if err != nil {
		return err
	}
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return sentinel.ErrNotRegistered
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return s.put(ctx, activity, a)
}

func (s *Redis) get(ctx context.Context, activity string) (models.Activity, error) {
	doc, err := s.client.HGet(ctx, rosterKey, activity).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Activity{}, sentinel.ErrNotFound
		}
		return models.Activity{}, fmt.Errorf("load activity %q: %w", activity, err)
	}
	var a models.Activity
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		return models.Activity{}, fmt.Errorf("decode activity %q: %w", activity, err)
	}
	return a, nil
}

func (s *Redis) put(ctx context.Context, activity string, a models.Activity) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode activity %q: %w", activity, err)
	}
	if err := s.client.HSet(ctx, rosterKey, activity, doc).Err(); err != nil {
		return fmt.Errorf("save activity %q: %w", activity, err)
	}
	return nil
}
