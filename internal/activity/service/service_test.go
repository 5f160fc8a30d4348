package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington/internal/activity/models"
	"mergington/internal/activity/store"
	dErrors "mergington/pkg/domain-errors"
)

func newTestService() *Service {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return New(store.NewInMemory(), WithLogger(logger))
}

func TestListReturnsAllActivities(t *testing.T) {
	svc := newTestService()

	activities, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, activities, 9)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("returns confirmation message", func(t *testing.T) {
		svc := newTestService()
		msg, err := svc.Signup(ctx, "Chess Club", "newstudent@mergington.edu")
		require.NoError(t, err)
		assert.Equal(t, "Signed up newstudent@mergington.edu for Chess Club", msg)
	})

	t.Run("duplicate signup yields conflict", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Signup(ctx, "Chess Club", "michael@mergington.edu")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Contains(t, dErrors.MessageOf(err), "already signed up")
	})

	t.Run("unknown activity yields not found", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Signup(ctx, "Quidditch", "someone@mergington.edu")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Equal(t, "Activity not found", dErrors.MessageOf(err))
	})

	t.Run("blank email yields validation error", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Signup(ctx, "Chess Club", "   ")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("malformed email yields validation error", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Signup(ctx, "Chess Club", "not-an-email")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("email is trimmed before storing", func(t *testing.T) {
		svc := newTestService()
		msg, err := svc.Signup(ctx, "Chess Club", "  padded@mergington.edu ")
		require.NoError(t, err)
		assert.Equal(t, "Signed up padded@mergington.edu for Chess Club", msg)
	})
}

func TestUnregister(t *testing.T) {
	ctx := context.Background()

	t.Run("returns confirmation message", func(t *testing.T) {
		svc := newTestService()
		msg, err := svc.Unregister(ctx, "Chess Club", "michael@mergington.edu")
		require.NoError(t, err)
		assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", msg)
	})

	t.Run("absent email yields conflict", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Unregister(ctx, "Chess Club", "ghost@mergington.edu")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Contains(t, dErrors.MessageOf(err), "not registered")
	})

	t.Run("unknown activity yields not found", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Unregister(ctx, "Quidditch", "someone@mergington.edu")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// TestSignupRoundTrip exercises enroll -> withdraw -> enroll again.
func TestSignupRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	const addr = "reregister@mergington.edu"

	_, err := svc.Signup(ctx, "Programming Class", addr)
	require.NoError(t, err)

	_, err = svc.Unregister(ctx, "Programming Class", addr)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Programming Class", addr)
	require.NoError(t, err)

	activities, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, activities["Programming Class"].Participants, addr)
}

type failingStore struct{ err error }

func (f *failingStore) List(context.Context) (map[string]models.Activity, error) {
	return nil, f.err
}
func (f *failingStore) AddParticipant(context.Context, string, string) error    { return f.err }
func (f *failingStore) RemoveParticipant(context.Context, string, string) error { return f.err }

func TestStoreFailuresBecomeInternalErrors(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := New(&failingStore{err: errors.New("backend down")}, WithLogger(logger))

	_, err := svc.List(ctx)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = svc.Signup(ctx, "Chess Club", "x@mergington.edu")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = svc.Unregister(ctx, "Chess Club", "x@mergington.edu")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
