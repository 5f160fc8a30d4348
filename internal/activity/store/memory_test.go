package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"mergington/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

// TestSeedDefaults verifies the store starts with the fixed default set.
func (s *MemoryStoreSuite) TestSeedDefaults() {
	activities, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(activities, 9)

	chess, ok := activities["Chess Club"]
	s.Require().True(ok, "Chess Club should be seeded")
	s.NotEmpty(chess.Description)
	s.NotEmpty(chess.Schedule)
	s.Equal(12, chess.MaxParticipants)
	s.Contains(chess.Participants, "michael@mergington.edu")
}

// TestListReturnsCopy verifies mutating the returned map cannot corrupt the store.
func (s *MemoryStoreSuite) TestListReturnsCopy() {
	first, err := s.store.List(s.ctx)
	s.Require().NoError(err)

	chess := first["Chess Club"]
	chess.Participants[0] = "tampered@mergington.edu"
	delete(first, "Art Club")

	second, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(second, 9)
	s.Contains(second["Chess Club"].Participants, "michael@mergington.edu")
}

// TestAddParticipant verifies add semantics and sentinel errors.
func (s *MemoryStoreSuite) TestAddParticipant() {
	s.Run("appends in signup order", func() {
		s.Require().NoError(s.store.AddParticipant(s.ctx, "Chess Club", "first@mergington.edu"))
		s.Require().NoError(s.store.AddParticipant(s.ctx, "Chess Club", "second@mergington.edu"))

		activities, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		participants := activities["Chess Club"].Participants
		s.Equal([]string{
			"michael@mergington.edu",
			"daniel@mergington.edu",
			"first@mergington.edu",
			"second@mergington.edu",
		}, participants)
	})

	s.Run("rejects duplicate email", func() {
		err := s.store.AddParticipant(s.ctx, "Chess Club", "michael@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrAlreadyRegistered)
	})

	s.Run("returns ErrNotFound for unknown activity", func() {
		err := s.store.AddParticipant(s.ctx, "Underwater Basket Weaving", "someone@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestRemoveParticipant verifies remove semantics and sentinel errors.
func (s *MemoryStoreSuite) TestRemoveParticipant() {
	s.Run("removes and keeps remaining order", func() {
		s.Require().NoError(s.store.RemoveParticipant(s.ctx, "Theater Club", "isabella@mergington.edu"))

		activities, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"lucas@mergington.edu", "mason@mergington.edu"},
			activities["Theater Club"].Participants)
	})

	s.Run("returns ErrNotRegistered for absent email", func() {
		err := s.store.RemoveParticipant(s.ctx, "Chess Club", "ghost@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotRegistered)
	})

	s.Run("returns ErrNotFound for unknown activity", func() {
		err := s.store.RemoveParticipant(s.ctx, "Underwater Basket Weaving", "someone@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestReset verifies defaults are restored for test isolation.
func (s *MemoryStoreSuite) TestReset() {
	s.Require().NoError(s.store.AddParticipant(s.ctx, "Math Club", "new@mergington.edu"))
	s.Require().NoError(s.store.RemoveParticipant(s.ctx, "Math Club", "james@mergington.edu"))

	s.store.Reset()

	activities, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"james@mergington.edu", "benjamin@mergington.edu"},
		activities["Math Club"].Participants)
}
