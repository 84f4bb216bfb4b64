package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Julia-1439/tic-tac-toe/internal/game"
	"github.com/Julia-1439/tic-tac-toe/internal/session"
	"github.com/Julia-1439/tic-tac-toe/testing/suite"
)

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a session with players and a started game
	sess := session.New()
	require.NoError(t, sess.CreatePlayers("Ann", "Bo"))
	require.NoError(t, sess.StartGame())

	// When: CreateOrUpdate is called
	err := sessionRepo.CreateOrUpdate(ctx, "123", sess)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestSessionRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a stored mid-game session
		sess := session.New()
		require.NoError(t, sess.CreatePlayers("Ann", "Bo"))
		require.NoError(t, sess.StartGame())

		result, err := sess.PlayTurn(0, 0)
		require.NoError(t, err)
		require.False(t, result.Rejected)

		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", sess))

		// When: GetByID is called with the existing id
		retrieved, err := sessionRepo.GetByID(ctx, "123")

		// Then: the retrieved session matches the saved state
		require.NoError(t, err)
		assert.Equal(t, sess.Snapshot(), retrieved.Snapshot())
		assert.True(t, retrieved.HasBegun())

		mark, ok := retrieved.CurrentMark()
		require.True(t, ok)
		assert.Equal(t, game.MarkO, mark)

		summaries, ok := retrieved.PlayerSummaries()
		require.True(t, ok)
		assert.Equal(t, "Ann", summaries[0].Name)
		assert.Equal(t, "Bo", summaries[1].Name)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: GetByID is called with a non-existent id
		retrieved, err := sessionRepo.GetByID(ctx, "9999999")

		// Then: an ErrSessionNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a stored session
		sess := session.New()
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, "123", sess))

		// When: DeleteByID is called
		err := sessionRepo.DeleteByID(ctx, "123")

		// Then: the session is gone
		require.NoError(t, err)

		_, err = sessionRepo.GetByID(ctx, "123")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("DeleteByID_Missing", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: DeleteByID is called for an id that was never stored
		err := sessionRepo.DeleteByID(ctx, "nope")

		// Then: the delete is a no-op
		require.NoError(t, err)
	})
}
