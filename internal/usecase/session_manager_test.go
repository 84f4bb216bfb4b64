package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Julia-1439/tic-tac-toe/internal/apperror"
	"github.com/Julia-1439/tic-tac-toe/internal/game"
	"github.com/Julia-1439/tic-tac-toe/internal/repository"
	"github.com/Julia-1439/tic-tac-toe/internal/session"
)

var errRedisDown = errors.New("redis down")

// memoryRepo is an in-memory stand-in for the redis session repository. It
// round-trips sessions through JSON the same way the real repository does, so
// serialization bugs surface here too.
type memoryRepo struct {
	records map[string][]byte
	failing bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string][]byte)}
}

func (that *memoryRepo) CreateOrUpdate(_ context.Context, id string, sess *session.Session) error {
	if that.failing {
		return errRedisDown
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	that.records[id] = data

	return nil
}

func (that *memoryRepo) GetByID(_ context.Context, id string) (*session.Session, error) {
	if that.failing {
		return nil, errRedisDown
	}

	data, ok := that.records[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	sess := session.New()
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (that *memoryRepo) DeleteByID(_ context.Context, id string) error {
	if that.failing {
		return errRedisDown
	}

	delete(that.records, id)

	return nil
}

func newManager(repo sessionRepo) *SessionManager {
	return NewSessionManager(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func TestSessionManager_NewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and stores a fresh session", func(t *testing.T) {
		// Given: a manager over an empty repository
		repo := newMemoryRepo()
		manager := newManager(repo)

		// When: creating a session
		view, err := manager.NewSession(ctx)

		// Then: the session has an id, no players and no running game
		require.NoError(t, err)
		assert.NotEmpty(t, view.ID)
		assert.False(t, view.Begun)
		assert.Empty(t, view.Players)
		assert.Contains(t, repo.records, view.ID)
	})

	t.Run("Returns error when the repository fails", func(t *testing.T) {
		// Given: a failing repository
		repo := newMemoryRepo()
		repo.failing = true
		manager := newManager(repo)

		// When: creating a session
		_, err := manager.NewSession(ctx)

		// Then: the storage error surfaces
		assert.ErrorIs(t, err, errRedisDown)
	})
}

func TestSessionManager_FullGame(t *testing.T) {
	ctx := context.Background()

	// Given: a session with players Ann and Bo and a started game
	repo := newMemoryRepo()
	manager := newManager(repo)

	created, err := manager.NewSession(ctx)
	require.NoError(t, err)
	id := created.ID

	view, err := manager.CreatePlayers(ctx, id, "Ann", "Bo")
	require.NoError(t, err)
	require.Len(t, view.Players, 2)

	view, err = manager.StartGame(ctx, id)
	require.NoError(t, err)
	assert.True(t, view.Begun)
	assert.Equal(t, game.MarkX, view.Turn)

	// When: playing Ann to a top-row win
	moves := [][2]int{{0, 0}, {1, 1}, {0, 1}, {2, 2}, {0, 2}}

	var outcome *TurnOutcome
	for _, move := range moves {
		outcome, err = manager.PlayTurn(ctx, id, move[0], move[1])
		require.NoError(t, err)
		require.False(t, outcome.Result.Rejected)
	}

	// Then: the stored session records the win and Ann's score
	assert.Equal(t, game.WinX, outcome.Result.State)
	assert.False(t, outcome.View.Begun)
	require.Len(t, outcome.View.Players, 2)
	assert.Equal(t, 1, outcome.View.Players[0].Score)
	assert.Equal(t, 0, outcome.View.Players[1].Score)

	// And: a rematch starts on the same session with scores intact
	view, err = manager.StartGame(ctx, id)
	require.NoError(t, err)
	assert.True(t, view.Begun)
	assert.Equal(t, [game.Size][game.Size]game.Mark{}, view.Board)
	assert.Equal(t, 1, view.Players[0].Score)
}

func TestSessionManager_PlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejected moves are reported without touching storage", func(t *testing.T) {
		// Given: a running game with X at (0, 0)
		repo := newMemoryRepo()
		manager := newManager(repo)

		created, err := manager.NewSession(ctx)
		require.NoError(t, err)
		id := created.ID

		_, err = manager.CreatePlayers(ctx, id, "Ann", "Bo")
		require.NoError(t, err)
		_, err = manager.StartGame(ctx, id)
		require.NoError(t, err)
		_, err = manager.PlayTurn(ctx, id, 0, 0)
		require.NoError(t, err)

		stored := repo.records[id]

		// When: the next player targets the same cell
		outcome, err := manager.PlayTurn(ctx, id, 0, 0)

		// Then: the move is rejected and the stored record is unchanged
		require.NoError(t, err)
		assert.True(t, outcome.Result.Rejected)
		assert.Equal(t, game.MarkO, outcome.View.Turn)
		assert.Equal(t, stored, repo.records[id])
	})

	t.Run("Returns ErrGameNotStarted before StartGame", func(t *testing.T) {
		// Given: a session with players but no started game
		repo := newMemoryRepo()
		manager := newManager(repo)

		created, err := manager.NewSession(ctx)
		require.NoError(t, err)

		_, err = manager.CreatePlayers(ctx, created.ID, "Ann", "Bo")
		require.NoError(t, err)

		// When: playing a turn
		_, err = manager.PlayTurn(ctx, created.ID, 0, 0)

		// Then: the protocol violation surfaces
		assert.ErrorIs(t, err, apperror.ErrGameNotStarted)
	})

	t.Run("Returns ErrSessionNotFound for an unknown id", func(t *testing.T) {
		// Given: a manager over an empty repository
		manager := newManager(newMemoryRepo())

		// When: playing a turn in a session that does not exist
		_, err := manager.PlayTurn(ctx, "missing", 0, 0)

		// Then: the lookup failure surfaces
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}

func TestSessionManager_EndGame(t *testing.T) {
	ctx := context.Background()

	// Given: a running game
	repo := newMemoryRepo()
	manager := newManager(repo)

	created, err := manager.NewSession(ctx)
	require.NoError(t, err)
	id := created.ID

	_, err = manager.CreatePlayers(ctx, id, "Ann", "Bo")
	require.NoError(t, err)
	_, err = manager.StartGame(ctx, id)
	require.NoError(t, err)

	// When: aborting the game
	view, err := manager.EndGame(ctx, id)

	// Then: no game runs, the session and its players survive
	require.NoError(t, err)
	assert.False(t, view.Begun)
	require.Len(t, view.Players, 2)
	assert.Contains(t, repo.records, id)
}

func TestSessionManager_EndSession(t *testing.T) {
	ctx := context.Background()

	// Given: a stored session
	repo := newMemoryRepo()
	manager := newManager(repo)

	created, err := manager.NewSession(ctx)
	require.NoError(t, err)

	// When: ending the session
	err = manager.EndSession(ctx, created.ID)

	// Then: the record is gone
	require.NoError(t, err)
	assert.NotContains(t, repo.records, created.ID)

	// And: further operations report the missing session
	_, err = manager.SessionState(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}
