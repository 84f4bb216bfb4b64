package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Julia-1439/tic-tac-toe/internal/game"
	"github.com/Julia-1439/tic-tac-toe/internal/session"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, id string, sess *session.Session) error
	GetByID(ctx context.Context, id string) (*session.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// SessionView is a read-only picture of a session for the presentation layer.
type SessionView struct {
	ID      string
	Board   [game.Size][game.Size]game.Mark
	Turn    game.Mark // Empty when no game is running
	Begun   bool
	Players []session.PlayerSummary // empty until players are created
}

// TurnOutcome bundles a move's result with the state of the session after it.
type TurnOutcome struct {
	Result game.MoveResult
	View   SessionView
}

// SessionManager hosts many independent sessions, each addressed by id. Every
// operation loads the session, applies one state transition and stores it
// back. Operations on one session are never concurrent: a session is driven
// by a single client connection.
type SessionManager struct {
	logger *slog.Logger
	repo   sessionRepo
}

func NewSessionManager(logger *slog.Logger, repo sessionRepo) *SessionManager {
	return &SessionManager{
		logger: logger.With("component", "session_manager"),
		repo:   repo,
	}
}

// NewSession mints a fresh session with no players and no running game.
func (that *SessionManager) NewSession(ctx context.Context) (SessionView, error) {
	id := uuid.NewString()
	sess := session.New()

	if err := that.repo.CreateOrUpdate(ctx, id, sess); err != nil {
		return SessionView{}, fmt.Errorf("failed to store session: %w", err)
	}

	that.logger.Info("session created", "sessionID", id)

	return buildView(id, sess), nil
}

// CreatePlayers registers both players in the session.
func (that *SessionManager) CreatePlayers(ctx context.Context, id, name1, name2 string) (SessionView, error) {
	sess, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return SessionView{}, fmt.Errorf("failed to get session: %w", err)
	}

	if err = sess.CreatePlayers(name1, name2); err != nil {
		return SessionView{}, fmt.Errorf("failed to create players: %w", err)
	}

	if err = that.repo.CreateOrUpdate(ctx, id, sess); err != nil {
		return SessionView{}, fmt.Errorf("failed to store session: %w", err)
	}

	return buildView(id, sess), nil
}

// StartGame begins a game, or a rematch after a concluded one.
func (that *SessionManager) StartGame(ctx context.Context, id string) (SessionView, error) {
	sess, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return SessionView{}, fmt.Errorf("failed to get session: %w", err)
	}

	if err = sess.StartGame(); err != nil {
		return SessionView{}, fmt.Errorf("failed to start game: %w", err)
	}

	if err = that.repo.CreateOrUpdate(ctx, id, sess); err != nil {
		return SessionView{}, fmt.Errorf("failed to store session: %w", err)
	}

	return buildView(id, sess), nil
}

// PlayTurn applies one move for whichever player holds the turn.
func (that *SessionManager) PlayTurn(ctx context.Context, id string, row, col int) (*TurnOutcome, error) {
	sess, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	result, err := sess.PlayTurn(row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to play turn: %w", err)
	}

	// a rejected move mutates nothing, no need to write it back
	if !result.Rejected {
		if err = that.repo.CreateOrUpdate(ctx, id, sess); err != nil {
			return nil, fmt.Errorf("failed to store session: %w", err)
		}
	}

	if result.State.IsTerminal() {
		that.logger.Info("game concluded", "sessionID", id, "state", result.State.String())
	}

	return &TurnOutcome{
		Result: result,
		View:   buildView(id, sess),
	}, nil
}

// SessionState returns the current view of the session.
func (that *SessionManager) SessionState(ctx context.Context, id string) (SessionView, error) {
	sess, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return SessionView{}, fmt.Errorf("failed to get session: %w", err)
	}

	return buildView(id, sess), nil
}

// EndGame aborts the running game, if any, keeping players and scores so a
// fresh StartGame can follow. Idempotent.
func (that *SessionManager) EndGame(ctx context.Context, id string) (SessionView, error) {
	sess, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return SessionView{}, fmt.Errorf("failed to get session: %w", err)
	}

	sess.EndGame()

	if err = that.repo.CreateOrUpdate(ctx, id, sess); err != nil {
		return SessionView{}, fmt.Errorf("failed to store session: %w", err)
	}

	return buildView(id, sess), nil
}

// EndSession ends the running game, if any, and removes the session record.
func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	sess, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	sess.EndGame()

	if err = that.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}

func buildView(id string, sess *session.Session) SessionView {
	view := SessionView{
		ID:    id,
		Board: sess.Snapshot(),
		Begun: sess.HasBegun(),
	}

	if mark, ok := sess.CurrentMark(); ok {
		view.Turn = mark
	}

	if summaries, ok := sess.PlayerSummaries(); ok {
		view.Players = summaries[:]
	}

	return view
}
