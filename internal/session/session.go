package session

import (
	"fmt"
	"strings"

	"github.com/Julia-1439/tic-tac-toe/internal/apperror"
	"github.com/Julia-1439/tic-tac-toe/internal/game"
)

// Turn says whose move it is. TurnNone doubles as the "no game running" flag:
// it holds before the first StartGame and again once a game concludes.
type Turn int

const (
	TurnNone Turn = iota
	TurnPlayer1
	TurnPlayer2
)

// Session drives a two-player match: it owns the board, both players and the
// turn indicator, and walks the lifecycle
// NoPlayers -> PlayersReady -> InProgress -> Concluded -> InProgress...
// Players are fixed for the session's lifetime; only the board resets between
// games.
type Session struct {
	board   *game.Board
	players [2]*Player
	turn    Turn
}

func New() *Session {
	return &Session{
		board: game.NewBoard(),
		turn:  TurnNone,
	}
}

// CreatePlayers registers both players. The first player always plays X, the
// second O. Callable exactly once per session.
func (that *Session) CreatePlayers(name1, name2 string) error {
	if that.turn != TurnNone {
		return apperror.ErrGameInProgress
	}

	if that.HasPlayers() {
		return apperror.ErrPlayersAlreadyCreated
	}

	name1 = strings.TrimSpace(name1)
	name2 = strings.TrimSpace(name2)

	if name1 == "" {
		return fmt.Errorf("%w: player 1", apperror.ErrEmptyPlayerName)
	}

	if name2 == "" {
		return fmt.Errorf("%w: player 2", apperror.ErrEmptyPlayerName)
	}

	that.players[0] = &Player{name: name1, mark: game.MarkX}
	that.players[1] = &Player{name: name2, mark: game.MarkO}

	return nil
}

// StartGame clears the board and hands the first move to player 1. It starts
// both the first game and every rematch after a concluded one.
func (that *Session) StartGame() error {
	if !that.HasPlayers() {
		return apperror.ErrPlayersNotReady
	}

	if that.turn != TurnNone {
		return apperror.ErrGameInProgress
	}

	that.board.Reset()
	that.turn = TurnPlayer1

	return nil
}

// PlayTurn places the current player's mark at (row, col). A rejected result
// means the cell was occupied; the turn does not change and the caller should
// let the user pick again. On a win the winner's score goes up by one; any
// terminal state clears the turn indicator.
func (that *Session) PlayTurn(row, col int) (game.MoveResult, error) {
	if that.turn == TurnNone {
		return game.MoveResult{}, apperror.ErrGameNotStarted
	}

	current := that.currentPlayer()

	result, err := that.board.Place(row, col, current.mark)
	if err != nil {
		return game.MoveResult{}, fmt.Errorf("failed to place mark: %w", err)
	}

	if result.Rejected {
		return result, nil
	}

	switch result.State {
	case game.WinX:
		that.players[0].score++
		that.turn = TurnNone
	case game.WinO:
		that.players[1].score++
		that.turn = TurnNone
	case game.Tie:
		that.turn = TurnNone
	case game.Ongoing:
		that.turn = that.nextTurn()
	}

	return result, nil
}

// EndGame force-clears the turn indicator. Safe to call in any state; used
// before an abrupt restart.
func (that *Session) EndGame() {
	that.turn = TurnNone
}

// CurrentMark returns the mark of the player holding the turn. The second
// return value is false when no game is running.
func (that *Session) CurrentMark() (game.Mark, bool) {
	if that.turn == TurnNone {
		return game.Empty, false
	}

	return that.currentPlayer().mark, true
}

// HasBegun reports whether a game is in progress.
func (that *Session) HasBegun() bool {
	return that.turn != TurnNone
}

// HasPlayers reports whether CreatePlayers has been called.
func (that *Session) HasPlayers() bool {
	return that.players[0] != nil && that.players[1] != nil
}

// PlayerSummaries returns name/score copies of both players for display. The
// second return value is false until players are created.
func (that *Session) PlayerSummaries() ([2]PlayerSummary, bool) {
	if !that.HasPlayers() {
		return [2]PlayerSummary{}, false
	}

	return [2]PlayerSummary{
		{Name: that.players[0].name, Score: that.players[0].score},
		{Name: that.players[1].name, Score: that.players[1].score},
	}, true
}

// Snapshot returns a read-only copy of the board grid.
func (that *Session) Snapshot() [game.Size][game.Size]game.Mark {
	return that.board.Snapshot()
}

func (that *Session) currentPlayer() *Player {
	if that.turn == TurnPlayer2 {
		return that.players[1]
	}
	return that.players[0]
}

func (that *Session) nextTurn() Turn {
	if that.turn == TurnPlayer1 {
		return TurnPlayer2
	}
	return TurnPlayer1
}
