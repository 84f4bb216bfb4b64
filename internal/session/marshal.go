package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Julia-1439/tic-tac-toe/internal/game"
)

var (
	ErrInvalidTurn    = errors.New("invalid turn indicator")
	ErrInvalidPlayers = errors.New("invalid players record")
)

type playerJSON struct {
	Name  string    `json:"name"`
	Mark  game.Mark `json:"mark"`
	Score int       `json:"score"`
}

type sessionJSON struct {
	Board   *game.Board   `json:"board"`
	Players []*playerJSON `json:"players,omitempty"`
	Turn    Turn          `json:"turn"`
}

// MarshalJSON serializes the full session state so a repository can store it
// as an opaque blob. Fields stay private; the wire form is the only way in or
// out.
func (that *Session) MarshalJSON() ([]byte, error) {
	raw := sessionJSON{
		Board: that.board,
		Turn:  that.turn,
	}

	if that.HasPlayers() {
		raw.Players = []*playerJSON{
			{Name: that.players[0].name, Mark: that.players[0].mark, Score: that.players[0].score},
			{Name: that.players[1].name, Mark: that.players[1].mark, Score: that.players[1].score},
		}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	return data, nil
}

func (that *Session) UnmarshalJSON(data []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if raw.Turn < TurnNone || raw.Turn > TurnPlayer2 {
		return fmt.Errorf("%w: %d", ErrInvalidTurn, raw.Turn)
	}

	switch len(raw.Players) {
	case 0:
		if raw.Turn != TurnNone {
			return fmt.Errorf("%w: turn set without players", ErrInvalidPlayers)
		}
		that.players = [2]*Player{}
	case 2:
		for i, p := range raw.Players {
			if p == nil || p.Name == "" || !p.Mark.IsPlayer() || p.Score < 0 {
				return fmt.Errorf("%w: player %d", ErrInvalidPlayers, i+1)
			}
		}
		that.players[0] = &Player{name: raw.Players[0].Name, mark: raw.Players[0].Mark, score: raw.Players[0].Score}
		that.players[1] = &Player{name: raw.Players[1].Name, mark: raw.Players[1].Mark, score: raw.Players[1].Score}
	default:
		return fmt.Errorf("%w: got %d players", ErrInvalidPlayers, len(raw.Players))
	}

	if raw.Board == nil {
		raw.Board = game.NewBoard()
	}

	that.board = raw.Board
	that.turn = raw.Turn

	return nil
}
