package session

import (
	"github.com/Julia-1439/tic-tac-toe/internal/game"
)

// Player pairs a display name with a fixed mark and a running score. Players
// are created once per session and persist across restarts; only the score
// ever changes, and only upwards.
type Player struct {
	name  string
	mark  game.Mark
	score int
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Mark() game.Mark {
	return that.mark
}

func (that *Player) Score() int {
	return that.score
}

// PlayerSummary is a value copy of a player's display state.
type PlayerSummary struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
