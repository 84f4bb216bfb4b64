package websocket

import "encoding/json"

// Message is the envelope for every client request.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is the envelope for every server reply. Exactly one of Error or
// Session is set; Result accompanies Session on game:turn replies.
type Response struct {
	Action  string       `json:"action"`
	Session *SessionInfo `json:"session,omitempty"`
	Result  *TurnResult  `json:"result,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SessionInfo is the wire form of a session view. Board cells are rendered
// as "X", "O" or "".
type SessionInfo struct {
	ID      string       `json:"id"`
	Board   [3][3]string `json:"board"`
	Turn    string       `json:"turn,omitempty"`
	Begun   bool         `json:"begun"`
	Players []PlayerInfo `json:"players,omitempty"`
}

type PlayerInfo struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// TurnResult reports a move's outcome. A rejected move means the chosen cell
// was occupied; the client should prompt for another cell.
type TurnResult struct {
	Rejected bool   `json:"rejected"`
	State    string `json:"state,omitempty"`
	Winner   string `json:"winner,omitempty"`
}

type createPlayersPayload struct {
	Name1 string `json:"name1"`
	Name2 string `json:"name2"`
}

type playTurnPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
