package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/Julia-1439/tic-tac-toe/internal/game"
	"github.com/Julia-1439/tic-tac-toe/internal/usecase"
)

var errNoSession = errors.New("no session on this connection, send session:new first")

func (that *Server) handleNewSession(ctx context.Context, cl *client, message *Message) error {
	if cl.sessionID != "" {
		return fmt.Errorf("connection already drives session %s", cl.sessionID)
	}

	view, err := that.sessions.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	cl.sessionID = view.ID

	return that.sendResponse(cl, Response{
		Action:  message.Action,
		Session: sessionInfo(view),
	})
}

func (that *Server) handleSessionState(ctx context.Context, cl *client, message *Message) error {
	if cl.sessionID == "" {
		return errNoSession
	}

	view, err := that.sessions.SessionState(ctx, cl.sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session state: %w", err)
	}

	return that.sendResponse(cl, Response{
		Action:  message.Action,
		Session: sessionInfo(view),
	})
}

func (that *Server) handleCreatePlayers(ctx context.Context, cl *client, message *Message) error {
	if cl.sessionID == "" {
		return errNoSession
	}

	payload, err := decodePayload[createPlayersPayload](message)
	if err != nil {
		return err
	}

	view, err := that.sessions.CreatePlayers(ctx, cl.sessionID, payload.Name1, payload.Name2)
	if err != nil {
		return fmt.Errorf("failed to create players: %w", err)
	}

	return that.sendResponse(cl, Response{
		Action:  message.Action,
		Session: sessionInfo(view),
	})
}

func (that *Server) handleStartGame(ctx context.Context, cl *client, message *Message) error {
	if cl.sessionID == "" {
		return errNoSession
	}

	view, err := that.sessions.StartGame(ctx, cl.sessionID)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return that.sendResponse(cl, Response{
		Action:  message.Action,
		Session: sessionInfo(view),
	})
}

func (that *Server) handlePlayTurn(ctx context.Context, cl *client, message *Message) error {
	if cl.sessionID == "" {
		return errNoSession
	}

	payload, err := decodePayload[playTurnPayload](message)
	if err != nil {
		return err
	}

	outcome, err := that.sessions.PlayTurn(ctx, cl.sessionID, payload.Row, payload.Col)
	if err != nil {
		return fmt.Errorf("failed to play turn: %w", err)
	}

	// an occupied cell comes back as a normal response with rejected set, the
	// client prompts for another cell
	return that.sendResponse(cl, Response{
		Action:  message.Action,
		Session: sessionInfo(outcome.View),
		Result:  turnResult(outcome.Result),
	})
}

func (that *Server) handleEndGame(ctx context.Context, cl *client, message *Message) error {
	if cl.sessionID == "" {
		return errNoSession
	}

	view, err := that.sessions.EndGame(ctx, cl.sessionID)
	if err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	return that.sendResponse(cl, Response{
		Action:  message.Action,
		Session: sessionInfo(view),
	})
}

func sessionInfo(view usecase.SessionView) *SessionInfo {
	info := &SessionInfo{
		ID:    view.ID,
		Turn:  view.Turn.String(),
		Begun: view.Begun,
	}

	for row := range view.Board {
		for col := range view.Board[row] {
			info.Board[row][col] = view.Board[row][col].String()
		}
	}

	for _, player := range view.Players {
		info.Players = append(info.Players, PlayerInfo{Name: player.Name, Score: player.Score})
	}

	return info
}

func turnResult(result game.MoveResult) *TurnResult {
	if result.Rejected {
		return &TurnResult{Rejected: true}
	}

	return &TurnResult{
		State:  result.State.String(),
		Winner: result.State.Winner().String(),
	}
}
