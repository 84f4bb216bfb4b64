package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Julia-1439/tic-tac-toe/internal/usecase"
)

type sessionManager interface {
	NewSession(ctx context.Context) (usecase.SessionView, error)
	CreatePlayers(ctx context.Context, id, name1, name2 string) (usecase.SessionView, error)
	StartGame(ctx context.Context, id string) (usecase.SessionView, error)
	PlayTurn(ctx context.Context, id string, row, col int) (*usecase.TurnOutcome, error)
	EndGame(ctx context.Context, id string) (usecase.SessionView, error)
	SessionState(ctx context.Context, id string) (usecase.SessionView, error)
	EndSession(ctx context.Context, id string) error
}

// client is one websocket connection and the session it drives. One
// connection hosts one hot-seat session: both players share the same screen,
// so messages on a connection are handled strictly in order.
type client struct {
	conn      *websocket.Conn
	sessionID string
}

type Server struct {
	logger   *slog.Logger
	sessions sessionManager
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, cl *client, message *Message) error
}

func New(logger *slog.Logger, sessions sessionManager) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
	}

	server.handlers = map[string]func(context.Context, *client, *Message) error{
		"session:new":    server.handleNewSession,
		"session:state":  server.handleSessionState,
		"players:create": server.handleCreatePlayers,
		"game:start":     server.handleStartGame,
		"game:turn":      server.handlePlayTurn,
		"game:end":       server.handleEndGame,
	}

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the connection and pumps messages until the
// client goes away. The session dies with its connection.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	cl := &client{conn: conn}

	defer func() {
		if cl.sessionID == "" {
			return
		}

		if err = that.sessions.EndSession(ctx, cl.sessionID); err != nil {
			log.Error("failed to end session on disconnect", "sessionID", cl.sessionID, "error", err)
		}
	}()

	that.handleMessages(ctx, cl)
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, cl *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := cl.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err := that.sendError(cl, message.Action, "unknown action"); err != nil {
				log.Error("failed to send error response", "error", err)
				return
			}
			continue
		}

		if err := handler(ctx, cl, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)

			if err = that.sendError(cl, message.Action, err.Error()); err != nil {
				log.Error("failed to send error response", "error", err)
				return
			}
		}
	}
}

func (that *Server) sendResponse(cl *client, resp Response) error {
	if err := cl.conn.WriteJSON(resp); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	return nil
}

func (that *Server) sendError(cl *client, action, text string) error {
	return that.sendResponse(cl, Response{Action: action, Error: text})
}

func decodePayload[T any](message *Message) (T, error) {
	var payload T

	if len(message.Payload) == 0 {
		return payload, fmt.Errorf("action %q requires a payload", message.Action)
	}

	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
