package apperror

import "errors"

var (
	ErrPlayersAlreadyCreated = errors.New("players are already created")
	ErrPlayersNotReady       = errors.New("players are not created yet")
	ErrGameInProgress        = errors.New("game is already in progress")
	ErrGameNotStarted        = errors.New("game is not started")
	ErrEmptyPlayerName       = errors.New("player name must not be empty")
)
