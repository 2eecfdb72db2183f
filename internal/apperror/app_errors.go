package apperror

import "errors"

var (
	ErrOutOfBounds   = errors.New("position is out of bounds")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidColor  = errors.New("invalid stone color")
	ErrGameFinished  = errors.New("game is already finished")
	ErrWrongStage    = errors.New("action is not allowed in the current stage")
	ErrInvalidChoice = errors.New("invalid choice")

	ErrUnknownSession  = errors.New("unknown session")
	ErrInvalidHistory  = errors.New("invalid history record")
	ErrHistoryNotSaved = errors.New("history was not saved")
	ErrNotConnected    = errors.New("not connected to history server")
)
