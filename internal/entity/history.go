package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// History is one finished match as stored by the history server.
type History struct {
	PlayerOneName   string `json:"playerOneName"`
	PlayerTwoName   string `json:"playerTwoName"`
	PlayerOneWinner bool   `json:"playerOneWinner"`
	PlayerTwoWinner bool   `json:"playerTwoWinner"`
}

func (that *History) Validate() error {
	if strings.TrimSpace(that.PlayerOneName) == "" || strings.TrimSpace(that.PlayerTwoName) == "" {
		return fmt.Errorf("%w: player names must not be empty", apperror.ErrInvalidHistory)
	}

	if that.PlayerOneWinner && that.PlayerTwoWinner {
		return fmt.Errorf("%w: both players marked as winner", apperror.ErrInvalidHistory)
	}

	return nil
}
