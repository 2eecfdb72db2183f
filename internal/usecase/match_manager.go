package usecase

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

type resultReporter interface {
	PushResult(record entity.History) error
}

// MatchManager runs hot-seat matches at one table and reports every won match
// to the history server once.
type MatchManager struct {
	logger   *slog.Logger
	reporter resultReporter

	session           *gomoku.Session
	reported          bool
	persistenceFailed bool
}

// NewMatchManager starts the first match. A nil reporter means offline play.
func NewMatchManager(logger *slog.Logger, playerOne, playerTwo string, reporter resultReporter) *MatchManager {
	return &MatchManager{
		logger:   logger.With("component", "match"),
		reporter: reporter,
		session:  gomoku.NewSession(playerOne, playerTwo),
	}
}

func (that *MatchManager) Place(pos entity.Position) (gomoku.Outcome, error) {
	log := that.logger.With("method", "Place", "position", pos.String())

	outcome, err := that.session.Place(pos)
	if err != nil {
		log.Debug("placement rejected", "error", err)
		return outcome, fmt.Errorf("failed to place stone: %w", err)
	}

	switch outcome.Status {
	case gomoku.StatusWon:
		winner, _ := that.session.Winner()
		log.Info("match won", "winner", winner.Name, "color", winner.Color.String())
		that.report()
	case gomoku.StatusTie:
		log.Info("match tied")
	}

	return outcome, nil
}

func (that *MatchManager) Choose(choice gomoku.Choice) (gomoku.Outcome, error) {
	outcome, err := that.session.Choose(choice)
	if err != nil {
		return outcome, fmt.Errorf("failed to choose %s: %w", choice, err)
	}

	that.logger.Info("opening choice made", "choice", choice.String(), "stage", outcome.Stage.String())

	return outcome, nil
}

// Reset throws the current match away and starts a new one with the same players.
func (that *MatchManager) Reset() {
	that.session.Reset()
	that.reported = false
	that.persistenceFailed = false

	that.logger.Info("match reset")
}

func (that *MatchManager) Session() *gomoku.Session {
	return that.session
}

// PersistenceFailed is true when the result of the current match could not be
// handed to the history server.
func (that *MatchManager) PersistenceFailed() bool {
	return that.persistenceFailed
}

func (that *MatchManager) report() {
	log := that.logger.With("method", "report")

	if that.reported {
		return
	}

	record, ok := that.session.Result()
	if !ok {
		return
	}

	that.reported = true

	if that.reporter == nil {
		log.Info("no history server, result not sent")
		return
	}

	if err := that.reporter.PushResult(record); err != nil {
		that.persistenceFailed = true
		log.Error("failed to send match result", "error", err)
	}
}
