package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

// playToWin opens with B taking black, then A (white) completes row y=0.
func playToWin(t *testing.T, manager *MatchManager) gomoku.Outcome {
	t.Helper()

	for _, pos := range []entity.Position{{X: 7, Y: 7}, {X: 7, Y: 8}, {X: 8, Y: 7}} {
		_, err := manager.Place(pos)
		require.NoError(t, err)
	}

	_, err := manager.Choose(gomoku.ChoiceBlack)
	require.NoError(t, err)

	blacks := []entity.Position{{X: 10, Y: 10}, {X: 10, Y: 12}, {X: 12, Y: 10}, {X: 12, Y: 12}}

	var outcome gomoku.Outcome
	for x := 0; x < 5; x++ {
		outcome, err = manager.Place(entity.Position{X: x, Y: 0})
		require.NoError(t, err)

		if x < len(blacks) {
			_, err = manager.Place(blacks[x])
			require.NoError(t, err)
		}
	}

	return outcome
}

func TestMatchManager_ReportsWinOnce(t *testing.T) {
	// Given: a reporter that accepts the result
	reporter := &mockReporter{}
	reporter.On("PushResult", entity.History{
		PlayerOneName:   "Ann",
		PlayerTwoName:   "Bob",
		PlayerOneWinner: true,
	}).Return(nil).Once()

	manager := NewMatchManager(discardLogger(), "Ann", "Bob", reporter)

	// When: Ann wins the match
	outcome := playToWin(t, manager)

	// Then: the result is pushed exactly once and further moves are refused
	assert.Equal(t, gomoku.StatusWon, outcome.Status)

	_, err := manager.Place(entity.Position{X: 14, Y: 14})
	require.ErrorIs(t, err, apperror.ErrGameFinished)

	reporter.AssertExpectations(t)
	assert.False(t, manager.PersistenceFailed())
}

func TestMatchManager_ReporterFailure(t *testing.T) {
	reporter := &mockReporter{}
	reporter.On("PushResult", mock.Anything).Return(apperror.ErrNotConnected).Once()

	manager := NewMatchManager(discardLogger(), "Ann", "Bob", reporter)
	playToWin(t, manager)

	// the failure is surfaced, never retried
	assert.True(t, manager.PersistenceFailed())
	reporter.AssertNumberOfCalls(t, "PushResult", 1)

	// Reset clears it for the next match
	manager.Reset()
	assert.False(t, manager.PersistenceFailed())
	assert.Equal(t, gomoku.StatusOpening, manager.Session().Status())
}

func TestMatchManager_Offline(t *testing.T) {
	manager := NewMatchManager(discardLogger(), "Ann", "Bob", nil)

	outcome := playToWin(t, manager)

	assert.Equal(t, gomoku.StatusWon, outcome.Status)
	assert.False(t, manager.PersistenceFailed())
}

func TestMatchManager_InvalidMove(t *testing.T) {
	reporter := &mockReporter{}
	manager := NewMatchManager(discardLogger(), "Ann", "Bob", reporter)

	_, err := manager.Place(entity.Position{X: 15, Y: 0})

	require.ErrorIs(t, err, apperror.ErrOutOfBounds)
	assert.Equal(t, entity.BoardSize*entity.BoardSize, manager.Session().Remaining())
	reporter.AssertNotCalled(t, "PushResult", mock.Anything)
}

func TestMatchManager_ChooseInWrongStage(t *testing.T) {
	manager := NewMatchManager(discardLogger(), "Ann", "Bob", nil)

	_, err := manager.Choose(gomoku.ChoiceWhite)

	require.ErrorIs(t, err, apperror.ErrWrongStage)
	assert.Equal(t, gomoku.StageFirstPlacement, manager.Session().Stage())
}

func TestMatchManager_TieIsNeverReported(t *testing.T) {
	// Given: stones split by a pattern with no run longer than two
	var blacks, whites []entity.Position
	for y := 0; y < entity.BoardSize; y++ {
		for x := 0; x < entity.BoardSize; x++ {
			if (x+2*y)%4 < 2 {
				blacks = append(blacks, entity.Position{X: x, Y: y})
			} else {
				whites = append(whites, entity.Position{X: x, Y: y})
			}
		}
	}

	reporter := &mockReporter{}
	manager := NewMatchManager(discardLogger(), "Ann", "Bob", reporter)

	for _, pos := range []entity.Position{blacks[0], whites[0], blacks[1]} {
		_, err := manager.Place(pos)
		require.NoError(t, err)
	}

	_, err := manager.Choose(gomoku.ChoiceBlack)
	require.NoError(t, err)

	// When: the board is filled
	var outcome gomoku.Outcome
	for i := range whites[1:] {
		_, err = manager.Place(whites[1+i])
		require.NoError(t, err)

		outcome, err = manager.Place(blacks[2+i])
		require.NoError(t, err)
	}

	// Then: the tie ends the match without a report
	assert.Equal(t, gomoku.StatusTie, outcome.Status)
	reporter.AssertNotCalled(t, "PushResult", mock.Anything)
}
