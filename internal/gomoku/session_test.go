package gomoku

import (
	"testing"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTakeBlack plays A: B,W,B then B takes black, leaving A (white) to move.
func openTakeBlack(t *testing.T, session *Session) {
	t.Helper()

	for _, pos := range []entity.Position{{X: 7, Y: 7}, {X: 7, Y: 8}, {X: 8, Y: 7}} {
		_, err := session.Place(pos)
		require.NoError(t, err)
	}

	_, err := session.Choose(ChoiceBlack)
	require.NoError(t, err)
}

func TestNewSession(t *testing.T) {
	session := NewSession("Ann", "Bob")

	players := session.Players()
	assert.Equal(t, "Ann", players[PlayerA].Name)
	assert.Equal(t, entity.ColorBlack, players[PlayerA].Color)
	assert.Equal(t, entity.ColorWhite, players[PlayerB].Color)
	assert.Equal(t, StatusOpening, session.Status())
	assert.Equal(t, StageFirstPlacement, session.Stage())
	assert.Equal(t, PlayerA, session.ActiveIndex())
	assert.Equal(t, entity.BoardSize*entity.BoardSize, session.Remaining())
}

func TestSession_TakeBlack(t *testing.T) {
	// Given: A places black, white, black
	session := NewSession("Ann", "Bob")

	// When: B takes black
	openTakeBlack(t, session)

	// Then: B is black, A is white and A moves next
	players := session.Players()
	assert.Equal(t, entity.ColorWhite, players[PlayerA].Color)
	assert.Equal(t, entity.ColorBlack, players[PlayerB].Color)
	assert.Equal(t, PlayerA, session.ActiveIndex())
	assert.Equal(t, StatusOngoing, session.Status())
	assert.Equal(t, entity.BoardSize*entity.BoardSize-3, session.Remaining())
}

func TestSession_PlaceTwoMoreAndFinalChoice(t *testing.T) {
	session := NewSession("Ann", "Bob")
	for _, pos := range []entity.Position{{X: 7, Y: 7}, {X: 7, Y: 8}, {X: 8, Y: 7}} {
		_, err := session.Place(pos)
		require.NoError(t, err)
	}

	outcome, err := session.Choose(ChoicePlaceTwo)
	require.NoError(t, err)
	assert.Equal(t, PlayerB, outcome.Active)

	// When: B places black then white
	outcome, err = session.Place(entity.Position{X: 3, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, entity.ColorBlack, outcome.Placed.Color)
	outcome, err = session.Place(entity.Position{X: 4, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, entity.ColorWhite, outcome.Placed.Color)
	assert.Equal(t, StageFinalChoice, outcome.Stage)
	assert.Equal(t, PlayerA, outcome.Active)

	// And: placing now is rejected
	_, err = session.Place(entity.Position{X: 5, Y: 5})
	require.ErrorIs(t, err, apperror.ErrWrongStage)

	// And: A keeps white
	outcome, err = session.Choose(ChoiceWhite)

	// Then: colors are assigned for both and A moves
	require.NoError(t, err)
	players := session.Players()
	assert.Equal(t, entity.ColorWhite, players[PlayerA].Color)
	assert.Equal(t, entity.ColorBlack, players[PlayerB].Color)
	assert.Equal(t, PlayerA, outcome.Active)
	assert.Equal(t, StatusOngoing, outcome.Status)
	assert.Len(t, session.Board().Stones(), 5)
}

func TestSession_NormalMove(t *testing.T) {
	session := NewSession("Ann", "Bob")
	openTakeBlack(t, session)

	// When: A plays a white stone
	outcome, err := session.Place(entity.Position{X: 0, Y: 0})

	// Then: the stone is white and B moves next
	require.NoError(t, err)
	assert.Equal(t, entity.ColorWhite, outcome.Placed.Color)
	assert.Equal(t, PlayerB, outcome.Active)
	assert.Equal(t, entity.BoardSize*entity.BoardSize-4, session.Remaining())
}

func TestSession_InvalidMoveIsNoOp(t *testing.T) {
	session := NewSession("Ann", "Bob")
	openTakeBlack(t, session)

	stones := session.Board().Stones()
	remaining := session.Remaining()

	// When: A plays on an occupied cell, then outside the board
	_, err := session.Place(entity.Position{X: 7, Y: 7})
	require.ErrorIs(t, err, apperror.ErrCellOccupied)

	_, err = session.Place(entity.Position{X: 15, Y: 0})
	require.ErrorIs(t, err, apperror.ErrOutOfBounds)

	// Then: nothing changed
	assert.Equal(t, stones, session.Board().Stones())
	assert.Equal(t, remaining, session.Remaining())
	assert.Equal(t, PlayerA, session.ActiveIndex())
	assert.Equal(t, entity.ColorBlack, session.Board().Get(entity.Position{X: 7, Y: 7}))
}

func TestSession_Win(t *testing.T) {
	session := NewSession("Ann", "Bob")
	openTakeBlack(t, session)

	movesA := []entity.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}
	movesB := []entity.Position{{X: 10, Y: 10}, {X: 10, Y: 12}, {X: 12, Y: 10}, {X: 12, Y: 12}}

	// When: A builds a horizontal five while B plays elsewhere
	for i, pos := range movesA {
		outcome, err := session.Place(pos)
		require.NoError(t, err)

		if i < len(movesB) {
			assert.Equal(t, StatusOngoing, outcome.Status)
			_, err = session.Place(movesB[i])
			require.NoError(t, err)
		}
	}

	// Then: A won and the session is frozen
	winner, ok := session.Winner()
	require.True(t, ok)
	assert.Equal(t, "Ann", winner.Name)
	assert.Equal(t, StatusWon, session.Status())
	assert.True(t, session.IsTerminal())

	result, ok := session.Result()
	require.True(t, ok)
	assert.Equal(t, entity.History{PlayerOneName: "Ann", PlayerTwoName: "Bob", PlayerOneWinner: true}, result)

	_, err := session.Place(entity.Position{X: 14, Y: 14})
	require.ErrorIs(t, err, apperror.ErrGameFinished)
	_, err = session.Choose(ChoiceBlack)
	require.ErrorIs(t, err, apperror.ErrGameFinished)
	assert.True(t, session.Board().IsEmpty(entity.Position{X: 14, Y: 14}))
}

// tieColor colors the board so that no axis has a run longer than two.
func tieColor(pos entity.Position) entity.Color {
	if (pos.X+2*pos.Y)%4 < 2 {
		return entity.ColorBlack
	}

	return entity.ColorWhite
}

func TestSession_Tie(t *testing.T) {
	// Given: the full-board pattern split by color
	var blacks, whites []entity.Position
	for y := 0; y < entity.BoardSize; y++ {
		for x := 0; x < entity.BoardSize; x++ {
			pos := entity.Position{X: x, Y: y}
			if tieColor(pos) == entity.ColorBlack {
				blacks = append(blacks, pos)
			} else {
				whites = append(whites, pos)
			}
		}
	}
	require.Len(t, blacks, 113)
	require.Len(t, whites, 112)

	session := NewSession("Ann", "Bob")

	// When: A opens black, white, black and B takes black
	for _, pos := range []entity.Position{blacks[0], whites[0], blacks[1]} {
		_, err := session.Place(pos)
		require.NoError(t, err)
	}
	_, err := session.Choose(ChoiceBlack)
	require.NoError(t, err)

	// And: the rest of the board is filled alternating white (A) and black (B)
	blacks, whites = blacks[2:], whites[1:]
	require.Len(t, blacks, len(whites))

	var outcome Outcome
	for i := range whites {
		outcome, err = session.Place(whites[i])
		require.NoError(t, err)
		require.NotEqual(t, StatusWon, outcome.Status)

		outcome, err = session.Place(blacks[i])
		require.NoError(t, err)
		require.NotEqual(t, StatusWon, outcome.Status)
	}

	// Then: the match is a tie with no winner and no result to report
	assert.Equal(t, StatusTie, outcome.Status)
	assert.True(t, session.IsTerminal())
	assert.Zero(t, session.Remaining())
	assert.True(t, session.Board().Full())

	_, ok := session.Winner()
	assert.False(t, ok)
	_, ok = session.Result()
	assert.False(t, ok)
}

func TestSession_Reset(t *testing.T) {
	session := NewSession("Ann", "Bob")
	openTakeBlack(t, session)
	_, err := session.Place(entity.Position{X: 0, Y: 0})
	require.NoError(t, err)

	// When: the session is reset
	session.Reset()

	// Then: everything starts over with the same names
	assert.Empty(t, session.Board().Stones())
	assert.Equal(t, StageFirstPlacement, session.Stage())
	assert.Equal(t, StatusOpening, session.Status())
	assert.Equal(t, entity.BoardSize*entity.BoardSize, session.Remaining())
	assert.Equal(t, PlayerA, session.ActiveIndex())
	assert.Equal(t, entity.ColorBlack, session.Active().Color)
	assert.Equal(t, "Bob", session.Players()[PlayerB].Name)
}

func TestSession_NextColor(t *testing.T) {
	session := NewSession("Ann", "Bob")

	// the first three stones go black, white, black
	want := []entity.Color{entity.ColorBlack, entity.ColorWhite, entity.ColorBlack}
	for i, pos := range []entity.Position{{X: 7, Y: 7}, {X: 7, Y: 8}, {X: 8, Y: 7}} {
		color, ok := session.NextColor()
		require.True(t, ok)
		assert.Equal(t, want[i], color)

		_, err := session.Place(pos)
		require.NoError(t, err)
	}

	// a choice is pending
	_, ok := session.NextColor()
	assert.False(t, ok)

	_, err := session.Choose(ChoiceBlack)
	require.NoError(t, err)

	// A plays white after B took black
	color, ok := session.NextColor()
	require.True(t, ok)
	assert.Equal(t, entity.ColorWhite, color)
}
