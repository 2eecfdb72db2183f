package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type Status int

const (
	StatusOpening Status = iota
	StatusOngoing
	StatusWon
	StatusTie
)

func (that Status) String() string {
	switch that {
	case StatusOpening:
		return "opening"
	case StatusOngoing:
		return "ongoing"
	case StatusWon:
		return "won"
	case StatusTie:
		return "tie"
	default:
		return "unknown"
	}
}

const noWinner = -1

// Outcome describes the session right after an accepted placement or choice.
type Outcome struct {
	Stage  Stage
	Status Status
	Active int
	Placed *entity.Stone
}

// Session is one hot-seat match: the opening first, then alternating moves
// until a line of five or a full board.
type Session struct {
	board     *entity.Board
	opening   *Opening
	players   [2]*entity.Player
	active    int
	winner    int
	remaining int
	status    Status
}

func NewSession(playerOneName, playerTwoName string) *Session {
	session := &Session{
		players: [2]*entity.Player{
			entity.NewPlayer(playerOneName, entity.ColorNone),
			entity.NewPlayer(playerTwoName, entity.ColorNone),
		},
	}
	session.Reset()

	return session
}

// Reset starts a new match with the same player names.
func (that *Session) Reset() {
	that.board = entity.NewBoard()
	that.opening = NewOpening()
	that.winner = noWinner
	that.remaining = entity.BoardSize * entity.BoardSize
	that.status = StatusOpening
	that.applyColors(that.opening.ColorA())
	that.active = that.opening.Actor()
}

func (that *Session) Place(pos entity.Position) (Outcome, error) {
	if that.IsTerminal() {
		return Outcome{}, apperror.ErrGameFinished
	}

	if !that.opening.Done() {
		transition, err := that.opening.Place(that.board, pos)
		if err != nil {
			return Outcome{}, fmt.Errorf("opening placement: %w", err)
		}

		that.remaining--
		that.apply(transition)

		return that.outcome(transition.Placed), nil
	}

	player := that.players[that.active]
	if err := that.board.Place(pos, player.Color); err != nil {
		return Outcome{}, fmt.Errorf("invalid move: %w", err)
	}

	that.remaining--
	stone := &entity.Stone{Position: pos, Color: player.Color}

	switch {
	case CheckWin(that.board, pos, player.Color):
		that.winner = that.active
		that.status = StatusWon
	case that.remaining == 0:
		that.status = StatusTie
	default:
		that.active = 1 - that.active
	}

	return that.outcome(stone), nil
}

func (that *Session) Choose(choice Choice) (Outcome, error) {
	if that.IsTerminal() {
		return Outcome{}, apperror.ErrGameFinished
	}

	transition, err := that.opening.Choose(choice)
	if err != nil {
		return Outcome{}, fmt.Errorf("opening choice: %w", err)
	}

	that.apply(transition)

	return that.outcome(nil), nil
}

func (that *Session) apply(transition Transition) {
	that.applyColors(transition.ColorA)
	that.active = transition.Actor

	if transition.Stage == StageNormal {
		that.status = StatusOngoing
	}
}

func (that *Session) applyColors(colorA entity.Color) {
	that.players[PlayerA].Color = colorA
	that.players[PlayerB].Color = colorA.Opposite()
}

func (that *Session) outcome(placed *entity.Stone) Outcome {
	return Outcome{
		Stage:  that.opening.Stage(),
		Status: that.status,
		Active: that.active,
		Placed: placed,
	}
}

func (that *Session) Board() *entity.Board {
	return that.board
}

func (that *Session) Stage() Stage {
	return that.opening.Stage()
}

func (that *Session) Status() Status {
	return that.status
}

func (that *Session) IsTerminal() bool {
	return that.status == StatusWon || that.status == StatusTie
}

func (that *Session) Remaining() int {
	return that.remaining
}

// ActiveIndex is the player expected to act next, in the opening or in play.
func (that *Session) ActiveIndex() int {
	return that.active
}

// NextColor is the color of the next stone to be placed. It is false while a
// choice is pending or the match is over.
func (that *Session) NextColor() (entity.Color, bool) {
	if that.IsTerminal() {
		return entity.ColorNone, false
	}

	if !that.opening.Done() {
		return that.opening.NextColor()
	}

	return that.players[that.active].Color, true
}

func (that *Session) Active() entity.Player {
	return *that.players[that.active]
}

func (that *Session) Players() [2]entity.Player {
	return [2]entity.Player{*that.players[PlayerA], *that.players[PlayerB]}
}

func (that *Session) Winner() (entity.Player, bool) {
	if that.winner == noWinner {
		return entity.Player{}, false
	}

	return *that.players[that.winner], true
}

// Result is the history record of a won match. Ties produce none.
func (that *Session) Result() (entity.History, bool) {
	if that.status != StatusWon {
		return entity.History{}, false
	}

	return entity.History{
		PlayerOneName:   that.players[PlayerA].Name,
		PlayerTwoName:   that.players[PlayerB].Name,
		PlayerOneWinner: that.winner == PlayerA,
		PlayerTwoWinner: that.winner == PlayerB,
	}, true
}
