package gomoku

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// Player indexes. A opens the match, B answers the first three stones.
const (
	PlayerA = 0
	PlayerB = 1
)

type Stage int

const (
	StageFirstPlacement Stage = iota
	StageSecondChoice
	StageExtraWhitePlacement
	StagePairPlacement
	StageFinalChoice
	StageNormal
)

func (that Stage) String() string {
	switch that {
	case StageFirstPlacement:
		return "first_placement"
	case StageSecondChoice:
		return "second_choice"
	case StageExtraWhitePlacement:
		return "extra_white_placement"
	case StagePairPlacement:
		return "pair_placement"
	case StageFinalChoice:
		return "final_choice"
	case StageNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Choice is what the deciding player picks. Black and White name the color
// the chooser keeps for themself.
type Choice int

const (
	ChoiceBlack Choice = iota + 1
	ChoiceWhite
	ChoicePlaceTwo
)

func (that Choice) String() string {
	switch that {
	case ChoiceBlack:
		return "black"
	case ChoiceWhite:
		return "white"
	case ChoicePlaceTwo:
		return "two"
	default:
		return "unknown"
	}
}

func ParseChoice(raw string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "black", "b":
		return ChoiceBlack, nil
	case "white", "w":
		return ChoiceWhite, nil
	case "two", "both", "more":
		return ChoicePlaceTwo, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidChoice, raw)
	}
}

var (
	firstPlacementColors = [...]entity.Color{entity.ColorBlack, entity.ColorWhite, entity.ColorBlack}
	pairPlacementColors  = [...]entity.Color{entity.ColorBlack, entity.ColorWhite}
)

// Transition is the state the opening ends up in after one accepted input.
type Transition struct {
	Stage  Stage
	Actor  int
	ColorA entity.Color
	Placed *entity.Stone
}

// Opening is the Swap2 state machine. Rejected inputs leave it untouched.
type Opening struct {
	stage  Stage
	placed int
	colorA entity.Color
}

func NewOpening() *Opening {
	return &Opening{
		stage:  StageFirstPlacement,
		colorA: entity.ColorBlack,
	}
}

func (that *Opening) Stage() Stage {
	return that.stage
}

func (that *Opening) Done() bool {
	return that.stage == StageNormal
}

// ColorA is player A's current color; player B always holds the opposite.
func (that *Opening) ColorA() entity.Color {
	return that.colorA
}

// Actor is the index of the player expected to act in the current stage.
// Once the opening is done it is the player who makes the first normal move.
func (that *Opening) Actor() int {
	switch that.stage {
	case StageSecondChoice, StageExtraWhitePlacement, StagePairPlacement:
		return PlayerB
	default:
		return PlayerA
	}
}

// NextColor is the color of the next opening stone; false in choice stages.
func (that *Opening) NextColor() (entity.Color, bool) {
	switch that.stage {
	case StageFirstPlacement:
		return firstPlacementColors[that.placed], true
	case StageExtraWhitePlacement:
		return entity.ColorWhite, true
	case StagePairPlacement:
		return pairPlacementColors[that.placed], true
	default:
		return entity.ColorNone, false
	}
}

func (that *Opening) Place(board *entity.Board, pos entity.Position) (Transition, error) {
	color, ok := that.NextColor()
	if !ok {
		return Transition{}, fmt.Errorf("%w: cannot place a stone during %s", apperror.ErrWrongStage, that.stage)
	}

	if err := board.Place(pos, color); err != nil {
		return Transition{}, err
	}

	that.placed++

	switch that.stage {
	case StageFirstPlacement:
		if that.placed == len(firstPlacementColors) {
			that.enter(StageSecondChoice)
		}
	case StageExtraWhitePlacement:
		that.enter(StageNormal)
	case StagePairPlacement:
		if that.placed == len(pairPlacementColors) {
			that.enter(StageFinalChoice)
		}
	}

	return that.transition(&entity.Stone{Position: pos, Color: color}), nil
}

func (that *Opening) Choose(choice Choice) (Transition, error) {
	switch that.stage {
	case StageSecondChoice:
		// B chooses; A gets whatever B leaves.
		switch choice {
		case ChoiceBlack:
			that.colorA = entity.ColorWhite
			that.enter(StageNormal)
		case ChoiceWhite:
			that.colorA = entity.ColorBlack
			that.enter(StageExtraWhitePlacement)
		case ChoicePlaceTwo:
			that.enter(StagePairPlacement)
		default:
			return Transition{}, fmt.Errorf("%w: %s during %s", apperror.ErrInvalidChoice, choice, that.stage)
		}
	case StageFinalChoice:
		switch choice {
		case ChoiceBlack:
			that.colorA = entity.ColorBlack
		case ChoiceWhite:
			that.colorA = entity.ColorWhite
		default:
			return Transition{}, fmt.Errorf("%w: %s during %s", apperror.ErrInvalidChoice, choice, that.stage)
		}
		that.enter(StageNormal)
	default:
		return Transition{}, fmt.Errorf("%w: cannot choose during %s", apperror.ErrWrongStage, that.stage)
	}

	return that.transition(nil), nil
}

func (that *Opening) enter(stage Stage) {
	that.stage = stage
	that.placed = 0
}

func (that *Opening) transition(placed *entity.Stone) Transition {
	return Transition{
		Stage:  that.stage,
		Actor:  that.Actor(),
		ColorA: that.colorA,
		Placed: placed,
	}
}
