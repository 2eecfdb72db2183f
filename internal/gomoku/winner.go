package gomoku

import "github.com/rocketscienceinc/gomoku-backend/internal/entity"

type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
	AxisDiagonalUp
	AxisDiagonalDown
)

// Axes lists the four undirected lines through a cell.
var Axes = [4]Axis{AxisHorizontal, AxisVertical, AxisDiagonalUp, AxisDiagonalDown}

// step is the forward direction of an axis; the backward one is its negation.
func (that Axis) step() (int, int) {
	switch that {
	case AxisHorizontal:
		return 1, 0
	case AxisVertical:
		return 0, 1
	case AxisDiagonalUp:
		return 1, 1
	case AxisDiagonalDown:
		return 1, -1
	default:
		return 0, 0
	}
}

// CheckWin reports whether the stone of color at pos completes a line of
// WinLength or more. Overlines count.
func CheckWin(board *entity.Board, pos entity.Position, color entity.Color) bool {
	for _, axis := range Axes {
		if RunLength(board, pos, color, axis) >= entity.WinLength {
			return true
		}
	}

	return false
}

// RunLength counts pos plus contiguous cells of color on both sides along axis,
// looking at most WinLength-1 cells per side. It is zero when pos is off the
// board or color is not a stone color.
func RunLength(board *entity.Board, pos entity.Position, color entity.Color, axis Axis) int {
	if !board.InBounds(pos) || !color.IsValid() {
		return 0
	}

	dx, dy := axis.step()
	if dx == 0 && dy == 0 {
		return 0
	}

	return 1 + scan(board, pos, color, dx, dy) + scan(board, pos, color, -dx, -dy)
}

func scan(board *entity.Board, pos entity.Position, color entity.Color, dx, dy int) int {
	count := 0

	for i := 1; i < entity.WinLength; i++ {
		next := entity.Position{X: pos.X + dx*i, Y: pos.Y + dy*i}
		if !board.InBounds(next) || board.Get(next) != color {
			break
		}
		count++
	}

	return count
}
