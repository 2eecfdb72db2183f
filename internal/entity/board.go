package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

const (
	BoardSize = 15
	WinLength = 5
)

type Color uint8

const (
	ColorNone Color = iota
	ColorBlack
	ColorWhite
)

func (that Color) String() string {
	switch that {
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	default:
		return "none"
	}
}

// Opposite returns the other stone color. ColorNone has no opposite.
func (that Color) Opposite() Color {
	switch that {
	case ColorBlack:
		return ColorWhite
	case ColorWhite:
		return ColorBlack
	default:
		return ColorNone
	}
}

func (that Color) IsValid() bool {
	return that == ColorBlack || that == ColorWhite
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.X, that.Y)
}

type Stone struct {
	Position Position `json:"position"`
	Color    Color    `json:"color"`
}

// Board owns the grid. Cells are only ever filled, never cleared.
type Board struct {
	cells  [BoardSize][BoardSize]Color
	stones []Stone
}

func NewBoard() *Board {
	return &Board{
		stones: make([]Stone, 0, BoardSize*BoardSize),
	}
}

func (that *Board) Size() int {
	return BoardSize
}

func (that *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < BoardSize && pos.Y >= 0 && pos.Y < BoardSize
}

func (that *Board) IsEmpty(pos Position) bool {
	return that.InBounds(pos) && that.cells[pos.X][pos.Y] == ColorNone
}

// Get returns ColorNone for empty and out-of-bounds cells.
func (that *Board) Get(pos Position) Color {
	if !that.InBounds(pos) {
		return ColorNone
	}

	return that.cells[pos.X][pos.Y]
}

func (that *Board) Place(pos Position, color Color) error {
	if !that.InBounds(pos) {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, pos)
	}

	if !color.IsValid() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidColor, color)
	}

	if that.cells[pos.X][pos.Y] != ColorNone {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, pos)
	}

	that.cells[pos.X][pos.Y] = color
	that.stones = append(that.stones, Stone{Position: pos, Color: color})

	return nil
}

// Stones returns placed stones in placement order.
func (that *Board) Stones() []Stone {
	stones := make([]Stone, len(that.stones))
	copy(stones, that.stones)

	return stones
}

func (that *Board) LastPlaced() (Stone, bool) {
	if len(that.stones) == 0 {
		return Stone{}, false
	}

	return that.stones[len(that.stones)-1], true
}

func (that *Board) Full() bool {
	return len(that.stones) == BoardSize*BoardSize
}
