package entity

import (
	"fmt"
	"strings"
)

// BoardSize is the number of cells on the 3x3 grid.
const BoardSize = 9

// Player is one of the two search roles. The computer is the Maximizer, the human the Minimizer.
type Player uint8

const (
	Maximizer Player = iota + 1
	Minimizer
)

func (p Player) Valid() bool {
	return p == Maximizer || p == Minimizer
}

func (p Player) Opponent() Player {
	if p == Maximizer {
		return Minimizer
	}
	return Maximizer
}

// Mark returns the cell value occupied by p.
func (p Player) Mark() Cell {
	return Cell(p)
}

func (p Player) String() string {
	switch p {
	case Maximizer:
		return "maximizer"
	case Minimizer:
		return "minimizer"
	default:
		return fmt.Sprintf("player(%d)", uint8(p))
	}
}

// Cell is either Empty or the mark of a Player.
type Cell uint8

const Empty Cell = 0

// Owner reports which player occupies the cell.
func (c Cell) Owner() (Player, bool) {
	p := Player(c)
	return p, p.Valid()
}

// Score is a terminal evaluation, always from the Maximizer's point of view.
type Score int

const (
	Loss Score = -10
	Draw Score = 0
	Win  Score = 10
)

func (s Score) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("score(%d)", int(s))
	}
}

// WinCombos are the 8 lines of three: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid stored row-major: index i is row i/3, column i%3.
type Board [BoardSize]Cell

func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == Empty {
			return false
		}
	}
	return true
}

func (b Board) HasWon(player Player) bool {
	mark := player.Mark()
	for _, combo := range WinCombos {
		if b[combo[0]] == mark && b[combo[1]] == mark && b[combo[2]] == mark {
			return true
		}
	}
	return false
}

// Evaluate scores the board for the Maximizer. A board without a winner scores Draw, whether or not it is full.
func (b Board) Evaluate() Score {
	switch {
	case b.HasWon(Maximizer):
		return Win
	case b.HasWon(Minimizer):
		return Loss
	default:
		return Draw
	}
}

// Winner returns the player owning a complete line, checking the Maximizer first.
func (b Board) Winner() (Player, bool) {
	switch {
	case b.HasWon(Maximizer):
		return Maximizer, true
	case b.HasWon(Minimizer):
		return Minimizer, true
	default:
		return 0, false
	}
}

func (b Board) IsTerminal() bool {
	_, won := b.Winner()
	return won || b.IsFull()
}

// EmptyCells returns the indices of empty cells in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range b {
		if cell == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// Glyphs maps cells to the characters used to draw them.
type Glyphs struct {
	Maximizer string
	Minimizer string
	Empty     string
}

var DefaultGlyphs = Glyphs{Maximizer: "O", Minimizer: "X", Empty: " "}

func (g Glyphs) Of(c Cell) string {
	switch c {
	case Maximizer.Mark():
		return g.Maximizer
	case Minimizer.Mark():
		return g.Minimizer
	default:
		return g.Empty
	}
}

// Format draws the board as three rows separated by rules:
//
//	 X | O | X
//	-----------
//	   | O |
func (b Board) Format(glyphs Glyphs) string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("-----------\n")
		}
		i := row * 3
		fmt.Fprintf(&sb, " %s | %s | %s\n", glyphs.Of(b[i]), glyphs.Of(b[i+1]), glyphs.Of(b[i+2]))
	}
	return sb.String()
}

func (b Board) String() string {
	return b.Format(Glyphs{Maximizer: "O", Minimizer: "X", Empty: "."})
}

// ParseBoard reads a board from 9 characters where 'O' is the Maximizer, 'X' the Minimizer and '.' an empty cell.
// Whitespace and '|' are ignored, so "XO. .X. ..O" and the same rows on separate lines are equivalent.
func ParseBoard(s string) (Board, error) {
	var (
		b Board
		n int
	)
	for _, r := range s {
		var cell Cell
		switch r {
		case 'O', 'o':
			cell = Maximizer.Mark()
		case 'X', 'x':
			cell = Minimizer.Mark()
		case '.':
			cell = Empty
		case ' ', '\n', '\t', '\r', '|':
			continue
		default:
			return Board{}, fmt.Errorf("%w: unexpected %q", ErrInvalidBoard, r)
		}
		if n >= BoardSize {
			return Board{}, fmt.Errorf("%w: more than %d cells", ErrInvalidBoard, BoardSize)
		}
		b[n] = cell
		n++
	}
	if n != BoardSize {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", ErrInvalidBoard, n, BoardSize)
	}
	return b, nil
}
