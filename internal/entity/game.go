package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrInvalidBoard      = errors.New("invalid board")
	ErrUnknownGameStatus = errors.New("unknown game status")
)

// Move is a mark placed by a player on a cell.
type Move struct {
	Player Player
	Cell   int
}

// Game is a single human versus computer session.
type Game struct {
	Board    Board
	Turn     Player
	Status   string
	Winner   Player
	LastMove *Move
}

func NewGame(first Player) *Game {
	return &Game{
		Turn:   first,
		Status: StatusOngoing,
	}
}

func (that *Game) MakeTurn(player Player, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if !player.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPlayer, player)
	}

	if that.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != Empty {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = player.Mark()
	that.LastMove = &Move{Player: player, Cell: cell}

	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	if winner, ok := that.Board.Winner(); ok {
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = 0
		return
	}

	// the game will continue until all the squares are full
	if that.Board.IsFull() {
		that.Winner = 0
		that.Status = StatusFinished
		that.Turn = 0
		return
	}

	that.Status = StatusOngoing
	if that.LastMove != nil {
		that.Turn = that.LastMove.Player.Opponent()
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && !that.Winner.Valid()
}

// Result is the finished game's score for the Maximizer.
func (that *Game) Result() Score {
	switch that.Winner {
	case Maximizer:
		return Win
	case Minimizer:
		return Loss
	default:
		return Draw
	}
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
