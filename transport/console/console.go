package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	msgPrompt        = "Enter your move (1-9): "
	msgInvalidMove   = "Invalid move. Try again."
	msgHumanWins     = "You win!"
	msgComputerWins  = "Computer wins!"
	msgDraw          = "It's a draw!"
	msgComputerMoved = "Computer plays move %d"
)

var ErrInputClosed = errors.New("input closed before the game ended")

type gameManager interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	MakeTurn(ctx context.Context, game *entity.Game, cell int) (*entity.Game, error)
}

// Console plays one game over a line-oriented reader and writer.
type Console struct {
	logger  *slog.Logger
	manager gameManager
	glyphs  entity.Glyphs

	in  *bufio.Scanner
	out io.Writer
}

func New(logger *slog.Logger, manager gameManager, glyphs entity.Glyphs, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:  logger.With("component", "console"),
		manager: manager,
		glyphs:  glyphs,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run plays a game to the end. Bad input is reported and re-prompted; it never ends the session.
func (that *Console) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	game, err := that.manager.NewGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.println("Welcome to Tic Tac Toe!")
	that.printf("You are playing as '%s', and the computer is '%s'.\n", that.glyphs.Minimizer, that.glyphs.Maximizer)
	that.announceComputerMove(game)

	for {
		if err = ctx.Err(); err != nil {
			return err
		}

		that.printBoard(game)
		that.printf("%s", msgPrompt)

		cell, ok, err := that.readCell()
		if err != nil {
			return err
		}
		if !ok {
			that.println(msgInvalidMove)
			continue
		}

		game, err = that.manager.MakeTurn(ctx, game, cell)
		if isRejectedMove(err) {
			log.Debug("move rejected", "cell", cell, "error", err)
			that.println(msgInvalidMove)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.announceComputerMove(game)

		if game.IsFinished() {
			that.printBoard(game)
			that.println(resultMessage(game))
			return nil
		}
	}
}

// readCell reads one line and converts the 1-based input to a cell index.
func (that *Console) readCell() (int, bool, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return 0, false, fmt.Errorf("failed to read move: %w", err)
		}
		return 0, false, ErrInputClosed
	}

	n, err := strconv.Atoi(strings.TrimSpace(that.in.Text()))
	if err != nil {
		return 0, false, nil
	}

	return n - 1, true, nil
}

func (that *Console) announceComputerMove(game *entity.Game) {
	if game.LastMove != nil && game.LastMove.Player == entity.Maximizer {
		that.printf(msgComputerMoved+"\n", game.LastMove.Cell+1)
	}
}

func (that *Console) printBoard(game *entity.Game) {
	that.printf("%s", game.Board.Format(that.glyphs))
}

func (that *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}

func (that *Console) println(line string) {
	_, _ = fmt.Fprintln(that.out, line)
}

func isRejectedMove(err error) bool {
	return errors.Is(err, entity.ErrInvalidCell) || errors.Is(err, apperror.ErrCellOccupied)
}

func resultMessage(game *entity.Game) string {
	switch game.Result() {
	case entity.Win:
		return msgComputerWins
	case entity.Loss:
		return msgHumanWins
	default:
		return msgDraw
	}
}
