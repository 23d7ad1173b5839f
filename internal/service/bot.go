package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrNotBotTurn       = errors.New("it's not the bot's turn")
)

// BotService plays the computer side of a game. The computer is always the Maximizer.
type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type botService struct {
	logger  *slog.Logger
	workers int
}

// NewBotService returns a bot that searches with minimax. More than one worker splits the root moves across goroutines.
func NewBotService(logger *slog.Logger, workers int) BotService {
	return &botService{
		logger:  logger.With("component", "bot"),
		workers: workers,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "MakeTurn")

	if game.Board.IsFull() {
		return ErrNoAvailableMoves
	}

	if err := game.ConfirmOngoingState(); err != nil {
		return fmt.Errorf("bot cannot move: %w", err)
	}

	if game.Turn != entity.Maximizer {
		return ErrNotBotTurn
	}

	started := time.Now()

	result, err := that.search(ctx, game.Board)
	if err != nil {
		return fmt.Errorf("failed to search best move: %w", err)
	}

	log.Debug("search finished",
		"move", result.Move,
		"score", result.Score.String(),
		"nodes", result.Nodes,
		"cutoffs", result.Cutoffs,
		"workers", that.workers,
		"elapsed", time.Since(started),
	)

	if err = game.MakeTurn(entity.Maximizer, result.Move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *botService) search(ctx context.Context, board entity.Board) (minimax.Result, error) {
	if that.workers > 1 {
		return minimax.SearchParallel(ctx, board, entity.Maximizer, that.workers)
	}

	return minimax.Search(&board, entity.Maximizer), nil
}
