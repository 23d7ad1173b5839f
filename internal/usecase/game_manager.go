package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type botService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

// GameManager drives a human (Minimizer) versus computer (Maximizer) session.
type GameManager struct {
	logger *slog.Logger
	bot    botService

	computerFirst bool
}

func NewGameManager(logger *slog.Logger, bot botService, computerFirst bool) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		bot:    bot,

		computerFirst: computerFirst,
	}
}

// NewGame starts a session. When the computer opens, its first move is already on the board.
func (that *GameManager) NewGame(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("method", "NewGame")

	first := entity.Minimizer
	if that.computerFirst {
		first = entity.Maximizer
	}

	game := entity.NewGame(first)

	if that.computerFirst {
		if err := that.bot.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	log.Info("game started", "computerFirst", that.computerFirst)

	return game, nil
}

// MakeTurn plays the human move on cell and, if the game goes on, the computer reply.
// Rejected moves leave the game unchanged and wrap the entity error.
func (that *GameManager) MakeTurn(ctx context.Context, game *entity.Game, cell int) (*entity.Game, error) {
	if err := game.MakeTurn(entity.Minimizer, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		that.logResult(game)
		return game, nil
	}

	if err := that.bot.MakeTurn(ctx, game); err != nil {
		return game, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if game.IsFinished() {
		that.logResult(game)
	}

	return game, nil
}

func (that *GameManager) logResult(game *entity.Game) {
	that.logger.Info("game finished", "result", game.Result().String())
}
