package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/console"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/tui"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return run(ctx, logger, conf, os.Stdin, os.Stdout)
}

func run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	bot := service.NewBotService(logger, conf.Search.Workers)
	manager := usecase.NewGameManager(logger, bot, conf.ComputerFirst)
	glyphs := glyphsFrom(conf.Marks)

	log.Info("Starting game", "frontend", conf.Frontend, "workers", conf.Search.Workers, "computerFirst", conf.ComputerFirst)

	switch conf.Frontend {
	case config.FrontendTUI:
		if err := tui.Run(ctx, manager, glyphs); err != nil {
			return fmt.Errorf("tui error: %w", err)
		}
		return nil
	case config.FrontendConsole:
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownFrontend, conf.Frontend)
	}

	// the console blocks on input, so it runs aside and a signal can still end the app
	errCh := make(chan error, 1)
	go func() {
		errCh <- console.New(logger, manager, glyphs, in, out).Run(ctx)
	}()

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, console.ErrInputClosed) {
			log.Info("Game session ended")
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("console error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func glyphsFrom(marks config.Marks) entity.Glyphs {
	return entity.Glyphs{
		Maximizer: marks.Computer,
		Minimizer: marks.Human,
		Empty:     marks.Empty,
	}
}
