package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, computerFirst bool) Model {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, service.NewBotService(logger, 1), computerFirst)

	m := New(context.Background(), manager, entity.DefaultGlyphs)
	return send(t, m, m.Init()())
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)

	return model
}

func requireQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Start(t *testing.T) {
	t.Run("Human first waits for a move", func(t *testing.T) {
		m := newModel(t, false)

		require.NotNil(t, m.game)
		assert.Equal(t, entity.Board{}, m.game.Board)
		assert.Equal(t, statusYourMove, m.status)
		assert.Equal(t, 4, m.cursor)
	})

	t.Run("Computer first shows the opening move", func(t *testing.T) {
		m := newModel(t, true)

		assert.Equal(t, entity.Maximizer.Mark(), m.game.Board[0])
		assert.Contains(t, m.status, "Computer plays move 1.")
		assert.Contains(t, m.View(), "Computer plays move 1.")
	})

	t.Run("View before the game starts", func(t *testing.T) {
		m := New(context.Background(), nil, entity.DefaultGlyphs)

		assert.Equal(t, "Starting game...\n", m.View())
	})
}

func TestModel_Keys(t *testing.T) {
	t.Run("Cursor moves and stays on the board", func(t *testing.T) {
		// Given: the cursor in the centre
		m := newModel(t, false)

		// When: moving up twice and left twice
		m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
		m = send(t, m, runes("k"))
		m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		m = send(t, m, runes("h"))

		// Then: the cursor stops at the top-left corner
		assert.Equal(t, 0, m.cursor)

		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
		m = send(t, m, runes("j"))
		m = send(t, m, runes("j"))
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
		m = send(t, m, runes("l"))
		m = send(t, m, runes("l"))

		assert.Equal(t, 8, m.cursor)
	})

	t.Run("Enter plays the cursor cell and the computer replies", func(t *testing.T) {
		// Given: the cursor in the centre
		m := newModel(t, false)

		// When: pressing enter
		m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		// Then: the human took the centre and the computer took a corner
		assert.Equal(t, entity.Minimizer.Mark(), m.game.Board[4])
		assert.Equal(t, entity.Maximizer.Mark(), m.game.Board[0])
		assert.Contains(t, m.status, "Computer plays move 1.")
	})

	t.Run("Space plays the cursor cell", func(t *testing.T) {
		m := newModel(t, false)

		m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})

		assert.Equal(t, entity.Minimizer.Mark(), m.game.Board[4])
	})

	t.Run("Digit plays that cell directly", func(t *testing.T) {
		m := newModel(t, false)

		m = send(t, m, runes("9"))

		assert.Equal(t, entity.Minimizer.Mark(), m.game.Board[8])
		assert.Equal(t, 8, m.cursor)
	})

	t.Run("Occupied cell keeps the game and reports an invalid move", func(t *testing.T) {
		// Given: the computer holds the corner after the first exchange
		m := newModel(t, false)
		m = send(t, m, runes("5"))
		before := m.game.Board

		// When: playing the computer's cell
		m = send(t, m, runes("1"))

		// Then: nothing changes on the board
		assert.Equal(t, statusInvalid, m.status)
		assert.Equal(t, before, m.game.Board)
	})

	t.Run("Quit keys end the program", func(t *testing.T) {
		m := newModel(t, false)

		for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
			_, cmd := m.Update(msg)
			requireQuit(t, cmd)
		}
	})

	t.Run("Replay only after the game finished", func(t *testing.T) {
		m := newModel(t, false)

		_, cmd := m.Update(runes("r"))
		assert.Nil(t, cmd)

		m.game = &entity.Game{Status: entity.StatusFinished}
		_, cmd = m.Update(runes("r"))
		require.NotNil(t, cmd)

		m = send(t, m, cmd())
		assert.True(t, m.game.IsOngoing())
		assert.Equal(t, entity.Board{}, m.game.Board)
	})
}

func TestModel_FullGame(t *testing.T) {
	// Given: a human who plays the same line as the console test
	m := newModel(t, false)

	// When: playing 5, 3, 4, 2, 9
	for _, key := range []string{"5", "3", "4", "2", "9"} {
		m = send(t, m, runes(key))
	}

	// Then: the game is a draw and a replay is offered
	require.True(t, m.game.IsFinished())
	assert.Equal(t, entity.Draw, m.game.Result())
	assert.Equal(t, "It's a draw! "+statusReplay, m.status)
	assert.Contains(t, m.View(), statusReplay)
}

type mockManager struct {
	mock.Mock
}

func (m *mockManager) NewGame(ctx context.Context) (*entity.Game, error) {
	args := m.Called(ctx)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockManager) MakeTurn(ctx context.Context, game *entity.Game, cell int) (*entity.Game, error) {
	args := m.Called(ctx, game, cell)
	result, _ := args.Get(0).(*entity.Game)
	return result, args.Error(1)
}

func TestModel_Errors(t *testing.T) {
	ctx := context.Background()
	errBroken := errors.New("broken")

	t.Run("Failing to start quits with the error", func(t *testing.T) {
		manager := &mockManager{}
		manager.On("NewGame", ctx).Return(nil, errBroken).Once()
		m := New(ctx, manager, entity.DefaultGlyphs)

		updated, cmd := m.Update(m.Init()())

		requireQuit(t, cmd)
		require.ErrorIs(t, updated.(Model).err, errBroken)
		manager.AssertExpectations(t)
	})

	t.Run("Unexpected move errors quit with the error", func(t *testing.T) {
		start := entity.NewGame(entity.Minimizer)
		manager := &mockManager{}
		manager.On("NewGame", ctx).Return(start, nil).Once()
		manager.On("MakeTurn", ctx, start, 4).Return(start, errBroken).Once()
		m := New(ctx, manager, entity.DefaultGlyphs)
		m = send(t, m, m.Init()())

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		requireQuit(t, cmd)
		require.ErrorIs(t, updated.(Model).err, errBroken)
		manager.AssertExpectations(t)
	})
}
