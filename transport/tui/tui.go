package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	statusYourMove = "Your move: arrows or 1-9 to choose, enter to play."
	statusInvalid  = "Invalid move. Try again."
	statusReplay   = "Press r to play again or q to quit."
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	cellStyle     = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Border(lipgloss.NormalBorder())
	cursorStyle   = cellStyle.BorderForeground(lipgloss.Color("212")).Bold(true)
	humanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	computerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle   = lipgloss.NewStyle().MarginTop(1).Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

type gameManager interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	MakeTurn(ctx context.Context, game *entity.Game, cell int) (*entity.Game, error)
}

type gameStartedMsg struct {
	game *entity.Game
}

type errMsg struct {
	err error
}

// Model is the bubbletea model for one or more games against the computer.
type Model struct {
	ctx     context.Context
	manager gameManager
	glyphs  entity.Glyphs

	game   *entity.Game
	cursor int
	status string
	err    error
}

func New(ctx context.Context, manager gameManager, glyphs entity.Glyphs) Model {
	return Model{
		ctx:     ctx,
		manager: manager,
		glyphs:  glyphs,
		cursor:  4,
	}
}

// Run blocks until the player quits or ctx is cancelled.
func Run(ctx context.Context, manager gameManager, glyphs entity.Glyphs) error {
	program := tea.NewProgram(New(ctx, manager, glyphs), tea.WithContext(ctx), tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui program failed: %w", err)
	}

	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}

	return nil
}

func (m Model) Init() tea.Cmd {
	return m.startGame
}

func (m Model) startGame() tea.Msg {
	game, err := m.manager.NewGame(m.ctx)
	if err != nil {
		return errMsg{err: fmt.Errorf("failed to start game: %w", err)}
	}
	return gameStartedMsg{game: game}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gameStartedMsg:
		m.game = msg.game
		m.cursor = 4
		m.status = m.describe()
		return m, nil
	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor >= 3 {
			m.cursor -= 3
		}
	case "down", "j":
		if m.cursor < 6 {
			m.cursor += 3
		}
	case "left", "h":
		if m.cursor%3 > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor%3 < 2 {
			m.cursor++
		}
	case "enter", " ", "space":
		return m.play(m.cursor)
	case "r":
		if m.game != nil && m.game.IsFinished() {
			return m, m.startGame
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.cursor = int(key[0] - '1')
			return m.play(m.cursor)
		}
	}

	return m, nil
}

func (m Model) play(cell int) (tea.Model, tea.Cmd) {
	if m.game == nil {
		return m, nil
	}

	game, err := m.manager.MakeTurn(m.ctx, m.game, cell)
	switch {
	case errors.Is(err, entity.ErrInvalidCell), errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameFinished):
		m.status = statusInvalid
		return m, nil
	case err != nil:
		m.err = fmt.Errorf("failed to make turn: %w", err)
		return m, tea.Quit
	}

	m.game = game
	m.status = m.describe()

	return m, nil
}

// describe summarises the game state after the latest move.
func (m Model) describe() string {
	if m.game.IsFinished() {
		return resultMessage(m.game) + " " + statusReplay
	}

	if m.game.LastMove != nil && m.game.LastMove.Player == entity.Maximizer {
		return fmt.Sprintf("Computer plays move %d. %s", m.game.LastMove.Cell+1, statusYourMove)
	}

	return statusYourMove
}

func (m Model) View() string {
	if m.game == nil {
		return "Starting game...\n"
	}

	rows := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cells = append(cells, m.renderCell(row*3+col))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Tic Tac Toe: you are %s, the computer is %s", m.glyphs.Minimizer, m.glyphs.Maximizer)))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.status))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("q: quit"))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) renderCell(i int) string {
	cell := m.game.Board[i]
	glyph := m.glyphs.Of(cell)

	switch cell {
	case entity.Minimizer.Mark():
		glyph = humanStyle.Render(glyph)
	case entity.Maximizer.Mark():
		glyph = computerStyle.Render(glyph)
	}

	if i == m.cursor && m.game.IsOngoing() {
		return cursorStyle.Render(glyph)
	}
	return cellStyle.Render(glyph)
}

func resultMessage(game *entity.Game) string {
	switch game.Result() {
	case entity.Win:
		return "Computer wins!"
	case entity.Loss:
		return "You win!"
	default:
		return "It's a draw!"
	}
}
