package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/motion-snake/internal/core"
	"github.com/vovakirdan/motion-snake/internal/session"
	"github.com/vovakirdan/motion-snake/internal/vision/capture"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the Bubble Tea model wrapping the run controller. The model
// owns the terminal concerns only: key mapping, the tick pump, and
// turning session state into styled output. All game truth lives in
// the controller.
type Model struct {
	ctrl   *session.Controller
	source capture.Source
	screen *core.Screen
	config core.RuntimeConfig

	nameInput textinput.Model
	startErr  string
	quitting  bool
}

// NewModel creates a model for the given controller and frame source.
func NewModel(ctrl *session.Controller, source capture.Source, cfg core.RuntimeConfig) Model {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 12
	ti.Width = 16
	ti.Focus()

	return Model{
		ctrl:      ctrl,
		source:    source,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		nameInput: ti,
	}
}

// Init starts the tick pump and the name cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.config.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The screen follows the terminal; the grid stays fixed for
		// the run (it was sized from the viewport at start).
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}

	switch m.ctrl.State() {
	case session.StateIdle:
		switch key {
		case "esc":
			return m.quit()
		case "enter":
			name := strings.TrimSpace(m.nameInput.Value())
			if err := m.ctrl.Start(name, time.Now()); err != nil {
				m.startErr = "Enter a name to start"
				return m, nil
			}
			m.startErr = ""
			return m, nil
		}
		// Everything else feeds the name field
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case session.StateGameOver:
		switch key {
		case "r":
			m.ctrl.Replay(time.Now())
		case "q", "esc":
			return m.quit()
		}

	default: // countdown, playing
		if key == "q" || key == "esc" {
			return m.quit()
		}
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.ctrl.Stop()
	return m, tea.Quit
}

// handleTick pulls one camera frame and drives the controller. A grab
// error counts as a motionless tick; the camera owns its own recovery.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	frame, err := m.source.Grab()
	if err != nil {
		frame = nil
	}
	m.ctrl.Tick(time.Time(msg), frame)

	return m, tickCmd(m.config.TickRate)
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.ctrl.State() == session.StateIdle {
		return m.idleView()
	}

	m.screen.Clear()
	drawHUD(m.screen, m.ctrl)
	drawBoard(m.screen, m.ctrl.Game())

	switch m.ctrl.State() {
	case session.StateCountdown:
		rem := m.ctrl.CountdownRemaining(time.Now())
		secs := core.Clamp(int(rem.Seconds())+1, 1, int(session.CountdownDuration.Seconds()))
		drawOverlay(m.screen, fmt.Sprintf("Get ready: %d", secs), "Move to steer the snake")
	case session.StateGameOver:
		drawOverlay(m.screen, fmt.Sprintf("Game Over - Score: %d", m.ctrl.Game().Score), "R to replay, Q to quit")
		drawLeaderboard(m.screen, m.ctrl, m.screen.Height()-13)
	}

	return RenderScreen(m.screen)
}

// idleView is the name-entry menu, rendered with lipgloss directly.
func (m Model) idleView() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  MOTION SNAKE"))
	b.WriteString("\n\n")
	b.WriteString("  Steer with your body - no keyboard once the game starts.\n\n")
	b.WriteString("  Name: " + m.nameInput.View() + "\n")
	if m.startErr != "" {
		b.WriteString("  " + errStyle.Render(m.startErr) + "\n")
	}
	b.WriteString("\n")

	entries := m.ctrl.Board().Entries()
	if len(entries) > 0 {
		b.WriteString("  High scores:\n")
		for i, e := range entries {
			b.WriteString(fmt.Sprintf("   %2d. %-12s %5d\n", i+1, e.Name, e.Score))
		}
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render("  Enter to start · Esc to quit"))
	return b.String()
}

// Run starts the Bubble Tea program for the given session.
func Run(ctrl *session.Controller, source capture.Source, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(ctrl, source, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
