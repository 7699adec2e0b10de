// Package tui provides the BubbleTea-based interactive PopTip demo.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/poptip/internal/config"
	"github.com/jmylchreest/poptip/internal/scenario"
	"github.com/jmylchreest/poptip/internal/theme"
)

// tickInterval is how often the timer clock advances.
const tickInterval = 50 * time.Millisecond

// chrome is the rows used by the header and the footer.
const chrome = 2

// Model is the main TUI model.
type Model struct {
	cfg        *config.Config
	configPath string
	sess       *session
	keys       KeyMap
	help       help.Model

	width    int
	height   int
	ready    bool
	showHelp bool
}

type tickMsg time.Time

type configChangedMsg struct{}

// New creates a TUI model presenting sc.
func New(cfg *config.Config, sc *scenario.Scenario, logger *slog.Logger) (Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if sc == nil {
		sc = scenario.Default()
	}
	sess, err := newSession(sc, cfg.ScenarioDefaults(), DefaultCellMeasurer(), logger)
	if err != nil {
		return Model{}, err
	}
	return Model{
		cfg:  cfg,
		sess: sess,
		keys: DefaultKeyMap(),
		help: help.New(),
	}, nil
}

// Init starts the timer clock.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.showHelp {
			m.sess.tap(msg.X, msg.Y-1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.sess.resize(msg.Width, max(msg.Height-chrome, 1))
		if !m.ready {
			m.ready = true
			m.sess.present(true, false)
		}
		return m, nil

	case tickMsg:
		m.sess.advance(tickInterval)
		return m, tick()

	case configChangedMsg:
		cfg, err := config.LoadConfig(m.configPath)
		if err != nil {
			m.sess.setStatus("config: "+err.Error(), true)
			return m, nil
		}
		m.cfg = cfg
		m.sess.applyConfig(cfg)
		return m, nil
	}
	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		if msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	s := m.sess
	switch {
	case key.Matches(msg, m.keys.Next):
		s.selectNext(1)
	case key.Matches(msg, m.keys.Prev):
		s.selectNext(-1)
	case key.Matches(msg, m.keys.Up):
		s.moveAnchor(0, -1)
	case key.Matches(msg, m.keys.Down):
		s.moveAnchor(0, 1)
	case key.Matches(msg, m.keys.Left):
		s.moveAnchor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		s.moveAnchor(1, 0)
	case key.Matches(msg, m.keys.Toggle):
		s.toggle()
	case key.Matches(msg, m.keys.AutoDismiss):
		if !s.tip().IsShowing() {
			s.present(true, true)
		} else {
			s.tip().AutoDismiss(true, s.autoDismiss)
			s.setStatus(fmt.Sprintf("auto-dismiss in %s", s.autoDismiss), false)
		}
	case key.Matches(msg, m.keys.Dismiss):
		s.tip().Dismiss(true)
	case key.Matches(msg, m.keys.Animation):
		s.cycleAnimation()
	case key.Matches(msg, m.keys.Direction):
		s.cycleDirection()
	case key.Matches(msg, m.keys.Shadow):
		s.toggleShadow()
	case key.Matches(msg, m.keys.Theme):
		s.cycleTheme()
	}
	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	header := headerStyle.Render(ansi.Truncate(m.sess.summary(), m.width, "…"))

	rows := max(m.height-chrome, 1)
	var body string
	if m.showHelp {
		m.help.ShowAll = true
		body = lipgloss.NewStyle().Height(rows).Render(m.help.View(m.keys))
	} else {
		body = paintScene(m.sess.built.Scene, m.sess.cells, m.width, rows, m.sess.anchor()).String()
	}

	return header + "\n" + body + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.sess.status != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.sess.statusErr {
			style = style.Foreground(lipgloss.Color("9"))
		}
		return style.Render(ansi.Truncate(m.sess.status, m.width, "…"))
	}
	if !m.cfg.TUI.ShowHelp {
		return ""
	}
	return m.buildKeybindBar(m.width)
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
func (m Model) buildKeybindBar(width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	binds := []keybind{
		{"q", "quit", 1},
		{"enter", "show/hide", 2},
		{"?", "help", 3},
		{"tab", "next view", 4},
		{"a", "auto", 5},
		{"p", "anim", 6},
		{"o", "direction", 7},
		{"t", "theme", 8},
		{"s", "shadow", 9},
		{"↑↓←→", "move", 10},
	}

	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		plainItem := b.key + " " + b.desc
		testLen := ansi.StringWidth(result) + ansi.StringWidth(plainItem)
		if result != "" {
			testLen += len(separator)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Path to watch for changes (empty = no watching)
	Scenario   *scenario.Scenario
	Logger     *slog.Logger
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m, err := New(opts.Config, opts.Scenario, logger)
	if err != nil {
		return err
	}
	m.configPath = opts.ConfigPath

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	var watcher *theme.Watcher
	if opts.ConfigPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		watcher = theme.NewWatcher(opts.ConfigPath, logger)
		watcher.SetChangeCallback(func(string) { p.Send(configChangedMsg{}) })
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("failed to watch config", "path", opts.ConfigPath, "error", err)
			watcher = nil
		}
	}

	_, err = p.Run()

	if watcher != nil {
		watcher.Stop()
	}

	return err
}
