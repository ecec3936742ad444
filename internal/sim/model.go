// Package sim provides the BubbleTea-based terminal simulator: it shows the
// compositor's framebuffer and turns key presses into button events.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/winstack/internal/button"
	"github.com/jmylchreest/winstack/internal/compositor"
	"github.com/jmylchreest/winstack/internal/config"
	"github.com/jmylchreest/winstack/internal/demo"
	"github.com/jmylchreest/winstack/internal/gfx"
	"github.com/jmylchreest/winstack/internal/runloop"
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	roundStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the simulator TUI model.
type Model struct {
	loop     *runloop.Loop
	app      *demo.App
	frames   <-chan *gfx.Framebuffer
	renderer *Renderer
	shape    gfx.Shape

	frame *gfx.Framebuffer

	keys KeyMap
	help help.Model

	statusMsg string
	statusErr bool
}

// frameMsg carries a framebuffer copy taken after a draw tick.
type frameMsg struct {
	fb *gfx.Framebuffer
}

// New creates a simulator model. frames delivers framebuffer copies from
// the loop; it may be nil in tests.
func New(loop *runloop.Loop, app *demo.App, frames <-chan *gfx.Framebuffer, cfg *config.Config) Model {
	h := help.New()
	h.ShowAll = cfg.Simulator.ShowHelp
	return Model{
		loop:     loop,
		app:      app,
		frames:   frames,
		renderer: NewRenderer(cfg.Shape()),
		shape:    cfg.Shape(),
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return m.waitForFrame
}

// waitForFrame blocks until the loop publishes a frame.
func (m Model) waitForFrame() tea.Msg {
	if m.frames == nil {
		return nil
	}
	fb, ok := <-m.frames
	if !ok {
		return nil
	}
	return frameMsg{fb: fb}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.frame = msg.fb
		return m, m.waitForFrame
	}
	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if id, ok := m.keys.Button(msg); ok {
		m.loop.Press(button.Click(id))
		m.statusMsg, m.statusErr = id.String(), false
		return m, nil
	}

	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Notify):
		err = m.app.NotifySample()
		m.statusMsg = "notification sent"
	case key.Matches(msg, m.keys.Push):
		err = m.app.PushCard()
		m.statusMsg = "push"
	case key.Matches(msg, m.keys.Pop):
		err = m.app.PopCard()
		m.statusMsg = "pop"
	default:
		return m, nil
	}
	m.statusErr = err != nil
	if err != nil {
		m.statusMsg = err.Error()
	}
	return m, nil
}

// View renders the display, a status line and the help.
func (m Model) View() string {
	var b strings.Builder

	style := frameStyle
	if m.shape == gfx.ShapeRound {
		style = roundStyle
	}
	if m.frame != nil {
		b.WriteString(style.Render(m.renderer.Render(m.frame)))
	} else {
		b.WriteString(style.Render("waiting for first frame..."))
	}
	b.WriteString("\n")

	status := fmt.Sprintf("draws: %d", m.loop.Draws())
	if m.statusMsg != "" {
		status += "  " + m.statusMsg
	}
	if m.statusErr {
		b.WriteString(errStyle.Render(status))
	} else {
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// publish hands a copy of fb to the simulator, replacing any frame the UI
// has not picked up yet.
func publish(ch chan *gfx.Framebuffer, fb *gfx.Framebuffer) {
	frame := fb.Clone()
	for {
		select {
		case ch <- frame:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// RunOptions configures the simulator.
type RunOptions struct {
	Config *config.Config
	// ConfigPath is watched for changes when Watch is set.
	ConfigPath string
	Watch      bool
	Logger     *slog.Logger
}

// Run starts the simulator with the given options.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	frames := make(chan *gfx.Framebuffer, 1)
	loop := runloop.New(runloop.Options{
		Compositor: compositor.Options{
			Screen: cfg.ScreenSize(),
			Transition: compositor.TransitionOptions{
				Duration: cfg.Transition.Duration.Duration(),
				Curve:    cfg.Curve(),
			},
		},
		FrameRate: cfg.Simulator.FrameRate,
		OnDraw:    func(fb *gfx.Framebuffer) { publish(frames, fb) },
		Logger:    logger,
	})
	app := demo.New(loop, demo.Options{Config: cfg, Logger: logger})
	if err := app.Start(); err != nil {
		return err
	}

	// Start config watcher if requested
	if opts.Watch {
		watcher, err := config.NewWatcher(opts.ConfigPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			watcher.SetReloadCallback(func(cfg *config.Config) {
				if err := app.ApplyConfig(cfg); err != nil {
					logger.Warn("failed to apply config", "error", err)
				}
			})
			if err := watcher.Start(cfg); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
			defer func() {
				if err := watcher.Stop(); err != nil {
					logger.Warn("failed to stop config watcher", "error", err)
				}
			}()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	p := tea.NewProgram(New(loop, app, frames, cfg), tea.WithAltScreen())
	_, err := p.Run()

	cancel()
	if lerr := <-done; lerr != nil && err == nil {
		err = lerr
	}
	return err
}
