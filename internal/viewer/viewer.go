// Package viewer shows a rendered report in a scrollable terminal pager.
// Pressing r re-runs the whole pipeline; there is no incremental update.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var ErrNotTerminal = errors.New("viewer requires an interactive terminal")

// ReloadFunc rebuilds the report text from scratch.
type ReloadFunc func(ctx context.Context) (string, error)

type Options struct {
	Title   string
	NoColor bool
	Reload  ReloadFunc
}

type Viewer struct {
	options Options
}

func New(opts Options) *Viewer {
	return &Viewer{options: opts}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run shows content until the user quits.
func (v *Viewer) Run(ctx context.Context, content string) error {
	if !IsTerminal(os.Stdin) || !IsTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	p := tea.NewProgram(
		newModel(ctx, v.options, content, time.Now()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

type reloadedMsg struct {
	content string
	err     error
	at      time.Time
}

type model struct {
	ctx        context.Context
	options    Options
	viewport   viewport.Model
	ready      bool
	content    string
	reloading  bool
	lastUpdate time.Time
	err        error
}

func newModel(ctx context.Context, opts Options, content string, now time.Time) model {
	return model{
		ctx:        ctx,
		options:    opts,
		content:    content,
		lastUpdate: now,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.reloading || m.options.Reload == nil {
				return m, nil
			}
			m.reloading = true
			return m, m.reload()
		}

	case tea.WindowSizeMsg:
		height := msg.Height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil

	case reloadedMsg:
		m.reloading = false
		m.err = msg.err
		if msg.err == nil {
			m.content = msg.content
			m.lastUpdate = msg.at
			if m.ready {
				m.viewport.SetContent(m.content)
			}
		}
		return m, nil
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) reload() tea.Cmd {
	ctx, reload := m.ctx, m.options.Reload
	return func() tea.Msg {
		content, err := reload(ctx)
		return reloadedMsg{content: content, err: err, at: time.Now()}
	}
}

func (m model) header() string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if !m.options.NoColor {
		style = style.Foreground(lipgloss.Color("205"))
	}
	return style.Render(fmt.Sprintf("%s  (%s)", m.options.Title, m.lastUpdate.Format("15:04:05")))
}

func (m model) footer() string {
	style := lipgloss.NewStyle().Padding(0, 1)
	if !m.options.NoColor {
		style = style.Foreground(lipgloss.Color("240"))
	}

	status := "q quit • r reload • ↑/↓ pgup/pgdn scroll"
	switch {
	case m.reloading:
		status = "reloading..."
	case m.err != nil:
		status = "reload failed: " + m.err.Error()
	}
	if m.ready {
		status = fmt.Sprintf("%3.f%%  %s", m.viewport.ScrollPercent()*100, status)
	}
	return style.Render(status)
}

func (m model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View(), m.footer())
}
