// Package tui is a terminal front end for the calculator: the same keypad
// drawn with lipgloss, driven by keyboard and mouse through bubbletea.
package tui

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"calc/calc/engine"
	"calc/calc/keypad"
	"calc/calc/screen"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Terminal layout, in cells.
const (
	cellW        = 9
	cellH        = 3
	displayLines = 4
	gridW        = cellW * keypad.Cols
	textPadding  = 2
)

const pressDuration = 120 * time.Millisecond

type releaseMsg struct {
	seq int
}

// Model is the bubbletea model. Use it through a pointer: the engine calls
// back into it on every change.
type Model struct {
	e     *engine.Engine
	log   *zap.Logger
	theme screen.Theme
	keys  keyMap
	help  help.Model

	total   string
	current string

	pressed    keypad.ID
	hasPressed bool
	pressSeq   int

	quitting bool
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

func WithTheme(t screen.Theme) Option {
	return func(m *Model) { m.theme = t }
}

func New(e *engine.Engine, opts ...Option) *Model {
	m := &Model{
		e:     e,
		log:   zap.NewNop(),
		theme: screen.DefaultTheme(),
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.total = e.Total()
	m.current = e.Current()
	e.Observe(m.changed)
	return m
}

func (m *Model) changed(f engine.Field) {
	if f&engine.FieldTotal != 0 {
		m.total = m.e.Total()
	}
	if f&engine.FieldCurrent != 0 {
		m.current = m.e.Current()
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if k, ok := lookupKey(msg); ok {
			return m, m.press(k)
		}
		m.log.Debug("unbound key", zap.String("key", msg.String()))

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if k, ok := keyAt(msg.X, msg.Y); ok {
			return m, m.press(k)
		}

	case releaseMsg:
		if msg.seq == m.pressSeq {
			m.hasPressed = false
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func lookupKey(msg tea.KeyMsg) (keypad.Key, bool) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		return keypad.Lookup(msg.Runes[0])
	}
	return keypad.LookupName(msg.String())
}

// keyAt maps a terminal cell to the key drawn there.
func keyAt(x, y int) (keypad.Key, bool) {
	if x < 0 || x >= gridW || y < displayLines {
		return keypad.Key{}, false
	}
	return keypad.At((y-displayLines)/cellH, x/cellW)
}

func (m *Model) press(k keypad.Key) tea.Cmd {
	wasError := m.e.InError()
	keypad.Apply(m.e, k)
	m.log.Debug("key",
		zap.String("label", k.Label),
		zap.String("total", m.e.Total()),
		zap.String("current", m.e.Current()),
	)
	if !wasError && m.e.InError() {
		m.log.Info("evaluation failed", zap.String("total", m.e.Total()), zap.Error(m.e.Err()))
	}

	m.pressSeq++
	m.pressed = k.ID
	m.hasPressed = true
	seq := m.pressSeq
	return tea.Tick(pressDuration, func(time.Time) tea.Msg { return releaseMsg{seq: seq} })
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	display := lipgloss.NewStyle().
		Width(gridW).
		Padding(1, textPadding).
		Align(lipgloss.Right).
		Background(hex(m.theme.Display)).
		Foreground(hex(m.theme.Label))
	inner := gridW - 2*textPadding
	text := clipLeft(keypad.FormatTotal(m.total), inner) + "\n" +
		lipgloss.NewStyle().Bold(true).Render(clipLeft(m.current, inner))

	var b strings.Builder
	b.WriteString(display.Render(text))
	b.WriteByte('\n')
	b.WriteString(m.grid())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) grid() string {
	rows := make([][]string, keypad.Rows)
	for _, k := range keypad.Keys() {
		pressed := m.hasPressed && m.pressed == k.ID
		style := lipgloss.NewStyle().
			Width(cellW*k.Span).
			Padding(1, 0).
			Align(lipgloss.Center).
			Background(hex(m.theme.KeyColor(k.Style, pressed))).
			Foreground(hex(m.theme.Label)).
			Bold(k.Action == keypad.ActionDigit)
		rows[k.Row] = append(rows[k.Row], style.Render(k.Label))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, r...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// clipLeft drops runes from the front of s until it fits in width cells.
func clipLeft(s string, width int) string {
	rs := []rune(s)
	for len(rs) > 0 && lipgloss.Width(string(rs)) > width {
		rs = rs[1:]
	}
	return string(rs)
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

// Run drives the model until the user quits or ctx is cancelled.
func Run(ctx context.Context, m *Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
