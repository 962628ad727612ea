package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/rangedump"
	"github.com/wippyai/rangedump/dump"
	"github.com/wippyai/rangedump/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	filename string
	buf      []byte
	desc     func() rangedump.Node
	opts     dump.Options
	offset   int
	size     int
	used     int
	view     viewport.Model
	input    textinput.Model
	ready    bool
	state    modelState
}

type modelState int

const (
	stateView modelState = iota
	stateGotoOffset
)

func newInteractiveModel(filename string, buf []byte, descFn func() rangedump.Node, opts dump.Options, offset, size int) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		buf:      buf,
		desc:     descFn,
		opts:     opts,
		offset:   offset,
		size:     size,
		state:    stateView,
	}
}

type dumpMsg struct {
	err  error
	text string
	used int
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.redump
}

// redump renders the whole buffer with the current options. A fresh
// engine per render keeps the fallback colors stable across re-renders.
func (m *interactiveModel) redump() tea.Msg {
	o := m.opts
	eng, err := dump.NewWithOptions(&o)
	if err != nil {
		return dumpMsg{err: err}
	}
	text, used, err := eng.DumpConsumed(m.desc(), m.buf, m.offset, m.size)
	if err != nil {
		return dumpMsg{err: err}
	}
	return dumpMsg{text: text, used: used}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateGotoOffset {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit

			case "enter":
				m.state = stateView
				if off, err := strconv.ParseInt(strings.TrimSpace(m.input.Value()), 0, 32); err == nil && off >= 0 {
					m.offset = int(off)
					return m, m.redump
				}
				return m, nil

			case "esc":
				m.state = stateView
				return m, nil

			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "f":
			if m.opts.Format == render.FormatANSI {
				m.opts.Format = render.FormatPlain
			} else {
				m.opts.Format = render.FormatANSI
			}
			return m, m.redump

		case "v":
			if m.opts.Orientation == dump.Vertical {
				m.opts.Orientation = dump.Horizontal
			} else {
				m.opts.Orientation = dump.Vertical
			}
			return m, m.redump

		case "h":
			show := !m.opts.ShowHeader
			m.opts.ShowHeader = show
			m.opts.ShowRuler = show
			return m, m.redump

		case "c":
			m.opts.ShowCumulative = !m.opts.ShowCumulative
			return m, m.redump

		case "[":
			if m.opts.DataWidth > 1 {
				m.opts.DataWidth /= 2
				return m, m.redump
			}
			return m, nil

		case "]":
			if m.opts.DataWidth < 64 {
				m.opts.DataWidth *= 2
				return m, m.redump
			}
			return m, nil

		case "g":
			ti := textinput.New()
			ti.Prompt = "offset: "
			ti.Placeholder = "decimal or 0x hex"
			ti.Width = 24
			ti.Focus()
			m.input = ti
			m.state = stateGotoOffset
			return m, nil
		}

	case tea.WindowSizeMsg:
		// Reserve lines for the title, status and help rows.
		w, h := msg.Width, msg.Height-4
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.view = viewport.New(w, h)
			m.ready = true
		} else {
			m.view.Width = w
			m.view.Height = h
		}

	case dumpMsg:
		m.err = msg.err
		if msg.err == nil {
			m.used = msg.used
			m.view.SetContent(msg.text)
			m.view.GotoTop()
		}
	}

	if m.state == stateView && m.ready {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Range Dump"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s • %s • width %d • offset 0x%x • %d of %d bytes",
		m.opts.Format, m.opts.Orientation, m.opts.DataWidth, m.offset, m.used, len(m.buf))))
	b.WriteString("\n")

	b.WriteString(m.view.View())
	b.WriteString("\n")

	switch {
	case m.state == stateGotoOffset:
		b.WriteString(m.input.View())
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	default:
		b.WriteString(helpStyle.Render("↑/↓ scroll • f format • v orientation • [/] width • g offset • h header • c cumulative • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, buf []byte, descFn func() rangedump.Node, opts dump.Options, offset, size int) error {
	p := tea.NewProgram(newInteractiveModel(filename, buf, descFn, opts, offset, size), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
