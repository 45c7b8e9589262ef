package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/postcard"
	"github.com/wippyai/postcard/cobs"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(10)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	delimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type view int

const (
	viewRaw view = iota
	viewMessage
)

type interactiveModel struct {
	err     error
	input   textinput.Model
	raw     []byte
	payload []byte
	frame   []byte
	back    []byte
	mode    view
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "11 22 00 33"
	ti.Prompt = "hex> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.mode = (m.mode + 1) % 2
			m.recompute()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.recompute()
	return m, cmd
}

// recompute stuffs the current input and destuffs it again. In message view
// the input is first encoded as a postcard byte string.
func (m *interactiveModel) recompute() {
	m.err = nil
	m.raw, m.payload, m.frame, m.back = nil, nil, nil, nil

	raw, err := parseHex(m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	m.raw = raw
	m.payload = raw
	if m.mode == viewMessage {
		if m.payload, err = postcard.Marshal(raw); err != nil {
			m.err = err
			return
		}
	}

	m.frame = cobs.Encode(m.payload)
	back, err := cobs.Decode(m.frame)
	if err != nil {
		m.err = err
		return
	}
	m.back = back
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("COBS framer"))
	if m.mode == viewMessage {
		b.WriteString(" postcard []byte message")
	} else {
		b.WriteString(" raw bytes")
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case len(m.raw) > 0 || m.input.Value() != "":
		if m.mode == viewMessage {
			row(&b, "message", formatHex(m.payload))
		}
		row(&b, "frame", renderFrame(m.frame))
		row(&b, "size", fmt.Sprintf("%d -> %d bytes (max %d)", len(m.payload), len(m.frame), cobs.MaxEncodedLen(len(m.payload))))
		if bytes.Equal(m.back, m.payload) {
			row(&b, "destuff", resultStyle.Render("round trip ok"))
		} else {
			row(&b, "destuff", errorStyle.Render(formatHex(m.back)))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab raw/message • esc quit"))
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

// renderFrame highlights block code bytes and the delimiter.
func renderFrame(frame []byte) string {
	parts := make([]string, len(frame))
	next := 0
	for i, c := range frame {
		s := fmt.Sprintf("%02x", c)
		switch {
		case c == cobs.Delimiter:
			s = delimStyle.Render(s)
		case i == next:
			s = codeStyle.Render(s)
			next = i + int(c)
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
