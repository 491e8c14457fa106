package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chabad360/oscwatch/internal/pump"
	"github.com/chabad360/oscwatch/internal/render"
)

// maxScrollback bounds the prompt's result history.
const maxScrollback = 200

var (
	promptTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)

	promptEchoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	promptOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	promptErrStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))

	promptHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// resultMsg carries one send result back into the prompt.
type resultMsg pump.SendResult

// pumpDoneMsg is sent when the send pump has stopped, for any reason.
type pumpDoneMsg struct {
	err error
}

// promptModel is the interactive line prompt for send mode: an input line,
// a scrollback of results, nothing else.
type promptModel struct {
	target  string
	lines   chan<- string
	input   []rune
	history []string
	height  int
	done    bool
}

func newPromptModel(target string, lines chan<- string) *promptModel {
	return &promptModel{target: target, lines: lines, height: 24}
}

func (m *promptModel) Init() tea.Cmd {
	return nil
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case resultMsg:
		m.push(formatResult(pump.SendResult(msg)))

	case pumpDoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			line := strings.TrimSpace(string(m.input))
			m.input = m.input[:0]
			if line == "" {
				return m, nil
			}
			m.push(promptEchoStyle.Render("> " + line))
			return m, func() tea.Msg {
				m.lines <- line
				return nil
			}

		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}

		case tea.KeySpace:
			m.input = append(m.input, ' ')

		case tea.KeyRunes:
			m.input = append(m.input, msg.Runes...)
		}
	}

	return m, nil
}

func (m *promptModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptTitleStyle.Render("oscwatch send → " + m.target))
	b.WriteString("\n\n")

	visible := m.height - 5
	if visible < 1 {
		visible = 1
	}
	start := len(m.history) - visible
	if start < 0 {
		start = 0
	}
	for _, line := range m.history[start:] {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("> ")
	b.WriteString(string(m.input))
	b.WriteString("█\n")
	b.WriteString(promptHintStyle.Render("enter to send · q to quit"))
	return b.String()
}

func (m *promptModel) push(line string) {
	m.history = append(m.history, line)
	if len(m.history) > maxScrollback {
		m.history = m.history[len(m.history)-maxScrollback:]
	}
}

func formatResult(res pump.SendResult) string {
	if res.Err != nil {
		return promptErrStyle.Render("not sent: ") + res.Err.Error()
	}
	return fmt.Sprintf("%s %s %s",
		promptOKStyle.Render("sent"),
		res.Address,
		render.FormatArgument(res.Arg))
}
