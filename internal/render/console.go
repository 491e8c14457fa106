// Package render implements the sinks the pumps report into: a styled
// console view, machine-readable json/yaml streams, and a structured file
// log. Sinks compose with Tee so the console and the log can both see every
// notice.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chabad360/oscwatch/internal/pump"
	"github.com/chabad360/oscwatch/osc"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	senderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	addressStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	argStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

// Console renders one line per record or notice. It implements both
// pump.MonitorSink and pump.SendSink.
type Console struct {
	Out io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{Out: w}
}

func (c *Console) Record(r pump.Record) {
	var b strings.Builder
	b.WriteString(timeStyle.Render(r.ReceivedAt.Format("15:04:05.000")))
	b.WriteByte(' ')
	b.WriteString(senderStyle.Render(r.Sender.String()))
	b.WriteByte(' ')
	b.WriteString(addressStyle.Render(r.Message.Address))
	b.WriteByte(' ')
	b.WriteString(tagStyle.Render(r.Message.TypeTags()))
	for _, a := range r.Message.Arguments {
		b.WriteByte(' ')
		b.WriteString(argStyle.Render(FormatArgument(a)))
	}
	fmt.Fprintln(c.Out, b.String())
}

func (c *Console) Malformed(n pump.MalformedNotice) {
	fmt.Fprintf(c.Out, "%s %s %s\n",
		senderStyle.Render(n.Sender.String()),
		errorStyle.Render(fmt.Sprintf("malformed packet (%d bytes):", n.Size)),
		n.Err)
}

func (c *Console) Result(res pump.SendResult) {
	if res.Err != nil {
		fmt.Fprintf(c.Out, "%s %s\n", errorStyle.Render("not sent:"), res.Err)
		return
	}
	fmt.Fprintf(c.Out, "%s %s %s\n",
		okStyle.Render("sent"),
		addressStyle.Render(res.Address),
		argStyle.Render(FormatArgument(res.Arg)))
}

// FormatArgument renders a single argument for display.
func FormatArgument(a osc.Argument) string {
	if s, ok := a.(osc.String); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return fmt.Sprintf("%v", a)
}
