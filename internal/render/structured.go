package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/chabad360/oscwatch/internal/pump"
	"github.com/chabad360/oscwatch/osc"
)

// recordDoc is the machine-readable shape of one decoded datagram.
type recordDoc struct {
	Time    string `json:"time" yaml:"time"`
	From    string `json:"from" yaml:"from"`
	Bytes   int    `json:"bytes" yaml:"bytes"`
	Address string `json:"address" yaml:"address"`
	Tags    string `json:"tags" yaml:"tags"`
	Args    []any  `json:"args" yaml:"args"`
}

// errorDoc is the machine-readable shape of a malformed-packet notice.
type errorDoc struct {
	Error string `json:"error" yaml:"error"`
	From  string `json:"from" yaml:"from"`
	Bytes int    `json:"bytes" yaml:"bytes"`
}

// Structured streams records as JSON lines or YAML documents, for piping into
// other tools. It implements pump.MonitorSink.
type Structured struct {
	Out  io.Writer
	YAML bool
}

func NewStructured(w io.Writer, format string) *Structured {
	return &Structured{Out: w, YAML: format == "yaml"}
}

func (s *Structured) Record(r pump.Record) {
	args := make([]any, 0, len(r.Message.Arguments))
	for _, a := range r.Message.Arguments {
		args = append(args, argValue(a))
	}
	s.emit(recordDoc{
		Time:    r.ReceivedAt.Format("15:04:05.000"),
		From:    r.Sender.String(),
		Bytes:   r.Size,
		Address: r.Message.Address,
		Tags:    r.Message.TypeTags(),
		Args:    args,
	})
}

func (s *Structured) Malformed(n pump.MalformedNotice) {
	s.emit(errorDoc{Error: n.Err.Error(), From: n.Sender.String(), Bytes: n.Size})
}

func (s *Structured) emit(doc any) {
	if s.YAML {
		out, err := yaml.Marshal(doc)
		if err != nil {
			return
		}
		fmt.Fprintf(s.Out, "---\n%s", out)
		return
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return
	}
	fmt.Fprintf(s.Out, "%s\n", out)
}

// argValue maps an argument to a plain value for marshalling.
func argValue(a osc.Argument) any {
	switch t := a.(type) {
	case osc.Int32:
		return int32(t)
	case osc.Float32:
		return float32(t)
	case osc.String:
		return string(t)
	case osc.Blob:
		return []byte(t)
	default:
		return FormatArgument(a)
	}
}
