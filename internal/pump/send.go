package pump

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chabad360/oscwatch/osc"
)

// quit tokens end the send pump, case-insensitively.
var quitTokens = map[string]bool{"q": true, "quit": true, "exit": true}

// Sender drives an endpoint in send mode: one line of operator input becomes
// one single-argument OSC message to Host:Port. Validation and send failures
// are reported per command; only cancellation or end of input stops the loop.
type Sender struct {
	Endpoint SendEndpoint
	Host     string
	Port     int
	Lines    <-chan string
	Sink     SendSink
	Log      zerolog.Logger
}

// Run consumes Lines until a quit token, a closed channel, or cancellation,
// then closes the endpoint. A command already being dispatched finishes
// before the endpoint closes.
func (s *Sender) Run(ctx context.Context) error {
	defer s.Endpoint.Close()

	for {
		select {
		case <-ctx.Done():
			s.Log.Debug().Msg("send pump cancelled")
			return nil
		case line, ok := <-s.Lines:
			if !ok {
				return nil
			}
			if quitTokens[strings.ToLower(strings.TrimSpace(line))] {
				s.Log.Debug().Msg("send pump quit")
				return nil
			}
			s.dispatch(line)
		}
	}
}

// dispatch parses and sends one command line. Every path reports exactly one
// result to the sink.
func (s *Sender) dispatch(line string) {
	res := SendResult{Line: line}
	defer func() { s.Sink.Result(res) }()

	fields := strings.Fields(line)
	if len(fields) == 0 {
		res.Err = fmt.Errorf("empty command: %w", osc.ErrBadArgument)
		return
	}

	addr := fields[0]
	if !strings.HasPrefix(addr, "/") {
		res.Err = fmt.Errorf("address %q must start with '/': %w", addr, osc.ErrInvalidAddress)
		return
	}

	// The value may contain spaces (a quoted string); rejoin everything
	// after the address into one raw token for inference.
	arg, err := osc.InferArgument(strings.Join(fields[1:], " "))
	if err != nil {
		res.Err = err
		return
	}

	payload, err := osc.NewMessage(addr, arg).MarshalBinary()
	if err != nil {
		res.Err = err
		return
	}

	if err := s.Endpoint.Send(payload, s.Host, s.Port); err != nil {
		s.Log.Debug().Err(err).Str("address", addr).Msg("send failed")
		res.Err = err
		return
	}

	res.Address = addr
	res.Arg = arg
}
