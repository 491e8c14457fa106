// Package pump implements the two long-running loops at the heart of
// oscwatch: the monitor pump (receive, decode, emit) and the send pump (read
// line, parse, encode, send). Each pump exclusively owns one endpoint and
// reports everything it does to a sink; per-datagram and per-command failures
// never stop a pump, only socket failure or cancellation does.
package pump

import (
	"context"
	"net/netip"
	"time"

	"github.com/chabad360/oscwatch/osc"
)

// Receiver is the receive half of a transport endpoint.
// *transport.Endpoint satisfies it.
type Receiver interface {
	Receive(ctx context.Context) ([]byte, netip.AddrPort, error)
	Close() error
}

// SendEndpoint is the send half of a transport endpoint.
// *transport.Endpoint satisfies it.
type SendEndpoint interface {
	Send(payload []byte, host string, port int) error
	Close() error
}

// Record is one successfully decoded datagram, handed to the sink as soon as
// it is constructed and not retained by the pump.
type Record struct {
	Message    *osc.Message
	Sender     netip.AddrPort
	Size       int
	ReceivedAt time.Time
}

// MalformedNotice reports a datagram that failed to decode. The monitor
// emits exactly one per bad datagram and keeps listening.
type MalformedNotice struct {
	Err    error
	Size   int
	Sender netip.AddrPort
}

// MonitorSink consumes the monitor pump's output stream, in network order.
type MonitorSink interface {
	Record(Record)
	Malformed(MalformedNotice)
}

// SendResult reports the outcome of one send command: either Address and Arg
// are set, or Err is.
type SendResult struct {
	Line    string
	Address string
	Arg     osc.Argument
	Err     error
}

// SendSink consumes the send pump's result stream, one result per command.
type SendSink interface {
	Result(SendResult)
}
