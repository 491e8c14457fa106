package pump

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/chabad360/oscwatch/osc"
)

// Monitor drives an endpoint in receive mode: one datagram in, one record or
// one malformed notice out, until cancelled or the socket fails.
type Monitor struct {
	Endpoint Receiver
	Sink     MonitorSink
	Log      zerolog.Logger
}

// Run pumps datagrams until ctx is cancelled or the socket fails. The
// endpoint is closed on every exit path. Cancellation returns nil; a socket
// failure closes the endpoint and is returned to the caller, which owns any
// retry policy.
func (m *Monitor) Run(ctx context.Context) error {
	// Closing the endpoint is what actually interrupts a blocked Receive;
	// a decode already in progress is unaffected and still reaches the sink.
	stop := context.AfterFunc(ctx, func() { _ = m.Endpoint.Close() })
	defer stop()
	defer m.Endpoint.Close()

	m.Log.Debug().Msg("monitor pump listening")

	for {
		payload, sender, err := m.Endpoint.Receive(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				m.Log.Debug().Msg("monitor pump cancelled")
				return nil
			}
			m.Log.Error().Err(err).Msg("socket failure, monitor pump stopping")
			return err
		}

		msg, err := osc.ParseMessage(payload)
		if err != nil {
			m.Sink.Malformed(MalformedNotice{Err: err, Size: len(payload), Sender: sender})
			continue
		}

		m.Sink.Record(Record{
			Message:    msg,
			Sender:     sender,
			Size:       len(payload),
			ReceivedAt: time.Now(),
		})
	}
}
