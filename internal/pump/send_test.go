package pump

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chabad360/oscwatch/osc"
)

// fakeSendEndpoint records sends and can fail a scripted number of them.
type fakeSendEndpoint struct {
	mu       sync.Mutex
	sent     [][]byte
	failNext int
	closed   bool
}

var errSendRefused = errors.New("sendto: connection refused")

func (f *fakeSendEndpoint) Send(payload []byte, host string, port int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext > 0 {
		f.failNext--
		return errSendRefused
	}
	p := make([]byte, len(payload))
	copy(p, payload)
	f.sent = append(f.sent, p)
	return nil
}

func (f *fakeSendEndpoint) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// resultSink records send results in order.
type resultSink struct {
	mu      sync.Mutex
	results []SendResult
}

func (s *resultSink) Result(r SendResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

// runSender feeds the commands to a Sender over a fresh endpoint and sink and
// returns both once the pump has stopped.
func runSender(t *testing.T, ep *fakeSendEndpoint, commands ...string) *resultSink {
	t.Helper()
	sink := &resultSink{}
	lines := make(chan string)
	s := &Sender{Endpoint: ep, Host: "127.0.0.1", Port: 9000, Lines: lines, Sink: sink}

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()
	for _, c := range commands {
		lines <- c
	}
	close(lines)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send pump did not stop")
	}
	return sink
}

func TestSenderDispatch(t *testing.T) {
	ep := &fakeSendEndpoint{}
	sink := runSender(t, ep,
		"/fader 0.5",
		`/label "two words"`,
		"/count 42",
	)

	if len(sink.results) != 3 {
		t.Fatalf("results = %d, want 3", len(sink.results))
	}
	for i, want := range []struct {
		addr string
		arg  osc.Argument
	}{
		{"/fader", osc.Float32(0.5)},
		{"/label", osc.String("two words")},
		{"/count", osc.Int32(42)},
	} {
		got := sink.results[i]
		if got.Err != nil {
			t.Errorf("result %d: error = %v", i, got.Err)
			continue
		}
		if got.Address != want.addr || got.Arg != want.arg {
			t.Errorf("result %d = %q %v, want %q %v", i, got.Address, got.Arg, want.addr, want.arg)
		}
	}
	if len(ep.sent) != 3 {
		t.Errorf("sent = %d datagrams, want 3", len(ep.sent))
	}

	// The first payload must be a well-formed message.
	msg, err := osc.ParseMessage(ep.sent[0])
	if err != nil {
		t.Fatalf("sent payload does not decode: %v", err)
	}
	if msg.Address != "/fader" {
		t.Errorf("sent address = %q, want /fader", msg.Address)
	}
}

func TestSenderValidationFailures(t *testing.T) {
	ep := &fakeSendEndpoint{}
	sink := runSender(t, ep,
		"fader 1",  // no leading slash
		"/fader",   // no value
		"/f 1.2.3", // unparseable value
		"",         // empty command
		"/ok 1",    // still processed after all of the above
	)

	if len(sink.results) != 5 {
		t.Fatalf("results = %d, want 5", len(sink.results))
	}
	for _, tt := range []struct {
		i    int
		want error
	}{
		{0, osc.ErrInvalidAddress},
		{1, osc.ErrBadArgument},
		{2, osc.ErrBadArgument},
		{3, osc.ErrBadArgument},
	} {
		if err := sink.results[tt.i].Err; !errors.Is(err, tt.want) {
			t.Errorf("result %d: error = %v, want %v", tt.i, err, tt.want)
		}
	}
	if sink.results[4].Err != nil {
		t.Errorf("result 4: error = %v, want nil", sink.results[4].Err)
	}
	if len(ep.sent) != 1 {
		t.Errorf("sent = %d datagrams, want 1", len(ep.sent))
	}
}

func TestSenderSendFailureIsolation(t *testing.T) {
	ep := &fakeSendEndpoint{failNext: 1}
	sink := runSender(t, ep, "/a 1", "/b 2")

	if len(sink.results) != 2 {
		t.Fatalf("results = %d, want 2", len(sink.results))
	}
	if !errors.Is(sink.results[0].Err, errSendRefused) {
		t.Errorf("result 0: error = %v, want %v", sink.results[0].Err, errSendRefused)
	}
	if sink.results[1].Err != nil {
		t.Errorf("result 1: error = %v, want nil", sink.results[1].Err)
	}
	if len(ep.sent) != 1 {
		t.Errorf("sent = %d datagrams, want 1", len(ep.sent))
	}
	if !ep.closed {
		t.Error("endpoint not closed after pump stopped")
	}
}

func TestSenderQuitTokens(t *testing.T) {
	for _, token := range []string{"q", "Q", "quit", "QUIT", "exit", " Exit "} {
		ep := &fakeSendEndpoint{}
		sink := &resultSink{}
		lines := make(chan string, 1)
		lines <- token
		s := &Sender{Endpoint: ep, Host: "127.0.0.1", Port: 9000, Lines: lines, Sink: sink}

		done := make(chan error, 1)
		go func() { done <- s.Run(context.Background()) }()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("%q: Run() = %v", token, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%q did not stop the pump", token)
		}
		if !ep.closed {
			t.Errorf("%q: endpoint not closed", token)
		}
		if len(sink.results) != 0 {
			t.Errorf("%q: quit produced results: %v", token, sink.results)
		}
	}
}

func TestSenderCancellation(t *testing.T) {
	ep := &fakeSendEndpoint{}
	lines := make(chan string)
	s := &Sender{Endpoint: ep, Host: "127.0.0.1", Port: 9000, Lines: lines, Sink: &resultSink{}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after cancellation")
	}
	if !ep.closed {
		t.Error("endpoint not closed after cancellation")
	}
}
