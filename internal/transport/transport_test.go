package transport

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestBindSendReceive(t *testing.T) {
	recv, err := Bind("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	defer recv.Close()

	send, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer send.Close()

	port := recv.LocalAddr().(*net.UDPAddr).Port
	payload := []byte{'/', 'a', 0, 0, ',', 0, 0, 0}
	if err := send.Send(payload, "127.0.0.1", port); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	got, sender, err := recv.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Receive() payload = %v, want %v", got, payload)
	}
	if !sender.IsValid() || sender.Port() == 0 {
		t.Errorf("Receive() sender = %v, want a valid addr:port", sender)
	}
}

func TestSendValidation(t *testing.T) {
	ep, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer ep.Close()

	var sendErr *SendError
	for _, port := range []int{0, -1, 65536} {
		if err := ep.Send([]byte{0}, "127.0.0.1", port); !errors.As(err, &sendErr) {
			t.Errorf("Send(port=%d) error = %v, want SendError", port, err)
		}
	}

	oversized := make([]byte, maxDatagramSize+1)
	if err := ep.Send(oversized, "127.0.0.1", 9000); !errors.As(err, &sendErr) {
		t.Errorf("Send(oversized) error = %v, want SendError", err)
	}
}

func TestSendFailureKeepsEndpointUsable(t *testing.T) {
	ep, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer ep.Close()

	if err := ep.Send([]byte{0}, "127.0.0.1", 0); err == nil {
		t.Fatal("Send(port=0) = nil, want error")
	}
	if err := ep.Send([]byte{0}, "127.0.0.1", 9000); err != nil {
		t.Errorf("Send() after failed send error = %v", err)
	}
}

func TestBindPortInUse(t *testing.T) {
	first, err := Bind("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	defer first.Close()

	port := first.LocalAddr().(*net.UDPAddr).Port
	var bindErr *BindError
	if _, err := Bind("127.0.0.1", port); !errors.As(err, &bindErr) {
		t.Errorf("Bind(in-use port) error = %v, want BindError", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	ep, err := Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := ep.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := ep.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestCloseUnblocksReceive(t *testing.T) {
	ep, err := Bind("127.0.0.1", 0)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := ep.Receive(ctx)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	_ = ep.Close()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Receive() after cancel+close error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Receive() still blocked after Close()")
	}
}
