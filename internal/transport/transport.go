// Package transport owns the single UDP endpoint a pump drives: bound for
// receiving or unbound for sending. One Endpoint belongs to exactly one pump
// for its lifetime.
package transport

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"sync"
)

// maxDatagramSize is the maximum UDP payload over IPv4; one datagram is one
// OSC message, so this bounds the receive buffer too.
const maxDatagramSize = 65507

// readBufferSize sizes the kernel receive buffer so bursts from lighting
// consoles don't drop datagrams before the pump gets to them.
const readBufferSize = 1 << 20

// BindError reports a failure to set up the receive socket: port in use,
// permission denied, or an unusable listen address.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string { return fmt.Sprintf("bind %s: %v", e.Addr, e.Err) }
func (e *BindError) Unwrap() error { return e.Err }

// SendError reports a failure to deliver one datagram. It is scoped to the
// single send; the endpoint stays usable.
type SendError struct {
	Dest string
	Err  error
}

func (e *SendError) Error() string { return fmt.Sprintf("send to %s: %v", e.Dest, e.Err) }
func (e *SendError) Unwrap() error { return e.Err }

// Endpoint is one UDP socket. Bind returns one that receives, Open returns
// one that only sends. Close is idempotent and unblocks a pending Receive.
type Endpoint struct {
	conn *net.UDPConn
	buf  []byte

	closeOnce sync.Once
	closeErr  error
}

// Bind opens a UDP socket listening on host:port for receive mode. A
// multicast host joins the group on every up, multicast-capable interface.
// On failure no handle is leaked.
func Bind(host string, port int) (*Endpoint, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}

	var conn *net.UDPConn
	if udpAddr.IP != nil && udpAddr.IP.IsMulticast() {
		conn, err = listenMulticast(udpAddr)
	} else {
		conn, err = net.ListenUDP("udp", udpAddr)
	}
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}

	if err := conn.SetReadBuffer(readBufferSize); err != nil {
		_ = conn.Close()
		return nil, &BindError{Addr: addr, Err: fmt.Errorf("set read buffer: %w", err)}
	}

	return newEndpoint(conn), nil
}

// Open returns an unbound endpoint on an ephemeral local port, suitable only
// for sending.
func Open() (*Endpoint, error) {
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, &BindError{Addr: "ephemeral", Err: err}
	}
	return newEndpoint(conn), nil
}

func newEndpoint(conn *net.UDPConn) *Endpoint {
	return &Endpoint{conn: conn, buf: make([]byte, maxDatagramSize)}
}

// Receive blocks for exactly one datagram and returns a copy of its payload
// together with the sender's address and port. Closing the endpoint from
// another goroutine unblocks the read; when ctx is already cancelled at that
// point, ctx.Err() is returned so callers can tell shutdown from socket
// failure.
func (e *Endpoint) Receive(ctx context.Context) ([]byte, netip.AddrPort, error) {
	n, sender, err := e.conn.ReadFromUDPAddrPort(e.buf)
	if err != nil {
		if ctx.Err() != nil {
			return nil, netip.AddrPort{}, ctx.Err()
		}
		return nil, netip.AddrPort{}, err
	}

	payload := make([]byte, n)
	copy(payload, e.buf[:n])
	return payload, sender, nil
}

// Send delivers one datagram to host:port. The port range and payload size
// are validated before anything reaches the network layer.
func (e *Endpoint) Send(payload []byte, host string, port int) error {
	dest := net.JoinHostPort(host, strconv.Itoa(port))
	if port < 1 || port > 65535 {
		return &SendError{Dest: dest, Err: fmt.Errorf("port %d out of range 1-65535", port)}
	}
	if len(payload) > maxDatagramSize {
		return &SendError{Dest: dest, Err: fmt.Errorf("payload of %d bytes exceeds max datagram size", len(payload))}
	}

	udpAddr, err := net.ResolveUDPAddr("udp", dest)
	if err != nil {
		return &SendError{Dest: dest, Err: err}
	}
	if _, err := e.conn.WriteToUDP(payload, udpAddr); err != nil {
		return &SendError{Dest: dest, Err: err}
	}
	return nil
}

// LocalAddr returns the bound local address, useful when binding port 0.
func (e *Endpoint) LocalAddr() net.Addr { return e.conn.LocalAddr() }

// Close releases the socket. Safe to call any number of times, from any
// goroutine; later calls return the first result.
func (e *Endpoint) Close() error {
	e.closeOnce.Do(func() { e.closeErr = e.conn.Close() })
	return e.closeErr
}
