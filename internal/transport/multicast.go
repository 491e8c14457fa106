package transport

import (
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
)

// listenMulticast binds the group's port on the wildcard address and joins
// the group on every interface that can carry it. Joining is best-effort per
// interface; only zero successful joins fails the bind.
func listenMulticast(group *net.UDPAddr) (*net.UDPConn, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: group.Port})
	if err != nil {
		return nil, err
	}

	p := ipv4.NewPacketConn(conn)
	ifaces, err := net.Interfaces()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	joined := 0
	for i := range ifaces {
		ifi := &ifaces[i]
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagMulticast == 0 {
			continue
		}
		if err := p.JoinGroup(ifi, &net.UDPAddr{IP: group.IP}); err == nil {
			joined++
		}
	}
	if joined == 0 {
		_ = conn.Close()
		return nil, fmt.Errorf("no interface could join group %s", group.IP)
	}

	return conn, nil
}
