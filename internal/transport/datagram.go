package transport

import "net"

// maxDatagramSize is comfortably above the 1400-byte snapshot payload
// cap; anything larger than this on the wire is malformed and dropped by
// the caller, not by this package.
const maxDatagramSize = 2048

// readBufferBytes is the OS-level socket receive buffer size requested
// via SetReadBuffer, sized to absorb a burst of client input packets
// without the kernel dropping datagrams under load.
const readBufferBytes = 1 << 20

// DatagramServer wraps a bound UDP socket. It is the unreliable half of
// the two-transport model: every send is fire-and-forget, and ReadLoop
// hands each datagram to the caller synchronously so the caller can
// serialize access to session and registry state without its own
// per-packet locking.
type DatagramServer struct {
	conn *net.UDPConn
}

// ListenDatagram binds a UDP socket on addr (host:port) and requests a
// larger-than-default kernel receive buffer.
func ListenDatagram(addr string) (*DatagramServer, error) {
	laddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, err
	}
	_ = conn.SetReadBuffer(readBufferBytes)
	return &DatagramServer{conn: conn}, nil
}

// Addr returns the socket's bound address.
func (d *DatagramServer) Addr() net.Addr {
	return d.conn.LocalAddr()
}

// ReadLoop reads datagrams until the socket is closed, calling handle
// with each packet's source address and payload. The payload slice is
// reused across calls; handle must not retain it past the call.
func (d *DatagramServer) ReadLoop(handle func(addr *net.UDPAddr, payload []byte)) error {
	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := d.conn.ReadFromUDP(buf)
		if err != nil {
			return err
		}
		handle(addr, buf[:n])
	}
}

// Send writes payload to addr. Errors are the caller's to log; a failed
// send never blocks the tick loop or the read loop.
func (d *DatagramServer) Send(addr *net.UDPAddr, payload []byte) error {
	_, err := d.conn.WriteToUDP(payload, addr)
	return err
}

// Close shuts the socket, unblocking ReadLoop.
func (d *DatagramServer) Close() error {
	return d.conn.Close()
}
