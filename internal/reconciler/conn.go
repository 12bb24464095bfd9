package reconciler

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/starwake/server/internal/wire"
)

// Conn bundles the two sockets a connected client holds: the reliable
// stream used only for the handshake, and the datagram socket used for
// everything afterward. The TCP socket stays open but unread once the
// handshake completes, since the server never sends anything else over
// it except StartGame.
type Conn struct {
	tcp   net.Conn
	udp   net.Conn
	Token uint32
}

// Dial runs the five-step handshake against host, whose stream port is
// udpPort+1, and returns a Conn ready for SendInput/ReadLoop. The
// datagram socket is left with its first Hello already sent, binding it
// to the token HelloAck returned.
func Dial(host string, udpPort int, username string) (*Conn, error) {
	tcpAddr := net.JoinHostPort(host, strconv.Itoa(udpPort+1))
	tcpConn, err := net.DialTimeout("tcp", tcpAddr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("reconciler: tcp dial: %w", err)
	}

	var hdrBuf [wire.HeaderSize]byte
	if _, err := io.ReadFull(tcpConn, hdrBuf[:]); err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("reconciler: reading TcpWelcome: %w", err)
	}
	welcome := wire.ParseHeader(hdrBuf[:])
	if welcome.Type != wire.MsgTcpWelcome {
		tcpConn.Close()
		return nil, fmt.Errorf("reconciler: expected TcpWelcome, got type=%d", welcome.Type)
	}

	name := truncateName(username)
	hello := wire.EncodeHeader(wire.Header{Size: uint16(len(name)), Type: wire.MsgHello, Version: wire.ProtocolVersion})
	if _, err := tcpConn.Write(append(hello, name...)); err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("reconciler: sending Hello: %w", err)
	}

	if _, err := io.ReadFull(tcpConn, hdrBuf[:]); err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("reconciler: reading HelloAck header: %w", err)
	}
	ackHdr := wire.ParseHeader(hdrBuf[:])
	if ackHdr.Type != wire.MsgHelloAck {
		tcpConn.Close()
		return nil, fmt.Errorf("reconciler: expected HelloAck, got type=%d", ackHdr.Type)
	}
	ackBody := make([]byte, ackHdr.Size)
	if _, err := io.ReadFull(tcpConn, ackBody); err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("reconciler: reading HelloAck body: %w", err)
	}
	ack, err := wire.DecodeHelloAck(ackBody)
	if err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("reconciler: decoding HelloAck: %w", err)
	}

	udpAddr := net.JoinHostPort(host, strconv.Itoa(int(ack.UDPPort)))
	udpConn, err := net.Dial("udp", udpAddr)
	if err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("reconciler: udp dial: %w", err)
	}

	udpHello := wire.EncodeUdpHello(wire.UdpHelloPayload{Token: ack.Token, Name: wire.PutName(username)})
	if _, err := udpConn.Write(append(wire.EncodeHeader(wire.Header{Size: uint16(len(udpHello)), Type: wire.MsgHello, Version: wire.ProtocolVersion}), udpHello...)); err != nil {
		tcpConn.Close()
		udpConn.Close()
		return nil, fmt.Errorf("reconciler: sending UdpHello: %w", err)
	}

	return &Conn{tcp: tcpConn, udp: udpConn, Token: ack.Token}, nil
}

// ReadLoop blocks reading datagrams off the UDP socket and dispatches
// each one to r.HandlePacket until the socket is closed, answering every
// Ping with a Pong as it goes.
func (c *Conn) ReadLoop(r *Reconciler) error {
	buf := make([]byte, 8192)
	for {
		n, err := c.udp.Read(buf)
		if err != nil {
			return err
		}
		r.HandlePacket(buf[:n], func(reply []byte) {
			c.udp.Write(reply)
		})
	}
}

// SendInput writes one InputPacket to the datagram socket.
func (c *Conn) SendInput(bits uint8) error {
	body := wire.EncodeInputPacket(wire.InputPacket{Bits: bits})
	return c.send(wire.MsgInput, body)
}

// SendLobbyConfig asks the server to change the lobby's base lives and
// difficulty; only the host's request has any effect.
func (c *Conn) SendLobbyConfig(baseLives, difficulty uint8) error {
	body := wire.EncodeLobbyConfig(wire.LobbyConfigPayload{BaseLives: baseLives, Difficulty: difficulty})
	return c.send(wire.MsgLobbyConfig, body)
}

// SendStartMatch asks the server to move the lobby into the started
// state; only the host's request has any effect.
func (c *Conn) SendStartMatch() error {
	return c.send(wire.MsgStartMatch, nil)
}

// SendDisconnect tells the server to drop this client immediately rather
// than waiting out the inactivity timeout.
func (c *Conn) SendDisconnect() error {
	return c.send(wire.MsgDisconnect, nil)
}

func (c *Conn) send(t wire.MsgType, body []byte) error {
	buf := wire.EncodeHeader(wire.Header{Size: uint16(len(body)), Type: t, Version: wire.ProtocolVersion})
	if len(body) > 0 {
		buf = append(buf, body...)
	}
	_, err := c.udp.Write(buf)
	return err
}

// Close tears down both sockets, sending Disconnect first so the server
// doesn't have to wait out the timeout, mirroring teardownNet's
// send-then-close order.
func (c *Conn) Close() error {
	c.SendDisconnect()
	udpErr := c.udp.Close()
	tcpErr := c.tcp.Close()
	if udpErr != nil {
		return udpErr
	}
	return tcpErr
}
