package game

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/session"
	"github.com/starwake/server/internal/transport"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
)

func newTestLoop(t *testing.T) (*Loop, *transport.StreamServer, *transport.DatagramServer) {
	t.Helper()
	reg := ecs.NewRegistry()
	store := session.NewStore()
	stream, err := transport.ListenStream("127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenStream: %v", err)
	}
	t.Cleanup(func() { stream.Close() })
	dgram, err := transport.ListenDatagram("127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenDatagram: %v", err)
	}
	t.Cleanup(func() { dgram.Close() })
	loop := NewLoop(reg, store, stream, dgram, 0, 1, 0)
	go dgram.ReadLoop(loop.HandleDatagram)
	return loop, stream, dgram
}

// fakeClient is a loopback UDP socket standing in for a connected player,
// capturing every broadcast the loop sends it.
type fakeClient struct {
	conn *net.UDPConn
}

func newFakeClient(t *testing.T) *fakeClient {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	if err != nil {
		t.Fatalf("client ListenUDP: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &fakeClient{conn: conn}
}

func (f *fakeClient) addr() *net.UDPAddr {
	return f.conn.LocalAddr().(*net.UDPAddr)
}

func (f *fakeClient) sendTo(dgram *transport.DatagramServer, payload []byte) {
	serverAddr, _ := net.ResolveUDPAddr("udp", dgram.Addr().String())
	f.conn.WriteToUDP(payload, serverAddr)
}

func (f *fakeClient) recv(t *testing.T, timeout time.Duration) wire.Header {
	t.Helper()
	f.conn.SetReadDeadline(time.Now().Add(timeout))
	buf := make([]byte, 2048)
	n, err := f.conn.Read(buf)
	if err != nil {
		t.Fatalf("client read: %v", err)
	}
	return wire.ParseHeader(buf[:n])
}

func helloUDPPayload(token uint32, name string) []byte {
	body := wire.EncodeUdpHello(wire.UdpHelloPayload{Token: token, Name: wire.PutName(name)})
	return append(wire.EncodeHeader(wire.Header{Size: uint16(len(body)), Type: wire.MsgHello, Version: wire.ProtocolVersion}), body...)
}

func TestHandleStreamHandshake(t *testing.T) {
	loop, stream, _ := newTestLoop(t)
	go stream.Serve(loop.HandleStream)

	conn, err := net.Dial("tcp", stream.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	var hdrBuf [wire.HeaderSize]byte
	if _, err := io.ReadFull(conn, hdrBuf[:]); err != nil {
		t.Fatalf("reading TcpWelcome: %v", err)
	}
	if wire.ParseHeader(hdrBuf[:]).Type != wire.MsgTcpWelcome {
		t.Fatalf("first message is not TcpWelcome")
	}

	name := "alice"
	hello := wire.EncodeHeader(wire.Header{Size: uint16(len(name)), Type: wire.MsgHello, Version: wire.ProtocolVersion})
	conn.Write(append(hello, name...))

	if _, err := io.ReadFull(conn, hdrBuf[:]); err != nil {
		t.Fatalf("reading HelloAck header: %v", err)
	}
	ackHdr := wire.ParseHeader(hdrBuf[:])
	if ackHdr.Type != wire.MsgHelloAck {
		t.Fatalf("expected HelloAck, got type=%d", ackHdr.Type)
	}
	ackBody := make([]byte, ackHdr.Size)
	io.ReadFull(conn, ackBody)
	ack, err := wire.DecodeHelloAck(ackBody)
	if err != nil {
		t.Fatalf("DecodeHelloAck: %v", err)
	}
	if ack.Token == 0 {
		t.Fatalf("HelloAck.Token = 0, want nonzero")
	}
}

func TestHandleDatagramUdpHelloBindsAndBroadcastsRoster(t *testing.T) {
	loop, stream, dgram := newTestLoop(t)
	go stream.Serve(loop.HandleStream)

	conn, err := net.Dial("tcp", stream.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	var hdrBuf [wire.HeaderSize]byte
	io.ReadFull(conn, hdrBuf[:])
	name := "alice"
	hello := wire.EncodeHeader(wire.Header{Size: uint16(len(name)), Type: wire.MsgHello, Version: wire.ProtocolVersion})
	conn.Write(append(hello, name...))
	io.ReadFull(conn, hdrBuf[:])
	ackHdr := wire.ParseHeader(hdrBuf[:])
	ackBody := make([]byte, ackHdr.Size)
	io.ReadFull(conn, ackBody)
	ack, _ := wire.DecodeHelloAck(ackBody)

	client := newFakeClient(t)
	client.sendTo(dgram, helloUDPPayload(ack.Token, "alice"))

	hdr := client.recv(t, 2*time.Second)
	if hdr.Type != wire.MsgRoster && hdr.Type != wire.MsgLobbyStatus {
		t.Fatalf("first broadcast after bind = type %d, want Roster or LobbyStatus", hdr.Type)
	}

	if loop.store.PlayerCount() != 1 {
		t.Fatalf("PlayerCount = %d, want 1", loop.store.PlayerCount())
	}
}

func TestHandleInputWritesBitsUnderLock(t *testing.T) {
	loop, stream, dgram := newTestLoop(t)
	go stream.Serve(loop.HandleStream)

	conn, err := net.Dial("tcp", stream.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	var hdrBuf [wire.HeaderSize]byte
	io.ReadFull(conn, hdrBuf[:])
	name := "alice"
	hello := wire.EncodeHeader(wire.Header{Size: uint16(len(name)), Type: wire.MsgHello, Version: wire.ProtocolVersion})
	conn.Write(append(hello, name...))
	io.ReadFull(conn, hdrBuf[:])
	ackHdr := wire.ParseHeader(hdrBuf[:])
	ackBody := make([]byte, ackHdr.Size)
	io.ReadFull(conn, ackBody)
	ack, _ := wire.DecodeHelloAck(ackBody)

	client := newFakeClient(t)
	client.sendTo(dgram, helloUDPPayload(ack.Token, "alice"))
	client.recv(t, 2*time.Second)

	id, found := loop.store.Touch(session.Key(client.addr()))
	if !found {
		t.Fatalf("player not bound after UdpHello")
	}

	inputBody := wire.EncodeInputPacket(wire.InputPacket{Bits: wire.InputRight})
	inputPkt := append(wire.EncodeHeader(wire.Header{Size: uint16(len(inputBody)), Type: wire.MsgInput, Version: wire.ProtocolVersion}), inputBody...)
	client.sendTo(dgram, inputPkt)

	time.Sleep(100 * time.Millisecond)

	var got uint8
	loop.reg.WithLock(func(w donburi.World) {
		in := ecscomp.PlayerInput.Get(w.Entry(id))
		got = in.Bits
	})
	if got != wire.InputRight {
		t.Fatalf("PlayerInput.Bits = %08b, want %08b", got, wire.InputRight)
	}
}
