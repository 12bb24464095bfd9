package game

import (
	"io"
	"log"
	"net"

	"github.com/google/uuid"
	"github.com/starwake/server/internal/wire"
)

// maxUsernameBytes bounds the Hello payload the stream handshake will
// read; anything longer is a malformed client and the connection is
// dropped rather than read past the limit.
const maxUsernameBytes = 64

// HandleStream runs the five-step handshake from the transport
// component for one freshly accepted connection, then blocks reading
// purely to detect the socket closing. It is passed to
// transport.StreamServer.Serve, which tracks and untracks the connection
// around this call.
func (l *Loop) HandleStream(conn net.Conn) {
	connID := uuid.New().String()

	welcome := wire.EncodeHeader(wire.Header{Type: wire.MsgTcpWelcome, Version: wire.ProtocolVersion})
	if _, err := conn.Write(welcome); err != nil {
		return
	}

	var hdrBuf [wire.HeaderSize]byte
	if err := readFull(conn, hdrBuf[:]); err != nil {
		return
	}
	hdr := wire.ParseHeader(hdrBuf[:])
	if hdr.Type != wire.MsgHello || int(hdr.Size) > maxUsernameBytes {
		log.Printf("stream handshake [%s]: unexpected message type=%d size=%d from %s", connID, hdr.Type, hdr.Size, conn.RemoteAddr())
		return
	}
	nameBuf := make([]byte, hdr.Size)
	if err := readFull(conn, nameBuf); err != nil {
		return
	}
	name := string(nameBuf)

	_, token, ok := l.store.Join(l.reg, name)
	if !ok {
		log.Printf("stream handshake [%s]: session full, dropping %s", connID, conn.RemoteAddr())
		return
	}
	log.Printf("stream handshake [%s]: %q joined from %s, token=%d", connID, name, conn.RemoteAddr(), token)

	ack := wire.EncodeHelloAck(wire.HelloAckPayload{UDPPort: l.udpPort, Token: token})
	if _, err := conn.Write(frame(wire.MsgHelloAck, ack)); err != nil {
		return
	}

	// The client sends nothing further over the stream until StartGame;
	// block on reads purely to learn when the connection drops.
	discard := make([]byte, 256)
	for {
		if _, err := conn.Read(discard); err != nil {
			break
		}
	}

	if orphan, abandoned := l.store.AbandonToken(token); abandoned {
		l.reg.Destroy(orphan)
	}
	log.Printf("stream handshake [%s]: connection closed", connID)
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}
