// Package wire implements the fixed-layout, little-endian binary protocol
// shared by the server and the client reconciler. It depends on nothing but
// the standard library so headless tooling can import it without pulling in
// donburi or any transport code.
package wire

import "encoding/binary"

// ProtocolVersion is the only version this module understands. Messages
// carrying any other version are dropped by the caller, never by this
// package (decode here is pure and never inspects Version itself).
const ProtocolVersion uint8 = 1

// HeaderSize is the wire size of Header, in bytes.
const HeaderSize = 4

// MsgType identifies the payload that follows a Header.
type MsgType uint8

const (
	MsgHello MsgType = 1
	MsgHelloAck MsgType = 2
	MsgInput MsgType = 3
	MsgState MsgType = 4
	MsgSpawn MsgType = 5
	MsgDespawn MsgType = 6
	MsgPing MsgType = 7
	MsgPong MsgType = 8
	MsgRoster MsgType = 9
	MsgLivesUpdate MsgType = 10
	MsgScoreUpdate MsgType = 11
	MsgLobbyStatus MsgType = 12
	MsgLobbyConfig MsgType = 13
	MsgStartMatch MsgType = 14
	MsgGameOver MsgType = 15
	MsgDisconnect MsgType = 16
	MsgReturnToMenu MsgType = 17
	MsgTcpWelcome MsgType = 100
	MsgStartGame MsgType = 101
)

// EntityType classifies an entity in a PackedEntity for rendering purposes.
type EntityType uint8

const (
	EntityPlayer  EntityType = 1
	EntityEnemy   EntityType = 2
	EntityBullet  EntityType = 3
	EntityPowerup EntityType = 4
)

// Input bit flags, ORed together in InputPacket.Bits.
const (
	InputUp     uint8 = 1 << 0
	InputDown   uint8 = 1 << 1
	InputLeft   uint8 = 1 << 2
	InputRight  uint8 = 1 << 3
	InputShoot  uint8 = 1 << 4
	InputCharge uint8 = 1 << 5
)

// Header precedes every message on both sockets.
type Header struct {
	Size    uint16 // payload size excluding the header
	Type    MsgType
	Version uint8
}

// PutHeader encodes h into the first HeaderSize bytes of dst.
func PutHeader(dst []byte, h Header) {
	binary.LittleEndian.PutUint16(dst[0:2], h.Size)
	dst[2] = byte(h.Type)
	dst[3] = h.Version
}

// ParseHeader decodes a Header from the first HeaderSize bytes of src.
// The caller must ensure len(src) >= HeaderSize.
func ParseHeader(src []byte) Header {
	return Header{
		Size:    binary.LittleEndian.Uint16(src[0:2]),
		Type:    MsgType(src[2]),
		Version: src[3],
	}
}

// EncodeHeader returns a freshly allocated HeaderSize-byte encoding of h.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	PutHeader(buf, h)
	return buf
}
