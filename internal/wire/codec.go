package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShortBuffer is returned by every Decode* function when the source
// slice is smaller than the payload it is asked to decode. Callers at the
// transport layer treat this the same as any other decode error: drop the
// message, log once, keep the connection alive.
var ErrShortBuffer = errors.New("wire: short buffer")

const (
	sizeHelloAck     = 6
	sizeUdpHello      = 4 + NameFieldSize
	sizeInputPacket   = 5
	sizePackedEntity  = 4 + 1 + 4*4 + 4
	sizeStateHeader   = 2
	sizeDespawn       = 4
	sizeRosterHeader  = 1
	sizePlayerEntry   = 4 + 1 + 1 + NameFieldSize
	sizeLivesUpdate   = 5
	sizeScoreUpdate   = 8
	sizeLobbyStatus   = 8
	sizeLobbyConfig   = 2
	sizeGameOver      = 1
)

func putFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

func getFloat32(src []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src))
}

// EncodeHelloAck returns the on-wire bytes of p.
func EncodeHelloAck(p HelloAckPayload) []byte {
	buf := make([]byte, sizeHelloAck)
	binary.LittleEndian.PutUint16(buf[0:2], p.UDPPort)
	binary.LittleEndian.PutUint32(buf[2:6], p.Token)
	return buf
}

// DecodeHelloAck parses a HelloAckPayload from src.
func DecodeHelloAck(src []byte) (HelloAckPayload, error) {
	if len(src) < sizeHelloAck {
		return HelloAckPayload{}, ErrShortBuffer
	}
	return HelloAckPayload{
		UDPPort: binary.LittleEndian.Uint16(src[0:2]),
		Token:   binary.LittleEndian.Uint32(src[2:6]),
	}, nil
}

// EncodeUdpHello returns the on-wire bytes of p.
func EncodeUdpHello(p UdpHelloPayload) []byte {
	buf := make([]byte, sizeUdpHello)
	binary.LittleEndian.PutUint32(buf[0:4], p.Token)
	copy(buf[4:], p.Name[:])
	return buf
}

// DecodeUdpHello parses a UdpHelloPayload from src.
func DecodeUdpHello(src []byte) (UdpHelloPayload, error) {
	if len(src) < sizeUdpHello {
		return UdpHelloPayload{}, ErrShortBuffer
	}
	p := UdpHelloPayload{Token: binary.LittleEndian.Uint32(src[0:4])}
	copy(p.Name[:], src[4:sizeUdpHello])
	return p, nil
}

// EncodeInputPacket returns the on-wire bytes of p.
func EncodeInputPacket(p InputPacket) []byte {
	buf := make([]byte, sizeInputPacket)
	binary.LittleEndian.PutUint32(buf[0:4], p.Sequence)
	buf[4] = p.Bits
	return buf
}

// DecodeInputPacket parses an InputPacket from src.
func DecodeInputPacket(src []byte) (InputPacket, error) {
	if len(src) < sizeInputPacket {
		return InputPacket{}, ErrShortBuffer
	}
	return InputPacket{
		Sequence: binary.LittleEndian.Uint32(src[0:4]),
		Bits:     src[4],
	}, nil
}

// EncodePackedEntity appends the on-wire bytes of p to dst and returns the
// extended slice, so State snapshots can be built without re-allocating
// per entity.
func EncodePackedEntity(dst []byte, p PackedEntity) []byte {
	var buf [sizePackedEntity]byte
	binary.LittleEndian.PutUint32(buf[0:4], p.ID)
	buf[4] = byte(p.Type)
	putFloat32(buf[5:9], p.X)
	putFloat32(buf[9:13], p.Y)
	putFloat32(buf[13:17], p.VX)
	putFloat32(buf[17:21], p.VY)
	binary.LittleEndian.PutUint32(buf[21:25], p.RGBA)
	return append(dst, buf[:]...)
}

// DecodePackedEntity parses a PackedEntity from src.
func DecodePackedEntity(src []byte) (PackedEntity, error) {
	if len(src) < sizePackedEntity {
		return PackedEntity{}, ErrShortBuffer
	}
	return PackedEntity{
		ID:   binary.LittleEndian.Uint32(src[0:4]),
		Type: EntityType(src[4]),
		X:    getFloat32(src[5:9]),
		Y:    getFloat32(src[9:13]),
		VX:   getFloat32(src[13:17]),
		VY:   getFloat32(src[17:21]),
		RGBA: binary.LittleEndian.Uint32(src[21:25]),
	}, nil
}

// PackedEntitySize is the wire size of one PackedEntity row.
const PackedEntitySize = sizePackedEntity

// EncodeStateHeader returns the on-wire bytes of h.
func EncodeStateHeader(h StateHeader) []byte {
	buf := make([]byte, sizeStateHeader)
	binary.LittleEndian.PutUint16(buf, h.Count)
	return buf
}

// DecodeStateHeader parses a StateHeader from src.
func DecodeStateHeader(src []byte) (StateHeader, error) {
	if len(src) < sizeStateHeader {
		return StateHeader{}, ErrShortBuffer
	}
	return StateHeader{Count: binary.LittleEndian.Uint16(src[0:2])}, nil
}

// EncodeDespawn returns the on-wire bytes of p.
func EncodeDespawn(p DespawnPayload) []byte {
	buf := make([]byte, sizeDespawn)
	binary.LittleEndian.PutUint32(buf, p.ID)
	return buf
}

// DecodeDespawn parses a DespawnPayload from src.
func DecodeDespawn(src []byte) (DespawnPayload, error) {
	if len(src) < sizeDespawn {
		return DespawnPayload{}, ErrShortBuffer
	}
	return DespawnPayload{ID: binary.LittleEndian.Uint32(src[0:4])}, nil
}

// EncodeRosterHeader returns the on-wire bytes of h.
func EncodeRosterHeader(h RosterHeader) []byte {
	return []byte{h.Count}
}

// DecodeRosterHeader parses a RosterHeader from src.
func DecodeRosterHeader(src []byte) (RosterHeader, error) {
	if len(src) < sizeRosterHeader {
		return RosterHeader{}, ErrShortBuffer
	}
	return RosterHeader{Count: src[0]}, nil
}

// EncodePlayerEntry appends the on-wire bytes of p to dst.
func EncodePlayerEntry(dst []byte, p PlayerEntry) []byte {
	var buf [sizePlayerEntry]byte
	binary.LittleEndian.PutUint32(buf[0:4], p.ID)
	buf[4] = p.Lives
	buf[5] = p.ShipID
	copy(buf[6:], p.Name[:])
	return append(dst, buf[:]...)
}

// DecodePlayerEntry parses a PlayerEntry from src.
func DecodePlayerEntry(src []byte) (PlayerEntry, error) {
	if len(src) < sizePlayerEntry {
		return PlayerEntry{}, ErrShortBuffer
	}
	p := PlayerEntry{
		ID:     binary.LittleEndian.Uint32(src[0:4]),
		Lives:  src[4],
		ShipID: src[5],
	}
	copy(p.Name[:], src[6:sizePlayerEntry])
	return p, nil
}

// PlayerEntrySize is the wire size of one PlayerEntry row.
const PlayerEntrySize = sizePlayerEntry

// EncodeLivesUpdate returns the on-wire bytes of p.
func EncodeLivesUpdate(p LivesUpdatePayload) []byte {
	buf := make([]byte, sizeLivesUpdate)
	binary.LittleEndian.PutUint32(buf[0:4], p.ID)
	buf[4] = p.Lives
	return buf
}

// DecodeLivesUpdate parses a LivesUpdatePayload from src.
func DecodeLivesUpdate(src []byte) (LivesUpdatePayload, error) {
	if len(src) < sizeLivesUpdate {
		return LivesUpdatePayload{}, ErrShortBuffer
	}
	return LivesUpdatePayload{
		ID:    binary.LittleEndian.Uint32(src[0:4]),
		Lives: src[4],
	}, nil
}

// EncodeScoreUpdate returns the on-wire bytes of p.
func EncodeScoreUpdate(p ScoreUpdatePayload) []byte {
	buf := make([]byte, sizeScoreUpdate)
	binary.LittleEndian.PutUint32(buf[0:4], p.ID)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.Score))
	return buf
}

// DecodeScoreUpdate parses a ScoreUpdatePayload from src.
func DecodeScoreUpdate(src []byte) (ScoreUpdatePayload, error) {
	if len(src) < sizeScoreUpdate {
		return ScoreUpdatePayload{}, ErrShortBuffer
	}
	return ScoreUpdatePayload{
		ID:    binary.LittleEndian.Uint32(src[0:4]),
		Score: int32(binary.LittleEndian.Uint32(src[4:8])),
	}, nil
}

// EncodeLobbyStatus returns the on-wire bytes of p.
func EncodeLobbyStatus(p LobbyStatusPayload) []byte {
	buf := make([]byte, sizeLobbyStatus)
	binary.LittleEndian.PutUint32(buf[0:4], p.HostID)
	buf[4] = p.BaseLives
	buf[5] = p.Difficulty
	buf[6] = p.Started
	buf[7] = p.Reserved
	return buf
}

// DecodeLobbyStatus parses a LobbyStatusPayload from src.
func DecodeLobbyStatus(src []byte) (LobbyStatusPayload, error) {
	if len(src) < sizeLobbyStatus {
		return LobbyStatusPayload{}, ErrShortBuffer
	}
	return LobbyStatusPayload{
		HostID:     binary.LittleEndian.Uint32(src[0:4]),
		BaseLives:  src[4],
		Difficulty: src[5],
		Started:    src[6],
		Reserved:   src[7],
	}, nil
}

// EncodeLobbyConfig returns the on-wire bytes of p.
func EncodeLobbyConfig(p LobbyConfigPayload) []byte {
	return []byte{p.BaseLives, p.Difficulty}
}

// DecodeLobbyConfig parses a LobbyConfigPayload from src.
func DecodeLobbyConfig(src []byte) (LobbyConfigPayload, error) {
	if len(src) < sizeLobbyConfig {
		return LobbyConfigPayload{}, ErrShortBuffer
	}
	return LobbyConfigPayload{BaseLives: src[0], Difficulty: src[1]}, nil
}

// EncodeGameOver returns the on-wire bytes of p.
func EncodeGameOver(p GameOverPayload) []byte {
	return []byte{p.Reason}
}

// DecodeGameOver parses a GameOverPayload from src.
func DecodeGameOver(src []byte) (GameOverPayload, error) {
	if len(src) < sizeGameOver {
		return GameOverPayload{}, ErrShortBuffer
	}
	return GameOverPayload{Reason: src[0]}, nil
}
