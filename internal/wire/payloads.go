package wire

// NameFieldSize is the fixed width of every zero-padded name field on
// the wire: 15 visible characters plus a trailing pad byte.
const NameFieldSize = 16

// HelloAckPayload answers a stream Hello with the datagram port and a
// session token the client must echo in its first datagram.
type HelloAckPayload struct {
	UDPPort uint16
	Token   uint32
}

// UdpHelloPayload is the first datagram a client sends, binding its
// endpoint to the token issued over the stream.
type UdpHelloPayload struct {
	Token uint32
	Name  [NameFieldSize]byte
}

// InputPacket carries one tick's worth of client input.
type InputPacket struct {
	Sequence uint32
	Bits     uint8
}

// PackedEntity is one row of a State snapshot.
type PackedEntity struct {
	ID   uint32
	Type EntityType
	X    float32
	Y    float32
	VX   float32
	VY   float32
	RGBA uint32
}

// StateHeader precedes the PackedEntity rows of a State payload.
type StateHeader struct {
	Count uint16
}

// DespawnPayload names an entity no longer present in the simulation.
type DespawnPayload struct {
	ID uint32
}

// RosterHeader precedes the PlayerEntry rows of a Roster payload.
type RosterHeader struct {
	Count uint8
}

// PlayerEntry is one row of a Roster payload.
type PlayerEntry struct {
	ID     uint32
	Lives  uint8
	ShipID uint8
	Name   [NameFieldSize]byte
}

// LivesUpdatePayload announces one player's new life count.
type LivesUpdatePayload struct {
	ID    uint32
	Lives uint8
}

// ScoreUpdatePayload announces a new score; ID 0 means the team total.
type ScoreUpdatePayload struct {
	ID    uint32
	Score int32
}

// LobbyStatusPayload is the full lobby state, broadcast on every change.
type LobbyStatusPayload struct {
	HostID     uint32
	BaseLives  uint8
	Difficulty uint8
	Started    uint8
	Reserved   uint8
}

// LobbyConfigPayload is a host's request to change lobby parameters.
type LobbyConfigPayload struct {
	BaseLives  uint8
	Difficulty uint8
}

// GameOverPayload announces match end; Reason 0 means all players died.
type GameOverPayload struct {
	Reason uint8
}

// PutName writes s into a fixed NameFieldSize buffer, truncating to 15
// bytes and zero-padding the remainder.
func PutName(s string) [NameFieldSize]byte {
	var out [NameFieldSize]byte
	n := len(s)
	if n > NameFieldSize-1 {
		n = NameFieldSize - 1
	}
	copy(out[:n], s[:n])
	return out
}

// NameString returns the NUL-terminated prefix of a fixed name field as a
// Go string.
func NameString(b [NameFieldSize]byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b[:])
}
