// Package reconciler is the client-side counterpart to internal/game: it
// owns the handshake, the tracked-entity table rebuilt from every State
// snapshot, and the HUD-facing fields (lives, score, roster, lobby state)
// that a renderer reads between ticks. Ingest is split into one method
// per message type rather than one large dispatch switch, so each
// message's handling reads as its own small function.
package reconciler

import (
	"log"
	"sync"
	"time"

	"github.com/starwake/server/internal/wire"
)

// missThreshold and the per-type TTLs gate removal of an entity that has
// stopped appearing in State snapshots: both the miss count and the
// elapsed-time check must fail before an id is dropped, so a single lost
// packet never desyncs the render list.
const (
	missThreshold       = 3
	expireSecondsEnemy  = 2.0 * time.Second
	expireSecondsOthers = 1.0 * time.Second
)

// maxTeammates bounds how many non-self roster rows are kept for the HUD.
const maxTeammates = 3

// TrackedEntity is one row of the client's view of the simulation: a
// single struct per entity holding both the miss count and the
// last-seen timestamp that govern when it ages out.
type TrackedEntity struct {
	ID     uint32
	Type   wire.EntityType
	X, Y   float32
	VX, VY float32
	RGBA   uint32

	missed     int
	lastSeenAt time.Time
}

// PlayerInfo is one HUD-visible teammate row.
type PlayerInfo struct {
	ID    uint32
	Name  string
	Lives uint8
}

// Reconciler holds everything a client needs between the handshake and
// disconnect. All exported methods are safe for concurrent use: HandlePacket
// is expected to run on the datagram read loop while a renderer reads HUD
// state from another goroutine.
type Reconciler struct {
	mu sync.Mutex

	username string

	entities   map[uint32]*TrackedEntity
	renderList []TrackedEntity

	selfID    uint32
	selfKnown bool
	lives     uint8
	score     int32
	gameOver  bool

	otherPlayers []PlayerInfo

	hostID          uint32
	lobbyBaseLives  uint8
	lobbyDifficulty uint8
	lobbyStarted    bool

	returnToMenu bool
}

// New returns a Reconciler for a client connecting as username. username
// is compared, truncated to 15 bytes, against every Roster row to find
// the caller's own entity id.
func New(username string) *Reconciler {
	return &Reconciler{
		username: truncateName(username),
		entities: make(map[uint32]*TrackedEntity),
		lives:    4,
	}
}

func truncateName(s string) string {
	if len(s) > wire.NameFieldSize-1 {
		return s[:wire.NameFieldSize-1]
	}
	return s
}

// HandlePacket dispatches one decoded datagram payload by message type.
// Every malformed payload is logged once and dropped; there is no retry
// and nothing is ever propagated back to the caller, matching the
// drop-and-continue policy the transport layer also follows. respond is
// called with a Pong header when a Ping arrives; passing nil is fine if
// the caller handles Pong replies itself.
func (r *Reconciler) HandlePacket(payload []byte, respond func([]byte)) {
	if len(payload) < wire.HeaderSize {
		log.Printf("reconciler: dropped short packet (%d bytes)", len(payload))
		return
	}
	hdr := wire.ParseHeader(payload)
	if hdr.Version != wire.ProtocolVersion {
		log.Printf("reconciler: dropped packet with version %d", hdr.Version)
		return
	}
	body := payload[wire.HeaderSize:]
	if len(body) < int(hdr.Size) {
		log.Printf("reconciler: dropped short packet (type=%d)", hdr.Type)
		return
	}
	body = body[:hdr.Size]

	switch hdr.Type {
	case wire.MsgState:
		r.handleState(body)
	case wire.MsgDespawn:
		r.handleDespawn(body)
	case wire.MsgRoster:
		r.handleRoster(body)
	case wire.MsgLivesUpdate:
		r.handleLivesUpdate(body)
	case wire.MsgScoreUpdate:
		r.handleScoreUpdate(body)
	case wire.MsgLobbyStatus:
		r.handleLobbyStatus(body)
	case wire.MsgGameOver:
		r.handleGameOver()
	case wire.MsgReturnToMenu:
		r.handleReturnToMenu()
	case wire.MsgPing:
		if respond != nil {
			respond(wire.EncodeHeader(wire.Header{Type: wire.MsgPong, Version: wire.ProtocolVersion}))
		}
	case wire.MsgSpawn:
		// Reserved: accepted and decoded by nothing else in the protocol
		// today. A conformant server never emits it; tolerating receipt
		// keeps a future server free to start.
	default:
		log.Printf("reconciler: dropped unknown packet type=%d", hdr.Type)
	}
}
