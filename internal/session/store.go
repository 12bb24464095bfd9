// Package session implements the "stateMutex" half of the server's
// two-lock concurrency model: the player roster, host election, lobby
// config, token-based handshake bookkeeping, and timeout sweeping. A
// player's endpoint is bound by a one-time token (wire.HelloAckPayload /
// wire.UdpHelloPayload) rather than by source IP, so a client behind a
// NAT or reconnecting mid-session never gets confused with another. All
// of it is guarded by one sync.Mutex, held only across the method body
// and never across a call into the transport layer.
package session

import (
	"net"
	"sort"
	"sync"
	"time"

	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
)

// MaxPlayers is the hard cap on live players in one session; a sixth
// stream handshake is rejected by Join returning ok=false.
const MaxPlayers = 5

// ClientTimeout is how long a bound endpoint may go without a datagram
// before it is swept as disconnected.
const ClientTimeout = 10 * time.Second

// Default lobby settings, in force until the host calls SetLobbyConfig.
const (
	DefaultBaseLives  uint8 = 4
	DefaultDifficulty uint8 = 1
)

// Store holds every map the session component names, guarded by a single
// mutex. Methods that also need to touch the entity registry take
// *ecs.Registry and call into it only after acquiring this mutex,
// enforcing "stateMutex before registryMutex" by construction; none of
// them call out to the transport or I/O layer while holding the lock.
type Store struct {
	mu sync.Mutex

	pendingByToken     map[uint32]ecs.Entity
	endpointToPlayerID map[string]ecs.Entity
	keyToEndpoint      map[string]*net.UDPAddr
	lastSeen           map[string]time.Time
	nextToken          uint32

	hostID          ecs.Entity
	gameStarted     bool
	lobbyBaseLives  uint8
	lobbyDifficulty uint8
	lastTeamScore   int32
}

// NewStore returns an empty Store with the default lobby settings: 4
// base lives, normal difficulty.
func NewStore() *Store {
	return &Store{
		pendingByToken:     make(map[uint32]ecs.Entity),
		endpointToPlayerID: make(map[string]ecs.Entity),
		keyToEndpoint:      make(map[string]*net.UDPAddr),
		lastSeen:           make(map[string]time.Time),
		nextToken:          1,
		lobbyBaseLives:     DefaultBaseLives,
		lobbyDifficulty:    DefaultDifficulty,
	}
}

// Key renders a UDP endpoint as the "ip:port" string every bound-endpoint
// map is keyed by.
func Key(addr *net.UDPAddr) string {
	return addr.String()
}

func clampU8(v, lo, hi uint8) uint8 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Join creates a pending player for a freshly completed stream handshake
// and returns the token the caller must send back in HelloAckPayload; the
// client echoes it in its first datagram (wire.UdpHelloPayload) to claim
// the player via BindDatagram. ok is false when the session is already
// full; the caller must not send HelloAck in that case, leaving the
// client to time out on its own handshake deadline.
func (s *Store) Join(reg *ecs.Registry, name string) (entity ecs.Entity, token uint32, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var playerCount int
	var usedShips [int(ecscomp.MaxShipType) + 1]bool
	reg.WithLock(func(w donburi.World) {
		ecs.ForEach(w, ecscomp.ShipType, func(_ *donburi.Entry, st *ecscomp.ShipTypeData) {
			playerCount++
			if int(st.Value) < len(usedShips) {
				usedShips[st.Value] = true
			}
		})
	})
	if playerCount >= MaxPlayers {
		return 0, 0, false
	}
	ship := ecscomp.MaxShipType
	for i, used := range usedShips {
		if !used {
			ship = uint8(i)
			break
		}
	}

	y := float32(100 + len(s.pendingByToken)*40)
	var created ecs.Entity
	reg.WithLock(func(w donburi.World) {
		e := w.Create(
			ecscomp.Transform,
			ecscomp.Velocity,
			ecscomp.Size,
			ecscomp.ColorRGBA,
			ecscomp.NetType,
			ecscomp.IsPlayer,
			ecscomp.ShipType,
			ecscomp.PlayerInput,
			ecscomp.Shooter,
			ecscomp.ChargeGun,
			ecscomp.Score,
			ecscomp.Name,
			ecscomp.Lives,
			ecscomp.Invincible,
			ecscomp.HitFlag,
			ecscomp.InfiniteFire,
			ecscomp.LifePickup,
		)
		entry := w.Entry(e)
		ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: 50, Y: y})
		ecscomp.Velocity.Set(entry, &ecscomp.VelocityData{})
		ecscomp.Size.Set(entry, &ecscomp.SizeData{W: 20, H: 12})
		ecscomp.ColorRGBA.Set(entry, &ecscomp.ColorRGBAData{RGBA: 0x55AAFFFF})
		ecscomp.NetType.Set(entry, &ecscomp.NetTypeData{Kind: ecscomp.NetPlayer})
		ecscomp.ShipType.Set(entry, &ecscomp.ShipTypeData{Value: ship})
		ecscomp.PlayerInput.Set(entry, &ecscomp.PlayerInputData{Speed: ecscomp.DefaultPlayerSpeed})
		ecscomp.Shooter.Set(entry, &ecscomp.ShooterData{Interval: ecscomp.DefaultShooterInterval, BulletSpeed: ecscomp.DefaultShooterBulletSpeed})
		ecscomp.ChargeGun.Set(entry, &ecscomp.ChargeGunData{MaxCharge: ecscomp.DefaultMaxCharge})
		ecscomp.Score.Set(entry, &ecscomp.ScoreData{})
		if name == "" {
			name = "Player"
		}
		ecscomp.Name.Set(entry, &ecscomp.NameData{Value: truncateName(name)})
		ecscomp.Lives.Set(entry, &ecscomp.LivesData{Value: s.lobbyBaseLives})
		ecscomp.Invincible.Set(entry, &ecscomp.InvincibleData{})
		ecscomp.HitFlag.Set(entry, &ecscomp.HitFlagData{})
		ecscomp.InfiniteFire.Set(entry, &ecscomp.InfiniteFireData{})
		ecscomp.LifePickup.Set(entry, &ecscomp.LifePickupData{})
		created = e
	})

	token = s.nextToken
	s.nextToken++
	s.pendingByToken[token] = created
	if s.hostID == 0 {
		s.hostID = created
	}
	return created, token, true
}

func truncateName(s string) string {
	if len(s) <= ecscomp.MaxNameBytes {
		return s
	}
	return s[:ecscomp.MaxNameBytes]
}

// BindDatagram completes the join for a client's first datagram: it
// consumes the token minted by Join and moves the pending player into
// the bound-endpoint maps keyed by key, applying the display name the
// client sent along with the token. A datagram from an already-bound
// endpoint just refreshes lastSeen and is treated as a duplicate hello.
// isNewBind tells the caller whether to broadcast Roster + LobbyStatus.
func (s *Store) BindDatagram(reg *ecs.Registry, key string, addr *net.UDPAddr, token uint32, name string) (entity ecs.Entity, isNewBind bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.endpointToPlayerID[key]; ok {
		s.lastSeen[key] = time.Now()
		return id, false
	}
	id, ok := s.pendingByToken[token]
	if !ok {
		return 0, false
	}
	delete(s.pendingByToken, token)
	s.endpointToPlayerID[key] = id
	s.keyToEndpoint[key] = addr
	s.lastSeen[key] = time.Now()

	if name != "" {
		name = truncateName(name)
		reg.WithLock(func(w donburi.World) {
			if !w.Valid(id) {
				return
			}
			ecscomp.Name.Set(w.Entry(id), &ecscomp.NameData{Value: name})
		})
	}
	return id, true
}

// AbandonToken cancels a pending join whose stream connection closed
// before the client ever sent its first datagram, returning the orphaned
// entity so the caller can destroy it. ok is false if the token was
// already bound or never existed, in which case there is nothing to
// clean up.
func (s *Store) AbandonToken(token uint32) (entity ecs.Entity, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, found := s.pendingByToken[token]
	if !found {
		return 0, false
	}
	delete(s.pendingByToken, token)
	return id, true
}

// Touch refreshes lastSeen for a bound endpoint and returns its player
// id; found is false if the endpoint is not (yet) bound.
func (s *Store) Touch(key string) (id ecs.Entity, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, found = s.endpointToPlayerID[key]
	if found {
		s.lastSeen[key] = time.Now()
	}
	return id, found
}

// SetLobbyConfig applies a LobbyConfig request if and only if it came
// from the current host; a non-host's request is silently ignored.
func (s *Store) SetLobbyConfig(key string, baseLives, difficulty uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.endpointToPlayerID[key]
	if !ok || id != s.hostID {
		return false
	}
	s.lobbyBaseLives = clampU8(baseLives, 1, 6)
	s.lobbyDifficulty = clampU8(difficulty, 0, 2)
	return true
}

// StartMatch applies a StartMatch request from key if it is the host and
// the match has not already started. On success it returns the base
// lives to reset every player to and every currently bound player id, in
// ascending order (a deterministic order, not map iteration order; see
// DESIGN.md for why).
func (s *Store) StartMatch(key string) (ok bool, baseLives uint8, playerIDs []ecs.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, found := s.endpointToPlayerID[key]
	if !found || id != s.hostID || s.gameStarted {
		return false, 0, nil
	}
	s.gameStarted = true
	s.lastTeamScore = 0
	playerIDs = make([]ecs.Entity, 0, len(s.endpointToPlayerID))
	for _, pid := range s.endpointToPlayerID {
		playerIDs = append(playerIDs, pid)
	}
	sort.Slice(playerIDs, func(i, j int) bool { return playerIDs[i] < playerIDs[j] })
	return true, s.lobbyBaseLives, playerIDs
}

// LeaveResult reports everything a caller needs to know to finish
// removing a client: which broadcasts to send and whether the match just
// stopped or the world just emptied.
type LeaveResult struct {
	Removed        ecs.Entity
	Found          bool
	WasHost        bool
	NewHostID      ecs.Entity
	AllPlayersLeft bool
	StoppedGame    bool
}

// RemoveClient erases every map entry for key, re-electing a host if the
// leaving player held the role, and reports whether the game should stop
// because fewer than two players remain. A second Disconnect for an
// already-removed key is a no-op (Found is false), matching the
// "two Disconnects produce exactly one Despawn" property.
func (s *Store) RemoveClient(key string) LeaveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, found := s.endpointToPlayerID[key]
	if !found {
		return LeaveResult{}
	}
	wasHost := id == s.hostID

	delete(s.endpointToPlayerID, key)
	delete(s.keyToEndpoint, key)
	delete(s.lastSeen, key)

	if wasHost {
		if next, ok := s.electHost(); ok {
			s.hostID = next
		} else {
			s.hostID = 0
			s.gameStarted = false
		}
	}

	allLeft := len(s.endpointToPlayerID) == 0
	stopped := false
	if len(s.endpointToPlayerID) > 0 && len(s.endpointToPlayerID) < 2 && s.gameStarted {
		s.gameStarted = false
		stopped = true
	}

	return LeaveResult{
		Removed:        id,
		Found:          true,
		WasHost:        wasHost,
		NewHostID:      s.hostID,
		AllPlayersLeft: allLeft,
		StoppedGame:    stopped,
	}
}

// electHost picks the lowest remaining player id as the new host: an
// explicit, reproducible rule rather than depending on Go's randomized
// map iteration order (see DESIGN.md).
func (s *Store) electHost() (ecs.Entity, bool) {
	var best ecs.Entity
	found := false
	for _, id := range s.endpointToPlayerID {
		if !found || id < best {
			best = id
			found = true
		}
	}
	return best, found
}

// Endpoints returns a snapshot copy of every bound UDP endpoint, safe to
// use for sending after the lock has been released (the lock-ordering
// rule forbids holding it across an I/O call).
func (s *Store) Endpoints() []*net.UDPAddr {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*net.UDPAddr, 0, len(s.keyToEndpoint))
	for _, ep := range s.keyToEndpoint {
		out = append(out, ep)
	}
	return out
}

// TimedOutKeys returns every bound endpoint whose lastSeen exceeds
// ClientTimeout as of now, for the tick loop to pass to RemoveClient.
func (s *Store) TimedOutKeys(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for key, last := range s.lastSeen {
		if now.Sub(last) > ClientTimeout {
			keys = append(keys, key)
		}
	}
	return keys
}

// UpdateTeamScore compares score against the last broadcast team score,
// updates it, and reports whether a ScoreUpdate broadcast is owed.
func (s *Store) UpdateTeamScore(score int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score == s.lastTeamScore {
		return false
	}
	s.lastTeamScore = score
	return true
}

// LobbyStatus is a snapshot of every field the LobbyStatus wire payload
// carries.
type LobbyStatus struct {
	HostID      ecs.Entity
	BaseLives   uint8
	Difficulty  uint8
	GameStarted bool
}

// Snapshot returns the current lobby status.
func (s *Store) Snapshot() LobbyStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LobbyStatus{
		HostID:      s.hostID,
		BaseLives:   s.lobbyBaseLives,
		Difficulty:  s.lobbyDifficulty,
		GameStarted: s.gameStarted,
	}
}

// GameStarted reports whether a match is currently running.
func (s *Store) GameStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameStarted
}

// PlayerCount returns the number of bound players; used by tests and
// diagnostics, not on the tick hot path.
func (s *Store) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.endpointToPlayerID)
}
