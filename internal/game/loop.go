// Package game wires the entity registry, the session store, and the two
// transport sockets into the authoritative tick loop and its broadcast
// helpers: a struct holding the world plus a stop channel, log.Printf
// diagnostics, and a goroutine-run loop with absolute-deadline
// scheduling ("next += dt" rather than a repeating time.Ticker) so a
// slow tick never accumulates drift.
package game

import (
	"log"
	"math/rand"
	"time"

	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/session"
	"github.com/starwake/server/internal/systems"
	"github.com/starwake/server/internal/transport"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// TickRate is the fixed simulation step, 60 Hz.
const TickRate = 60

// Dt is the fixed per-tick timestep in seconds.
const Dt float32 = 1.0 / TickRate

// broadcastEveryNTicks controls the despawn-diff-then-snapshot cadence:
// every third tick (20 Hz) the loop computes a despawn diff and sends a
// State snapshot.
const broadcastEveryNTicks = 3

// pingInterval is the minimum spacing between Ping broadcasts.
const pingInterval = 1 * time.Second

// clientTimeoutSweepEvery bounds how often TimedOutKeys is polled; it
// runs every tick since the check itself is cheap (one map scan) and the
// 10s timeout has no tighter precision requirement.
const clientTimeoutSweepEvery = 1

// Loop owns the fixed-step simulation and every broadcast it triggers.
// It is the sole writer of registry and session state once Run starts;
// the stream and datagram read paths only ever call into Loop's own
// exported handler methods, never touch the registry or store directly.
type Loop struct {
	reg    *ecs.Registry
	store  *session.Store
	stream *transport.StreamServer
	dgram  *transport.DatagramServer

	state   *systems.SimState
	udpPort uint16

	stopCh chan struct{}

	lastPing time.Time
	tick     uint64
	prevIDs  map[uint32]bool

	tickLogEvery int
}

// NewLoop builds a Loop over an already-listening stream and datagram
// pair. udpPort is echoed to clients in HelloAck so they know where to
// send datagrams.
func NewLoop(reg *ecs.Registry, store *session.Store, stream *transport.StreamServer, dgram *transport.DatagramServer, udpPort uint16, seed int64, tickLogEvery int) *Loop {
	return &Loop{
		reg:          reg,
		store:        store,
		stream:       stream,
		dgram:        dgram,
		state:        systems.NewSimState(rand.New(rand.NewSource(seed))),
		udpPort:      udpPort,
		stopCh:       make(chan struct{}),
		prevIDs:      make(map[uint32]bool),
		tickLogEvery: tickLogEvery,
	}
}

// Run drives the fixed-step loop until Stop is called. It schedules
// itself with absolute deadlines (next += dt) rather than repeated
// sleeps, so a slow tick doesn't compound drift into the next one.
func (l *Loop) Run() {
	log.Printf("game loop started at %d Hz", TickRate)
	next := time.Now()
	tickRate := float64(TickRate)
	period := time.Duration(float64(time.Second) / tickRate)
	for {
		select {
		case <-l.stopCh:
			log.Println("game loop stopped")
			return
		default:
		}

		start := time.Now()
		l.runTick()
		l.tick++
		if l.tickLogEvery > 0 && l.tick%uint64(l.tickLogEvery) == 0 {
			log.Printf("tick %d took %v", l.tick, time.Since(start))
		}

		next = next.Add(period)
		if sleep := time.Until(next); sleep > 0 {
			time.Sleep(sleep)
		} else {
			next = time.Now()
		}
	}
}

// Stop signals Run to return after its current tick.
func (l *Loop) Stop() {
	close(l.stopCh)
}

func (l *Loop) runTick() {
	l.maybePing()

	if l.store.GameStarted() {
		l.reg.WithLock(func(w donburi.World) {
			runSystems(w, Dt, l.state)
			applyHitsAndPickups(w, l)
		})
		l.maybeBroadcastScore()
	}

	l.sweepTimeouts()

	if l.tick%broadcastEveryNTicks == 0 {
		l.broadcastDespawnDiff()
		l.broadcastState()
	}
}

// runSystems executes the sixteen simulation systems in the exact order
// the simulation component names.
func runSystems(w donburi.World, dt float32, state *systems.SimState) {
	systems.Input(w, dt)
	systems.Shooting(w, dt)
	systems.ChargeShooting(w, dt)
	systems.Formation(w, dt, state)
	systems.Movement(w, dt)
	systems.EnemyShooting(w, dt, state.Rng)
	systems.DespawnOffscreen(w)
	systems.DespawnOutOfBounds(w)
	systems.Collision(w)
	systems.Invincibility(w, dt)
	systems.PowerupSpawn(w, state)
	systems.PowerupCollision(w)
	systems.InfiniteFire(w, dt)
	systems.FormationSpawn(w, dt, state)
	systems.BossSpawn(w, state)
	systems.BossMotion(w)
}

// applyHitsAndPickups is the tick loop's own post-processing pass, run
// after the sixteen simulation systems: it consumes the HitFlag/
// LifePickup markers Collision and PowerupCollision leave behind, since
// only the loop (not a pure simulation system) is allowed to emit
// network broadcasts.
func applyHitsAndPickups(w donburi.World, l *Loop) {
	var livesChanged []wire.LivesUpdatePayload

	ecs.ForEach(w, ecscomp.HitFlag, func(entry *donburi.Entry, hf *ecscomp.HitFlagData) {
		if !hf.Value {
			return
		}
		hf.Value = false
		lives := ecscomp.Lives.Get(entry)
		if lives.Value > 0 {
			lives.Value--
		}
		t := ecscomp.Transform.Get(entry)
		t.X = 50
		t.Y = clampPlayerY(t.Y)
		v := ecscomp.Velocity.Get(entry)
		v.VX, v.VY = 0, 0
		inv := ecscomp.Invincible.Get(entry)
		if inv.TimeLeft < 1.0 {
			inv.TimeLeft = 1.0
		}
		livesChanged = append(livesChanged, wire.LivesUpdatePayload{ID: ecs.ID(entry.Entity()), Lives: lives.Value})
	})

	ecs.ForEach(w, ecscomp.LifePickup, func(entry *donburi.Entry, lp *ecscomp.LifePickupData) {
		if !lp.Pending {
			return
		}
		lp.Pending = false
		lives := ecscomp.Lives.Get(entry)
		if lives.Value < ecscomp.MaxLives {
			lives.Value++
		}
		livesChanged = append(livesChanged, wire.LivesUpdatePayload{ID: ecs.ID(entry.Entity()), Lives: lives.Value})
	})

	for _, p := range livesChanged {
		l.broadcastLivesUpdate(p)
	}
}

func clampPlayerY(y float32) float32 {
	const playerHeight = 12
	min := float32(56)
	max := float32(600) - 10 - playerHeight
	if y < min {
		return min
	}
	if y > max {
		return max
	}
	return y
}

func (l *Loop) maybePing() {
	if time.Since(l.lastPing) < pingInterval {
		return
	}
	l.lastPing = time.Now()
	header := wire.EncodeHeader(wire.Header{Type: wire.MsgPing, Version: wire.ProtocolVersion})
	for _, addr := range l.store.Endpoints() {
		if err := l.dgram.Send(addr, header); err != nil {
			log.Printf("ping send to %s failed: %v", addr, err)
		}
	}
}

func (l *Loop) maybeBroadcastScore() {
	var team int32
	l.reg.WithLock(func(w donburi.World) {
		team = systems.TeamScore(w)
	})
	if !l.store.UpdateTeamScore(team) {
		return
	}
	l.broadcastScoreUpdate(wire.ScoreUpdatePayload{ID: 0, Score: team})
}

func (l *Loop) sweepTimeouts() {
	for _, key := range l.store.TimedOutKeys(time.Now()) {
		l.removeClient(key)
	}
}

// removeClient is the shared tail of both the timeout sweep and an
// explicit Disconnect message: erase the session state, destroy the
// entity, and emit every broadcast the leave path requires.
func (l *Loop) removeClient(key string) {
	res := l.store.RemoveClient(key)
	if !res.Found {
		return
	}
	l.reg.Destroy(res.Removed)

	l.broadcastDespawnOne(ecs.ID(res.Removed))
	l.broadcastRoster()
	l.broadcastLobbyStatus()

	if res.StoppedGame {
		l.broadcastHeaderOnly(wire.MsgReturnToMenu)
		l.reg.WithLock(cleanupGameWorld)
	}
}

// cleanupGameWorld destroys every non-player entity: enemies, bullets,
// powerups, and formation origins. Invoked both when the player count
// drops below two mid-match and at the start of every new match, so a
// restart never inherits a stale board.
func cleanupGameWorld(w donburi.World) {
	var dead []ecs.Entity
	donburi.NewQuery(filter.Not(filter.Contains(ecscomp.IsPlayer))).Each(w, func(entry *donburi.Entry) {
		dead = append(dead, entry.Entity())
	})
	for _, e := range dead {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
}
