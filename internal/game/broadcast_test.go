package game

import (
	"testing"
	"time"

	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/session"
	"github.com/starwake/server/internal/transport"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
)

func newBroadcastTestLoop(t *testing.T) (*Loop, *fakeClient, ecs.Entity) {
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

	client := newFakeClient(t)
	playerID, token, _ := store.Join(reg, "alice")
	store.BindDatagram(reg, session.Key(client.addr()), client.addr(), token, "alice")
	return loop, client, playerID
}

func TestBroadcastDespawnDiffSkipsLivePlayers(t *testing.T) {
	loop, client, playerID := newBroadcastTestLoop(t)

	var enemyID ecs.Entity
	loop.reg.WithLock(func(w donburi.World) {
		e := w.Create(ecscomp.Transform, ecscomp.NetType)
		ecscomp.NetType.Set(w.Entry(e), &ecscomp.NetTypeData{Kind: ecscomp.NetEnemy})
		enemyID = e
	})

	// Seed prevIDs as if a prior broadcast tick had already captured both
	// the player (isPlayer=true) and the enemy (isPlayer=false).
	loop.prevIDs[ecs.ID(playerID)] = true
	loop.prevIDs[ecs.ID(enemyID)] = false

	// Remove only the enemy; the player is untouched and must never be
	// reported as despawned by the diff (its removal is always explicit,
	// via the leave path).
	loop.reg.WithLock(func(w donburi.World) {
		w.Remove(enemyID)
	})
	loop.broadcastDespawnDiff()

	hdr := client.recv(t, 2*time.Second)
	if hdr.Type != wire.MsgDespawn {
		t.Fatalf("broadcast type = %d, want Despawn", hdr.Type)
	}
}

func TestBroadcastDespawnDiffNeverFiresForThePlayerItself(t *testing.T) {
	loop, client, playerID := newBroadcastTestLoop(t)
	loop.prevIDs[ecs.ID(playerID)] = true

	// The player is still alive; a diff with no removals must not emit
	// any Despawn at all. Send a State broadcast afterward and assert the
	// first thing received is State, not Despawn.
	loop.broadcastDespawnDiff()
	loop.broadcastState()

	hdr := client.recv(t, 2*time.Second)
	if hdr.Type != wire.MsgState {
		t.Fatalf("first broadcast after no-op diff = type %d, want State", hdr.Type)
	}
}

func TestApplyHitsAndPickupsDecrementsLivesAndRespawns(t *testing.T) {
	loop, client, playerID := newBroadcastTestLoop(t)

	loop.reg.WithLock(func(w donburi.World) {
		entry := w.Entry(playerID)
		ecscomp.HitFlag.Get(entry).Value = true
		ecscomp.Lives.Get(entry).Value = 2
		ecscomp.Transform.Get(entry).X = 500
		ecscomp.Transform.Get(entry).Y = 300
		ecscomp.Velocity.Get(entry).VX = 99
		applyHitsAndPickups(w, loop)
	})

	var lives uint8
	var x, y, vx float32
	var invLeft float32
	loop.reg.WithLock(func(w donburi.World) {
		entry := w.Entry(playerID)
		lives = ecscomp.Lives.Get(entry).Value
		x = ecscomp.Transform.Get(entry).X
		y = ecscomp.Transform.Get(entry).Y
		vx = ecscomp.Velocity.Get(entry).VX
		invLeft = ecscomp.Invincible.Get(entry).TimeLeft
	})

	if lives != 1 {
		t.Fatalf("lives = %d, want 1", lives)
	}
	if x != 50 {
		t.Fatalf("x = %v, want reset to 50", x)
	}
	if y != clampPlayerY(300) {
		t.Fatalf("y = %v, want clamped to %v", y, clampPlayerY(300))
	}
	if vx != 0 {
		t.Fatalf("vx = %v, want zeroed", vx)
	}
	if invLeft < 1.0 {
		t.Fatalf("invincibility TimeLeft = %v, want >= 1.0", invLeft)
	}

	hdr := client.recv(t, 2*time.Second)
	if hdr.Type != wire.MsgLivesUpdate {
		t.Fatalf("broadcast type = %d, want LivesUpdate", hdr.Type)
	}
}
