package reconciler

import (
	"testing"
	"time"

	"github.com/starwake/server/internal/wire"
)

func stateBody(rows []wire.PackedEntity) []byte {
	body := wire.EncodeStateHeader(wire.StateHeader{Count: uint16(len(rows))})
	for _, r := range rows {
		body = wire.EncodePackedEntity(body, r)
	}
	return body
}

func TestHandleStateUpsertsAndOrders(t *testing.T) {
	r := New("alice")
	r.handleState(stateBody([]wire.PackedEntity{
		{ID: 1, Type: wire.EntityEnemy, X: 10},
		{ID: 2, Type: wire.EntityPlayer, X: 20},
		{ID: 3, Type: wire.EntityBullet, X: 30},
	}))

	list := r.RenderEntities()
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	if list[0].Type != wire.EntityPlayer || list[1].Type != wire.EntityBullet || list[2].Type != wire.EntityEnemy {
		t.Fatalf("render order = %+v, want player, bullet, enemy", list)
	}
}

func TestHandleStateAgesOutAfterMissThresholdAndTTL(t *testing.T) {
	r := New("alice")
	r.handleState(stateBody([]wire.PackedEntity{{ID: 7, Type: wire.EntityBullet}}))

	te := r.entities[7]
	te.lastSeenAt = time.Now().Add(-2 * time.Second)

	// Two misses: still short of missThreshold, must survive.
	r.handleState(stateBody(nil))
	r.handleState(stateBody(nil))
	if _, ok := r.entities[7]; !ok {
		t.Fatalf("entity 7 removed before missThreshold reached")
	}

	// Third miss crosses missThreshold and the TTL has long since elapsed.
	r.handleState(stateBody(nil))
	if _, ok := r.entities[7]; ok {
		t.Fatalf("entity 7 survived past missThreshold and TTL")
	}
}

func TestHandleStateKeepsMissedEntityInsideTTL(t *testing.T) {
	r := New("alice")
	r.handleState(stateBody([]wire.PackedEntity{{ID: 9, Type: wire.EntityEnemy}}))
	// lastSeenAt stays "now"; even after crossing missThreshold the TTL
	// (2s for enemies) has not elapsed, so it must not be dropped yet.
	for i := 0; i < 5; i++ {
		r.handleState(stateBody(nil))
	}
	if _, ok := r.entities[9]; !ok {
		t.Fatalf("entity 9 removed before its TTL elapsed")
	}
}

func TestHandleDespawnRemovesImmediately(t *testing.T) {
	r := New("alice")
	r.handleState(stateBody([]wire.PackedEntity{{ID: 5, Type: wire.EntityEnemy}}))
	r.handleDespawn(wire.EncodeDespawn(wire.DespawnPayload{ID: 5}))
	if _, ok := r.entities[5]; ok {
		t.Fatalf("entity 5 still present after Despawn")
	}
}

func rosterBody(rows []wire.PlayerEntry) []byte {
	body := wire.EncodeRosterHeader(wire.RosterHeader{Count: uint8(len(rows))})
	for _, row := range rows {
		body = wire.EncodePlayerEntry(body, row)
	}
	return body
}

func TestHandleRosterFindsSelfByNamePrefix(t *testing.T) {
	r := New("alice")
	r.handleRoster(rosterBody([]wire.PlayerEntry{
		{ID: 1, Lives: 3, Name: wire.PutName("alice")},
		{ID: 2, Lives: 4, Name: wire.PutName("bob")},
	}))

	hud := r.Snapshot()
	if !hud.SelfKnown || hud.SelfID != 1 {
		t.Fatalf("self not identified correctly: %+v", hud)
	}
	if hud.Lives != 3 {
		t.Fatalf("self lives = %d, want 3", hud.Lives)
	}
	if len(hud.Others) != 1 || hud.Others[0].Name != "bob" {
		t.Fatalf("others = %+v, want [bob]", hud.Others)
	}
}

func TestHandleRosterCapsTeammatesAtThree(t *testing.T) {
	r := New("zz")
	r.handleRoster(rosterBody([]wire.PlayerEntry{
		{ID: 1, Name: wire.PutName("a")},
		{ID: 2, Name: wire.PutName("b")},
		{ID: 3, Name: wire.PutName("c")},
		{ID: 4, Name: wire.PutName("d")},
	}))
	hud := r.Snapshot()
	if len(hud.Others) != maxTeammates {
		t.Fatalf("len(Others) = %d, want %d", len(hud.Others), maxTeammates)
	}
}

func TestHandleLivesUpdateSetsGameOverAtZero(t *testing.T) {
	r := New("alice")
	r.handleRoster(rosterBody([]wire.PlayerEntry{{ID: 1, Lives: 1, Name: wire.PutName("alice")}}))
	r.handleLivesUpdate(wire.EncodeLivesUpdate(wire.LivesUpdatePayload{ID: 1, Lives: 0}))

	hud := r.Snapshot()
	if !hud.GameOver {
		t.Fatalf("GameOver = false, want true once self lives hits 0")
	}
}

func TestHandleLobbyStatusClampsFields(t *testing.T) {
	r := New("alice")
	r.handleLobbyStatus(wire.EncodeLobbyStatus(wire.LobbyStatusPayload{
		HostID: 9, BaseLives: 99, Difficulty: 99, Started: 1,
	}))
	hud := r.Snapshot()
	if hud.BaseLives != 6 || hud.Difficulty != 2 || !hud.LobbyStarted {
		t.Fatalf("lobby status not clamped: %+v", hud)
	}
}

func TestHandlePacketAnswersPingWithPong(t *testing.T) {
	r := New("alice")
	ping := wire.EncodeHeader(wire.Header{Type: wire.MsgPing, Version: wire.ProtocolVersion})

	var reply []byte
	r.HandlePacket(ping, func(b []byte) { reply = b })

	if len(reply) < wire.HeaderSize {
		t.Fatalf("no Pong reply sent")
	}
	hdr := wire.ParseHeader(reply)
	if hdr.Type != wire.MsgPong {
		t.Fatalf("reply type = %d, want Pong", hdr.Type)
	}
}

func TestShouldStartWaitingFallsBackToTwoPlayers(t *testing.T) {
	r := New("alice")
	if r.ShouldStartWaiting() {
		t.Fatalf("ShouldStartWaiting true with no entities")
	}
	r.handleState(stateBody([]wire.PackedEntity{
		{ID: 1, Type: wire.EntityPlayer},
		{ID: 2, Type: wire.EntityPlayer},
	}))
	if !r.ShouldStartWaiting() {
		t.Fatalf("ShouldStartWaiting false with two players visible")
	}
}
