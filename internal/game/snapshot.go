package game

import (
	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
)

// maxDatagramPayload is the total on-wire size (header included) every
// State packet is capped at, chosen to stay under the common 1500-byte
// Ethernet MTU with headroom for IP/UDP overhead.
const maxDatagramPayload = 1400

// maxEntitiesPerPacket is derived from maxDatagramPayload rather than
// hand-tuned, so it stays correct if the wire format ever changes shape.
const maxEntitiesPerPacket = (maxDatagramPayload - wire.HeaderSize - 2) / wire.PackedEntitySize

// packetACategories and packetBCategories are the declarative
// "category+order+budget" table the snapshot slicer walks: players then
// enemies ride together in packet A (presence-authoritative, sent every
// broadcast tick even if empty); bullets then power-ups ride in packet B
// (skipped entirely when empty). Truncation, when a packet would exceed
// maxEntitiesPerPacket, drops whatever comes later in that packet's
// declared order — enemies before players in packet A, power-ups before
// bullets in packet B; the two packets are truncated independently.
var packetACategories = []ecscomp.NetKind{ecscomp.NetPlayer, ecscomp.NetEnemy}
var packetBCategories = []ecscomp.NetKind{ecscomp.NetBullet, ecscomp.NetPowerup}

func collectByCategory(w donburi.World) map[ecscomp.NetKind][]wire.PackedEntity {
	out := make(map[ecscomp.NetKind][]wire.PackedEntity)
	ecs.ForEach(w, ecscomp.NetType, func(entry *donburi.Entry, nt *ecscomp.NetTypeData) {
		t, ok := ecs.Get(entry, ecscomp.Transform)
		if !ok {
			return
		}
		v, ok := ecs.Get(entry, ecscomp.Velocity)
		if !ok {
			return
		}
		c, ok := ecs.Get(entry, ecscomp.ColorRGBA)
		if !ok {
			return
		}
		out[nt.Kind] = append(out[nt.Kind], wire.PackedEntity{
			ID:   ecs.ID(entry.Entity()),
			Type: wire.EntityType(nt.Kind),
			X:    t.X,
			Y:    t.Y,
			VX:   v.VX,
			VY:   v.VY,
			RGBA: c.RGBA,
		})
	})
	return out
}

// buildPacket concatenates every category's rows in the declared order,
// truncates to the packet budget, and frames the result as a State
// message. It returns the row count so the caller can skip sending an
// empty packet B.
func buildPacket(categories []ecscomp.NetKind, byCategory map[ecscomp.NetKind][]wire.PackedEntity) ([]byte, int) {
	var rows []wire.PackedEntity
	for _, cat := range categories {
		rows = append(rows, byCategory[cat]...)
	}
	if len(rows) > maxEntitiesPerPacket {
		rows = rows[:maxEntitiesPerPacket]
	}
	body := wire.EncodeStateHeader(wire.StateHeader{Count: uint16(len(rows))})
	for _, r := range rows {
		body = wire.EncodePackedEntity(body, r)
	}
	return frame(wire.MsgState, body), len(rows)
}

// broadcastState sends packet A (players + enemies) to every endpoint
// unconditionally, then packet B (bullets + power-ups) only if it has
// anything to say.
func (l *Loop) broadcastState() {
	var byCategory map[ecscomp.NetKind][]wire.PackedEntity
	l.reg.WithLock(func(w donburi.World) {
		byCategory = collectByCategory(w)
	})

	packetA, _ := buildPacket(packetACategories, byCategory)
	l.sendToAll(packetA)

	packetB, countB := buildPacket(packetBCategories, byCategory)
	if countB > 0 {
		l.sendToAll(packetB)
	}
}
