package game

import (
	"log"

	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
)

// broadcastHeaderOnly sends a bare Header (no payload) to every bound
// datagram endpoint. Every runtime broadcast except StartGame travels
// this way; the stream stays reserved for the handshake and the
// lobby-to-game transition.
func (l *Loop) broadcastHeaderOnly(t wire.MsgType) {
	payload := wire.EncodeHeader(wire.Header{Type: t, Version: wire.ProtocolVersion})
	l.sendToAll(payload)
}

func (l *Loop) sendToAll(payload []byte) {
	for _, addr := range l.store.Endpoints() {
		if err := l.dgram.Send(addr, payload); err != nil {
			log.Printf("broadcast to %s failed: %v", addr, err)
		}
	}
}

func frame(t wire.MsgType, body []byte) []byte {
	out := wire.EncodeHeader(wire.Header{Size: uint16(len(body)), Type: t, Version: wire.ProtocolVersion})
	return append(out, body...)
}

func (l *Loop) broadcastLivesUpdate(p wire.LivesUpdatePayload) {
	l.sendToAll(frame(wire.MsgLivesUpdate, wire.EncodeLivesUpdate(p)))
}

func (l *Loop) broadcastScoreUpdate(p wire.ScoreUpdatePayload) {
	l.sendToAll(frame(wire.MsgScoreUpdate, wire.EncodeScoreUpdate(p)))
}

func (l *Loop) broadcastDespawnOne(id uint32) {
	l.sendToAll(frame(wire.MsgDespawn, wire.EncodeDespawn(wire.DespawnPayload{ID: id})))
}

// broadcastLobbyStatus sends the current lobby snapshot to every bound
// endpoint; called after any change to host, lobby config, or the
// started flag.
func (l *Loop) broadcastLobbyStatus() {
	snap := l.store.Snapshot()
	started := uint8(0)
	if snap.GameStarted {
		started = 1
	}
	p := wire.LobbyStatusPayload{
		HostID:     ecs.ID(snap.HostID),
		BaseLives:  snap.BaseLives,
		Difficulty: snap.Difficulty,
		Started:    started,
	}
	l.sendToAll(frame(wire.MsgLobbyStatus, wire.EncodeLobbyStatus(p)))
}

// broadcastRoster rebuilds a PlayerEntry row for every live player
// entity and sends the full roster to every bound endpoint.
func (l *Loop) broadcastRoster() {
	var entries []wire.PlayerEntry
	l.reg.WithLock(func(w donburi.World) {
		ecs.ForEach(w, ecscomp.Lives, func(entry *donburi.Entry, lives *ecscomp.LivesData) {
			if !entry.HasComponent(ecscomp.IsPlayer) {
				return
			}
			name, _ := ecs.Get(entry, ecscomp.Name)
			ship, _ := ecs.Get(entry, ecscomp.ShipType)
			var nameVal string
			var shipVal uint8
			if name != nil {
				nameVal = name.Value
			}
			if ship != nil {
				shipVal = ship.Value
			}
			entries = append(entries, wire.PlayerEntry{
				ID:     ecs.ID(entry.Entity()),
				Lives:  lives.Value,
				ShipID: shipVal,
				Name:   wire.PutName(nameVal),
			})
		})
	})

	body := wire.EncodeRosterHeader(wire.RosterHeader{Count: uint8(len(entries))})
	for _, e := range entries {
		body = wire.EncodePlayerEntry(body, e)
	}
	l.sendToAll(frame(wire.MsgRoster, body))
}

// broadcastDespawnDiff compares this broadcast tick's live entity ids
// against the previous broadcast tick's set and emits a Despawn for
// every id that disappeared in between and is not a player (player
// despawns are handled explicitly by the leave path, never inferred from
// a diff). Despawns are always sent before the State snapshot in the
// same tick, per the ordering guarantee.
func (l *Loop) broadcastDespawnDiff() {
	curr := make(map[uint32]bool, len(l.prevIDs))
	l.reg.WithLock(func(w donburi.World) {
		ecs.ForEach(w, ecscomp.NetType, func(entry *donburi.Entry, nt *ecscomp.NetTypeData) {
			curr[ecs.ID(entry.Entity())] = nt.Kind == ecscomp.NetPlayer
		})
	})

	for id, wasPlayer := range l.prevIDs {
		if _, stillAlive := curr[id]; stillAlive {
			continue
		}
		if wasPlayer {
			continue
		}
		l.broadcastDespawnOne(id)
	}
	l.prevIDs = curr
}
