package game

import (
	"log"
	"net"

	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/session"
	"github.com/starwake/server/internal/systems"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
)

// HandleDatagram dispatches one received UDP packet by message type. It
// is passed to transport.DatagramServer.ReadLoop. Every decode error is
// logged once and the packet dropped; there is no retry and nothing is
// ever propagated back to the sender, per the drop-and-continue error
// policy.
func (l *Loop) HandleDatagram(addr *net.UDPAddr, payload []byte) {
	if len(payload) < wire.HeaderSize {
		log.Printf("wire: dropped short/invalid packet from %s (%d bytes)", addr, len(payload))
		return
	}
	hdr := wire.ParseHeader(payload)
	body := payload[wire.HeaderSize:]
	if len(body) < int(hdr.Size) {
		log.Printf("wire: dropped short/invalid packet from %s (%d bytes, type=%d)", addr, len(payload), hdr.Type)
		return
	}
	body = body[:hdr.Size]
	key := session.Key(addr)

	switch hdr.Type {
	case wire.MsgHello:
		l.handleUdpHello(addr, key, body)
	case wire.MsgInput:
		l.handleInput(key, body)
	case wire.MsgLobbyConfig:
		l.handleLobbyConfig(key, body)
	case wire.MsgStartMatch:
		l.handleStartMatch(key)
	case wire.MsgDisconnect:
		l.removeClient(key)
	case wire.MsgPong:
		l.store.Touch(key)
	default:
		log.Printf("wire: dropped unknown packet type=%d from %s", hdr.Type, addr)
	}
}

func (l *Loop) handleUdpHello(addr *net.UDPAddr, key string, body []byte) {
	p, err := wire.DecodeUdpHello(body)
	if err != nil {
		log.Printf("wire: dropped short/invalid UdpHello from %s: %v", addr, err)
		return
	}
	_, isNew := l.store.BindDatagram(l.reg, key, addr, p.Token, wire.NameString(p.Name))
	if isNew {
		l.broadcastRoster()
		l.broadcastLobbyStatus()
	}
}

func (l *Loop) handleInput(key string, body []byte) {
	p, err := wire.DecodeInputPacket(body)
	if err != nil {
		log.Printf("wire: dropped short/invalid Input from %s", key)
		return
	}
	id, found := l.store.Touch(key)
	if !found {
		return
	}
	l.reg.WithLock(func(w donburi.World) {
		if !w.Valid(id) {
			return
		}
		if input, ok := ecs.Get(w.Entry(id), ecscomp.PlayerInput); ok {
			input.Bits = p.Bits
		}
	})
}

func (l *Loop) handleLobbyConfig(key string, body []byte) {
	p, err := wire.DecodeLobbyConfig(body)
	if err != nil {
		log.Printf("wire: dropped short/invalid LobbyConfig from %s", key)
		return
	}
	l.store.Touch(key)
	if l.store.SetLobbyConfig(key, p.BaseLives, p.Difficulty) {
		l.broadcastLobbyStatus()
	}
}

// handleStartMatch applies a host's StartMatch request: resets every
// player's Lives/Score/Transform/Velocity/Invincible, sweeps the
// non-player world clean (the same cleanupGameWorld call removeClient
// makes on the leave path), and moves the lobby into the started state.
// StartGame is announced over the reliable stream, matching the
// transport component's channel assignment for it. The roster and a
// zero ScoreUpdate are rebroadcast unconditionally so every client's
// next snapshot reflects the reset positions and scores even though
// nothing has moved yet this tick.
func (l *Loop) handleStartMatch(key string) {
	l.store.Touch(key)
	ok, baseLives, playerIDs := l.store.StartMatch(key)
	if !ok {
		return
	}

	snap := l.store.Snapshot()
	l.state = systems.NewSimState(l.state.Rng)
	l.state.Difficulty = snap.Difficulty

	l.reg.WithLock(func(w donburi.World) {
		cleanupGameWorld(w)
		for i, id := range playerIDs {
			if !w.Valid(id) {
				continue
			}
			entry := w.Entry(id)
			if lives, ok := ecs.Get(entry, ecscomp.Lives); ok {
				lives.Value = baseLives
			}
			if score, ok := ecs.Get(entry, ecscomp.Score); ok {
				score.Value = 0
			}
			if t, ok := ecs.Get(entry, ecscomp.Transform); ok {
				t.X, t.Y = 50, float32(100+i*40)
			}
			if v, ok := ecs.Get(entry, ecscomp.Velocity); ok {
				v.VX, v.VY = 0, 0
			}
			if inv, ok := ecs.Get(entry, ecscomp.Invincible); ok {
				inv.TimeLeft = 1.0
			}
		}
	})

	l.broadcastRoster()
	l.broadcastLobbyStatus()
	l.broadcastScoreUpdate(wire.ScoreUpdatePayload{ID: 0, Score: 0})
	l.stream.Broadcast(wire.EncodeHeader(wire.Header{Type: wire.MsgStartGame, Version: wire.ProtocolVersion}))
}
