package reconciler

import "github.com/starwake/server/internal/wire"

// HUD is the read-only snapshot a renderer pulls out once per frame.
type HUD struct {
	SelfID       uint32
	SelfKnown    bool
	Lives        uint8
	Score        int32
	GameOver     bool
	Others       []PlayerInfo
	HostID       uint32
	BaseLives    uint8
	Difficulty   uint8
	LobbyStarted bool
	ReturnToMenu bool
}

// Snapshot returns the current HUD-facing state. Others is a fresh copy
// so the caller can hold onto it past the next HandlePacket call.
func (r *Reconciler) Snapshot() HUD {
	r.mu.Lock()
	defer r.mu.Unlock()
	others := make([]PlayerInfo, len(r.otherPlayers))
	copy(others, r.otherPlayers)
	return HUD{
		SelfID:       r.selfID,
		SelfKnown:    r.selfKnown,
		Lives:        r.lives,
		Score:        r.score,
		GameOver:     r.gameOver,
		Others:       others,
		HostID:       r.hostID,
		BaseLives:    r.lobbyBaseLives,
		Difficulty:   r.lobbyDifficulty,
		LobbyStarted: r.lobbyStarted,
		ReturnToMenu: r.returnToMenu,
	}
}

// RenderEntities returns a copy of the stable render list, ordered
// players, bullets, power-ups, enemies, as it stood after the most recent
// State or Despawn ingest.
func (r *Reconciler) RenderEntities() []TrackedEntity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TrackedEntity, len(r.renderList))
	copy(out, r.renderList)
	return out
}

// SelfPosition returns the self entity's last known position. ok is
// false until a State snapshot has both identified self (via Roster) and
// reported that id's row, which the input gate uses to fall back to
// ungated sends.
func (r *Reconciler) SelfPosition() (x, y float32, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.selfKnown {
		return 0, 0, false
	}
	te, found := r.entities[r.selfID]
	if !found {
		return 0, 0, false
	}
	return te.X, te.Y, true
}

// ShouldStartWaiting reports whether the client has enough signal to
// leave the lobby-waiting screen: the authoritative LobbyStatus.started
// flag is primary; seeing at least two distinct player ids in the
// tracked-entity table is a dev-convenience fallback for a server that
// never emits LobbyStatus, never required of a conformant one.
func (r *Reconciler) ShouldStartWaiting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lobbyStarted {
		return true
	}
	players := 0
	for _, te := range r.entities {
		if te.Type == wire.EntityPlayer {
			players++
		}
	}
	return players >= 2
}
