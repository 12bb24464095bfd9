package reconciler

import (
	"log"
	"time"

	"github.com/starwake/server/internal/wire"
)

// renderOrder fixes the stable append order handleNetPacket rebuilds the
// render list in: players, bullets, power-ups, enemies.
var renderOrder = []wire.EntityType{wire.EntityPlayer, wire.EntityBullet, wire.EntityPowerup, wire.EntityEnemy}

// maxTrackedEntities caps the tracked-entity table; once it is full,
// rows for ids not already tracked are dropped until others age out.
const maxTrackedEntities = 512

func ttlFor(t wire.EntityType) time.Duration {
	if t == wire.EntityEnemy {
		return expireSecondsEnemy
	}
	return expireSecondsOthers
}

// handleState upserts every row of a State snapshot, ages out everything
// not mentioned in it, and rebuilds the stable render list.
func (r *Reconciler) handleState(body []byte) {
	sh, err := wire.DecodeStateHeader(body)
	if err != nil {
		log.Printf("reconciler: dropped short State header")
		return
	}
	rows := body[2:]

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	seen := make(map[uint32]bool, sh.Count)
	for i := 0; i < int(sh.Count); i++ {
		off := i * wire.PackedEntitySize
		if off+wire.PackedEntitySize > len(rows) {
			log.Printf("reconciler: dropped truncated State payload (wanted %d rows)", sh.Count)
			break
		}
		pe, err := wire.DecodePackedEntity(rows[off:])
		if err != nil {
			continue
		}
		te, ok := r.entities[pe.ID]
		if !ok {
			if len(r.entities) >= maxTrackedEntities {
				continue
			}
			te = &TrackedEntity{ID: pe.ID}
			r.entities[pe.ID] = te
		}
		te.Type = pe.Type
		te.X, te.Y, te.VX, te.VY, te.RGBA = pe.X, pe.Y, pe.VX, pe.VY, pe.RGBA
		te.missed = 0
		te.lastSeenAt = now
		seen[pe.ID] = true
	}

	var expired []uint32
	for id, te := range r.entities {
		if seen[id] {
			continue
		}
		te.missed++
		if te.missed >= missThreshold && now.Sub(te.lastSeenAt) >= ttlFor(te.Type) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(r.entities, id)
	}

	r.rebuildRenderList()
}

// handleDespawn removes an id the server has explicitly told us is gone,
// bypassing the miss-count/TTL grace period entirely.
func (r *Reconciler) handleDespawn(body []byte) {
	p, err := wire.DecodeDespawn(body)
	if err != nil {
		log.Printf("reconciler: dropped short Despawn")
		return
	}
	r.mu.Lock()
	delete(r.entities, p.ID)
	r.rebuildRenderList()
	r.mu.Unlock()
}

func (r *Reconciler) rebuildRenderList() {
	r.renderList = r.renderList[:0]
	for _, t := range renderOrder {
		for _, te := range r.entities {
			if te.Type == t {
				r.renderList = append(r.renderList, *te)
			}
		}
	}
}

// handleRoster replaces the roster wholesale, finding self by a
// prefix-match against the truncated username and keeping at most
// maxTeammates other rows for the HUD.
func (r *Reconciler) handleRoster(body []byte) {
	rh, err := wire.DecodeRosterHeader(body)
	if err != nil {
		log.Printf("reconciler: dropped short Roster header")
		return
	}
	rows := body[1:]

	r.mu.Lock()
	defer r.mu.Unlock()

	r.otherPlayers = r.otherPlayers[:0]
	for i := 0; i < int(rh.Count); i++ {
		off := i * wire.PlayerEntrySize
		if off+wire.PlayerEntrySize > len(rows) {
			log.Printf("reconciler: dropped truncated Roster payload (wanted %d rows)", rh.Count)
			break
		}
		pe, err := wire.DecodePlayerEntry(rows[off:])
		if err != nil {
			continue
		}
		lives := pe.Lives
		if lives > 10 {
			lives = 10
		}
		name := wire.NameString(pe.Name)
		if name == r.username {
			r.selfID = pe.ID
			r.selfKnown = true
			r.lives = lives
			continue
		}
		if len(r.otherPlayers) >= maxTeammates {
			continue
		}
		r.otherPlayers = append(r.otherPlayers, PlayerInfo{ID: pe.ID, Name: name, Lives: lives})
	}
}

func (r *Reconciler) handleLivesUpdate(body []byte) {
	p, err := wire.DecodeLivesUpdate(body)
	if err != nil {
		log.Printf("reconciler: dropped short LivesUpdate")
		return
	}
	lives := p.Lives
	if lives > 10 {
		lives = 10
	}
	r.mu.Lock()
	if r.selfKnown && p.ID == r.selfID {
		r.lives = lives
		r.gameOver = r.lives == 0
	} else {
		for i := range r.otherPlayers {
			if r.otherPlayers[i].ID == p.ID {
				r.otherPlayers[i].Lives = lives
				break
			}
		}
	}
	r.mu.Unlock()
}

func (r *Reconciler) handleScoreUpdate(body []byte) {
	p, err := wire.DecodeScoreUpdate(body)
	if err != nil {
		log.Printf("reconciler: dropped short ScoreUpdate")
		return
	}
	r.mu.Lock()
	r.score = p.Score
	r.mu.Unlock()
}

func (r *Reconciler) handleLobbyStatus(body []byte) {
	p, err := wire.DecodeLobbyStatus(body)
	if err != nil {
		log.Printf("reconciler: dropped short LobbyStatus")
		return
	}
	baseLives := p.BaseLives
	if baseLives < 1 {
		baseLives = 1
	} else if baseLives > 6 {
		baseLives = 6
	}
	difficulty := p.Difficulty
	if difficulty > 2 {
		difficulty = 2
	}
	r.mu.Lock()
	r.hostID = p.HostID
	r.lobbyBaseLives = baseLives
	r.lobbyDifficulty = difficulty
	r.lobbyStarted = p.Started != 0
	r.mu.Unlock()
}

func (r *Reconciler) handleGameOver() {
	r.mu.Lock()
	r.gameOver = true
	r.mu.Unlock()
}

func (r *Reconciler) handleReturnToMenu() {
	r.mu.Lock()
	r.returnToMenu = true
	r.mu.Unlock()
}
