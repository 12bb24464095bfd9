package systems

import (
	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Collision resolves all three AABB pairings in one pass: player bullets
// against enemies, enemy bullets against players, and players ramming
// enemies directly. Destructions and score awards are collected into
// local maps and applied after every query has run, since the registry
// contract forbids removing an entity of the type currently being
// iterated from inside that iteration.
func Collision(w donburi.World) {
	deadBullets := map[donburi.Entity]bool{}
	deadEnemies := map[donburi.Entity]bool{}
	scoreAward := map[donburi.Entity]int32{}

	bullets := donburi.NewQuery(filter.Contains(ecscomp.BulletTag, ecscomp.Transform, ecscomp.Size, ecscomp.BulletOwner))
	enemies := donburi.NewQuery(filter.Contains(ecscomp.EnemyTag, ecscomp.Transform, ecscomp.Size))
	players := donburi.NewQuery(filter.Contains(ecscomp.IsPlayer, ecscomp.Transform, ecscomp.Size))

	// Player-faction bullets vs enemies: beams keep checking after a hit,
	// plain bullets are consumed by the first one.
	bullets.Each(w, func(bEntry *donburi.Entry) {
		bt := ecscomp.BulletTag.Get(bEntry)
		if bt.Faction != ecscomp.FactionPlayer {
			return
		}
		isBeam := bEntry.HasComponent(ecscomp.BeamTag)
		owner := ecscomp.BulletOwner.Get(bEntry).Owner
		bx, by, bw, bh := boxOf(ecscomp.Transform.Get(bEntry), ecscomp.Size.Get(bEntry))

		enemies.Each(w, func(eEntry *donburi.Entry) {
			if !isBeam && deadBullets[bEntry.Entity()] {
				return
			}
			if deadEnemies[eEntry.Entity()] {
				return
			}
			ex, ey, ew, eh := boxOf(ecscomp.Transform.Get(eEntry), ecscomp.Size.Get(eEntry))
			if !overlaps(bx, by, bw, bh, ex, ey, ew, eh) {
				return
			}

			if boss, ok := ecs.Get(eEntry, ecscomp.BossTag); ok {
				boss.HP--
				if boss.HP <= 0 {
					deadEnemies[eEntry.Entity()] = true
					scoreAward[owner] += 1000
				}
			} else {
				deadEnemies[eEntry.Entity()] = true
				scoreAward[owner] += 50
			}
			if !isBeam {
				deadBullets[bEntry.Entity()] = true
			}
		})
	})

	// Enemy-faction bullets vs players: invincible players only consume
	// the bullet; everyone else takes a hit and the bullet is consumed.
	bullets.Each(w, func(bEntry *donburi.Entry) {
		bt := ecscomp.BulletTag.Get(bEntry)
		if bt.Faction != ecscomp.FactionEnemy || deadBullets[bEntry.Entity()] {
			return
		}
		bx, by, bw, bh := boxOf(ecscomp.Transform.Get(bEntry), ecscomp.Size.Get(bEntry))

		players.Each(w, func(pEntry *donburi.Entry) {
			if deadBullets[bEntry.Entity()] {
				return
			}
			px, py, pw, ph := boxOf(ecscomp.Transform.Get(pEntry), ecscomp.Size.Get(pEntry))
			if !overlaps(bx, by, bw, bh, px, py, pw, ph) {
				return
			}
			applyPlayerHit(pEntry)
			deadBullets[bEntry.Entity()] = true
		})
	})

	// Players ramming enemies directly: same hit logic, plus the enemy
	// is always destroyed and each player can only be hit once per tick.
	players.Each(w, func(pEntry *donburi.Entry) {
		hit := false
		px, py, pw, ph := boxOf(ecscomp.Transform.Get(pEntry), ecscomp.Size.Get(pEntry))
		enemies.Each(w, func(eEntry *donburi.Entry) {
			if hit || deadEnemies[eEntry.Entity()] {
				return
			}
			ex, ey, ew, eh := boxOf(ecscomp.Transform.Get(eEntry), ecscomp.Size.Get(eEntry))
			if !overlaps(px, py, pw, ph, ex, ey, ew, eh) {
				return
			}
			applyPlayerHit(pEntry)
			deadEnemies[eEntry.Entity()] = true
			hit = true
		})
	})

	for e := range deadBullets {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
	for e := range deadEnemies {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
	for owner, amount := range scoreAward {
		if !w.Valid(owner) {
			continue
		}
		if score, ok := ecs.Get(w.Entry(owner), ecscomp.Score); ok {
			score.Value += amount
		}
	}
}

// applyPlayerHit registers a hit unless the player is currently
// invincible, in which case the incoming bullet/overlap is absorbed with
// no other effect. Player entities always carry Invincible and HitFlag
// (created with zero values), so no presence check is needed here.
func applyPlayerHit(pEntry *donburi.Entry) {
	inv := ecscomp.Invincible.Get(pEntry)
	if inv.TimeLeft > 0 {
		return
	}
	hf := ecscomp.HitFlag.Get(pEntry)
	hf.Value = true
	if inv.TimeLeft < 1.0 {
		inv.TimeLeft = 1.0
	}
}
