package systems

import (
	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// PowerupCollision resolves player-vs-powerup AABB overlap. Life pickups
// only set a pending marker: the actual Lives increment happens in the
// tick loop's post-processing pass, once per tick, alongside HitFlag
// resolution, since both mutate Lives and must not race each other.
func PowerupCollision(w donburi.World) {
	dead := map[donburi.Entity]bool{}
	clearBoard := false
	var clearBoardPicker donburi.Entity

	players := donburi.NewQuery(filter.Contains(ecscomp.IsPlayer, ecscomp.Transform, ecscomp.Size))
	powerups := donburi.NewQuery(filter.Contains(ecscomp.PowerupTag, ecscomp.Transform, ecscomp.Size))

	players.Each(w, func(pEntry *donburi.Entry) {
		px, py, pw, ph := boxOf(ecscomp.Transform.Get(pEntry), ecscomp.Size.Get(pEntry))
		powerups.Each(w, func(uEntry *donburi.Entry) {
			if dead[uEntry.Entity()] {
				return
			}
			ux, uy, uw, uh := boxOf(ecscomp.Transform.Get(uEntry), ecscomp.Size.Get(uEntry))
			if !overlaps(px, py, pw, ph, ux, uy, uw, uh) {
				return
			}

			switch ecscomp.PowerupTag.Get(uEntry).Type {
			case ecscomp.PowerupLife:
				ecscomp.LifePickup.Get(pEntry).Pending = true
			case ecscomp.PowerupInvincibility:
				inv := ecscomp.Invincible.Get(pEntry)
				if inv.TimeLeft < 10 {
					inv.TimeLeft = 10
				}
			case ecscomp.PowerupClearBoard:
				clearBoard = true
				clearBoardPicker = pEntry.Entity()
			case ecscomp.PowerupInfiniteFire:
				inf := ecscomp.InfiniteFire.Get(pEntry)
				if inf.TimeLeft < 10 {
					inf.TimeLeft = 10
				}
			}
			dead[uEntry.Entity()] = true
		})
	})

	for e := range dead {
		if w.Valid(e) {
			w.Remove(e)
		}
	}

	if !clearBoard {
		return
	}
	var destroyed []donburi.Entity
	enemies := donburi.NewQuery(filter.Contains(ecscomp.EnemyTag))
	enemies.Each(w, func(entry *donburi.Entry) {
		destroyed = append(destroyed, entry.Entity())
	})
	for _, e := range destroyed {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
	if w.Valid(clearBoardPicker) {
		if score, ok := ecs.Get(w.Entry(clearBoardPicker), ecscomp.Score); ok {
			score.Value += 50 * int32(len(destroyed))
		}
	}
}
