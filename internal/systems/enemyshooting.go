package systems

import (
	"math"

	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// clampAccuracy keeps an EnemyShooter's aim jitter within the tuned
// band: 0.5 (sloppiest) to 0.8 (tightest).
func clampAccuracy(acc float32) float32 {
	if acc < 0.5 {
		return 0.5
	}
	if acc > 0.8 {
		return 0.8
	}
	return acc
}

// EnemyShooting aims at the nearest live player and fires with jitter
// proportional to (1-accuracy): a perfectly accurate shooter (acc=1,
// clamped to 0.8) still has a small cone; a sloppy one (acc=0.5) has up
// to +-0.25 radians of spread.
func EnemyShooting(w donburi.World, dt float32, rng randSource) {
	shooters := donburi.NewQuery(filter.Contains(ecscomp.EnemyShooter, ecscomp.Transform))
	players := donburi.NewQuery(filter.Contains(ecscomp.IsPlayer, ecscomp.Transform, ecscomp.Lives))

	shooters.Each(w, func(entry *donburi.Entry) {
		shooter := ecscomp.EnemyShooter.Get(entry)
		t := ecscomp.Transform.Get(entry)

		shooter.Cooldown -= dt
		if shooter.Cooldown > 0 {
			return
		}

		var nearest *donburi.Entry
		var nearestDist2 float32
		players.Each(w, func(p *donburi.Entry) {
			lives := ecscomp.Lives.Get(p)
			if lives.Value == 0 {
				return
			}
			pt := ecscomp.Transform.Get(p)
			dx := pt.X - t.X
			dy := pt.Y - t.Y
			d2 := dx*dx + dy*dy
			if nearest == nil || d2 < nearestDist2 {
				nearest = p
				nearestDist2 = d2
			}
		})
		if nearest == nil {
			return
		}

		pt := ecscomp.Transform.Get(nearest)
		dx := pt.X - t.X
		dy := pt.Y - t.Y
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if dist == 0 {
			dist = 1
		}
		ux, uy := dx/dist, dy/dist

		acc := clampAccuracy(shooter.Accuracy)
		maxAngle := (1 - acc) * 0.5
		jitter := (rng.Float32()*2 - 1) * maxAngle
		cos, sin := float32(math.Cos(float64(jitter))), float32(math.Sin(float64(jitter)))
		rx := ux*cos - uy*sin
		ry := ux*sin + uy*cos

		spawnBullet(w, t.X-10, t.Y+6, rx*shooter.BulletSpeed, ry*shooter.BulletSpeed, ecscomp.FactionEnemy, entry.Entity(), enemyBulletColor)
		shooter.Cooldown += shooter.Interval
	})
}

// randSource is the minimal surface EnemyShooting needs from *rand.Rand,
// so tests can swap in a fixed sequence.
type randSource interface {
	Float32() float32
}
