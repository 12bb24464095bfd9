package systems

import (
	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// InfiniteFire counts down every active power-up timer and, while one is
// still running, holds the player's Shooter cooldown at zero so Shooting
// fires every tick regardless of its configured interval.
func InfiniteFire(w donburi.World, dt float32) {
	query := donburi.NewQuery(filter.Contains(ecscomp.InfiniteFire))
	query.Each(w, func(entry *donburi.Entry) {
		inf := ecscomp.InfiniteFire.Get(entry)
		inf.TimeLeft -= dt
		if inf.TimeLeft < 0 {
			inf.TimeLeft = 0
		}
		if inf.TimeLeft <= 0 {
			return
		}
		if shooter, ok := ecs.Get(entry, ecscomp.Shooter); ok {
			shooter.Cooldown = 0
		}
	})
}
