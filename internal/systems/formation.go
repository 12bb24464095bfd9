package systems

import (
	"math"

	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/worldconst"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Formation drives every wave: the origin entity is integrated directly
// by its own SpeedX (it carries no Velocity component — the generic
// Movement pass explicitly excludes FormationFollower-tagged entities
// so this system is the sole author of formation positioning), and each
// follower is placed at origin + local offset, with a Snake formation
// adding a sine wiggle to y. Follower Velocity is set to a display-only
// hint so the wire snapshot looks physically consistent.
func Formation(w donburi.World, dt float32, state *SimState) {
	state.Elapsed += float64(dt)

	origins := donburi.NewQuery(filter.Contains(ecscomp.Formation, ecscomp.Transform))
	origins.Each(w, func(originEntry *donburi.Entry) {
		form := ecscomp.Formation.Get(originEntry)
		origin := ecscomp.Transform.Get(originEntry)
		origin.X += form.SpeedX * dt

		followers := donburi.NewQuery(filter.Contains(ecscomp.FormationFollower, ecscomp.Transform))
		followers.Each(w, func(followerEntry *donburi.Entry) {
			follower := ecscomp.FormationFollower.Get(followerEntry)
			if follower.Formation != originEntry.Entity() {
				return
			}
			t := ecscomp.Transform.Get(followerEntry)
			t.X = origin.X + follower.LocalX
			y := origin.Y + follower.LocalY
			if form.Type == ecscomp.FormationSnake {
				phase := state.Elapsed*float64(form.Frequency) + float64(follower.Index)*0.6
				y += float32(math.Sin(phase)) * form.Amplitude
			}

			var h float32
			if sz, ok := ecs.Get(followerEntry, ecscomp.Size); ok {
				h = sz.H
			}
			t.Y = worldconst.ClampY(y, h)

			if vel, ok := ecs.Get(followerEntry, ecscomp.Velocity); ok {
				vel.VX = -abs32(form.SpeedX)
				vel.VY = 0
			}
		})
	})
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
