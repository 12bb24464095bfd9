package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Movement integrates every entity with Transform+Velocity, except
// formation followers: their position is authored by Formation and
// would be overwritten on the same tick if Movement also integrated
// them from their display-only Velocity hint.
func Movement(w donburi.World, dt float32) {
	query := donburi.NewQuery(filter.And(
		filter.Contains(ecscomp.Transform, ecscomp.Velocity),
		filter.Not(filter.Contains(ecscomp.FormationFollower)),
	))
	query.Each(w, func(entry *donburi.Entry) {
		t := ecscomp.Transform.Get(entry)
		v := ecscomp.Velocity.Get(entry)
		t.X += v.VX * dt
		t.Y += v.VY * dt
	})
}
