package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/worldconst"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// DespawnOffscreen destroys anything that has drifted past the left
// world edge, regardless of kind. Iteration collects victims first: the
// registry contract forbids destroying entities of the iterated type
// while still inside that type's own Each callback.
func DespawnOffscreen(w donburi.World) {
	var dead []donburi.Entity
	query := donburi.NewQuery(filter.Contains(ecscomp.Transform))
	query.Each(w, func(entry *donburi.Entry) {
		t := ecscomp.Transform.Get(entry)
		if t.X < worldconst.DespawnOffscreenX {
			dead = append(dead, entry.Entity())
		}
	})
	for _, e := range dead {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
}

// DespawnOutOfBounds destroys bullets (including beams) that lie wholly
// outside the bullet sweep rectangle, checked on every side rather than
// only the left edge DespawnOffscreen checks.
func DespawnOutOfBounds(w donburi.World) {
	var dead []donburi.Entity
	query := donburi.NewQuery(filter.Contains(ecscomp.BulletTag, ecscomp.Transform, ecscomp.Size))
	query.Each(w, func(entry *donburi.Entry) {
		t := ecscomp.Transform.Get(entry)
		s := ecscomp.Size.Get(entry)
		if t.X+s.W < worldconst.BulletBoundsMinX || t.X > worldconst.BulletBoundsMaxX ||
			t.Y+s.H < worldconst.BulletBoundsMinY || t.Y > worldconst.BulletBoundsMaxY {
			dead = append(dead, entry.Entity())
		}
	})
	for _, e := range dead {
		if w.Valid(e) {
			w.Remove(e)
		}
	}
}
