package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Invincibility counts down every player's hit-immunity window. It never
// goes negative: a timer already at zero stays at zero.
func Invincibility(w donburi.World, dt float32) {
	query := donburi.NewQuery(filter.Contains(ecscomp.Invincible))
	query.Each(w, func(entry *donburi.Entry) {
		inv := ecscomp.Invincible.Get(entry)
		inv.TimeLeft -= dt
		if inv.TimeLeft < 0 {
			inv.TimeLeft = 0
		}
	})
}
