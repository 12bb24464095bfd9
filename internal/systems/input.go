package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Input moves every player by its own speed, per held direction bit.
// Movement is direct transform integration, not routed through Velocity:
// a player's on-wire vx/vy is whatever Movement would compute for other
// entities, but players have no generic Velocity-driven motion of their
// own — held direction bits move a player the instant they're set.
func Input(w donburi.World, dt float32) {
	query := donburi.NewQuery(filter.Contains(ecscomp.PlayerInput, ecscomp.Transform))
	query.Each(w, func(entry *donburi.Entry) {
		in := ecscomp.PlayerInput.Get(entry)
		t := ecscomp.Transform.Get(entry)
		step := in.Speed * dt

		if in.Bits&wire.InputUp != 0 {
			t.Y -= step
		}
		if in.Bits&wire.InputDown != 0 {
			t.Y += step
		}
		if in.Bits&wire.InputLeft != 0 {
			t.X -= step
		}
		if in.Bits&wire.InputRight != 0 {
			t.X += step
		}
	})
}
