package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// beamColor is the render hint for a charge-gun beam.
const beamColor uint32 = 0x77CCFFFF

// ChargeShooting accumulates charge while the Charge bit is held and
// releases a beam the tick it is let go, provided enough charge built up.
// A beam's thickness scales linearly with how full the charge was.
func ChargeShooting(w donburi.World, dt float32) {
	query := donburi.NewQuery(filter.Contains(ecscomp.ChargeGun, ecscomp.PlayerInput, ecscomp.Transform))
	query.Each(w, func(entry *donburi.Entry) {
		gun := ecscomp.ChargeGun.Get(entry)
		in := ecscomp.PlayerInput.Get(entry)
		t := ecscomp.Transform.Get(entry)

		held := in.Bits&wire.InputCharge != 0
		if held {
			gun.Charge += dt
			if gun.Charge > gun.MaxCharge {
				gun.Charge = gun.MaxCharge
			}
			gun.Firing = true
			return
		}

		if !gun.Firing {
			return
		}
		gun.Firing = false
		if gun.Charge > 0.05 {
			thickness := 8 + (gun.Charge/gun.MaxCharge)*44
			e := spawnBullet(w, t.X+10, t.Y+6-thickness/2, 600, 0, ecscomp.FactionPlayer, entry.Entity(), beamColor)
			be := w.Entry(e)
			be.AddComponent(ecscomp.BeamTag)
			ecscomp.Size.Set(be, &ecscomp.SizeData{W: 700, H: thickness})
		}
		gun.Charge = 0
	})
}
