package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/worldconst"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// BossMotion drives every boss entity toward its stop column, then
// switches to a vertical bounce between the playable band's top and
// bottom once there. A boss carries its own Velocity, so snapshots see
// the same vx/vy the motion implies.
func BossMotion(w donburi.World) {
	query := donburi.NewQuery(filter.Contains(ecscomp.BossTag, ecscomp.Transform, ecscomp.Velocity, ecscomp.Size))
	query.Each(w, func(entry *donburi.Entry) {
		boss := ecscomp.BossTag.Get(entry)
		t := ecscomp.Transform.Get(entry)
		v := ecscomp.Velocity.Get(entry)
		s := ecscomp.Size.Get(entry)

		minY := worldconst.TopMargin
		maxY := worldconst.Height - worldconst.BottomMargin - s.H

		if !boss.AtStop {
			if t.X > boss.StopX {
				v.VX = boss.SpeedX
				v.VY = 0
			} else {
				t.X = boss.StopX
				boss.AtStop = true
			}
		}
		if boss.AtStop {
			v.VX = 0
			if boss.DirDown {
				v.VY = abs32(boss.SpeedY)
				if t.Y >= maxY {
					boss.DirDown = false
				}
			} else {
				v.VY = -abs32(boss.SpeedY)
				if t.Y <= minY {
					boss.DirDown = true
				}
			}
		}

		if t.Y < minY {
			t.Y = minY
		}
		if t.Y > maxY {
			t.Y = maxY
		}
	})
}
