package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/worldconst"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

const bossRightMargin float32 = 20

// BossSpawn triggers whenever the best individual player score has
// crossed another multiple of BossThreshold that hasn't yet produced a
// boss. Only one boss is ever on the field at a time: while one is
// present this is a no-op.
func BossSpawn(w donburi.World, state *SimState) {
	anyBoss := false
	donburi.NewQuery(filter.Contains(ecscomp.BossTag)).Each(w, func(*donburi.Entry) { anyBoss = true })
	if anyBoss {
		return
	}

	best := BestPlayerScore(w)
	shouldHaveSpawned := int(float32(best) / BossThreshold)
	if shouldHaveSpawned <= state.BossesSpawned {
		return
	}

	const bw, bh float32 = 160, 120
	yMin := worldconst.TopMargin
	yMax := worldconst.Height - worldconst.BottomMargin - bh
	if yMax < yMin {
		yMax = yMin
	}
	by := 0.5 * (yMin + yMax)

	e := w.Create(
		ecscomp.Transform,
		ecscomp.Velocity,
		ecscomp.Size,
		ecscomp.ColorRGBA,
		ecscomp.NetType,
		ecscomp.EnemyTag,
		ecscomp.BossTag,
	)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: 1040, Y: by})
	ecscomp.Velocity.Set(entry, &ecscomp.VelocityData{VX: -60, VY: 0})
	ecscomp.Size.Set(entry, &ecscomp.SizeData{W: bw, H: bh})
	ecscomp.ColorRGBA.Set(entry, &ecscomp.ColorRGBAData{RGBA: 0x9646B4FF})
	ecscomp.NetType.Set(entry, &ecscomp.NetTypeData{Kind: ecscomp.NetEnemy})
	ecscomp.BossTag.Set(entry, &ecscomp.BossTagData{
		HP:          50,
		MaxHP:       50,
		RightMargin: bossRightMargin,
		StopX:       worldconst.Width - bossRightMargin - bw,
		AtStop:      false,
		DirDown:     true,
		SpeedX:      -60,
		SpeedY:      100,
	})

	state.BossesSpawned++
}
