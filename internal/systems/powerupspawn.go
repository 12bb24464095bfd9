package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/worldconst"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// powerupSpeed is the ~90 px/s leftward drift every power-up drops at.
const powerupSpeed float32 = 90

// powerupColors maps each kind to its render hint: green life, blue
// invincibility, purple clear-board, yellow infinite-fire.
var powerupColors = map[ecscomp.PowerupKind]uint32{
	ecscomp.PowerupLife:          0x64DC78FF,
	ecscomp.PowerupInvincibility: 0x50AAFFFF,
	ecscomp.PowerupClearBoard:    0xAA50C8FF,
	ecscomp.PowerupInfiniteFire:  0xF0DC50FF,
}

// powerupOrder is the uniform-pick cycle PowerupSpawn draws from; using a
// fixed-order slice indexed by a random int keeps the "one of four types
// uniformly" rule explicit instead of hashing an enum range.
var powerupOrder = []ecscomp.PowerupKind{
	ecscomp.PowerupLife,
	ecscomp.PowerupInvincibility,
	ecscomp.PowerupClearBoard,
	ecscomp.PowerupInfiniteFire,
}

// TeamScore sums Score over every live player, the quantity PowerupSpawn
// gates on and the team total the tick loop broadcasts.
func TeamScore(w donburi.World) int32 {
	var total int32
	query := donburi.NewQuery(filter.Contains(ecscomp.IsPlayer, ecscomp.Score))
	query.Each(w, func(entry *donburi.Entry) {
		total += ecscomp.Score.Get(entry).Value
	})
	return total
}

// BestPlayerScore returns the highest individual Score among live
// players, the quantity BossSpawn gates on.
func BestPlayerScore(w donburi.World) int32 {
	var best int32
	query := donburi.NewQuery(filter.Contains(ecscomp.IsPlayer, ecscomp.Score))
	query.Each(w, func(entry *donburi.Entry) {
		if v := ecscomp.Score.Get(entry).Value; v > best {
			best = v
		}
	})
	return best
}

// PowerupSpawn drains the team-score threshold with a while loop, not an
// if, so a tick that crosses several thresholds in one jump (e.g. a
// ClearBoard chain) still spawns one power-up per threshold crossed.
func PowerupSpawn(w donburi.World, state *SimState) {
	teamScore := float32(TeamScore(w))
	for teamScore >= state.NextPowerupScore {
		kind := powerupOrder[state.Rng.Intn(len(powerupOrder))]
		y := worldconst.TopMargin + 16 + state.Rng.Float32()*(worldconst.Height-10-16-(worldconst.TopMargin+16))

		e := w.Create(
			ecscomp.Transform,
			ecscomp.Velocity,
			ecscomp.Size,
			ecscomp.ColorRGBA,
			ecscomp.NetType,
			ecscomp.PowerupTag,
		)
		entry := w.Entry(e)
		ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: 1020, Y: y})
		ecscomp.Velocity.Set(entry, &ecscomp.VelocityData{VX: -powerupSpeed, VY: 0})
		ecscomp.Size.Set(entry, &ecscomp.SizeData{W: 18, H: 18})
		ecscomp.ColorRGBA.Set(entry, &ecscomp.ColorRGBAData{RGBA: powerupColors[kind]})
		ecscomp.NetType.Set(entry, &ecscomp.NetTypeData{Kind: ecscomp.NetPowerup})
		ecscomp.PowerupTag.Set(entry, &ecscomp.PowerupTagData{Type: kind})

		state.NextPowerupScore += 1500 + state.Rng.Float32()*500
	}
}
