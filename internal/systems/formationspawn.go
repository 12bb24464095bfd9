package systems

import (
	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/worldconst"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// ShooterPercent is the probability, in whole percent, that any one
// formation follower is emplaced with an EnemyShooter. BigShooters
// followers always get one; ShooterPercent does not apply to them.
const ShooterPercent = 40

const enemyHeight float32 = 18
const formationSpacing float32 = 36

// enemyShooterInterval returns the per-formation-kind interval range,
// tuned by difficulty: Snake/Line use the 0.9/1.2/1.6 triplet,
// Grid/Triangle the slightly slower 1.0/1.3/1.7 triplet.
func enemyShooterInterval(difficulty uint8, slow bool) float32 {
	switch difficulty {
	case 2:
		if slow {
			return 1.0
		}
		return 0.9
	case 1:
		if slow {
			return 1.3
		}
		return 1.2
	default:
		if slow {
			return 1.7
		}
		return 1.6
	}
}

func maybeEnemyShooter(w donburi.World, entry *donburi.Entry, state *SimState, interval, bulletSpeed, accuracy float32) {
	if state.Rng.Intn(100) >= ShooterPercent {
		return
	}
	entry.AddComponent(ecscomp.EnemyShooter)
	ecscomp.EnemyShooter.Set(entry, &ecscomp.EnemyShooterData{Interval: interval, BulletSpeed: bulletSpeed, Accuracy: accuracy})
}

func newFollower(w donburi.World, origin donburi.Entity, x, y, vx float32, index int, color uint32, w_, h float32) *donburi.Entry {
	e := w.Create(
		ecscomp.Transform,
		ecscomp.Velocity,
		ecscomp.Size,
		ecscomp.ColorRGBA,
		ecscomp.NetType,
		ecscomp.EnemyTag,
		ecscomp.FormationFollower,
	)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: x, Y: y})
	ecscomp.Velocity.Set(entry, &ecscomp.VelocityData{VX: vx, VY: 0})
	ecscomp.Size.Set(entry, &ecscomp.SizeData{W: w_, H: h})
	ecscomp.ColorRGBA.Set(entry, &ecscomp.ColorRGBAData{RGBA: color})
	ecscomp.NetType.Set(entry, &ecscomp.NetTypeData{Kind: ecscomp.NetEnemy})
	return entry
}

func newFormationOrigin(w donburi.World, x, y, speedX float32, data ecscomp.FormationData) donburi.Entity {
	e := w.Create(ecscomp.Transform, ecscomp.Formation)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: x, Y: y})
	ecscomp.Formation.Set(entry, &data)
	return e
}

func spawnSnake(w donburi.World, state *SimState, y float32, count int) {
	origin := newFormationOrigin(w, 980, y, -60, ecscomp.FormationData{Type: ecscomp.FormationSnake, SpeedX: -60, Amplitude: 70, Frequency: 2.5, Spacing: formationSpacing})
	for i := 0; i < count; i++ {
		localX := float32(i) * formationSpacing
		entry := newFollower(w, origin, 980+localX, y, -60, i, 0xFF5555FF, 27, enemyHeight)
		ecscomp.FormationFollower.Set(entry, &ecscomp.FormationFollowerData{Formation: origin, Index: uint16(i), LocalX: localX})
		maybeEnemyShooter(w, entry, state, enemyShooterInterval(state.Difficulty, false), 240, 0.65)
	}
}

func spawnLine(w donburi.World, state *SimState, y float32, count int) {
	origin := newFormationOrigin(w, 980, y, -60, ecscomp.FormationData{Type: ecscomp.FormationLine, SpeedX: -60, Spacing: 40})
	for i := 0; i < count; i++ {
		localX := float32(i) * 40
		entry := newFollower(w, origin, 980+localX, y, -60, i, 0xE06666FF, 27, enemyHeight)
		ecscomp.FormationFollower.Set(entry, &ecscomp.FormationFollowerData{Formation: origin, Index: uint16(i), LocalX: localX})
		maybeEnemyShooter(w, entry, state, enemyShooterInterval(state.Difficulty, false), 240, 0.62)
	}
}

func spawnGrid(w donburi.World, state *SimState, y float32, rows, cols int) {
	origin := newFormationOrigin(w, 980, y, -50, ecscomp.FormationData{Type: ecscomp.FormationGridRect, SpeedX: -50, Spacing: formationSpacing, Rows: rows, Cols: cols})
	idx := 0
	for rr := 0; rr < rows; rr++ {
		for cc := 0; cc < cols; cc++ {
			localX := float32(cc) * formationSpacing
			localY := float32(rr) * formationSpacing
			entry := newFollower(w, origin, 980+localX, y+localY, -50, idx, 0xCC4444FF, 27, enemyHeight)
			ecscomp.FormationFollower.Set(entry, &ecscomp.FormationFollowerData{Formation: origin, Index: uint16(idx), LocalX: localX, LocalY: localY})
			maybeEnemyShooter(w, entry, state, enemyShooterInterval(state.Difficulty, true), 220, 0.60)
			idx++
		}
	}
}

func spawnTriangle(w donburi.World, state *SimState, y float32, rows int) {
	origin := newFormationOrigin(w, 980, y, -55, ecscomp.FormationData{Type: ecscomp.FormationTriangle, SpeedX: -55, Spacing: formationSpacing, Rows: rows})
	idx := 0
	for cc := 0; cc < rows; cc++ {
		count := cc + 1
		startY := -0.5 * float32(count-1) * formationSpacing
		for rr := 0; rr < count; rr++ {
			localX := float32(cc) * formationSpacing
			localY := startY + float32(rr)*formationSpacing
			entry := newFollower(w, origin, 980+localX, y+localY, -55, idx, 0xDD7777FF, 27, enemyHeight)
			ecscomp.FormationFollower.Set(entry, &ecscomp.FormationFollowerData{Formation: origin, Index: uint16(idx), LocalX: localX, LocalY: localY})
			maybeEnemyShooter(w, entry, state, enemyShooterInterval(state.Difficulty, true), 220, 0.60)
			idx++
		}
	}
}

func spawnBigShooters(w donburi.World, state *SimState, y float32, count int) {
	origin := newFormationOrigin(w, 980, y, -40, ecscomp.FormationData{Type: ecscomp.FormationBigShooters, SpeedX: -40, Spacing: 64})
	for i := 0; i < count; i++ {
		localX := float32(i) * 64
		entry := newFollower(w, origin, 980+localX, y, -40, i, 0xAA3333FF, 28, 20)
		ecscomp.FormationFollower.Set(entry, &ecscomp.FormationFollowerData{Formation: origin, Index: uint16(i), LocalX: localX})
		accuracy := 0.5 + state.Rng.Float32()*0.3
		entry.AddComponent(ecscomp.EnemyShooter)
		ecscomp.EnemyShooter.Set(entry, &ecscomp.EnemyShooterData{Interval: 1.2, BulletSpeed: 240, Accuracy: accuracy})
	}
}

func round(x float32) int {
	if x < 0 {
		return -round(-x)
	}
	return int(x + 0.5)
}

func scaled(base int, mult float32) int {
	n := round(float32(base) * mult)
	if n < 1 {
		return 1
	}
	return n
}

// FormationSpawn runs the wave cadence. A boss on the field both
// suppresses new waves and is remembered across ticks so the wave that
// follows its death is spawned immediately rather than waiting out a
// full cadence.
func FormationSpawn(w donburi.World, dt float32, state *SimState) {
	bossPresent := false
	donburi.NewQuery(filter.Contains(ecscomp.BossTag)).Each(w, func(*donburi.Entry) { bossPresent = true })
	if bossPresent {
		state.BossWasActive = true
		return
	}
	if state.BossWasActive {
		state.BossWasActive = false
		state.FormationTimer = state.FormationBaseInterval
	}

	state.FormationTimer += dt
	if state.FormationTimer < state.FormationBaseInterval {
		return
	}
	state.FormationTimer = 0

	activeFormations := 0
	donburi.NewQuery(filter.Contains(ecscomp.Formation)).Each(w, func(*donburi.Entry) { activeFormations++ })
	if activeFormations >= 2 {
		return
	}

	switch state.Rng.Intn(5) {
	case 0:
		amplitude := float32(70)
		minY, maxY := worldconst.TopMargin+amplitude, worldconst.Height-worldconst.BottomMargin-amplitude-enemyHeight
		if minY > maxY {
			minY, maxY = maxY, minY
		}
		y := minY + state.Rng.Float32()*(maxY-minY)
		spawnSnake(w, state, y, scaled(6, state.CountMultiplier))
	case 1:
		minY, maxY := worldconst.TopMargin, worldconst.Height-worldconst.BottomMargin-enemyHeight
		y := minY + state.Rng.Float32()*(maxY-minY)
		spawnLine(w, state, y, scaled(8, state.CountMultiplier))
	case 2:
		rows, cols := scaled(3, state.CountMultiplier), scaled(5, state.CountMultiplier)
		extent := float32(rows-1)*formationSpacing + enemyHeight
		minY, maxY := worldconst.TopMargin, worldconst.Height-worldconst.BottomMargin-extent
		if minY > maxY {
			minY, maxY = maxY, minY
		}
		y := minY + state.Rng.Float32()*(maxY-minY)
		spawnGrid(w, state, y, rows, cols)
	case 3:
		rows := scaled(5, state.CountMultiplier)
		half := 0.5 * float32(rows-1) * formationSpacing
		minY, maxY := worldconst.TopMargin+half, worldconst.Height-worldconst.BottomMargin-half-enemyHeight
		if minY > maxY {
			minY, maxY = maxY, minY
		}
		y := minY + state.Rng.Float32()*(maxY-minY)
		spawnTriangle(w, state, y, rows)
	case 4:
		minY, maxY := worldconst.TopMargin, worldconst.Height-worldconst.BottomMargin-20
		y := minY + state.Rng.Float32()*(maxY-minY)
		spawnBigShooters(w, state, y, scaled(3, state.CountMultiplier))
	}
}
