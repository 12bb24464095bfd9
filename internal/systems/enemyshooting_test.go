package systems

import (
	"testing"

	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
)

// fixedRng is a randSource that always returns the same value, so
// jitter-dependent assertions stay deterministic.
type fixedRng float32

func (f fixedRng) Float32() float32 { return float32(f) }

func newShooterEnemy(w donburi.World, x, y float32) *donburi.Entry {
	e := w.Create(ecscomp.EnemyShooter, ecscomp.Transform)
	entry := w.Entry(e)
	ecscomp.EnemyShooter.Set(entry, &ecscomp.EnemyShooterData{Interval: 1.0, BulletSpeed: 240, Accuracy: 0.65})
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: x, Y: y})
	return entry
}

func newLivePlayer(w donburi.World, x, y float32) {
	e := w.Create(ecscomp.IsPlayer, ecscomp.Transform, ecscomp.Lives)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: x, Y: y})
	ecscomp.Lives.Set(entry, &ecscomp.LivesData{Value: 3})
}

func TestEnemyShootingDoesNotFireBeforeCooldownElapses(t *testing.T) {
	w := donburi.NewWorld()
	shooter := newShooterEnemy(w, 500, 300)
	ecscomp.EnemyShooter.Get(shooter).Cooldown = 0.5
	newLivePlayer(w, 100, 300)

	EnemyShooting(w, 0.1, fixedRng(0.5))

	if got := countBullets(w); got != 0 {
		t.Fatalf("bullets = %d, want 0 before cooldown elapses", got)
	}
}

func TestEnemyShootingFiresAtNearestLivePlayer(t *testing.T) {
	w := donburi.NewWorld()
	shooter := newShooterEnemy(w, 500, 300)
	newLivePlayer(w, 100, 300)
	newLivePlayer(w, 480, 300) // nearer

	EnemyShooting(w, 0.1, fixedRng(0.5))

	if got := countBullets(w); got != 1 {
		t.Fatalf("bullets = %d, want 1", got)
	}
	if got := ecscomp.EnemyShooter.Get(shooter).Cooldown; got <= 0 {
		t.Fatalf("Cooldown = %v, want reloaded to a positive interval", got)
	}
}

func TestEnemyShootingSkipsFireWithNoLivePlayers(t *testing.T) {
	w := donburi.NewWorld()
	newShooterEnemy(w, 500, 300)
	e := w.Create(ecscomp.IsPlayer, ecscomp.Transform, ecscomp.Lives)
	ecscomp.Lives.Set(w.Entry(e), &ecscomp.LivesData{Value: 0})

	EnemyShooting(w, 0.1, fixedRng(0.5))

	if got := countBullets(w); got != 0 {
		t.Fatalf("bullets = %d, want 0 with no live players on the field", got)
	}
}
