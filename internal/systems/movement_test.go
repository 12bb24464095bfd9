package systems

import (
	"testing"

	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
)

func TestMovementIntegratesPositionByVelocityAndDt(t *testing.T) {
	w := donburi.NewWorld()
	e := w.Create(ecscomp.Transform, ecscomp.Velocity)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: 10, Y: 20})
	ecscomp.Velocity.Set(entry, &ecscomp.VelocityData{VX: 100, VY: -40})

	Movement(w, 0.5)

	tr := ecscomp.Transform.Get(entry)
	if tr.X != 60 {
		t.Fatalf("X = %v, want 60", tr.X)
	}
	if tr.Y != 0 {
		t.Fatalf("Y = %v, want 0", tr.Y)
	}
}

func TestMovementSkipsFormationFollowers(t *testing.T) {
	w := donburi.NewWorld()
	e := w.Create(ecscomp.Transform, ecscomp.Velocity, ecscomp.FormationFollower)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: 10, Y: 20})
	ecscomp.Velocity.Set(entry, &ecscomp.VelocityData{VX: 100, VY: 100})

	Movement(w, 1.0)

	tr := ecscomp.Transform.Get(entry)
	if tr.X != 10 || tr.Y != 20 {
		t.Fatalf("formation follower moved by Movement: got (%v, %v), want unchanged (10, 20)", tr.X, tr.Y)
	}
}
