package systems

import (
	"testing"

	"github.com/starwake/server/internal/ecscomp"
	"github.com/starwake/server/internal/wire"
	"github.com/yohamta/donburi"
)

func TestInputMovesByHeldDirectionBits(t *testing.T) {
	w := donburi.NewWorld()
	e := w.Create(ecscomp.PlayerInput, ecscomp.Transform)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: 100, Y: 100})
	ecscomp.PlayerInput.Set(entry, &ecscomp.PlayerInputData{Bits: wire.InputRight | wire.InputUp, Speed: 150})

	Input(w, 0.1)

	tr := ecscomp.Transform.Get(entry)
	if tr.X != 115 {
		t.Fatalf("X = %v, want 115", tr.X)
	}
	if tr.Y != 85 {
		t.Fatalf("Y = %v, want 85", tr.Y)
	}
}

func TestInputOpposingBitsCancelOut(t *testing.T) {
	w := donburi.NewWorld()
	e := w.Create(ecscomp.PlayerInput, ecscomp.Transform)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: 100, Y: 100})
	ecscomp.PlayerInput.Set(entry, &ecscomp.PlayerInputData{Bits: wire.InputLeft | wire.InputRight, Speed: 150})

	Input(w, 0.1)

	tr := ecscomp.Transform.Get(entry)
	if tr.X != 100 {
		t.Fatalf("X = %v, want unchanged 100 when opposing bits are both held", tr.X)
	}
}

func TestInputNeverClampsPosition(t *testing.T) {
	w := donburi.NewWorld()
	e := w.Create(ecscomp.PlayerInput, ecscomp.Transform)
	entry := w.Entry(e)
	ecscomp.Transform.Set(entry, &ecscomp.TransformData{X: 0, Y: 0})
	ecscomp.PlayerInput.Set(entry, &ecscomp.PlayerInputData{Bits: wire.InputUp | wire.InputLeft, Speed: 150})

	Input(w, 1.0)

	tr := ecscomp.Transform.Get(entry)
	if tr.X != -150 || tr.Y != -150 {
		t.Fatalf("got (%v, %v), want (-150, -150): Input never clamps, the client must edge-gate instead", tr.X, tr.Y)
	}
}
