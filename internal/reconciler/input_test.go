package reconciler

import (
	"testing"

	"github.com/starwake/server/internal/wire"
	"github.com/starwake/server/internal/worldconst"
)

func TestGateBitsUngatedWhenSelfUnknown(t *testing.T) {
	bits := GateBits(Held{Up: true, Shoot: true}, 0, 0, false)
	if bits&wire.InputUp == 0 || bits&wire.InputShoot == 0 {
		t.Fatalf("bits = %08b, want Up and Shoot set when self position unknown", bits)
	}
}

func TestGateBitsClipsDirectionAtTopEdge(t *testing.T) {
	bits := GateBits(Held{Up: true}, 100, worldconst.TopMargin, true)
	if bits&wire.InputUp != 0 {
		t.Fatalf("Up bit set at top margin, want clipped")
	}
}

func TestGateBitsAllowsDirectionAwayFromEdge(t *testing.T) {
	bits := GateBits(Held{Down: true}, 100, worldconst.TopMargin+50, true)
	if bits&wire.InputDown == 0 {
		t.Fatalf("Down bit clipped away from any edge, want set")
	}
}

func TestGateBitsClipsRightEdge(t *testing.T) {
	bits := GateBits(Held{Right: true}, worldconst.Width-playerWidth, 100, true)
	if bits&wire.InputRight != 0 {
		t.Fatalf("Right bit set at right edge, want clipped")
	}
}

func TestGateBitsClipsLeftEdge(t *testing.T) {
	bits := GateBits(Held{Left: true}, 0, 100, true)
	if bits&wire.InputLeft != 0 {
		t.Fatalf("Left bit set at left edge, want clipped")
	}
}
