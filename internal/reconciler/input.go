package reconciler

import (
	"time"

	"github.com/starwake/server/internal/wire"
	"github.com/starwake/server/internal/worldconst"
)

// inputTickInterval is the target input send rate.
const inputTickInterval = time.Second / 30

// playerWidth/playerHeight match the AABB a freshly joined player spawns
// with in internal/session.Store.Join, which is what the playable band's
// right/bottom edges are measured against. playerSpeed mirrors
// ecscomp.DefaultPlayerSpeed; duplicated here rather than imported so this
// package stays free of donburi, matching worldconst's own reason for
// living outside internal/ecscomp.
const (
	playerWidth  float32 = 20
	playerHeight float32 = 12
	playerSpeed  float32 = 150
)

// Held is the raw set of keys/buttons currently pressed, before gating.
type Held struct {
	Up, Down, Left, Right, Shoot, Charge bool
}

// GateBits builds the 8-bit input mask the server expects, clipping any
// direction bit that would walk the player's predicted next position
// outside the playable band. The server's Input system applies movement
// unconditionally from whatever bits it receives and never clamps a
// player's position itself, so this gate is the only thing keeping a
// held direction from pushing the ship off either edge. If self position
// is unknown (no Roster/State has identified and located this client's
// entity yet), bits are sent ungated.
func GateBits(h Held, selfX, selfY float32, known bool) uint8 {
	var bits uint8
	if h.Shoot {
		bits |= wire.InputShoot
	}
	if h.Charge {
		bits |= wire.InputCharge
	}

	if !known {
		return bits | rawDirectionBits(h)
	}

	step := playerSpeed * float32(inputTickInterval.Seconds())
	minX, maxX := float32(0), worldconst.Width-playerWidth
	minY, maxY := worldconst.TopMargin, worldconst.Height-worldconst.BottomMargin-playerHeight

	if h.Up && selfY-step >= minY {
		bits |= wire.InputUp
	}
	if h.Down && selfY+step <= maxY {
		bits |= wire.InputDown
	}
	if h.Left && selfX-step >= minX {
		bits |= wire.InputLeft
	}
	if h.Right && selfX+step <= maxX {
		bits |= wire.InputRight
	}
	return bits
}

func rawDirectionBits(h Held) uint8 {
	var bits uint8
	if h.Up {
		bits |= wire.InputUp
	}
	if h.Down {
		bits |= wire.InputDown
	}
	if h.Left {
		bits |= wire.InputLeft
	}
	if h.Right {
		bits |= wire.InputRight
	}
	return bits
}

// InputSender throttles SendInput calls to inputTickInterval, matching
// the target-30Hz "send when now-lastSend > 1/30" rule.
type InputSender struct {
	conn     *Conn
	lastSend time.Time
}

// NewInputSender wraps conn for rate-limited sends.
func NewInputSender(conn *Conn) *InputSender {
	return &InputSender{conn: conn}
}

// Maybe sends the gated bits for the current Held state if enough time
// has elapsed since the last send, using r's last known self position.
func (s *InputSender) Maybe(now time.Time, h Held, r *Reconciler) error {
	if now.Sub(s.lastSend) < inputTickInterval {
		return nil
	}
	s.lastSend = now
	x, y, known := r.SelfPosition()
	return s.conn.SendInput(GateBits(h, x, y, known))
}
