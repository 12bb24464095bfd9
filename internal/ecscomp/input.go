package ecscomp

import "github.com/yohamta/donburi"

// DefaultPlayerSpeed is the px/s movement speed a fresh player gets.
const DefaultPlayerSpeed float32 = 150

// PlayerInputData is the latest input bitmask received from a client,
// applied and consumed by the Input system each tick.
type PlayerInputData struct {
	Bits  uint8
	Speed float32
}

var PlayerInput = donburi.NewComponentType[PlayerInputData]()
