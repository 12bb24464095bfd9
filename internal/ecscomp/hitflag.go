package ecscomp

import "github.com/yohamta/donburi"

// HitFlagData is set by Collision and consumed by the tick loop's
// post-processing pass, which decrements Lives and resets the player.
type HitFlagData struct {
	Value bool
}

var HitFlag = donburi.NewComponentType[HitFlagData]()
