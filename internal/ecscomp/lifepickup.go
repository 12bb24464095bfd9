package ecscomp

import "github.com/yohamta/donburi"

// LifePickupData is a one-shot marker set by PowerupCollision and applied
// by the tick loop's post-processing pass, which raises Lives by one.
type LifePickupData struct {
	Pending bool
}

var LifePickup = donburi.NewComponentType[LifePickupData]()
