package ecscomp

import "github.com/yohamta/donburi"

// InfiniteFireData forces Shooter.Cooldown to zero every tick while
// TimeLeft is positive.
type InfiniteFireData struct {
	TimeLeft float32
}

var InfiniteFire = donburi.NewComponentType[InfiniteFireData]()
