package ecscomp

import "github.com/yohamta/donburi"

// InvincibleData grants hit immunity for TimeLeft seconds, decremented
// every tick by the Invincibility system.
type InvincibleData struct {
	TimeLeft float32
}

var Invincible = donburi.NewComponentType[InvincibleData]()
