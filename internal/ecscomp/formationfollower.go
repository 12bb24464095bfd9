package ecscomp

import "github.com/yohamta/donburi"

// FormationFollowerData positions an entity relative to its formation's
// origin; the Formation system recomputes Transform from this every tick.
type FormationFollowerData struct {
	Formation donburi.Entity
	Index     uint16
	LocalX    float32
	LocalY    float32
}

var FormationFollower = donburi.NewComponentType[FormationFollowerData]()
