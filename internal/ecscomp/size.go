package ecscomp

import "github.com/yohamta/donburi"

// SizeData is an entity's AABB extent at (Transform.X, Transform.Y).
type SizeData struct {
	W float32
	H float32
}

var Size = donburi.NewComponentType[SizeData]()
