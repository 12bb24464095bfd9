package ecscomp

import "github.com/yohamta/donburi"

// VelocityData is an entity's per-second motion, integrated by Movement.
type VelocityData struct {
	VX float32
	VY float32
}

var Velocity = donburi.NewComponentType[VelocityData]()
