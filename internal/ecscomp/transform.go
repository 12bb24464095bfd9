// Package ecscomp defines the donburi component types shared by every
// system in internal/systems. One file per component.
package ecscomp

import "github.com/yohamta/donburi"

// TransformData is an entity's world position, in the 960x600 world.
type TransformData struct {
	X float32
	Y float32
}

var Transform = donburi.NewComponentType[TransformData]()
