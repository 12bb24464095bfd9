package ecscomp

import "github.com/yohamta/donburi"

// ColorRGBAData is a render hint, serialized verbatim in snapshots.
type ColorRGBAData struct {
	RGBA uint32 // 0xRRGGBBAA
}

var ColorRGBA = donburi.NewComponentType[ColorRGBAData]()
