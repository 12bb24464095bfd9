package ecscomp

import "github.com/yohamta/donburi"

// BossTagData holds the motion and health state of a boss entity.
type BossTagData struct {
	HP          int32
	MaxHP       int32
	StopX       float32
	RightMargin float32
	AtStop      bool
	DirDown     bool
	SpeedX      float32
	SpeedY      float32
}

var BossTag = donburi.NewComponentType[BossTagData]()
