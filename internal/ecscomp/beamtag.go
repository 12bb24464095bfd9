package ecscomp

import "github.com/yohamta/donburi"

// BeamTag marks a bullet as a charge-gun beam: it passes through enemies
// instead of being consumed on the first hit.
var BeamTag = donburi.NewTag().SetName("BeamTag")
