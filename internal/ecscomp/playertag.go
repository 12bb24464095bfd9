package ecscomp

import "github.com/yohamta/donburi"

// IsPlayer marks an entity as a player-controlled ship. It carries no data.
var IsPlayer = donburi.NewTag().SetName("IsPlayer")
