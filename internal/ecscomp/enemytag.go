package ecscomp

import "github.com/yohamta/donburi"

// EnemyTag marks an entity as hostile. It carries no data.
var EnemyTag = donburi.NewTag().SetName("EnemyTag")
