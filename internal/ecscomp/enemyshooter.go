package ecscomp

import "github.com/yohamta/donburi"

// EnemyShooterData is an aimed enemy gun's state. Accuracy is clamped to
// [0.5, 0.8] by the system that reads it.
type EnemyShooterData struct {
	Cooldown    float32
	Interval    float32
	BulletSpeed float32
	Accuracy    float32
}

var EnemyShooter = donburi.NewComponentType[EnemyShooterData]()
