package ecscomp

import "github.com/yohamta/donburi"

// Default gun tuning for a player ship.
const (
	DefaultShooterInterval    float32 = 0.15
	DefaultShooterBulletSpeed float32 = 320
)

// ShooterData is a player's forward gun state.
type ShooterData struct {
	Cooldown    float32
	Interval    float32
	BulletSpeed float32
}

var Shooter = donburi.NewComponentType[ShooterData]()
