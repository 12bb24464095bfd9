package ecscomp

import "github.com/yohamta/donburi"

// DefaultMaxCharge is the number of seconds of holding Charge needed to
// reach full beam thickness.
const DefaultMaxCharge float32 = 2.0

// ChargeGunData is a player's charge-beam state.
type ChargeGunData struct {
	Charge    float32
	MaxCharge float32
	Firing    bool
}

var ChargeGun = donburi.NewComponentType[ChargeGunData]()
