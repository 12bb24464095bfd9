package ecscomp

import "github.com/yohamta/donburi"

// MaxShipType is the highest sprite slot a player may occupy.
const MaxShipType uint8 = 4

// ShipTypeData is a player's sprite slot, assigned at join and reused
// once free.
type ShipTypeData struct {
	Value uint8
}

var ShipType = donburi.NewComponentType[ShipTypeData]()
