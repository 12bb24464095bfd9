package ecscomp

import "github.com/yohamta/donburi"

// PowerupKind identifies the effect a power-up grants on pickup.
type PowerupKind uint8

const (
	PowerupLife          PowerupKind = 1
	PowerupInvincibility PowerupKind = 2
	PowerupClearBoard    PowerupKind = 3
	PowerupInfiniteFire  PowerupKind = 4
)

// PowerupTagData marks an entity as a power-up pickup.
type PowerupTagData struct {
	Type PowerupKind
}

var PowerupTag = donburi.NewComponentType[PowerupTagData]()
