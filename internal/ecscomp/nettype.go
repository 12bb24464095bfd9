package ecscomp

import "github.com/yohamta/donburi"

// NetKind drives how an entity is classified and ordered in a snapshot.
type NetKind uint8

const (
	NetPlayer  NetKind = 1
	NetEnemy   NetKind = 2
	NetBullet  NetKind = 3
	NetPowerup NetKind = 4
)

// NetTypeData tags an entity with its snapshot classification.
type NetTypeData struct {
	Kind NetKind
}

var NetType = donburi.NewComponentType[NetTypeData]()
