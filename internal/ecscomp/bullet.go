package ecscomp

import "github.com/yohamta/donburi"

// Faction says which side fired a bullet, for collision filtering.
type Faction uint8

const (
	FactionPlayer Faction = 1
	FactionEnemy  Faction = 2
)

// BulletTagData marks an entity as a projectile and records its faction.
type BulletTagData struct {
	Faction Faction
}

var BulletTag = donburi.NewComponentType[BulletTagData]()

// BulletOwnerData attributes a bullet to the entity that fired it, for
// scoring. The owner entity may no longer be valid; callers must check.
type BulletOwnerData struct {
	Owner donburi.Entity
}

var BulletOwner = donburi.NewComponentType[BulletOwnerData]()
