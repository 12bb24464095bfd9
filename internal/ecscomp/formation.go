package ecscomp

import "github.com/yohamta/donburi"

// FormationKind names a wave pattern. BigShooters is not named in the
// data-model table but is one of the patterns FormationSpawn produces.
type FormationKind uint8

const (
	FormationSnake       FormationKind = 0
	FormationLine        FormationKind = 1
	FormationGridRect    FormationKind = 2
	FormationTriangle    FormationKind = 3
	FormationBigShooters FormationKind = 4
)

// FormationData is the origin of a wave: its own Transform+Velocity move
// it, and FormationFollower entities are positioned relative to it.
type FormationData struct {
	Type      FormationKind
	SpeedX    float32
	Amplitude float32
	Frequency float32
	Spacing   float32
	Rows      int
	Cols      int
}

var Formation = donburi.NewComponentType[FormationData]()
