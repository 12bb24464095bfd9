package ecscomp

import "github.com/yohamta/donburi"

// MaxLives is the highest value Lives.Value may hold.
const MaxLives uint8 = 10

// LivesData is a player's remaining lives; zero means dead.
type LivesData struct {
	Value uint8
}

var Lives = donburi.NewComponentType[LivesData]()
