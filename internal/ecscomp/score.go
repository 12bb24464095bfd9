package ecscomp

import "github.com/yohamta/donburi"

// ScoreData is a player's individual score; team score is the sum over
// all live players.
type ScoreData struct {
	Value int32
}

var Score = donburi.NewComponentType[ScoreData]()
