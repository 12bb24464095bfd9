package ecscomp

import "github.com/yohamta/donburi"

// MaxNameBytes is the longest display name kept, in UTF-8 bytes.
const MaxNameBytes = 15

// NameData is a player's display name, truncated to MaxNameBytes.
type NameData struct {
	Value string
}

var Name = donburi.NewComponentType[NameData]()
