// Package systems implements the sixteen simulation systems that run, in
// a fixed order, over the entity registry each tick. Each system has its
// own file (the two despawn sweeps share despawn.go), taking the world
// plus whatever per-session state it needs.
package systems

import "math/rand"

// SimState holds the handful of values kept as session-level fields
// rather than as components: spawn cadences, counters, and the
// session's own random source. Every non-determinism point in this
// package reads from Rng, never from the global math/rand source, so
// tests can seed it and replay a session exactly.
type SimState struct {
	Rng *rand.Rand

	// Elapsed is the running simulation clock, used by Formation's Snake
	// sine wave. It only ever advances by dt; it is not wall-clock time.
	Elapsed float64

	FormationTimer        float32
	FormationBaseInterval float32
	BossWasActive         bool
	BossesSpawned         int
	NextPowerupScore      float32
	Difficulty            uint8 // 0=Easy, 1=Normal, 2=Hard
	CountMultiplier       float32
}

// NewSimState returns a SimState with the defaults GameSession used:
// a 3s base formation cadence, difficulty Normal, and a powerup
// threshold seeded uniformly in [1500, 2000].
func NewSimState(rng *rand.Rand) *SimState {
	s := &SimState{
		Rng:                   rng,
		FormationBaseInterval: 3.0,
		Difficulty:             1,
		CountMultiplier:        1.0,
	}
	s.NextPowerupScore = 1500 + rng.Float32()*500
	return s
}

// BossThreshold is the best-player-score divisor that gates boss spawns:
// BossSpawn triggers whenever bestScore/BossThreshold > BossesSpawned.
const BossThreshold float32 = 15000
