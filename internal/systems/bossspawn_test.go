package systems

import (
	"math/rand"
	"testing"

	"github.com/starwake/server/internal/ecscomp"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

func countBosses(w donburi.World) int {
	n := 0
	donburi.NewQuery(filter.Contains(ecscomp.BossTag)).Each(w, func(*donburi.Entry) { n++ })
	return n
}

func TestBossSpawnNoopBelowThreshold(t *testing.T) {
	w := donburi.NewWorld()
	p := w.Create(ecscomp.IsPlayer, ecscomp.Score)
	ecscomp.Score.Set(w.Entry(p), &ecscomp.ScoreData{Value: 100})

	state := NewSimState(rand.New(rand.NewSource(1)))
	BossSpawn(w, state)

	if got := countBosses(w); got != 0 {
		t.Fatalf("bosses = %d, want 0 below threshold", got)
	}
}

func TestBossSpawnFiresOnceThresholdCrossed(t *testing.T) {
	w := donburi.NewWorld()
	p := w.Create(ecscomp.IsPlayer, ecscomp.Score)
	ecscomp.Score.Set(w.Entry(p), &ecscomp.ScoreData{Value: 16000})

	state := NewSimState(rand.New(rand.NewSource(1)))
	BossSpawn(w, state)

	if got := countBosses(w); got != 1 {
		t.Fatalf("bosses = %d, want 1", got)
	}
	if state.BossesSpawned != 1 {
		t.Fatalf("BossesSpawned = %d, want 1", state.BossesSpawned)
	}
}

func TestBossSpawnSuppressedWhileBossAlreadyPresent(t *testing.T) {
	w := donburi.NewWorld()
	p := w.Create(ecscomp.IsPlayer, ecscomp.Score)
	ecscomp.Score.Set(w.Entry(p), &ecscomp.ScoreData{Value: 32000})
	w.Create(ecscomp.BossTag)

	state := NewSimState(rand.New(rand.NewSource(1)))
	BossSpawn(w, state)

	if got := countBosses(w); got != 1 {
		t.Fatalf("bosses = %d, want still 1 (no second spawn while one is present)", got)
	}
	if state.BossesSpawned != 0 {
		t.Fatalf("BossesSpawned = %d, want unchanged while suppressed", state.BossesSpawned)
	}
}

func TestBossSpawnDoesNotRefireAtSameThreshold(t *testing.T) {
	w := donburi.NewWorld()
	p := w.Create(ecscomp.IsPlayer, ecscomp.Score)
	ecscomp.Score.Set(w.Entry(p), &ecscomp.ScoreData{Value: 16000})

	state := NewSimState(rand.New(rand.NewSource(1)))
	BossSpawn(w, state)
	var boss donburi.Entity
	donburi.NewQuery(filter.Contains(ecscomp.BossTag)).Each(w, func(e *donburi.Entry) { boss = e.Entity() })
	w.Remove(boss)

	BossSpawn(w, state)

	if got := countBosses(w); got != 0 {
		t.Fatalf("bosses = %d, want 0: same score must not spawn a second boss", got)
	}
}
