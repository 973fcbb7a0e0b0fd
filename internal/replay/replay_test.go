package replay

import (
	"testing"

	"github.com/paddla/fair-core/internal/config"
	"github.com/paddla/fair-core/internal/engine"
	"github.com/paddla/fair-core/internal/model"
)

// recordInputLog plays a game live, holding the bumper at (x,y), and
// returns the exact input log the engine produced plus the totalWin a
// live player would have observed.
func recordInputLog(gameSeedHex string, numBalls int, x, y float64) ([]model.InputRecord, int) {
	state := engine.CreateInitialState(gameSeedHex, numBalls)
	target := &engine.Target{X: x, Y: y}
	for i := 0; i < numBalls*config.MaxTicksPerBall && !state.Finished; i++ {
		engine.Tick(state, target)
	}
	return state.InputLog, state.TotalWin
}

func TestReplayMatchesLivePlay(t *testing.T) {
	seed := "feedfacefeedfacefeedfacefeedfacefeedfacefeedfacefeedfacefeedface"
	log, liveTotalWin := recordInputLog(seed, 3, 3.0, 2.5)

	result := Run(seed, 3, log)
	if !result.Finished {
		t.Fatalf("replay did not finish")
	}
	if result.TotalWin != liveTotalWin {
		t.Fatalf("replay totalWin %d != live totalWin %d", result.TotalWin, liveTotalWin)
	}
}

func TestReplayCarriesLastTargetForward(t *testing.T) {
	seed := "carryforwardseed"
	// Only the very first input is recorded; the rest must be inferred by
	// carrying that target forward.
	log := []model.InputRecord{
		{Tick: 1, Target: model.InputTarget{X: config.Bumper.MinX, Y: config.Bumper.MinY}},
	}
	result := Run(seed, 1, log)
	if !result.Finished {
		t.Fatalf("replay with sparse input log did not finish")
	}
}

func TestReplayBoundedAgainstPathologicalLog(t *testing.T) {
	seed := "boundtest"
	// An input log that never lets the game progress toward finishing
	// (impossible in practice since engine always advances ticks) still
	// must not run past numBalls*MAX_TICKS_PER_BALL ticks.
	var log []model.InputRecord
	for i := 1; i <= 2*config.MaxTicksPerBall; i++ {
		log = append(log, model.InputRecord{Tick: i, Target: model.InputTarget{X: 4.5, Y: 2.0}})
	}
	result := Run(seed, 1, log)
	if result.Ticks > 1*config.MaxTicksPerBall {
		t.Fatalf("replay exceeded bound: %d ticks", result.Ticks)
	}
}
