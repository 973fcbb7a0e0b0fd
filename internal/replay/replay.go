// Package replay implements the bounded deterministic replay used by both
// the game-lifecycle finish/verify endpoint (internal/protocol) and the
// standalone audit primitive (internal/verify): re-run the tick engine
// from a recorded input log and recompute totalWin.
package replay

import (
	"github.com/paddla/fair-core/internal/config"
	"github.com/paddla/fair-core/internal/engine"
	"github.com/paddla/fair-core/internal/model"
)

// Result is the outcome of replaying an input log.
type Result struct {
	TotalWin int
	Finished bool
	Ticks    int
}

// Run replays inputLog against a fresh game bound to (gameSeedHex,
// numBalls). At each tick it consumes the next input record whose tick
// equals tickCount+1; otherwise it carries the last committed target
// forward by passing no target to the engine, covering input logs whose
// last entry precedes natural game end. It stops when the game finishes
// or at numBalls*MaxTicksPerBall ticks, capping the work a malicious
// input log can force regardless of its length.
func Run(gameSeedHex string, numBalls int, inputLog []model.InputRecord) Result {
	state := engine.CreateInitialState(gameSeedHex, numBalls)
	bound := numBalls * config.MaxTicksPerBall

	cursor := 0
	for !state.Finished && state.TickCount < bound {
		var target *engine.Target
		upcoming := state.TickCount + 1
		if cursor < len(inputLog) && inputLog[cursor].Tick == upcoming {
			rec := inputLog[cursor]
			target = &engine.Target{X: rec.Target.X, Y: rec.Target.Y}
			cursor++
		}
		engine.Tick(state, target)
	}

	return Result{
		TotalWin: state.TotalWin,
		Finished: state.Finished,
		Ticks:    state.TickCount,
	}
}
