// Package engine implements the deterministic tick-based physics
// simulator: ball spawning, wall/bumper/ball-ball collisions, center
// recharge, goal scoring, explosive chain reactions, value decay,
// timeouts, and progressive multipliers. Every arithmetic step is
// immediately pinned with geom.Round so two independent implementations
// produce bit-identical results given the same (gameSeedHex, numBalls,
// inputLog).
package engine

import (
	"github.com/paddla/fair-core/internal/config"
	"github.com/paddla/fair-core/internal/geom"
	"github.com/paddla/fair-core/internal/model"
)

// CreateInitialState builds a fresh game bound to gameSeedHex, expected to
// spawn numBalls over its lifetime.
func CreateInitialState(gameSeedHex string, numBalls int) *model.GameState {
	return model.NewGameState(gameSeedHex, numBalls)
}

// Target is an optional bumper target the player commits to for a tick.
type Target struct {
	X, Y float64
}

// eventSink accumulates events emitted during a single tick.
type eventSink struct {
	events []model.Event
}

func (s *eventSink) emit(typ string, data map[string]any) {
	s.events = append(s.events, model.Event{Type: typ, Data: data})
}

// Tick advances state by exactly one tick and returns the events observed.
// Phase order is part of the contract: the RNG advances per event, so
// reordering phases changes every subsequent draw.
func Tick(state *model.GameState, target *Target) []model.Event {
	sink := &eventSink{}

	// 1. Guard.
	if state.Finished {
		return nil
	}

	// 2. Advance tick.
	state.TickCount++
	if state.SpawnCooldown > 0 {
		state.SpawnCooldown--
	}

	// 3. Apply input.
	if target != nil {
		state.Bumper.TargetX = geom.Clamp(target.X, config.Bumper.MinX, config.Bumper.MaxX)
		state.Bumper.TargetY = geom.Clamp(target.Y, config.Bumper.MinY, config.Bumper.MaxY)
	}

	// 4. Move bumper.
	moveBumper(&state.Bumper)

	// 5. Bind RNG context.
	state.RNG.SetTickContext(state.TickCount, state.Bumper.X, state.Bumper.Y)

	// 6. Append input record.
	state.InputLog = append(state.InputLog, model.InputRecord{
		Tick: state.TickCount,
		Target: model.InputTarget{
			X: state.Bumper.TargetX,
			Y: state.Bumper.TargetY,
		},
	})

	// 7. Spawn.
	spawn(state, sink)

	// 8. Update balls.
	updateBalls(state, sink)

	// 9. Bumper collision.
	bumperCollisions(state, sink)

	// 10. Center recharge.
	centerRecharge(state, sink)

	// 11. Goals (+ explosive chain).
	goals(state, sink)

	// 12. Ball-ball collisions.
	ballCollisions(state, sink)

	// 13. Timeout tally.
	timeoutTally(state, sink)

	// 14. Compact.
	compact(state)

	// 15. Auto-collect.
	autoCollect(state, sink)

	// 16. End.
	if state.BallsSpawned == state.NumBalls && len(state.Balls) == 0 {
		state.Finished = true
		sink.emit("gameEnd", map[string]any{"totalWin": state.TotalWin})
	}

	return sink.events
}
