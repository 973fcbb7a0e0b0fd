package engine

import (
	"github.com/paddla/fair-core/internal/config"
	"github.com/paddla/fair-core/internal/geom"
	"github.com/paddla/fair-core/internal/model"
)

// goals implements phase 11: score any alive ball that has reached a goal
// mouth, including the explosive chain reaction.
func goals(state *model.GameState, sink *eventSink) {
	for _, ball := range state.Balls {
		if !ball.Alive {
			continue
		}
		dLeft := geom.Dist(ball.X, ball.Y, 0, 0)
		dRight := geom.Dist(ball.X, ball.Y, config.Field, 0)
		if dLeft >= config.GoalR && dRight >= config.GoalR {
			continue
		}
		side := "right"
		if dLeft < config.GoalR {
			side = "left"
		}

		prize := ball.Value * ball.Multiplier * state.Progressive
		state.TotalWin += prize
		ball.Alive = false

		if ball.Kind == model.KindGolden {
			state.TimeoutCount = 0
		}
		if state.Progressive < config.ProgressiveCap {
			state.Progressive++
		}
		sink.emit("goal", map[string]any{"id": ball.ID, "side": side, "prize": prize})

		if ball.Kind == model.KindExplosive {
			state.TimeoutCount = 0
			explode(state, sink, ball)
		}
	}
}

// explode awards every other currently-alive ball strictly in the upper
// half of the field, in insertion order, incrementing the progressive
// multiplier per victim so later victims may score higher.
func explode(state *model.GameState, sink *eventSink, source *model.Ball) {
	for _, victim := range state.Balls {
		if victim == source || !victim.Alive {
			continue
		}
		if victim.Y >= config.Field/2 {
			continue
		}

		prize := victim.Value * victim.Multiplier * state.Progressive
		state.TotalWin += prize
		if state.Progressive < config.ProgressiveCap {
			state.Progressive++
		}
		victim.Alive = false
		sink.emit("exploded", map[string]any{"id": victim.ID, "source": source.ID, "prize": prize})
	}
}

// timeoutTally implements phase 13: tally balls that died from a timeout
// this tick and reset the progressive multiplier on an accumulated streak.
func timeoutTally(state *model.GameState, sink *eventSink) {
	for _, ball := range state.Balls {
		if !ball.DiedFromTimeout {
			continue
		}
		state.TimeoutCount++
		if state.TimeoutCount >= config.TimeoutLimit {
			state.Progressive = 1
			state.TimeoutCount = 0
			sink.emit("progressiveReset", nil)
		}
		ball.DiedFromTimeout = false
	}
}

// compact implements phase 14: drop dead balls, preserving insertion order.
func compact(state *model.GameState) {
	live := state.Balls[:0]
	for _, b := range state.Balls {
		if b.Alive {
			live = append(live, b)
		}
	}
	state.Balls = live
}

// autoCollect implements phase 15: if only non-normal balls remain on the
// field after compaction, score them all immediately and clear the field.
func autoCollect(state *model.GameState, sink *eventSink) {
	if len(state.Balls) == 0 {
		return
	}
	for _, b := range state.Balls {
		if b.Kind == model.KindNormal {
			return
		}
	}

	ids := make([]int, 0, len(state.Balls))
	total := 0
	for _, b := range state.Balls {
		prize := b.Value * b.Multiplier * state.Progressive
		state.TotalWin += prize
		total += prize
		if state.Progressive < config.ProgressiveCap {
			state.Progressive++
		}
		ids = append(ids, b.ID)
	}
	sink.emit("autoCollect", map[string]any{"ids": ids, "prize": total})
	state.Balls = state.Balls[:0]
}
