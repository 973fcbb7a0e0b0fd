package engine

import (
	"math"

	"github.com/paddla/fair-core/internal/config"
	"github.com/paddla/fair-core/internal/geom"
	"github.com/paddla/fair-core/internal/model"
)

// bumperCollisions implements phase 9: reflect any alive ball touching the
// bumper and jitter its outgoing direction.
func bumperCollisions(state *model.GameState, sink *eventSink) {
	b := &state.Bumper
	for _, ball := range state.Balls {
		if !ball.Alive {
			continue
		}
		d := geom.Dist(ball.X, ball.Y, b.X, b.Y)
		threshold := config.BallR + config.Bumper.Radius
		if d >= threshold || d <= 0 {
			continue
		}

		nx := (ball.X - b.X) / d
		ny := (ball.Y - b.Y) / d

		dot := ball.DX*nx + ball.DY*ny
		ball.DX = geom.Round(ball.DX - 2*dot*nx)
		ball.DY = geom.Round(ball.DY - 2*dot*ny)

		ball.X = geom.Round(b.X + nx*threshold)
		ball.Y = geom.Round(b.Y + ny*threshold)

		r := state.RNG.NextDouble(labelFor("bumper", ball.ID))
		ball.DX, ball.DY = jitter(r, ball.DX, ball.DY)

		sink.emit("bumperHit", map[string]any{"id": ball.ID})
	}
}

// centerRecharge implements phase 10: balls passing through the center
// disc are redirected outward, jittered, and normal balls have their
// value refilled.
func centerRecharge(state *model.GameState, sink *eventSink) {
	for _, ball := range state.Balls {
		if !ball.Alive {
			continue
		}
		d := geom.Dist(ball.X, ball.Y, config.CenterX, config.CenterY)
		if d >= config.CenterR+config.BallR {
			continue
		}

		var dirx, diry float64
		if d > 0 {
			dirx = (ball.X - config.CenterX) / d
			diry = (ball.Y - config.CenterY) / d
		} else {
			dirx, diry = 1, 0
		}
		ball.DX = geom.Round(dirx * config.Speed)
		ball.DY = geom.Round(diry * config.Speed)

		r := state.RNG.NextDouble(labelFor("center", ball.ID))
		ball.DX, ball.DY = jitter(r, ball.DX, ball.DY)

		if ball.Kind == model.KindNormal && ball.Value < 9 {
			ball.Value = 9
			ball.TicksSinceCountdown = 0
			sink.emit("recharge", map[string]any{"id": ball.ID})
		}
	}
}

// ballCollisions implements phase 12: scans all alive pairs in insertion
// order and resolves special-vs-special, special-vs-normal, and
// normal-vs-normal collisions.
func ballCollisions(state *model.GameState, sink *eventSink) {
	balls := state.Balls
	for i := 0; i < len(balls); i++ {
		b1 := balls[i]
		if !b1.Alive {
			continue
		}
		for j := i + 1; j < len(balls); j++ {
			b2 := balls[j]
			if !b2.Alive {
				continue
			}
			d := geom.Dist(b1.X, b1.Y, b2.X, b2.Y)
			if d >= 2*config.BallR {
				continue
			}

			s1 := b1.Kind != model.KindNormal
			s2 := b2.Kind != model.KindNormal

			switch {
			case s1 && s2:
				resolveElastic(state, sink, b1, b2, i, j, d)
			case s1 != s2:
				resolveMixed(state, sink, b1, b2, s1)
			case b1.Value == b2.Value:
				resolveEqualNormal(state, sink, b1, b2, i, j)
			default:
				resolveUnequalNormal(state, sink, b1, b2)
			}
		}
	}
}

func resolveElastic(state *model.GameState, sink *eventSink, b1, b2 *model.Ball, i, j int, d float64) {
	var nx, ny float64
	if d > 0 {
		nx = (b2.X - b1.X) / d
		ny = (b2.Y - b1.Y) / d
	} else {
		nx, ny = 1, 0
	}

	overlap := 2*config.BallR - d
	b1.X = geom.Round(b1.X - nx*overlap/2)
	b1.Y = geom.Round(b1.Y - ny*overlap/2)
	b2.X = geom.Round(b2.X + nx*overlap/2)
	b2.Y = geom.Round(b2.Y + ny*overlap/2)

	b1.DX = geom.Round(-nx * config.Speed)
	b1.DY = geom.Round(-ny * config.Speed)
	b2.DX = geom.Round(nx * config.Speed)
	b2.DY = geom.Round(ny * config.Speed)

	r1 := state.RNG.NextDouble(collLabel(i, j, 1))
	b1.DX, b1.DY = jitter(r1, b1.DX, b1.DY)
	r2 := state.RNG.NextDouble(collLabel(i, j, 2))
	b2.DX, b2.DY = jitter(r2, b2.DX, b2.DY)

	sink.emit("collision", map[string]any{"a": b1.ID, "b": b2.ID, "kind": "elastic"})
}

func resolveMixed(state *model.GameState, sink *eventSink, b1, b2 *model.Ball, firstIsSpecial bool) {
	var winner, loser *model.Ball
	if firstIsSpecial {
		winner, loser = b1, b2
	} else {
		winner, loser = b2, b1
	}
	loser.Alive = false
	state.TotalWin += 1
	sink.emit("collision", map[string]any{"winner": winner.ID, "loser": loser.ID, "kind": "mixed"})
}

func resolveEqualNormal(state *model.GameState, sink *eventSink, b1, b2 *model.Ball, i, j int) {
	prize := b1.Value * 2
	state.TotalWin += prize

	r := state.RNG.NextDouble(labelPair("double", i, j))
	var winner, loser *model.Ball
	if r < 0.5 {
		loser, winner = b2, b1
	} else {
		loser, winner = b1, b2
	}
	loser.Alive = false
	sink.emit("collision", map[string]any{"winner": winner.ID, "loser": loser.ID, "kind": "double", "prize": prize})
}

func resolveUnequalNormal(state *model.GameState, sink *eventSink, b1, b2 *model.Ball) {
	var winner, loser *model.Ball
	if b1.Value > b2.Value {
		winner, loser = b1, b2
	} else {
		winner, loser = b2, b1
	}
	loser.Alive = false
	state.TotalWin += 1

	dx := winner.X - loser.X
	dy := winner.Y - loser.Y
	length := math.Hypot(dx, dy)
	if length > 0 {
		winner.DX = geom.Round(dx / length * config.Speed)
		winner.DY = geom.Round(dy / length * config.Speed)
	}
	r := state.RNG.NextDouble(labelFor("win", winner.ID))
	winner.DX, winner.DY = jitter(r, winner.DX, winner.DY)

	sink.emit("collision", map[string]any{"winner": winner.ID, "loser": loser.ID, "kind": "win"})
}
