package engine

import (
	"math"

	"github.com/paddla/fair-core/internal/config"
	"github.com/paddla/fair-core/internal/geom"
	"github.com/paddla/fair-core/internal/model"
)

// spawn implements phase 7: on the configured cadence, with room on the
// field and balls remaining to spawn, draw a fresh ball's position, angle,
// and kind.
func spawn(state *model.GameState, sink *eventSink) {
	if state.TickCount%config.SpawnInterval != 0 {
		return
	}
	if len(state.Balls) >= config.MaxOnField {
		return
	}
	if state.SpawnCooldown > 0 {
		return
	}
	if state.BallsSpawned >= state.NumBalls {
		return
	}

	rx := state.RNG.NextDouble("spawn_x")
	rAngle := state.RNG.NextDouble("spawn_angle")
	rType := state.RNG.NextDouble("spawn_type")

	x := geom.Round(0.5 + rx*8)
	y := geom.Round(config.Field - 0.3)

	angle := (220 + rAngle*100) * math.Pi / 180
	dx := geom.Round(math.Cos(angle) * config.Speed)
	dy := geom.Round(math.Sin(angle) * config.Speed)

	kind := model.KindNormal
	switch {
	case rType < config.GoldenChance:
		kind = model.KindGolden
	case rType < config.GoldenChance+config.ExplosiveChance:
		kind = model.KindExplosive
	}

	ball := &model.Ball{
		ID:         state.NextBallID,
		X:          x,
		Y:          y,
		DX:         dx,
		DY:         dy,
		Value:      9,
		Kind:       kind,
		Multiplier: model.MultiplierFor(kind),
		Alive:      true,
	}
	state.NextBallID++
	state.Balls = append(state.Balls, ball)
	state.BallsSpawned++
	state.SpawnCooldown = config.SpawnCooldown

	sink.emit("spawn", map[string]any{
		"id":   ball.ID,
		"kind": ball.Kind.String(),
		"x":    ball.X,
		"y":    ball.Y,
	})
}
