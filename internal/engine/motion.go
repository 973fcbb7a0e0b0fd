package engine

import (
	"math"

	"github.com/paddla/fair-core/internal/config"
	"github.com/paddla/fair-core/internal/geom"
	"github.com/paddla/fair-core/internal/model"
)

// moveBumper steps the bumper toward its target, capped at MaxSpeed per
// tick, snapping when already within one step.
func moveBumper(b *model.Bumper) {
	vx := b.TargetX - b.X
	vy := b.TargetY - b.Y
	length := math.Hypot(vx, vy)

	if length > config.Bumper.MaxSpeed {
		scale := config.Bumper.MaxSpeed / length
		b.X = geom.Round(b.X + vx*scale)
		b.Y = geom.Round(b.Y + vy*scale)
		return
	}
	b.X = geom.Round(b.TargetX)
	b.Y = geom.Round(b.TargetY)
}

// jitter rotates velocity (dx,dy) by (r-0.5)*0.1*pi radians, preserving
// speed magnitude, and pins the result. This is the shared
// bounce-randomisation formula used after wall bounces, bumper hits,
// center recharges, and special-ball collisions.
func jitter(r, dx, dy float64) (float64, float64) {
	speed := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx) + (r-0.5)*0.1*math.Pi
	return geom.Round(math.Cos(angle) * speed), geom.Round(math.Sin(angle) * speed)
}

// updateBalls performs phase 8: integrate motion, reflect off walls,
// decay normal-ball value on countdown, and apply the wall-bounce jitter.
func updateBalls(state *model.GameState, sink *eventSink) {
	for _, b := range state.Balls {
		if !b.Alive {
			continue
		}
		b.TicksSinceCountdown++

		b.X = geom.Round(b.X + b.DX)
		b.Y = geom.Round(b.Y + b.DY)

		hitWall := false
		lo, hi := config.BallR, config.Field-config.BallR

		if b.X < lo {
			b.X = geom.Round(lo)
			b.DX = geom.Round(-b.DX)
			hitWall = true
		} else if b.X > hi {
			b.X = geom.Round(hi)
			b.DX = geom.Round(-b.DX)
			hitWall = true
		}
		if b.Y < lo {
			b.Y = geom.Round(lo)
			b.DY = geom.Round(-b.DY)
			hitWall = true
		} else if b.Y > hi {
			b.Y = geom.Round(hi)
			b.DY = geom.Round(-b.DY)
			hitWall = true
		}

		if b.Kind == model.KindNormal && b.TicksSinceCountdown >= config.Countdown && b.Value > 0 {
			b.Value--
			b.TicksSinceCountdown = 0
			if b.Value <= 0 {
				b.Alive = false
				b.DiedFromTimeout = true
				sink.emit("timeout", map[string]any{"id": b.ID})
			}
		}

		if b.Alive && hitWall {
			r := state.RNG.NextDouble(labelFor("wall", b.ID))
			b.DX, b.DY = jitter(r, b.DX, b.DY)
		}
	}
}
