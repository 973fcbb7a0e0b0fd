// Package config holds the fixed physics constants the engine is defined
// by. These are contractually fixed rather than runtime-tunable: both
// server and client implementations must use the identical values or
// replay verification will never match.
package config

const (
	Field = 9.0
	BallR = 0.2
	Speed = 0.05
	GoalR = 1.02

	CenterR = 0.225
	CenterX = 4.5
	CenterY = 4.5

	Countdown       = 45
	GoldenChance    = 0.01
	ExplosiveChance = 1.0 / 75.0

	SpawnCooldown = 60
	SpawnInterval = 60
	MaxOnField    = 10

	TimeoutLimit   = 5
	ProgressiveCap = 5
	BetPerBall     = 5

	MaxTicksPerBall = 600
)

// Bumper holds the paddle's bounding box and motion limits.
var Bumper = struct {
	Radius   float64
	MinY     float64
	MaxY     float64
	MinX     float64
	MaxX     float64
	MaxSpeed float64
	StartX   float64
	StartY   float64
}{
	Radius:   0.4,
	MinY:     0.4,
	MaxY:     3.5,
	MinX:     1.5,
	MaxX:     7.5,
	MaxSpeed: 0.15,
	StartX:   4.5,
	StartY:   2.0,
}
