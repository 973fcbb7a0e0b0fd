package model

import "github.com/paddla/fair-core/internal/config"

// Bumper is the single player-controlled paddle. The invariant after every
// tick is that (X,Y) and (TargetX,TargetY) both lie within the bumper
// bounding box defined by config.Bumper.
type Bumper struct {
	X, Y             float64
	TargetX, TargetY float64
}

// NewBumper places the bumper at its configured start position, stationary.
func NewBumper() Bumper {
	return Bumper{
		X:       config.Bumper.StartX,
		Y:       config.Bumper.StartY,
		TargetX: config.Bumper.StartX,
		TargetY: config.Bumper.StartY,
	}
}
