package model

import "github.com/paddla/fair-core/internal/rng"

// InputTarget is one player-submitted bumper target for a tick.
type InputTarget struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// InputRecord is one entry of the recorded input log: the bumper target
// the player committed to for a given tick.
type InputRecord struct {
	Tick   int         `json:"tick"`
	Target InputTarget `json:"target"`
}

// Event is one observable thing that happened during a tick, used for
// client/server event-stream comparison and for building API responses.
type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// GameState is the complete mutable state of one game.
type GameState struct {
	RNG *rng.RNG

	TickCount     int
	BallsSpawned  int
	NumBalls      int
	SpawnCooldown int
	Progressive   int
	TimeoutCount  int
	TotalWin      int

	InputLog   []InputRecord
	Finished   bool
	NextBallID int

	Bumper Bumper
	Balls  []*Ball
}

// NewGameState builds the initial state for a fresh game bound to
// gameSeedHex, expected to spawn numBalls balls over its lifetime.
func NewGameState(gameSeedHex string, numBalls int) *GameState {
	return &GameState{
		RNG:           rng.New(gameSeedHex),
		NumBalls:      numBalls,
		Progressive:   1,
		Bumper:        NewBumper(),
		Balls:         make([]*Ball, 0, 8),
		InputLog:      make([]InputRecord, 0, numBalls*64),
		SpawnCooldown: 0,
	}
}
