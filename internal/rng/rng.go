// Package rng implements the input-seeded RNG: every random draw is a
// keyed hash over (tick, bumper position, event label, per-event counter),
// so the outcome of a draw is fixed only once the player's bumper position
// for that tick is already committed. Revealing gameSeedHex to the player
// before play therefore leaks nothing about future randomness.
package rng

import (
	"fmt"

	"github.com/paddla/fair-core/internal/cryptoutil"
)

// RNG is bound to a single gameSeedHex (the HMAC key, a 64-hex-char
// string used as raw ASCII bytes) and holds the mutable tick context.
type RNG struct {
	key []byte

	tick    int
	bumperX float64
	bumperY float64
	bound   bool
	counter int
}

// New returns an RNG keyed on gameSeedHex.
func New(gameSeedHex string) *RNG {
	return &RNG{key: []byte(gameSeedHex)}
}

// SetTickContext binds (tick, bx, by). If the triple is unchanged from the
// current context, the context (and counter) is left alone; otherwise the
// triple is replaced and counter resets to 0.
func (r *RNG) SetTickContext(tick int, bx, by float64) {
	if r.bound && r.tick == tick && r.bumperX == bx && r.bumperY == by {
		return
	}
	r.tick = tick
	r.bumperX = bx
	r.bumperY = by
	r.bound = true
	r.counter = 0
}

// NextDouble draws the next random double for eventLabel under the current
// tick context, composing the message "{tick}:{bx:.4f}:{by:.4f}:{label}:{counter}",
// atomically advancing counter, and folding HMAC-SHA256(key, message) into
// [0,1) via cryptoutil.BytesToDouble.
func (r *RNG) NextDouble(eventLabel string) float64 {
	msg := fmt.Sprintf("%d:%.4f:%.4f:%s:%d", r.tick, r.bumperX, r.bumperY, eventLabel, r.counter)
	r.counter++
	sum := cryptoutil.HMACSHA256(r.key, []byte(msg))
	return cryptoutil.BytesToDouble(sum[:])
}

// Tick returns the currently bound tick number.
func (r *RNG) Tick() int { return r.tick }

// Counter returns the number of draws made so far under the current context.
func (r *RNG) Counter() int { return r.counter }
