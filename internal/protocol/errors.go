package protocol

import (
	"fmt"

	"go.uber.org/multierr"
)

// ProtocolError is a malformed-request rejection: out-of-range numBalls,
// empty clientSeed, a missing/expired commitment. The caller did not
// mutate any state. HTTP-surfaced as a 4xx.
type ProtocolError struct{ msg string }

func (e *ProtocolError) Error() string { return e.msg }

// NewProtocolError aggregates every validation failure found (rather than
// returning only the first) using multierr, so a client correcting one
// field at a time doesn't have to round-trip once per field.
func NewProtocolError(causes ...error) error {
	var nonNil []error
	for _, c := range causes {
		if c != nil {
			nonNil = append(nonNil, c)
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	return &ProtocolError{msg: multierr.Combine(nonNil...).Error()}
}

// NotFoundError is an unknown gameId, or one that was finished and later
// swept from the registry.
type NotFoundError struct{ GameID string }

func (e *NotFoundError) Error() string { return fmt.Sprintf("game %q not found", e.GameID) }
