// Package verify implements the standalone provably-fair audit primitive:
// given a revealed serverSeed, the clientSeed and gameId that produced a
// game, and the commitments the server published up front, recompute and
// compare everything a dishonest server could have forged. It runs
// identically whether invoked by the client or the server.
package verify

import (
	"crypto/hmac"
	"fmt"

	"github.com/paddla/fair-core/internal/cryptoutil"
	"github.com/paddla/fair-core/internal/model"
	"github.com/paddla/fair-core/internal/replay"
)

// Reason names which of the three audit checks failed.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonCommitmentMismatch Reason = "CommitmentMismatch"
	ReasonSeedMismatch       Reason = "SeedMismatch"
	ReasonReplayMismatch     Reason = "ReplayMismatch"
)

// Result is the outcome of a verification.
type Result struct {
	Valid      bool   `json:"valid"`
	Reason     Reason `json:"reason,omitempty"`
	ServerWin  int    `json:"serverTotalWin"`
	ClaimedWin int    `json:"claimedTotalWin"`
}

// Verify runs the three-step audit: commitment binding, game-seed
// derivation, and replay. All three must hold for Valid to be true.
func Verify(
	serverSeed, clientSeed, gameID string,
	expectedCommitment, expectedGameSeedHex string,
	numBalls int,
	inputLog []model.InputRecord,
	claimedTotalWin int,
) Result {
	commitment := cryptoutil.SHA256([]byte(serverSeed))
	if cryptoutil.HexEncode(commitment[:]) != expectedCommitment {
		return Result{Valid: false, Reason: ReasonCommitmentMismatch}
	}

	gameSeed := cryptoutil.HMACSHA256([]byte(serverSeed), []byte(fmt.Sprintf("%s:%s", clientSeed, gameID)))
	gameSeedHex := cryptoutil.HexEncode(gameSeed[:])
	if !hmac.Equal([]byte(gameSeedHex), []byte(expectedGameSeedHex)) {
		return Result{Valid: false, Reason: ReasonSeedMismatch}
	}

	result := replay.Run(expectedGameSeedHex, numBalls, inputLog)
	if result.TotalWin != claimedTotalWin {
		return Result{Valid: false, Reason: ReasonReplayMismatch, ServerWin: result.TotalWin, ClaimedWin: claimedTotalWin}
	}

	return Result{Valid: true, ServerWin: result.TotalWin, ClaimedWin: claimedTotalWin}
}

// DeriveGameSeedHex computes gameSeedHex = HMAC_SHA256(serverSeed,
// clientSeed+":"+gameId) hex-encoded, the same derivation used by
// internal/protocol when opening a game.
func DeriveGameSeedHex(serverSeed, clientSeed, gameID string) string {
	sum := cryptoutil.HMACSHA256([]byte(serverSeed), []byte(fmt.Sprintf("%s:%s", clientSeed, gameID)))
	return cryptoutil.HexEncode(sum[:])
}
