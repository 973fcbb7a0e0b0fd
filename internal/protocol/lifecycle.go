package protocol

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paddla/fair-core/internal/model"
	"github.com/paddla/fair-core/internal/replay"
	"github.com/paddla/fair-core/internal/verify"
)

const (
	minNumBalls = 1
	maxNumBalls = 1000
)

// StartResult is returned by StartGame.
type StartResult struct {
	GameID      string
	Commitment  string
	GameSeedHex string
}

// StartGame opens a new game: it validates the request, fixes which
// serverSeed this game is bound to (the live one, or the one named by
// recordedCommitment), mints a gameId, derives gameSeedHex, and records
// the entry in the registry.
func StartGame(slot *CommitmentSlot, registry *Registry, clientSeed string, numBalls int, recordedCommitment string) (StartResult, error) {
	var fieldErrs []error
	if clientSeed == "" {
		fieldErrs = append(fieldErrs, fmt.Errorf("clientSeed must not be empty"))
	}
	if numBalls < minNumBalls || numBalls > maxNumBalls {
		fieldErrs = append(fieldErrs, fmt.Errorf("numBalls must be in [%d,%d], got %d", minNumBalls, maxNumBalls, numBalls))
	}
	if err := NewProtocolError(fieldErrs...); err != nil {
		return StartResult{}, err
	}

	var serverSeed, commitment string
	if recordedCommitment != "" {
		seed, ok := slot.ResolveServerSeed(recordedCommitment)
		if !ok {
			return StartResult{}, NewProtocolError(fmt.Errorf("invalid commitment: %q is neither the current nor the previous commitment", recordedCommitment))
		}
		serverSeed, commitment = seed, recordedCommitment
	} else {
		serverSeed, commitment = slot.CurrentServerSeed()
	}

	gameID := uuid.New().String()
	gameSeedHex := verify.DeriveGameSeedHex(serverSeed, clientSeed, gameID)

	entry := &GameEntry{
		GameID:      gameID,
		ClientSeed:  clientSeed,
		ServerSeed:  serverSeed,
		Commitment:  commitment,
		GameSeedHex: gameSeedHex,
		NumBalls:    numBalls,
		CreatedAt:   time.Now(),
	}
	registry.Put(entry)

	return StartResult{GameID: gameID, Commitment: commitment, GameSeedHex: gameSeedHex}, nil
}

// FinishResult is returned by FinishGame.
type FinishResult struct {
	Verified       bool
	TotalWin       int
	ServerTotalWin int
	ClientTotalWin int
	Verification   *VerificationInfo
}

// VerificationInfo is revealed only once a game verifies, letting the
// client audit the server's honesty end to end.
type VerificationInfo struct {
	ServerSeed  string
	GameSeedHex string
	ClientSeed  string
	GameID      string
}

// FinishGame replays a submitted input log against the registered game's
// gameSeedHex and compares totals. It is idempotent: a second call for an
// already-finished gameId returns the stored verdict without re-running
// replay.
func FinishGame(registry *Registry, gracePeriod time.Duration, gameID string, inputLog []model.InputRecord, clientTotalWin int) (FinishResult, error) {
	entry := registry.Get(gameID)
	if entry == nil {
		return FinishResult{}, &NotFoundError{GameID: gameID}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.Finished {
		return FinishResult{
			Verified:       entry.Verified,
			TotalWin:       entry.TotalWin,
			ServerTotalWin: entry.ServerTotalWin,
			ClientTotalWin: entry.ClientTotalWin,
			Verification:   verificationInfoIfVerified(entry),
		}, nil
	}

	if err := ValidateInputLog(inputLog); err != nil {
		return FinishResult{}, NewProtocolError(err)
	}

	result := replay.Run(entry.GameSeedHex, entry.NumBalls, inputLog)
	verified := result.TotalWin == clientTotalWin

	entry.markFinished(verified, result.TotalWin, result.TotalWin, clientTotalWin, inputLog, gracePeriod)

	return FinishResult{
		Verified:       verified,
		TotalWin:       result.TotalWin,
		ServerTotalWin: result.TotalWin,
		ClientTotalWin: clientTotalWin,
		Verification:   verificationInfoIfVerified(entry),
	}, nil
}

func verificationInfoIfVerified(e *GameEntry) *VerificationInfo {
	if !e.Verified {
		return nil
	}
	return &VerificationInfo{
		ServerSeed:  e.ServerSeed,
		GameSeedHex: e.GameSeedHex,
		ClientSeed:  e.ClientSeed,
		GameID:      e.GameID,
	}
}

// ValidateInputLog checks that inputLog is a well-formed sequence: ticks
// are positive and strictly increasing. Replay itself bounds the total
// work regardless, but a malformed log is rejected at the boundary rather
// than silently reinterpreted.
func ValidateInputLog(inputLog []model.InputRecord) error {
	prev := 0
	for _, rec := range inputLog {
		if rec.Tick < 1 {
			return fmt.Errorf("inputLog tick %d must be >= 1", rec.Tick)
		}
		if rec.Tick <= prev {
			return fmt.Errorf("inputLog ticks must be strictly increasing, got %d after %d", rec.Tick, prev)
		}
		prev = rec.Tick
	}
	return nil
}
