package protocol

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paddla/fair-core/internal/model"
)

// FinishRequest is one game's submitted input log, for batch replay.
type FinishRequest struct {
	GameID         string
	InputLog       []model.InputRecord
	ClientTotalWin int
}

// FinishOutcome pairs a FinishRequest with its result or error.
type FinishOutcome struct {
	GameID string
	Result FinishResult
	Err    error
}

// ReplayBatch runs FinishGame for every request concurrently, bounded by
// GOMAXPROCS. Games are independent, so there is no cross-request
// ordering to preserve; results are returned in the same order as
// requests.
func ReplayBatch(ctx context.Context, registry *Registry, gracePeriod time.Duration, requests []FinishRequest) []FinishOutcome {
	outcomes := make([]FinishOutcome, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			select {
			case <-ctx.Done():
				outcomes[i] = FinishOutcome{GameID: req.GameID, Err: ctx.Err()}
				return nil
			default:
			}
			result, err := FinishGame(registry, gracePeriod, req.GameID, req.InputLog, req.ClientTotalWin)
			outcomes[i] = FinishOutcome{GameID: req.GameID, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
