package protocol

import (
	"sync"
	"time"

	"golang.org/x/exp/maps"

	"github.com/paddla/fair-core/internal/model"
)

// GameEntry is one registered game. ServerSeed and Commitment are
// snapshotted at start time so a later commitment rotation cannot change
// the seed a game was bound to.
type GameEntry struct {
	mu sync.Mutex

	GameID      string
	ClientSeed  string
	ServerSeed  string
	Commitment  string
	GameSeedHex string
	NumBalls    int
	CreatedAt   time.Time

	Finished bool
	Verified bool
	TotalWin int

	// Diagnostics retained after a mismatched finish.
	ServerTotalWin int
	ClientTotalWin int
	InputLog       []model.InputRecord

	expiresAt time.Time
}

// Lock and Unlock let a read-only caller (the status endpoint) observe a
// consistent snapshot of an entry's mutable fields without racing a
// concurrent FinishGame.
func (e *GameEntry) Lock()   { e.mu.Lock() }
func (e *GameEntry) Unlock() { e.mu.Unlock() }

// Registry is the concurrent, process-wide map of in-flight and recently
// finished games, keyed by gameId. Per-entry operations are serialised on
// that entry's own mutex so independent games never contend.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*GameEntry

	gracePeriod time.Duration
}

// NewRegistry returns an empty registry. gracePeriod is stored on the
// registry but does not set expiry: a finished entry becomes
// sweep-eligible after the grace period passed to FinishGame.
func NewRegistry(gracePeriod time.Duration) *Registry {
	return &Registry{
		entries:     make(map[string]*GameEntry),
		gracePeriod: gracePeriod,
	}
}

// Put inserts a freshly started game.
func (r *Registry) Put(e *GameEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.GameID] = e
}

// Get returns the entry for gameId, or nil if absent.
func (r *Registry) Get(gameID string) *GameEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[gameID]
}

// markFinished records a finish outcome on e and sets its sweep-eligible
// expiry. Caller must already hold e.mu.
func (e *GameEntry) markFinished(verified bool, totalWin, serverTotalWin, clientTotalWin int, inputLog []model.InputRecord, gracePeriod time.Duration) {
	e.Finished = true
	e.Verified = verified
	e.TotalWin = totalWin
	e.ServerTotalWin = serverTotalWin
	e.ClientTotalWin = clientTotalWin
	e.InputLog = inputLog
	e.expiresAt = time.Now().Add(gracePeriod)
}

// Sweep removes finished entries past their grace-period expiry. Sweep
// frequency is not part of correctness: callers may invoke this on any
// schedule, or not at all, without affecting game outcomes.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		e.mu.Lock()
		expired := e.Finished && !e.expiresAt.IsZero() && now.After(e.expiresAt)
		e.mu.Unlock()
		if expired {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports how many entries are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// GameIDs returns a snapshot of every currently registered gameId, in no
// particular order.
func (r *Registry) GameIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Keys(r.entries)
}
