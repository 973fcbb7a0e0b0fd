package protocol

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/paddla/fair-core/internal/cryptoutil"
	"github.com/paddla/fair-core/internal/store"
)

// commitmentPair is one (serverSeed, commitment, timestamp) snapshot.
type commitmentPair struct {
	serverSeed string
	commitment string
	timestamp  time.Time
}

// CommitmentSlot holds the single process-wide commitment, with the
// previous pair retained for a grace period across rotation so in-flight
// games can still settle. Access is serialised with a mutex; the held
// lock scope is O(1) read-and-clone.
type CommitmentSlot struct {
	mu             sync.RWMutex
	current        commitmentPair
	previous       *commitmentPair
	rotateInterval time.Duration

	// archive, when set via SetArchive, receives every minted commitment
	// so the commitment/serverSeed pair survives a process restart even
	// after the in-memory slot has rotated past it. Optional; the core
	// requires no persisted state.
	archive store.DB
}

// NewCommitmentSlot mints an initial serverSeed and returns a slot that
// rotates every rotateInterval.
func NewCommitmentSlot(rotateInterval time.Duration) (*CommitmentSlot, error) {
	seed, err := generateServerSeed(context.Background())
	if err != nil {
		return nil, err
	}
	slot := &CommitmentSlot{
		current:        newPair(seed),
		rotateInterval: rotateInterval,
	}
	slot.archiveCurrent()
	return slot, nil
}

// SetArchive wires an optional persistence backend: every commitment
// minted from this point on (including future rotations) is recorded
// via archive.SaveCommitment.
func (s *CommitmentSlot) SetArchive(archive store.DB) {
	s.mu.Lock()
	s.archive = archive
	s.mu.Unlock()
	s.archiveCurrent()
}

// archiveCurrent persists the current pair if an archive is wired.
// Failures are swallowed: the archive is a supplemental audit trail; the
// in-memory slot stays the source of truth.
func (s *CommitmentSlot) archiveCurrent() {
	s.mu.RLock()
	archive := s.archive
	pair := s.current
	s.mu.RUnlock()
	if archive == nil {
		return
	}
	_ = archive.SaveCommitment(&store.CommitmentRecord{
		Commitment: pair.commitment,
		ServerSeed: pair.serverSeed,
		MintedAt:   pair.timestamp,
	})
}

func newPair(serverSeed string) commitmentPair {
	sum := cryptoutil.SHA256([]byte(serverSeed))
	return commitmentPair{
		serverSeed: serverSeed,
		commitment: cryptoutil.HexEncode(sum[:]),
		timestamp:  time.Now(),
	}
}

// generateServerSeed reads 32 random bytes and hex-encodes them; the hex
// string itself is the serverSeed and is hashed as ASCII, never
// hex-decoded again. The read is wrapped in a short bounded retry since a
// transient OS entropy-source error should not wedge commitment rotation.
func generateServerSeed(ctx context.Context) (string, error) {
	var seed string
	b := retry.WithMaxRetries(3, retry.NewConstant(5*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return retry.RetryableError(err)
		}
		seed = cryptoutil.HexEncode(buf)
		return nil
	})
	return seed, err
}

// GetCommitment returns the current commitment, its mint timestamp, and
// the duration remaining until the next scheduled rotation.
func (s *CommitmentSlot) GetCommitment() (commitment string, timestamp time.Time, untilRotation time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	elapsed := time.Since(s.current.timestamp)
	remaining := s.rotateInterval - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return s.current.commitment, s.current.timestamp, remaining
}

// Rotate moves the current pair into the single retained history slot and
// mints a fresh one. Games already opened against the previous commitment
// can still be finished, since each registry entry snapshots its
// serverSeed at start; ResolveServerSeed keeps accepting the previous
// commitment for new games until the next rotation.
func (s *CommitmentSlot) Rotate(ctx context.Context) error {
	seed, err := generateServerSeed(ctx)
	if err != nil {
		return err
	}
	next := newPair(seed)

	s.mu.Lock()
	prev := s.current
	s.previous = &prev
	s.current = next
	s.mu.Unlock()

	s.archiveCurrent()
	return nil
}

// ResolveServerSeed returns the serverSeed bound to commitment if it
// matches the current or the single retained previous commitment.
func (s *CommitmentSlot) ResolveServerSeed(commitment string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if commitment == s.current.commitment {
		return s.current.serverSeed, true
	}
	if s.previous != nil && commitment == s.previous.commitment {
		return s.previous.serverSeed, true
	}
	return "", false
}

// RevealCommitment stamps the moment commitment's serverSeed was first
// disclosed to a player in a verified finish response, if an archive is
// wired. A no-op otherwise.
func (s *CommitmentSlot) RevealCommitment(commitment string, revealedAt time.Time) {
	s.mu.RLock()
	archive := s.archive
	s.mu.RUnlock()
	if archive == nil {
		return
	}
	_ = archive.RevealCommitment(commitment, revealedAt)
}

// CurrentServerSeed returns the serverSeed bound to the live commitment,
// used when a game start request does not pin a recordedCommitment.
func (s *CommitmentSlot) CurrentServerSeed() (serverSeed, commitment string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.serverSeed, s.current.commitment
}

// RunRotation rotates on a fixed interval until ctx is cancelled.
func (s *CommitmentSlot) RunRotation(ctx context.Context) {
	ticker := time.NewTicker(s.rotateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Rotate(ctx)
		}
	}
}
