package protocol

import (
	"sort"
	"testing"
	"time"
)

func TestPutGetRoundTrip(t *testing.T) {
	r := NewRegistry(time.Minute)
	e := &GameEntry{GameID: "g1", ClientSeed: "cs", GameSeedHex: "deadbeef", NumBalls: 5}
	r.Put(e)

	got := r.Get("g1")
	if got == nil || got.GameID != "g1" {
		t.Fatalf("Get(g1) = %+v, want entry g1", got)
	}
	if r.Get("missing") != nil {
		t.Fatalf("Get(missing) should be nil")
	}
}

func TestLenReflectsEntries(t *testing.T) {
	r := NewRegistry(time.Minute)
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
	r.Put(&GameEntry{GameID: "a"})
	r.Put(&GameEntry{GameID: "b"})
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestGameIDsSnapshotsAllEntries(t *testing.T) {
	r := NewRegistry(time.Minute)
	r.Put(&GameEntry{GameID: "a"})
	r.Put(&GameEntry{GameID: "b"})
	r.Put(&GameEntry{GameID: "c"})

	ids := r.GameIDs()
	sort.Strings(ids)
	want := []string{"a", "b", "c"}
	if len(ids) != len(want) {
		t.Fatalf("GameIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("GameIDs() = %v, want %v", ids, want)
		}
	}
}

func TestSweepRemovesOnlyExpiredFinishedEntries(t *testing.T) {
	r := NewRegistry(10 * time.Millisecond)

	fresh := &GameEntry{GameID: "fresh"}
	r.Put(fresh)

	finishedSoon := &GameEntry{GameID: "finished-soon"}
	r.Put(finishedSoon)
	finishedSoon.mu.Lock()
	finishedSoon.markFinished(true, 100, 100, 100, nil, 10*time.Millisecond)
	finishedSoon.mu.Unlock()

	if removed := r.Sweep(time.Now()); removed != 0 {
		t.Fatalf("Sweep immediately after finish removed %d, want 0", removed)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 before expiry", r.Len())
	}

	future := time.Now().Add(time.Hour)
	removed := r.Sweep(future)
	if removed != 1 {
		t.Fatalf("Sweep(future) removed %d, want 1", removed)
	}
	if r.Get("finished-soon") != nil {
		t.Fatalf("finished-soon entry should have been swept")
	}
	if r.Get("fresh") == nil {
		t.Fatalf("unfinished entry should never be swept")
	}
}
