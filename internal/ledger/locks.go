package ledger

import (
	"context"
	"sort"
	"sync"
)

// gate is a one-slot semaphore: writing takes the lock, reading frees it.
// Channels are used instead of mutexes so acquisition can respect a context
// deadline.
type gate chan struct{}

// lockTable hands out one in-process lock per seat id. Callers acquire
// their whole seat set in ascending id order, so two claims wanting
// overlapping sets can never deadlock each other.
type lockTable struct {
	mu    sync.Mutex
	gates map[string]gate
}

func newLockTable() *lockTable {
	return &lockTable{gates: make(map[string]gate)}
}

func (t *lockTable) gateFor(seatID string) gate {
	t.mu.Lock()
	defer t.mu.Unlock()
	g, ok := t.gates[seatID]
	if !ok {
		g = make(gate, 1)
		t.gates[seatID] = g
	}
	return g
}

// Acquire takes the lock of every seat in seatIDs, waiting at most until ctx
// expires. On timeout or cancellation every lock taken so far is released,
// so a caller never holds a partial set. The returned slice is the sorted,
// de-duplicated id set that must later be passed to Release.
func (t *lockTable) Acquire(ctx context.Context, seatIDs []string) ([]string, error) {
	ids := sortedUnique(seatIDs)
	held := make([]string, 0, len(ids))
	for _, id := range ids {
		select {
		case t.gateFor(id) <- struct{}{}:
			held = append(held, id)
		case <-ctx.Done():
			t.Release(held)
			return nil, ctx.Err()
		}
	}
	return ids, nil
}

// Release frees the locks of ids. The slice must come from Acquire.
func (t *lockTable) Release(seatIDs []string) {
	for _, id := range seatIDs {
		<-t.gateFor(id)
	}
}

func sortedUnique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
