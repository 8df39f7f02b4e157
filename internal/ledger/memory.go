package ledger

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLedger is an in-process cycle ledger: a mutex-guarded map doing an
// atomic insert-if-absent per (schedule, cycle key). It backs tests and
// hosts that embed the engine without a database; production passes use the
// Postgres-backed repo, which enforces the same uniqueness with a
// constraint. The ledger is an injected dependency, never package state, so
// it can be swapped for a shared store without touching call sites.
type MemoryLedger struct {
	mu    sync.Mutex
	fired map[string]int // cycle -> work order id
}

// NewMemoryLedger returns an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{fired: make(map[string]int)}
}

func cycleID(scheduleID int, cycleKey string) string {
	return fmt.Sprintf("%d|%s", scheduleID, cycleKey)
}

// HasFired reports whether the cycle already produced a work order.
func (l *MemoryLedger) HasFired(_ context.Context, scheduleID int, cycleKey string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.fired[cycleID(scheduleID, cycleKey)]
	return ok, nil
}

// RecordFire marks the cycle as fired. Returns false when the cycle was
// already recorded; a duplicate is an expected outcome, not an error.
func (l *MemoryLedger) RecordFire(_ context.Context, scheduleID int, cycleKey string, workOrderID int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := cycleID(scheduleID, cycleKey)
	if _, ok := l.fired[id]; ok {
		return false, nil
	}
	l.fired[id] = workOrderID
	return true, nil
}

// Len returns the number of recorded cycles.
func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fired)
}
