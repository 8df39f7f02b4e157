package ledger

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryLedger_RecordThenHasFired(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	fired, err := l.HasFired(ctx, 1, "due:2025-06-10")
	if err != nil || fired {
		t.Fatalf("fresh ledger: fired=%v err=%v", fired, err)
	}

	inserted, err := l.RecordFire(ctx, 1, "due:2025-06-10", 42)
	if err != nil || !inserted {
		t.Fatalf("first record: inserted=%v err=%v", inserted, err)
	}

	fired, err = l.HasFired(ctx, 1, "due:2025-06-10")
	if err != nil || !fired {
		t.Fatalf("after record: fired=%v err=%v", fired, err)
	}
}

func TestMemoryLedger_DuplicateIsRejectedNotError(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	if inserted, _ := l.RecordFire(ctx, 7, "mileage:15000", 1); !inserted {
		t.Fatal("first record should insert")
	}
	inserted, err := l.RecordFire(ctx, 7, "mileage:15000", 2)
	if err != nil {
		t.Fatalf("duplicate must not be an error: %v", err)
	}
	if inserted {
		t.Fatal("duplicate record should be rejected")
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", l.Len())
	}
}

func TestMemoryLedger_KeysAreScopedPerSchedule(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	if inserted, _ := l.RecordFire(ctx, 1, "due:2025-06-10", 1); !inserted {
		t.Fatal("schedule 1 should insert")
	}
	if inserted, _ := l.RecordFire(ctx, 2, "due:2025-06-10", 2); !inserted {
		t.Fatal("same key on another schedule should insert")
	}
}

// Two evaluators racing on the same cycle: exactly one RecordFire wins.
func TestMemoryLedger_ConcurrentRecordFire(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	const racers = 16
	var wg sync.WaitGroup
	wins := make(chan bool, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(wo int) {
			defer wg.Done()
			inserted, err := l.RecordFire(ctx, 3, "due:2025-07-01", wo)
			if err != nil {
				t.Errorf("RecordFire: %v", err)
				return
			}
			wins <- inserted
		}(i + 1)
	}
	wg.Wait()
	close(wins)

	won := 0
	for inserted := range wins {
		if inserted {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winner, got %d", won)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", l.Len())
	}
}
