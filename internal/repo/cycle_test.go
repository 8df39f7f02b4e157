package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCycleRepo_RecordFire_Inserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO cycle_records`).
		WithArgs(1, "due:2025-06-15", 42).
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := NewCycleRepo(db)
	inserted, err := r.RecordFire(context.Background(), 1, "due:2025-06-15", 42)
	if err != nil {
		t.Fatalf("RecordFire: %v", err)
	}
	if !inserted {
		t.Error("expected insert to succeed")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCycleRepo_RecordFire_DuplicateIsOutcomeNotError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// ON CONFLICT DO NOTHING: zero rows affected, no error.
	mock.ExpectExec(`INSERT INTO cycle_records`).
		WithArgs(1, "due:2025-06-15", 43).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewCycleRepo(db)
	inserted, err := r.RecordFire(context.Background(), 1, "due:2025-06-15", 43)
	if err != nil {
		t.Fatalf("duplicate must not error: %v", err)
	}
	if inserted {
		t.Error("expected duplicate to be rejected")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCycleRepo_HasFired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1, "mileage:15000").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	r := NewCycleRepo(db)
	fired, err := r.HasFired(context.Background(), 1, "mileage:15000")
	if err != nil {
		t.Fatalf("HasFired: %v", err)
	}
	if !fired {
		t.Error("expected fired=true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCycleRepo_ListBySchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, schedule_id, cycle_key, work_order_id, created_at`).
		WithArgs(1, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id", "cycle_key", "work_order_id", "created_at"}).
			AddRow(2, 1, "due:2025-07-15", 44, now).
			AddRow(1, 1, "due:2025-06-15", 42, now.Add(-30*24*time.Hour)))

	r := NewCycleRepo(db)
	list, err := r.ListBySchedule(context.Background(), 1, 50, 0)
	if err != nil {
		t.Fatalf("ListBySchedule: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].CycleKey != "due:2025-07-15" || list[0].WorkOrderID != 44 {
		t.Errorf("unexpected first record: %+v", list[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
