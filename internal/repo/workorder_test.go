package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/fleet-pm/internal/models"
	"github.com/crucial707/fleet-pm/internal/trigger"
)

func TestWorkOrderRepo_CreateFromSchedule_Time(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	due := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO work_orders`).
		WithArgs(1, 10, "oil change", "time", due, "open").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	r := NewWorkOrderRepo(db)
	s := &models.MaintenanceSchedule{ID: 1, AssetID: 10, Name: "oil change"}
	f := trigger.Firing{Condition: trigger.ConditionTime, CycleKey: "due:2025-06-15", DueDate: due}
	id, err := r.CreateFromSchedule(context.Background(), s, f)
	if err != nil {
		t.Fatalf("CreateFromSchedule: %v", err)
	}
	if id != 42 {
		t.Errorf("id: got %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkOrderRepo_CreateFromSchedule_UsageTitleCarriesThreshold(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO work_orders`).
		WithArgs(1, 10, "oil change (mileage 15000)", "mileage", today, "open").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(43))

	r := NewWorkOrderRepo(db)
	s := &models.MaintenanceSchedule{ID: 1, AssetID: 10, Name: "oil change"}
	f := trigger.Firing{Condition: trigger.ConditionMileage, CycleKey: "mileage:15000", DueDate: today, Threshold: 15000}
	id, err := r.CreateFromSchedule(context.Background(), s, f)
	if err != nil {
		t.Fatalf("CreateFromSchedule: %v", err)
	}
	if id != 43 {
		t.Errorf("id: got %d, want 43", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWorkOrderRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, schedule_id, asset_id, title, reason, due_date, status, created_at`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id", "asset_id", "title", "reason", "due_date", "status", "created_at"}).
			AddRow(2, 1, 10, "oil change", "time", now, "open", now).
			AddRow(1, 1, 10, "oil change (mileage 15000)", "mileage", now, "completed", now))

	r := NewWorkOrderRepo(db)
	list, err := r.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 work orders, got %d", len(list))
	}
	if list[0].ID != 2 || list[0].Reason != "time" || list[0].Status != "open" {
		t.Errorf("unexpected first item: %+v", list[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
