package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/fleet-pm/internal/models"
)

func TestReadingRepo_Latest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	asOf := time.Now()
	mock.ExpectQuery(`SELECT asset_id, current_mileage, current_hours, as_of`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"asset_id", "current_mileage", "current_hours", "as_of"}).
			AddRow(10, 15000.0, 1250.5, asOf))

	r := NewReadingRepo(db)
	rd, err := r.Latest(context.Background(), 10)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if rd == nil {
		t.Fatal("expected reading, got nil")
	}
	if rd.CurrentMileage != 15000 || rd.CurrentHours != 1250.5 {
		t.Errorf("unexpected reading: %+v", rd)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_Latest_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT asset_id, current_mileage, current_hours, as_of`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"asset_id", "current_mileage", "current_hours", "as_of"}))

	r := NewReadingRepo(db)
	rd, err := r.Latest(context.Background(), 99)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if rd != nil {
		t.Errorf("expected nil for asset without readings, got %+v", rd)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestReadingRepo_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	asOf := time.Now()
	mock.ExpectExec(`INSERT INTO asset_readings`).
		WithArgs(10, 15250.0, 1260.0, asOf).
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := NewReadingRepo(db)
	err = r.Record(context.Background(), &models.AssetReading{
		AssetID:        10,
		CurrentMileage: 15250,
		CurrentHours:   1260,
		AsOf:           asOf,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
