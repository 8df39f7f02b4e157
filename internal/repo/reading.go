package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/fleet-pm/internal/models"
)

// ReadingRepo persists asset telemetry snapshots (odometer, hour meter).
// Readings are append-only; the engine only ever asks for the latest one.
type ReadingRepo struct {
	DB *sql.DB
}

// NewReadingRepo returns a new ReadingRepo.
func NewReadingRepo(db *sql.DB) *ReadingRepo {
	return &ReadingRepo{DB: db}
}

// Record appends a reading for an asset.
func (r *ReadingRepo) Record(ctx context.Context, rd *models.AssetReading) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO asset_readings (asset_id, current_mileage, current_hours, as_of)
		VALUES ($1, $2, $3, $4)`,
		rd.AssetID, rd.CurrentMileage, rd.CurrentHours, rd.AsOf,
	)
	return err
}

// Latest returns the most recent reading for the asset, or (nil, nil) when
// the asset has no readings yet.
func (r *ReadingRepo) Latest(ctx context.Context, assetID int) (*models.AssetReading, error) {
	rd := &models.AssetReading{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT asset_id, current_mileage, current_hours, as_of
		FROM asset_readings
		WHERE asset_id = $1
		ORDER BY as_of DESC, id DESC
		LIMIT 1`,
		assetID,
	).Scan(&rd.AssetID, &rd.CurrentMileage, &rd.CurrentHours, &rd.AsOf)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rd, nil
}
