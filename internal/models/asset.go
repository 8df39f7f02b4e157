package models

import "time"

// Asset is a maintained piece of equipment (vehicle, generator, machine).
type Asset struct {
	ID             int       `json:"id"`
	OrganisationID int       `json:"organisation_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// AssetReading is the latest telemetry snapshot for an asset. The engine
// only reads these; ingestion happens over the API or an import job.
type AssetReading struct {
	AssetID          int       `json:"asset_id"`
	CurrentMileage   float64   `json:"current_mileage"`
	CurrentHours     float64   `json:"current_hours"`
	AsOf             time.Time `json:"as_of"`
}
