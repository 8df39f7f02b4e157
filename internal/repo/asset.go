package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/fleet-pm/internal/models"
)

// AssetRepo persists the asset registry.
type AssetRepo struct {
	DB *sql.DB
}

// NewAssetRepo returns a new AssetRepo.
func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{DB: db}
}

// Create inserts a new asset and returns it with id set.
func (r *AssetRepo) Create(ctx context.Context, organisationID int, name, description string) (*models.Asset, error) {
	a := &models.Asset{}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO assets (organisation_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, organisation_id, name, description, created_at`,
		organisationID, name, description,
	).Scan(&a.ID, &a.OrganisationID, &a.Name, &a.Description, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID returns one asset, or nil when absent.
func (r *AssetRepo) GetByID(ctx context.Context, id int) (*models.Asset, error) {
	a := &models.Asset{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, organisation_id, name, description, created_at
		FROM assets
		WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.OrganisationID, &a.Name, &a.Description, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns assets ordered by id. limit/offset for pagination.
func (r *AssetRepo) List(ctx context.Context, limit, offset int) ([]models.Asset, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, organisation_id, name, description, created_at
		FROM assets
		ORDER BY id
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.OrganisationID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Delete removes an asset by id.
func (r *AssetRepo) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}
