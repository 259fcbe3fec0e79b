package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// AssetRepositoryPG persists metadata for stored generation assets.
type AssetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAssetRepository constructs a new asset repository instance.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepositoryPG {
	return &AssetRepositoryPG{pool: pool}
}

// Save persists a single asset record.
func (r *AssetRepositoryPG) Save(ctx context.Context, asset *domain.Asset) error {
	query := `
INSERT INTO assets (id, user_id, job_id, kind, storage_key, url, mime_type, bytes, source_uri)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.UserID,
		asset.JobID,
		asset.Kind,
		asset.StorageKey,
		asset.URL,
		asset.MIMEType,
		asset.Bytes,
		asset.SourceURI,
	)
	return err
}

// ListByJobID returns all assets belonging to the job, oldest first.
func (r *AssetRepositoryPG) ListByJobID(ctx context.Context, jobID string) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, job_id, kind, storage_key, url, mime_type, bytes, source_uri, created_at
FROM assets
WHERE job_id = $1
ORDER BY created_at ASC;
`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetByID fetches an asset owned by the user.
func (r *AssetRepositoryPG) GetByID(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, job_id, kind, storage_key, url, mime_type, bytes, source_uri, created_at
FROM assets
WHERE id = $1 AND user_id = $2;
`, assetID, userID)
	return scanAsset(row)
}

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var asset domain.Asset
	if err := row.Scan(
		&asset.ID,
		&asset.UserID,
		&asset.JobID,
		&asset.Kind,
		&asset.StorageKey,
		&asset.URL,
		&asset.MIMEType,
		&asset.Bytes,
		&asset.SourceURI,
		&asset.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}
