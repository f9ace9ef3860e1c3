package assetcdn

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the asset CDN core
type Service interface {
	// Ingest pipeline
	IngestAsset(ctx context.Context, req IngestAssetRequest) (*Asset, error)

	// Read path
	GetAsset(ctx context.Context, id uuid.UUID) (*Asset, error)
	DownloadAsset(ctx context.Context, id uuid.UUID, inboundValidator string) (*DownloadResult, error)

	// Publish pipeline
	PublishAsset(ctx context.Context, id uuid.UUID) (*AssetVersion, error)
	ListVersions(ctx context.Context, assetID uuid.UUID) ([]*AssetVersion, error)
}
