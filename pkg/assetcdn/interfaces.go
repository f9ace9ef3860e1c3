package assetcdn

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore defines the interface for object-storage backends
type BlobStore interface {
	// Upload writes content under the given key with its content type
	Upload(ctx context.Context, reader io.Reader, params UploadParams) error

	// Download retrieves the content stored under the given key
	Download(ctx context.Context, storageKey string) (io.ReadCloser, error)

	// GetObjectMeta retrieves metadata for a stored object
	GetObjectMeta(ctx context.Context, storageKey string) (*ObjectMeta, error)

	// Delete removes the content stored under the given key
	Delete(ctx context.Context, storageKey string) error
}

// Repository defines the interface for asset and version persistence.
//
// CreateAsset enforces the unique constraint on StorageKey and reports a
// collision as ErrStorageKeyExists. CreateVersion appends the version and
// advances the owning asset's CurrentVersionID in a single transaction.
type Repository interface {
	// Asset ledger operations
	CreateAsset(ctx context.Context, asset *Asset) error
	GetAsset(ctx context.Context, id uuid.UUID) (*Asset, error)

	// Version ledger operations
	CreateVersion(ctx context.Context, version *AssetVersion) error
	ListVersions(ctx context.Context, assetID uuid.UUID) ([]*AssetVersion, error)
}

// EventSink defines the interface for event handling
type EventSink interface {
	// AssetIngested is fired after an asset's blob and record are written
	AssetIngested(ctx context.Context, asset *Asset) error

	// AssetDownloaded is fired after a download decision, hit or miss
	AssetDownloaded(ctx context.Context, asset *Asset, notModified bool) error

	// VersionPublished is fired after a version record is appended
	VersionPublished(ctx context.Context, version *AssetVersion) error
}

// ObjectMeta contains metadata about an object in storage
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}

// UploadParams contains parameters for uploading an object
type UploadParams struct {
	StorageKey string
	MimeType   string
}
