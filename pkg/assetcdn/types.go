package assetcdn

import (
	"time"

	"github.com/google/uuid"
)

// Asset is the metadata record for a stored object.
//
// StorageKey is globally unique across all assets and is written exactly
// once at ingest; ETag is always the strong fingerprint of the bytes stored
// under StorageKey. There is no content-update operation, so the two can
// never diverge.
type Asset struct {
	ID               uuid.UUID  `json:"id"`
	StorageKey       string     `json:"storage_key"`
	Filename         string     `json:"filename"`
	MimeType         string     `json:"mime_type"`
	SizeBytes        int64      `json:"size_bytes"`
	ETag             string     `json:"etag"`
	CurrentVersionID *uuid.UUID `json:"current_version_id,omitempty"`
	IsPrivate        bool       `json:"is_private"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// AssetVersion is an immutable historical marker for an asset. Versions are
// append-only; creation order is the version history.
type AssetVersion struct {
	ID           uuid.UUID `json:"id"`
	AssetID      uuid.UUID `json:"asset_id"`
	VersionLabel string    `json:"version_label"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccessToken is a persisted shape only. Nothing in this service mints or
// validates tokens; the record exists for external collaborators.
type AccessToken struct {
	Token     string    `json:"token"`
	AssetID   uuid.UUID `json:"asset_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DefaultMimeType is used when the client declares no content type. The
// fallback exists because response content-type headers must never be empty.
const DefaultMimeType = "application/octet-stream"
