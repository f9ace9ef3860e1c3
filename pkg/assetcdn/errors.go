package assetcdn

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrAssetNotFound indicates an asset was not found in the ledger
	ErrAssetNotFound = errors.New("asset not found")

	// ErrVersionNotFound indicates an asset version was not found
	ErrVersionNotFound = errors.New("asset version not found")

	// ErrStorageKeyExists indicates a storage key collided with an existing asset
	ErrStorageKeyExists = errors.New("storage key already exists")

	// ErrIngestFailed indicates an ingest operation failed
	ErrIngestFailed = errors.New("ingest failed")

	// ErrDownloadFailed indicates a download operation failed
	ErrDownloadFailed = errors.New("download failed")
)

// AssetError represents an error related to asset ledger operations
type AssetError struct {
	AssetID uuid.UUID
	Op      string
	Err     error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset operation %s failed for asset %s: %v", e.Op, e.AssetID, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob store operations.
// A read failure is transient: the ledger record remains valid and the
// condition is never reported as a not-found.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
