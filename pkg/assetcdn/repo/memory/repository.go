package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
)

// Repository implements assetcdn.Repository using in-memory storage.
// The storageKeys index enforces the global uniqueness constraint the
// relational store would carry.
type Repository struct {
	mu              sync.RWMutex
	assets          map[uuid.UUID]*assetcdn.Asset
	versions        map[uuid.UUID]*assetcdn.AssetVersion
	versionsByAsset map[uuid.UUID][]uuid.UUID
	storageKeys     map[string]uuid.UUID
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		assets:          make(map[uuid.UUID]*assetcdn.Asset),
		versions:        make(map[uuid.UUID]*assetcdn.AssetVersion),
		versionsByAsset: make(map[uuid.UUID][]uuid.UUID),
		storageKeys:     make(map[string]uuid.UUID),
	}
}

// Asset ledger operations

func (r *Repository) CreateAsset(ctx context.Context, asset *assetcdn.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.storageKeys[asset.StorageKey]; exists {
		return assetcdn.ErrStorageKeyExists
	}

	// Copy to avoid external modifications
	assetCopy := *asset
	r.assets[asset.ID] = &assetCopy
	r.storageKeys[asset.StorageKey] = asset.ID

	return nil
}

func (r *Repository) GetAsset(ctx context.Context, id uuid.UUID) (*assetcdn.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.assets[id]
	if !exists {
		return nil, assetcdn.ErrAssetNotFound
	}

	// Return a copy to prevent external modifications
	assetCopy := *asset
	return &assetCopy, nil
}

// Version ledger operations

// CreateVersion appends the version and advances the owning asset's
// CurrentVersionID under one lock, mirroring the relational transaction.
func (r *Repository) CreateVersion(ctx context.Context, version *assetcdn.AssetVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	asset, exists := r.assets[version.AssetID]
	if !exists {
		return assetcdn.ErrAssetNotFound
	}

	versionCopy := *version
	r.versions[version.ID] = &versionCopy
	r.versionsByAsset[version.AssetID] = append(r.versionsByAsset[version.AssetID], version.ID)

	versionID := version.ID
	asset.CurrentVersionID = &versionID
	asset.UpdatedAt = version.CreatedAt

	return nil
}

func (r *Repository) ListVersions(ctx context.Context, assetID uuid.UUID) ([]*assetcdn.AssetVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versionIDs := r.versionsByAsset[assetID]

	result := make([]*assetcdn.AssetVersion, 0, len(versionIDs))
	for _, versionID := range versionIDs {
		if version, exists := r.versions[versionID]; exists {
			versionCopy := *version
			result = append(result, &versionCopy)
		}
	}

	// Creation order is the version history
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}
