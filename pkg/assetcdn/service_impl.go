package assetcdn

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/storagekey"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
	keys       storagekey.Generator
	policy     CachePolicy
	eventSink  EventSink
	now        func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the asset/version ledger for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the object-storage backend
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithKeyGenerator sets the storage key generation strategy
func WithKeyGenerator(gen storagekey.Generator) Option {
	return func(s *service) {
		s.keys = gen
	}
}

// WithCachePolicy sets the cache freshness windows
func WithCachePolicy(policy CachePolicy) Option {
	return func(s *service) {
		s.policy = policy
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithClock overrides the time source. Intended for tests that need
// deterministic version labels.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		policy: DefaultCachePolicy(),
		keys:   storagekey.NewFlatGenerator(),
		now:    time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if err := s.policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache policy: %w", err)
	}

	return s, nil
}

// Ingest pipeline

func (s *service) IngestAsset(ctx context.Context, req IngestAssetRequest) (*Asset, error) {
	etag := Fingerprint(req.Data)

	assetID := uuid.New()
	storageKey := s.keys.GenerateKey(assetID, req.Filename)

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	// The blob write must complete before the ledger insert is attempted.
	// A write failure aborts the ingest; no asset record is created.
	params := UploadParams{StorageKey: storageKey, MimeType: mimeType}
	if err := s.blobStore.Upload(ctx, bytes.NewReader(req.Data), params); err != nil {
		return nil, &StorageError{
			Key: storageKey,
			Op:  "upload",
			Err: err,
		}
	}

	now := s.now().UTC()
	asset := &Asset{
		ID:         assetID,
		StorageKey: storageKey,
		Filename:   req.Filename,
		MimeType:   mimeType,
		SizeBytes:  int64(len(req.Data)),
		ETag:       etag,
		IsPrivate:  req.IsPrivate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// A ledger failure after a successful blob write leaves an orphaned
	// blob; reconciliation is an external concern.
	if err := s.repository.CreateAsset(ctx, asset); err != nil {
		return nil, &AssetError{
			AssetID: asset.ID,
			Op:      "ingest",
			Err:     err,
		}
	}

	if s.eventSink != nil {
		if err := s.eventSink.AssetIngested(ctx, asset); err != nil {
			// Events never fail the operation
		}
	}

	return asset, nil
}

// Read path

func (s *service) GetAsset(ctx context.Context, id uuid.UUID) (*Asset, error) {
	return s.repository.GetAsset(ctx, id)
}

func (s *service) DownloadAsset(ctx context.Context, id uuid.UUID, inboundValidator string) (*DownloadResult, error) {
	asset, err := s.repository.GetAsset(ctx, id)
	if err != nil {
		return nil, &AssetError{AssetID: id, Op: "download", Err: err}
	}

	directive := s.policy.Directive(asset.IsPrivate)

	if ValidatorMatches(asset.ETag, inboundValidator) {
		result := &DownloadResult{
			NotModified:  true,
			ETag:         asset.ETag,
			CacheControl: directive,
		}
		s.fireDownloaded(ctx, asset, true)
		return result, nil
	}

	body, err := s.blobStore.Download(ctx, asset.StorageKey)
	if err != nil {
		return nil, &StorageError{
			Key: asset.StorageKey,
			Op:  "download",
			Err: err,
		}
	}

	result := &DownloadResult{
		Body:         body,
		ETag:         asset.ETag,
		CacheControl: directive,
		MimeType:     asset.MimeType,
		SizeBytes:    asset.SizeBytes,
		Filename:     asset.Filename,
	}
	s.fireDownloaded(ctx, asset, false)
	return result, nil
}

// Publish pipeline

func (s *service) PublishAsset(ctx context.Context, id uuid.UUID) (*AssetVersion, error) {
	asset, err := s.repository.GetAsset(ctx, id)
	if err != nil {
		return nil, &AssetError{AssetID: id, Op: "publish", Err: err}
	}

	now := s.now().UTC()
	version := &AssetVersion{
		ID:           uuid.New(),
		AssetID:      asset.ID,
		VersionLabel: fmt.Sprintf("v-%s", now.Format("20060102150405")),
		CreatedAt:    now,
	}

	if err := s.repository.CreateVersion(ctx, version); err != nil {
		return nil, &AssetError{AssetID: id, Op: "publish", Err: err}
	}

	if s.eventSink != nil {
		if err := s.eventSink.VersionPublished(ctx, version); err != nil {
			// Events never fail the operation
		}
	}

	return version, nil
}

func (s *service) ListVersions(ctx context.Context, assetID uuid.UUID) ([]*AssetVersion, error) {
	if _, err := s.repository.GetAsset(ctx, assetID); err != nil {
		return nil, &AssetError{AssetID: assetID, Op: "list_versions", Err: err}
	}
	return s.repository.ListVersions(ctx, assetID)
}

func (s *service) fireDownloaded(ctx context.Context, asset *Asset, notModified bool) {
	if s.eventSink == nil {
		return
	}
	if err := s.eventSink.AssetDownloaded(ctx, asset, notModified); err != nil {
		// Events never fail the operation
	}
}
