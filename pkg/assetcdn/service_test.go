package assetcdn_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
	repomemory "github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/repo/memory"
	memorystorage "github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/storage/memory"
)

func newTestService(t *testing.T, extra ...assetcdn.Option) assetcdn.Service {
	t.Helper()

	options := append([]assetcdn.Option{
		assetcdn.WithRepository(repomemory.New()),
		assetcdn.WithBlobStore(memorystorage.New()),
	}, extra...)

	svc, err := assetcdn.New(options...)
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Run("requires a repository", func(t *testing.T) {
		_, err := assetcdn.New(assetcdn.WithBlobStore(memorystorage.New()))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "repository")
	})

	t.Run("requires a blob store", func(t *testing.T) {
		_, err := assetcdn.New(assetcdn.WithRepository(repomemory.New()))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "blob store")
	})

	t.Run("rejects an invalid cache policy", func(t *testing.T) {
		_, err := assetcdn.New(
			assetcdn.WithRepository(repomemory.New()),
			assetcdn.WithBlobStore(memorystorage.New()),
			assetcdn.WithCachePolicy(assetcdn.CachePolicy{SharedMaxAge: 10, ClientMaxAge: 60}),
		)
		assert.Error(t, err)
	})

	t.Run("succeeds with defaults", func(t *testing.T) {
		svc := newTestService(t)
		assert.NotNil(t, svc)
	})
}

func TestIngestAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		svc := newTestService(t)

		data := []byte("Hello world content for benchmark")
		asset, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{
			Data:      data,
			Filename:  "report.bin",
			MimeType:  "application/pdf",
			IsPrivate: false,
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, asset.ID)
		assert.Equal(t, "report.bin", asset.Filename)
		assert.Equal(t, "application/pdf", asset.MimeType)
		assert.Equal(t, int64(len(data)), asset.SizeBytes)
		assert.Equal(t, `"16685a6f86e1440d65854c341980cba0a0ffa26e46d7ea29c8f8b063f0bbdaf8"`, asset.ETag)
		assert.False(t, asset.IsPrivate)
		assert.Nil(t, asset.CurrentVersionID)
		assert.True(t, strings.HasPrefix(asset.StorageKey, "assets/"))
		assert.Contains(t, asset.StorageKey, asset.ID.String())
		assert.Contains(t, asset.StorageKey, "report.bin")
	})

	t.Run("empty mime type falls back to octet-stream", func(t *testing.T) {
		svc := newTestService(t)

		asset, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{
			Data:     []byte("bytes"),
			Filename: "blob",
		})
		require.NoError(t, err)
		assert.Equal(t, assetcdn.DefaultMimeType, asset.MimeType)
	})

	t.Run("two ingests of identical bytes are distinct assets with equal etags", func(t *testing.T) {
		svc := newTestService(t)

		data := []byte("duplicate payload")
		a1, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{Data: data, Filename: "a.txt"})
		require.NoError(t, err)
		a2, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{Data: data, Filename: "a.txt"})
		require.NoError(t, err)

		assert.NotEqual(t, a1.ID, a2.ID)
		assert.NotEqual(t, a1.StorageKey, a2.StorageKey)
		assert.Equal(t, a1.ETag, a2.ETag)
	})

	t.Run("blob write failure leaves no ledger record", func(t *testing.T) {
		repo := repomemory.New()
		svc, err := assetcdn.New(
			assetcdn.WithRepository(repo),
			assetcdn.WithBlobStore(&failingBlobStore{}),
		)
		require.NoError(t, err)

		asset, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{
			Data:     []byte("doomed"),
			Filename: "doomed.txt",
		})
		require.Error(t, err)
		assert.Nil(t, asset)

		var storageErr *assetcdn.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "upload", storageErr.Op)

		_, err = repo.GetAsset(ctx, uuid.New())
		assert.ErrorIs(t, err, assetcdn.ErrAssetNotFound)
	})
}

func TestDownloadAsset(t *testing.T) {
	ctx := context.Background()

	ingest := func(t *testing.T, svc assetcdn.Service, data []byte, private bool) *assetcdn.Asset {
		t.Helper()
		asset, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{
			Data:      data,
			Filename:  "file.txt",
			MimeType:  "text/plain",
			IsPrivate: private,
		})
		require.NoError(t, err)
		return asset
	}

	t.Run("first download serves the full body", func(t *testing.T) {
		svc := newTestService(t)
		data := []byte("Hello world content for benchmark")
		asset := ingest(t, svc, data, false)

		result, err := svc.DownloadAsset(ctx, asset.ID, "")
		require.NoError(t, err)
		defer result.Body.Close()

		assert.False(t, result.NotModified)
		assert.Equal(t, asset.ETag, result.ETag)
		assert.Equal(t, "public, s-maxage=3600, max-age=60", result.CacheControl)
		assert.Equal(t, "text/plain", result.MimeType)
		assert.Equal(t, int64(len(data)), result.SizeBytes)

		body, err := io.ReadAll(result.Body)
		require.NoError(t, err)
		assert.Equal(t, data, body)
	})

	t.Run("matching validator short-circuits without a body", func(t *testing.T) {
		svc := newTestService(t)
		asset := ingest(t, svc, []byte("cacheable"), false)

		result, err := svc.DownloadAsset(ctx, asset.ID, asset.ETag)
		require.NoError(t, err)

		assert.True(t, result.NotModified)
		assert.Nil(t, result.Body)
		assert.Equal(t, asset.ETag, result.ETag)
		assert.Equal(t, "public, s-maxage=3600, max-age=60", result.CacheControl)
	})

	t.Run("revalidation stays not-modified for unchanged content", func(t *testing.T) {
		svc := newTestService(t)
		asset := ingest(t, svc, []byte("stable bytes"), false)

		for i := 0; i < 3; i++ {
			result, err := svc.DownloadAsset(ctx, asset.ID, asset.ETag)
			require.NoError(t, err)
			assert.True(t, result.NotModified)
		}
	})

	t.Run("stale validator serves the full body", func(t *testing.T) {
		svc := newTestService(t)
		asset := ingest(t, svc, []byte("fresh"), false)

		result, err := svc.DownloadAsset(ctx, asset.ID, `"0000000000000000000000000000000000000000000000000000000000000000"`)
		require.NoError(t, err)
		defer result.Body.Close()

		assert.False(t, result.NotModified)
	})

	t.Run("private asset carries no-store", func(t *testing.T) {
		svc := newTestService(t)
		asset := ingest(t, svc, []byte("secret"), true)

		result, err := svc.DownloadAsset(ctx, asset.ID, "")
		require.NoError(t, err)
		defer result.Body.Close()

		assert.Equal(t, "private, no-store", result.CacheControl)
	})

	t.Run("unknown asset", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.DownloadAsset(ctx, uuid.New(), "")
		assert.ErrorIs(t, err, assetcdn.ErrAssetNotFound)
	})
}

func TestPublishAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("publish appends a version and advances the pointer", func(t *testing.T) {
		svc := newTestService(t)
		asset, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{
			Data:     []byte("v1"),
			Filename: "site.css",
		})
		require.NoError(t, err)

		version, err := svc.PublishAsset(ctx, asset.ID)
		require.NoError(t, err)

		assert.Equal(t, asset.ID, version.AssetID)
		assert.True(t, strings.HasPrefix(version.VersionLabel, "v-"))
		assert.Len(t, version.VersionLabel, 16)

		refreshed, err := svc.GetAsset(ctx, asset.ID)
		require.NoError(t, err)
		require.NotNil(t, refreshed.CurrentVersionID)
		assert.Equal(t, version.ID, *refreshed.CurrentVersionID)
	})

	t.Run("consecutive publishes yield increasing labels", func(t *testing.T) {
		base := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
		clock := base
		svc := newTestService(t, assetcdn.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}))

		asset, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{
			Data:     []byte("evolving"),
			Filename: "app.js",
		})
		require.NoError(t, err)

		v1, err := svc.PublishAsset(ctx, asset.ID)
		require.NoError(t, err)
		v2, err := svc.PublishAsset(ctx, asset.ID)
		require.NoError(t, err)

		assert.Equal(t, "v-20260314092655", v1.VersionLabel)
		assert.Equal(t, "v-20260314092656", v2.VersionLabel)
		assert.True(t, v1.VersionLabel < v2.VersionLabel)

		refreshed, err := svc.GetAsset(ctx, asset.ID)
		require.NoError(t, err)
		require.NotNil(t, refreshed.CurrentVersionID)
		assert.Equal(t, v2.ID, *refreshed.CurrentVersionID)

		versions, err := svc.ListVersions(ctx, asset.ID)
		require.NoError(t, err)
		require.Len(t, versions, 2)
		assert.Equal(t, v1.ID, versions[0].ID)
		assert.Equal(t, v2.ID, versions[1].ID)
	})

	t.Run("publish of an unknown asset creates nothing", func(t *testing.T) {
		repo := repomemory.New()
		svc, err := assetcdn.New(
			assetcdn.WithRepository(repo),
			assetcdn.WithBlobStore(memorystorage.New()),
		)
		require.NoError(t, err)

		missing := uuid.New()
		version, err := svc.PublishAsset(ctx, missing)
		require.Error(t, err)
		assert.Nil(t, version)
		assert.ErrorIs(t, err, assetcdn.ErrAssetNotFound)

		var assetErr *assetcdn.AssetError
		require.ErrorAs(t, err, &assetErr)
		assert.Equal(t, "publish", assetErr.Op)

		versions, err := repo.ListVersions(ctx, missing)
		require.NoError(t, err)
		assert.Empty(t, versions)
	})
}

func TestListVersions(t *testing.T) {
	ctx := context.Background()

	t.Run("unpublished asset has an empty history", func(t *testing.T) {
		svc := newTestService(t)
		asset, err := svc.IngestAsset(ctx, assetcdn.IngestAssetRequest{
			Data:     []byte("never published"),
			Filename: "draft.md",
		})
		require.NoError(t, err)

		versions, err := svc.ListVersions(ctx, asset.ID)
		require.NoError(t, err)
		assert.Empty(t, versions)
	})

	t.Run("unknown asset", func(t *testing.T) {
		svc := newTestService(t)
		_, err := svc.ListVersions(ctx, uuid.New())
		assert.ErrorIs(t, err, assetcdn.ErrAssetNotFound)
	})
}

// failingBlobStore rejects every write
type failingBlobStore struct{}

func (f *failingBlobStore) Upload(ctx context.Context, reader io.Reader, params assetcdn.UploadParams) error {
	return errors.New("backend unavailable")
}

func (f *failingBlobStore) Download(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return nil, errors.New("backend unavailable")
}

func (f *failingBlobStore) GetObjectMeta(ctx context.Context, storageKey string) (*assetcdn.ObjectMeta, error) {
	return nil, errors.New("backend unavailable")
}

func (f *failingBlobStore) Delete(ctx context.Context, storageKey string) error {
	return errors.New("backend unavailable")
}
