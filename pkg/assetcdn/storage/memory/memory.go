package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
)

// Backend is an in-memory implementation of the assetcdn.BlobStore interface
type Backend struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	mimeTypes map[string]string
	updatedAt map[string]time.Time
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects:   make(map[string][]byte),
		mimeTypes: make(map[string]string),
		updatedAt: make(map[string]time.Time),
	}
}

// Upload stores content under the given key
func (b *Backend) Upload(ctx context.Context, reader io.Reader, params assetcdn.UploadParams) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[params.StorageKey] = data
	mimeType := params.MimeType
	if mimeType == "" {
		mimeType = assetcdn.DefaultMimeType
	}
	b.mimeTypes[params.StorageKey] = mimeType
	b.updatedAt[params.StorageKey] = time.Now()
	return nil
}

// Download retrieves content directly
func (b *Backend) Download(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[storageKey]
	if !exists {
		return nil, errors.New("object not found")
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// GetObjectMeta retrieves metadata for an object in memory
func (b *Backend) GetObjectMeta(ctx context.Context, storageKey string) (*assetcdn.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[storageKey]
	if !exists {
		return nil, errors.New("object not found")
	}

	return &assetcdn.ObjectMeta{
		Key:         storageKey,
		Size:        int64(len(data)),
		ContentType: b.mimeTypes[storageKey],
		UpdatedAt:   b.updatedAt[storageKey],
	}, nil
}

// Delete removes content
func (b *Backend) Delete(ctx context.Context, storageKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[storageKey]; !exists {
		return errors.New("object not found")
	}

	delete(b.objects, storageKey)
	delete(b.mimeTypes, storageKey)
	delete(b.updatedAt, storageKey)
	return nil
}
