package assetcdn_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
)

func TestAssetErrorUnwrap(t *testing.T) {
	err := &assetcdn.AssetError{
		AssetID: uuid.New(),
		Op:      "publish",
		Err:     assetcdn.ErrAssetNotFound,
	}

	assert.ErrorIs(t, err, assetcdn.ErrAssetNotFound)
	assert.Contains(t, err.Error(), "publish")
	assert.Contains(t, err.Error(), err.AssetID.String())
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &assetcdn.StorageError{
		Key: "assets/key-1",
		Op:  "upload",
		Err: cause,
	}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "upload")
	assert.Contains(t, err.Error(), "assets/key-1")

	// A storage failure is never a missing-asset condition
	assert.NotErrorIs(t, err, assetcdn.ErrAssetNotFound)
}
