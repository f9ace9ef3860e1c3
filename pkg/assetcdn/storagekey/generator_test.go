package storagekey

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFlatGenerator(t *testing.T) {
	gen := NewFlatGenerator()
	assetID := uuid.MustParse("a1b2c3d4-e5f6-7890-abcd-ef1234567890")

	t.Run("key embeds the asset id and filename", func(t *testing.T) {
		key := gen.GenerateKey(assetID, "logo.png")
		assert.Equal(t, "assets/a1b2c3d4-e5f6-7890-abcd-ef1234567890_logo.png", key)
	})

	t.Run("empty filename drops the suffix", func(t *testing.T) {
		key := gen.GenerateKey(assetID, "")
		assert.Equal(t, "assets/a1b2c3d4-e5f6-7890-abcd-ef1234567890", key)
	})

	t.Run("unsafe filename characters are replaced", func(t *testing.T) {
		key := gen.GenerateKey(assetID, `dir/sub\file: v2?.png`)
		assert.NotContains(t, key[len("assets/"):], `\`)
		assert.NotContains(t, key, ":")
		assert.NotContains(t, key, "?")
		assert.NotContains(t, key, " ")
		assert.True(t, strings.HasSuffix(key, "dir_sub_file__v2_.png"))
	})

	t.Run("custom prefix", func(t *testing.T) {
		custom := &FlatGenerator{Prefix: "uploads"}
		key := custom.GenerateKey(assetID, "a.txt")
		assert.True(t, strings.HasPrefix(key, "uploads/"))
	})

	t.Run("distinct assets never collide on the same filename", func(t *testing.T) {
		k1 := gen.GenerateKey(uuid.New(), "same.txt")
		k2 := gen.GenerateKey(uuid.New(), "same.txt")
		assert.NotEqual(t, k1, k2)
	})
}

func TestShardedGenerator(t *testing.T) {
	assetID := uuid.MustParse("a1b2c3d4-e5f6-7890-abcd-ef1234567890")

	t.Run("default two-character shard", func(t *testing.T) {
		gen := NewShardedGenerator()
		key := gen.GenerateKey(assetID, "style.css")
		assert.Equal(t, "assets/objects/a1/b2c3d4e5f67890abcdef1234567890_style.css", key)
	})

	t.Run("custom shard length", func(t *testing.T) {
		gen := &ShardedGenerator{ShardLength: 4}
		key := gen.GenerateKey(assetID, "")
		assert.Equal(t, "assets/objects/a1b2/c3d4e5f67890abcdef1234567890", key)
	})

	t.Run("out-of-range shard length falls back to two", func(t *testing.T) {
		gen := &ShardedGenerator{ShardLength: 99}
		key := gen.GenerateKey(assetID, "")
		assert.True(t, strings.HasPrefix(key, "assets/objects/a1/"))
	})
}

func TestCustomFuncGenerator(t *testing.T) {
	gen := NewCustomFuncGenerator(func(assetID uuid.UUID, filename string) string {
		return fmt.Sprintf("tenant-7/%s/%s", assetID, filename)
	})

	assetID := uuid.New()
	key := gen.GenerateKey(assetID, "doc.pdf")
	assert.Equal(t, fmt.Sprintf("tenant-7/%s/doc.pdf", assetID), key)
}
