// Package storagekey provides storage key generation strategies for the
// asset CDN. A key must be globally unique across all assets; uniqueness is
// ultimately enforced by the asset ledger's constraint, the generators here
// only make collisions negligibly likely by embedding a fresh UUID.
package storagekey

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator defines the interface for storage key generation strategies
type Generator interface {
	// GenerateKey creates a storage key for the given asset identity
	GenerateKey(assetID uuid.UUID, filename string) string
}

// FlatGenerator produces the flat upload layout: assets/{uuid}_{filename}
type FlatGenerator struct {
	Prefix string
}

func NewFlatGenerator() *FlatGenerator {
	return &FlatGenerator{Prefix: "assets"}
}

func (g *FlatGenerator) GenerateKey(assetID uuid.UUID, filename string) string {
	if filename != "" {
		return fmt.Sprintf("%s/%s_%s", g.Prefix, assetID, sanitizeFilename(filename))
	}
	return fmt.Sprintf("%s/%s", g.Prefix, assetID)
}

// ShardedGenerator produces Git-style sharded keys for backends where flat
// prefixes degrade listing performance:
// assets/objects/ab/cd1234ef5678_filename
type ShardedGenerator struct {
	// ShardLength controls how many characters to use for sharding (default: 2)
	ShardLength int
}

func NewShardedGenerator() *ShardedGenerator {
	return &ShardedGenerator{ShardLength: 2}
}

func (g *ShardedGenerator) GenerateKey(assetID uuid.UUID, filename string) string {
	idStr := strings.ReplaceAll(assetID.String(), "-", "")

	shardLen := g.ShardLength
	if shardLen <= 0 || shardLen > len(idStr) {
		shardLen = 2
	}

	shardDir := idStr[:shardLen]
	remaining := idStr[shardLen:]

	name := remaining
	if filename != "" {
		name = fmt.Sprintf("%s_%s", remaining, sanitizeFilename(filename))
	}

	return fmt.Sprintf("assets/objects/%s/%s", shardDir, name)
}

// CustomFuncGenerator allows callers to provide their own key generation function
type CustomFuncGenerator struct {
	GenerateFunc func(assetID uuid.UUID, filename string) string
}

func NewCustomFuncGenerator(fn func(assetID uuid.UUID, filename string) string) *CustomFuncGenerator {
	return &CustomFuncGenerator{GenerateFunc: fn}
}

func (g *CustomFuncGenerator) GenerateKey(assetID uuid.UUID, filename string) string {
	return g.GenerateFunc(assetID, filename)
}

func sanitizeFilename(filename string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(filename)
}
