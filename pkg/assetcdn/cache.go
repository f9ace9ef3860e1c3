package assetcdn

import (
	"errors"
	"fmt"
)

// CachePolicy produces Cache-Control directives for served assets.
//
// Public assets get a two-tier freshness window: shared caches (CDNs,
// proxies) may retain for SharedMaxAge seconds while clients revalidate
// after ClientMaxAge seconds. SharedMaxAge must be >= ClientMaxAge.
// Private assets are never shared and never stored.
type CachePolicy struct {
	SharedMaxAge int
	ClientMaxAge int
}

// DefaultCachePolicy returns the standard freshness windows: an hour for
// shared caches, a minute for clients.
func DefaultCachePolicy() CachePolicy {
	return CachePolicy{
		SharedMaxAge: 3600,
		ClientMaxAge: 60,
	}
}

// Validate checks the policy invariants
func (p CachePolicy) Validate() error {
	if p.SharedMaxAge < 0 || p.ClientMaxAge < 0 {
		return errors.New("cache freshness windows must be non-negative")
	}
	if p.SharedMaxAge < p.ClientMaxAge {
		return errors.New("shared cache window must be >= client cache window")
	}
	return nil
}

// Directive returns the Cache-Control value for an asset with the given
// privacy flag.
func (p CachePolicy) Directive(isPrivate bool) string {
	if isPrivate {
		return "private, no-store"
	}
	return fmt.Sprintf("public, s-maxage=%d, max-age=%d", p.SharedMaxAge, p.ClientMaxAge)
}

// ValidatorMatches reports whether an inbound If-None-Match value revalidates
// the stored ETag. The match is exact byte-for-byte string equality including
// the surrounding quotes; an absent or empty inbound validator never matches.
// A mismatch is normal control flow, not an error.
func ValidatorMatches(etag, inbound string) bool {
	if inbound == "" {
		return false
	}
	return inbound == etag
}
