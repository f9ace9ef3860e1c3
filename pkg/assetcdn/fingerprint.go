package assetcdn

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes the strong content fingerprint for the given bytes:
// the hex-encoded SHA-256 digest wrapped in literal double quotes, usable
// directly as a strong ETag value. Identical bytes always yield identical
// fingerprints.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%q", hex.EncodeToString(sum[:]))
}
