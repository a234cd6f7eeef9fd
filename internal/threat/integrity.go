package threat

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// IntegrityDigest fingerprints a stored evidence artifact: SHA-256 over the
// artifact locator concatenated with the record timestamp. The timestamp
// makes this a freshness fingerprint, not a content-addressed hash: the
// same locator recorded at two different instants yields two different
// digests, and the digest says nothing about the bytes behind the locator.
func IntegrityDigest(locator string, ts time.Time) string {
	sum := sha256.Sum256([]byte(locator + ts.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])
}
