package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched feed responses so repeated runs within the TTL do not
// hit the upstream API again.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a request URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "sss:v1:" + hex.EncodeToString(hash[:])
}
