package bucache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Filters is the query-shaped input a cache key is derived from: the same
// mapping the route layer received (date ranges, capacity bounds, building
// codes, ...). Values must be JSON-serializable. A nil map is equivalent to
// an empty one.
type Filters map[string]any

// DefaultAppPrefix heads every derived key unless Options.AppPrefix overrides it.
const DefaultAppPrefix = "bulib"

// hash segment length in hex characters
const keyHashLen = 8

// DeriveKey builds the canonical cache key "<prefix>:<namespace>:<hash>",
// e.g. "bulib:rooms:9f3a21c0". The hash is the first 8 hex chars of SHA-256
// over the JSON encoding of f; encoding/json writes map keys in sorted order,
// so two mappings with equal contents always derive the same key regardless
// of insertion order.
//
// prefix and namespace must not contain '/' (see internal/glob).
func DeriveKey(prefix, namespace string, f Filters) (string, error) {
	if namespace == "" {
		return "", fmt.Errorf("bucache: namespace is required")
	}
	if f == nil {
		f = Filters{}
	}
	payload, err := json.Marshal(f)
	if err != nil {
		return "", &UnsupportedValueError{Key: prefix + ":" + namespace, Err: err}
	}
	sum := sha256.Sum256(payload)
	return prefix + ":" + namespace + ":" + hex.EncodeToString(sum[:keyHashLen/2]), nil
}

// Key derives a key under the cache's configured prefix.
func (c *cache[V]) Key(namespace string, f Filters) (string, error) {
	return DeriveKey(c.prefix, namespace, f)
}

// namespacePattern matches every key of a namespace, scoped or not:
// "bulib:rooms:*" covers both "bulib:rooms:<hash>" and "bulib:rooms:mug:<hash>".
func (c *cache[V]) namespacePattern(ns string) string {
	return c.prefix + ":" + ns + ":*"
}
