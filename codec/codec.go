// Package codec provides the pluggable value serializers used by bucache.
// Both cache tiers store the encoded bytes, so one Encode per write serves
// remote and local copies alike.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
