package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack encodes values as MessagePack, a compact binary alternative to
// JSON for the shared tier. The zero value is ready to use.
//
// msgpack does not read encoding/json struct tags; tag fields with
// `msgpack:"..."` when the wire names matter.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) { return msgpack.Marshal(v) }
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
