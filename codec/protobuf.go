package codec

import "google.golang.org/protobuf/proto"

// Protobuf caches proto messages in their wire encoding, for proxies whose
// upstream already speaks protobuf. T is the concrete message pointer type.
type Protobuf[T proto.Message] struct {
	new func() T
}

// NewProtobuf builds the codec around a message constructor, which Decode
// uses to produce a fresh message to fill:
//
//	NewProtobuf(func() *pb.RoomList { return &pb.RoomList{} })
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) { return proto.Marshal(v) }
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
