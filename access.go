package arraybuffer

import (
	"fmt"

	"github.com/hack-pad/arraybuffer/heap"
	"github.com/hack-pad/arraybuffer/value"
)

// Length returns the byte length recorded in o's header. Pure: the length
// is fixed at construction. o must be a buffer object.
func Length(o *heap.Object) uint32 {
	assertBuffer(o, "Length")
	return o.Ext()
}

// Bytes returns o's payload, valid for exactly Length(o) bytes and only
// while o is alive. Nothing in this package ever invalidates it earlier,
// since buffers are never resized. o must be a buffer object.
func Bytes(o *heap.Object) []byte {
	assertBuffer(o, "Bytes")
	return o.Payload()
}

// Is reports whether v is a buffer object. Unlike the accessors above it
// accepts any value, making it the safe discriminator to call before
// Length, Bytes or Clone.
func Is(v value.Value) bool {
	obj := v.Obj()
	return obj != nil && obj.Kind() == heap.KindArrayBuffer
}

func assertBuffer(o *heap.Object, op string) {
	if o == nil {
		panic(fmt.Sprintf("arraybuffer: %s called on a nil object", op))
	}
	if o.Kind() != heap.KindArrayBuffer {
		panic(fmt.Sprintf("arraybuffer: %s called on a %s object", op, o.Kind()))
	}
}
