package heap

import (
	"unsafe"

	"go.uber.org/atomic"

	"github.com/hack-pad/arraybuffer/internal/bufpool"
)

// HeaderSize is the fixed size of an Object's header record. Every
// allocation served by the heap is accounted as header plus payload, so a
// request for totalSize bytes yields totalSize - HeaderSize payload bytes.
var HeaderSize = uint64(unsafe.Sizeof(Object{}))

// Alignment is the granularity the allocator rounds total sizes up to.
// Callers sizing an allocation near the 32-bit limit must leave room for
// this rounding.
const Alignment = 8

// Object is one heap-managed object: a fixed header and an inline payload
// in a single combined allocation. The kind tag and prototype reference are
// set at creation and never change; the payload length never changes either.
type Object struct {
	kind     Kind
	proto    *Object
	refs     atomic.Int32
	ext      uint32
	data     []byte
	recycled *bufpool.Buffer
}

func (o *Object) Kind() Kind {
	return o.kind
}

// Proto returns the object's prototype, shared with every other object of
// the same kind. Nil for root prototypes.
func (o *Object) Proto() *Object {
	return o.proto
}

// Ext is the kind-specific header word. The ArrayBuffer kind stores its
// payload length here.
func (o *Object) Ext() uint32 {
	return o.ext
}

// SetExt stores the kind-specific header word. Kinds set it once during
// construction, before the object is reachable by anything else.
func (o *Object) SetExt(v uint32) {
	o.ext = v
}

// Payload is the object's inline storage, immediately following the header
// in the combined allocation. Valid only while the object is alive.
func (o *Object) Payload() []byte {
	return o.data
}

// Refs reports the current reference count.
func (o *Object) Refs() int32 {
	return o.refs.Load()
}

// totalSize is the combined allocation size this object is accounted at.
func (o *Object) totalSize() int64 {
	return int64(HeaderSize) + int64(len(o.data))
}
