// Package arraybuffer implements a fixed-length byte buffer object kind on
// top of a reference-counted object system. A buffer owns exactly its
// declared length in zero-initialized bytes, laid out as one header plus
// inline payload allocation, tagged so its kind can be recovered from a
// generic object handle, and cloneable from any offset.
//
// Construction from untrusted input goes through FromArgs, which validates
// an arbitrary host value into a length. Everything else — Clone, Length,
// Bytes — is for runtime-internal callers and treats a wrong-kind object or
// out-of-range offset as a caller bug, not a recoverable error. Use Is to
// discriminate first.
package arraybuffer

import (
	"fmt"

	"github.com/hack-pad/arraybuffer/heap"
	"github.com/hack-pad/arraybuffer/value"
)

// ObjectSystem is the slice of the object system buffers need: kind-tagged
// allocation, the shared builtin prototypes, and reference management.
// *heap.Heap satisfies it.
type ObjectSystem interface {
	Create(proto *heap.Object, totalSize uint64, kind heap.Kind) *heap.Object
	Builtin(id heap.BuiltinID) *heap.Object
	Release(o *heap.Object)
}

var _ ObjectSystem = (*heap.Heap)(nil)

// ToNumberFunc converts an arbitrary host value to a number. Failures are
// surfaced to the caller untouched. coerce.ToNumber is the default
// implementation.
type ToNumberFunc func(v value.Value) (float64, error)

// Buffers constructs ArrayBuffer objects inside one object system.
type Buffers struct {
	sys      ObjectSystem
	toNumber ToNumberFunc
}

func New(sys ObjectSystem, toNumber ToNumberFunc) *Buffers {
	return &Buffers{
		sys:      sys,
		toNumber: toNumber,
	}
}

// FromArgs constructs a buffer from a script-level argument list: no
// arguments means an empty buffer, one argument is coerced and validated
// into a length. Fails with a RangeError-kind error for lengths that are
// not exact uint32 values or do not fit the allocator, and passes coercion
// failures through unchanged.
func (b *Buffers) FromArgs(args ...value.Value) (*heap.Object, error) {
	length, err := b.lengthFromArgs(args)
	if err != nil {
		return nil, err
	}
	return b.Alloc(length)
}

// Alloc constructs a zero-filled buffer of the given length. The only
// failure is a RangeError-kind error when the combined header+payload
// allocation cannot fit the allocator's size type; the bound is checked
// before any allocation happens. The caller owns the returned reference.
func (b *Buffers) Alloc(length uint32) (*heap.Object, error) {
	if err := checkLength(length); err != nil {
		return nil, err
	}

	proto := b.sys.Builtin(heap.BuiltinArrayBufferPrototype)
	obj := b.sys.Create(proto, heap.HeaderSize+uint64(length), heap.KindArrayBuffer)
	b.sys.Release(proto)
	obj.SetExt(length)
	return obj, nil
}

// Clone constructs a new buffer holding src's bytes from offset to the end.
// The copy never aliases src. src must be a buffer object and offset must
// not exceed its length: Clone is not a public constructor, so a violation
// is a caller bug and fails fast.
func (b *Buffers) Clone(src *heap.Object, offset uint32) *heap.Object {
	assertBuffer(src, "Clone")
	length := src.Ext()
	if offset > length {
		panic(fmt.Sprintf("arraybuffer: Clone offset %d out of range for length %d", offset, length))
	}

	clone, err := b.Alloc(length - offset)
	if err != nil {
		// a clone is never longer than its source, which already passed
		// the bound check
		panic(err)
	}
	copy(clone.Payload(), src.Payload()[offset:])
	return clone
}
