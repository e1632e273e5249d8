package arraybuffer

import (
	"math"

	"github.com/hack-pad/arraybuffer/heap"
	"github.com/hack-pad/arraybuffer/rterror"
	"github.com/hack-pad/arraybuffer/value"
)

const invalidLengthMessage = "invalid ArrayBuffer length"

// lengthFromArgs turns an optional argument into a validated buffer length.
// No argument means zero. Coercion failures propagate untouched; anything
// that is not an exact uint32 after coercion is a RangeError.
func (b *Buffers) lengthFromArgs(args []value.Value) (uint32, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := b.toNumber(args[0])
	if err != nil {
		return 0, err
	}
	u, ok := exactUint32(n)
	if !ok {
		return 0, rterror.New(invalidLengthMessage, rterror.Range)
	}
	return u, nil
}

// exactUint32 reports whether n is exactly representable as a uint32: an
// integral value between 0 and 2^32-1. Negative zero qualifies as zero.
// NaN and the infinities fail the integrality comparison, so no special
// cases are needed for them.
func exactUint32(n float64) (uint32, bool) {
	if n != math.Trunc(n) || n < 0 || n > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

// checkLength guards the combined allocation size: header, payload, and the
// allocator's alignment rounding must all fit the 32-bit allocation size
// type. The sum is computed in uint64 so the check itself cannot wrap.
func checkLength(length uint32) error {
	total := heap.HeaderSize + uint64(length)
	aligned := (total + heap.Alignment - 1) &^ uint64(heap.Alignment-1)
	if aligned > math.MaxUint32 {
		return rterror.New(invalidLengthMessage, rterror.Range)
	}
	return nil
}

// MaxLength is the largest payload length Alloc accepts.
func MaxLength() uint32 {
	return uint32(math.MaxUint32 - heap.HeaderSize - heap.Alignment + 1)
}
