package arraybuffer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hack-pad/arraybuffer/coerce"
	"github.com/hack-pad/arraybuffer/heap"
	"github.com/hack-pad/arraybuffer/rterror"
	"github.com/hack-pad/arraybuffer/value"
)

func newTestBuffers() (*heap.Heap, *Buffers) {
	h := heap.New()
	return h, New(h, coerce.ToNumber)
}

func TestFromArgsNoArguments(t *testing.T) {
	h, buffers := newTestBuffers()
	buf, err := buffers.FromArgs()
	require.NoError(t, err)
	defer h.Release(buf)

	assert.Zero(t, Length(buf))
	assert.Empty(t, Bytes(buf))
}

func TestFromArgsExactIntegers(t *testing.T) {
	for _, length := range []uint32{0, 1, 255, 65536} {
		h, buffers := newTestBuffers()
		buf, err := buffers.FromArgs(value.Number(float64(length)))
		require.NoError(t, err)

		assert.Equal(t, length, Length(buf))
		assert.Equal(t, int(length), len(Bytes(buf)))
		h.Release(buf)
	}
}

func TestFromArgsInvalidLengths(t *testing.T) {
	for _, tc := range []struct {
		name string
		arg  value.Value
	}{
		{"fractional", value.Number(3.5)},
		{"negative", value.Number(-1)},
		{"NaN", value.Number(math.NaN())},
		{"infinity", value.Number(math.Inf(1))},
		{"negative infinity", value.Number(math.Inf(-1))},
		{"too large", value.Number(math.MaxUint32 + 1)},
		{"garbage string", value.String("not a number")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, buffers := newTestBuffers()
			_, err := buffers.FromArgs(tc.arg)
			require.Error(t, err)
			assert.True(t, rterror.Is(err, rterror.Range), "want RangeError, got %v", err)
		})
	}
}

func TestFromArgsNegativeZero(t *testing.T) {
	h, buffers := newTestBuffers()
	buf, err := buffers.FromArgs(value.Number(math.Copysign(0, -1)))
	require.NoError(t, err)
	defer h.Release(buf)

	assert.Zero(t, Length(buf))
}

func TestFromArgsCoercionFailurePropagates(t *testing.T) {
	h, buffers := newTestBuffers()
	o := h.Create(nil, heap.HeaderSize, heap.KindPlain)
	defer h.Release(o)

	_, err := buffers.FromArgs(value.Object(o))
	require.Error(t, err)
	assert.True(t, rterror.Is(err, rterror.Type), "coercion failure must pass through unchanged")
}

func TestFromArgsCoercibleValues(t *testing.T) {
	h, buffers := newTestBuffers()
	buf, err := buffers.FromArgs(value.String("16"))
	require.NoError(t, err)
	defer h.Release(buf)

	assert.Equal(t, uint32(16), Length(buf))
}

func TestAllocZeroFill(t *testing.T) {
	h, buffers := newTestBuffers()

	// dirty a buffer, release it so its storage is recycled, then check a
	// fresh buffer of the same size class reads all zero
	buf, err := buffers.Alloc(48)
	require.NoError(t, err)
	for i := range Bytes(buf) {
		Bytes(buf)[i] = 0xCD
	}
	h.Release(buf)

	buf, err = buffers.Alloc(48)
	require.NoError(t, err)
	defer h.Release(buf)
	for i, b := range Bytes(buf) {
		require.Zero(t, b, "byte %d not zero", i)
	}
}

func TestClone(t *testing.T) {
	h, buffers := newTestBuffers()
	const srcLen = 64

	src, err := buffers.Alloc(srcLen)
	require.NoError(t, err)
	defer h.Release(src)
	for i := range Bytes(src) {
		Bytes(src)[i] = byte(i)
	}

	for _, offset := range []uint32{0, 1, srcLen / 2, srcLen} {
		clone := buffers.Clone(src, offset)
		assert.Equal(t, srcLen-offset, Length(clone))
		assert.Equal(t, Bytes(src)[offset:], Bytes(clone))

		// mutating the clone must never reach the source
		for i := range Bytes(clone) {
			Bytes(clone)[i] = 0xFF
		}
		for i, b := range Bytes(src) {
			assert.Equal(t, byte(i), b, "source byte %d changed by clone mutation", i)
		}
		h.Release(clone)
	}
}

func TestCloneContractViolations(t *testing.T) {
	h, buffers := newTestBuffers()
	buf, err := buffers.Alloc(8)
	require.NoError(t, err)
	defer h.Release(buf)

	assert.Panics(t, func() {
		buffers.Clone(buf, 9)
	})

	plain := h.Create(nil, heap.HeaderSize, heap.KindPlain)
	defer h.Release(plain)
	assert.Panics(t, func() {
		buffers.Clone(plain, 0)
	})
}

func TestIs(t *testing.T) {
	h, buffers := newTestBuffers()
	buf, err := buffers.FromArgs(value.Number(4))
	require.NoError(t, err)
	defer h.Release(buf)
	clone := buffers.Clone(buf, 2)
	defer h.Release(clone)
	plain := h.Create(nil, heap.HeaderSize, heap.KindPlain)
	defer h.Release(plain)

	assert.True(t, Is(value.Object(buf)))
	assert.True(t, Is(value.Object(clone)))

	for _, tc := range []struct {
		name  string
		value value.Value
	}{
		{"plain object", value.Object(plain)},
		{"undefined", value.Undefined()},
		{"null", value.Null()},
		{"number", value.Number(7)},
		{"string", value.String("buf")},
		{"boolean", value.Bool(true)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, Is(tc.value))
		})
	}
}

func TestAccessorContractViolations(t *testing.T) {
	h, _ := newTestBuffers()
	plain := h.Create(nil, heap.HeaderSize, heap.KindPlain)
	defer h.Release(plain)

	assert.Panics(t, func() {
		Length(plain)
	})
	assert.Panics(t, func() {
		Bytes(plain)
	})
	assert.Panics(t, func() {
		Length(nil)
	})
}

func TestLengthMatchesRequested(t *testing.T) {
	h, buffers := newTestBuffers()
	for _, length := range []uint32{0, 1, 7, 4096, 100_000} {
		buf, err := buffers.Alloc(length)
		require.NoError(t, err)
		assert.Equal(t, length, Length(buf))
		assert.Equal(t, length, Length(buf), "length must not change between reads")
		h.Release(buf)
	}
}

func TestBufferSharesPrototype(t *testing.T) {
	h, buffers := newTestBuffers()
	first, err := buffers.Alloc(1)
	require.NoError(t, err)
	defer h.Release(first)
	second, err := buffers.Alloc(2)
	require.NoError(t, err)
	defer h.Release(second)

	proto := h.Builtin(heap.BuiltinArrayBufferPrototype)
	defer h.Release(proto)
	assert.Same(t, proto, first.Proto())
	assert.Same(t, proto, second.Proto())
}
