// Package heap is a reference-counted object system: it creates kind-tagged
// objects laid out as one fixed header plus an inline variable-length
// payload, tracks live memory, and hands out shared builtin prototype
// objects.
//
// The heap's contract is single-threaded: objects are created, used and
// released on one goroutine at a time. The counters are still atomic so
// Stats can be read from anywhere.
package heap

import (
	"fmt"
	"math"

	"github.com/johnstarich/go/datasize"
	"go.uber.org/atomic"

	"github.com/hack-pad/arraybuffer/internal/bufpool"
	"github.com/hack-pad/arraybuffer/internal/log"
)

// payload size classes served from recycled buffers; larger payloads get a
// dedicated allocation
var poolClasses = [...]int{64, 256, 1024, 4096}

const poolMaxIdle = 32

type Heap struct {
	live       atomic.Int64
	objects    atomic.Int64
	limit      int64
	onPressure func()
	pools      [len(poolClasses)]*bufpool.Pool
	builtins   [builtinCount]*Object
}

// New returns a heap with no memory limit.
func New() *Heap {
	return NewWithLimit(datasize.Bytes(0), nil)
}

// NewWithLimit returns a heap that runs onPressure before any allocation
// that would push live memory past limit. The hook typically triggers the
// host's reclamation pass; it runs to completion before the allocation
// proceeds.
func NewWithLimit(limit datasize.Size, onPressure func()) *Heap {
	h := &Heap{
		limit:      limit.Bytes(),
		onPressure: onPressure,
	}
	for i, class := range poolClasses {
		h.pools[i] = bufpool.New(class, poolMaxIdle)
	}
	return h
}

// Create allocates one object of totalSize combined bytes: a header and
// totalSize - HeaderSize payload bytes, zero-filled. The object's kind and
// prototype are fixed here; the caller owns the returned reference.
//
// totalSize must be at least HeaderSize and must fit the allocator's 32-bit
// size type — callers bound-check their payload sizes first, so a violation
// is a caller bug and panics.
func (h *Heap) Create(proto *Object, totalSize uint64, kind Kind) *Object {
	if totalSize < HeaderSize {
		panic(fmt.Sprintf("heap: allocation of %d bytes is smaller than the %d byte object header", totalSize, HeaderSize))
	}
	if totalSize > math.MaxUint32 {
		panic(fmt.Sprintf("heap: allocation of %d bytes exceeds the 32-bit allocation size limit", totalSize))
	}
	if h.limit > 0 && h.onPressure != nil && h.live.Load()+int64(totalSize) > h.limit {
		// The reclamation pass may run right here, between the caller's
		// bounds check and payload setup. That is safe: the new object is
		// unreachable until Create returns it.
		log.Debugf("heap: live %s over limit %s, running pressure hook", datasize.Bytes(h.live.Load()), datasize.Bytes(h.limit))
		h.onPressure()
	}

	o := &Object{
		kind:  kind,
		proto: proto,
	}
	o.refs.Store(1)
	o.data, o.recycled = h.allocPayload(int(totalSize - HeaderSize))
	if proto != nil {
		h.Retain(proto)
	}
	h.live.Add(int64(totalSize))
	h.objects.Inc()
	return o
}

// allocPayload returns n zeroed bytes, recycled from a size-class pool when
// n is small enough.
func (h *Heap) allocPayload(n int) ([]byte, *bufpool.Buffer) {
	if n == 0 {
		return nil, nil
	}
	for i, class := range poolClasses {
		if n <= class {
			buf := h.pools[i].Get()
			data := buf.Data[:n]
			// Recycled storage holds whatever the previous owner wrote.
			// A new payload must never expose it.
			for j := range data {
				data[j] = 0
			}
			return data, buf
		}
	}
	return make([]byte, n), nil
}

// Retain adds one reference to o and returns it.
func (h *Heap) Retain(o *Object) *Object {
	o.refs.Inc()
	return o
}

// Release gives up one reference to o, destroying it when none remain.
// Destroying releases the prototype reference and recycles the payload, so
// the payload is invalid as soon as the last reference is gone.
func (h *Heap) Release(o *Object) {
	if o == nil {
		panic("heap: release of nil object")
	}
	refs := o.refs.Dec()
	switch {
	case refs > 0:
		return
	case refs < 0:
		panic(fmt.Sprintf("heap: release of destroyed %s object", o.kind))
	}

	h.live.Sub(o.totalSize())
	h.objects.Dec()
	log.Debugf("heap: destroyed %s object, %s live", o.kind, datasize.Bytes(h.live.Load()))
	if o.recycled != nil {
		o.recycled.Done()
		o.recycled = nil
	}
	o.data = nil
	if proto := o.proto; proto != nil {
		o.proto = nil
		h.Release(proto)
	}
}

// Stats is a point-in-time snapshot of heap usage.
type Stats struct {
	Live    datasize.Size
	Objects int64
}

func (h *Heap) Stats() Stats {
	return Stats{
		Live:    datasize.Bytes(h.live.Load()),
		Objects: h.objects.Load(),
	}
}
