package heap

import (
	"fmt"
)

// BuiltinID names one of the heap's shared builtin objects.
type BuiltinID int

const (
	BuiltinObjectPrototype BuiltinID = iota
	BuiltinArrayBufferPrototype
	builtinCount
)

func (id BuiltinID) String() string {
	switch id {
	case BuiltinObjectPrototype:
		return "Object.prototype"
	case BuiltinArrayBufferPrototype:
		return "ArrayBuffer.prototype"
	default:
		return fmt.Sprintf("builtin(%d)", int(id))
	}
}

// Builtin returns the shared builtin object for id, creating it on first
// use. The returned reference is retained for the caller, who must release
// it; the heap keeps its own reference so builtins live as long as the heap.
func (h *Heap) Builtin(id BuiltinID) *Object {
	if id < 0 || id >= builtinCount {
		panic(fmt.Sprintf("heap: unknown builtin %d", int(id)))
	}
	o := h.builtins[id]
	if o == nil {
		var proto *Object
		if id != BuiltinObjectPrototype {
			proto = h.Builtin(BuiltinObjectPrototype)
			defer h.Release(proto)
		}
		o = h.Create(proto, HeaderSize, KindPlain)
		h.builtins[id] = o
	}
	return h.Retain(o)
}
