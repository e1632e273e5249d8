// Package value models host language values as a tagged union. A Value is
// cheap to copy and carries no ownership: object lifetimes belong to the
// heap that created them.
package value

import (
	"github.com/hack-pad/arraybuffer/heap"
)

type Type uint8

const (
	TypeUndefined Type = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	default:
		return "undefined"
	}
}

type Value struct {
	typ Type
	num float64
	str string
	obj *heap.Object
}

func Undefined() Value {
	return Value{typ: TypeUndefined}
}

func Null() Value {
	return Value{typ: TypeNull}
}

func Bool(b bool) Value {
	v := Value{typ: TypeBoolean}
	if b {
		v.num = 1
	}
	return v
}

func Number(f float64) Value {
	return Value{typ: TypeNumber, num: f}
}

func String(s string) Value {
	return Value{typ: TypeString, str: s}
}

func Object(o *heap.Object) Value {
	return Value{typ: TypeObject, obj: o}
}

func (v Value) Type() Type {
	return v.typ
}

func (v Value) IsObject() bool {
	return v.typ == TypeObject
}

// Num returns the numeric payload. Meaningful only for TypeNumber.
func (v Value) Num() float64 {
	return v.num
}

// Bool returns the boolean payload. Meaningful only for TypeBoolean.
func (v Value) Bool() bool {
	return v.num != 0
}

// Str returns the string payload. Meaningful only for TypeString.
func (v Value) Str() string {
	return v.str
}

// Obj returns the object handle, or nil when v is not an object.
func (v Value) Obj() *heap.Object {
	return v.obj
}
