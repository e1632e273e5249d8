package heap

// Kind discriminates the variant of an Object. It is recorded exactly once,
// when the object is created, and is how collaborators recover an object's
// true shape from a generic handle.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlain
	KindArrayBuffer
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindArrayBuffer:
		return "ArrayBuffer"
	default:
		return "none"
	}
}
