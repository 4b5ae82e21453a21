package engine

import "fmt"

// StackItemType identifies the runtime tag of a StackItem. The set of tags
// is closed and fixed by the bytecode (spec section 9, Design Notes): there
// is no open inheritance, only a type switch dispatching on this tag.
type StackItemType byte

const (
	TypeAny StackItemType = iota
	TypeBoolean
	TypeInteger
	TypeByteString
	TypeBuffer
	TypePointer
	TypeArray
	TypeStruct
	TypeMap
	TypeInteropInterface

	stackItemTypeMax
)

func (t StackItemType) valid() bool { return t < stackItemTypeMax }

func (t StackItemType) String() string {
	switch t {
	case TypeAny:
		return "Any"
	case TypeBoolean:
		return "Boolean"
	case TypeInteger:
		return "Integer"
	case TypeByteString:
		return "ByteString"
	case TypeBuffer:
		return "Buffer"
	case TypePointer:
		return "Pointer"
	case TypeArray:
		return "Array"
	case TypeStruct:
		return "Struct"
	case TypeMap:
		return "Map"
	case TypeInteropInterface:
		return "InteropInterface"
	default:
		return fmt.Sprintf("StackItemType(%d)", byte(t))
	}
}

// StackItem is the tagged polymorphic value every opcode manipulates. Unlike
// the teacher's Value interface — which is deliberately open, so that
// embedders can add new Callable/Mapping/etc. kinds — StackItem's universe
// is closed: the ten concrete types below are the only legal dynamic types,
// and every universal operation (Truth, Equal, Convert, DeepCopy...) is a
// free function in this package that type-switches on the tag rather than a
// method every variant must implement, exactly as spec section 9 prescribes.
type StackItem interface {
	// Type reports the item's StackItemType tag.
	Type() StackItemType
	// String returns a short debug representation; it is not the VM's
	// "convert to ByteString" operation (see ConvertTo for that).
	String() string
}

// Primitive is implemented by the four primitive kinds: Boolean, Integer,
// ByteString and Buffer. It exists purely as a documentation/assertion
// device; code should type-switch on StackItem rather than call through
// this interface.
type Primitive interface {
	StackItem
	primitiveMarker()
}

// isCompound reports whether v is one of Array, Struct or Map — the
// compound subclass of spec section 3.
func isCompound(v StackItem) bool {
	switch v.(type) {
	case *Array, *Struct, *Map:
		return true
	default:
		return false
	}
}

// isTracked reports whether v participates in the reference-counter graph:
// compounds and Buffer, per spec section 3 ("Only compound values and
// Buffer participate... they are the only mutable/shareable containers").
func isTracked(v StackItem) bool {
	switch v.(type) {
	case *Array, *Struct, *Map, *Buffer:
		return true
	default:
		return false
	}
}

// children returns the direct StackItem edges held by a compound value, used
// by the reference counter's sweep (tarjanSCC, markAlive, collect) to follow
// object-reference edges. Only tracked children (compounds and Buffers) matter to
// the counter, but children returns all of them; the counter itself filters.
func children(v StackItem) []StackItem {
	switch c := v.(type) {
	case *Array:
		return c.items
	case *Struct:
		return c.items
	case *Map:
		out := make([]StackItem, 0, 2*len(c.entries))
		c.forEach(func(k, v StackItem) {
			out = append(out, k, v)
		})
		return out
	default:
		return nil
	}
}

// Truth implements spec section 4.3's truthiness table.
func Truth(v StackItem) bool {
	switch x := v.(type) {
	case nullType:
		return false
	case Boolean:
		return bool(x)
	case *Integer:
		return x.v.Sign() != 0
	case *ByteString:
		return anyNonZero(x.b)
	case *Buffer:
		return anyNonZero(x.b)
	default:
		// compounds and InteropInterface are always truthy
		return true
	}
}

func anyNonZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return true
		}
	}
	return false
}
