package engine

import (
	"fmt"
	"unicode/utf8"
)

// ByteString is an immutable byte sequence StackItem.
type ByteString struct {
	b []byte
}

func (*ByteString) primitiveMarker() {}

func (s *ByteString) Type() StackItemType { return TypeByteString }
func (s *ByteString) String() string      { return fmt.Sprintf("ByteString(%d bytes)", len(s.b)) }

// Bytes returns the underlying byte slice. Callers must not modify it.
func (s *ByteString) Bytes() []byte { return s.b }

// NewByteString wraps b as an immutable ByteString, copying the input so
// later mutation by the caller cannot leak through.
func NewByteString(b []byte) *ByteString {
	cp := append([]byte(nil), b...)
	return &ByteString{b: cp}
}

// utf8String returns the UTF-8 decoding of the item's bytes, per get_string.
func utf8String(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", newFault(InvalidType, "not valid utf-8")
	}
	return string(b), nil
}

// Buffer is a mutable byte sequence StackItem. It is tracked by the
// reference counter (spec section 3: "Only compound values and Buffer
// participate in the reference-counter graph").
type Buffer struct {
	b []byte
}

func (*Buffer) primitiveMarker() {}

func (b *Buffer) Type() StackItemType { return TypeBuffer }
func (b *Buffer) String() string      { return fmt.Sprintf("Buffer(%d bytes)", len(b.b)) }

// Bytes returns the underlying byte slice. Callers that mutate it must go
// through the splice opcodes or otherwise respect buffer semantics; this
// accessor is for read-only use by the engine's splice handlers.
func (b *Buffer) Bytes() []byte { return b.b }

// NewBuffer allocates a zeroed Buffer of n bytes.
func NewBuffer(n int) *Buffer { return &Buffer{b: make([]byte, n)} }

// NewBufferFromBytes wraps a copy of b as a mutable Buffer.
func NewBufferFromBytes(b []byte) *Buffer {
	cp := append([]byte(nil), b...)
	return &Buffer{b: cp}
}

// rawSlice returns the raw bytes backing a ByteString or Buffer (Boolean and
// Integer excluded: their byte forms are encodings, handled separately by
// GetSlice).
func rawSlice(v StackItem) ([]byte, bool) {
	switch x := v.(type) {
	case *ByteString:
		return x.b, true
	case *Buffer:
		return x.b, true
	default:
		return nil, false
	}
}

// GetSlice implements get_slice: primitives yield their backing bytes (for
// Integer, its little-endian two's-complement encoding); compounds and
// InteropInterface fail.
func GetSlice(v StackItem) ([]byte, error) {
	switch x := v.(type) {
	case *ByteString:
		return x.b, nil
	case *Buffer:
		return x.b, nil
	case *Integer:
		return integerToBytes(x.v), nil
	case Boolean:
		if x {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	default:
		return nil, newFault(InvalidType, "%s has no byte representation", v.Type())
	}
}

// GetString implements get_string: the UTF-8 decoding of GetSlice(v).
func GetString(v StackItem) (string, error) {
	b, err := GetSlice(v)
	if err != nil {
		return "", err
	}
	return utf8String(b)
}

// GetInteger implements get_integer: primitives promote to a big integer;
// compounds and InteropInterface fail.
func GetInteger(v StackItem) (*Integer, error) {
	switch x := v.(type) {
	case *Integer:
		return x, nil
	case Boolean:
		if x {
			return NewIntegerInt64(1), nil
		}
		return NewIntegerInt64(0), nil
	case *ByteString:
		return integerFromSlice(x.b)
	case *Buffer:
		return integerFromSlice(x.b)
	default:
		return nil, newFault(InvalidType, "%s is not convertible to integer", v.Type())
	}
}

func integerFromSlice(b []byte) (*Integer, error) {
	if len(b) > maxIntegerBytes {
		return nil, newFault(InvalidType, "byte sequence exceeds %d bytes", maxIntegerBytes)
	}
	return &Integer{v: integerFromBytes(b)}, nil
}
