package engine

import "fmt"

// Pointer is a stack item naming an offset within a specific Script,
// used by indirect calls (CallA). Two pointers are equal iff they share the
// same script identity and offset.
type Pointer struct {
	Script *Script
	Offset int
}

func (p *Pointer) Type() StackItemType { return TypePointer }
func (p *Pointer) String() string      { return fmt.Sprintf("Pointer(%p+%d)", p.Script, p.Offset) }

// InteropInterface is an opaque host object, compared by identity (Go
// pointer/interface equality of the wrapped value).
type InteropInterface struct {
	Value any
}

func (i *InteropInterface) Type() StackItemType { return TypeInteropInterface }
func (i *InteropInterface) String() string      { return fmt.Sprintf("InteropInterface(%v)", i.Value) }

// NewInteropInterface wraps an arbitrary host value as a StackItem.
func NewInteropInterface(v any) *InteropInterface { return &InteropInterface{Value: v} }
