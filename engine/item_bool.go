package engine

import "fmt"

// Boolean is a primitive true/false StackItem. Canonical byte encodings are
// [1] for true and [0] for false (spec section 3).
type Boolean bool

func (Boolean) primitiveMarker() {}

func (b Boolean) Type() StackItemType { return TypeBoolean }
func (b Boolean) String() string      { return fmt.Sprintf("Boolean(%t)", bool(b)) }

var (
	_ Primitive = Boolean(false)
)
