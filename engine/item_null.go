package engine

// nullType is the type of Null. There is exactly one value, Null itself; it
// is represented as an empty struct (not a pointer) so that it compares
// equal to itself by value, the same pattern the teacher uses for its NilType
// (lang/machine/nil.go), generalized from "Nil" to "Null" for this VM's
// vocabulary.
type nullType struct{}

// Null is the absence-of-value StackItem. It is distinct from Boolean(false)
// and Integer(0).
var Null StackItem = nullType{}

func (nullType) Type() StackItemType { return TypeAny }
func (nullType) String() string      { return "Null" }
