package engine

import "fmt"

// Array is an ordered, mutable sequence of StackItems compared by identity
// (spec section 4.3: "Array... compare by identity, not structure"). It is
// adapted from the teacher's *Array (lang/types/array.go): same
// append/index/clear shape, generalized with the read-only flag spec
// section 4.3 requires instead of the teacher's Freeze-everything-reachable
// model (read-only here is a single flag checked by mutators, not a
// transitively-propagating freeze).
type Array struct {
	items    []StackItem
	readOnly bool
}

// NewArray returns an Array wrapping items. Callers must not subsequently
// hold onto and mutate the slice outside the engine.
func NewArray(items []StackItem) *Array { return &Array{items: items} }

func (a *Array) Type() StackItemType { return TypeArray }
func (a *Array) String() string      { return fmt.Sprintf("Array(%d)", len(a.items)) }
func (a *Array) Len() int            { return len(a.items) }
func (a *Array) Index(i int) StackItem { return a.items[i] }
func (a *Array) ReadOnly() bool      { return a.readOnly }
func (a *Array) SetReadOnly()        { a.readOnly = true }

func (a *Array) checkMutable() error {
	if a.readOnly {
		return newFault(InvalidOperation, "array is read-only")
	}
	return nil
}

func (a *Array) SetIndex(i int, v StackItem) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(a.items) {
		return newFault(InvalidParameter, "index %d out of range", i)
	}
	a.items[i] = valueCopyForInsert(v)
	return nil
}

func (a *Array) Append(v StackItem) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	a.items = append(a.items, valueCopyForInsert(v))
	return nil
}

func (a *Array) Remove(i int) error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(a.items) {
		return newFault(InvalidParameter, "index %d out of range", i)
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
	return nil
}

func (a *Array) Clear() error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	a.items = a.items[:0]
	return nil
}

func (a *Array) Reverse() error {
	if err := a.checkMutable(); err != nil {
		return err
	}
	for i, j := 0, len(a.items)-1; i < j; i, j = i+1, j-1 {
		a.items[i], a.items[j] = a.items[j], a.items[i]
	}
	return nil
}

// Struct is an ordered sequence of StackItems with value-equality semantics
// and value-copy-on-clone (spec section 4.3). Structurally it is the same
// shape as Array; the only behavioral difference lives in equals.go
// (deep value equality) and valueCopyForInsert below (a Struct is deep-copied
// whenever it is inserted into a container).
type Struct struct {
	items    []StackItem
	readOnly bool
}

func NewStruct(items []StackItem) *Struct { return &Struct{items: items} }

func (s *Struct) Type() StackItemType    { return TypeStruct }
func (s *Struct) String() string        { return fmt.Sprintf("Struct(%d)", len(s.items)) }
func (s *Struct) Len() int              { return len(s.items) }
func (s *Struct) Index(i int) StackItem { return s.items[i] }
func (s *Struct) ReadOnly() bool        { return s.readOnly }
func (s *Struct) SetReadOnly()          { s.readOnly = true }

func (s *Struct) checkMutable() error {
	if s.readOnly {
		return newFault(InvalidOperation, "struct is read-only")
	}
	return nil
}

func (s *Struct) SetIndex(i int, v StackItem) error {
	if err := s.checkMutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.items) {
		return newFault(InvalidParameter, "index %d out of range", i)
	}
	s.items[i] = valueCopyForInsert(v)
	return nil
}

func (s *Struct) Append(v StackItem) error {
	if err := s.checkMutable(); err != nil {
		return err
	}
	s.items = append(s.items, valueCopyForInsert(v))
	return nil
}

func (s *Struct) Remove(i int) error {
	if err := s.checkMutable(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.items) {
		return newFault(InvalidParameter, "index %d out of range", i)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *Struct) Clear() error {
	if err := s.checkMutable(); err != nil {
		return err
	}
	s.items = s.items[:0]
	return nil
}

func (s *Struct) Reverse() error {
	if err := s.checkMutable(); err != nil {
		return err
	}
	for i, j := 0, len(s.items)-1; i < j; i, j = i+1, j-1 {
		s.items[i], s.items[j] = s.items[j], s.items[i]
	}
	return nil
}

// valueCopyForInsert value-copies v if it is a Struct (spec section 9,
// "Clone-on-insert for Struct"), otherwise returns v unchanged.
func valueCopyForInsert(v StackItem) StackItem {
	if st, ok := v.(*Struct); ok {
		return DeepCopy(st, false)
	}
	return v
}
