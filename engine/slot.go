package engine

// Slot is a fixed-length indexed array of StackItems used for local
// variables, call arguments, or static fields (spec section 4.6). Grounded
// on the teacher's fixed-arity register file in lang/machine/frame.go
// (Frame.locals), generalized with reference-counter integration since
// this VM's slots, unlike the teacher's locals, are visible to the cyclic
// garbage collector.
type Slot struct {
	items []StackItem
	rc    *ReferenceCounter
}

// NewSlotOfSize returns a Slot of n items, all initialized to Null.
func NewSlotOfSize(n int, rc *ReferenceCounter) *Slot {
	items := make([]StackItem, n)
	for i := range items {
		items[i] = Null
	}
	return &Slot{items: items, rc: rc}
}

// NewSlotFromItems returns a Slot wrapping items, taking an initial stack
// reference on each.
func NewSlotFromItems(items []StackItem, rc *ReferenceCounter) *Slot {
	s := &Slot{items: append([]StackItem(nil), items...), rc: rc}
	for _, v := range s.items {
		rc.AddStackReference(v, 1)
	}
	return s
}

// Len returns the slot's fixed length.
func (s *Slot) Len() int { return len(s.items) }

// Get returns the item at index i.
func (s *Slot) Get(i int) (StackItem, error) {
	if i < 0 || i >= len(s.items) {
		return nil, newFault(InvalidParameter, "slot index %d out of range", i)
	}
	return s.items[i], nil
}

// Set stores v at index i, releasing the reference on the old value and
// taking one on the new.
func (s *Slot) Set(i int, v StackItem) error {
	if i < 0 || i >= len(s.items) {
		return newFault(InvalidParameter, "slot index %d out of range", i)
	}
	old := s.items[i]
	s.items[i] = v
	s.rc.AddStackReference(v, 1)
	s.rc.RemoveStackReference(old, 1)
	return nil
}

// ClearReferences releases every reference held by the slot. Called when a
// frame unloads (spec section 4.6).
func (s *Slot) ClearReferences() {
	for _, v := range s.items {
		s.rc.RemoveStackReference(v, 1)
	}
}
