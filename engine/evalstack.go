package engine

import "golang.org/x/exp/slices"

// EvaluationStack is a per-frame operand stack (spec section 4.5). Index 0
// is always the top. Every mutation that adds or removes an occurrence of a
// value notifies the shared ReferenceCounter, mirroring the teacher's own
// discipline of routing every container mutation through one choke point
// (lang/machine/list.go's append/insert/delete all go through a single
// bounds-checked helper).
type EvaluationStack struct {
	items []StackItem
	rc    *ReferenceCounter
}

// NewEvaluationStack returns an empty stack bound to rc.
func NewEvaluationStack(rc *ReferenceCounter) *EvaluationStack {
	return &EvaluationStack{rc: rc}
}

// Len returns the number of items currently on the stack.
func (s *EvaluationStack) Len() int { return len(s.items) }

// Push places v on top of the stack.
func (s *EvaluationStack) Push(v StackItem) {
	s.items = slices.Insert(s.items, 0, v)
	s.rc.AddStackReference(v, 1)
}

// Pop removes and returns the top item.
func (s *EvaluationStack) Pop() (StackItem, error) {
	v, err := s.Peek(0)
	if err != nil {
		return nil, err
	}
	s.items = s.items[1:]
	s.rc.RemoveStackReference(v, 1)
	return v, nil
}

// Peek returns the item at distance i from the top (0 = top) without
// removing it.
func (s *EvaluationStack) Peek(i int) (StackItem, error) {
	if i < 0 || i >= len(s.items) {
		return nil, newFault(StackOverflow, "peek(%d): stack has %d items", i, len(s.items))
	}
	return s.items[i], nil
}

// Insert places v at distance i from the top, pushing items at and above i
// down by one (i=0 behaves like Push).
func (s *EvaluationStack) Insert(i int, v StackItem) error {
	if i < 0 || i > len(s.items) {
		return newFault(StackOverflow, "insert(%d): stack has %d items", i, len(s.items))
	}
	s.items = slices.Insert(s.items, i, v)
	s.rc.AddStackReference(v, 1)
	return nil
}

// Remove deletes and returns the item at distance i from the top.
func (s *EvaluationStack) Remove(i int) (StackItem, error) {
	v, err := s.Peek(i)
	if err != nil {
		return nil, err
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.rc.RemoveStackReference(v, 1)
	return v, nil
}

// Reverse reverses the order of the top n items.
func (s *EvaluationStack) Reverse(n int) error {
	if n < 0 || n > len(s.items) {
		return newFault(InvalidParameter, "reverse(%d): stack has %d items", n, len(s.items))
	}
	slices.Reverse(s.items[:n])
	return nil
}

// Clear empties the stack.
func (s *EvaluationStack) Clear() {
	for _, v := range s.items {
		s.rc.RemoveStackReference(v, 1)
	}
	s.items = nil
}

// MoveTo transfers the top n items to other, preserving order and leaving
// total reference counts unchanged (the items simply belong to a different
// stack afterward).
func (s *EvaluationStack) MoveTo(other *EvaluationStack, n int) error {
	if n < 0 || n > len(s.items) {
		return newFault(InvalidParameter, "move_to(%d): stack has %d items", n, len(s.items))
	}
	moved := append([]StackItem(nil), s.items[:n]...)
	s.items = s.items[n:]
	other.items = append(moved, other.items...)
	return nil
}

// CopyTo copies the top n items to other, taking a fresh stack reference on
// each (the items now have two independent occurrences).
func (s *EvaluationStack) CopyTo(other *EvaluationStack, n int) error {
	if n < 0 || n > len(s.items) {
		return newFault(InvalidParameter, "copy_to(%d): stack has %d items", n, len(s.items))
	}
	copied := append([]StackItem(nil), s.items[:n]...)
	other.items = append(copied, other.items...)
	for _, v := range copied {
		s.rc.AddStackReference(v, 1)
	}
	return nil
}

// Items returns the stack contents, top-first. Callers must not modify it.
func (s *EvaluationStack) Items() []StackItem { return s.items }
