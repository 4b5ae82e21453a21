package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRefCounterStackReferencesMatchOccurrences exercises the invariant of
// spec section 8: "For all values V: stack_references(V) = Σ occurrences on
// all evaluation stacks and slots."
func TestRefCounterStackReferencesMatchOccurrences(t *testing.T) {
	rc := NewReferenceCounter()
	stack := NewEvaluationStack(rc)
	slot := NewSlotOfSize(1, rc)

	a := NewArray(nil)
	stack.Push(a)
	stack.Push(a)
	require.NoError(t, slot.Set(0, a))

	require.Equal(t, 3, rc.StackReferences(a))

	_, err := stack.Pop()
	require.NoError(t, err)
	require.Equal(t, 2, rc.StackReferences(a))

	stack.Clear()
	require.NoError(t, slot.Set(0, Null))
	require.Equal(t, 0, rc.StackReferences(a))
}

// TestRefCounterCollectsSimpleCycle is the reference-counter-level version
// of scenario 5 (spec section 8): a two-node cycle with no external holder
// is collected by the next sweep, but a cycle still reachable from the
// stack survives.
func TestRefCounterCollectsSimpleCycle(t *testing.T) {
	rc := NewReferenceCounter()
	stack := NewEvaluationStack(rc)

	a := NewArray(nil)
	b := NewArray(nil)
	require.NoError(t, a.Append(b))
	rc.AddReference(b, a)
	require.NoError(t, b.Append(a))
	rc.AddReference(a, b)

	stack.Push(a)
	stack.Push(b)

	// Drop both stack references; the a<->b cycle has no remaining root.
	_, err := stack.Pop()
	require.NoError(t, err)
	_, err = stack.Pop()
	require.NoError(t, err)

	require.Equal(t, 0, rc.CheckZeroReferred())
}

// TestRefCounterKeepsCycleReachableFromStack is the mirror case: a cycle
// with one member still referenced from the evaluation stack must survive
// the sweep in full (spec section 4.4: a component is alive if any member
// has an inbound edge from an on-stack component).
func TestRefCounterKeepsCycleReachableFromStack(t *testing.T) {
	rc := NewReferenceCounter()
	stack := NewEvaluationStack(rc)

	a := NewArray(nil)
	b := NewArray(nil)
	require.NoError(t, a.Append(b))
	rc.AddReference(b, a)
	require.NoError(t, b.Append(a))
	rc.AddReference(a, b)

	stack.Push(a) // keep one root alive

	total := rc.CheckZeroReferred()
	require.Greater(t, total, 0)
	require.Equal(t, 1, rc.StackReferences(a))
}

// TestRefCounterPrimitivesAreNotTracked confirms spec section 3's
// "Only compound values and Buffer participate in the reference-counter
// graph" by checking that TotalReferences counts only the pushed Buffer
// and none of Null/Boolean/Integer, which are never tracked at all.
func TestRefCounterPrimitivesAreNotTracked(t *testing.T) {
	rc := NewReferenceCounter()
	stack := NewEvaluationStack(rc)

	stack.Push(Null)
	stack.Push(Boolean(true))
	stack.Push(NewIntegerInt64(7))
	stack.Push(NewBufferFromBytes([]byte{1}))

	require.Equal(t, 1, rc.TotalReferences(), "only the Buffer should be tracked")
}
