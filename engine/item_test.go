package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// itemComparer lets cmp.Diff compare StackItem values structurally where
// testify's plain require.Equal would instead compare Go pointer identity
// for compound kinds — needed because DeepCopy intentionally returns a
// distinct object with the same shape (spec section 4.3).
var itemComparer = cmp.Comparer(func(x, y StackItem) bool {
	eq, err := Equals(x, y, DefaultLimits.MaxComparableSize)
	return err == nil && eq
})

func TestDeepCopyBuffer(t *testing.T) {
	b := NewBufferFromBytes([]byte{1, 2, 3})

	mutable := DeepCopy(b, false).(*Buffer)
	require.Equal(t, []byte{1, 2, 3}, mutable.b)
	mutable.b[0] = 9
	require.Equal(t, byte(1), b.b[0], "mutating the copy must not affect the source")

	frozen := DeepCopy(b, true)
	bs, ok := frozen.(*ByteString)
	require.True(t, ok, "as_immutable copy of a Buffer must be a ByteString")
	require.Equal(t, []byte{1, 2, 3}, bs.b)
}

func TestDeepCopyPreservesSharingAndCycles(t *testing.T) {
	inner := NewArray(nil)
	outer := NewArray([]StackItem{inner, inner})
	require.NoError(t, inner.Append(outer)) // outer -> inner -> outer cycle

	cp := DeepCopy(outer, false).(*Array)
	require.Equal(t, 2, cp.Len())
	require.Same(t, cp.Index(0), cp.Index(1), "both references to inner must copy to the same object")

	innerCopy := cp.Index(0).(*Array)
	require.Equal(t, 1, innerCopy.Len())
	require.Same(t, cp, innerCopy.Index(0), "the cycle back to outer must close over the copy, not recurse forever")
}

func TestDeepCopyImmutableFreezesStructsAndArrays(t *testing.T) {
	s := NewStruct([]StackItem{NewIntegerInt64(1)})
	cp := DeepCopy(s, true).(*Struct)
	require.True(t, cp.ReadOnly())
	require.Error(t, cp.SetIndex(0, NewIntegerInt64(2)))

	arr := NewArray([]StackItem{NewIntegerInt64(1)})
	arrCp := DeepCopy(arr, true).(*Array)
	require.True(t, arrCp.ReadOnly())
	require.Error(t, arrCp.Append(NewIntegerInt64(2)))
}

func TestStructEqualityIsReflexiveSymmetricTransitive(t *testing.T) {
	a := NewStruct([]StackItem{NewIntegerInt64(1), NewByteString([]byte("x"))})
	b := NewStruct([]StackItem{NewIntegerInt64(1), NewByteString([]byte("x"))})
	c := NewStruct([]StackItem{NewIntegerInt64(1), NewByteString([]byte("x"))})

	eqAB, err := Equals(a, b, DefaultLimits.MaxComparableSize)
	require.NoError(t, err)
	eqBA, err := Equals(b, a, DefaultLimits.MaxComparableSize)
	require.NoError(t, err)
	eqBC, err := Equals(b, c, DefaultLimits.MaxComparableSize)
	require.NoError(t, err)
	eqAC, err := Equals(a, c, DefaultLimits.MaxComparableSize)
	require.NoError(t, err)

	require.True(t, eqAB)
	require.Equal(t, eqAB, eqBA, "equality must be symmetric")
	require.True(t, eqBC)
	require.True(t, eqAC, "equality must be transitive")

	eqSelf, err := Equals(a, a, DefaultLimits.MaxComparableSize)
	require.NoError(t, err)
	require.True(t, eqSelf, "equality must be reflexive")

	if diff := cmp.Diff(a, b, itemComparer); diff != "" {
		t.Errorf("structurally identical structs should cmp.Diff as equal (-a +b):\n%s", diff)
	}
}

func TestArrayAndMapCompareByIdentityNotStructure(t *testing.T) {
	a1 := NewArray([]StackItem{NewIntegerInt64(1)})
	a2 := NewArray([]StackItem{NewIntegerInt64(1)})

	eq, err := Equals(a1, a2, DefaultLimits.MaxComparableSize)
	require.NoError(t, err)
	require.False(t, eq, "two distinct Arrays with identical contents are not equal")

	eqSelf, err := Equals(a1, a1, DefaultLimits.MaxComparableSize)
	require.NoError(t, err)
	require.True(t, eqSelf)
}

func TestConvertToIsIdempotentOnCurrentType(t *testing.T) {
	vals := []StackItem{
		Boolean(true),
		NewIntegerInt64(42),
		NewByteString([]byte("hi")),
		NewBufferFromBytes([]byte{1, 2}),
	}
	for _, v := range vals {
		cp, err := ConvertTo(v, v.Type())
		require.NoError(t, err)
		require.Equal(t, v.Type(), cp.Type())
	}
}

func TestConvertIntegerByteStringBufferRoundTrip(t *testing.T) {
	i := NewIntegerInt64(-5)

	bs, err := ConvertTo(i, TypeByteString)
	require.NoError(t, err)
	buf, err := ConvertTo(bs, TypeBuffer)
	require.NoError(t, err)
	back, err := ConvertTo(buf, TypeInteger)
	require.NoError(t, err)

	require.Equal(t, int64(-5), back.(*Integer).Big().Int64())
}
