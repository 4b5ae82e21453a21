package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAssertFailureIsCatchable mirrors TestScenarioTryCatchThrow: a failing
// bare Assert must unwind into a surrounding catch block just like Throw and
// AssertMsg (spec section 4.9 groups Throw/AbortMsg/Assert(Msg) together as
// unwinder-eligible), not fault the engine the way bare Abort does.
func TestAssertFailureIsCatchable(t *testing.T) {
	a := newAsm()
	a.tryL("catch", "")
	a.op(PushFalse).op(Assert)
	a.jmpL(JmpL, "end")
	a.label("catch")
	a.op(Ret)
	a.label("end")
	a.op(Ret)

	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateHalt, e.State())
	items := e.ResultStack().Items()
	require.Len(t, items, 1)
	bs, ok := items[0].(*ByteString)
	require.True(t, ok, "a caught failing Assert must push a ByteString message, got %T", items[0])
	require.Equal(t, "assertion failed", string(bs.b))
}

// TestAssertMsgFailureIsCatchable is the existing-behavior sibling of the
// above: AssertMsg's own message is what a catch block observes.
func TestAssertMsgFailureIsCatchable(t *testing.T) {
	a := newAsm()
	a.tryL("catch", "")
	a.op(PushFalse)
	a.data([]byte("nope"))
	a.op(AssertMsg)
	a.jmpL(JmpL, "end")
	a.label("catch")
	a.op(Ret)
	a.label("end")
	a.op(Ret)

	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateHalt, e.State())
	items := e.ResultStack().Items()
	require.Len(t, items, 1)
	bs, ok := items[0].(*ByteString)
	require.True(t, ok)
	require.Equal(t, "nope", string(bs.b))
}

// TestNopIsInert confirms Nop (supplemented from the canonical opcode table
// in _examples/original_source/src/vm/op_code.rs, byte 0x21) only advances
// the instruction pointer and otherwise changes nothing.
func TestNopIsInert(t *testing.T) {
	a := newAsm().op(Push1).op(Nop).op(Nop).op(Ret)
	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateHalt, e.State())
	items := e.ResultStack().Items()
	require.Len(t, items, 1)
	i, ok := items[0].(*Integer)
	require.True(t, ok)
	require.Equal(t, int64(1), i.Big().Int64())
}

// TestAbortIsUncatchable confirms bare Abort is still a terminal fault even
// inside a try region, unlike Assert/AssertMsg/Throw/AbortMsg.
func TestAbortIsUncatchable(t *testing.T) {
	a := newAsm()
	a.tryL("catch", "")
	a.op(Abort)
	a.jmpL(JmpL, "end")
	a.label("catch")
	a.op(Ret)
	a.label("end")
	a.op(Ret)

	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateFault, e.State())
}
