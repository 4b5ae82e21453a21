package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// run assembles script, executes it to completion and returns the engine
// for inspection.
func run(t *testing.T, script []byte, limits Limits) *Engine {
	t.Helper()
	s, err := NewScript(script, false)
	require.NoError(t, err)
	e := NewEngine(limits)
	require.NoError(t, e.LoadScript(s, -1))
	e.Execute()
	return e
}

// Scenario 1 (spec section 8): Push2 . Push3 . Add . Ret -> Integer(5), Halt.
func TestScenarioAdd(t *testing.T) {
	a := newAsm().op(Push2).op(Push3).op(Add).op(Ret)
	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateHalt, e.State())
	items := e.ResultStack().Items()
	require.Len(t, items, 1)
	i, ok := items[0].(*Integer)
	require.True(t, ok)
	require.Equal(t, int64(5), i.Big().Int64())
}

// Scenario 2 (spec section 8): a division by zero Faults rather than
// panicking. Div computes x1/x2 where x1 is pushed first (dividend) and
// x2 second (divisor, on top at the time of the op) -- so the dividend is
// pushed before the divisor.
func TestScenarioDivByZero(t *testing.T) {
	a := newAsm().op(Push1).op(Push0).op(Div).op(Ret)
	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateFault, e.State())
	require.ErrorIs(t, e.FaultReason(), DivisionByZero)
}

// Scenario 3: NewArray0 . Dup . Push7 . Append . Push0 . PickItem -> Integer(7).
func TestScenarioArrayAppendPickItem(t *testing.T) {
	a := newAsm().op(NewArray0).op(Dup).op(Push7).op(Append).op(Push0).op(PickItem).op(Ret)
	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateHalt, e.State())
	items := e.ResultStack().Items()
	require.Len(t, items, 1)
	i, ok := items[0].(*Integer)
	require.True(t, ok)
	require.Equal(t, int64(7), i.Big().Int64())
}

// Scenario 4: TryL(catch, finally=absent) . PushData1 "err" . Throw .
// JmpL end . {catch:} Ret . {end:} Ret -> on Throw, jumps to catch with
// ByteString("err") pushed, then Ret -> Halt.
func TestScenarioTryCatchThrow(t *testing.T) {
	a := newAsm()
	a.tryL("catch", "")
	a.data([]byte("err"))
	a.op(Throw)
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
	require.Equal(t, "err", string(bs.b))
}

// Scenario 5: a self-referential Array becomes unreachable once dropped
// from every evaluation stack, and the next check_zero_referred sweep
// reclaims it (total_references returns to baseline).
func TestScenarioCycleCollection(t *testing.T) {
	a := newAsm().op(NewArray0).op(Dup).op(Dup).op(Append).op(Drop)
	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateHalt, e.State())
	require.Equal(t, 0, e.ReferenceCounter().TotalReferences())
}

// Scenario 6: two structurally identical Structs (each with an identical
// nested Struct), built independently via PackStruct, compare equal.
func TestScenarioStructEquality(t *testing.T) {
	buildOuter := func(a *asm) {
		a.fixed(PushInt8, 20, 1)
		a.fixed(PushInt8, 10, 1)
		a.op(Push2)
		a.op(PackStruct) // inner = Struct{10, 20}
		a.op(Push1)
		a.op(PackStruct) // outer = Struct{inner}
	}

	a := newAsm()
	buildOuter(a)
	buildOuter(a)
	a.op(Equal)
	a.op(Ret)

	e := run(t, a.bytes(), Limits{})

	require.Equal(t, StateHalt, e.State())
	items := e.ResultStack().Items()
	require.Len(t, items, 1)
	require.Equal(t, Boolean(true), items[0])
}
