package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resultInt(t *testing.T, e *Engine) int64 {
	t.Helper()
	require.Equal(t, StateHalt, e.State(), "fault: %v", e.FaultReason())
	items := e.ResultStack().Items()
	require.Len(t, items, 1)
	i, ok := items[0].(*Integer)
	require.True(t, ok, "expected Integer, got %T", items[0])
	return i.Big().Int64()
}

func resultBool(t *testing.T, e *Engine) bool {
	t.Helper()
	require.Equal(t, StateHalt, e.State(), "fault: %v", e.FaultReason())
	items := e.ResultStack().Items()
	require.Len(t, items, 1)
	b, ok := items[0].(Boolean)
	require.True(t, ok, "expected Boolean, got %T", items[0])
	return bool(b)
}

func TestArithFamily(t *testing.T) {
	t.Run("sub", func(t *testing.T) {
		a := newAsm().op(Push5).op(Push3).op(Sub).op(Ret)
		require.Equal(t, int64(2), resultInt(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("mul", func(t *testing.T) {
		a := newAsm().op(Push3).op(Push4).op(Mul).op(Ret)
		require.Equal(t, int64(12), resultInt(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("mod", func(t *testing.T) {
		a := newAsm().op(Push7).fixed(PushInt8, 3, 1).op(Mod).op(Ret)
		require.Equal(t, int64(1), resultInt(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("mod by zero faults", func(t *testing.T) {
		a := newAsm().op(Push7).op(Push0).op(Mod).op(Ret)
		e := run(t, a.bytes(), Limits{})
		require.Equal(t, StateFault, e.State())
		require.ErrorIs(t, e.FaultReason(), DivisionByZero)
	})
	t.Run("pow", func(t *testing.T) {
		a := newAsm().op(Push2).op(Push10).op(Pow).op(Ret)
		require.Equal(t, int64(1024), resultInt(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("pow exponent over max_shift faults", func(t *testing.T) {
		a := newAsm().op(Push2).fixed(PushInt16, 1000, 2).op(Pow).op(Ret)
		e := run(t, a.bytes(), Limits{MaxShift: 256})
		require.Equal(t, StateFault, e.State())
		require.ErrorIs(t, e.FaultReason(), InvalidParameter)
	})
	t.Run("sqrt", func(t *testing.T) {
		a := newAsm().fixed(PushInt16, 81, 2).op(Sqrt).op(Ret)
		require.Equal(t, int64(9), resultInt(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("sqrt of negative faults", func(t *testing.T) {
		a := newAsm().fixed(PushInt8, -1, 1).op(Sqrt).op(Ret)
		e := run(t, a.bytes(), Limits{})
		require.Equal(t, StateFault, e.State())
		require.ErrorIs(t, e.FaultReason(), InvalidParameter)
	})
	t.Run("negate and abs", func(t *testing.T) {
		a := newAsm().op(Push5).op(Negate).op(Abs).op(Ret)
		require.Equal(t, int64(5), resultInt(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("inc dec sign", func(t *testing.T) {
		a := newAsm().op(Push5).op(Inc).op(Dec).op(Dec).op(Sign).op(Ret)
		require.Equal(t, int64(1), resultInt(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("shl shr", func(t *testing.T) {
		a := newAsm().op(Push1).fixed(PushInt8, 4, 1).op(Shl).fixed(PushInt8, 1, 1).op(Shr).op(Ret)
		require.Equal(t, int64(8), resultInt(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("modmul", func(t *testing.T) {
		a := newAsm().op(Push5).op(Push4).fixed(PushInt8, 7, 1).op(ModMul).op(Ret)
		require.Equal(t, int64(6), resultInt(t, run(t, a.bytes(), Limits{}))) // (5*4) % 7 == 6
	})
	t.Run("modpow", func(t *testing.T) {
		a := newAsm().op(Push2).op(Push10).fixed(PushInt16, 1000, 2).op(ModPow).op(Ret)
		require.Equal(t, int64(24), resultInt(t, run(t, a.bytes(), Limits{}))) // 2^10 % 1000 == 24
	})
}

func TestLogicFamily(t *testing.T) {
	t.Run("not", func(t *testing.T) {
		a := newAsm().op(PushFalse).op(Not).op(Ret)
		require.True(t, resultBool(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("booland", func(t *testing.T) {
		a := newAsm().op(PushTrue).op(PushFalse).op(BoolAnd).op(Ret)
		require.False(t, resultBool(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("boolor", func(t *testing.T) {
		a := newAsm().op(PushTrue).op(PushFalse).op(BoolOr).op(Ret)
		require.True(t, resultBool(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("within", func(t *testing.T) {
		a := newAsm().op(Push5).op(Push0).op(Push10).op(Within).op(Ret)
		require.True(t, resultBool(t, run(t, a.bytes(), Limits{})))
	})
	t.Run("lt against null is false, not a fault", func(t *testing.T) {
		a := newAsm().op(PushNull).op(Push5).op(Lt).op(Ret)
		e := run(t, a.bytes(), Limits{})
		require.False(t, resultBool(t, e))
	})
	t.Run("min max", func(t *testing.T) {
		a := newAsm().op(Push3).op(Push9).op(Min).op(Ret)
		require.Equal(t, int64(3), resultInt(t, run(t, a.bytes(), Limits{})))
	})
}
