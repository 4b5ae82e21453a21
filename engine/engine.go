package engine

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// VMState is the engine's coarse execution state (spec section 4.9).
type VMState int

const (
	StateNone VMState = iota
	StateHalt
	StateFault
	StateBreak
)

func (s VMState) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateHalt:
		return "Halt"
	case StateFault:
		return "Fault"
	case StateBreak:
		return "Break"
	default:
		return "VMState(?)"
	}
}

// Engine is the fetch-decode-dispatch loop plus invocation stack (spec
// section 4.9). Grounded on the teacher's Thread/Frame execution loop in
// lang/machine/machine.go (the exported Exec entry point driving a frame
// stack to completion), generalized with the reference-counted value graph
// and exception-handling protocol this VM's opcode set requires — which the
// teacher's Go-native panic/recover based error handling does not need.
type Engine struct {
	limits Limits
	rc     *ReferenceCounter

	invocationStack []*ExecutionContext
	resultStack     *EvaluationStack

	state              VMState
	uncaughtException StackItem
	faultReason        error

	// Trace, when non-nil, receives one line per dispatched instruction
	// (spec: AMBIENT STACK "Logging / diagnostics").
	Trace io.Writer

	Syscall   SyscallHandler
	LoadToken TokenLoader
}

// NewEngine returns a freshly initialized engine. Zero-valued fields of
// limits fall back to DefaultLimits.
func NewEngine(limits Limits) *Engine {
	rc := NewReferenceCounter()
	return &Engine{
		limits:      limits.withDefaults(),
		rc:          rc,
		resultStack: NewEvaluationStack(rc),
	}
}

// State returns the engine's current VMState.
func (e *Engine) State() VMState { return e.state }

// FaultReason returns the error that caused a Fault, if any.
func (e *Engine) FaultReason() error { return e.faultReason }

// ResultStack returns the stack holding the final result values once the
// engine has halted.
func (e *Engine) ResultStack() *EvaluationStack { return e.resultStack }

// ReferenceCounter exposes the engine's counter, chiefly for tests.
func (e *Engine) ReferenceCounter() *ReferenceCounter { return e.rc }

// Current returns the top (innermost) invocation-stack frame, or nil.
func (e *Engine) Current() *ExecutionContext {
	if len(e.invocationStack) == 0 {
		return nil
	}
	return e.invocationStack[len(e.invocationStack)-1]
}

// LoadScript pushes a fresh entry frame for script onto the invocation
// stack. The entry frame's evaluation stack is the engine's result stack,
// so values remaining after the last Ret are exactly the script's results.
func (e *Engine) LoadScript(script *Script, rvCount int) error {
	if len(e.invocationStack) >= e.limits.MaxInvocationStackSize {
		return newFault(InvocationStackOverflow, "invocation stack exceeds %d", e.limits.MaxInvocationStackSize)
	}
	ctx := &ExecutionContext{
		header: &contextHeader{
			script: script,
			stack:  e.resultStack,
		},
		RVCount: rvCount,
	}
	e.invocationStack = append(e.invocationStack, ctx)
	return nil
}

// pushContext pushes a new frame, enforcing max_invocation_stack_size.
func (e *Engine) pushContext(ctx *ExecutionContext) error {
	if len(e.invocationStack) >= e.limits.MaxInvocationStackSize {
		return newFault(InvocationStackOverflow, "invocation stack exceeds %d", e.limits.MaxInvocationStackSize)
	}
	e.invocationStack = append(e.invocationStack, ctx)
	return nil
}

// popContext removes and returns the top frame, releasing its slot
// references.
func (e *Engine) popContext() *ExecutionContext {
	n := len(e.invocationStack) - 1
	ctx := e.invocationStack[n]
	e.invocationStack = e.invocationStack[:n]
	ctx.Unload()
	return ctx
}

// Execute runs the fetch-decode-dispatch loop until the engine reaches
// Halt or Fault.
func (e *Engine) Execute() VMState {
	for e.state != StateHalt && e.state != StateFault {
		e.step()
	}
	return e.state
}

// step performs one iteration of the per-instruction loop (spec section
// 4.9): empty-invocation-stack check, fetch, pre-check, dispatch,
// post-check, IP advance.
func (e *Engine) step() {
	if len(e.invocationStack) == 0 {
		e.state = StateHalt
		return
	}
	ctx := e.Current()

	ins, err := e.fetch(ctx)
	if err != nil {
		e.fault(err)
		return
	}

	if e.rc.TotalReferences() > e.limits.MaxStackSize {
		e.fault(newFault(StackOverflow, "total references exceed %d", e.limits.MaxStackSize))
		return
	}

	if e.Trace != nil {
		fmt.Fprintf(e.Trace, "%04d %s %s\n", ctx.InstructionPointer, ins.Op, spewDump(ins.Operand))
	}

	ctx.isJumping = false
	if err := e.dispatch(ctx, ins); err != nil {
		e.raise(err)
		if e.state == StateFault {
			return
		}
	}

	if e.state == StateHalt || e.state == StateFault {
		return
	}

	total := e.rc.CheckZeroReferred()
	if total > e.limits.MaxStackSize {
		e.fault(newFault(StackOverflow, "total references exceed %d", e.limits.MaxStackSize))
		return
	}

	if !ctx.isJumping && len(e.invocationStack) > 0 && e.Current() == ctx {
		ctx.InstructionPointer += ins.Length
	}
}

func spewDump(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return spew.Sdump(b)
}

// fetch decodes the instruction at ctx's instruction pointer, defaulting to
// Ret at end-of-script (spec section 4.9).
func (e *Engine) fetch(ctx *ExecutionContext) (Instruction, error) {
	if ctx.InstructionPointer >= ctx.Script().Len() {
		return Instruction{Op: Ret, Offset: ctx.InstructionPointer, Length: 0}, nil
	}
	return ctx.Script().InstructionAt(ctx.InstructionPointer)
}

// fault transitions the engine straight to Fault, bypassing the unwinder
// (used for budget faults and Abort, which are never catchable).
func (e *Engine) fault(err error) {
	e.state = StateFault
	e.faultReason = err
}

// raise classifies err and starts (or continues) the unwinding protocol.
// A *Fault raised from inside an opcode handler is an "engine exception";
// it is catchable only when CatchEngineExceptions is set. A userException
// wraps an explicit StackItem payload (Throw/AbortMsg/Assert/AssertMsg) and is
// always catchable like any other exception.
func (e *Engine) raise(err error) {
	if ab, ok := err.(*abortSignal); ok {
		e.fault(ab.err)
		return
	}
	if ue, ok := err.(*userException); ok {
		e.unwind(ue.value)
		return
	}
	if !e.limits.CatchEngineExceptions {
		e.fault(err)
		return
	}
	e.unwind(NewByteString([]byte(err.Error())))
}

// userException wraps an explicit StackItem thrown by Throw/AbortMsg/
// Assert/AssertMsg, as opposed to a Go error surfaced by an opcode handler.
type userException struct{ value StackItem }

func (u *userException) Error() string { return "exception: " + u.value.String() }

func throwValue(v StackItem) error { return &userException{value: v} }

// abortSignal marks an unconditional, uncatchable termination (bare
// Abort): it always goes straight to Fault, bypassing the
// unwinder regardless of CatchEngineExceptions.
type abortSignal struct{ err error }

func (a *abortSignal) Error() string { return a.err.Error() }

func abort(err error) error { return &abortSignal{err: err} }

// unwind implements the unwinding procedure of spec section 4.9: walk
// frames innermost to outermost, and within each frame walk try-regions
// innermost to outermost, looking for a region that can handle exc.
func (e *Engine) unwind(exc StackItem) {
	e.uncaughtException = exc
	for len(e.invocationStack) > 0 {
		ctx := e.Current()
		for ctx.CurrentTry() != nil {
			region := ctx.CurrentTry()
			switch {
			case region.State == TryStateTry && region.HasCatch():
				region.State = TryStateCatch
				ctx.InstructionPointer = region.CatchPointer
				ctx.isJumping = true
				ctx.EvalStack().Push(exc)
				e.uncaughtException = nil
				return
			case (region.State == TryStateTry || region.State == TryStateCatch) && region.HasFinally():
				region.State = TryStateFinally
				ctx.InstructionPointer = region.FinallyPointer
				ctx.isJumping = true
				return
			default:
				ctx.PopTry()
			}
		}
		e.popContext()
	}
	e.state = StateFault
	e.faultReason = fmt.Errorf("uncaught exception: %s", exc)
}
