package engine

// contextHeader is the state a family of frames shares (spec section 9,
// "Shared frame header"): the script being executed, the evaluation stack
// operands are pushed/popped from, and the static-field slot. Ordinary
// calls (Call/CallL/CallA) clone a frame but share its header, so the
// callee manipulates the very same evaluation stack as the caller; only
// calls that deliberately isolate execution (CallT via a host token
// loader) construct a fresh header.
type contextHeader struct {
	script       *Script
	stack        *EvaluationStack
	staticFields *Slot
}

// ExecutionContext is one invocation-stack frame (spec section 4.7).
// Grounded on the teacher's lang/machine/frame.go Frame type (script,
// program counter, locals, enclosing-scope chain), generalized with the
// shared/per-frame split spec section 9 requires and the try-region stack
// the teacher's Starlark frames never needed.
type ExecutionContext struct {
	header *contextHeader

	InstructionPointer int
	isJumping          bool

	// RVCount is the declared return arity, or -1 for "pass-through" (Ret
	// does not check the callee's remaining stack size).
	RVCount int

	Locals    *Slot
	Arguments *Slot

	tryStack []*ExceptionHandlingContext
}

// NewExecutionContext builds the entry frame for a freshly loaded script.
// rvCount is normally -1 for a top-level script.
func NewExecutionContext(script *Script, rvCount int, rc *ReferenceCounter) *ExecutionContext {
	return &ExecutionContext{
		header: &contextHeader{
			script: script,
			stack:  NewEvaluationStack(rc),
		},
		InstructionPointer: 0,
		RVCount:            rvCount,
	}
}

// Script returns the frame's script.
func (c *ExecutionContext) Script() *Script { return c.header.script }

// EvalStack returns the frame's evaluation stack.
func (c *ExecutionContext) EvalStack() *EvaluationStack { return c.header.stack }

// StaticFields returns the frame's static-field slot, or nil if InitSSLot
// has not run yet.
func (c *ExecutionContext) StaticFields() *Slot { return c.header.staticFields }

// SetStaticFields installs the static-field slot (InitSSLot).
func (c *ExecutionContext) SetStaticFields(s *Slot) { c.header.staticFields = s }

// SharesStackWith reports whether c and other operate on the same
// evaluation stack (spec section 4.9: Ret must copy results across when
// this is false).
func (c *ExecutionContext) SharesStackWith(other *ExecutionContext) bool {
	return c.header.stack == other.header.stack
}

// PushTry pushes a new exception-handling region, enforcing
// maxTryNestingDepth.
func (c *ExecutionContext) PushTry(catch, finally, maxDepth int) error {
	if len(c.tryStack) >= maxDepth {
		return newFault(TryNestingOverflow, "try nesting exceeds %d", maxDepth)
	}
	c.tryStack = append(c.tryStack, &ExceptionHandlingContext{
		CatchPointer:   catch,
		FinallyPointer: finally,
		EndPointer:     noTarget,
		State:          TryStateTry,
	})
	return nil
}

// CurrentTry returns the innermost exception-handling region, or nil.
func (c *ExecutionContext) CurrentTry() *ExceptionHandlingContext {
	if len(c.tryStack) == 0 {
		return nil
	}
	return c.tryStack[len(c.tryStack)-1]
}

// PopTry removes the innermost exception-handling region.
func (c *ExecutionContext) PopTry() {
	if len(c.tryStack) > 0 {
		c.tryStack = c.tryStack[:len(c.tryStack)-1]
	}
}

// TryDepth returns the number of nested try regions currently open.
func (c *ExecutionContext) TryDepth() int { return len(c.tryStack) }

// CloneAtOffset builds a new frame sharing c's header but with its own
// instruction pointer, slots and try-stack (spec section 4.7) — how
// Call/CallL/CallA construct a callee frame without duplicating the
// evaluation stack.
func (c *ExecutionContext) CloneAtOffset(offset, rvCount int) *ExecutionContext {
	return &ExecutionContext{
		header:             c.header,
		InstructionPointer: offset,
		RVCount:            rvCount,
	}
}

// Unload releases every reference held by the frame's slots. Called when
// the frame is popped from the invocation stack.
func (c *ExecutionContext) Unload() {
	if c.Locals != nil {
		c.Locals.ClearReferences()
	}
	if c.Arguments != nil {
		c.Arguments.ClearReferences()
	}
}
