package engine

// SyscallHandler services a Syscall opcode: id identifies the host
// function; the handler may freely push/pop the current context's
// evaluation stack. Returning an error raises it as an engine exception:
// with CatchEngineExceptions set it unwinds carrying the error's message as
// a ByteString, otherwise the engine faults with it. Grounded on the
// teacher's Thread.Load func(*Thread, string) (Value, error) field shape
// (lang/machine/thread.go) — a host hook is a plain function value stored
// on the engine, not an RPC or plugin framework.
type SyscallHandler func(e *Engine, id uint32) error

// TokenLoader resolves a CallT token id to the ExecutionContext that
// should be pushed onto the invocation stack. Per spec section 4.9, the
// loaded frame usually carries its own fresh evaluation stack, isolating
// the callee; Ret then copies its results back to the caller.
type TokenLoader func(e *Engine, id uint16) (*ExecutionContext, error)
