package engine

// execControl handles Call/CallL/CallA/CallT/Ret/Syscall/Abort/Assert/
// AbortMsg/AssertMsg (spec section 4.1, 4.9).
func (e *Engine) execControl(ctx *ExecutionContext, ins Instruction) error {
	switch ins.Op {
	case Call, CallL:
		target := ins.Offset + int(operandInt(ins.Operand))
		return e.call(ctx, ins, target)

	case CallA:
		v, err := e.pop()
		if err != nil {
			return err
		}
		ptr, ok := v.(*Pointer)
		if !ok {
			return newFault(InvalidType, "calla: expected Pointer, got %s", v.Type())
		}
		if ptr.Script != ctx.Script() {
			return newFault(InvalidParameter, "calla: pointer does not reference the current script")
		}
		return e.call(ctx, ins, ptr.Offset)

	case CallT:
		id := uint16(operandUint(ins.Operand))
		if e.LoadToken == nil {
			return newFault(InvalidToken, "callt %d: no token loader installed", id)
		}
		callee, err := e.LoadToken(e, id)
		if err != nil {
			return newFault(InvalidToken, "callt %d: %v", id, err)
		}
		ctx.InstructionPointer += ins.Length
		ctx.isJumping = true
		return e.pushContext(callee)

	case Ret:
		return e.execRet(ctx)

	case Syscall:
		id := uint32(operandUint(ins.Operand))
		if e.Syscall == nil {
			return newFault(InvalidOperation, "syscall %d: no syscall handler installed", id)
		}
		return e.Syscall(e, id)

	case Abort:
		return abort(newFault(UserException, "abort"))

	case Assert:
		v, err := e.pop()
		if err != nil {
			return err
		}
		if !Truth(v) {
			return throwValue(NewByteString([]byte("assertion failed")))
		}
		return nil

	case AbortMsg:
		msg, err := e.pop()
		if err != nil {
			return err
		}
		return throwValue(msg)

	case AssertMsg:
		msg, err := e.pop()
		if err != nil {
			return err
		}
		cond, err := e.pop()
		if err != nil {
			return err
		}
		if !Truth(cond) {
			return throwValue(msg)
		}
		return nil
	}
	return newFault(InvalidOpcode, "unhandled control opcode %s", ins.Op)
}

// call advances the caller past the call instruction and pushes a callee
// frame sharing the caller's header, IP at target (spec section 4.9).
func (e *Engine) call(ctx *ExecutionContext, ins Instruction, target int) error {
	if target < 0 || target > ctx.Script().Len() {
		return newFault(InvalidJump, "call target %d out of range", target)
	}
	ctx.InstructionPointer += ins.Length
	ctx.isJumping = true
	callee := ctx.CloneAtOffset(target, -1)
	return e.pushContext(callee)
}

// execRet implements Ret (spec section 4.9): pop the current frame,
// validate its declared return arity if any, and copy its results to the
// caller only when the two frames used distinct evaluation stacks.
func (e *Engine) execRet(ctx *ExecutionContext) error {
	if ctx.RVCount >= 0 && ctx.EvalStack().Len() != ctx.RVCount {
		return newFault(InvalidOperation, "ret: expected %d results, have %d", ctx.RVCount, ctx.EvalStack().Len())
	}
	e.popContext()
	if len(e.invocationStack) == 0 {
		e.state = StateHalt
		return nil
	}
	caller := e.Current()
	if !ctx.SharesStackWith(caller) {
		n := ctx.EvalStack().Len()
		if err := ctx.EvalStack().MoveTo(caller.EvalStack(), n); err != nil {
			return err
		}
	}
	return nil
}
