package engine

// execTry handles Try/TryL/EndTry/EndTryL/EndFinally/Throw (spec section
// 4.8, 4.9).
func (e *Engine) execTry(ctx *ExecutionContext, ins Instruction) error {
	switch ins.Op {
	case Try, TryL:
		var catchOff, finallyOff int64
		if ins.Op == Try {
			catchOff = operandInt(ins.Operand[0:1])
			finallyOff = operandInt(ins.Operand[1:2])
		} else {
			catchOff = operandInt(ins.Operand[0:4])
			finallyOff = operandInt(ins.Operand[4:8])
		}
		catch, finally := noTarget, noTarget
		if catchOff != 0 {
			catch = ins.Offset + int(catchOff)
		}
		if finallyOff != 0 {
			finally = ins.Offset + int(finallyOff)
		}
		return ctx.PushTry(catch, finally, e.limits.MaxTryNestingDepth)

	case EndTry, EndTryL:
		region := ctx.CurrentTry()
		if region == nil || (region.State != TryStateTry && region.State != TryStateCatch) {
			return newFault(InvalidOperation, "%s: no active try/catch region", ins.Op)
		}
		end := ins.Offset + int(operandInt(ins.Operand))
		if region.HasFinally() {
			region.State = TryStateFinally
			region.EndPointer = end
			ctx.InstructionPointer = region.FinallyPointer
			ctx.isJumping = true
			return nil
		}
		ctx.PopTry()
		ctx.InstructionPointer = end
		ctx.isJumping = true
		return nil

	case EndFinally:
		region := ctx.CurrentTry()
		if region == nil || region.State != TryStateFinally {
			return newFault(InvalidOperation, "endfinally: no active finally region")
		}
		end := region.EndPointer
		ctx.PopTry()
		if e.uncaughtException != nil {
			exc := e.uncaughtException
			e.uncaughtException = nil
			e.unwind(exc)
			return nil
		}
		ctx.InstructionPointer = end
		ctx.isJumping = true
		return nil

	case Throw:
		v, err := e.pop()
		if err != nil {
			return err
		}
		return throwValue(v)
	}
	return newFault(InvalidOpcode, "unhandled try opcode %s", ins.Op)
}
