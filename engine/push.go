package engine

// execPush handles the push-immediate, push-data and push-pointer families
// (spec section 4.9.1).
func (e *Engine) execPush(ctx *ExecutionContext, ins Instruction) error {
	switch {
	case ins.Op >= PushInt8 && ins.Op <= PushInt256:
		v := integerFromBytes(ins.Operand)
		item, err := NewInteger(v)
		if err != nil {
			return err
		}
		e.push(item)
		return nil

	case ins.Op == PushM1:
		e.push(NewIntegerInt64(-1))
		return nil

	case ins.Op >= Push0 && ins.Op <= Push16:
		e.push(NewIntegerInt64(int64(ins.Op - Push0)))
		return nil

	case ins.Op == PushTrue:
		e.push(Boolean(true))
		return nil
	case ins.Op == PushFalse:
		e.push(Boolean(false))
		return nil
	case ins.Op == PushNull:
		e.push(Null)
		return nil

	case ins.Op == PushData1, ins.Op == PushData2, ins.Op == PushData4:
		if err := e.checkItemSize(len(ins.Operand)); err != nil {
			return err
		}
		e.push(NewByteString(ins.Operand))
		return nil

	case ins.Op == PushA:
		offset := int(operandInt(ins.Operand))
		target := ins.Offset + offset
		if target < 0 || target > ctx.Script().Len() {
			return newFault(InvalidJump, "pusha target %d out of range", target)
		}
		e.push(&Pointer{Script: ctx.Script(), Offset: target})
		return nil
	}
	return newFault(InvalidOpcode, "unhandled push opcode %s", ins.Op)
}
