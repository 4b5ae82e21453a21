package engine

// execTypeOp handles IsNull, IsType, Convert (spec section 4.9.1 "Type").
func (e *Engine) execTypeOp(ctx *ExecutionContext, ins Instruction) error {
	switch ins.Op {
	case IsNull:
		v, err := e.pop()
		if err != nil {
			return err
		}
		e.push(Boolean(isNull(v)))
		return nil

	case IsType:
		t, err := typeFromByte(ins.Operand[0])
		if err != nil {
			return err
		}
		v, err := e.pop()
		if err != nil {
			return err
		}
		e.push(Boolean(v.Type() == t))
		return nil

	case Convert:
		t, err := typeFromByte(ins.Operand[0])
		if err != nil {
			return err
		}
		v, err := e.pop()
		if err != nil {
			return err
		}
		out, err := ConvertTo(v, t)
		if err != nil {
			return err
		}
		e.push(out)
		return nil
	}
	return newFault(InvalidOpcode, "unhandled type opcode %s", ins.Op)
}
