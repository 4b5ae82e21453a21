package engine

// execJump handles the nine conditional/unconditional jump families, each
// with a short (1-byte) and long (4-byte) operand form (spec section 4.1,
// 4.9.1). Offsets are relative to the start of the jump instruction.
func (e *Engine) execJump(ctx *ExecutionContext, ins Instruction) error {
	offset := int(operandInt(ins.Operand))
	target := ins.Offset + offset

	take, err := e.jumpCondition(ins.Op)
	if err != nil {
		return err
	}
	if !take {
		return nil
	}
	if target < 0 || target > ctx.Script().Len() {
		return newFault(InvalidJump, "%s target %d out of range", ins.Op, target)
	}
	ctx.InstructionPointer = target
	ctx.isJumping = true
	return nil
}

// jumpCondition evaluates whether a jump should be taken, consuming
// whatever operand values the specific opcode requires.
func (e *Engine) jumpCondition(op Opcode) (bool, error) {
	switch normalizeJump(op) {
	case Jmp:
		return true, nil
	case JmpIf:
		v, err := e.pop()
		if err != nil {
			return false, err
		}
		return Truth(v), nil
	case JmpIfNot:
		v, err := e.pop()
		if err != nil {
			return false, err
		}
		return !Truth(v), nil
	default:
		b, err := e.popInt()
		if err != nil {
			return false, err
		}
		a, err := e.popInt()
		if err != nil {
			return false, err
		}
		cmp := a.Big().Cmp(b.Big())
		switch normalizeJump(op) {
		case JmpEq:
			return cmp == 0, nil
		case JmpNe:
			return cmp != 0, nil
		case JmpGt:
			return cmp > 0, nil
		case JmpGe:
			return cmp >= 0, nil
		case JmpLt:
			return cmp < 0, nil
		case JmpLe:
			return cmp <= 0, nil
		}
		return false, newFault(InvalidOpcode, "unhandled jump opcode %s", op)
	}
}

// normalizeJump maps a short or long jump opcode to its short (even) form
// so the switch above only needs to handle one case per family.
func normalizeJump(op Opcode) Opcode {
	if (op-Jmp)%2 == 1 {
		return op - 1
	}
	return op
}
