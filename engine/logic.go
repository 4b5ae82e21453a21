package engine

// execLogic handles the logical/comparison family (spec section 4.9.1):
// Not, BoolAnd, BoolOr, Nz, NumEqual, NumNotEqual, Lt, Le, Gt, Ge, Min, Max,
// Within. Per spec section 4.9.1 ("Comparisons"), an ordering comparison
// against Null yields false rather than faulting — there is no ordering on
// Null.
func (e *Engine) execLogic(ctx *ExecutionContext, ins Instruction) error {
	switch ins.Op {
	case Not:
		v, err := e.pop()
		if err != nil {
			return err
		}
		e.push(Boolean(!Truth(v)))
		return nil

	case BoolAnd:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		e.push(Boolean(Truth(a) && Truth(b)))
		return nil

	case BoolOr:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		e.push(Boolean(Truth(a) || Truth(b)))
		return nil

	case Nz:
		a, err := e.popInt()
		if err != nil {
			return err
		}
		e.push(Boolean(a.Big().Sign() != 0))
		return nil

	case NumEqual, NumNotEqual:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		ai, err := GetInteger(a)
		if err != nil {
			return err
		}
		bi, err := GetInteger(b)
		if err != nil {
			return err
		}
		eq := ai.Big().Cmp(bi.Big()) == 0
		if ins.Op == NumNotEqual {
			eq = !eq
		}
		e.push(Boolean(eq))
		return nil

	case Lt, Le, Gt, Ge:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		if isNull(a) || isNull(b) {
			e.push(Boolean(false))
			return nil
		}
		ai, err := GetInteger(a)
		if err != nil {
			return err
		}
		bi, err := GetInteger(b)
		if err != nil {
			return err
		}
		cmp := ai.Big().Cmp(bi.Big())
		var r bool
		switch ins.Op {
		case Lt:
			r = cmp < 0
		case Le:
			r = cmp <= 0
		case Gt:
			r = cmp > 0
		case Ge:
			r = cmp >= 0
		}
		e.push(Boolean(r))
		return nil

	case Min, Max:
		b, err := e.popInt()
		if err != nil {
			return err
		}
		a, err := e.popInt()
		if err != nil {
			return err
		}
		cmp := a.Big().Cmp(b.Big())
		switch {
		case ins.Op == Min && cmp <= 0, ins.Op == Max && cmp >= 0:
			e.push(a)
		default:
			e.push(b)
		}
		return nil

	case Within:
		max, err := e.popInt()
		if err != nil {
			return err
		}
		min, err := e.popInt()
		if err != nil {
			return err
		}
		x, err := e.popInt()
		if err != nil {
			return err
		}
		r := min.Big().Cmp(x.Big()) <= 0 && x.Big().Cmp(max.Big()) < 0
		e.push(Boolean(r))
		return nil
	}
	return newFault(InvalidOpcode, "unhandled logic opcode %s", ins.Op)
}

// isNull reports whether v is the Null stack item.
func isNull(v StackItem) bool {
	_, ok := v.(nullType)
	return ok
}
