package engine

// execStackOp handles the stack-manipulation family (spec section 4.1):
// Depth, Drop, Nip, Xdrop, Clear, Dup, Over, Pick, Tuck, Swap, Rot, Roll,
// Reverse3, Reverse4, ReverseN.
func (e *Engine) execStackOp(ctx *ExecutionContext, ins Instruction) error {
	s := e.stack()
	switch ins.Op {
	case Depth:
		e.push(NewIntegerInt64(int64(s.Len())))
		return nil

	case Drop:
		_, err := e.pop()
		return err

	case Nip:
		_, err := s.Remove(1)
		return err

	case Xdrop:
		n, err := e.popIndex()
		if err != nil {
			return err
		}
		_, err = s.Remove(n)
		return err

	case Clear:
		s.Clear()
		return nil

	case Dup:
		v, err := s.Peek(0)
		if err != nil {
			return err
		}
		s.Push(v)
		return nil

	case Over:
		v, err := s.Peek(1)
		if err != nil {
			return err
		}
		s.Push(v)
		return nil

	case Pick:
		n, err := e.popIndex()
		if err != nil {
			return err
		}
		v, err := s.Peek(n)
		if err != nil {
			return err
		}
		s.Push(v)
		return nil

	case Tuck:
		v, err := s.Peek(0)
		if err != nil {
			return err
		}
		return s.Insert(2, v)

	case Swap:
		a, err := s.Remove(1)
		if err != nil {
			return err
		}
		if err := s.Insert(0, a); err != nil {
			return err
		}
		return nil

	case Rot:
		v, err := s.Remove(2)
		if err != nil {
			return err
		}
		return s.Insert(0, v)

	case Roll:
		n, err := e.popIndex()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		v, err := s.Remove(n)
		if err != nil {
			return err
		}
		return s.Insert(0, v)

	case Reverse3:
		return s.Reverse(3)

	case Reverse4:
		return s.Reverse(4)

	case ReverseN:
		n, err := e.popIndex()
		if err != nil {
			return err
		}
		return s.Reverse(n)
	}
	return newFault(InvalidOpcode, "unhandled stack opcode %s", ins.Op)
}
