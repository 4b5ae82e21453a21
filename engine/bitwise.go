package engine

import "math/big"

// execBitwise handles Invert, And, Or, Xor, Equal, NotEqual (spec section
// 4.9.1). Bitwise operators work on arbitrary-precision two's-complement
// integers via math/big's own 2's-complement bitwise semantics.
func (e *Engine) execBitwise(ctx *ExecutionContext, ins Instruction) error {
	switch ins.Op {
	case Invert:
		a, err := e.popInt()
		if err != nil {
			return err
		}
		r := new(big.Int).Not(a.Big())
		return e.pushInteger(r)

	case And:
		return e.binaryIntOp(func(a, b *big.Int) *big.Int { return new(big.Int).And(a, b) })
	case Or:
		return e.binaryIntOp(func(a, b *big.Int) *big.Int { return new(big.Int).Or(a, b) })
	case Xor:
		return e.binaryIntOp(func(a, b *big.Int) *big.Int { return new(big.Int).Xor(a, b) })

	case Equal, NotEqual:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		eq, err := Equals(a, b, e.limits.MaxComparableSize)
		if err != nil {
			return err
		}
		if ins.Op == NotEqual {
			eq = !eq
		}
		e.push(Boolean(eq))
		return nil
	}
	return newFault(InvalidOpcode, "unhandled bitwise opcode %s", ins.Op)
}

// binaryIntOp pops b then a (a pushed first), applies op, and pushes the
// bounds-checked result.
func (e *Engine) binaryIntOp(op func(a, b *big.Int) *big.Int) error {
	b, err := e.popInt()
	if err != nil {
		return err
	}
	a, err := e.popInt()
	if err != nil {
		return err
	}
	return e.pushInteger(op(a.Big(), b.Big()))
}

func (e *Engine) pushInteger(v *big.Int) error {
	item, err := NewInteger(v)
	if err != nil {
		return err
	}
	e.push(item)
	return nil
}
