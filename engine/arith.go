package engine

import "math/big"

// execArith handles the arithmetic family (spec section 4.9.1): Sign, Abs,
// Negate, Inc, Dec, Add, Sub, Mul, Div, Mod, Pow, Sqrt, ModMul, ModPow, Shl,
// Shr. All operate on arbitrary-precision two's-complement integers via
// math/big (see item_integer.go); Div/Mod truncate toward zero, matching
// math/big's own Quo/Rem.
func (e *Engine) execArith(ctx *ExecutionContext, ins Instruction) error {
	switch ins.Op {
	case Sign:
		a, err := e.popInt()
		if err != nil {
			return err
		}
		e.push(NewIntegerInt64(int64(a.Big().Sign())))
		return nil

	case Abs:
		a, err := e.popInt()
		if err != nil {
			return err
		}
		return e.pushInteger(new(big.Int).Abs(a.Big()))

	case Negate:
		a, err := e.popInt()
		if err != nil {
			return err
		}
		return e.pushInteger(new(big.Int).Neg(a.Big()))

	case Inc:
		a, err := e.popInt()
		if err != nil {
			return err
		}
		return e.pushInteger(new(big.Int).Add(a.Big(), big.NewInt(1)))

	case Dec:
		a, err := e.popInt()
		if err != nil {
			return err
		}
		return e.pushInteger(new(big.Int).Sub(a.Big(), big.NewInt(1)))

	case Add:
		return e.binaryIntOp(func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) })
	case Sub:
		return e.binaryIntOp(func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) })
	case Mul:
		return e.binaryIntOp(func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) })

	case Div:
		b, err := e.popInt()
		if err != nil {
			return err
		}
		a, err := e.popInt()
		if err != nil {
			return err
		}
		if b.Big().Sign() == 0 {
			return newFault(DivisionByZero, "div: division by zero")
		}
		return e.pushInteger(new(big.Int).Quo(a.Big(), b.Big()))

	case Mod:
		b, err := e.popInt()
		if err != nil {
			return err
		}
		a, err := e.popInt()
		if err != nil {
			return err
		}
		if b.Big().Sign() == 0 {
			return newFault(DivisionByZero, "mod: division by zero")
		}
		return e.pushInteger(new(big.Int).Rem(a.Big(), b.Big()))

	case Pow:
		exp, err := e.popInt()
		if err != nil {
			return err
		}
		base, err := e.popInt()
		if err != nil {
			return err
		}
		if err := e.checkShift(exp.Big()); err != nil {
			return err
		}
		return e.pushInteger(new(big.Int).Exp(base.Big(), exp.Big(), nil))

	case Sqrt:
		a, err := e.popInt()
		if err != nil {
			return err
		}
		if a.Big().Sign() < 0 {
			return newFault(InvalidParameter, "sqrt: negative operand")
		}
		return e.pushInteger(new(big.Int).Sqrt(a.Big()))

	case ModMul:
		m, err := e.popInt()
		if err != nil {
			return err
		}
		b, err := e.popInt()
		if err != nil {
			return err
		}
		a, err := e.popInt()
		if err != nil {
			return err
		}
		if m.Big().Sign() == 0 {
			return newFault(DivisionByZero, "modmul: modulus is zero")
		}
		r := new(big.Int).Mul(a.Big(), b.Big())
		return e.pushInteger(r.Mod(r, m.Big()))

	case ModPow:
		m, err := e.popInt()
		if err != nil {
			return err
		}
		exp, err := e.popInt()
		if err != nil {
			return err
		}
		base, err := e.popInt()
		if err != nil {
			return err
		}
		if m.Big().Sign() == 0 {
			return newFault(DivisionByZero, "modpow: modulus is zero")
		}
		if exp.Big().Cmp(big.NewInt(-1)) == 0 {
			r := new(big.Int).ModInverse(base.Big(), m.Big())
			if r == nil {
				return newFault(InvalidParameter, "modpow: no modular inverse")
			}
			return e.pushInteger(r)
		}
		if err := e.checkShift(exp.Big()); err != nil {
			return err
		}
		return e.pushInteger(new(big.Int).Exp(base.Big(), exp.Big(), m.Big()))

	case Shl:
		return e.shiftOp(func(a *big.Int, n uint) *big.Int { return new(big.Int).Lsh(a, n) })
	case Shr:
		return e.shiftOp(func(a *big.Int, n uint) *big.Int { return new(big.Int).Rsh(a, n) })
	}
	return newFault(InvalidOpcode, "unhandled arithmetic opcode %s", ins.Op)
}

// checkShift enforces 0 <= n <= MaxShift, the bound spec section 6 places on
// Shl/Shr's shift amount and Pow/ModPow's exponent.
func (e *Engine) checkShift(n *big.Int) error {
	if n.Sign() < 0 || n.Cmp(big.NewInt(int64(e.limits.MaxShift))) > 0 {
		return newFault(InvalidParameter, "value %s out of range [0, %d]", n, e.limits.MaxShift)
	}
	return nil
}

// shiftOp pops a shift amount then the operand, enforcing the MaxShift
// bound before applying op.
func (e *Engine) shiftOp(op func(a *big.Int, n uint) *big.Int) error {
	n, err := e.popInt()
	if err != nil {
		return err
	}
	a, err := e.popInt()
	if err != nil {
		return err
	}
	if err := e.checkShift(n.Big()); err != nil {
		return err
	}
	return e.pushInteger(op(a.Big(), uint(n.Big().Int64())))
}
