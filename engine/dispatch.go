package engine

// stack returns the current frame's evaluation stack.
func (e *Engine) stack() *EvaluationStack { return e.Current().EvalStack() }

func (e *Engine) push(v StackItem) { e.stack().Push(v) }

func (e *Engine) pop() (StackItem, error) { return e.stack().Pop() }

func (e *Engine) popInt() (*Integer, error) {
	v, err := e.pop()
	if err != nil {
		return nil, err
	}
	return GetInteger(v)
}

func (e *Engine) popIndex() (int, error) {
	i, err := e.popInt()
	if err != nil {
		return 0, err
	}
	return int(i.Big().Int64()), nil
}

// checkItemSize enforces max_item_size on a would-be byte-backed value.
func (e *Engine) checkItemSize(n int) error {
	if n > e.limits.MaxItemSize {
		return newFault(ItemTooLarge, "item of %d bytes exceeds max_item_size %d", n, e.limits.MaxItemSize)
	}
	return nil
}

// dispatch executes one decoded instruction against the current frame
// (spec section 4.9.1). It returns a non-nil error to signal an exception
// (engine Fault, Throw payload, or abort) which the caller routes through
// raise/unwind.
func (e *Engine) dispatch(ctx *ExecutionContext, ins Instruction) error {
	switch {
	case ins.Op == Nop:
		return nil

	case ins.Op >= PushInt8 && ins.Op <= PushInt256, ins.Op == PushM1,
		ins.Op >= Push0 && ins.Op <= Push16,
		ins.Op == PushTrue, ins.Op == PushFalse, ins.Op == PushNull,
		ins.Op >= PushData1 && ins.Op <= PushData4, ins.Op == PushA:
		return e.execPush(ctx, ins)

	case ins.Op >= Jmp && ins.Op <= JmpLeL:
		return e.execJump(ctx, ins)

	case ins.Op == Call || ins.Op == CallL || ins.Op == CallA || ins.Op == CallT || ins.Op == Ret ||
		ins.Op == Syscall || ins.Op == Abort || ins.Op == Assert || ins.Op == AbortMsg || ins.Op == AssertMsg:
		return e.execControl(ctx, ins)

	case ins.Op == Try || ins.Op == TryL || ins.Op == EndTry || ins.Op == EndTryL ||
		ins.Op == EndFinally || ins.Op == Throw:
		return e.execTry(ctx, ins)

	case ins.Op == Depth || ins.Op == Drop || ins.Op == Nip || ins.Op == Xdrop || ins.Op == Clear ||
		ins.Op == Dup || ins.Op == Over || ins.Op == Pick || ins.Op == Tuck || ins.Op == Swap ||
		ins.Op == Rot || ins.Op == Roll || ins.Op == Reverse3 || ins.Op == Reverse4 || ins.Op == ReverseN:
		return e.execStackOp(ctx, ins)

	case ins.Op == InitSSLot || ins.Op == InitSlot ||
		(ins.Op >= LdSFLd0 && ins.Op <= StArg):
		return e.execSlotOp(ctx, ins)

	case ins.Op == NewBuffer || ins.Op == MemCpy || ins.Op == Cat || ins.Op == Substr ||
		ins.Op == Left || ins.Op == Right:
		return e.execSplice(ctx, ins)

	case ins.Op == Invert || ins.Op == And || ins.Op == Or || ins.Op == Xor ||
		ins.Op == Equal || ins.Op == NotEqual:
		return e.execBitwise(ctx, ins)

	case ins.Op == Sign || ins.Op == Abs || ins.Op == Negate || ins.Op == Inc || ins.Op == Dec ||
		ins.Op == Add || ins.Op == Sub || ins.Op == Mul || ins.Op == Div || ins.Op == Mod ||
		ins.Op == Pow || ins.Op == Sqrt || ins.Op == ModMul || ins.Op == ModPow ||
		ins.Op == Shl || ins.Op == Shr:
		return e.execArith(ctx, ins)

	case ins.Op == Not || ins.Op == BoolAnd || ins.Op == BoolOr || ins.Op == Nz ||
		ins.Op == NumEqual || ins.Op == NumNotEqual || ins.Op == Lt || ins.Op == Le ||
		ins.Op == Gt || ins.Op == Ge || ins.Op == Min || ins.Op == Max || ins.Op == Within:
		return e.execLogic(ctx, ins)

	case ins.Op == PackMap || ins.Op == PackStruct || ins.Op == Pack || ins.Op == Unpack ||
		ins.Op == NewArray0 || ins.Op == NewArray || ins.Op == NewArrayT ||
		ins.Op == NewStruct0 || ins.Op == NewStruct || ins.Op == NewMap ||
		ins.Op == Size || ins.Op == HasKey || ins.Op == Keys || ins.Op == Values ||
		ins.Op == PickItem || ins.Op == Append || ins.Op == SetItem ||
		ins.Op == ReverseItems || ins.Op == Remove || ins.Op == ClearItems || ins.Op == PopItem:
		return e.execCompound(ctx, ins)

	case ins.Op == IsNull || ins.Op == IsType || ins.Op == Convert:
		return e.execTypeOp(ctx, ins)

	default:
		return newFault(InvalidOpcode, "unassigned opcode %d", byte(ins.Op))
	}
}
