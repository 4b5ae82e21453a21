package engine

// execSlotOp handles InitSSLot/InitSlot and the LdSFLd/StSFLd/LdLoc/StLoc/
// LdArg/StArg families (spec section 4.1, 9). The Ld*/St* opcodes come in
// seven indexed-literal forms (0..6) plus one form with an explicit 1-byte
// index operand.
func (e *Engine) execSlotOp(ctx *ExecutionContext, ins Instruction) error {
	rc := e.rc
	switch ins.Op {
	case InitSSLot:
		n := int(ins.Operand[0])
		ctx.SetStaticFields(NewSlotOfSize(n, rc))
		return nil

	case InitSlot:
		locals := int(ins.Operand[0])
		args := int(ins.Operand[1])
		if locals > 0 {
			ctx.Locals = NewSlotOfSize(locals, rc)
		}
		if args > 0 {
			items := make([]StackItem, args)
			for i := range items {
				v, err := e.pop()
				if err != nil {
					return err
				}
				items[i] = v
			}
			ctx.Arguments = NewSlotFromItems(items, rc)
		}
		return nil
	}

	switch {
	case ins.Op >= LdSFLd0 && ins.Op <= LdSFLd:
		return e.loadSlot(ctx.StaticFields(), slotIndex(ins, LdSFLd0, LdSFLd))
	case ins.Op >= StSFLd0 && ins.Op <= StSFLd:
		return e.storeSlot(ctx.StaticFields(), slotIndex(ins, StSFLd0, StSFLd))
	case ins.Op >= LdLoc0 && ins.Op <= LdLoc:
		return e.loadSlot(ctx.Locals, slotIndex(ins, LdLoc0, LdLoc))
	case ins.Op >= StLoc0 && ins.Op <= StLoc:
		return e.storeSlot(ctx.Locals, slotIndex(ins, StLoc0, StLoc))
	case ins.Op >= LdArg0 && ins.Op <= LdArg:
		return e.loadSlot(ctx.Arguments, slotIndex(ins, LdArg0, LdArg))
	case ins.Op >= StArg0 && ins.Op <= StArg:
		return e.storeSlot(ctx.Arguments, slotIndex(ins, StArg0, StArg))
	}
	return newFault(InvalidOpcode, "unhandled slot opcode %s", ins.Op)
}

// slotIndex returns the slot index named by an indexed-literal opcode (0..6)
// or decoded from the explicit-index form's operand byte.
func slotIndex(ins Instruction, base, explicit Opcode) int {
	if ins.Op == explicit {
		return int(ins.Operand[0])
	}
	return int(ins.Op - base)
}

func (e *Engine) loadSlot(slot *Slot, i int) error {
	if slot == nil {
		return newFault(InvalidOperation, "slot not initialized")
	}
	v, err := slot.Get(i)
	if err != nil {
		return err
	}
	e.push(v)
	return nil
}

func (e *Engine) storeSlot(slot *Slot, i int) error {
	if slot == nil {
		return newFault(InvalidOperation, "slot not initialized")
	}
	v, err := e.pop()
	if err != nil {
		return err
	}
	return slot.Set(i, v)
}
