package engine

// execSplice handles NewBuffer, MemCpy, Cat, Substr, Left, Right (spec
// section 4.9.1 "Splice").
func (e *Engine) execSplice(ctx *ExecutionContext, ins Instruction) error {
	switch ins.Op {
	case NewBuffer:
		n, err := e.popIndex()
		if err != nil {
			return err
		}
		if n < 0 {
			return newFault(InvalidParameter, "newbuffer: negative size %d", n)
		}
		if err := e.checkItemSize(n); err != nil {
			return err
		}
		e.push(NewBuffer(n))
		return nil

	case MemCpy:
		count, err := e.popIndex()
		if err != nil {
			return err
		}
		si, err := e.popIndex()
		if err != nil {
			return err
		}
		srcItem, err := e.pop()
		if err != nil {
			return err
		}
		di, err := e.popIndex()
		if err != nil {
			return err
		}
		dstItem, err := e.pop()
		if err != nil {
			return err
		}
		dst, ok := dstItem.(*Buffer)
		if !ok {
			return newFault(InvalidType, "memcpy: destination must be a Buffer")
		}
		src, err := GetSlice(srcItem)
		if err != nil {
			return err
		}
		if count < 0 || si < 0 || di < 0 {
			return newFault(InvalidParameter, "memcpy: negative index or count")
		}
		if si+count > len(src) {
			return newFault(InvalidParameter, "memcpy: source range out of bounds")
		}
		if di+count > len(dst.b) {
			return newFault(InvalidParameter, "memcpy: destination range out of bounds")
		}
		copy(dst.b[di:di+count], src[si:si+count])
		return nil

	case Cat:
		b, err := e.pop()
		if err != nil {
			return err
		}
		a, err := e.pop()
		if err != nil {
			return err
		}
		ab, err := GetSlice(a)
		if err != nil {
			return err
		}
		bb, err := GetSlice(b)
		if err != nil {
			return err
		}
		if err := e.checkItemSize(len(ab) + len(bb)); err != nil {
			return err
		}
		out := make([]byte, 0, len(ab)+len(bb))
		out = append(out, ab...)
		out = append(out, bb...)
		e.push(&Buffer{b: out})
		return nil

	case Substr:
		count, err := e.popIndex()
		if err != nil {
			return err
		}
		idx, err := e.popIndex()
		if err != nil {
			return err
		}
		xItem, err := e.pop()
		if err != nil {
			return err
		}
		xb, err := GetSlice(xItem)
		if err != nil {
			return err
		}
		if idx < 0 || count < 0 || idx+count > len(xb) {
			return newFault(InvalidParameter, "substr: range out of bounds")
		}
		e.push(NewBufferFromBytes(xb[idx : idx+count]))
		return nil

	case Left:
		count, err := e.popIndex()
		if err != nil {
			return err
		}
		xItem, err := e.pop()
		if err != nil {
			return err
		}
		xb, err := GetSlice(xItem)
		if err != nil {
			return err
		}
		if count < 0 || count > len(xb) {
			return newFault(InvalidParameter, "left: count out of bounds")
		}
		e.push(NewBufferFromBytes(xb[:count]))
		return nil

	case Right:
		count, err := e.popIndex()
		if err != nil {
			return err
		}
		xItem, err := e.pop()
		if err != nil {
			return err
		}
		xb, err := GetSlice(xItem)
		if err != nil {
			return err
		}
		if count < 0 || count > len(xb) {
			return newFault(InvalidParameter, "right: count out of bounds")
		}
		e.push(NewBufferFromBytes(xb[len(xb)-count:]))
		return nil
	}
	return newFault(InvalidOpcode, "unhandled splice opcode %s", ins.Op)
}
