package engine

import "math"

// execCompound handles the compound-container opcode family (spec section
// 4.1, 4.9.1): constructors (Pack*, New*), introspection (Size, HasKey,
// Keys, Values), and mutators (PickItem, Append, SetItem, ReverseItems,
// Remove, ClearItems, PopItem). Every mutation that stores or drops a
// tracked child notifies the reference counter of the corresponding
// object-reference edge (spec section 4.4); the counter's own sweep, not
// this code, is what later reclaims a container once it and its graph
// become unreachable.
func (e *Engine) execCompound(ctx *ExecutionContext, ins Instruction) error {
	switch ins.Op {
	case NewArray0:
		e.push(NewArray(nil))
		return nil

	case NewArray:
		n, err := e.popCount()
		if err != nil {
			return err
		}
		e.push(NewArray(nullItems(n)))
		return nil

	case NewArrayT:
		n, err := e.popCount()
		if err != nil {
			return err
		}
		t, err := typeFromByte(ins.Operand[0])
		if err != nil {
			return err
		}
		items := make([]StackItem, n)
		def := defaultOfType(t)
		for i := range items {
			items[i] = def
		}
		e.push(NewArray(items))
		return nil

	case NewStruct0:
		e.push(NewStruct(nil))
		return nil

	case NewStruct:
		n, err := e.popCount()
		if err != nil {
			return err
		}
		e.push(NewStruct(nullItems(n)))
		return nil

	case NewMap:
		e.push(NewMap(0))
		return nil

	case Pack:
		return e.execPack()
	case PackStruct:
		return e.execPackStruct()
	case PackMap:
		return e.execPackMap()
	case Unpack:
		return e.execUnpack()
	case Size:
		return e.execSize()
	case HasKey:
		return e.execHasKey()
	case Keys:
		return e.execKeys()
	case Values:
		return e.execValues()
	case PickItem:
		return e.execPickItem()
	case Append:
		return e.execAppend()
	case SetItem:
		return e.execSetItem()
	case ReverseItems:
		return e.execReverseItems()
	case Remove:
		return e.execRemove()
	case ClearItems:
		return e.execClearItems()
	case PopItem:
		return e.execPopItem()
	}
	return newFault(InvalidOpcode, "unhandled compound opcode %s", ins.Op)
}

func nullItems(n int) []StackItem {
	items := make([]StackItem, n)
	for i := range items {
		items[i] = Null
	}
	return items
}

// defaultOfType implements NewArrayT's per-type default (spec section
// 4.9.1): Boolean -> false, Integer -> 0, ByteString -> empty, else Null.
func defaultOfType(t StackItemType) StackItem {
	switch t {
	case TypeBoolean:
		return Boolean(false)
	case TypeInteger:
		return NewIntegerInt64(0)
	case TypeByteString:
		return NewByteString(nil)
	default:
		return Null
	}
}

// popCount pops and validates an item count, bounded the same way
// max_stack_size bounds any other construction (spec section 4.9.1:
// "Size bounds: n <= max_stack_size").
func (e *Engine) popCount() (int, error) {
	n, err := e.popIndex()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > e.limits.MaxStackSize {
		return 0, newFault(InvalidParameter, "count %d out of range", n)
	}
	return n, nil
}

// execPack implements Pack: pop n items, top becomes the first array
// element.
func (e *Engine) execPack() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	arr := NewArray(nil)
	for i := 0; i < n; i++ {
		v, err := e.pop()
		if err != nil {
			return err
		}
		if err := arr.Append(v); err != nil {
			return err
		}
		e.rc.AddReference(arr.items[len(arr.items)-1], arr)
	}
	e.push(arr)
	return nil
}

func (e *Engine) execPackStruct() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	st := NewStruct(nil)
	for i := 0; i < n; i++ {
		v, err := e.pop()
		if err != nil {
			return err
		}
		if err := st.Append(v); err != nil {
			return err
		}
		e.rc.AddReference(st.items[len(st.items)-1], st)
	}
	e.push(st)
	return nil
}

// execPackMap implements PackMap: pops n (key, value) pairs, value on top
// of its key.
func (e *Engine) execPackMap() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	m := NewMap(n)
	for i := 0; i < n; i++ {
		v, err := e.pop()
		if err != nil {
			return err
		}
		k, err := e.pop()
		if err != nil {
			return err
		}
		if err := m.SetKey(k, v); err != nil {
			return err
		}
		stored, _, err := m.Get(k)
		if err != nil {
			return err
		}
		e.rc.AddReference(k, m)
		e.rc.AddReference(stored, m)
	}
	e.push(m)
	return nil
}

// execUnpack implements Unpack: push an Array/Struct's items in reverse
// order followed by the count, so that Pack N; Unpack is the identity on
// the evaluation stack up to the extra count item (spec section 8).
func (e *Engine) execUnpack() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	items, err := containerItems(v)
	if err != nil {
		return err
	}
	for i := len(items) - 1; i >= 0; i-- {
		e.push(items[i])
	}
	e.push(NewIntegerInt64(int64(len(items))))
	return nil
}

func containerItems(v StackItem) ([]StackItem, error) {
	switch c := v.(type) {
	case *Array:
		return c.items, nil
	case *Struct:
		return c.items, nil
	default:
		return nil, newFault(InvalidType, "%s is not Array or Struct", v.Type())
	}
}

func (e *Engine) execSize() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	switch c := v.(type) {
	case *Array:
		e.push(NewIntegerInt64(int64(len(c.items))))
	case *Struct:
		e.push(NewIntegerInt64(int64(len(c.items))))
	case *Map:
		e.push(NewIntegerInt64(int64(c.Len())))
	case *ByteString:
		e.push(NewIntegerInt64(int64(len(c.b))))
	case *Buffer:
		e.push(NewIntegerInt64(int64(len(c.b))))
	default:
		return newFault(InvalidType, "%s has no size", v.Type())
	}
	return nil
}

func (e *Engine) execHasKey() error {
	key, err := e.pop()
	if err != nil {
		return err
	}
	v, err := e.pop()
	if err != nil {
		return err
	}
	switch c := v.(type) {
	case *Array:
		i, err := indexFrom(key)
		if err != nil {
			return err
		}
		e.push(Boolean(i >= 0 && i < len(c.items)))
	case *Struct:
		i, err := indexFrom(key)
		if err != nil {
			return err
		}
		e.push(Boolean(i >= 0 && i < len(c.items)))
	case *Map:
		ok, err := c.HasKey(key)
		if err != nil {
			return err
		}
		e.push(Boolean(ok))
	default:
		return newFault(InvalidType, "%s does not support haskey", v.Type())
	}
	return nil
}

func (e *Engine) execKeys() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	m, ok := v.(*Map)
	if !ok {
		return newFault(InvalidType, "keys: expected Map, got %s", v.Type())
	}
	arr := NewArray(m.Keys())
	for _, k := range arr.items {
		e.rc.AddReference(k, arr)
	}
	e.push(arr)
	return nil
}

func (e *Engine) execValues() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	m, ok := v.(*Map)
	if !ok {
		return newFault(InvalidType, "values: expected Map, got %s", v.Type())
	}
	arr := NewArray(m.Values())
	for _, it := range arr.items {
		e.rc.AddReference(it, arr)
	}
	e.push(arr)
	return nil
}

func indexFrom(key StackItem) (int, error) {
	i, err := GetInteger(key)
	if err != nil {
		return 0, err
	}
	return int(i.Big().Int64()), nil
}

// execPickItem implements PickItem: Array/Struct by index, Map by
// primitive key, and ByteString/Buffer/Integer by byte index (pushing a
// single byte as an Integer).
func (e *Engine) execPickItem() error {
	key, err := e.pop()
	if err != nil {
		return err
	}
	v, err := e.pop()
	if err != nil {
		return err
	}
	switch c := v.(type) {
	case *Array:
		i, err := indexFrom(key)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(c.items) {
			return newFault(InvalidParameter, "pickitem: index %d out of range", i)
		}
		e.push(c.items[i])
		return nil
	case *Struct:
		i, err := indexFrom(key)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(c.items) {
			return newFault(InvalidParameter, "pickitem: index %d out of range", i)
		}
		e.push(c.items[i])
		return nil
	case *Map:
		val, ok, err := c.Get(key)
		if err != nil {
			return err
		}
		if !ok {
			return newFault(ItemNotFound, "pickitem: key not found")
		}
		e.push(val)
		return nil
	case *ByteString, *Buffer, *Integer:
		b, err := GetSlice(v)
		if err != nil {
			return err
		}
		i, err := indexFrom(key)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(b) {
			return newFault(InvalidParameter, "pickitem: byte index %d out of range", i)
		}
		e.push(NewIntegerInt64(int64(b[i])))
		return nil
	default:
		return newFault(InvalidType, "pickitem: %s is not indexable", v.Type())
	}
}

// execAppend implements Append(array, value): pops value then the
// container, appending (with Struct value-copy-on-insert).
func (e *Engine) execAppend() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	c, err := e.pop()
	if err != nil {
		return err
	}
	switch a := c.(type) {
	case *Array:
		if err := a.Append(v); err != nil {
			return err
		}
		e.rc.AddReference(a.items[len(a.items)-1], a)
		return nil
	case *Struct:
		if err := a.Append(v); err != nil {
			return err
		}
		e.rc.AddReference(a.items[len(a.items)-1], a)
		return nil
	default:
		return newFault(InvalidType, "append: expected Array, got %s", c.Type())
	}
}

// execSetItem implements SetItem(container, key, value): pops value, key,
// then container, in that push order.
func (e *Engine) execSetItem() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	key, err := e.pop()
	if err != nil {
		return err
	}
	c, err := e.pop()
	if err != nil {
		return err
	}
	switch x := c.(type) {
	case *Array:
		return e.setIndexed(x.items, x.checkMutable(), func(i int) error { return x.SetIndex(i, v) }, x, key)
	case *Struct:
		return e.setIndexed(x.items, x.checkMutable(), func(i int) error { return x.SetIndex(i, v) }, x, key)
	case *Map:
		hadOld, err := x.HasKey(key)
		if err != nil {
			return err
		}
		var old StackItem
		if hadOld {
			old, _, err = x.Get(key)
			if err != nil {
				return err
			}
		}
		if err := x.SetKey(key, v); err != nil {
			return err
		}
		stored, _, err := x.Get(key)
		if err != nil {
			return err
		}
		if hadOld {
			e.rc.RemoveReference(old, x)
		} else {
			e.rc.AddReference(key, x)
		}
		e.rc.AddReference(stored, x)
		return nil
	case *Buffer:
		i, err := indexFrom(key)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(x.b) {
			return newFault(InvalidParameter, "setitem: index %d out of range", i)
		}
		vi, err := GetInteger(v)
		if err != nil {
			return err
		}
		n := vi.Big().Int64()
		if n < math.MinInt8 || n > math.MaxInt8 {
			return newFault(InvalidParameter, "setitem: buffer value %d out of signed-byte range", n)
		}
		x.b[i] = byte(int8(n))
		return nil
	default:
		return newFault(InvalidType, "setitem: %s does not support setitem", c.Type())
	}
}

// setIndexed is the shared Array/Struct SetIndex path: bounds-check,
// delegate the actual mutation (which re-validates mutability and bounds)
// to setFn, then swap the reference-counter edges.
func (e *Engine) setIndexed(items []StackItem, mutableErr error, setFn func(int) error, parent StackItem, key StackItem) error {
	if mutableErr != nil {
		return mutableErr
	}
	i, err := indexFrom(key)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(items) {
		return newFault(InvalidParameter, "setitem: index %d out of range", i)
	}
	old := items[i]
	if err := setFn(i); err != nil {
		return err
	}
	e.rc.RemoveReference(old, parent)
	e.rc.AddReference(items[i], parent)
	return nil
}

func (e *Engine) execReverseItems() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	switch c := v.(type) {
	case *Array:
		return c.Reverse()
	case *Struct:
		return c.Reverse()
	default:
		return newFault(InvalidType, "reverseitems: expected Array or Struct, got %s", v.Type())
	}
}

func (e *Engine) execRemove() error {
	key, err := e.pop()
	if err != nil {
		return err
	}
	c, err := e.pop()
	if err != nil {
		return err
	}
	switch x := c.(type) {
	case *Array:
		i, err := indexFrom(key)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(x.items) {
			return newFault(InvalidParameter, "remove: index %d out of range", i)
		}
		old := x.items[i]
		if err := x.Remove(i); err != nil {
			return err
		}
		e.rc.RemoveReference(old, x)
		return nil
	case *Struct:
		i, err := indexFrom(key)
		if err != nil {
			return err
		}
		if i < 0 || i >= len(x.items) {
			return newFault(InvalidParameter, "remove: index %d out of range", i)
		}
		old := x.items[i]
		if err := x.Remove(i); err != nil {
			return err
		}
		e.rc.RemoveReference(old, x)
		return nil
	case *Map:
		old, ok, err := x.Get(key)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := x.Remove(key); err != nil {
			return err
		}
		e.rc.RemoveReference(old, x)
		e.rc.RemoveReference(key, x)
		return nil
	default:
		return newFault(InvalidType, "remove: %s does not support remove", c.Type())
	}
}

func (e *Engine) execClearItems() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	switch x := v.(type) {
	case *Array:
		for _, it := range x.items {
			e.rc.RemoveReference(it, x)
		}
		return x.Clear()
	case *Struct:
		for _, it := range x.items {
			e.rc.RemoveReference(it, x)
		}
		return x.Clear()
	case *Map:
		for _, ent := range x.entries {
			e.rc.RemoveReference(ent.key, x)
			e.rc.RemoveReference(ent.value, x)
		}
		return x.Clear()
	default:
		return newFault(InvalidType, "clearitems: %s does not support clearitems", v.Type())
	}
}

// execPopItem implements PopItem: remove and push the last element of an
// Array or Struct.
func (e *Engine) execPopItem() error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	switch x := v.(type) {
	case *Array:
		if len(x.items) == 0 {
			return newFault(InvalidOperation, "popitem: array is empty")
		}
		i := len(x.items) - 1
		item := x.items[i]
		if err := x.Remove(i); err != nil {
			return err
		}
		e.rc.RemoveReference(item, x)
		e.push(item)
		return nil
	case *Struct:
		if len(x.items) == 0 {
			return newFault(InvalidOperation, "popitem: struct is empty")
		}
		i := len(x.items) - 1
		item := x.items[i]
		if err := x.Remove(i); err != nil {
			return err
		}
		e.rc.RemoveReference(item, x)
		e.push(item)
		return nil
	default:
		return newFault(InvalidType, "popitem: expected Array or Struct, got %s", v.Type())
	}
}
