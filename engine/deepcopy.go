package engine

// DeepCopy implements deep_copy (spec section 4.3). Primitives copy
// trivially (they are immutable already, except Buffer — see below).
// Compounds are walked with a source-to-copy map to preserve sharing and
// terminate on cycles; a fresh Array/Struct is built with recursively
// copied children, frozen (marked read-only) when asImmutable is set.
// Buffer copies to a new Buffer, or to an immutable ByteString snapshot
// when asImmutable is set.
func DeepCopy(v StackItem, asImmutable bool) StackItem {
	seen := make(map[StackItem]StackItem)
	return deepCopy(v, asImmutable, seen)
}

func deepCopy(v StackItem, asImmutable bool, seen map[StackItem]StackItem) StackItem {
	switch x := v.(type) {
	case *Buffer:
		if asImmutable {
			return NewByteString(x.b)
		}
		return NewBufferFromBytes(x.b)

	case *Array:
		if cp, ok := seen[v]; ok {
			return cp
		}
		cp := &Array{items: make([]StackItem, len(x.items))}
		seen[v] = cp
		for i, e := range x.items {
			cp.items[i] = deepCopy(e, asImmutable, seen)
		}
		if asImmutable {
			cp.readOnly = true
		}
		return cp

	case *Struct:
		if cp, ok := seen[v]; ok {
			return cp
		}
		cp := &Struct{items: make([]StackItem, len(x.items))}
		seen[v] = cp
		for i, e := range x.items {
			cp.items[i] = deepCopy(e, asImmutable, seen)
		}
		if asImmutable {
			cp.readOnly = true
		}
		return cp

	case *Map:
		if cp, ok := seen[v]; ok {
			return cp
		}
		cp := NewMap(len(x.entries))
		seen[v] = cp
		for _, e := range x.entries {
			k := deepCopy(e.key, asImmutable, seen)
			val := deepCopy(e.value, asImmutable, seen)
			ck, _ := canonicalKey(k)
			cp.idx.Put(ck, len(cp.entries))
			cp.entries = append(cp.entries, mapEntry{key: k, value: val})
		}
		if asImmutable {
			cp.readOnly = true
		}
		return cp

	default:
		// Null, Boolean, Integer, ByteString, Pointer, InteropInterface are
		// immutable already; return as-is.
		return v
	}
}
