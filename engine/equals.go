package engine

import "bytes"

// Equals implements spec section 4.3's equality rules, bounded by
// maxComparable — a budget on the total number of bytes/elements examined,
// decremented as comparison recurses, so that a pathological cyclic or huge
// input cannot make a single Equal/NotEqual opcode run unbounded work (spec
// section 4.9.1: "bounded by max_comparable_size").
func Equals(x, y StackItem, maxComparable int) (bool, error) {
	budget := maxComparable
	return equalsBudget(x, y, &budget, 0)
}

// maxEqualsDepth bounds recursion depth on cyclic Struct input, independent
// of the byte/element budget (spec section 4.3: "guarded by a
// comparable-size budget and a stack-size budget").
const maxEqualsDepth = 2048

func equalsBudget(x, y StackItem, budget *int, depth int) (bool, error) {
	if depth > maxEqualsDepth {
		return false, newFault(InvalidOperation, "comparison nesting too deep")
	}
	if *budget <= 0 {
		return false, newFault(InvalidOperation, "comparison exceeds size budget")
	}
	*budget--

	// Pointer: identity defined as same script and offset, not struct pointer
	// identity.
	if xp, ok := x.(*Pointer); ok {
		yp, ok := y.(*Pointer)
		return ok && xp.Script == yp.Script && xp.Offset == yp.Offset, nil
	}

	switch x.(type) {
	case *Array:
		xa := x.(*Array)
		ya, ok := y.(*Array)
		return ok && xa == ya, nil
	case *Map:
		xm := x.(*Map)
		ym, ok := y.(*Map)
		return ok && xm == ym, nil
	case *InteropInterface:
		xi := x.(*InteropInterface)
		yi, ok := y.(*InteropInterface)
		return ok && xi == yi, nil
	}

	if xs, ok := x.(*Struct); ok {
		ys, ok := y.(*Struct)
		if !ok {
			return false, nil
		}
		if xs == ys {
			return true, nil
		}
		if len(xs.items) != len(ys.items) {
			return false, nil
		}
		*budget -= len(xs.items)
		if *budget < 0 {
			return false, newFault(InvalidOperation, "comparison exceeds size budget")
		}
		for i := range xs.items {
			eq, err := equalsBudget(xs.items[i], ys.items[i], budget, depth+1)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	}

	// Remaining combinations: Boolean/Integer/ByteString/Buffer, compared
	// cross-type by numeric promotion, with a byte-comparison fallback
	// between the two byte-backed kinds.
	return equalsPrimitive(x, y, budget)
}

func equalsPrimitive(x, y StackItem, budget *int) (bool, error) {
	_, xIsByteBacked := rawSlice(x)
	_, yIsByteBacked := rawSlice(y)

	if xIsByteBacked && yIsByteBacked {
		xb, _ := rawSlice(x)
		yb, _ := rawSlice(y)
		*budget -= len(xb) + len(yb)
		if *budget < 0 {
			return false, newFault(InvalidOperation, "comparison exceeds size budget")
		}
		return bytes.Equal(xb, yb), nil
	}

	if numericLikeType(x) && numericLikeType(y) {
		xi, err := GetInteger(x)
		if err != nil {
			return false, nil
		}
		yi, err := GetInteger(y)
		if err != nil {
			return false, nil
		}
		return xi.v.Cmp(yi.v) == 0, nil
	}

	return false, nil
}

// numericLikeType reports whether v is one of Boolean/Integer/ByteString/
// Buffer, the kinds that participate in cross-type numeric-promotion
// equality.
func numericLikeType(v StackItem) bool {
	switch v.(type) {
	case Boolean, *Integer, *ByteString, *Buffer:
		return true
	default:
		return false
	}
}
