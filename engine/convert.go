package engine

// ConvertTo implements convert_to (spec section 4.3). Conversion to the
// item's own type is always identity; conversion to Boolean uses Truth;
// Integer/ByteString/Buffer interconvert via little-endian two's-complement
// bytes; Array and Struct rewrap the same element sequence. Every other
// combination fails with InvalidCast.
func ConvertTo(v StackItem, target StackItemType) (StackItem, error) {
	if v.Type() == target {
		return v, nil
	}

	if target == TypeBoolean {
		return Boolean(Truth(v)), nil
	}

	switch v.Type() {
	case TypeInteger:
		i := v.(*Integer)
		switch target {
		case TypeByteString:
			return NewByteString(integerToBytes(i.v)), nil
		case TypeBuffer:
			return NewBufferFromBytes(integerToBytes(i.v)), nil
		}
	case TypeByteString:
		s := v.(*ByteString)
		switch target {
		case TypeInteger:
			return integerFromSlice(s.b)
		case TypeBuffer:
			return NewBufferFromBytes(s.b), nil
		}
	case TypeBuffer:
		b := v.(*Buffer)
		switch target {
		case TypeInteger:
			if len(b.b) > maxIntegerBytes {
				return nil, newFault(InvalidCast, "buffer exceeds %d bytes", maxIntegerBytes)
			}
			return integerFromSlice(b.b)
		case TypeByteString:
			return NewByteString(b.b), nil
		}
	case TypeArray:
		a := v.(*Array)
		if target == TypeStruct {
			return &Struct{items: a.items, readOnly: a.readOnly}, nil
		}
	case TypeStruct:
		s := v.(*Struct)
		if target == TypeArray {
			return &Array{items: s.items, readOnly: s.readOnly}, nil
		}
	}

	return nil, newFault(InvalidCast, "cannot convert %s to %s", v.Type(), target)
}
