package engine

import (
	"math/big"
)

// maxIntegerBytes is the maximum two's-complement magnitude, in bytes, of an
// Integer stack item (spec section 3).
const maxIntegerBytes = 32

// Integer is an arbitrary-precision signed integer StackItem, limited to a
// 32-byte two's-complement magnitude. It wraps math/big.Int: no library in
// the retrieved pack implements *signed*, variable-width (1/2/4/8/16/32-byte)
// two's-complement integers the way PushInt8..PushInt256 require — see
// DESIGN.md for why github.com/holiman/uint256 (unsigned, fixed 256-bit)
// does not fit — so this is the one deliberate stdlib-only component.
type Integer struct {
	v *big.Int
}

func (*Integer) primitiveMarker() {}

func (i *Integer) Type() StackItemType { return TypeInteger }
func (i *Integer) String() string      { return "Integer(" + i.v.String() + ")" }

// Big returns the underlying big.Int. Callers must not mutate it.
func (i *Integer) Big() *big.Int { return i.v }

// NewInteger wraps v as an Integer StackItem, enforcing the 32-byte bound.
func NewInteger(v *big.Int) (*Integer, error) {
	if byteLen(v) > maxIntegerBytes {
		return nil, newFault(InvalidType, "integer magnitude exceeds %d bytes", maxIntegerBytes)
	}
	return &Integer{v: new(big.Int).Set(v)}, nil
}

// NewIntegerInt64 wraps a native int64 as an Integer StackItem.
func NewIntegerInt64(v int64) *Integer {
	return &Integer{v: big.NewInt(v)}
}

// byteLen returns the minimal number of bytes needed to represent v in
// two's-complement form (i.e. the smallest n such that
// -2^(8n-1) <= v < 2^(8n-1)).
func byteLen(v *big.Int) int {
	if v.Sign() == 0 {
		return 0
	}
	one := big.NewInt(1)
	for n := 1; n <= maxIntegerBytes+1; n++ {
		lo := new(big.Int).Lsh(one, uint(8*n-1))
		hi := new(big.Int).Set(lo)
		lo.Neg(lo)
		if v.Cmp(lo) >= 0 && v.Cmp(hi) < 0 {
			return n
		}
	}
	return maxIntegerBytes + 1
}

// integerFromBytes decodes a little-endian two's-complement byte slice.
func integerFromBytes(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	v := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		// negative: v - 2^(8*len(b))
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
		v.Sub(v, mod)
	}
	return v
}

// integerToBytes encodes v as a minimal little-endian two's-complement byte
// slice (empty for zero).
func integerToBytes(v *big.Int) []byte {
	n := byteLen(v)
	if n == 0 {
		return nil
	}
	var u big.Int
	if v.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
		u.Add(v, mod)
	} else {
		u.Set(v)
	}
	be := make([]byte, n)
	u.FillBytes(be)
	le := make([]byte, n)
	for i, c := range be {
		le[n-1-i] = c
	}
	return le
}

// integerToBytesPadded encodes v to exactly width bytes, little-endian
// two's-complement: the fixed-width form of a PushIntN operand, whose width
// is set by the opcode rather than derived from the value.
func integerToBytesPadded(v *big.Int, width int) []byte {
	b := integerToBytes(v)
	if len(b) > width {
		return b // caller validates width separately
	}
	out := make([]byte, width)
	copy(out, b)
	if v.Sign() < 0 {
		for i := len(b); i < width; i++ {
			out[i] = 0xff
		}
	}
	return out
}
