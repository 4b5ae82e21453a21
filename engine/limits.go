package engine

// Limits bounds the resources a single program execution may consume. It is
// a plain struct with documented defaults, the same shape as Thread's
// MaxSteps/MaxCallStackDepth/MaxCompareDepth fields in the teacher repo this
// engine is adapted from: the embedder fills in a Limits value, and NewEngine
// replaces each zero-valued numeric field with its DefaultLimits value.
type Limits struct {
	// MaxShift bounds the shift amount for Shl/Shr and the exponent for Pow.
	MaxShift int
	// MaxStackSize bounds the reference counter's total_references, checked
	// after every instruction.
	MaxStackSize int
	// MaxItemSize bounds the size in bytes of a single ByteString/Buffer item.
	MaxItemSize int
	// MaxComparableSize bounds the byte/element budget of a single Equal or
	// NotEqual operation.
	MaxComparableSize int
	// MaxInvocationStackSize bounds the number of nested call frames.
	MaxInvocationStackSize int
	// MaxTryNestingDepth bounds the number of nested try regions per frame.
	MaxTryNestingDepth int
	// CatchEngineExceptions controls whether VM-raised Faults (as opposed to
	// user Throw values) are catchable by a try/catch region.
	CatchEngineExceptions bool
}

// DefaultLimits mirrors the reference defaults from spec section 6.
var DefaultLimits = Limits{
	MaxShift:                256,
	MaxStackSize:            2048,
	MaxItemSize:             1 << 20,
	MaxComparableSize:       65536,
	MaxInvocationStackSize:  1024,
	MaxTryNestingDepth:      16,
	CatchEngineExceptions:   true,
}

// withDefaults returns l with every zero-valued numeric field replaced by the
// corresponding DefaultLimits field. CatchEngineExceptions has no sensible
// zero-means-default story (false is a legitimate choice), so it is left
// untouched: a zero Limits{} runs with CatchEngineExceptions false, unlike
// DefaultLimits.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits
	if l.MaxShift <= 0 {
		l.MaxShift = d.MaxShift
	}
	if l.MaxStackSize <= 0 {
		l.MaxStackSize = d.MaxStackSize
	}
	if l.MaxItemSize <= 0 {
		l.MaxItemSize = d.MaxItemSize
	}
	if l.MaxComparableSize <= 0 {
		l.MaxComparableSize = d.MaxComparableSize
	}
	if l.MaxInvocationStackSize <= 0 {
		l.MaxInvocationStackSize = d.MaxInvocationStackSize
	}
	if l.MaxTryNestingDepth <= 0 {
		l.MaxTryNestingDepth = d.MaxTryNestingDepth
	}
	return l
}
