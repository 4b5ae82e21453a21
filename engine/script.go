package engine

import "fmt"

// Script is an immutable byte sequence together with a lazily-populated
// cache of decoded instructions, keyed by offset. This mirrors the
// teacher's Funcode/Program split (lang/compiler/compiled.go): the raw bytes
// are the wire format, decoding is memoized, and validation is an optional
// up-front pass rather than baked into every fetch.
type Script struct {
	bytes  []byte
	strict bool

	cache map[int]Instruction
}

// NewScript constructs a Script over b. When strict is true, every
// branch/call/try target reachable from a decoded instruction is validated
// to land on the start of another decoded instruction (and, for
// NewArrayT/IsType/Convert, to reference a valid StackItemType, which for
// IsType/Convert must not be Any);
// construction fails if validation does not hold.
func NewScript(b []byte, strict bool) (*Script, error) {
	s := &Script{bytes: b, strict: strict, cache: make(map[int]Instruction)}
	if strict {
		if err := s.validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of bytes in the script.
func (s *Script) Len() int { return len(s.bytes) }

// Bytes returns the underlying byte slice. Callers must not modify it.
func (s *Script) Bytes() []byte { return s.bytes }

// InstructionAt returns the decoded instruction starting at offset ip,
// decoding and memoizing it on first access.
func (s *Script) InstructionAt(ip int) (Instruction, error) {
	if ins, ok := s.cache[ip]; ok {
		return ins, nil
	}
	ins, err := decodeInstruction(s.bytes, ip)
	if err != nil {
		return Instruction{}, err
	}
	s.cache[ip] = ins
	return ins, nil
}

// validate walks every offset that starts a decoded instruction and checks
// branch/call/try targets and type operands. It decodes the entire script
// up front (every offset in [0,len) that is the start of an instruction),
// which both populates the cache and lets later target checks consult it.
func (s *Script) validate() error {
	starts := make(map[int]bool)
	for ip := 0; ip < len(s.bytes); {
		ins, err := decodeInstruction(s.bytes, ip)
		if err != nil {
			return err
		}
		s.cache[ip] = ins
		starts[ip] = true
		ip += ins.Length
	}

	isStart := func(off int) bool { return off >= 0 && off < len(s.bytes) && starts[off] }

	for ip, ins := range s.cache {
		switch ins.Op {
		case Jmp, JmpIf, JmpIfNot, JmpEq, JmpNe, JmpGt, JmpGe, JmpLt, JmpLe,
			JmpL, JmpIfL, JmpIfNotL, JmpEqL, JmpNeL, JmpGtL, JmpGeL, JmpLtL, JmpLeL,
			Call, CallL:
			target := ip + int(operandInt(ins.Operand))
			if !isStart(target) {
				return newFault(InvalidJump, "%s at %d targets %d", ins.Op, ip, target)
			}
		case Try:
			catch := ip + int(operandInt(ins.Operand[0:1]))
			finally := ip + int(operandInt(ins.Operand[1:2]))
			if err := validateTryTargets(ins, ip, catch, finally, isStart); err != nil {
				return err
			}
		case TryL:
			catch := ip + int(operandInt(ins.Operand[0:4]))
			finally := ip + int(operandInt(ins.Operand[4:8]))
			if err := validateTryTargets(ins, ip, catch, finally, isStart); err != nil {
				return err
			}
		case EndTry:
			target := ip + int(operandInt(ins.Operand))
			if !isStart(target) {
				return newFault(InvalidJump, "endtry at %d targets %d", ip, target)
			}
		case EndTryL:
			target := ip + int(operandInt(ins.Operand))
			if !isStart(target) {
				return newFault(InvalidJump, "endtryl at %d targets %d", ip, target)
			}
		case NewArrayT:
			if _, err := typeFromByte(ins.Operand[0]); err != nil {
				return err
			}
		case IsType, Convert:
			t, err := typeFromByte(ins.Operand[0])
			if err != nil {
				return err
			}
			if t == TypeAny {
				return newFault(InvalidParameter, "%s: type must not be Any", ins.Op)
			}
		}
	}
	return nil
}

// validateTryTargets checks a Try/TryL region has at least one of catch or
// finally present and that present targets land on an instruction start.
// Both fields use "offset == 0 means absent" (a relative offset of 0 would
// otherwise target the Try instruction itself, which can never be a valid
// target).
func validateTryTargets(ins Instruction, ip, catch, finally int, isStart func(int) bool) error {
	catchPresent := catch != ip
	finallyPresent := finally != ip
	if !catchPresent && !finallyPresent {
		return newFault(InvalidParameter, "%s at %d: no catch or finally block", ins.Op, ip)
	}
	if catchPresent && !isStart(catch) {
		return newFault(InvalidJump, "%s at %d: catch target %d invalid", ins.Op, ip, catch)
	}
	if finallyPresent && !isStart(finally) {
		return newFault(InvalidJump, "%s at %d: finally target %d invalid", ins.Op, ip, finally)
	}
	return nil
}

func typeFromByte(b byte) (StackItemType, error) {
	t := StackItemType(b)
	if !t.valid() {
		return 0, newFault(InvalidParameter, "unknown StackItemType %d", b)
	}
	return t, nil
}

func (s *Script) String() string { return fmt.Sprintf("script(%d bytes)", len(s.bytes)) }
