package engine

import "encoding/binary"

// asm assembles raw bytecode for tests, the way the teacher's own
// lang/compiler/asm.go test helper assembles opcodes into a Funcode: a thin
// byte-buffer builder with two-pass label support so jump/call/try targets
// don't have to be hand-computed as magic offsets in every test.
type asm struct {
	buf     []byte
	labels  map[string]int
	patches []asmPatch
}

type asmPatch struct {
	pos     int // offset of the first operand byte
	size    int // 1 or 4
	label   string
	relBase int // instruction start; the patched value is label - relBase
}

func newAsm() *asm {
	return &asm{labels: make(map[string]int)}
}

// op appends a bare opcode byte (no operand).
func (a *asm) op(o Opcode) *asm {
	a.buf = append(a.buf, byte(o))
	return a
}

// fixed appends an opcode followed by a size-byte little-endian
// two's-complement operand.
func (a *asm) fixed(o Opcode, v int64, size int) *asm {
	a.buf = append(a.buf, byte(o))
	a.appendInt(v, size)
	return a
}

func (a *asm) appendInt(v int64, size int) {
	for i := 0; i < size; i++ {
		a.buf = append(a.buf, byte(v))
		v >>= 8
	}
}

// data appends PushData1/2/4 with a length prefix sized to fit len(b).
func (a *asm) data(b []byte) *asm {
	switch {
	case len(b) < 1<<8:
		a.buf = append(a.buf, byte(PushData1), byte(len(b)))
	case len(b) < 1<<16:
		a.buf = append(a.buf, byte(PushData2))
		a.buf = binary.LittleEndian.AppendUint16(a.buf, uint16(len(b)))
	default:
		a.buf = append(a.buf, byte(PushData4))
		a.buf = binary.LittleEndian.AppendUint32(a.buf, uint32(len(b)))
	}
	a.buf = append(a.buf, b...)
	return a
}

// label records the current position under name, for a later jmpL/callL/
// tryL reference.
func (a *asm) label(name string) *asm {
	a.labels[name] = len(a.buf)
	return a
}

// jmpL appends a long-form jump (or CallL) whose 4-byte offset is
// patched to point at label once the full script is assembled.
func (a *asm) jmpL(o Opcode, label string) *asm {
	instrStart := len(a.buf)
	a.buf = append(a.buf, byte(o), 0, 0, 0, 0)
	a.patches = append(a.patches, asmPatch{pos: instrStart + 1, size: 4, label: label, relBase: instrStart})
	return a
}

// tryL appends a TryL with catch/finally labels; an empty label means no
// handler (encoded as offset 0, per spec section 4.9.1).
func (a *asm) tryL(catchLabel, finallyLabel string) *asm {
	instrStart := len(a.buf)
	a.buf = append(a.buf, byte(TryL), 0, 0, 0, 0, 0, 0, 0, 0)
	if catchLabel != "" {
		a.patches = append(a.patches, asmPatch{pos: instrStart + 1, size: 4, label: catchLabel, relBase: instrStart})
	}
	if finallyLabel != "" {
		a.patches = append(a.patches, asmPatch{pos: instrStart + 5, size: 4, label: finallyLabel, relBase: instrStart})
	}
	return a
}

// endTryL appends an EndTryL targeting label.
func (a *asm) endTryL(label string) *asm { return a.jmpL(EndTryL, label) }

// bytes resolves every recorded label reference and returns the finished
// script bytes.
func (a *asm) bytes() []byte {
	out := append([]byte(nil), a.buf...)
	for _, p := range a.patches {
		target, ok := a.labels[p.label]
		if !ok {
			panic("asm: unknown label " + p.label)
		}
		off := int64(target - p.relBase)
		for i := 0; i < p.size; i++ {
			out[p.pos+i] = byte(off)
			off >>= 8
		}
	}
	return out
}
