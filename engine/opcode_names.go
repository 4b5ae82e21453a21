package engine

// opcodeNames gives the mnemonic for each opcode, indexed by Opcode value.
// Tagging each entry by identifier (rather than relying on positional order)
// keeps this table safe to edit independently of opcode.go, the same
// defensive style the teacher uses for its own opcodeNames table in
// lang/compiler/opcode.go.
var opcodeNames = [opcodeMax]string{
	PushInt8:   "pushint8",
	PushInt16:  "pushint16",
	PushInt32:  "pushint32",
	PushInt64:  "pushint64",
	PushInt128: "pushint128",
	PushInt256: "pushint256",
	PushM1:     "pushm1",
	Push0:      "push0",
	Push1:      "push1",
	Push2:      "push2",
	Push3:      "push3",
	Push4:      "push4",
	Push5:      "push5",
	Push6:      "push6",
	Push7:      "push7",
	Push8:      "push8",
	Push9:      "push9",
	Push10:     "push10",
	Push11:     "push11",
	Push12:     "push12",
	Push13:     "push13",
	Push14:     "push14",
	Push15:     "push15",
	Push16:     "push16",
	PushTrue:   "pushtrue",
	PushFalse:  "pushfalse",
	PushNull:   "pushnull",

	Nop: "nop",

	PushData1: "pushdata1",
	PushData2: "pushdata2",
	PushData4: "pushdata4",

	PushA: "pusha",

	Jmp:       "jmp",
	JmpL:      "jmpl",
	JmpIf:     "jmpif",
	JmpIfL:    "jmpifl",
	JmpIfNot:  "jmpifnot",
	JmpIfNotL: "jmpifnotl",
	JmpEq:     "jmpeq",
	JmpEqL:    "jmpeql",
	JmpNe:     "jmpne",
	JmpNeL:    "jmpnel",
	JmpGt:     "jmpgt",
	JmpGtL:    "jmpgtl",
	JmpGe:     "jmpge",
	JmpGeL:    "jmpgel",
	JmpLt:     "jmplt",
	JmpLtL:    "jmpltl",
	JmpLe:     "jmple",
	JmpLeL:    "jmplel",

	Call:      "call",
	CallL:     "calll",
	CallA:     "calla",
	CallT:     "callt",
	Ret:       "ret",
	Syscall:   "syscall",
	Abort:     "abort",
	Assert:    "assert",
	AbortMsg:  "abortmsg",
	AssertMsg: "assertmsg",

	Try:        "try",
	TryL:       "tryl",
	EndTry:     "endtry",
	EndTryL:    "endtryl",
	EndFinally: "endfinally",
	Throw:      "throw",

	Depth:    "depth",
	Drop:     "drop",
	Nip:      "nip",
	Xdrop:    "xdrop",
	Clear:    "clear",
	Dup:      "dup",
	Over:     "over",
	Pick:     "pick",
	Tuck:     "tuck",
	Swap:     "swap",
	Rot:      "rot",
	Roll:     "roll",
	Reverse3: "reverse3",
	Reverse4: "reverse4",
	ReverseN: "reversen",

	InitSSLot: "initsslot",
	InitSlot:  "initslot",

	LdSFLd0: "ldsfld0", LdSFLd1: "ldsfld1", LdSFLd2: "ldsfld2", LdSFLd3: "ldsfld3",
	LdSFLd4: "ldsfld4", LdSFLd5: "ldsfld5", LdSFLd6: "ldsfld6", LdSFLd: "ldsfld",

	StSFLd0: "stsfld0", StSFLd1: "stsfld1", StSFLd2: "stsfld2", StSFLd3: "stsfld3",
	StSFLd4: "stsfld4", StSFLd5: "stsfld5", StSFLd6: "stsfld6", StSFLd: "stsfld",

	LdLoc0: "ldloc0", LdLoc1: "ldloc1", LdLoc2: "ldloc2", LdLoc3: "ldloc3",
	LdLoc4: "ldloc4", LdLoc5: "ldloc5", LdLoc6: "ldloc6", LdLoc: "ldloc",

	StLoc0: "stloc0", StLoc1: "stloc1", StLoc2: "stloc2", StLoc3: "stloc3",
	StLoc4: "stloc4", StLoc5: "stloc5", StLoc6: "stloc6", StLoc: "stloc",

	LdArg0: "ldarg0", LdArg1: "ldarg1", LdArg2: "ldarg2", LdArg3: "ldarg3",
	LdArg4: "ldarg4", LdArg5: "ldarg5", LdArg6: "ldarg6", LdArg: "ldarg",

	StArg0: "starg0", StArg1: "starg1", StArg2: "starg2", StArg3: "starg3",
	StArg4: "starg4", StArg5: "starg5", StArg6: "starg6", StArg: "starg",

	NewBuffer: "newbuffer",
	MemCpy:    "memcpy",
	Cat:       "cat",
	Substr:    "substr",
	Left:      "left",
	Right:     "right",

	Invert:   "invert",
	And:      "and",
	Or:       "or",
	Xor:      "xor",
	Equal:    "equal",
	NotEqual: "notequal",

	Sign:   "sign",
	Abs:    "abs",
	Negate: "negate",
	Inc:    "inc",
	Dec:    "dec",
	Add:    "add",
	Sub:    "sub",
	Mul:    "mul",
	Div:    "div",
	Mod:    "mod",
	Pow:    "pow",
	Sqrt:   "sqrt",
	ModMul: "modmul",
	ModPow: "modpow",
	Shl:    "shl",
	Shr:    "shr",

	Not:         "not",
	BoolAnd:     "booland",
	BoolOr:      "boolor",
	Nz:          "nz",
	NumEqual:    "numequal",
	NumNotEqual: "numnotequal",
	Lt:          "lt",
	Le:          "le",
	Gt:          "gt",
	Ge:          "ge",
	Min:         "min",
	Max:         "max",
	Within:      "within",

	PackMap:      "packmap",
	PackStruct:   "packstruct",
	Pack:         "pack",
	Unpack:       "unpack",
	NewArray0:    "newarray0",
	NewArray:     "newarray",
	NewArrayT:    "newarrayt",
	NewStruct0:   "newstruct0",
	NewStruct:    "newstruct",
	NewMap:       "newmap",
	Size:         "size",
	HasKey:       "haskey",
	Keys:         "keys",
	Values:       "values",
	PickItem:     "pickitem",
	Append:       "append",
	SetItem:      "setitem",
	ReverseItems: "reverseitems",
	Remove:       "remove",
	ClearItems:   "clearitems",
	PopItem:      "popitem",

	IsNull:  "isnull",
	IsType:  "istype",
	Convert: "convert",
}
