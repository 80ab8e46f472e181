package gir

import (
	"tlog.app/go/loc"
)

type (
	// Value is an SSA value: a function argument, a constant or an
	// instruction result.
	Value interface {
		Type() *Type
		Name() string
		SetName(name string)

		users() *[]*Instr
	}

	valueBase struct {
		name string
		typ  *Type

		// instructions holding this value as an operand
		use []*Instr

		// creation site, for internal-error reports
		From loc.PC
	}

	Arg struct {
		valueBase

		Index int

		fn *Func
	}

	// Const is an immediate.  Constants are not uniqued: each one belongs
	// to the instruction that consumes it.
	Const struct {
		valueBase

		Int  int64
		Null bool
	}

	Op int

	Pred int

	Instr struct {
		valueBase

		Op   Op
		Pred Pred

		// operands, phi incoming values included
		Args []Value

		Callee *Func

		// br: {target}; condbr: {taken, fallthrough}
		Targets []*Block

		// phi incoming blocks, parallel to Args
		Incoming []*Block

		MD map[string][]int64

		Blk *Block
	}
)

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpAnd
	OpOr
	OpXor
	OpShl
	OpLShr
	OpAShr

	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFRem

	OpICmp
	OpSExt
	OpZExt

	OpPhi
	OpCall

	OpBr
	OpCondBr
	OpRet
	OpRetVoid
	OpUnreachable

	OpAlloca
	OpLoad

	NumOps
)

const (
	PredEQ Pred = iota
	PredNE
	PredSLT
	PredSGE
	PredSGT
	PredSLE
)

// metadata keys
const (
	MDOffset       = "DexOff"
	MDRegInfo      = "RegInfo"
	MDPromotionMap = "PromotionMap"
)

var opNames = [NumOps]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul",
	OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpShl: "shl", OpLShr: "lshr", OpAShr: "ashr",

	OpFAdd: "fadd", OpFSub: "fsub", OpFMul: "fmul", OpFDiv: "fdiv", OpFRem: "frem",

	OpICmp: "icmp", OpSExt: "sext", OpZExt: "zext",

	OpPhi: "phi", OpCall: "call",

	OpBr: "br", OpCondBr: "condbr", OpRet: "ret", OpRetVoid: "retvoid",
	OpUnreachable: "unreachable",

	OpAlloca: "alloca", OpLoad: "load",
}

var predNames = []string{"eq", "ne", "slt", "sge", "sgt", "sle"}

func (v *valueBase) Type() *Type         { return v.typ }
func (v *valueBase) Name() string        { return v.name }
func (v *valueBase) SetName(name string) { v.name = name }
func (v *valueBase) users() *[]*Instr    { return &v.use }

// ReplaceAllUses rewires every use of old to point at repl.
func ReplaceAllUses(old, repl Value) {
	if old == repl {
		return
	}

	use := old.users()

	for _, x := range *use {
		for i, a := range x.Args {
			if a == old {
				x.Args[i] = repl
			}
		}

		*repl.users() = append(*repl.users(), x)
	}

	*use = nil
}

// TakeName moves the name of src onto dst, leaving src anonymous.
func TakeName(dst, src Value) {
	dst.SetName(src.Name())
	src.SetName("")
}

// NumUses reports how many instruction operands hold the value.
func NumUses(v Value) int {
	return len(*v.users())
}

func (op Op) String() string {
	if op < 0 || op >= NumOps {
		return "op???"
	}

	return opNames[op]
}

func (op Op) IsTerm() bool {
	switch op {
	case OpBr, OpCondBr, OpRet, OpRetVoid, OpUnreachable:
		return true
	}

	return false
}

func (p Pred) String() string {
	if p < 0 || int(p) >= len(predNames) {
		return "pred???"
	}

	return predNames[p]
}

func (x *Instr) addUse(v Value) {
	*v.users() = append(*v.users(), x)
}

// AddIncoming appends one phi input.
func (x *Instr) AddIncoming(v Value, bb *Block) {
	if x.Op != OpPhi {
		panic(x.Op)
	}

	x.Args = append(x.Args, v)
	x.Incoming = append(x.Incoming, bb)
	x.addUse(v)
}

// ConstOperand returns the operand if it is an integer constant.
func ConstOperand(v Value) (*Const, bool) {
	c, ok := v.(*Const)
	if !ok || c.Null {
		return nil, false
	}

	return c, true
}

// Metadata returns the attached record under key, nil if absent.
func (x *Instr) Metadata(key string) []int64 {
	if x.MD == nil {
		return nil
	}

	return x.MD[key]
}

func (x *Instr) SetMetadata(key string, data []int64) {
	if x.MD == nil {
		x.MD = map[string][]int64{}
	}

	x.MD[key] = data
}
