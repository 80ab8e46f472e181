// Package lir is the target-neutral low-level instruction list produced by
// the reverse conversion pass.  It is what the register allocator and the
// assembler consume; neither lives in this repository.
package lir

import (
	"github.com/nikandfor/hacked/hfmt"

	"github.com/AOSP-LEGACY/art/compiler/mir"
)

type (
	Op int

	Cond int

	// Size is the memory access width of an array or field op.
	Size int

	Insn struct {
		Op     Op
		Offset int32

		// recovered bytecode opcode for arithmetic and narrowing ops
		MirOp mir.Opcode

		Dest mir.RegLocation
		Src1 mir.RegLocation
		Src2 mir.RegLocation
		Src3 mir.RegLocation

		Imm  int64
		Cond Cond
		Size Size

		// branch target or defined label
		Label int

		// field/type/method/table index
		Index int32

		OptFlags int32

		// entry prologue or invoke argument locations
		Args []mir.RegLocation

		// op-specific payload (call descriptor)
		Aux any
	}

	// Program is the ordered emission of one method.
	Program struct {
		Insns []*Insn

		NumLabels int
	}
)

const (
	// pseudo ops
	OpLabel Op = iota
	OpBoundary
	OpEntry
	OpExit

	// data movement
	OpMove
	OpMoveWide
	OpLoadConst
	OpLoadConstWide

	// arithmetic; MirOp carries the exact recovered opcode
	OpArith
	OpArithLit

	// control flow
	OpCmpBranch
	OpCmpZeroBranch
	OpGoto
	OpSuspendTest
	OpNullCheck

	// calls
	OpInvoke
	OpFilledNewArray

	// object and array
	OpConstString
	OpConstClass
	OpNewInstance
	OpNewArray
	OpInstanceOf
	OpCheckCast
	OpArrayLength
	OpFillArrayData
	OpMonitorEnter
	OpMonitorExit

	// exceptions
	OpMoveException
	OpThrow
	OpThrowVerificationError

	// fields and arrays
	OpSget
	OpSput
	OpIget
	OpIput
	OpAget
	OpAput

	// integral width conversions; MirOp carries the exact one
	OpIntCast

	// shared out-of-line sequences
	OpSuspendLaunchpad
	OpThrowLaunchpad
	OpIntrinsicLaunchpad

	NumOps
)

const (
	CondEq Cond = iota
	CondNe
	CondLt
	CondGe
	CondGt
	CondLe
)

const (
	SizeWord Size = iota
	SizeLong
	SizeUnsignedByte
	SizeSignedByte
	SizeUnsignedHalf
	SizeSignedHalf
)

var opNames = [NumOps]string{
	OpLabel:    "label",
	OpBoundary: "boundary",
	OpEntry:    "entry",
	OpExit:     "exit",

	OpMove:          "move",
	OpMoveWide:      "move-wide",
	OpLoadConst:     "load-const",
	OpLoadConstWide: "load-const-wide",

	OpArith:    "arith",
	OpArithLit: "arith-lit",

	OpCmpBranch:     "cmp-branch",
	OpCmpZeroBranch: "cmp-zero-branch",
	OpGoto:          "goto",
	OpSuspendTest:   "suspend-test",
	OpNullCheck:     "null-check",

	OpInvoke:         "invoke",
	OpFilledNewArray: "filled-new-array",

	OpConstString:   "const-string",
	OpConstClass:    "const-class",
	OpNewInstance:   "new-instance",
	OpNewArray:      "new-array",
	OpInstanceOf:    "instance-of",
	OpCheckCast:     "check-cast",
	OpArrayLength:   "array-length",
	OpFillArrayData: "fill-array-data",
	OpMonitorEnter:  "monitor-enter",
	OpMonitorExit:   "monitor-exit",

	OpMoveException:          "move-exception",
	OpThrow:                  "throw",
	OpThrowVerificationError: "throw-verification-error",

	OpSget: "sget",
	OpSput: "sput",
	OpIget: "iget",
	OpIput: "iput",
	OpAget: "aget",
	OpAput: "aput",

	OpIntCast: "int-cast",

	OpSuspendLaunchpad:   "suspend-launchpad",
	OpThrowLaunchpad:     "throw-launchpad",
	OpIntrinsicLaunchpad: "intrinsic-launchpad",
}

var condNames = []string{"eq", "ne", "lt", "ge", "gt", "le"}

func (op Op) String() string {
	if op < 0 || op >= NumOps {
		return "op???"
	}

	return opNames[op]
}

func (c Cond) String() string {
	if c < 0 || int(c) >= len(condNames) {
		return "cond???"
	}

	return condNames[c]
}

func (p *Program) NewLabel() int {
	l := p.NumLabels
	p.NumLabels++

	return l
}

func (p *Program) Append(x *Insn) {
	p.Insns = append(p.Insns, x)
}

// Listing renders an assembly-like dump of the program.
func (p *Program) Listing(b []byte) []byte {
	for _, x := range p.Insns {
		switch x.Op {
		case OpLabel:
			b = hfmt.Appendf(b, "L%d:	; 0x%x\n", x.Label, x.Offset)
			continue
		case OpBoundary:
			b = hfmt.Appendf(b, "	; 0x%x\n", x.Offset)
			continue
		}

		b = hfmt.Appendf(b, "	%v", x.Op)

		if x.Op == OpArith || x.Op == OpArithLit || x.Op == OpIntCast {
			b = hfmt.Appendf(b, "<%v>", x.MirOp)
		}

		if x.Dest.Kind != mir.LocInvalid {
			b = appendLoc(b, x.Dest)
		}

		if x.Src1.Kind != mir.LocInvalid {
			b = appendLoc(b, x.Src1)
		}

		if x.Src2.Kind != mir.LocInvalid {
			b = appendLoc(b, x.Src2)
		}

		if x.Src3.Kind != mir.LocInvalid {
			b = appendLoc(b, x.Src3)
		}

		switch x.Op {
		case OpArithLit, OpLoadConst, OpLoadConstWide:
			b = hfmt.Appendf(b, "	#%d", x.Imm)
		case OpCmpBranch, OpCmpZeroBranch:
			b = hfmt.Appendf(b, "	%v, L%d", x.Cond, x.Label)
		case OpGoto:
			b = hfmt.Appendf(b, "	L%d", x.Label)
		case OpSget, OpSput, OpIget, OpIput,
			OpConstString, OpConstClass,
			OpNewInstance, OpNewArray, OpInstanceOf, OpCheckCast,
			OpFillArrayData, OpThrowVerificationError:
			b = hfmt.Appendf(b, "	@%d", x.Index)
		case OpInvoke, OpFilledNewArray:
			b = hfmt.Appendf(b, "	@%d, args %d", x.Index, len(x.Args))
		case OpSuspendLaunchpad, OpThrowLaunchpad, OpIntrinsicLaunchpad:
			b = hfmt.Appendf(b, "	; 0x%x", x.Offset)
		}

		b = append(b, '\n')
	}

	return b
}

func appendLoc(b []byte, l mir.RegLocation) []byte {
	c := byte('r')

	switch {
	case l.FP:
		c = 'f'
	case l.Ref:
		c = 'o'
	}

	if l.SRegLow == mir.InvalidSReg {
		return hfmt.Appendf(b, "	%ct?", c)
	}

	if l.Wide {
		return hfmt.Appendf(b, "	%cv%d/hi", c, l.SRegLow)
	}

	return hfmt.Appendf(b, "	%cv%d", c, l.SRegLow)
}
