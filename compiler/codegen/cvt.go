package codegen

import (
	"fmt"

	"github.com/AOSP-LEGACY/art/compiler/gir"
	"github.com/AOSP-LEGACY/art/compiler/lir"
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

func condFromPred(p gir.Pred) lir.Cond {
	switch p {
	case gir.PredEQ:
		return lir.CondEq
	case gir.PredNE:
		return lir.CondNe
	case gir.PredSLT:
		return lir.CondLt
	case gir.PredSGE:
		return lir.CondGe
	case gir.PredSGT:
		return lir.CondGt
	case gir.PredSLE:
		return lir.CondLe
	default:
		panic(p)
	}
}

// constInt unwraps an immediate operand the forward pass is known to emit.
func constInt(v gir.Value) int64 {
	cn, ok := v.(*gir.Const)
	if !ok {
		panic(fmt.Sprintf("immediate operand expected, got %q", v.Name()))
	}

	return cn.Int
}

// isImm reports a constant operand, null references included.
func isImm(v gir.Value) (int64, bool) {
	cn, ok := v.(*gir.Const)
	if !ok {
		return 0, false
	}

	return cn.Int, true
}

// cvtICmpBr lowers a fused compare and conditional branch.  The left operand
// is never a constant: the forward pass keeps the register on the left, and
// canonicalizing optimizers do the same.
func (c *rev) cvtICmpBr(x, br *gir.Instr) {
	if _, ok := isImm(x.Args[0]); ok {
		panic(fmt.Sprintf("constant compare lhs at 0x%x", c.off))
	}

	cond := condFromPred(x.Pred)
	l := c.getLoc(x.Args[0])

	taken := c.labels[br.Targets[0]]
	fall := c.labels[br.Targets[1]]

	if imm, ok := isImm(x.Args[1]); ok {
		op := lir.OpCmpBranch
		if imm == 0 {
			op = lir.OpCmpZeroBranch
		}

		c.p.Append(&lir.Insn{Op: op, Offset: c.off, Cond: cond, Src1: l, Imm: imm, Label: taken})
	} else {
		r := c.getLoc(x.Args[1])

		c.p.Append(&lir.Insn{Op: lir.OpCmpBranch, Offset: c.off, Cond: cond, Src1: l, Src2: r, Label: taken})
	}

	c.p.Append(&lir.Insn{Op: lir.OpGoto, Offset: c.off, Label: fall})
}

// cvtBinOp recovers the bytecode arithmetic op from the generic one.  A
// constant right operand recovers the literal form; a constant left operand
// only exists for reverse subtraction.
func (c *rev) cvtBinOp(op opKind, x *gir.Instr) {
	dest := c.getLoc(x)

	if imm, ok := isImm(x.Args[0]); ok {
		if op != kOpSub || dest.Wide {
			panic(fmt.Sprintf("constant lhs of %v at 0x%x", x.Op, c.off))
		}

		c.p.Append(&lir.Insn{
			Op: lir.OpArithLit, Offset: c.off, MirOp: mir.OpRsubInt,
			Dest: dest, Src1: c.getLoc(x.Args[1]), Imm: imm,
		})

		return
	}

	l := c.getLoc(x.Args[0])

	if imm, ok := isImm(x.Args[1]); ok {
		if dest.Wide {
			panic(fmt.Sprintf("wide literal %v at 0x%x", x.Op, c.off))
		}

		c.p.Append(&lir.Insn{
			Op: lir.OpArithLit, Offset: c.off, MirOp: getArithOpcode(op, true, false),
			Dest: dest, Src1: l, Imm: imm,
		})

		return
	}

	c.p.Append(&lir.Insn{
		Op: lir.OpArith, Offset: c.off, MirOp: getArithOpcode(op, false, dest.Wide),
		Dest: dest, Src1: l, Src2: c.getLoc(x.Args[1]),
	})
}

// cvtShiftOp strips the count extension the forward pass inserted for wide
// shifts and lowers the rest like any binary op.
func (c *rev) cvtShiftOp(op opKind, x *gir.Instr) {
	dest := c.getLoc(x)

	if !dest.Wide {
		c.cvtBinOp(op, x)
		return
	}

	ext, ok := x.Args[1].(*gir.Instr)
	if !ok || ext.Op != gir.OpZExt {
		panic(fmt.Sprintf("wide shift count is not an extension at 0x%x", c.off))
	}

	c.p.Append(&lir.Insn{
		Op: lir.OpArith, Offset: c.off, MirOp: getArithOpcode(op, false, true),
		Dest: dest, Src1: c.getLoc(x.Args[0]), Src2: c.getLoc(ext.Args[0]),
	})
}

func (c *rev) cvtBinFPOp(x *gir.Instr) {
	dest := c.getLoc(x)

	c.p.Append(&lir.Insn{
		Op: lir.OpArith, Offset: c.off, MirOp: getFPOpcode(x.Op, dest.Wide),
		Dest: dest, Src1: c.getLoc(x.Args[0]), Src2: c.getLoc(x.Args[1]),
	})
}

// cvtIntExt lowers a sign extension.  Zero extensions only exist as wide
// shift count adjustments and never reach here.
func (c *rev) cvtIntExt(x *gir.Instr) {
	c.p.Append(&lir.Insn{
		Op: lir.OpIntCast, Offset: c.off, MirOp: mir.OpIntToLong,
		Dest: c.getLoc(x), Src1: c.getLoc(x.Args[0]),
	})
}

// cvtRet parks the result in the return register pair and emits the
// epilogue.  The matching frame teardown call was already lowered.
func (c *rev) cvtRet(v gir.Value) {
	if v != nil {
		src := c.getLoc(v)
		dest := retLoc(src)

		op := lir.OpMove
		if src.Wide {
			op = lir.OpMoveWide
		}

		c.p.Append(&lir.Insn{Op: op, Offset: c.off, Dest: dest, Src1: src})
	}

	c.p.Append(&lir.Insn{Op: lir.OpExit, Offset: c.off})
}

// retLoc is the canonical return location of a value class: the first
// register, the first pair for wide values.
func retLoc(src mir.RegLocation) mir.RegLocation {
	loc := mir.BadLoc
	loc.Kind = mir.LocPhysReg
	loc.Home = true

	loc.Wide = src.Wide
	loc.FP = src.FP
	loc.Ref = src.Ref
	loc.Core = src.Core
	loc.Defined = true

	loc.LowReg = 0
	if src.Wide {
		loc.HighReg = 1
	}

	return loc
}

func (c *rev) cvtCall(x *gir.Instr) error {
	id := c.intr.id(x.Callee)

	switch id {
	case MethodInfo:
		c.cvtMethodInfo(x)

	case AllocaShadowFrame, SetShadowFrameEntry, PopShadowFrame:
		// reference bookkeeping folds into the entry and exit sequences

	case CheckSuspend:
		pad := c.addPad(lir.OpSuspendLaunchpad, c.off)
		c.p.Append(&lir.Insn{Op: lir.OpSuspendTest, Offset: c.off, Label: pad})

	case ConstInt, ConstFloat, ConstObj:
		c.p.Append(&lir.Insn{Op: lir.OpLoadConst, Offset: c.off, Dest: c.getLoc(x), Imm: constInt(x.Args[0])})
	case ConstLong, ConstDouble:
		c.p.Append(&lir.Insn{Op: lir.OpLoadConstWide, Offset: c.off, Dest: c.getLoc(x), Imm: constInt(x.Args[0])})

	case ConstString:
		c.p.Append(&lir.Insn{Op: lir.OpConstString, Offset: c.off, Dest: c.getLoc(x), Index: int32(constInt(x.Args[0]))})
	case ConstClass:
		c.p.Append(&lir.Insn{Op: lir.OpConstClass, Offset: c.off, Dest: c.getLoc(x), Index: int32(constInt(x.Args[0]))})

	case CopyInt, CopyFloat, CopyObj:
		c.p.Append(&lir.Insn{Op: lir.OpMove, Offset: c.off, Dest: c.getLoc(x), Src1: c.getLoc(x.Args[0])})
	case CopyLong, CopyDouble:
		c.p.Append(&lir.Insn{Op: lir.OpMoveWide, Offset: c.off, Dest: c.getLoc(x), Src1: c.getLoc(x.Args[0])})

	case DivInt, DivLong:
		c.cvtDivMod(x, kOpDiv)
	case RemInt, RemLong:
		c.cvtDivMod(x, kOpRem)

	case HLInvokeVoid, HLInvokeInt, HLInvokeLong, HLInvokeFloat, HLInvokeDouble, HLInvokeObj:
		c.cvtInvoke(x, id != HLInvokeVoid, lir.OpInvoke)
	case FilledNewArray:
		c.cvtInvoke(x, true, lir.OpFilledNewArray)

	case FillArrayData:
		c.p.Append(&lir.Insn{Op: lir.OpFillArrayData, Offset: c.off, Index: int32(constInt(x.Args[0])), Src1: c.getLoc(x.Args[1])})

	case NewInstance:
		c.p.Append(&lir.Insn{Op: lir.OpNewInstance, Offset: c.off, Dest: c.getLoc(x), Index: int32(constInt(x.Args[0]))})
	case NewArray:
		c.p.Append(&lir.Insn{Op: lir.OpNewArray, Offset: c.off, Dest: c.getLoc(x), Index: int32(constInt(x.Args[0])), Src1: c.getLoc(x.Args[1])})

	case ArrayLengthOp:
		array := c.getLoc(x.Args[1])

		pad := c.addPad(lir.OpThrowLaunchpad, c.off)
		c.p.Append(&lir.Insn{Op: lir.OpNullCheck, Offset: c.off, Src1: array, OptFlags: int32(constInt(x.Args[0])), Label: pad})
		c.p.Append(&lir.Insn{Op: lir.OpArrayLength, Offset: c.off, Dest: c.getLoc(x), Src1: array})

	case CheckCast:
		c.p.Append(&lir.Insn{Op: lir.OpCheckCast, Offset: c.off, Index: int32(constInt(x.Args[0])), Src1: c.getLoc(x.Args[1])})
	case InstanceOf:
		c.p.Append(&lir.Insn{Op: lir.OpInstanceOf, Offset: c.off, Dest: c.getLoc(x), Index: int32(constInt(x.Args[0])), Src1: c.getLoc(x.Args[1])})

	case MonitorEnter:
		c.p.Append(&lir.Insn{Op: lir.OpMonitorEnter, Offset: c.off, OptFlags: int32(constInt(x.Args[0])), Src1: c.getLoc(x.Args[1])})
	case MonitorExit:
		c.p.Append(&lir.Insn{Op: lir.OpMonitorExit, Offset: c.off, OptFlags: int32(constInt(x.Args[0])), Src1: c.getLoc(x.Args[1])})

	case GetException:
		c.p.Append(&lir.Insn{Op: lir.OpMoveException, Offset: c.off, Dest: c.getLoc(x)})

	case ThrowException:
		pad := c.addPad(lir.OpThrowLaunchpad, c.off)
		c.p.Append(&lir.Insn{Op: lir.OpThrow, Offset: c.off, Src1: c.getLoc(x.Args[0]), Label: pad})

	case ThrowVerificationError:
		pad := c.addPad(lir.OpThrowLaunchpad, c.off)
		c.p.Append(&lir.Insn{
			Op: lir.OpThrowVerificationError, Offset: c.off,
			Index: int32(constInt(x.Args[0])), Imm: constInt(x.Args[1]), Label: pad,
		})

	case HLSget, HLSgetObject, HLSgetBoolean, HLSgetByte, HLSgetChar, HLSgetShort,
		HLSgetWide, HLSgetFloat, HLSgetDouble:
		c.p.Append(&lir.Insn{Op: lir.OpSget, Offset: c.off, Dest: c.getLoc(x), Index: int32(constInt(x.Args[0]))})

	case HLSput, HLSputObject, HLSputBoolean, HLSputByte, HLSputChar, HLSputShort,
		HLSputWide, HLSputFloat, HLSputDouble:
		c.p.Append(&lir.Insn{Op: lir.OpSput, Offset: c.off, Index: int32(constInt(x.Args[0])), Src1: c.getLoc(x.Args[1])})

	case HLIGet, HLIGetObject, HLIGetBoolean, HLIGetByte, HLIGetChar, HLIGetShort,
		HLIGetWide, HLIGetFloat, HLIGetDouble:
		c.p.Append(&lir.Insn{
			Op: lir.OpIget, Offset: c.off, Size: fieldSize(id),
			Dest: c.getLoc(x), Src1: c.getLoc(x.Args[1]),
			Index: int32(constInt(x.Args[2])), OptFlags: int32(constInt(x.Args[0])),
		})

	case HLIPut, HLIPutObject, HLIPutBoolean, HLIPutByte, HLIPutChar, HLIPutShort,
		HLIPutWide, HLIPutFloat, HLIPutDouble:
		c.p.Append(&lir.Insn{
			Op: lir.OpIput, Offset: c.off, Size: fieldSize(id),
			Src1: c.getLoc(x.Args[1]), Src2: c.getLoc(x.Args[2]),
			Index: int32(constInt(x.Args[3])), OptFlags: int32(constInt(x.Args[0])),
		})

	case HLArrayGet, HLArrayGetObject, HLArrayGetBoolean, HLArrayGetByte, HLArrayGetChar, HLArrayGetShort,
		HLArrayGetWide, HLArrayGetFloat, HLArrayGetDouble:
		c.p.Append(&lir.Insn{
			Op: lir.OpAget, Offset: c.off, Size: fieldSize(id),
			Dest: c.getLoc(x), Src1: c.getLoc(x.Args[1]), Src2: c.getLoc(x.Args[2]),
			OptFlags: int32(constInt(x.Args[0])),
		})

	case HLArrayPut, HLArrayPutObject, HLArrayPutBoolean, HLArrayPutByte, HLArrayPutChar, HLArrayPutShort,
		HLArrayPutWide, HLArrayPutFloat, HLArrayPutDouble:
		c.p.Append(&lir.Insn{
			Op: lir.OpAput, Offset: c.off, Size: fieldSize(id),
			Src1: c.getLoc(x.Args[1]), Src2: c.getLoc(x.Args[2]), Src3: c.getLoc(x.Args[3]),
			OptFlags: int32(constInt(x.Args[0])),
		})

	case IntToByte:
		c.cvtIntNarrow(x, mir.OpIntToByte)
	case IntToChar:
		c.cvtIntNarrow(x, mir.OpIntToChar)
	case IntToShort:
		c.cvtIntNarrow(x, mir.OpIntToShort)

	case UnknownIntrinsic:
		panic(fmt.Sprintf("unknown intrinsic %q at 0x%x", x.Callee.Name, c.off))

	default:
		panic(fmt.Sprintf("unhandled intrinsic %v at 0x%x", id, c.off))
	}

	return nil
}

// cvtMethodInfo cross-checks the frame geometry metadata against the entry
// sequence.  The rest of the record rides through to the allocator.
func (c *rev) cvtMethodInfo(x *gir.Instr) {
	info := x.Metadata(gir.MDRegInfo)
	if len(info) != 5 {
		panic(fmt.Sprintf("malformed reg info record, %d words", len(info)))
	}

	if int(info[0]) != c.numArgWords {
		panic(fmt.Sprintf("reg info claims %d ins, entry has %d", info[0], c.numArgWords))
	}
}

func (c *rev) cvtDivMod(x *gir.Instr, op opKind) {
	dest := c.getLoc(x)

	if imm, ok := isImm(x.Args[1]); ok && !dest.Wide {
		c.p.Append(&lir.Insn{
			Op: lir.OpArithLit, Offset: c.off, MirOp: getArithOpcode(op, true, false),
			Dest: dest, Src1: c.getLoc(x.Args[0]), Imm: imm,
		})

		return
	}

	c.p.Append(&lir.Insn{
		Op: lir.OpArith, Offset: c.off, MirOp: getArithOpcode(op, false, dest.Wide),
		Dest: dest, Src1: c.getLoc(x.Args[0]), Src2: c.getLoc(x.Args[1]),
	})
}

// cvtInvoke rebuilds the call descriptor from the operand protocol: kind,
// index and flags immediates, then the word-expanded arguments.
func (c *rev) cvtInvoke(x *gir.Instr, hasResult bool, op lir.Op) {
	info := &CallInfo{
		Kind:     InvokeKind(constInt(x.Args[0])),
		Index:    int32(constInt(x.Args[1])),
		OptFlags: int32(constInt(x.Args[2])),
		Offset:   c.off,
		Result:   mir.BadLoc,
	}

	for _, a := range x.Args[3:] {
		loc := c.getLoc(a)

		info.Args = append(info.Args, loc)

		if loc.Wide {
			info.Args = append(info.Args, wideSecond(loc))
		}
	}

	if hasResult {
		info.Result = c.getLoc(x)
	}

	pad := c.addPad(lir.OpIntrinsicLaunchpad, c.off)

	c.p.Append(&lir.Insn{
		Op: op, Offset: c.off, Label: pad,
		Dest: info.Result, Index: info.Index, OptFlags: info.OptFlags,
		Args: info.Args, Aux: info,
	})
}

func (c *rev) cvtIntNarrow(x *gir.Instr, op mir.Opcode) {
	c.p.Append(&lir.Insn{
		Op: lir.OpIntCast, Offset: c.off, MirOp: op,
		Dest: c.getLoc(x), Src1: c.getLoc(x.Args[0]),
	})
}

// fieldSize maps a typed access intrinsic onto its memory width.
func fieldSize(id IntrinsicID) lir.Size {
	switch id {
	case HLIGetWide, HLIPutWide, HLArrayGetWide, HLArrayPutWide,
		HLIGetDouble, HLIPutDouble, HLArrayGetDouble, HLArrayPutDouble:
		return lir.SizeLong
	case HLIGetBoolean, HLIPutBoolean, HLArrayGetBoolean, HLArrayPutBoolean:
		return lir.SizeUnsignedByte
	case HLIGetByte, HLIPutByte, HLArrayGetByte, HLArrayPutByte:
		return lir.SizeSignedByte
	case HLIGetChar, HLIPutChar, HLArrayGetChar, HLArrayPutChar:
		return lir.SizeUnsignedHalf
	case HLIGetShort, HLIPutShort, HLArrayGetShort, HLArrayPutShort:
		return lir.SizeSignedHalf
	default:
		return lir.SizeWord
	}
}

// getArithOpcode recovers the exact bytecode opcode from the generic kind.
func getArithOpcode(op opKind, isConst, isWide bool) mir.Opcode {
	switch {
	case isWide:
		switch op {
		case kOpAdd:
			return mir.OpAddLong
		case kOpSub:
			return mir.OpSubLong
		case kOpMul:
			return mir.OpMulLong
		case kOpDiv:
			return mir.OpDivLong
		case kOpRem:
			return mir.OpRemLong
		case kOpAnd:
			return mir.OpAndLong
		case kOpOr:
			return mir.OpOrLong
		case kOpXor:
			return mir.OpXorLong
		case kOpLsl:
			return mir.OpShlLong
		case kOpAsr:
			return mir.OpShrLong
		case kOpLsr:
			return mir.OpUshrLong
		}
	case isConst:
		switch op {
		case kOpAdd:
			return mir.OpAddIntLit16
		case kOpSub:
			// no literal subtract exists, the reverse form carries it
			return mir.OpRsubIntLit8
		case kOpRsub:
			return mir.OpRsubInt
		case kOpMul:
			return mir.OpMulIntLit16
		case kOpDiv:
			return mir.OpDivIntLit16
		case kOpRem:
			return mir.OpRemIntLit16
		case kOpAnd:
			return mir.OpAndIntLit16
		case kOpOr:
			return mir.OpOrIntLit16
		case kOpXor:
			return mir.OpXorIntLit16
		case kOpLsl:
			return mir.OpShlIntLit8
		case kOpAsr:
			return mir.OpShrIntLit8
		case kOpLsr:
			return mir.OpUshrIntLit8
		}
	default:
		switch op {
		case kOpAdd:
			return mir.OpAddInt
		case kOpSub:
			return mir.OpSubInt
		case kOpMul:
			return mir.OpMulInt
		case kOpDiv:
			return mir.OpDivInt
		case kOpRem:
			return mir.OpRemInt
		case kOpAnd:
			return mir.OpAndInt
		case kOpOr:
			return mir.OpOrInt
		case kOpXor:
			return mir.OpXorInt
		case kOpLsl:
			return mir.OpShlInt
		case kOpAsr:
			return mir.OpShrInt
		case kOpLsr:
			return mir.OpUshrInt
		}
	}

	panic(fmt.Sprintf("no opcode for kind %d const %v wide %v", op, isConst, isWide))
}

func getFPOpcode(op gir.Op, isWide bool) mir.Opcode {
	if isWide {
		switch op {
		case gir.OpFAdd:
			return mir.OpAddDouble
		case gir.OpFSub:
			return mir.OpSubDouble
		case gir.OpFMul:
			return mir.OpMulDouble
		case gir.OpFDiv:
			return mir.OpDivDouble
		case gir.OpFRem:
			return mir.OpRemDouble
		}
	} else {
		switch op {
		case gir.OpFAdd:
			return mir.OpAddFloat
		case gir.OpFSub:
			return mir.OpSubFloat
		case gir.OpFMul:
			return mir.OpMulFloat
		case gir.OpFDiv:
			return mir.OpDivFloat
		case gir.OpFRem:
			return mir.OpRemFloat
		}
	}

	panic(op)
}
