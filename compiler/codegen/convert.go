package codegen

import (
	"fmt"

	"github.com/AOSP-LEGACY/art/compiler/gir"
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

// opKind is the generic arithmetic operation recovered from an opcode.
type opKind int

const (
	kOpAdd opKind = iota
	kOpSub
	kOpRsub
	kOpMul
	kOpDiv
	kOpRem
	kOpAnd
	kOpOr
	kOpXor
	kOpLsl
	kOpLsr
	kOpAsr
)

// convertInsn translates one instruction at the builder insert point.
// Operand locations are prepared from the dataflow attributes; invokes pull
// theirs straight from the ssa rep.
func (c *fwd) convertInsn(bb *mir.BasicBlock, x *mir.Insn) error {
	if x.Op == mir.OpPhi {
		c.convertPhi(x)
		return nil
	}

	var src [3]mir.RegLocation
	src[0], src[1], src[2] = mir.BadLoc, mir.BadLoc, mir.BadLoc

	dest := mir.BadLoc
	objectDef := false

	attrs := x.Op.Attrs()
	nextSReg := 0
	nextLoc := 0

	if attrs.Has(mir.UseA) {
		if attrs.Has(mir.WideA) {
			src[nextLoc] = c.m.GetSrcWide(x, nextSReg)
			nextSReg += 2
		} else {
			src[nextLoc] = c.m.GetSrc(x, nextSReg)
			nextSReg++
		}

		nextLoc++
	}

	if attrs.Has(mir.UseB) {
		if attrs.Has(mir.WideB) {
			src[nextLoc] = c.m.GetSrcWide(x, nextSReg)
			nextSReg += 2
		} else {
			src[nextLoc] = c.m.GetSrc(x, nextSReg)
			nextSReg++
		}

		nextLoc++
	}

	if attrs.Has(mir.UseC) {
		if attrs.Has(mir.WideC) {
			src[nextLoc] = c.m.GetSrcWide(x, nextSReg)
		} else {
			src[nextLoc] = c.m.GetSrc(x, nextSReg)
		}
	}

	if attrs.Has(mir.DefA) {
		dest = c.m.GetDest(x)

		if !attrs.Has(mir.WideA) && dest.Ref {
			objectDef = true
		}
	}

	switch x.Op {
	case mir.OpNop:

	case mir.OpMove, mir.OpMoveFrom16, mir.OpMove16,
		mir.OpMoveWide, mir.OpMoveWideFrom16, mir.OpMoveWide16,
		mir.OpMoveObject, mir.OpMoveObjectFrom16, mir.OpMoveObject16:
		// meaningless in ssa form, but kept as explicit copy calls so
		// the reverse pass can rebuild the register maps
		res := c.B.CreateCall(c.intr.fn(copyIntrinsic(dest)), c.val(src[0]))
		c.defineValue(res, dest.OrigSReg)

	case mir.OpConst4, mir.OpConst16, mir.OpConst:
		c.convertConst(dest, int64(x.B))
	case mir.OpConstHigh16:
		c.convertConst(dest, int64(x.B<<16))
	case mir.OpConstWide16, mir.OpConstWide32:
		c.convertConst(dest, int64(x.B))
	case mir.OpConstWide:
		c.convertConst(dest, x.BWide)
	case mir.OpConstWideHigh16:
		c.convertConst(dest, int64(x.B)<<48)

	case mir.OpConstString, mir.OpConstStringJumbo:
		c.convertConstObject(ConstString, x.B, dest)
	case mir.OpConstClass:
		c.convertConstObject(ConstClass, x.B, dest)

	case mir.OpReturn, mir.OpReturnWide, mir.OpReturnObject:
		c.convertReturn(c.val(src[0]))
	case mir.OpReturnVoid:
		c.convertReturn(nil)

	case mir.OpIfEq, mir.OpIfNe, mir.OpIfLt, mir.OpIfGe, mir.OpIfGt, mir.OpIfLe:
		c.convertCompareAndBranch(bb, x, src[0], src[1])
	case mir.OpIfEqz, mir.OpIfNez, mir.OpIfLtz, mir.OpIfGez, mir.OpIfGtz, mir.OpIfLez:
		c.convertCompareZeroAndBranch(bb, x, src[0])

	case mir.OpGoto, mir.OpGoto16, mir.OpGoto32:
		taken := c.m.Block(bb.Taken)
		if taken.StartOffset <= bb.StartOffset {
			c.emitSuspendCheck()
		}

		c.B.CreateBr(c.blocks[bb.Taken])

	case mir.OpAddInt, mir.OpAddInt2Addr, mir.OpAddLong, mir.OpAddLong2Addr:
		c.convertArithOp(kOpAdd, dest, src[0], src[1])
	case mir.OpSubInt, mir.OpSubInt2Addr, mir.OpSubLong, mir.OpSubLong2Addr:
		c.convertArithOp(kOpSub, dest, src[0], src[1])
	case mir.OpMulInt, mir.OpMulInt2Addr, mir.OpMulLong, mir.OpMulLong2Addr:
		c.convertArithOp(kOpMul, dest, src[0], src[1])
	case mir.OpDivInt, mir.OpDivInt2Addr, mir.OpDivLong, mir.OpDivLong2Addr:
		c.convertArithOp(kOpDiv, dest, src[0], src[1])
	case mir.OpRemInt, mir.OpRemInt2Addr, mir.OpRemLong, mir.OpRemLong2Addr:
		c.convertArithOp(kOpRem, dest, src[0], src[1])
	case mir.OpAndInt, mir.OpAndInt2Addr, mir.OpAndLong, mir.OpAndLong2Addr:
		c.convertArithOp(kOpAnd, dest, src[0], src[1])
	case mir.OpOrInt, mir.OpOrInt2Addr, mir.OpOrLong, mir.OpOrLong2Addr:
		c.convertArithOp(kOpOr, dest, src[0], src[1])
	case mir.OpXorInt, mir.OpXorInt2Addr, mir.OpXorLong, mir.OpXorLong2Addr:
		c.convertArithOp(kOpXor, dest, src[0], src[1])

	case mir.OpShlInt, mir.OpShlInt2Addr, mir.OpShlLong, mir.OpShlLong2Addr:
		c.convertShift(kOpLsl, dest, src[0], src[1])
	case mir.OpShrInt, mir.OpShrInt2Addr, mir.OpShrLong, mir.OpShrLong2Addr:
		c.convertShift(kOpAsr, dest, src[0], src[1])
	case mir.OpUshrInt, mir.OpUshrInt2Addr, mir.OpUshrLong, mir.OpUshrLong2Addr:
		c.convertShift(kOpLsr, dest, src[0], src[1])

	case mir.OpAddIntLit16, mir.OpAddIntLit8:
		c.convertArithOpLit(kOpAdd, dest, src[0], x.C)
	case mir.OpRsubInt, mir.OpRsubIntLit8:
		c.convertArithOpLit(kOpRsub, dest, src[0], x.C)
	case mir.OpMulIntLit16, mir.OpMulIntLit8:
		c.convertArithOpLit(kOpMul, dest, src[0], x.C)
	case mir.OpDivIntLit16, mir.OpDivIntLit8:
		c.convertArithOpLit(kOpDiv, dest, src[0], x.C)
	case mir.OpRemIntLit16, mir.OpRemIntLit8:
		c.convertArithOpLit(kOpRem, dest, src[0], x.C)
	case mir.OpAndIntLit16, mir.OpAndIntLit8:
		c.convertArithOpLit(kOpAnd, dest, src[0], x.C)
	case mir.OpOrIntLit16, mir.OpOrIntLit8:
		c.convertArithOpLit(kOpOr, dest, src[0], x.C)
	case mir.OpXorIntLit16, mir.OpXorIntLit8:
		c.convertArithOpLit(kOpXor, dest, src[0], x.C)
	case mir.OpShlIntLit8:
		c.convertArithOpLit(kOpLsl, dest, src[0], x.C&0x1f)
	case mir.OpShrIntLit8:
		c.convertArithOpLit(kOpAsr, dest, src[0], x.C&0x1f)
	case mir.OpUshrIntLit8:
		c.convertArithOpLit(kOpLsr, dest, src[0], x.C&0x1f)

	case mir.OpAddFloat, mir.OpAddFloat2Addr, mir.OpAddDouble, mir.OpAddDouble2Addr:
		c.convertFPArithOp(gir.OpFAdd, dest, src[0], src[1])
	case mir.OpSubFloat, mir.OpSubFloat2Addr, mir.OpSubDouble, mir.OpSubDouble2Addr:
		c.convertFPArithOp(gir.OpFSub, dest, src[0], src[1])
	case mir.OpMulFloat, mir.OpMulFloat2Addr, mir.OpMulDouble, mir.OpMulDouble2Addr:
		c.convertFPArithOp(gir.OpFMul, dest, src[0], src[1])
	case mir.OpDivFloat, mir.OpDivFloat2Addr, mir.OpDivDouble, mir.OpDivDouble2Addr:
		c.convertFPArithOp(gir.OpFDiv, dest, src[0], src[1])
	case mir.OpRemFloat, mir.OpRemFloat2Addr, mir.OpRemDouble, mir.OpRemDouble2Addr:
		c.convertFPArithOp(gir.OpFRem, dest, src[0], src[1])

	case mir.OpInvokeStatic:
		c.convertInvoke(x, InvokeStatic, false)
	case mir.OpInvokeStaticRange:
		c.convertInvoke(x, InvokeStatic, true)
	case mir.OpInvokeDirect:
		c.convertInvoke(x, InvokeDirect, false)
	case mir.OpInvokeDirectRange:
		c.convertInvoke(x, InvokeDirect, true)
	case mir.OpInvokeVirtual:
		c.convertInvoke(x, InvokeVirtual, false)
	case mir.OpInvokeVirtualRange:
		c.convertInvoke(x, InvokeVirtual, true)
	case mir.OpInvokeSuper:
		c.convertInvoke(x, InvokeSuper, false)
	case mir.OpInvokeSuperRange:
		c.convertInvoke(x, InvokeSuper, true)
	case mir.OpInvokeInterface:
		c.convertInvoke(x, InvokeInterface, false)
	case mir.OpInvokeInterfaceRange:
		c.convertInvoke(x, InvokeInterface, true)

	case mir.OpFilledNewArray:
		c.convertInvoke(x, InvokeNewArray, false)
	case mir.OpFilledNewArrayRange:
		c.convertInvoke(x, InvokeNewArray, true)

	case mir.OpCheckCast:
		c.B.CreateCall(c.intr.fn(CheckCast), c.B.Int32(x.B), c.val(src[0]))
	case mir.OpInstanceOf:
		res := c.B.CreateCall(c.intr.fn(InstanceOf), c.B.Int32(x.C), c.val(src[0]))
		c.defineValue(res, dest.OrigSReg)

	case mir.OpNewInstance:
		res := c.B.CreateCall(c.intr.fn(NewInstance), c.B.Int32(x.B))
		c.defineValue(res, dest.OrigSReg)
	case mir.OpNewArray:
		res := c.B.CreateCall(c.intr.fn(NewArray), c.B.Int32(x.C), c.val(src[0]))
		c.defineValue(res, dest.OrigSReg)

	case mir.OpArrayLength:
		res := c.B.CreateCall(c.intr.fn(ArrayLengthOp), c.B.Int32(x.OptFlags), c.val(src[0]))
		c.defineValue(res, dest.OrigSReg)

	case mir.OpFillArrayData:
		c.B.CreateCall(c.intr.fn(FillArrayData), c.B.Int32(x.B), c.val(src[0]))

	case mir.OpMonitorEnter:
		c.B.CreateCall(c.intr.fn(MonitorEnter), c.B.Int32(x.OptFlags), c.val(src[0]))
	case mir.OpMonitorExit:
		c.B.CreateCall(c.intr.fn(MonitorExit), c.B.Int32(x.OptFlags), c.val(src[0]))

	case mir.OpMoveException:
		res := c.B.CreateCall(c.intr.fn(GetException))
		c.defineValue(res, dest.OrigSReg)

	case mir.OpThrow:
		c.B.CreateCall(c.intr.fn(ThrowException), c.val(src[0]))
		c.B.CreateUnreachable()

	case mir.OpThrowVerificationError:
		c.B.CreateCall(c.intr.fn(ThrowVerificationError), c.B.Int32(x.A), c.B.Int32(x.B))
		c.B.CreateUnreachable()

	case mir.OpMoveResult, mir.OpMoveResultWide, mir.OpMoveResultObject:
		// folded into the invoke by the ssa front end
		panic(fmt.Sprintf("unexpected %v at 0x%x", x.Op, x.Offset))

	case mir.OpSgetObject:
		c.convertSget(HLSgetObject, x.B, dest)
	case mir.OpSget:
		c.convertSget(pick(dest.FP, HLSgetFloat, HLSget), x.B, dest)
	case mir.OpSgetBoolean:
		c.convertSget(HLSgetBoolean, x.B, dest)
	case mir.OpSgetByte:
		c.convertSget(HLSgetByte, x.B, dest)
	case mir.OpSgetChar:
		c.convertSget(HLSgetChar, x.B, dest)
	case mir.OpSgetShort:
		c.convertSget(HLSgetShort, x.B, dest)
	case mir.OpSgetWide:
		c.convertSget(pick(dest.FP, HLSgetDouble, HLSgetWide), x.B, dest)

	case mir.OpSputObject:
		c.convertSput(HLSputObject, x.B, src[0])
	case mir.OpSput:
		c.convertSput(pick(src[0].FP, HLSputFloat, HLSput), x.B, src[0])
	case mir.OpSputBoolean:
		c.convertSput(HLSputBoolean, x.B, src[0])
	case mir.OpSputByte:
		c.convertSput(HLSputByte, x.B, src[0])
	case mir.OpSputChar:
		c.convertSput(HLSputChar, x.B, src[0])
	case mir.OpSputShort:
		c.convertSput(HLSputShort, x.B, src[0])
	case mir.OpSputWide:
		c.convertSput(pick(src[0].FP, HLSputDouble, HLSputWide), x.B, src[0])

	case mir.OpIget:
		c.convertIget(pick(dest.FP, HLIGetFloat, HLIGet), x, dest, src[0])
	case mir.OpIgetObject:
		c.convertIget(HLIGetObject, x, dest, src[0])
	case mir.OpIgetBoolean:
		c.convertIget(HLIGetBoolean, x, dest, src[0])
	case mir.OpIgetByte:
		c.convertIget(HLIGetByte, x, dest, src[0])
	case mir.OpIgetChar:
		c.convertIget(HLIGetChar, x, dest, src[0])
	case mir.OpIgetShort:
		c.convertIget(HLIGetShort, x, dest, src[0])
	case mir.OpIgetWide:
		c.convertIget(pick(dest.FP, HLIGetDouble, HLIGetWide), x, dest, src[0])

	case mir.OpIput:
		c.convertIput(pick(src[0].FP, HLIPutFloat, HLIPut), x, src[0], src[1])
	case mir.OpIputObject:
		c.convertIput(HLIPutObject, x, src[0], src[1])
	case mir.OpIputBoolean:
		c.convertIput(HLIPutBoolean, x, src[0], src[1])
	case mir.OpIputByte:
		c.convertIput(HLIPutByte, x, src[0], src[1])
	case mir.OpIputChar:
		c.convertIput(HLIPutChar, x, src[0], src[1])
	case mir.OpIputShort:
		c.convertIput(HLIPutShort, x, src[0], src[1])
	case mir.OpIputWide:
		c.convertIput(pick(src[0].FP, HLIPutDouble, HLIPutWide), x, src[0], src[1])

	case mir.OpAget:
		c.convertAget(pick(dest.FP, HLArrayGetFloat, HLArrayGet), x, dest, src[0], src[1])
	case mir.OpAgetObject:
		c.convertAget(HLArrayGetObject, x, dest, src[0], src[1])
	case mir.OpAgetBoolean:
		c.convertAget(HLArrayGetBoolean, x, dest, src[0], src[1])
	case mir.OpAgetByte:
		c.convertAget(HLArrayGetByte, x, dest, src[0], src[1])
	case mir.OpAgetChar:
		c.convertAget(HLArrayGetChar, x, dest, src[0], src[1])
	case mir.OpAgetShort:
		c.convertAget(HLArrayGetShort, x, dest, src[0], src[1])
	case mir.OpAgetWide:
		c.convertAget(pick(dest.FP, HLArrayGetDouble, HLArrayGetWide), x, dest, src[0], src[1])

	case mir.OpAput:
		c.convertAput(pick(src[0].FP, HLArrayPutFloat, HLArrayPut), x, src[0], src[1], src[2])
	case mir.OpAputObject:
		c.convertAput(HLArrayPutObject, x, src[0], src[1], src[2])
	case mir.OpAputBoolean:
		c.convertAput(HLArrayPutBoolean, x, src[0], src[1], src[2])
	case mir.OpAputByte:
		c.convertAput(HLArrayPutByte, x, src[0], src[1], src[2])
	case mir.OpAputChar:
		c.convertAput(HLArrayPutChar, x, src[0], src[1], src[2])
	case mir.OpAputShort:
		c.convertAput(HLArrayPutShort, x, src[0], src[1], src[2])
	case mir.OpAputWide:
		c.convertAput(pick(src[0].FP, HLArrayPutDouble, HLArrayPutWide), x, src[0], src[1], src[2])

	case mir.OpIntToLong:
		res := c.B.CreateSExt(c.val(src[0]), c.Ctx.Int64())
		c.defineValue(res, dest.OrigSReg)
	case mir.OpIntToByte:
		c.convertIntNarrowing(IntToByte, dest, src[0])
	case mir.OpIntToChar:
		c.convertIntNarrowing(IntToChar, dest, src[0])
	case mir.OpIntToShort:
		c.convertIntNarrowing(IntToShort, dest, src[0])

	default:
		return UnsupportedError{Op: x.Op.String(), Offset: x.Offset}
	}

	if objectDef {
		c.setShadowFrameEntry(c.values[dest.OrigSReg], dest)
	}

	return nil
}

func pick(cond bool, a, b IntrinsicID) IntrinsicID {
	if cond {
		return a
	}

	return b
}

func (c *fwd) convertPhi(x *mir.Insn) {
	dest := c.m.GetDest(x)

	phi := c.B.CreatePhi(c.typeOf(dest))

	for i := 0; i < len(x.SSA.Uses); {
		loc := c.m.Loc[x.SSA.Uses[i]]

		phi.AddIncoming(c.val(loc), c.blocks[x.Incoming[i]])

		if loc.Wide {
			i += 2
		} else {
			i++
		}
	}

	c.defineValue(phi, dest.OrigSReg)
}

func (c *fwd) convertConst(dest mir.RegLocation, imm int64) {
	var cv gir.Value
	if dest.Wide {
		cv = c.B.Int64(imm)
	} else {
		cv = c.B.Int32(int32(imm))
	}

	res := c.B.CreateCall(c.intr.fn(constIntrinsic(dest)), cv)
	c.defineValue(res, dest.OrigSReg)
}

func (c *fwd) convertConstObject(id IntrinsicID, idx int32, dest mir.RegLocation) {
	res := c.B.CreateCall(c.intr.fn(id), c.B.Int32(idx))
	c.defineValue(res, dest.OrigSReg)
}

func (c *fwd) convertReturn(v gir.Value) {
	if !c.m.Leaf {
		c.emitSuspendCheck()
	}

	c.B.CreateCall(c.intr.fn(PopShadowFrame))

	if v != nil {
		c.B.CreateRet(v)
	} else {
		c.B.CreateRetVoid()
	}
}

func condOf(op mir.Opcode) gir.Pred {
	switch op {
	case mir.OpIfEq, mir.OpIfEqz:
		return gir.PredEQ
	case mir.OpIfNe, mir.OpIfNez:
		return gir.PredNE
	case mir.OpIfLt, mir.OpIfLtz:
		return gir.PredSLT
	case mir.OpIfGe, mir.OpIfGez:
		return gir.PredSGE
	case mir.OpIfGt, mir.OpIfGtz:
		return gir.PredSGT
	case mir.OpIfLe, mir.OpIfLez:
		return gir.PredSLE
	default:
		panic(op)
	}
}

func (c *fwd) convertCompareAndBranch(bb *mir.BasicBlock, x *mir.Insn, s1, s2 mir.RegLocation) {
	if c.m.Block(bb.Taken).StartOffset <= x.Offset {
		c.emitSuspendCheck()
	}

	cond := c.B.CreateICmp(condOf(x.Op), c.val(s1), c.val(s2))
	cond.SetName(fmt.Sprintf("t%d", c.temps))
	c.temps++

	c.B.CreateCondBr(cond, c.blocks[bb.Taken], c.blocks[bb.FallThrough])
}

func (c *fwd) convertCompareZeroAndBranch(bb *mir.BasicBlock, x *mir.Insn, s1 mir.RegLocation) {
	if c.m.Block(bb.Taken).StartOffset <= x.Offset {
		c.emitSuspendCheck()
	}

	l := c.val(s1)

	var r gir.Value
	if s1.Ref {
		r = c.B.Null(l.Type())
	} else {
		r = c.B.Int32(0)
	}

	cond := c.B.CreateICmp(condOf(x.Op), l, r)
	cond.SetName(fmt.Sprintf("t%d", c.temps))
	c.temps++

	c.B.CreateCondBr(cond, c.blocks[bb.Taken], c.blocks[bb.FallThrough])
}

func (c *fwd) genDivMod(isDiv, isLong bool, l, r gir.Value) gir.Value {
	var id IntrinsicID
	switch {
	case isLong && isDiv:
		id = DivLong
	case isLong:
		id = RemLong
	case isDiv:
		id = DivInt
	default:
		id = RemInt
	}

	return c.B.CreateCall(c.intr.fn(id), l, r)
}

func (c *fwd) genArithOp(op opKind, wide bool, l, r gir.Value) gir.Value {
	switch op {
	case kOpAdd:
		return c.B.CreateAdd(l, r)
	case kOpSub:
		return c.B.CreateSub(l, r)
	case kOpRsub:
		return c.B.CreateSub(r, l)
	case kOpMul:
		return c.B.CreateMul(l, r)
	case kOpAnd:
		return c.B.CreateAnd(l, r)
	case kOpOr:
		return c.B.CreateOr(l, r)
	case kOpXor:
		return c.B.CreateXor(l, r)
	case kOpDiv:
		return c.genDivMod(true, wide, l, r)
	case kOpRem:
		return c.genDivMod(false, wide, l, r)
	case kOpLsl:
		return c.B.CreateShl(l, r)
	case kOpLsr:
		return c.B.CreateLShr(l, r)
	case kOpAsr:
		return c.B.CreateAShr(l, r)
	default:
		panic(op)
	}
}

func (c *fwd) convertArithOp(op opKind, dest, s1, s2 mir.RegLocation) {
	res := c.genArithOp(op, dest.Wide, c.val(s1), c.val(s2))
	c.defineValue(res, dest.OrigSReg)
}

func (c *fwd) convertArithOpLit(op opKind, dest, s1 mir.RegLocation, imm int32) {
	res := c.genArithOp(op, dest.Wide, c.val(s1), c.B.Int32(imm))
	c.defineValue(res, dest.OrigSReg)
}

// convertShift widens the narrow shift count of a wide shift: the substrate
// wants both operands the same width, the reverse pass strips the extension.
func (c *fwd) convertShift(op opKind, dest, s1, s2 mir.RegLocation) {
	l := c.val(s1)
	r := c.val(s2)

	if dest.Wide {
		r = c.B.CreateZExt(r, c.Ctx.Int64())
	}

	res := c.genArithOp(op, dest.Wide, l, r)
	c.defineValue(res, dest.OrigSReg)
}

func (c *fwd) convertFPArithOp(op gir.Op, dest, s1, s2 mir.RegLocation) {
	res := c.B.CreateBinOp(op, c.val(s1), c.val(s2))
	c.defineValue(res, dest.OrigSReg)
}

// convertInvoke also serves filled-new-array, which collects arguments the
// same way.  The return intrinsic is chosen by actual result usage: a call
// whose result is unused converts as a void invoke.
func (c *fwd) convertInvoke(x *mir.Insn, kind InvokeKind, isRange bool) {
	info := newCallInfo(c.m, x, kind, isRange)

	args := []gir.Value{
		c.B.Int32(int32(kind)),
		c.B.Int32(info.Index),
		c.B.Int32(info.OptFlags),
	}

	for i := 0; i < len(info.Args); {
		args = append(args, c.val(info.Args[i]))

		if info.Args[i].Wide {
			i += 2
		} else {
			i++
		}
	}

	var id IntrinsicID
	switch {
	case kind == InvokeNewArray:
		id = FilledNewArray
	case info.Result.Kind == mir.LocInvalid:
		id = HLInvokeVoid
	case info.Result.Wide && info.Result.FP:
		id = HLInvokeDouble
	case info.Result.Wide:
		id = HLInvokeLong
	case info.Result.Ref:
		id = HLInvokeObj
	case info.Result.FP:
		id = HLInvokeFloat
	default:
		id = HLInvokeInt
	}

	res := c.B.CreateCall(c.intr.fn(id), args...)

	if info.Result.Kind != mir.LocInvalid {
		c.defineValue(res, info.Result.OrigSReg)
	}
}

func (c *fwd) convertSget(id IntrinsicID, fieldIdx int32, dest mir.RegLocation) {
	res := c.B.CreateCall(c.intr.fn(id), c.B.Int32(fieldIdx))
	c.defineValue(res, dest.OrigSReg)
}

func (c *fwd) convertSput(id IntrinsicID, fieldIdx int32, src mir.RegLocation) {
	c.B.CreateCall(c.intr.fn(id), c.B.Int32(fieldIdx), c.val(src))
}

func (c *fwd) convertIget(id IntrinsicID, x *mir.Insn, dest, obj mir.RegLocation) {
	res := c.B.CreateCall(c.intr.fn(id), c.B.Int32(x.OptFlags), c.val(obj), c.B.Int32(x.C))
	c.defineValue(res, dest.OrigSReg)
}

func (c *fwd) convertIput(id IntrinsicID, x *mir.Insn, src, obj mir.RegLocation) {
	c.B.CreateCall(c.intr.fn(id), c.B.Int32(x.OptFlags), c.val(src), c.val(obj), c.B.Int32(x.C))
}

func (c *fwd) convertAget(id IntrinsicID, x *mir.Insn, dest, array, index mir.RegLocation) {
	res := c.B.CreateCall(c.intr.fn(id), c.B.Int32(x.OptFlags), c.val(array), c.val(index))
	c.defineValue(res, dest.OrigSReg)
}

func (c *fwd) convertAput(id IntrinsicID, x *mir.Insn, src, array, index mir.RegLocation) {
	c.B.CreateCall(c.intr.fn(id), c.B.Int32(x.OptFlags), c.val(src), c.val(array), c.val(index))
}

func (c *fwd) convertIntNarrowing(id IntrinsicID, dest, src mir.RegLocation) {
	res := c.B.CreateCall(c.intr.fn(id), c.val(src))
	c.defineValue(res, dest.OrigSReg)
}

func constIntrinsic(loc mir.RegLocation) IntrinsicID {
	switch {
	case loc.Wide && loc.FP:
		return ConstDouble
	case loc.Wide:
		return ConstLong
	case loc.FP:
		return ConstFloat
	case loc.Ref:
		return ConstObj
	default:
		return ConstInt
	}
}

func copyIntrinsic(loc mir.RegLocation) IntrinsicID {
	switch {
	case loc.Wide && loc.FP:
		return CopyDouble
	case loc.Wide:
		return CopyLong
	case loc.FP:
		return CopyFloat
	case loc.Ref:
		return CopyObj
	default:
		return CopyInt
	}
}
