package codegen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AOSP-LEGACY/art/compiler/gir"
	"github.com/AOSP-LEGACY/art/compiler/lir"
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

func compileBoth(t *testing.T, m *mir.Method) *lir.Program {
	t.Helper()

	ctx := context.Background()

	bx := NewBridge()
	defer bx.Close()

	f, err := bx.MethodToBitcode(ctx, m)
	require.NoError(t, err)

	p, err := bx.BitcodeToLIR(ctx, f)
	require.NoError(t, err)

	return p
}

func findOp(p *lir.Program, op lir.Op) *lir.Insn {
	for _, x := range p.Insns {
		if x.Op == op {
			return x
		}
	}

	return nil
}

func countOp(p *lir.Program, op lir.Op) int {
	n := 0
	for _, x := range p.Insns {
		if x.Op == op {
			n++
		}
	}

	return n
}

func TestReverseAdd(t *testing.T) {
	p := compileBoth(t, addMethod())

	require.NotEmpty(t, p.Insns)
	assert.Equal(t, lir.OpLabel, p.Insns[0].Op)

	entry := p.Insns[1]
	require.Equal(t, lir.OpEntry, entry.Op)
	assert.Equal(t, mir.MethodBaseReg, entry.Src1.SRegLow)
	require.Len(t, entry.Args, 2)
	assert.Equal(t, 1, entry.Args[0].SRegLow)
	assert.Equal(t, 2, entry.Args[1].SRegLow)

	add := findOp(p, lir.OpArith)
	require.NotNil(t, add)
	assert.Equal(t, mir.OpAddInt, add.MirOp)
	assert.Equal(t, 0, add.Dest.SRegLow)
	assert.Equal(t, 1, add.Src1.SRegLow)
	assert.Equal(t, 2, add.Src2.SRegLow)

	// the return value lands in the canonical return register
	mv := findOp(p, lir.OpMove)
	require.NotNil(t, mv)
	assert.Equal(t, mir.LocPhysReg, mv.Dest.Kind)
	assert.Equal(t, 0, mv.Dest.LowReg)

	require.NotNil(t, findOp(p, lir.OpExit))
}

func TestReverseEntryWidePairs(t *testing.T) {
	m := &mir.Method{
		Name: "Arith.pick", Shorty: "JDJ",
		Static: true, Leaf: true,
		NumRegs: 1, NumIns: 4, NumSSARegs: 5,
		SRegMap:  []int{0, 1, 2, 3, 4},
		SSANames: []string{"v0_0", "v1_0", "v2_0", "v3_0", "v4_0"},
		Loc: []mir.RegLocation{
			coreLoc(0), fpWideLoc(1), coreLoc(2), wideLoc(3), coreLoc(4),
		},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, Taken: mir.NoBlock, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpReturnWide, SSA: mir.SSARep{Uses: []int{3, 4}}},
			}},
			{ID: 2, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}

	p := compileBoth(t, m)

	entry := findOp(p, lir.OpEntry)
	require.NotNil(t, entry)
	require.Len(t, entry.Args, 4)

	assert.Equal(t, 1, entry.Args[0].SRegLow)
	assert.True(t, entry.Args[0].FP)
	assert.Equal(t, 2, entry.Args[1].SRegLow)
	assert.Equal(t, 3, entry.Args[2].SRegLow)
	assert.Equal(t, 4, entry.Args[3].SRegLow)

	mv := findOp(p, lir.OpMoveWide)
	require.NotNil(t, mv)
	assert.Equal(t, 1, mv.Dest.HighReg)
}

func TestReverseRsubLit(t *testing.T) {
	m := &mir.Method{
		Name: "Arith.rsub", Shorty: "II",
		Static: true, Leaf: true,
		NumRegs: 1, NumIns: 1, NumSSARegs: 3,
		SRegMap:  []int{0, 1, 0},
		SSANames: []string{"v0_0", "v1_0", "v0_1"},
		Loc:      []mir.RegLocation{coreLoc(0), coreLoc(1), coreLoc(2)},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, Taken: mir.NoBlock, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpRsubInt, C: 7, SSA: mir.SSARep{Uses: []int{1}, Defs: []int{2}}},
				{Offset: 2, Op: mir.OpReturn, SSA: mir.SSARep{Uses: []int{2}}},
			}},
			{ID: 2, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}

	p := compileBoth(t, m)

	lit := findOp(p, lir.OpArithLit)
	require.NotNil(t, lit)
	assert.Equal(t, mir.OpRsubInt, lit.MirOp)
	assert.Equal(t, int64(7), lit.Imm)
	assert.Equal(t, 1, lit.Src1.SRegLow)
	assert.Equal(t, 0, lit.Dest.SRegLow)
}

func TestReverseWideShift(t *testing.T) {
	m := &mir.Method{
		Name: "Arith.shl", Shorty: "JJI",
		Static: true, Leaf: true,
		NumRegs: 2, NumIns: 3, NumSSARegs: 7,
		SRegMap:  []int{0, 1, 2, 3, 4, 0, 1},
		SSANames: []string{"v0_0", "v1_0", "v2_0", "v3_0", "v4_0", "v0_1", "v1_1"},
		Loc: []mir.RegLocation{
			coreLoc(0), coreLoc(1), wideLoc(2), coreLoc(3), coreLoc(4),
			wideLoc(5), coreLoc(6),
		},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, Taken: mir.NoBlock, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpShlLong, SSA: mir.SSARep{Uses: []int{2, 3, 4}, Defs: []int{5, 6}}},
				{Offset: 2, Op: mir.OpReturnWide, SSA: mir.SSARep{Uses: []int{5, 6}}},
			}},
			{ID: 2, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}

	p := compileBoth(t, m)

	shl := findOp(p, lir.OpArith)
	require.NotNil(t, shl)
	assert.Equal(t, mir.OpShlLong, shl.MirOp)
	assert.True(t, shl.Dest.Wide)
	assert.Equal(t, 2, shl.Src1.SRegLow)

	// the count widening is peeled off, the original narrow count is used
	assert.Equal(t, 4, shl.Src2.SRegLow)
	assert.False(t, shl.Src2.Wide)
	assert.Nil(t, findOp(p, lir.OpIntCast))
}

func TestReverseFusedCompare(t *testing.T) {
	p := compileBoth(t, phiMethod())

	cb := findOp(p, lir.OpCmpZeroBranch)
	require.NotNil(t, cb)
	assert.Equal(t, lir.CondEq, cb.Cond)
	assert.Equal(t, 1, cb.Src1.SRegLow)

	// both arms materialize their constant into v0
	assert.Equal(t, 2, countOp(p, lir.OpLoadConst))

	// fused branch is followed by the explicit fall-through goto
	assert.GreaterOrEqual(t, countOp(p, lir.OpGoto), 1)
}

func TestReverseLaunchpadOrder(t *testing.T) {
	m := &mir.Method{
		Name: "Loop.throwy", Shorty: "VL",
		Static: true,
		NumRegs: 1, NumIns: 1, NumSSARegs: 2,
		SRegMap:  []int{0, 1},
		SSANames: []string{"v0_0", "v1_0"},
		Loc:      []mir.RegLocation{coreLoc(0), refLoc(1)},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, StartOffset: 0, Taken: 1, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpIfEqz, SSA: mir.SSARep{Uses: []int{1}}},
			}},
			{ID: 2, StartOffset: 4, Taken: mir.NoBlock, FallThrough: mir.NoBlock, Insns: []*mir.Insn{
				{Offset: 4, Op: mir.OpThrow, SSA: mir.SSARep{Uses: []int{1}}},
			}},
		},
	}

	p := compileBoth(t, m)

	st := findOp(p, lir.OpSuspendTest)
	require.NotNil(t, st)

	th := findOp(p, lir.OpThrow)
	require.NotNil(t, th)

	// pads trail the code, suspend class before throw class
	n := len(p.Insns)
	require.GreaterOrEqual(t, n, 4)

	assert.Equal(t, lir.OpLabel, p.Insns[n-4].Op)
	assert.Equal(t, lir.OpSuspendLaunchpad, p.Insns[n-3].Op)
	assert.Equal(t, lir.OpLabel, p.Insns[n-2].Op)
	assert.Equal(t, lir.OpThrowLaunchpad, p.Insns[n-1].Op)

	assert.Equal(t, p.Insns[n-4].Label, st.Label)
	assert.Equal(t, p.Insns[n-2].Label, th.Label)

	assert.Equal(t, int32(0), p.Insns[n-3].Offset)
	assert.Equal(t, int32(4), p.Insns[n-1].Offset)
}

func TestReverseInvoke(t *testing.T) {
	m := &mir.Method{
		Name: "Call.dispatch", Shorty: "ILJ",
		Static: true, Leaf: false,
		NumRegs: 1, NumIns: 3, NumSSARegs: 5,
		SRegMap:  []int{0, 1, 2, 3, 0},
		SSANames: []string{"v0_0", "v1_0", "v2_0", "v3_0", "v0_1"},
		Loc: []mir.RegLocation{
			coreLoc(0), refLoc(1), wideLoc(2), coreLoc(3), coreLoc(4),
		},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, Taken: mir.NoBlock, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpInvokeVirtual, B: 0x20, SSA: mir.SSARep{Uses: []int{1, 2, 3}, Defs: []int{4}}},
				{Offset: 4, Op: mir.OpReturn, SSA: mir.SSARep{Uses: []int{4}}},
			}},
			{ID: 2, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}

	p := compileBoth(t, m)

	inv := findOp(p, lir.OpInvoke)
	require.NotNil(t, inv)

	assert.Equal(t, int32(0x20), inv.Index)
	assert.Equal(t, 0, inv.Dest.SRegLow)

	// object + wide pair, word-expanded
	require.Len(t, inv.Args, 3)
	assert.True(t, inv.Args[0].Ref)
	assert.Equal(t, 2, inv.Args[1].SRegLow)
	assert.Equal(t, 3, inv.Args[2].SRegLow)

	info, ok := inv.Aux.(*CallInfo)
	require.True(t, ok)
	assert.Equal(t, InvokeVirtual, info.Kind)

	// invoke owns an out-of-line pad
	assert.Equal(t, 1, countOp(p, lir.OpIntrinsicLaunchpad))
}

// A register move travels the whole pipeline as a copy intrinsic and comes
// back out as a plain move between the two frame locations.
func TestReverseCopy(t *testing.T) {
	m := &mir.Method{
		Name: "Arith.id", Shorty: "II",
		Static: true, Leaf: true,
		NumRegs: 1, NumIns: 1, NumSSARegs: 3,
		SRegMap:  []int{0, 1, 0},
		SSANames: []string{"v0_0", "v1_0", "v0_1"},
		Loc:      []mir.RegLocation{coreLoc(0), coreLoc(1), coreLoc(2)},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, Taken: mir.NoBlock, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpMove, SSA: mir.SSARep{Uses: []int{1}, Defs: []int{2}}},
				{Offset: 2, Op: mir.OpReturn, SSA: mir.SSARep{Uses: []int{2}}},
			}},
			{ID: 2, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}

	p := compileBoth(t, m)

	cp := findOp(p, lir.OpMove)
	require.NotNil(t, cp)

	assert.Equal(t, mir.LocFrame, cp.Dest.Kind)
	assert.Equal(t, 0, cp.Dest.SRegLow)
	assert.Equal(t, 1, cp.Src1.SRegLow)

	// the copy plus the return-value move
	assert.Equal(t, 2, countOp(p, lir.OpMove))
}

// An optimizer may leave a subtraction with a constant on the right; it
// lowers to the reverse-subtract literal form, the only literal subtract
// bytecode has.
func TestReverseSubLit(t *testing.T) {
	bx := NewBridge()
	defer bx.Close()

	f := bx.Mod.NewFunc("Arith.dec", bx.Ctx.Int32(), []*gir.Type{bx.methodTy(), bx.Ctx.Int32()})
	f.Args[0].SetName("method")
	f.Args[1].SetName("v1_0")

	entry := f.NewBlock("entry")
	body := f.NewBlock("L0x0_1")

	bx.B.SetInsertPoint(entry)
	bx.B.CreateBr(body)

	bx.B.SetInsertPoint(body)
	bx.B.SetOffset(0)

	sub := bx.B.CreateSub(f.Args[1], bx.B.Int32(5))
	sub.SetName("v0_1")

	bx.B.CreateRet(sub)

	p, err := bx.BitcodeToLIR(context.Background(), f)
	require.NoError(t, err)

	lit := findOp(p, lir.OpArithLit)
	require.NotNil(t, lit)

	assert.Equal(t, mir.OpRsubIntLit8, lit.MirOp)
	assert.Equal(t, int64(5), lit.Imm)
	assert.Equal(t, 1, lit.Src1.SRegLow)
	assert.Equal(t, 0, lit.Dest.SRegLow)
}

// A zero extension the wide-shift recovery did not consume has no bytecode
// lowering and must fail the method, not sign-extend silently.
func TestReverseStrayZExt(t *testing.T) {
	bx := NewBridge()
	defer bx.Close()

	f := bx.Mod.NewFunc("Arith.widen", bx.Ctx.Int64(), []*gir.Type{bx.methodTy(), bx.Ctx.Int32()})
	f.Args[0].SetName("method")
	f.Args[1].SetName("v1_0")

	entry := f.NewBlock("entry")
	body := f.NewBlock("L0x0_1")

	bx.B.SetInsertPoint(entry)
	bx.B.CreateBr(body)

	bx.B.SetInsertPoint(body)
	bx.B.SetOffset(0)

	ext := bx.B.CreateZExt(f.Args[1], bx.Ctx.Int64())
	bx.B.CreateRet(ext)

	_, err := bx.BitcodeToLIR(context.Background(), f)
	require.Error(t, err)

	var ue UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "stray zext", ue.Op)
}
