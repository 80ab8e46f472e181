package codegen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AOSP-LEGACY/art/compiler/gir"
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

func coreLoc(sreg int) mir.RegLocation {
	l := mir.BadLoc
	l.Kind = mir.LocFrame
	l.Core = true
	l.Defined = true
	l.SRegLow = sreg
	l.OrigSReg = sreg

	return l
}

func refLoc(sreg int) mir.RegLocation {
	l := coreLoc(sreg)
	l.Core = false
	l.Ref = true

	return l
}

func wideLoc(sreg int) mir.RegLocation {
	l := coreLoc(sreg)
	l.Wide = true

	return l
}

func fpWideLoc(sreg int) mir.RegLocation {
	l := wideLoc(sreg)
	l.Core = false
	l.FP = true

	return l
}

// addMethod is `static int add(int, int) { return a + b; }` over registers
// v0 (local), v1 and v2 (ins).
func addMethod() *mir.Method {
	return &mir.Method{
		Name: "Arith.add", Shorty: "III",
		Static: true, Leaf: true,
		NumRegs: 1, NumIns: 2, NumSSARegs: 4,
		SRegMap:  []int{0, 1, 2, 0},
		SSANames: []string{"v0_0", "v1_0", "v2_0", "v0_1"},
		Loc:      []mir.RegLocation{coreLoc(0), coreLoc(1), coreLoc(2), coreLoc(3)},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, StartOffset: 0, Taken: mir.NoBlock, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpAddInt, SSA: mir.SSARep{Uses: []int{1, 2}, Defs: []int{3}}},
				{Offset: 2, Op: mir.OpReturn, SSA: mir.SSARep{Uses: []int{3}}},
			}},
			{ID: 2, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}
}

func findCall(blk *gir.Block, name string) *gir.Instr {
	for _, x := range blk.Insns {
		if x.Op == gir.OpCall && x.Callee.Name == name {
			return x
		}
	}

	return nil
}

func noPlaceholders(t *testing.T, f *gir.Func) {
	t.Helper()

	for _, blk := range f.Blocks {
		for _, x := range blk.Insns {
			assert.NotEqual(t, gir.OpAlloca, x.Op, "block %v", blk.Name())
			assert.NotEqual(t, gir.OpLoad, x.Op, "block %v", blk.Name())
		}
	}
}

func TestForwardAdd(t *testing.T) {
	bx := NewBridge()
	defer bx.Close()

	f, err := bx.MethodToBitcode(context.Background(), addMethod())
	require.NoError(t, err)

	require.Len(t, f.Blocks, 2)
	assert.Equal(t, "entry", f.Blocks[0].Name())
	assert.Equal(t, "L0x0_1", f.Blocks[1].Name())

	assert.Equal(t, "method", f.Args[0].Name())
	assert.Equal(t, "v1_0", f.Args[1].Name())
	assert.Equal(t, "v2_0", f.Args[2].Name())

	require.NotNil(t, findCall(f.Blocks[0], "art.method.info"))
	assert.Nil(t, findCall(f.Blocks[0], "art.alloca.shadow.frame"))

	body := f.Blocks[1]

	add := body.Insns[0]
	assert.Equal(t, gir.OpAdd, add.Op)
	assert.Equal(t, "v0_1", add.Name())
	assert.Same(t, f.Args[1], add.Args[0].(*gir.Arg))

	require.NotNil(t, findCall(body, "art.pop.shadow.frame"))

	ret := body.Insns[len(body.Insns)-1]
	assert.Equal(t, gir.OpRet, ret.Op)
	assert.Same(t, add, ret.Args[0].(*gir.Instr))

	noPlaceholders(t, f)
}

func TestForwardWideArgs(t *testing.T) {
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

	bx := NewBridge()
	defer bx.Close()

	f, err := bx.MethodToBitcode(context.Background(), m)
	require.NoError(t, err)

	// one name per wide pair, second halves skipped
	require.Len(t, f.Args, 3)
	assert.Equal(t, "v1_0", f.Args[1].Name())
	assert.Equal(t, "v3_0", f.Args[2].Name())
	assert.True(t, f.Args[1].Type().IsFP())
	assert.True(t, f.Args[2].Type().IsWide())
}

func TestForwardBackBranchSuspend(t *testing.T) {
	m := &mir.Method{
		Name: "Loop.spin", Shorty: "V",
		Static: true,
		NumRegs: 1, NumIns: 0, NumSSARegs: 1,
		SRegMap:  []int{0},
		SSANames: []string{"v0_0"},
		Loc:      []mir.RegLocation{coreLoc(0)},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, StartOffset: 0, Taken: 1, FallThrough: mir.NoBlock, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpGoto},
			}},
		},
	}

	bx := NewBridge()
	defer bx.Close()

	f, err := bx.MethodToBitcode(context.Background(), m)
	require.NoError(t, err)

	body := f.Blocks[1]
	require.NotNil(t, findCall(body, "art.check.suspend"))

	br := body.Insns[len(body.Insns)-1]
	assert.Equal(t, gir.OpBr, br.Op)
	assert.Same(t, body, br.Targets[0])
}

func TestForwardUnsupported(t *testing.T) {
	m := addMethod()
	m.Blocks[1].Insns = []*mir.Insn{
		{Offset: 6, Op: mir.OpPackedSwitch, SSA: mir.SSARep{Uses: []int{1}}},
	}

	bx := NewBridge()
	defer bx.Close()

	_, err := bx.MethodToBitcode(context.Background(), m)
	require.Error(t, err)

	var ue UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, int32(6), ue.Offset)
	assert.Equal(t, "packed-switch", ue.Op)
}

func TestForwardNewInstanceShadow(t *testing.T) {
	m := &mir.Method{
		Name: "Obj.make", Shorty: "V",
		Static: true, Leaf: true,
		NumRegs: 1, NumIns: 0, NumSSARegs: 2,
		SRegMap:  []int{0, 0},
		SSANames: []string{"v0_0", "v0_1"},
		Loc:      []mir.RegLocation{coreLoc(0), refLoc(1)},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, Taken: mir.NoBlock, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpNewInstance, B: 5, SSA: mir.SSARep{Defs: []int{1}}},
				{Offset: 2, Op: mir.OpReturnVoid},
			}},
			{ID: 2, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}

	bx := NewBridge()
	defer bx.Close()

	f, err := bx.MethodToBitcode(context.Background(), m)
	require.NoError(t, err)

	alloca := findCall(f.Blocks[0], "art.alloca.shadow.frame")
	require.NotNil(t, alloca)
	assert.Equal(t, int64(1), alloca.Args[0].(*gir.Const).Int)

	body := f.Blocks[1]

	ni := findCall(body, "art.new.instance")
	require.NotNil(t, ni)
	assert.Equal(t, "v0_1", ni.Name())

	set := findCall(body, "art.set.shadow.frame.entry")
	require.NotNil(t, set)
	assert.Same(t, ni, set.Args[0].(*gir.Instr))
	assert.Equal(t, int64(0), set.Args[1].(*gir.Const).Int)
}

// phiMethod is a diamond: the phi joins two constants defined on the branch
// arms, one of which converts after the phi itself.
func phiMethod() *mir.Method {
	return &mir.Method{
		Name: "Flow.pick", Shorty: "II",
		Static: true, Leaf: true,
		NumRegs: 1, NumIns: 1, NumSSARegs: 5,
		SRegMap:  []int{0, 1, 0, 0, 0},
		SSANames: []string{"v0_0", "v1_0", "v0_1", "v0_2", "v0_3"},
		Loc:      []mir.RegLocation{coreLoc(0), coreLoc(1), coreLoc(2), coreLoc(3), coreLoc(4)},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, StartOffset: 0, Taken: 3, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpIfEqz, SSA: mir.SSARep{Uses: []int{1}}},
			}},
			{ID: 2, StartOffset: 2, Taken: mir.NoBlock, FallThrough: 4, Insns: []*mir.Insn{
				{Offset: 2, Op: mir.OpConst4, B: 7, SSA: mir.SSARep{Defs: []int{2}}},
			}},
			{ID: 3, StartOffset: 4, Taken: mir.NoBlock, FallThrough: 4, Insns: []*mir.Insn{
				{Offset: 4, Op: mir.OpConst4, B: 9, SSA: mir.SSARep{Defs: []int{3}}},
			}},
			{ID: 4, StartOffset: 6, Taken: mir.NoBlock, FallThrough: 5, Insns: []*mir.Insn{
				{Offset: 6, Op: mir.OpPhi, SSA: mir.SSARep{Uses: []int{2, 3}, Defs: []int{4}}, Incoming: []int{2, 3}},
				{Offset: 6, Op: mir.OpReturn, SSA: mir.SSARep{Uses: []int{4}}},
			}},
			{ID: 5, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}
}

func TestForwardPhi(t *testing.T) {
	bx := NewBridge()
	defer bx.Close()

	f, err := bx.MethodToBitcode(context.Background(), phiMethod())
	require.NoError(t, err)

	var phi *gir.Instr

	for _, blk := range f.Blocks {
		for _, x := range blk.Insns {
			if x.Op == gir.OpPhi {
				phi = x
			}
		}
	}

	require.NotNil(t, phi)
	assert.Equal(t, "v0_3", phi.Name())
	require.Len(t, phi.Args, 2)

	// both incomings were backpatched to the const calls, the second one
	// after the phi was already built
	for i, a := range phi.Args {
		x, ok := a.(*gir.Instr)
		require.True(t, ok, "incoming %d", i)
		assert.Equal(t, "art.const.int", x.Callee.Name)
	}

	noPlaceholders(t, f)
}

// Shadow frame slots are keyed by register number, so renumbering the ssa
// registers (a different definition visit order) must not move any slot.
func TestShadowSlotStability(t *testing.T) {
	m := &mir.Method{
		NumRegs: 6, NumIns: 0, NumSSARegs: 3,
		SRegMap: []int{2, 5, 0},
		Loc:     []mir.RegLocation{refLoc(0), refLoc(1), coreLoc(2)},
	}

	perm := &mir.Method{
		NumRegs: 6, NumIns: 0, NumSSARegs: 3,
		SRegMap: []int{5, 2, 0},
		Loc:     []mir.RegLocation{refLoc(0), refLoc(1), coreLoc(2)},
	}

	a := planShadowFrame(m)
	b := planShadowFrame(perm)

	require.Equal(t, a.count(), b.count())

	for _, vreg := range []int{2, 5} {
		assert.Equal(t, a.slot(vreg), b.slot(vreg), "vreg %d", vreg)
	}
}
