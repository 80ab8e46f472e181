package gir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceAllUses(t *testing.T) {
	ctx := NewContext()
	mod := ctx.NewModule("m")
	b := NewBuilder(ctx)

	f := mod.NewFunc("f", ctx.Int32(), []*Type{ctx.Int32()})
	f.Args[0].SetName("v1_0")

	blk := f.NewBlock("entry")
	b.SetInsertPoint(blk)

	ph := b.CreateLoad(b.CreateAlloca(ctx.Int32()))
	ph.SetName("v0_1")

	sum := b.CreateAdd(ph, f.Args[0])
	b.CreateRet(sum)

	repl := b.CreateMul(f.Args[0], b.Int32(2))

	ReplaceAllUses(ph, repl)
	TakeName(repl, ph)

	assert.Equal(t, "v0_1", repl.Name())
	assert.Equal(t, "", ph.Name())
	assert.Same(t, repl, sum.Args[0].(*Instr))
	assert.Equal(t, 0, NumUses(ph))
	assert.Equal(t, 1, NumUses(repl))
}

func TestVerify(t *testing.T) {
	ctx := NewContext()
	mod := ctx.NewModule("m")
	b := NewBuilder(ctx)

	f := mod.NewFunc("f", ctx.Void(), nil)
	blk := f.NewBlock("entry")
	b.SetInsertPoint(blk)

	b.CreateCall(mod.NewDecl("g", ctx.Void(), nil, false))

	err := Verify(f)
	assert.ErrorContains(t, err, "not terminated")

	b.CreateRetVoid()
	assert.NoError(t, Verify(f))

	// branch into another function is a structural break
	g := mod.NewFunc("g2", ctx.Void(), nil)
	foreign := g.NewBlock("entry")

	b.CreateBr(foreign)
	assert.Error(t, Verify(f))
}

func TestBitcodeRoundTrip(t *testing.T) {
	ctx := NewContext()
	mod := ctx.NewModule("m")
	b := NewBuilder(ctx)

	obj := ctx.Ptr(ctx.Opaque("JavaObject"))

	decl := mod.NewDecl("art.const.int", ctx.Int32(), []*Type{ctx.Int32()}, false)

	f := mod.NewFunc("f", ctx.Int32(), []*Type{obj, ctx.Int32()})
	f.Args[0].SetName("v1_0")
	f.Args[1].SetName("v2_0")

	entry := f.NewBlock("entry")
	body := f.NewBlock("L0x4_1")

	b.SetInsertPoint(entry)
	b.SetOffset(0)

	cv := b.CreateCall(decl, b.Int32(7))
	cv.SetName("v0_1")

	cmp := b.CreateICmp(PredNE, f.Args[0], b.Null(obj))
	cmp.SetName("t0")
	b.CreateCondBr(cmp, body, body)

	b.SetInsertPoint(body)
	b.SetOffset(4)

	phi := b.CreatePhi(ctx.Int32())
	phi.AddIncoming(cv, entry)
	phi.SetName("v0_2")

	sum := b.CreateAdd(phi, f.Args[1])
	sum.SetMetadata(MDRegInfo, []int64{1, 2, 3})
	b.CreateRet(sum)

	require.NoError(t, Verify(f))

	data, err := WriteModule(mod)
	require.NoError(t, err)

	mod2, err := ReadModule(NewContext(), data)
	require.NoError(t, err)

	data2, err := WriteModule(mod2)
	require.NoError(t, err)

	assert.Equal(t, string(data), string(data2))

	f2 := mod2.FuncByName("f")
	require.NotNil(t, f2)
	require.NoError(t, Verify(f2))

	assert.Equal(t, "v0_1", f2.Blocks[0].Insns[0].Name())
	assert.Equal(t, []int64{0}, f2.Blocks[0].Insns[0].Metadata(MDOffset))
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "java-lang-Object.toString-II-I", SafeName("java/lang/Object.toString(II)I"))
}
