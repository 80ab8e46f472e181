package codegen

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/AOSP-LEGACY/art/compiler/gir"
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

// fwd is the forward pass state: method ssa registers mapped onto values.
type fwd struct {
	*Bridge

	m *mir.Method

	// per-sreg values, placeholders until the definition is seen
	values []gir.Value

	blocks      map[int]*gir.Block
	placeholder *gir.Block

	shadow *shadowMap

	temps int
}

// MethodToBitcode converts the method into a function of the bridge module.
// An error means the method has a construct the bridge does not support and
// must be compiled by the fallback path; inconsistent input panics.
func (bx *Bridge) MethodToBitcode(ctx context.Context, m *mir.Method) (f *gir.Func, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "method to bitcode", "method", m.Name)
	defer tr.Finish("err", &err)

	c := &fwd{
		Bridge: bx,
		m:      m,
		blocks: map[int]*gir.Block{},
		shadow: planShadowFrame(m),
	}

	f = c.createFunction()
	bx.Func = f

	order := m.Preorder()

	// blocks first so forward branches have a target
	for _, bb := range order {
		if bb.Kind == mir.BlockExit {
			// regenerated on the way back, see convertBlock
			continue
		}

		name := fmt.Sprintf("L0x%x_%d", bb.StartOffset, bb.ID)
		if bb.Kind == mir.BlockEntry {
			name = "entry"
		}

		c.blocks[bb.ID] = f.NewBlock(name)
	}

	c.placeholder = f.NewBlock("placeholder")
	c.makePlaceholders()

	for _, bb := range order {
		err = c.convertBlock(bb)
		if err != nil {
			return nil, errors.Wrap(err, "block %d", bb.ID)
		}
	}

	// every definition has been seen, nothing refers to the placeholders
	f.EraseBlock(c.placeholder)

	bx.Verify()

	if tr.If("bitcode") {
		data, derr := gir.WriteModule(bx.Mod)
		tr.Printw("converted bitcode", "module", string(data), "err", derr)
	}

	return f, nil
}

func (c *fwd) createFunction() *gir.Func {
	m := c.m

	params := []*gir.Type{c.methodTy()}

	if !m.Static {
		params = append(params, c.objectTy())
	}

	for i := 1; i < len(m.Shorty); i++ {
		params = append(params, c.shortyType(m.Shorty[i]))
	}

	f := c.Mod.NewFunc(m.Name, c.shortyType(m.Shorty[0]), params)

	f.Args[0].SetName("method")

	sreg := m.NumRegs

	for _, a := range f.Args[1:] {
		a.SetName(m.SSAName(sreg))

		if m.Loc[sreg].Wide {
			sreg += 2
		} else {
			sreg++
		}
	}

	return f
}

// makePlaceholders creates a named value for each ssa register.  Arguments
// reuse the function args; everything else gets a load from a dead alloca
// that defineValue replaces once the definition is converted.
func (c *fwd) makePlaceholders() {
	m := c.m

	c.values = make([]gir.Value, m.NumSSARegs)

	c.B.SetInsertPoint(c.placeholder)
	c.B.ClearOffset()

	args := c.Func.Args[1:]

	for i := 0; i < m.NumSSARegs; i++ {
		switch {
		case i < m.NumRegs:
			// subscript-zero locals: a use before the definition
			// would be a verifier miss, leave them empty

		case i < m.NumRegs+m.NumIns:
			a := args[0]
			args = args[1:]

			c.values[i] = a

			if a.Type().IsWide() {
				i++
			}

		case m.SRegToVReg(i) < 0:
			// special sregs carry no value

		default:
			loc := m.Loc[i]

			ptr := c.B.CreateAlloca(c.typeOf(loc))
			val := c.B.CreateLoad(ptr)
			val.SetName(m.SSAName(i))

			c.values[i] = val

			if loc.Wide {
				i++
			}
		}
	}

	c.B.CreateBr(c.placeholder)
}

func (c *fwd) convertBlock(bb *mir.BasicBlock) (err error) {
	switch bb.Kind {
	case mir.BlockExit:
		// returns are emitted at the return sites instead
		return nil
	case mir.BlockExceptionHandling:
		// null checks are deferred, so the empty handler block has no
		// content and no explicit predecessors
		c.Func.EraseBlock(c.blocks[bb.ID])
		delete(c.blocks, bb.ID)

		return nil
	}

	blk := c.blocks[bb.ID]

	c.B.SetInsertPoint(blk)
	c.B.SetOffset(bb.StartOffset)

	if bb.Kind == mir.BlockEntry {
		c.emitMethodInfo(bb.StartOffset)

		if n := c.shadow.count(); n > 0 {
			c.B.CreateCall(c.intr.fn(AllocaShadowFrame), c.B.Int32(int32(n)))
		}
	}

	for _, x := range bb.Insns {
		c.B.SetOffset(x.Offset)

		err = c.convertInsn(bb, x)
		if err != nil {
			return errors.Wrap(err, "at 0x%x", x.Offset)
		}
	}

	if tgt, ok := c.blocks[bb.FallThrough]; ok && blk.Term() == nil {
		c.B.CreateBr(tgt)
	}

	return nil
}

// emitMethodInfo emits the frame description marker carried over to the
// reverse pass as metadata.
func (c *fwd) emitMethodInfo(off int32) {
	m := c.m

	// position independent
	c.B.ClearOffset()

	x := c.B.CreateCall(c.intr.fn(MethodInfo))

	x.SetMetadata(gir.MDRegInfo, []int64{
		int64(m.NumIns), int64(m.NumRegs), int64(m.NumOuts),
		int64(m.NumCompilerTemps), int64(m.NumSSARegs),
	})

	pmap := make([]int64, len(m.Promotion))
	for i, p := range m.Promotion {
		pmap[i] = int64(p)
	}

	x.SetMetadata(gir.MDPromotionMap, pmap)

	c.B.SetOffset(off)
}

// val returns the current value of the location.  Every use must have a
// value or a placeholder by construction.
func (c *fwd) val(loc mir.RegLocation) gir.Value {
	v := c.values[loc.OrigSReg]
	if v == nil {
		panic(fmt.Sprintf("no value for sreg %d", loc.OrigSReg))
	}

	return v
}

// defineValue replaces the placeholder of the sreg with the real definition
// and moves its structured name over.
func (c *fwd) defineValue(val gir.Value, sreg int) {
	ph := c.values[sreg]
	if ph == nil {
		panic(fmt.Sprintf("missing placeholder for sreg %d", sreg))
	}

	if ph != val {
		gir.ReplaceAllUses(ph, val)
		gir.TakeName(val, ph)
	}

	c.values[sreg] = val
}

func (c *fwd) setShadowFrameEntry(val gir.Value, loc mir.RegLocation) {
	vreg := c.m.SRegToVReg(loc.SRegLow)
	slot := c.shadow.slot(vreg)

	c.B.CreateCall(c.intr.fn(SetShadowFrameEntry), val, c.B.Int32(int32(slot)))
}

func (c *fwd) emitSuspendCheck() {
	c.B.CreateCall(c.intr.fn(CheckSuspend))
}
