package codegen

import (
	"context"
	"fmt"

	"nikand.dev/go/heap"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/AOSP-LEGACY/art/compiler/gir"
	"github.com/AOSP-LEGACY/art/compiler/lir"
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

type (
	// rev is the reverse pass state: values mapped back onto locations.
	rev struct {
		*Bridge

		fn *gir.Func

		p *lir.Program

		loc    map[gir.Value]mir.RegLocation
		labels map[*gir.Block]int

		// current bytecode offset, tracked from instruction metadata
		off int32

		// synthesized registers for values with no structured name
		nextTemp int
		nextOrig int

		numArgWords int

		pads   heap.Heap[launchpad]
		padSeq int
	}

	// launchpad is a deferred out-of-line sequence shared by the slow
	// paths of one instruction class.
	launchpad struct {
		op    lir.Op
		off   int32
		label int
		seq   int
	}
)

// BitcodeToLIR lowers the function into the low-level instruction list.
// The function may have been optimized externally since the forward pass:
// only the naming and typing conventions of the bridge are relied on, and a
// shape the bridge cannot lower fails with an error.
func (bx *Bridge) BitcodeToLIR(ctx context.Context, f *gir.Func) (p *lir.Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "bitcode to lir", "func", f.Name)
	defer tr.Finish("err", &err)

	bx.SetFunc(f)

	c := &rev{
		Bridge: bx,
		fn:     f,
		p:      &lir.Program{},
		loc:    map[gir.Value]mir.RegLocation{},
		labels: map[*gir.Block]int{},
	}

	c.pads.Less = padsLess

	c.mapValues()

	// labels first so forward branches have a target
	for _, blk := range f.Blocks {
		c.labels[blk] = c.p.NewLabel()
	}

	for _, blk := range f.Blocks {
		err = c.convertBlock(blk)
		if err != nil {
			return nil, errors.Wrap(err, "block %v", blk.Name())
		}
	}

	c.emitLaunchpads()

	if tr.If("lir") {
		tr.Printw("lowered", "listing", string(c.p.Listing(nil)))
	}

	return c.p, nil
}

// mapValues pre-builds the value-to-location map from the structured names
// the forward pass left behind.  Unnamed temporaries are mapped lazily by
// getLoc as they are met.
func (c *rev) mapValues() {
	for _, a := range c.fn.Args {
		c.createLoc(a)
	}

	for _, blk := range c.fn.Blocks {
		for _, x := range blk.Insns {
			if name := x.Name(); name != "" && name[0] == 'v' {
				c.createLoc(x)
			}
		}
	}
}

// createLoc parses the structured name of the value, v<vreg>_<subscript> or
// the reserved method register.  A named value with an unparsable name is an
// upstream bug.
func (c *rev) createLoc(v gir.Value) {
	loc := mir.BadLoc
	loc.Kind = mir.LocFrame

	if name := v.Name(); name == "method" {
		loc.SRegLow = mir.MethodBaseReg
	} else {
		var vreg int

		n, err := fmt.Sscanf(name, "v%d_", &vreg)
		if err != nil || n != 1 {
			panic(fmt.Sprintf("unparsable value name %q", name))
		}

		loc.SRegLow = vreg
	}

	c.girTypeLoc(v.Type(), &loc)

	loc.OrigSReg = c.nextOrig
	c.nextOrig++

	c.loc[v] = loc
}

// getLoc returns the location of the value, synthesizing a register-resident
// temporary for values the optimizer introduced.
func (c *rev) getLoc(v gir.Value) mir.RegLocation {
	if loc, ok := c.loc[v]; ok {
		return loc
	}

	loc := mir.BadLoc
	loc.Kind = mir.LocPhysReg
	loc.Home = true

	c.girTypeLoc(v.Type(), &loc)

	loc.LowReg = c.nextTemp
	c.nextTemp++

	if loc.Wide {
		loc.HighReg = c.nextTemp
		c.nextTemp++
	}

	c.loc[v] = loc

	return loc
}

func (c *rev) convertBlock(blk *gir.Block) (err error) {
	start := len(c.p.Insns)

	off := int32(0)

	if blk != c.fn.Entry() {
		var id int

		n, e := fmt.Sscanf(blk.Name(), "L0x%x_%d", &off, &id)
		if e != nil || n != 2 {
			panic(fmt.Sprintf("unparsable block name %q", blk.Name()))
		}
	}

	c.off = off
	c.p.Append(&lir.Insn{Op: lir.OpLabel, Label: c.labels[blk], Offset: off})

	if blk == c.fn.Entry() {
		c.genEntrySequence()
	}

	for i := 0; i < len(blk.Insns); i++ {
		x := blk.Insns[i]

		var next *gir.Instr
		if i+1 < len(blk.Insns) {
			next = blk.Insns[i+1]
		}

		if md := x.Metadata(gir.MDOffset); len(md) != 0 && int32(md[0]) != c.off {
			c.off = int32(md[0])
			c.p.Append(&lir.Insn{Op: lir.OpBoundary, Offset: c.off})
		}

		fused, e := c.convertInstr(x, next)
		if e != nil {
			return errors.Wrap(e, "at 0x%x", c.off)
		}

		if fused {
			i++
		}
	}

	c.p.Peephole(start)

	return nil
}

// genEntrySequence emits the prologue: the method register and the flattened
// argument locations, wide arguments expanded to both words.
func (c *rev) genEntrySequence() {
	method := c.getLoc(c.fn.Args[0])

	var argLocs []mir.RegLocation

	for _, a := range c.fn.Args[1:] {
		loc := c.getLoc(a)

		argLocs = append(argLocs, loc)

		if loc.Wide {
			argLocs = append(argLocs, wideSecond(loc))
		}
	}

	c.numArgWords = len(argLocs)

	c.p.Append(&lir.Insn{Op: lir.OpEntry, Src1: method, Args: argLocs})
}

// convertInstr lowers one instruction.  fused reports that the next
// instruction was consumed together with this one.
func (c *rev) convertInstr(x, next *gir.Instr) (fused bool, err error) {
	switch x.Op {
	case gir.OpICmp:
		if next != nil && next.Op == gir.OpCondBr && next.Args[0] == x {
			c.cvtICmpBr(x, next)
			return true, nil
		}

		// a compare without its branch has no bytecode equivalent
		return false, UnsupportedError{Op: "isolated icmp", Offset: c.off}

	case gir.OpCondBr:
		return false, UnsupportedError{Op: "unfused condbr", Offset: c.off}

	case gir.OpBr:
		c.p.Append(&lir.Insn{Op: lir.OpGoto, Offset: c.off, Label: c.labels[x.Targets[0]]})

	case gir.OpAdd:
		c.cvtBinOp(kOpAdd, x)
	case gir.OpSub:
		c.cvtBinOp(kOpSub, x)
	case gir.OpMul:
		c.cvtBinOp(kOpMul, x)
	case gir.OpAnd:
		c.cvtBinOp(kOpAnd, x)
	case gir.OpOr:
		c.cvtBinOp(kOpOr, x)
	case gir.OpXor:
		c.cvtBinOp(kOpXor, x)

	case gir.OpShl:
		c.cvtShiftOp(kOpLsl, x)
	case gir.OpLShr:
		c.cvtShiftOp(kOpLsr, x)
	case gir.OpAShr:
		c.cvtShiftOp(kOpAsr, x)

	case gir.OpFAdd, gir.OpFSub, gir.OpFMul, gir.OpFDiv, gir.OpFRem:
		c.cvtBinFPOp(x)

	case gir.OpZExt:
		if next != nil && shiftUsesCount(next, x) {
			// width adjustment of a wide shift count, the shift
			// recovers the original operand itself
			break
		}

		// bytecode has no zero extension, int-to-long is signed
		return false, UnsupportedError{Op: "stray zext", Offset: c.off}

	case gir.OpSExt:
		c.cvtIntExt(x)

	case gir.OpPhi:
		// both sides carry the same register name, the join is free

	case gir.OpRet:
		c.cvtRet(x.Args[0])
	case gir.OpRetVoid:
		c.cvtRet(nil)

	case gir.OpUnreachable:
		// the preceding throw already ended the block

	case gir.OpCall:
		return false, c.cvtCall(x)

	case gir.OpAlloca, gir.OpLoad:
		panic(fmt.Sprintf("leftover placeholder %v at 0x%x", x.Op, c.off))

	default:
		panic(fmt.Sprintf("unhandled %v at 0x%x", x.Op, c.off))
	}

	return false, nil
}

func shiftUsesCount(x *gir.Instr, cnt gir.Value) bool {
	switch x.Op {
	case gir.OpShl, gir.OpLShr, gir.OpAShr:
		return x.Args[1] == cnt
	}

	return false
}

// addPad allocates a label for an out-of-line slow path and defers its
// emission past the last block.
func (c *rev) addPad(op lir.Op, off int32) int {
	l := c.p.NewLabel()

	c.pads.Push(launchpad{op: op, off: off, label: l, seq: c.padSeq})
	c.padSeq++

	return l
}

// emitLaunchpads appends the deferred slow paths: suspend pads first, then
// throw pads, then intrinsic pads, each class in bytecode offset order.
func (c *rev) emitLaunchpads() {
	for c.pads.Len() != 0 {
		pad := c.pads.Pop()

		c.p.Append(&lir.Insn{Op: lir.OpLabel, Label: pad.label, Offset: pad.off})
		c.p.Append(&lir.Insn{Op: pad.op, Offset: pad.off})
	}
}

func padsLess(d []launchpad, i, j int) bool {
	if d[i].op != d[j].op {
		return d[i].op < d[j].op
	}

	if d[i].off != d[j].off {
		return d[i].off < d[j].off
	}

	return d[i].seq < d[j].seq
}
