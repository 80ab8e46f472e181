package lir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AOSP-LEGACY/art/compiler/mir"
)

func frameLoc(sreg int) mir.RegLocation {
	l := mir.BadLoc
	l.Kind = mir.LocFrame
	l.Core = true
	l.Defined = true
	l.SRegLow = sreg
	l.OrigSReg = sreg

	return l
}

func ops(p *Program) []Op {
	res := make([]Op, len(p.Insns))
	for i, x := range p.Insns {
		res[i] = x.Op
	}

	return res
}

func TestPeepholeSelfMove(t *testing.T) {
	p := &Program{}

	p.Append(&Insn{Op: OpLabel, Label: p.NewLabel()})
	p.Append(&Insn{Op: OpMove, Dest: frameLoc(1), Src1: frameLoc(1)})
	p.Append(&Insn{Op: OpMove, Dest: frameLoc(1), Src1: frameLoc(2)})

	p.Peephole(0)

	assert.Equal(t, []Op{OpLabel, OpMove}, ops(p))
	assert.Equal(t, 2, p.Insns[1].Src1.SRegLow)
}

func TestPeepholeConstReload(t *testing.T) {
	p := &Program{}

	p.Append(&Insn{Op: OpLoadConst, Dest: frameLoc(0), Imm: 42})
	p.Append(&Insn{Op: OpBoundary, Offset: 2})
	p.Append(&Insn{Op: OpLoadConst, Dest: frameLoc(0), Imm: 42})
	p.Append(&Insn{Op: OpLoadConst, Dest: frameLoc(0), Imm: 43})

	p.Peephole(0)

	assert.Equal(t, []Op{OpLoadConst, OpBoundary, OpLoadConst}, ops(p))
	assert.Equal(t, int64(43), p.Insns[2].Imm)
}

func TestPeepholeConstTrackingResets(t *testing.T) {
	p := &Program{}

	p.Append(&Insn{Op: OpLoadConst, Dest: frameLoc(0), Imm: 42})
	p.Append(&Insn{Op: OpArith, MirOp: mir.OpAddInt, Dest: frameLoc(0), Src1: frameLoc(1), Src2: frameLoc(2)})
	p.Append(&Insn{Op: OpLoadConst, Dest: frameLoc(0), Imm: 42})

	p.Peephole(0)

	// the arith wrote the slot in between, the reload must stay
	assert.Len(t, p.Insns, 3)
}

func TestPeepholeOnlyTail(t *testing.T) {
	p := &Program{}

	p.Append(&Insn{Op: OpMove, Dest: frameLoc(1), Src1: frameLoc(1)})
	from := len(p.Insns)
	p.Append(&Insn{Op: OpMove, Dest: frameLoc(2), Src1: frameLoc(2)})

	p.Peephole(from)

	// the earlier block is already final
	assert.Equal(t, []Op{OpMove}, ops(p))
}

func TestListing(t *testing.T) {
	p := &Program{}

	l := p.NewLabel()

	p.Append(&Insn{Op: OpLabel, Label: l, Offset: 0x10})
	p.Append(&Insn{Op: OpArithLit, MirOp: mir.OpRsubInt, Dest: frameLoc(0), Src1: frameLoc(1), Imm: 7})
	p.Append(&Insn{Op: OpCmpZeroBranch, Cond: CondEq, Src1: frameLoc(0), Label: l})

	text := string(p.Listing(nil))

	assert.Contains(t, text, "L0:")
	assert.Contains(t, text, "arith-lit<rsub-int>")
	assert.Contains(t, text, "#7")
	assert.Contains(t, text, "eq, L0")
}
