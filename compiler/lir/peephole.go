package lir

import "github.com/AOSP-LEGACY/art/compiler/mir"

// Peephole runs local optimizations over the tail of the program starting at
// from, which must be a block boundary.  Only data movement is touched;
// control flow and data dependencies are preserved.
func (p *Program) Peephole(from int) {
	insns := p.Insns[from:]

	out := insns[:0]

	var lastConst *Insn

	for _, x := range insns {
		switch x.Op {
		case OpMove, OpMoveWide:
			// self moves are produced by copy intrinsics over
			// coalesced registers
			if sameSlot(x.Dest, x.Src1) {
				continue
			}

			lastConst = nil
		case OpLoadConst, OpLoadConstWide:
			// reload of the identical constant into the same slot
			if lastConst != nil &&
				lastConst.Op == x.Op &&
				lastConst.Imm == x.Imm &&
				sameSlot(lastConst.Dest, x.Dest) {
				continue
			}

			lastConst = x
		case OpBoundary:
			// transparent for const tracking
		default:
			lastConst = nil
		}

		out = append(out, x)
	}

	p.Insns = p.Insns[:from+len(out)]
}

func sameSlot(a, b mir.RegLocation) bool {
	return a.SRegLow != mir.InvalidSReg &&
		a.SRegLow == b.SRegLow &&
		a.Wide == b.Wide &&
		a.FP == b.FP &&
		a.Ref == b.Ref
}
