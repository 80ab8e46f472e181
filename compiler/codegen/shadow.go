package codegen

import (
	"github.com/AOSP-LEGACY/art/compiler/mir"
	"github.com/AOSP-LEGACY/art/compiler/set"
)

// shadowMap assigns a stable shadow frame slot to every dalvik register that
// may hold a reference at some point of the method.  Slots are ordered by
// register number, so the layout does not depend on conversion order.
type shadowMap struct {
	regs []int
}

func planShadowFrame(m *mir.Method) *shadowMap {
	refs := set.MakeRegs(m.NumVRegs())

	for sreg := 0; sreg < m.NumSSARegs && sreg < len(m.Loc); sreg++ {
		if !m.Loc[sreg].Ref || m.Loc[sreg].Wide {
			continue
		}

		vreg := m.SRegToVReg(sreg)
		if vreg < 0 {
			continue
		}

		refs.Set(vreg)
	}

	s := &shadowMap{}

	refs.Range(func(vreg int) bool {
		s.regs = append(s.regs, vreg)
		return true
	})

	return s
}

func (s *shadowMap) count() int { return len(s.regs) }

// slot returns the shadow frame index of the register.  Every register that
// defines a reference was planned, so a miss is an internal error.
func (s *shadowMap) slot(vreg int) int {
	for i, r := range s.regs {
		if r == vreg {
			return i
		}
	}

	panic(vreg)
}
