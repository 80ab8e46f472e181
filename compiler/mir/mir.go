// Package mir models the register-bytecode method in SSA form, the input of
// the forward conversion pass.  It is produced by the bytecode parser and
// verifier, which are not part of this repository.
package mir

import (
	"fmt"
)

type (
	BlockKind int

	// SSARep carries the ordered use and def s-registers of one instruction.
	SSARep struct {
		Uses []int `json:"uses,omitempty"`
		Defs []int `json:"defs,omitempty"`
	}

	Insn struct {
		Offset int32  `json:"offset"`
		Op     Opcode `json:"op"`

		A int32 `json:"a,omitempty"`
		B int32 `json:"b,omitempty"`
		C int32 `json:"c,omitempty"`

		BWide int64 `json:"b_wide,omitempty"`

		OptFlags int32 `json:"opt_flags,omitempty"`

		SSA SSARep `json:"ssa"`

		// Incoming holds the predecessor block id per phi use.
		Incoming []int `json:"incoming,omitempty"`
	}

	BasicBlock struct {
		ID          int       `json:"id"`
		Kind        BlockKind `json:"kind"`
		StartOffset int32     `json:"start_offset"`

		Insns []*Insn `json:"insns"`

		// successor block ids, NoBlock if absent
		Taken       int `json:"taken"`
		FallThrough int `json:"fall_through"`
	}

	Method struct {
		Name   string `json:"name"`
		Shorty string `json:"shorty"`

		Static bool `json:"static"`
		Leaf   bool `json:"leaf"`

		NumRegs          int `json:"num_regs"`
		NumIns           int `json:"num_ins"`
		NumOuts          int `json:"num_outs"`
		NumCompilerTemps int `json:"num_compiler_temps"`
		NumSSARegs       int `json:"num_ssa_regs"`

		// per-sreg tables, NumSSARegs entries each
		Loc      []RegLocation `json:"loc"`
		SSANames []string      `json:"ssa_names"`
		SRegMap  []int         `json:"sreg_map"`

		// packed promotion hints, one word per dalvik register and
		// compiler temp plus the method register
		Promotion []int32 `json:"promotion,omitempty"`

		Blocks []*BasicBlock `json:"blocks"`
	}
)

const (
	BlockNormal BlockKind = iota
	BlockEntry
	BlockExit
	BlockExceptionHandling
)

const NoBlock = -1

// NumVRegs is the dalvik register count of the method frame.
func (m *Method) NumVRegs() int {
	return m.NumRegs + m.NumIns
}

func (m *Method) Block(id int) *BasicBlock {
	for _, bb := range m.Blocks {
		if bb.ID == id {
			return bb
		}
	}

	return nil
}

func (m *Method) Entry() *BasicBlock {
	for _, bb := range m.Blocks {
		if bb.Kind == BlockEntry {
			return bb
		}
	}

	return nil
}

// SRegToVReg maps an ssa register back to its dalvik register.
func (m *Method) SRegToVReg(sreg int) int {
	if sreg < 0 || sreg >= len(m.SRegMap) {
		return InvalidSReg
	}

	return m.SRegMap[sreg]
}

// SSAName returns the structured name of an ssa register, v<vreg>_<subscript>.
func (m *Method) SSAName(sreg int) string {
	if sreg >= 0 && sreg < len(m.SSANames) && m.SSANames[sreg] != "" {
		return m.SSANames[sreg]
	}

	return fmt.Sprintf("v%d_?", m.SRegToVReg(sreg))
}

// Preorder returns the basic blocks in depth-first preorder from the entry,
// fall-through edge first.
func (m *Method) Preorder() []*BasicBlock {
	res := make([]*BasicBlock, 0, len(m.Blocks))
	seen := make(map[int]bool, len(m.Blocks))

	var walk func(id int)
	walk = func(id int) {
		if id == NoBlock || seen[id] {
			return
		}

		bb := m.Block(id)
		if bb == nil {
			return
		}

		seen[id] = true
		res = append(res, bb)

		walk(bb.FallThrough)
		walk(bb.Taken)
	}

	entry := m.Entry()
	if entry == nil {
		return res
	}

	walk(entry.ID)

	return res
}

// GetSrc returns the location of the n-th narrow use.  n counts s-registers,
// not operands: a wide operand occupies two positions.
func (m *Method) GetSrc(x *Insn, n int) RegLocation {
	loc := m.Loc[x.SSA.Uses[n]]

	if loc.Wide {
		panic(fmt.Sprintf("narrow use of wide sreg %d", x.SSA.Uses[n]))
	}

	return loc
}

func (m *Method) GetSrcWide(x *Insn, low int) RegLocation {
	loc := m.Loc[x.SSA.Uses[low]]

	if !loc.Wide {
		panic(fmt.Sprintf("wide use of narrow sreg %d", x.SSA.Uses[low]))
	}

	return loc
}

func (m *Method) GetDest(x *Insn) RegLocation {
	return m.Loc[x.SSA.Defs[0]]
}

func (bb *BasicBlock) HasSuccessor(id int) bool {
	return bb.Taken == id || bb.FallThrough == id
}
