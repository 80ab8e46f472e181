package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreorderFallThroughFirst(t *testing.T) {
	m := &Method{
		Blocks: []*BasicBlock{
			{ID: 0, Kind: BlockEntry, Taken: NoBlock, FallThrough: 1},
			{ID: 1, Taken: 3, FallThrough: 2},
			{ID: 2, Taken: NoBlock, FallThrough: 4},
			{ID: 3, Taken: NoBlock, FallThrough: 4},
			{ID: 4, Kind: BlockExit, Taken: NoBlock, FallThrough: NoBlock},
		},
	}

	var ids []int
	for _, bb := range m.Preorder() {
		ids = append(ids, bb.ID)
	}

	assert.Equal(t, []int{0, 1, 2, 4, 3}, ids)
}

func TestAttrs(t *testing.T) {
	a := OpAddInt.Attrs()
	assert.True(t, a.Has(DefA))
	assert.True(t, a.Has(UseB))
	assert.True(t, a.Has(UseC))
	assert.False(t, a.Has(WideA))

	a = OpAddLong2Addr.Attrs()
	assert.True(t, a.Has(DefA | UseA | UseB))
	assert.True(t, a.Has(WideA | WideB))

	// long shift counts stay narrow
	a = OpShlLong.Attrs()
	assert.True(t, a.Has(WideA | WideB))
	assert.False(t, a.Has(WideC))

	// invokes collect operands through the ssa rep instead
	assert.Equal(t, Attr(0), OpInvokeVirtual.Attrs())
}

func TestSrcDest(t *testing.T) {
	m := &Method{
		Loc: []RegLocation{
			{Kind: LocFrame, SRegLow: 0, OrigSReg: 0, Core: true, Defined: true},
			{Kind: LocFrame, SRegLow: 1, OrigSReg: 1, Core: true, Defined: true, Wide: true},
			{Kind: LocFrame, SRegLow: 2, OrigSReg: 2},
			{Kind: LocFrame, SRegLow: 3, OrigSReg: 3, Core: true, Defined: true},
		},
	}

	x := &Insn{Op: OpAddInt, SSA: SSARep{Uses: []int{0, 3}, Defs: []int{3}}}

	assert.Equal(t, m.Loc[0], m.GetSrc(x, 0))
	assert.Equal(t, m.Loc[3], m.GetSrc(x, 1))
	assert.Equal(t, m.Loc[3], m.GetDest(x))

	wide := &Insn{Op: OpReturnWide, SSA: SSARep{Uses: []int{1, 2}}}
	assert.Equal(t, m.Loc[1], m.GetSrcWide(wide, 0))

	assert.Panics(t, func() { m.GetSrcWide(x, 0) })
}

func TestSSAName(t *testing.T) {
	m := &Method{
		SSANames: []string{"v0_0", "v1_0", ""},
		SRegMap:  []int{0, 1, 0},
	}

	require.Equal(t, "v0_0", m.SSAName(0))
	require.Equal(t, "v0_?", m.SSAName(2))
}
