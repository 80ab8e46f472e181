package compiler

import (
	"context"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AOSP-LEGACY/art/compiler/mir"
)

func intLoc(sreg int) mir.RegLocation {
	l := mir.BadLoc
	l.Kind = mir.LocFrame
	l.Core = true
	l.Defined = true
	l.SRegLow = sreg
	l.OrigSReg = sreg

	return l
}

func negateMethod() *mir.Method {
	return &mir.Method{
		Name: "Arith.negate", Shorty: "II",
		Static: true, Leaf: true,
		NumRegs: 1, NumIns: 1, NumSSARegs: 3,
		SRegMap:  []int{0, 1, 0},
		SSANames: []string{"v0_0", "v1_0", "v0_1"},
		Loc:      []mir.RegLocation{intLoc(0), intLoc(1), intLoc(2)},
		Blocks: []*mir.BasicBlock{
			{ID: 0, Kind: mir.BlockEntry, Taken: mir.NoBlock, FallThrough: 1},
			{ID: 1, Taken: mir.NoBlock, FallThrough: 2, Insns: []*mir.Insn{
				{Offset: 0, Op: mir.OpRsubInt, C: 0, SSA: mir.SSARep{Uses: []int{1}, Defs: []int{2}}},
				{Offset: 2, Op: mir.OpReturn, SSA: mir.SSARep{Uses: []int{2}}},
			}},
			{ID: 2, Kind: mir.BlockExit, Taken: mir.NoBlock, FallThrough: mir.NoBlock},
		},
	}
}

func TestCompileMethod(t *testing.T) {
	ctx := context.Background()

	c := New(Config{})

	p, err := c.CompileMethod(ctx, negateMethod())
	require.NoError(t, err)

	text := string(p.Listing(nil))
	assert.Contains(t, text, "entry")
	assert.Contains(t, text, "rsub-int")
	assert.Contains(t, text, "exit")

	t.Logf("listing:\n%s", text)
}

// A method the bridge rejects must not poison the next compilation.
func TestCompileMethodIsolation(t *testing.T) {
	ctx := context.Background()

	c := New(Config{})

	bad := negateMethod()
	bad.Blocks[1].Insns = []*mir.Insn{
		{Offset: 0, Op: mir.OpSparseSwitch, SSA: mir.SSARep{Uses: []int{1}}},
	}

	_, err := c.CompileMethod(ctx, bad)
	require.Error(t, err)

	_, err = c.CompileMethod(ctx, negateMethod())
	require.NoError(t, err)
}

func TestConfigProfile(t *testing.T) {
	var cfg Config

	err := toml.Unmarshal([]byte(`
dump_bitcode = true
dump_dir = "out"
filter = "Arith"
`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, Config{DumpBitcode: true, DumpDir: "out", Filter: "Arith"}, cfg)
}
