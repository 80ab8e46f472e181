package compiler

import (
	"context"
	"os"

	"github.com/segmentio/encoding/json"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/AOSP-LEGACY/art/compiler/codegen"
	"github.com/AOSP-LEGACY/art/compiler/lir"
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

type (
	// Config is the per-compiler knob set.  The zero value compiles with
	// no dumps.
	Config struct {
		DumpBitcode bool   `toml:"dump_bitcode"`
		DumpDir     string `toml:"dump_dir"`

		// Filter compiles only methods whose name contains it.
		Filter string `toml:"filter"`
	}

	Compiler struct {
		cfg Config
	}
)

func New(cfg Config) *Compiler {
	return &Compiler{cfg: cfg}
}

// CompileMethod runs the method through both passes of the bridge.  Methods
// are compiled in isolation: the bridge and everything under it lives for
// this one call.
func (c *Compiler) CompileMethod(ctx context.Context, m *mir.Method) (p *lir.Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile method", "method", m.Name, "shorty", m.Shorty)
	defer tr.Finish("err", &err)

	bx := codegen.NewBridge()
	defer bx.Close()

	f, err := bx.MethodToBitcode(ctx, m)
	if err != nil {
		return nil, errors.Wrap(err, "to bitcode")
	}

	if c.cfg.DumpBitcode {
		bx.Dump(tr, c.cfg.DumpDir, m.Name)
	}

	p, err = bx.BitcodeToLIR(ctx, f)
	if err != nil {
		return nil, errors.Wrap(err, "to lir")
	}

	return p, nil
}

// CompileFile reads a method in the interchange format and compiles it.
func (c *Compiler) CompileFile(ctx context.Context, name string) (*lir.Program, error) {
	m, err := ReadMethod(name)
	if err != nil {
		return nil, err
	}

	return c.CompileMethod(ctx, m)
}

// ReadMethod parses the json interchange form the external front end emits.
func ReadMethod(name string) (*mir.Method, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	m := &mir.Method{}

	err = json.Unmarshal(data, m)
	if err != nil {
		return nil, errors.Wrap(err, "parse method")
	}

	return m, nil
}
