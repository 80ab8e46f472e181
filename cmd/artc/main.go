package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/AOSP-LEGACY/art/compiler"
	"github.com/AOSP-LEGACY/art/compiler/codegen"
	"github.com/AOSP-LEGACY/art/compiler/gir"
)

func main() {
	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile methods and print the lir listing",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("dump-bitcode", false, "dump the intermediate bitcode next to the listing"),
			cli.NewFlag("dump-dir", "", "directory for bitcode dumps"),
			cli.NewFlag("filter", "", "compile only methods whose name contains the value"),
			cli.NewFlag("profile", "", "toml file with the same settings"),
		},
	}

	dumpCmd := &cli.Command{
		Name:        "dump",
		Description: "run the forward pass only and print the bitcode",
		Action:      dumpAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "artc",
		Description: "artc compiles methods in the ssa interchange format",
		Commands: []*cli.Command{
			compileCmd,
			dumpCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func loadConfig(c *cli.Command) (cfg compiler.Config, err error) {
	if prof := c.String("profile"); prof != "" {
		data, err := os.ReadFile(prof)
		if err != nil {
			return cfg, errors.Wrap(err, "read profile")
		}

		err = toml.Unmarshal(data, &cfg)
		if err != nil {
			return cfg, errors.Wrap(err, "parse profile")
		}
	}

	// flags win over the profile
	if c.Bool("dump-bitcode") {
		cfg.DumpBitcode = true
	}

	if dir := c.String("dump-dir"); dir != "" {
		cfg.DumpDir = dir
	}

	if cfg.DumpDir == "" {
		cfg.DumpDir = "."
	}

	if f := c.String("filter"); f != "" {
		cfg.Filter = f
	}

	return cfg, nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	cc := compiler.New(cfg)

	for _, a := range c.Args {
		m, err := compiler.ReadMethod(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		if cfg.Filter != "" && !strings.Contains(m.Name, cfg.Filter) {
			continue
		}

		p, err := cc.CompileMethod(ctx, m)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		fmt.Printf("%s:\n%s", m.Name, p.Listing(nil))
	}

	return nil
}

func dumpAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		m, err := compiler.ReadMethod(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		bx := codegen.NewBridge()

		_, err = bx.MethodToBitcode(ctx, m)
		if err != nil {
			bx.Close()
			return errors.Wrap(err, "convert %v", a)
		}

		data, err := gir.WriteModule(bx.Mod)
		bx.Close()
		if err != nil {
			return errors.Wrap(err, "encode %v", a)
		}

		fmt.Printf("%s\n", data)
	}

	return nil
}
