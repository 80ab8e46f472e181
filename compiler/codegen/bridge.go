// Package codegen is the two-way bridge between the bytecode-derived SSA
// form (mir) and the generic optimization substrate (gir).  The forward pass
// turns a method into a gir function; the reverse pass turns the function,
// possibly after external optimization, into low-level instructions (lir).
package codegen

import (
	"fmt"
	"os"
	"path/filepath"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/AOSP-LEGACY/art/compiler/gir"
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

type (
	// Bridge owns the generic-IR context, module and intrinsic table for
	// one method's dual-pass translation.  It is never shared between
	// methods; the caller creates a fresh one per compilation.
	Bridge struct {
		Ctx *gir.Context
		Mod *gir.Module
		B   *gir.Builder

		// the translated function, set by the forward pass
		Func *gir.Func

		intr *intrinsics
	}

	// UnsupportedError marks an input construct the bridge does not
	// translate.  It fails the method, not the process.
	UnsupportedError struct {
		Op     string
		Offset int32
	}
)

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported op %v at offset 0x%x", e.Op, e.Offset)
}

// marker type names.  The types never get a layout on this side of the
// bridge: they only exist so references are distinguishable from integers.
const (
	markerObject = "JavaObject"
	markerMethod = "Method"
	markerThread = "Thread"
)

func NewBridge() *Bridge {
	ctx := gir.NewContext()

	bx := &Bridge{
		Ctx: ctx,
		Mod: ctx.NewModule("art"),
		B:   gir.NewBuilder(ctx),
	}

	bx.Ctx.Opaque(markerObject)
	bx.Ctx.Opaque(markerMethod)
	bx.Ctx.Opaque(markerThread)

	bx.intr = newIntrinsics(bx)

	return bx
}

// SetFunc rebinds the bridge to an externally re-imported function, keeping
// the intrinsic table coherent with the new module.
func (bx *Bridge) SetFunc(f *gir.Func) {
	bx.Func = f

	if f.Mod != bx.Mod {
		bx.Mod = f.Mod
		bx.intr = newIntrinsics(bx)
	}
}

func (bx *Bridge) objectTy() *gir.Type { return bx.Ctx.Ptr(bx.Ctx.Opaque(markerObject)) }
func (bx *Bridge) methodTy() *gir.Type { return bx.Ctx.Ptr(bx.Ctx.Opaque(markerMethod)) }

// typeOf maps a location onto its generic-IR type.  The mapping must be
// bit-exact in both directions; girTypeLoc is the inverse.
func (bx *Bridge) typeOf(loc mir.RegLocation) *gir.Type {
	if loc.Wide {
		if loc.FP {
			return bx.Ctx.Double()
		}

		return bx.Ctx.Int64()
	}

	if loc.FP {
		return bx.Ctx.Float()
	}

	if loc.Ref {
		return bx.objectTy()
	}

	return bx.Ctx.Int32()
}

// girTypeLoc recovers the wide/fp/ref classification from a type.
func (bx *Bridge) girTypeLoc(tp *gir.Type, loc *mir.RegLocation) {
	loc.Wide = tp.IsWide()
	loc.FP = tp.IsFP()
	loc.Ref = tp == bx.objectTy()
	loc.Core = !loc.FP && !loc.Ref
	loc.Defined = true
}

// shortyType maps one signature character onto a generic-IR type.
func (bx *Bridge) shortyType(c byte) *gir.Type {
	switch c {
	case 'V':
		return bx.Ctx.Void()
	case 'Z', 'B', 'S', 'C', 'I':
		return bx.Ctx.Int32()
	case 'J':
		return bx.Ctx.Int64()
	case 'F':
		return bx.Ctx.Float()
	case 'D':
		return bx.Ctx.Double()
	case 'L':
		return bx.objectTy()
	default:
		panic(fmt.Sprintf("bad shorty char %q", c))
	}
}

// Verify checks the translated function.  A failure is a bridge bug.
func (bx *Bridge) Verify() {
	err := gir.Verify(bx.Func)
	if err != nil {
		panic(errors.Wrap(err, "verify %v", bx.Func.Name))
	}
}

// Dump writes the module to dir for inspection.  Best effort: a failure is
// logged and ignored, nothing reads the file back.
func (bx *Bridge) Dump(tr tlog.Span, dir, method string) {
	data, err := gir.WriteModule(bx.Mod)
	if err == nil {
		fname := filepath.Join(dir, gir.SafeName(method)+".bc.json")
		err = os.WriteFile(fname, data, 0o644)
	}

	if err != nil {
		tr.Printw("bitcode dump failed", "method", method, "err", err)
	}
}

// Close releases the module and context.
func (bx *Bridge) Close() {
	bx.Func = nil
	bx.Mod = nil
	bx.Ctx = nil
	bx.B = nil
	bx.intr = nil
}
