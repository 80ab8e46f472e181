package gir

import (
	"tlog.app/go/errors"
)

// Verify runs structural checks over a function body.  A failure means the
// builder of the function is broken, not that the input program is bad.
func Verify(f *Func) error {
	if f.Decl {
		return nil
	}

	in := make(map[*Block]bool, len(f.Blocks))
	for _, bb := range f.Blocks {
		in[bb] = true
	}

	owned := map[Value]bool{}

	for _, a := range f.Args {
		owned[a] = true
	}

	for _, bb := range f.Blocks {
		for _, x := range bb.Insns {
			owned[x] = true
		}
	}

	for _, bb := range f.Blocks {
		if len(bb.Insns) == 0 {
			return errors.New("empty block %v", bb.Name())
		}

		for i, x := range bb.Insns {
			last := i == len(bb.Insns)-1

			if x.Op.IsTerm() != last {
				if last {
					return errors.New("block %v: not terminated", bb.Name())
				}

				return errors.New("block %v: terminator %v mid-block", bb.Name(), x.Op)
			}

			for _, t := range x.Targets {
				if !in[t] {
					return errors.New("block %v: branch to foreign block %v", bb.Name(), t.Name())
				}
			}

			if x.Op == OpPhi {
				if len(x.Args) != len(x.Incoming) {
					return errors.New("block %v: phi %v: %d values, %d blocks", bb.Name(), x.Name(), len(x.Args), len(x.Incoming))
				}

				for _, p := range x.Incoming {
					if !in[p] {
						return errors.New("block %v: phi %v: foreign incoming block", bb.Name(), x.Name())
					}
				}
			}

			for _, a := range x.Args {
				switch a := a.(type) {
				case *Const:
				case *Arg:
					if !owned[a] {
						return errors.New("block %v: %v: foreign argument operand", bb.Name(), x.Op)
					}
				case *Instr:
					if !owned[a] {
						return errors.New("block %v: %v: operand defined outside the function (%v)", bb.Name(), x.Op, a.Name())
					}
				default:
					return errors.New("block %v: %v: unknown operand kind %T", bb.Name(), x.Op, a)
				}
			}
		}
	}

	return nil
}
