package codegen

import (
	"github.com/AOSP-LEGACY/art/compiler/mir"
)

type (
	InvokeKind int

	// CallInfo is the flattened descriptor of one invoke or filled-new-array.
	// Args is word-expanded: a wide argument contributes two entries, the
	// second one synthesized from the first.
	CallInfo struct {
		Kind    InvokeKind
		Index   int32
		IsRange bool

		OptFlags int32
		Offset   int32

		Args   []mir.RegLocation
		Result mir.RegLocation
	}
)

const (
	InvokeStatic InvokeKind = iota
	InvokeDirect
	InvokeVirtual
	InvokeSuper
	InvokeInterface

	// filled-new-array reuses the descriptor with this pseudo kind
	InvokeNewArray
)

var invokeKindNames = []string{"static", "direct", "virtual", "super", "interface", "new-array"}

func (k InvokeKind) String() string {
	if k < 0 || int(k) >= len(invokeKindNames) {
		return "kind???"
	}

	return invokeKindNames[k]
}

// wideSecond synthesizes the descriptor of the second word of a wide pair.
func wideSecond(lo mir.RegLocation) mir.RegLocation {
	hi := lo
	hi.OrigSReg = lo.OrigSReg + 1
	hi.SRegLow = lo.SRegLow + 1

	return hi
}

// newCallInfo flattens the instruction operands into a descriptor.  Uses are
// walked in s-register order; a wide use consumes two of them and yields a
// synthesized second slot.
func newCallInfo(m *mir.Method, x *mir.Insn, kind InvokeKind, isRange bool) *CallInfo {
	info := &CallInfo{
		Kind:     kind,
		Index:    x.B,
		IsRange:  isRange,
		OptFlags: x.OptFlags,
		Offset:   x.Offset,
		Result:   mir.BadLoc,
	}

	for i := 0; i < len(x.SSA.Uses); {
		loc := m.Loc[x.SSA.Uses[i]]

		info.Args = append(info.Args, loc)

		if loc.Wide {
			info.Args = append(info.Args, wideSecond(loc))
			i += 2
		} else {
			i++
		}
	}

	if len(x.SSA.Defs) != 0 {
		info.Result = m.Loc[x.SSA.Defs[0]]
	}

	return info
}
