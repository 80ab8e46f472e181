package mir

import "tlog.app/go/tlog/tlwire"

type (
	// LocKind tells where a value lives.
	LocKind int

	// RegLocation describes one SSA value: where it lives and what it holds.
	// Exactly one of FP, Ref and Core is set for a defined location.
	RegLocation struct {
		Kind LocKind `json:"kind"`

		Wide    bool `json:"wide,omitempty"`
		Defined bool `json:"defined,omitempty"`
		FP      bool `json:"fp,omitempty"`
		Core    bool `json:"core,omitempty"`
		Ref     bool `json:"ref,omitempty"`
		Home    bool `json:"home,omitempty"`

		LowReg  int `json:"low_reg"`
		HighReg int `json:"high_reg"`

		SRegLow  int `json:"s_reg_low"`
		OrigSReg int `json:"orig_s_reg"`
	}
)

const (
	LocInvalid LocKind = iota
	LocFrame
	LocPhysReg
)

const (
	InvalidReg  = -1
	InvalidSReg = -1

	// MethodBaseReg is the reserved base register of the implicit method argument.
	MethodBaseReg = -2
)

// BadLoc is the canonical undefined location.
var BadLoc = RegLocation{
	Kind:     LocInvalid,
	LowReg:   InvalidReg,
	HighReg:  InvalidReg,
	SRegLow:  InvalidSReg,
	OrigSReg: InvalidSReg,
}

func (l RegLocation) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 6)
	b = e.AppendKeyInt(b, "kind", int(l.Kind))
	b = e.AppendKeyInt(b, "sreg", l.SRegLow)
	b = e.AppendKeyInt(b, "orig", l.OrigSReg)

	b = e.AppendKey(b, "wide")
	b = e.AppendBool(b, l.Wide)

	b = e.AppendKey(b, "fp")
	b = e.AppendBool(b, l.FP)

	b = e.AppendKey(b, "ref")
	b = e.AppendBool(b, l.Ref)

	return b
}
