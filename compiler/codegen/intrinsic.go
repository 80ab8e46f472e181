package codegen

import (
	"github.com/AOSP-LEGACY/art/compiler/gir"
)

type (
	// IntrinsicID names one opaque runtime operation the bridge emits as a
	// call.  Intrinsics are declarations only: nothing on this side of the
	// bridge gives them a body.
	IntrinsicID int

	intrinsicDesc struct {
		Name string

		// return type followed by the parameter types, one code each:
		// V void, I i32, J i64, F f32, D f64, L object, M method, T thread
		Sig string

		Variadic bool
	}

	// intrinsics lazily declares intrinsic functions in the module and
	// resolves calls back to their ids.
	intrinsics struct {
		bx *Bridge

		fns [NumIntrinsics]*gir.Func
		ids map[*gir.Func]IntrinsicID
	}
)

const (
	UnknownIntrinsic IntrinsicID = iota

	// method frame
	MethodInfo
	AllocaShadowFrame
	SetShadowFrameEntry
	PopShadowFrame
	CheckSuspend

	// constants
	ConstInt
	ConstLong
	ConstFloat
	ConstDouble
	ConstObj
	ConstString
	ConstClass

	// copies
	CopyInt
	CopyLong
	CopyFloat
	CopyDouble
	CopyObj

	// division is a call: it can throw
	DivInt
	DivLong
	RemInt
	RemLong

	// invokes, selected by the result type
	HLInvokeVoid
	HLInvokeInt
	HLInvokeLong
	HLInvokeFloat
	HLInvokeDouble
	HLInvokeObj

	FilledNewArray
	FillArrayData

	NewInstance
	NewArray
	ArrayLengthOp
	CheckCast
	InstanceOf

	MonitorEnter
	MonitorExit

	GetException
	ThrowException
	ThrowVerificationError

	// static fields
	HLSget
	HLSgetObject
	HLSgetBoolean
	HLSgetByte
	HLSgetChar
	HLSgetShort
	HLSgetWide
	HLSgetFloat
	HLSgetDouble
	HLSput
	HLSputObject
	HLSputBoolean
	HLSputByte
	HLSputChar
	HLSputShort
	HLSputWide
	HLSputFloat
	HLSputDouble

	// instance fields
	HLIGet
	HLIGetObject
	HLIGetBoolean
	HLIGetByte
	HLIGetChar
	HLIGetShort
	HLIGetWide
	HLIGetFloat
	HLIGetDouble
	HLIPut
	HLIPutObject
	HLIPutBoolean
	HLIPutByte
	HLIPutChar
	HLIPutShort
	HLIPutWide
	HLIPutFloat
	HLIPutDouble

	// arrays
	HLArrayGet
	HLArrayGetObject
	HLArrayGetBoolean
	HLArrayGetByte
	HLArrayGetChar
	HLArrayGetShort
	HLArrayGetWide
	HLArrayGetFloat
	HLArrayGetDouble
	HLArrayPut
	HLArrayPutObject
	HLArrayPutBoolean
	HLArrayPutByte
	HLArrayPutChar
	HLArrayPutShort
	HLArrayPutWide
	HLArrayPutFloat
	HLArrayPutDouble

	// narrowing casts
	IntToByte
	IntToChar
	IntToShort

	NumIntrinsics
)

var intrinsicTab = [NumIntrinsics]intrinsicDesc{
	MethodInfo:          {Name: "art.method.info", Sig: "V"},
	AllocaShadowFrame:   {Name: "art.alloca.shadow.frame", Sig: "VI"},
	SetShadowFrameEntry: {Name: "art.set.shadow.frame.entry", Sig: "VLI"},
	PopShadowFrame:      {Name: "art.pop.shadow.frame", Sig: "V"},
	CheckSuspend:        {Name: "art.check.suspend", Sig: "V"},

	// fp constants travel as bit patterns
	ConstInt:    {Name: "art.const.int", Sig: "II"},
	ConstLong:   {Name: "art.const.long", Sig: "JJ"},
	ConstFloat:  {Name: "art.const.float", Sig: "FI"},
	ConstDouble: {Name: "art.const.double", Sig: "DJ"},
	ConstObj:    {Name: "art.const.obj", Sig: "LI"},
	ConstString: {Name: "art.const.string", Sig: "LI"},
	ConstClass:  {Name: "art.const.class", Sig: "LI"},

	CopyInt:    {Name: "art.copy.int", Sig: "II"},
	CopyLong:   {Name: "art.copy.long", Sig: "JJ"},
	CopyFloat:  {Name: "art.copy.float", Sig: "FF"},
	CopyDouble: {Name: "art.copy.double", Sig: "DD"},
	CopyObj:    {Name: "art.copy.obj", Sig: "LL"},

	DivInt:  {Name: "art.div.int", Sig: "III"},
	DivLong: {Name: "art.div.long", Sig: "JJJ"},
	RemInt:  {Name: "art.rem.int", Sig: "III"},
	RemLong: {Name: "art.rem.long", Sig: "JJJ"},

	// fixed args: invoke kind, method index, opt flags
	HLInvokeVoid:   {Name: "art.hl.invoke.void", Sig: "VIII", Variadic: true},
	HLInvokeInt:    {Name: "art.hl.invoke.int", Sig: "IIII", Variadic: true},
	HLInvokeLong:   {Name: "art.hl.invoke.long", Sig: "JIII", Variadic: true},
	HLInvokeFloat:  {Name: "art.hl.invoke.float", Sig: "FIII", Variadic: true},
	HLInvokeDouble: {Name: "art.hl.invoke.double", Sig: "DIII", Variadic: true},
	HLInvokeObj:    {Name: "art.hl.invoke.obj", Sig: "LIII", Variadic: true},

	FilledNewArray: {Name: "art.hl.filled.new.array", Sig: "LIII", Variadic: true},
	FillArrayData:  {Name: "art.hl.fill.array.data", Sig: "VIL"},

	NewInstance:   {Name: "art.new.instance", Sig: "LI"},
	NewArray:      {Name: "art.new.array", Sig: "LII"},
	ArrayLengthOp: {Name: "art.array.length", Sig: "IIL"},
	CheckCast:     {Name: "art.check.cast", Sig: "VIL"},
	InstanceOf:    {Name: "art.instance.of", Sig: "IIL"},

	MonitorEnter: {Name: "art.monitor.enter", Sig: "VIL"},
	MonitorExit:  {Name: "art.monitor.exit", Sig: "VIL"},

	GetException:           {Name: "art.get.current.exception", Sig: "L"},
	ThrowException:         {Name: "art.hl.throw.exception", Sig: "VL"},
	ThrowVerificationError: {Name: "art.throw.verification.error", Sig: "VII"},

	HLSget:        {Name: "art.hl.sget", Sig: "II"},
	HLSgetObject:  {Name: "art.hl.sget.object", Sig: "LI"},
	HLSgetBoolean: {Name: "art.hl.sget.boolean", Sig: "II"},
	HLSgetByte:    {Name: "art.hl.sget.byte", Sig: "II"},
	HLSgetChar:    {Name: "art.hl.sget.char", Sig: "II"},
	HLSgetShort:   {Name: "art.hl.sget.short", Sig: "II"},
	HLSgetWide:    {Name: "art.hl.sget.wide", Sig: "JI"},
	HLSgetFloat:   {Name: "art.hl.sget.float", Sig: "FI"},
	HLSgetDouble:  {Name: "art.hl.sget.double", Sig: "DI"},

	HLSput:        {Name: "art.hl.sput", Sig: "VII"},
	HLSputObject:  {Name: "art.hl.sput.object", Sig: "VIL"},
	HLSputBoolean: {Name: "art.hl.sput.boolean", Sig: "VII"},
	HLSputByte:    {Name: "art.hl.sput.byte", Sig: "VII"},
	HLSputChar:    {Name: "art.hl.sput.char", Sig: "VII"},
	HLSputShort:   {Name: "art.hl.sput.short", Sig: "VII"},
	HLSputWide:    {Name: "art.hl.sput.wide", Sig: "VIJ"},
	HLSputFloat:   {Name: "art.hl.sput.float", Sig: "VIF"},
	HLSputDouble:  {Name: "art.hl.sput.double", Sig: "VID"},

	// args: opt flags, object, field index
	HLIGet:        {Name: "art.hl.iget", Sig: "IILI"},
	HLIGetObject:  {Name: "art.hl.iget.object", Sig: "LILI"},
	HLIGetBoolean: {Name: "art.hl.iget.boolean", Sig: "IILI"},
	HLIGetByte:    {Name: "art.hl.iget.byte", Sig: "IILI"},
	HLIGetChar:    {Name: "art.hl.iget.char", Sig: "IILI"},
	HLIGetShort:   {Name: "art.hl.iget.short", Sig: "IILI"},
	HLIGetWide:    {Name: "art.hl.iget.wide", Sig: "JILI"},
	HLIGetFloat:   {Name: "art.hl.iget.float", Sig: "FILI"},
	HLIGetDouble:  {Name: "art.hl.iget.double", Sig: "DILI"},

	// args: opt flags, source, object, field index
	HLIPut:        {Name: "art.hl.iput", Sig: "VIILI"},
	HLIPutObject:  {Name: "art.hl.iput.object", Sig: "VILLI"},
	HLIPutBoolean: {Name: "art.hl.iput.boolean", Sig: "VIILI"},
	HLIPutByte:    {Name: "art.hl.iput.byte", Sig: "VIILI"},
	HLIPutChar:    {Name: "art.hl.iput.char", Sig: "VIILI"},
	HLIPutShort:   {Name: "art.hl.iput.short", Sig: "VIILI"},
	HLIPutWide:    {Name: "art.hl.iput.wide", Sig: "VIJLI"},
	HLIPutFloat:   {Name: "art.hl.iput.float", Sig: "VIFLI"},
	HLIPutDouble:  {Name: "art.hl.iput.double", Sig: "VIDLI"},

	// args: opt flags, array, index
	HLArrayGet:        {Name: "art.hl.aget", Sig: "IILI"},
	HLArrayGetObject:  {Name: "art.hl.aget.object", Sig: "LILI"},
	HLArrayGetBoolean: {Name: "art.hl.aget.boolean", Sig: "IILI"},
	HLArrayGetByte:    {Name: "art.hl.aget.byte", Sig: "IILI"},
	HLArrayGetChar:    {Name: "art.hl.aget.char", Sig: "IILI"},
	HLArrayGetShort:   {Name: "art.hl.aget.short", Sig: "IILI"},
	HLArrayGetWide:    {Name: "art.hl.aget.wide", Sig: "JILI"},
	HLArrayGetFloat:   {Name: "art.hl.aget.float", Sig: "FILI"},
	HLArrayGetDouble:  {Name: "art.hl.aget.double", Sig: "DILI"},

	// args: opt flags, source, array, index
	HLArrayPut:        {Name: "art.hl.aput", Sig: "VIILI"},
	HLArrayPutObject:  {Name: "art.hl.aput.object", Sig: "VILLI"},
	HLArrayPutBoolean: {Name: "art.hl.aput.boolean", Sig: "VIILI"},
	HLArrayPutByte:    {Name: "art.hl.aput.byte", Sig: "VIILI"},
	HLArrayPutChar:    {Name: "art.hl.aput.char", Sig: "VIILI"},
	HLArrayPutShort:   {Name: "art.hl.aput.short", Sig: "VIILI"},
	HLArrayPutWide:    {Name: "art.hl.aput.wide", Sig: "VIJLI"},
	HLArrayPutFloat:   {Name: "art.hl.aput.float", Sig: "VIFLI"},
	HLArrayPutDouble:  {Name: "art.hl.aput.double", Sig: "VIDLI"},

	IntToByte:  {Name: "art.int.to.byte", Sig: "II"},
	IntToChar:  {Name: "art.int.to.char", Sig: "II"},
	IntToShort: {Name: "art.int.to.short", Sig: "II"},
}

var intrinsicByName = map[string]IntrinsicID{}

func init() {
	for id := UnknownIntrinsic + 1; id < NumIntrinsics; id++ {
		intrinsicByName[intrinsicTab[id].Name] = id
	}
}

func newIntrinsics(bx *Bridge) *intrinsics {
	return &intrinsics{
		bx:  bx,
		ids: map[*gir.Func]IntrinsicID{},
	}
}

// fn returns the declaration of the intrinsic, declaring it on first use.
func (h *intrinsics) fn(id IntrinsicID) *gir.Func {
	if id <= UnknownIntrinsic || id >= NumIntrinsics {
		panic(id)
	}

	if f := h.fns[id]; f != nil {
		return f
	}

	d := intrinsicTab[id]

	// an externally optimized module may already carry the declaration
	f := h.bx.Mod.FuncByName(d.Name)
	if f == nil {
		var params []*gir.Type

		for i := 1; i < len(d.Sig); i++ {
			params = append(params, h.sigType(d.Sig[i]))
		}

		f = h.bx.Mod.NewDecl(d.Name, h.sigType(d.Sig[0]), params, d.Variadic)
	}

	h.fns[id] = f
	h.ids[f] = id

	return f
}

// id resolves a callee back to its intrinsic id, by identity first and by
// name after a module reimport.  UnknownIntrinsic if neither matches.
func (h *intrinsics) id(f *gir.Func) IntrinsicID {
	if id, ok := h.ids[f]; ok {
		return id
	}

	id, ok := intrinsicByName[f.Name]
	if !ok {
		return UnknownIntrinsic
	}

	h.ids[f] = id

	if h.fns[id] == nil {
		h.fns[id] = f
	}

	return id
}

func (h *intrinsics) sigType(c byte) *gir.Type {
	switch c {
	case 'V':
		return h.bx.Ctx.Void()
	case 'I':
		return h.bx.Ctx.Int32()
	case 'J':
		return h.bx.Ctx.Int64()
	case 'F':
		return h.bx.Ctx.Float()
	case 'D':
		return h.bx.Ctx.Double()
	case 'L':
		return h.bx.objectTy()
	case 'M':
		return h.bx.methodTy()
	default:
		panic(c)
	}
}
