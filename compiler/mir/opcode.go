package mir

type (
	Opcode int

	// Attr is the dataflow attribute mask of an opcode.  It drives operand
	// preparation: which of vA/vB/vC are used, which are wide, whether vA
	// is defined.
	Attr int
)

const (
	UseA Attr = 1 << iota
	UseB
	UseC
	WideA
	WideB
	WideC
	DefA
)

const (
	OpNop Opcode = iota

	OpMove
	OpMoveFrom16
	OpMove16
	OpMoveWide
	OpMoveWideFrom16
	OpMoveWide16
	OpMoveObject
	OpMoveObjectFrom16
	OpMoveObject16
	OpMoveResult
	OpMoveResultWide
	OpMoveResultObject
	OpMoveException

	OpReturnVoid
	OpReturn
	OpReturnWide
	OpReturnObject

	OpConst4
	OpConst16
	OpConst
	OpConstHigh16
	OpConstWide16
	OpConstWide32
	OpConstWide
	OpConstWideHigh16
	OpConstString
	OpConstStringJumbo
	OpConstClass

	OpMonitorEnter
	OpMonitorExit

	OpCheckCast
	OpInstanceOf
	OpArrayLength
	OpNewInstance
	OpNewArray
	OpFilledNewArray
	OpFilledNewArrayRange
	OpFillArrayData

	OpThrow
	OpThrowVerificationError

	OpGoto
	OpGoto16
	OpGoto32

	OpPackedSwitch
	OpSparseSwitch

	OpCmplFloat
	OpCmpgFloat
	OpCmplDouble
	OpCmpgDouble
	OpCmpLong

	OpIfEq
	OpIfNe
	OpIfLt
	OpIfGe
	OpIfGt
	OpIfLe
	OpIfEqz
	OpIfNez
	OpIfLtz
	OpIfGez
	OpIfGtz
	OpIfLez

	OpAget
	OpAgetWide
	OpAgetObject
	OpAgetBoolean
	OpAgetByte
	OpAgetChar
	OpAgetShort
	OpAput
	OpAputWide
	OpAputObject
	OpAputBoolean
	OpAputByte
	OpAputChar
	OpAputShort

	OpIget
	OpIgetWide
	OpIgetObject
	OpIgetBoolean
	OpIgetByte
	OpIgetChar
	OpIgetShort
	OpIput
	OpIputWide
	OpIputObject
	OpIputBoolean
	OpIputByte
	OpIputChar
	OpIputShort

	OpSget
	OpSgetWide
	OpSgetObject
	OpSgetBoolean
	OpSgetByte
	OpSgetChar
	OpSgetShort
	OpSput
	OpSputWide
	OpSputObject
	OpSputBoolean
	OpSputByte
	OpSputChar
	OpSputShort

	OpInvokeVirtual
	OpInvokeSuper
	OpInvokeDirect
	OpInvokeStatic
	OpInvokeInterface
	OpInvokeVirtualRange
	OpInvokeSuperRange
	OpInvokeDirectRange
	OpInvokeStaticRange
	OpInvokeInterfaceRange

	OpNegInt
	OpNotInt
	OpNegLong
	OpNotLong
	OpNegFloat
	OpNegDouble

	OpIntToLong
	OpIntToFloat
	OpIntToDouble
	OpLongToInt
	OpLongToFloat
	OpLongToDouble
	OpFloatToInt
	OpFloatToLong
	OpFloatToDouble
	OpDoubleToInt
	OpDoubleToLong
	OpDoubleToFloat
	OpIntToByte
	OpIntToChar
	OpIntToShort

	OpAddInt
	OpSubInt
	OpMulInt
	OpDivInt
	OpRemInt
	OpAndInt
	OpOrInt
	OpXorInt
	OpShlInt
	OpShrInt
	OpUshrInt

	OpAddLong
	OpSubLong
	OpMulLong
	OpDivLong
	OpRemLong
	OpAndLong
	OpOrLong
	OpXorLong
	OpShlLong
	OpShrLong
	OpUshrLong

	OpAddFloat
	OpSubFloat
	OpMulFloat
	OpDivFloat
	OpRemFloat

	OpAddDouble
	OpSubDouble
	OpMulDouble
	OpDivDouble
	OpRemDouble

	OpAddInt2Addr
	OpSubInt2Addr
	OpMulInt2Addr
	OpDivInt2Addr
	OpRemInt2Addr
	OpAndInt2Addr
	OpOrInt2Addr
	OpXorInt2Addr
	OpShlInt2Addr
	OpShrInt2Addr
	OpUshrInt2Addr

	OpAddLong2Addr
	OpSubLong2Addr
	OpMulLong2Addr
	OpDivLong2Addr
	OpRemLong2Addr
	OpAndLong2Addr
	OpOrLong2Addr
	OpXorLong2Addr
	OpShlLong2Addr
	OpShrLong2Addr
	OpUshrLong2Addr

	OpAddFloat2Addr
	OpSubFloat2Addr
	OpMulFloat2Addr
	OpDivFloat2Addr
	OpRemFloat2Addr

	OpAddDouble2Addr
	OpSubDouble2Addr
	OpMulDouble2Addr
	OpDivDouble2Addr
	OpRemDouble2Addr

	OpAddIntLit16
	OpRsubInt
	OpMulIntLit16
	OpDivIntLit16
	OpRemIntLit16
	OpAndIntLit16
	OpOrIntLit16
	OpXorIntLit16

	OpAddIntLit8
	OpRsubIntLit8
	OpMulIntLit8
	OpDivIntLit8
	OpRemIntLit8
	OpAndIntLit8
	OpOrIntLit8
	OpXorIntLit8
	OpShlIntLit8
	OpShrIntLit8
	OpUshrIntLit8

	// extended ops produced by the SSA front end

	OpPhi

	NumOpcodes
)

var opNames = [NumOpcodes]string{
	OpNop: "nop",

	OpMove:             "move",
	OpMoveFrom16:       "move/from16",
	OpMove16:           "move/16",
	OpMoveWide:         "move-wide",
	OpMoveWideFrom16:   "move-wide/from16",
	OpMoveWide16:       "move-wide/16",
	OpMoveObject:       "move-object",
	OpMoveObjectFrom16: "move-object/from16",
	OpMoveObject16:     "move-object/16",
	OpMoveResult:       "move-result",
	OpMoveResultWide:   "move-result-wide",
	OpMoveResultObject: "move-result-object",
	OpMoveException:    "move-exception",

	OpReturnVoid:   "return-void",
	OpReturn:       "return",
	OpReturnWide:   "return-wide",
	OpReturnObject: "return-object",

	OpConst4:          "const/4",
	OpConst16:         "const/16",
	OpConst:           "const",
	OpConstHigh16:     "const/high16",
	OpConstWide16:     "const-wide/16",
	OpConstWide32:     "const-wide/32",
	OpConstWide:       "const-wide",
	OpConstWideHigh16: "const-wide/high16",

	OpConstString:      "const-string",
	OpConstStringJumbo: "const-string/jumbo",
	OpConstClass:       "const-class",

	OpMonitorEnter: "monitor-enter",
	OpMonitorExit:  "monitor-exit",

	OpCheckCast:           "check-cast",
	OpInstanceOf:          "instance-of",
	OpArrayLength:         "array-length",
	OpNewInstance:         "new-instance",
	OpNewArray:            "new-array",
	OpFilledNewArray:      "filled-new-array",
	OpFilledNewArrayRange: "filled-new-array/range",
	OpFillArrayData:       "fill-array-data",

	OpThrow:                  "throw",
	OpThrowVerificationError: "throw-verification-error",

	OpGoto:   "goto",
	OpGoto16: "goto/16",
	OpGoto32: "goto/32",

	OpPackedSwitch: "packed-switch",
	OpSparseSwitch: "sparse-switch",

	OpCmplFloat:  "cmpl-float",
	OpCmpgFloat:  "cmpg-float",
	OpCmplDouble: "cmpl-double",
	OpCmpgDouble: "cmpg-double",
	OpCmpLong:    "cmp-long",

	OpIfEq:  "if-eq",
	OpIfNe:  "if-ne",
	OpIfLt:  "if-lt",
	OpIfGe:  "if-ge",
	OpIfGt:  "if-gt",
	OpIfLe:  "if-le",
	OpIfEqz: "if-eqz",
	OpIfNez: "if-nez",
	OpIfLtz: "if-ltz",
	OpIfGez: "if-gez",
	OpIfGtz: "if-gtz",
	OpIfLez: "if-lez",

	OpAget:        "aget",
	OpAgetWide:    "aget-wide",
	OpAgetObject:  "aget-object",
	OpAgetBoolean: "aget-boolean",
	OpAgetByte:    "aget-byte",
	OpAgetChar:    "aget-char",
	OpAgetShort:   "aget-short",
	OpAput:        "aput",
	OpAputWide:    "aput-wide",
	OpAputObject:  "aput-object",
	OpAputBoolean: "aput-boolean",
	OpAputByte:    "aput-byte",
	OpAputChar:    "aput-char",
	OpAputShort:   "aput-short",

	OpIget:        "iget",
	OpIgetWide:    "iget-wide",
	OpIgetObject:  "iget-object",
	OpIgetBoolean: "iget-boolean",
	OpIgetByte:    "iget-byte",
	OpIgetChar:    "iget-char",
	OpIgetShort:   "iget-short",
	OpIput:        "iput",
	OpIputWide:    "iput-wide",
	OpIputObject:  "iput-object",
	OpIputBoolean: "iput-boolean",
	OpIputByte:    "iput-byte",
	OpIputChar:    "iput-char",
	OpIputShort:   "iput-short",

	OpSget:        "sget",
	OpSgetWide:    "sget-wide",
	OpSgetObject:  "sget-object",
	OpSgetBoolean: "sget-boolean",
	OpSgetByte:    "sget-byte",
	OpSgetChar:    "sget-char",
	OpSgetShort:   "sget-short",
	OpSput:        "sput",
	OpSputWide:    "sput-wide",
	OpSputObject:  "sput-object",
	OpSputBoolean: "sput-boolean",
	OpSputByte:    "sput-byte",
	OpSputChar:    "sput-char",
	OpSputShort:   "sput-short",

	OpInvokeVirtual:        "invoke-virtual",
	OpInvokeSuper:          "invoke-super",
	OpInvokeDirect:         "invoke-direct",
	OpInvokeStatic:         "invoke-static",
	OpInvokeInterface:      "invoke-interface",
	OpInvokeVirtualRange:   "invoke-virtual/range",
	OpInvokeSuperRange:     "invoke-super/range",
	OpInvokeDirectRange:    "invoke-direct/range",
	OpInvokeStaticRange:    "invoke-static/range",
	OpInvokeInterfaceRange: "invoke-interface/range",

	OpNegInt:    "neg-int",
	OpNotInt:    "not-int",
	OpNegLong:   "neg-long",
	OpNotLong:   "not-long",
	OpNegFloat:  "neg-float",
	OpNegDouble: "neg-double",

	OpIntToLong:     "int-to-long",
	OpIntToFloat:    "int-to-float",
	OpIntToDouble:   "int-to-double",
	OpLongToInt:     "long-to-int",
	OpLongToFloat:   "long-to-float",
	OpLongToDouble:  "long-to-double",
	OpFloatToInt:    "float-to-int",
	OpFloatToLong:   "float-to-long",
	OpFloatToDouble: "float-to-double",
	OpDoubleToInt:   "double-to-int",
	OpDoubleToLong:  "double-to-long",
	OpDoubleToFloat: "double-to-float",
	OpIntToByte:     "int-to-byte",
	OpIntToChar:     "int-to-char",
	OpIntToShort:    "int-to-short",

	OpAddInt:  "add-int",
	OpSubInt:  "sub-int",
	OpMulInt:  "mul-int",
	OpDivInt:  "div-int",
	OpRemInt:  "rem-int",
	OpAndInt:  "and-int",
	OpOrInt:   "or-int",
	OpXorInt:  "xor-int",
	OpShlInt:  "shl-int",
	OpShrInt:  "shr-int",
	OpUshrInt: "ushr-int",

	OpAddLong:  "add-long",
	OpSubLong:  "sub-long",
	OpMulLong:  "mul-long",
	OpDivLong:  "div-long",
	OpRemLong:  "rem-long",
	OpAndLong:  "and-long",
	OpOrLong:   "or-long",
	OpXorLong:  "xor-long",
	OpShlLong:  "shl-long",
	OpShrLong:  "shr-long",
	OpUshrLong: "ushr-long",

	OpAddFloat: "add-float",
	OpSubFloat: "sub-float",
	OpMulFloat: "mul-float",
	OpDivFloat: "div-float",
	OpRemFloat: "rem-float",

	OpAddDouble: "add-double",
	OpSubDouble: "sub-double",
	OpMulDouble: "mul-double",
	OpDivDouble: "div-double",
	OpRemDouble: "rem-double",

	OpAddInt2Addr:  "add-int/2addr",
	OpSubInt2Addr:  "sub-int/2addr",
	OpMulInt2Addr:  "mul-int/2addr",
	OpDivInt2Addr:  "div-int/2addr",
	OpRemInt2Addr:  "rem-int/2addr",
	OpAndInt2Addr:  "and-int/2addr",
	OpOrInt2Addr:   "or-int/2addr",
	OpXorInt2Addr:  "xor-int/2addr",
	OpShlInt2Addr:  "shl-int/2addr",
	OpShrInt2Addr:  "shr-int/2addr",
	OpUshrInt2Addr: "ushr-int/2addr",

	OpAddLong2Addr:  "add-long/2addr",
	OpSubLong2Addr:  "sub-long/2addr",
	OpMulLong2Addr:  "mul-long/2addr",
	OpDivLong2Addr:  "div-long/2addr",
	OpRemLong2Addr:  "rem-long/2addr",
	OpAndLong2Addr:  "and-long/2addr",
	OpOrLong2Addr:   "or-long/2addr",
	OpXorLong2Addr:  "xor-long/2addr",
	OpShlLong2Addr:  "shl-long/2addr",
	OpShrLong2Addr:  "shr-long/2addr",
	OpUshrLong2Addr: "ushr-long/2addr",

	OpAddFloat2Addr: "add-float/2addr",
	OpSubFloat2Addr: "sub-float/2addr",
	OpMulFloat2Addr: "mul-float/2addr",
	OpDivFloat2Addr: "div-float/2addr",
	OpRemFloat2Addr: "rem-float/2addr",

	OpAddDouble2Addr: "add-double/2addr",
	OpSubDouble2Addr: "sub-double/2addr",
	OpMulDouble2Addr: "mul-double/2addr",
	OpDivDouble2Addr: "div-double/2addr",
	OpRemDouble2Addr: "rem-double/2addr",

	OpAddIntLit16: "add-int/lit16",
	OpRsubInt:     "rsub-int",
	OpMulIntLit16: "mul-int/lit16",
	OpDivIntLit16: "div-int/lit16",
	OpRemIntLit16: "rem-int/lit16",
	OpAndIntLit16: "and-int/lit16",
	OpOrIntLit16:  "or-int/lit16",
	OpXorIntLit16: "xor-int/lit16",

	OpAddIntLit8:  "add-int/lit8",
	OpRsubIntLit8: "rsub-int/lit8",
	OpMulIntLit8:  "mul-int/lit8",
	OpDivIntLit8:  "div-int/lit8",
	OpRemIntLit8:  "rem-int/lit8",
	OpAndIntLit8:  "and-int/lit8",
	OpOrIntLit8:   "or-int/lit8",
	OpXorIntLit8:  "xor-int/lit8",
	OpShlIntLit8:  "shl-int/lit8",
	OpShrIntLit8:  "shr-int/lit8",
	OpUshrIntLit8: "ushr-int/lit8",

	OpPhi: "phi",
}

var opAttrs = [NumOpcodes]Attr{
	OpNop: 0,

	OpMove:             DefA | UseB,
	OpMoveFrom16:       DefA | UseB,
	OpMove16:           DefA | UseB,
	OpMoveWide:         DefA | WideA | UseB | WideB,
	OpMoveWideFrom16:   DefA | WideA | UseB | WideB,
	OpMoveWide16:       DefA | WideA | UseB | WideB,
	OpMoveObject:       DefA | UseB,
	OpMoveObjectFrom16: DefA | UseB,
	OpMoveObject16:     DefA | UseB,
	OpMoveResult:       DefA,
	OpMoveResultWide:   DefA | WideA,
	OpMoveResultObject: DefA,
	OpMoveException:    DefA,

	OpReturnVoid:   0,
	OpReturn:       UseA,
	OpReturnWide:   UseA | WideA,
	OpReturnObject: UseA,

	OpConst4:          DefA,
	OpConst16:         DefA,
	OpConst:           DefA,
	OpConstHigh16:     DefA,
	OpConstWide16:     DefA | WideA,
	OpConstWide32:     DefA | WideA,
	OpConstWide:       DefA | WideA,
	OpConstWideHigh16: DefA | WideA,

	OpConstString:      DefA,
	OpConstStringJumbo: DefA,
	OpConstClass:       DefA,

	OpMonitorEnter: UseA,
	OpMonitorExit:  UseA,

	OpCheckCast:   UseA,
	OpInstanceOf:  DefA | UseB,
	OpArrayLength: DefA | UseB,
	OpNewInstance: DefA,
	OpNewArray:    DefA | UseB,

	// filled-new-array and invokes collect operands through the call
	// descriptor, not the attribute mask
	OpFilledNewArray:      0,
	OpFilledNewArrayRange: 0,

	OpFillArrayData: UseA,

	OpThrow:                  UseA,
	OpThrowVerificationError: 0,

	OpGoto:   0,
	OpGoto16: 0,
	OpGoto32: 0,

	OpPackedSwitch: UseA,
	OpSparseSwitch: UseA,

	OpCmplFloat:  DefA | UseB | UseC,
	OpCmpgFloat:  DefA | UseB | UseC,
	OpCmplDouble: DefA | UseB | WideB | UseC | WideC,
	OpCmpgDouble: DefA | UseB | WideB | UseC | WideC,
	OpCmpLong:    DefA | UseB | WideB | UseC | WideC,

	OpIfEq:  UseA | UseB,
	OpIfNe:  UseA | UseB,
	OpIfLt:  UseA | UseB,
	OpIfGe:  UseA | UseB,
	OpIfGt:  UseA | UseB,
	OpIfLe:  UseA | UseB,
	OpIfEqz: UseA,
	OpIfNez: UseA,
	OpIfLtz: UseA,
	OpIfGez: UseA,
	OpIfGtz: UseA,
	OpIfLez: UseA,

	OpAget:        DefA | UseB | UseC,
	OpAgetWide:    DefA | WideA | UseB | UseC,
	OpAgetObject:  DefA | UseB | UseC,
	OpAgetBoolean: DefA | UseB | UseC,
	OpAgetByte:    DefA | UseB | UseC,
	OpAgetChar:    DefA | UseB | UseC,
	OpAgetShort:   DefA | UseB | UseC,
	OpAput:        UseA | UseB | UseC,
	OpAputWide:    UseA | WideA | UseB | UseC,
	OpAputObject:  UseA | UseB | UseC,
	OpAputBoolean: UseA | UseB | UseC,
	OpAputByte:    UseA | UseB | UseC,
	OpAputChar:    UseA | UseB | UseC,
	OpAputShort:   UseA | UseB | UseC,

	OpIget:        DefA | UseB,
	OpIgetWide:    DefA | WideA | UseB,
	OpIgetObject:  DefA | UseB,
	OpIgetBoolean: DefA | UseB,
	OpIgetByte:    DefA | UseB,
	OpIgetChar:    DefA | UseB,
	OpIgetShort:   DefA | UseB,
	OpIput:        UseA | UseB,
	OpIputWide:    UseA | WideA | UseB,
	OpIputObject:  UseA | UseB,
	OpIputBoolean: UseA | UseB,
	OpIputByte:    UseA | UseB,
	OpIputChar:    UseA | UseB,
	OpIputShort:   UseA | UseB,

	OpSget:        DefA,
	OpSgetWide:    DefA | WideA,
	OpSgetObject:  DefA,
	OpSgetBoolean: DefA,
	OpSgetByte:    DefA,
	OpSgetChar:    DefA,
	OpSgetShort:   DefA,
	OpSput:        UseA,
	OpSputWide:    UseA | WideA,
	OpSputObject:  UseA,
	OpSputBoolean: UseA,
	OpSputByte:    UseA,
	OpSputChar:    UseA,
	OpSputShort:   UseA,

	OpInvokeVirtual:        0,
	OpInvokeSuper:          0,
	OpInvokeDirect:         0,
	OpInvokeStatic:         0,
	OpInvokeInterface:      0,
	OpInvokeVirtualRange:   0,
	OpInvokeSuperRange:     0,
	OpInvokeDirectRange:    0,
	OpInvokeStaticRange:    0,
	OpInvokeInterfaceRange: 0,

	OpNegInt:    DefA | UseB,
	OpNotInt:    DefA | UseB,
	OpNegLong:   DefA | WideA | UseB | WideB,
	OpNotLong:   DefA | WideA | UseB | WideB,
	OpNegFloat:  DefA | UseB,
	OpNegDouble: DefA | WideA | UseB | WideB,

	OpIntToLong:     DefA | WideA | UseB,
	OpIntToFloat:    DefA | UseB,
	OpIntToDouble:   DefA | WideA | UseB,
	OpLongToInt:     DefA | UseB | WideB,
	OpLongToFloat:   DefA | UseB | WideB,
	OpLongToDouble:  DefA | WideA | UseB | WideB,
	OpFloatToInt:    DefA | UseB,
	OpFloatToLong:   DefA | WideA | UseB,
	OpFloatToDouble: DefA | WideA | UseB,
	OpDoubleToInt:   DefA | UseB | WideB,
	OpDoubleToLong:  DefA | WideA | UseB | WideB,
	OpDoubleToFloat: DefA | UseB | WideB,
	OpIntToByte:     DefA | UseB,
	OpIntToChar:     DefA | UseB,
	OpIntToShort:    DefA | UseB,

	OpAddInt:  DefA | UseB | UseC,
	OpSubInt:  DefA | UseB | UseC,
	OpMulInt:  DefA | UseB | UseC,
	OpDivInt:  DefA | UseB | UseC,
	OpRemInt:  DefA | UseB | UseC,
	OpAndInt:  DefA | UseB | UseC,
	OpOrInt:   DefA | UseB | UseC,
	OpXorInt:  DefA | UseB | UseC,
	OpShlInt:  DefA | UseB | UseC,
	OpShrInt:  DefA | UseB | UseC,
	OpUshrInt: DefA | UseB | UseC,

	OpAddLong:  DefA | WideA | UseB | WideB | UseC | WideC,
	OpSubLong:  DefA | WideA | UseB | WideB | UseC | WideC,
	OpMulLong:  DefA | WideA | UseB | WideB | UseC | WideC,
	OpDivLong:  DefA | WideA | UseB | WideB | UseC | WideC,
	OpRemLong:  DefA | WideA | UseB | WideB | UseC | WideC,
	OpAndLong:  DefA | WideA | UseB | WideB | UseC | WideC,
	OpOrLong:   DefA | WideA | UseB | WideB | UseC | WideC,
	OpXorLong:  DefA | WideA | UseB | WideB | UseC | WideC,
	OpShlLong:  DefA | WideA | UseB | WideB | UseC,
	OpShrLong:  DefA | WideA | UseB | WideB | UseC,
	OpUshrLong: DefA | WideA | UseB | WideB | UseC,

	OpAddFloat: DefA | UseB | UseC,
	OpSubFloat: DefA | UseB | UseC,
	OpMulFloat: DefA | UseB | UseC,
	OpDivFloat: DefA | UseB | UseC,
	OpRemFloat: DefA | UseB | UseC,

	OpAddDouble: DefA | WideA | UseB | WideB | UseC | WideC,
	OpSubDouble: DefA | WideA | UseB | WideB | UseC | WideC,
	OpMulDouble: DefA | WideA | UseB | WideB | UseC | WideC,
	OpDivDouble: DefA | WideA | UseB | WideB | UseC | WideC,
	OpRemDouble: DefA | WideA | UseB | WideB | UseC | WideC,

	OpAddInt2Addr:  DefA | UseA | UseB,
	OpSubInt2Addr:  DefA | UseA | UseB,
	OpMulInt2Addr:  DefA | UseA | UseB,
	OpDivInt2Addr:  DefA | UseA | UseB,
	OpRemInt2Addr:  DefA | UseA | UseB,
	OpAndInt2Addr:  DefA | UseA | UseB,
	OpOrInt2Addr:   DefA | UseA | UseB,
	OpXorInt2Addr:  DefA | UseA | UseB,
	OpShlInt2Addr:  DefA | UseA | UseB,
	OpShrInt2Addr:  DefA | UseA | UseB,
	OpUshrInt2Addr: DefA | UseA | UseB,

	OpAddLong2Addr:  DefA | WideA | UseA | UseB | WideB,
	OpSubLong2Addr:  DefA | WideA | UseA | UseB | WideB,
	OpMulLong2Addr:  DefA | WideA | UseA | UseB | WideB,
	OpDivLong2Addr:  DefA | WideA | UseA | UseB | WideB,
	OpRemLong2Addr:  DefA | WideA | UseA | UseB | WideB,
	OpAndLong2Addr:  DefA | WideA | UseA | UseB | WideB,
	OpOrLong2Addr:   DefA | WideA | UseA | UseB | WideB,
	OpXorLong2Addr:  DefA | WideA | UseA | UseB | WideB,
	OpShlLong2Addr:  DefA | WideA | UseA | UseB,
	OpShrLong2Addr:  DefA | WideA | UseA | UseB,
	OpUshrLong2Addr: DefA | WideA | UseA | UseB,

	OpAddFloat2Addr: DefA | UseA | UseB,
	OpSubFloat2Addr: DefA | UseA | UseB,
	OpMulFloat2Addr: DefA | UseA | UseB,
	OpDivFloat2Addr: DefA | UseA | UseB,
	OpRemFloat2Addr: DefA | UseA | UseB,

	OpAddDouble2Addr: DefA | WideA | UseA | UseB | WideB,
	OpSubDouble2Addr: DefA | WideA | UseA | UseB | WideB,
	OpMulDouble2Addr: DefA | WideA | UseA | UseB | WideB,
	OpDivDouble2Addr: DefA | WideA | UseA | UseB | WideB,
	OpRemDouble2Addr: DefA | WideA | UseA | UseB | WideB,

	OpAddIntLit16: DefA | UseB,
	OpRsubInt:     DefA | UseB,
	OpMulIntLit16: DefA | UseB,
	OpDivIntLit16: DefA | UseB,
	OpRemIntLit16: DefA | UseB,
	OpAndIntLit16: DefA | UseB,
	OpOrIntLit16:  DefA | UseB,
	OpXorIntLit16: DefA | UseB,

	OpAddIntLit8:  DefA | UseB,
	OpRsubIntLit8: DefA | UseB,
	OpMulIntLit8:  DefA | UseB,
	OpDivIntLit8:  DefA | UseB,
	OpRemIntLit8:  DefA | UseB,
	OpAndIntLit8:  DefA | UseB,
	OpOrIntLit8:   DefA | UseB,
	OpXorIntLit8:  DefA | UseB,
	OpShlIntLit8:  DefA | UseB,
	OpShrIntLit8:  DefA | UseB,
	OpUshrIntLit8: DefA | UseB,

	// phi defines vA, uses come straight from the ssa rep
	OpPhi: DefA,
}

func (op Opcode) String() string {
	if op < 0 || op >= NumOpcodes {
		return "op???"
	}

	return opNames[op]
}

func (op Opcode) Attrs() Attr {
	if op < 0 || op >= NumOpcodes {
		return 0
	}

	return opAttrs[op]
}

func (a Attr) Has(f Attr) bool { return a&f == f }
