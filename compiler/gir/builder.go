package gir

import (
	"tlog.app/go/loc"
)

type (
	// Builder creates instructions at an insert point.  While an offset is
	// set it is attached to every created instruction as metadata.
	Builder struct {
		ctx *Context

		blk *Block

		off   int32
		offOK bool
	}
)

func NewBuilder(ctx *Context) *Builder {
	return &Builder{ctx: ctx}
}

func (b *Builder) Ctx() *Context { return b.ctx }

func (b *Builder) SetInsertPoint(blk *Block) { b.blk = blk }
func (b *Builder) InsertPoint() *Block       { return b.blk }

func (b *Builder) SetOffset(off int32) {
	b.off = off
	b.offOK = true
}

func (b *Builder) ClearOffset() { b.offOK = false }

func (b *Builder) Int32(v int32) *Const {
	c := &Const{Int: int64(v)}
	c.typ = b.ctx.Int32()

	return c
}

func (b *Builder) Int64(v int64) *Const {
	c := &Const{Int: v}
	c.typ = b.ctx.Int64()

	return c
}

// Null is the null reference of the given opaque pointer type.
func (b *Builder) Null(tp *Type) *Const {
	c := &Const{Null: true}
	c.typ = tp

	return c
}

func (b *Builder) insert(op Op, tp *Type, args ...Value) *Instr {
	if b.blk == nil {
		panic("no insert point")
	}

	x := &Instr{
		Op:   op,
		Args: args,
		Blk:  b.blk,
	}
	x.typ = tp
	x.From = loc.Caller(2)

	for _, a := range args {
		x.addUse(a)
	}

	if b.offOK {
		x.SetMetadata(MDOffset, []int64{int64(b.off)})
	}

	b.blk.Insns = append(b.blk.Insns, x)

	return x
}

func (b *Builder) CreateBinOp(op Op, l, r Value) *Instr {
	return b.insert(op, l.Type(), l, r)
}

func (b *Builder) CreateAdd(l, r Value) *Instr  { return b.insert(OpAdd, l.Type(), l, r) }
func (b *Builder) CreateSub(l, r Value) *Instr  { return b.insert(OpSub, l.Type(), l, r) }
func (b *Builder) CreateMul(l, r Value) *Instr  { return b.insert(OpMul, l.Type(), l, r) }
func (b *Builder) CreateAnd(l, r Value) *Instr  { return b.insert(OpAnd, l.Type(), l, r) }
func (b *Builder) CreateOr(l, r Value) *Instr   { return b.insert(OpOr, l.Type(), l, r) }
func (b *Builder) CreateXor(l, r Value) *Instr  { return b.insert(OpXor, l.Type(), l, r) }
func (b *Builder) CreateShl(l, r Value) *Instr  { return b.insert(OpShl, l.Type(), l, r) }
func (b *Builder) CreateLShr(l, r Value) *Instr { return b.insert(OpLShr, l.Type(), l, r) }
func (b *Builder) CreateAShr(l, r Value) *Instr { return b.insert(OpAShr, l.Type(), l, r) }

func (b *Builder) CreateFAdd(l, r Value) *Instr { return b.insert(OpFAdd, l.Type(), l, r) }
func (b *Builder) CreateFSub(l, r Value) *Instr { return b.insert(OpFSub, l.Type(), l, r) }
func (b *Builder) CreateFMul(l, r Value) *Instr { return b.insert(OpFMul, l.Type(), l, r) }
func (b *Builder) CreateFDiv(l, r Value) *Instr { return b.insert(OpFDiv, l.Type(), l, r) }
func (b *Builder) CreateFRem(l, r Value) *Instr { return b.insert(OpFRem, l.Type(), l, r) }

func (b *Builder) CreateICmp(p Pred, l, r Value) *Instr {
	x := b.insert(OpICmp, b.ctx.Int1(), l, r)
	x.Pred = p

	return x
}

func (b *Builder) CreateSExt(v Value, tp *Type) *Instr { return b.insert(OpSExt, tp, v) }
func (b *Builder) CreateZExt(v Value, tp *Type) *Instr { return b.insert(OpZExt, tp, v) }

func (b *Builder) CreatePhi(tp *Type) *Instr {
	return b.insert(OpPhi, tp)
}

func (b *Builder) CreateCall(callee *Func, args ...Value) *Instr {
	x := b.insert(OpCall, callee.Ret, args...)
	x.Callee = callee

	return x
}

func (b *Builder) CreateBr(dst *Block) *Instr {
	x := b.insert(OpBr, b.ctx.Void())
	x.Targets = []*Block{dst}

	return x
}

func (b *Builder) CreateCondBr(cond Value, taken, fallThrough *Block) *Instr {
	x := b.insert(OpCondBr, b.ctx.Void(), cond)
	x.Targets = []*Block{taken, fallThrough}

	return x
}

func (b *Builder) CreateRet(v Value) *Instr {
	return b.insert(OpRet, b.ctx.Void(), v)
}

func (b *Builder) CreateRetVoid() *Instr {
	return b.insert(OpRetVoid, b.ctx.Void())
}

func (b *Builder) CreateUnreachable() *Instr {
	return b.insert(OpUnreachable, b.ctx.Void())
}

func (b *Builder) CreateAlloca(tp *Type) *Instr {
	return b.insert(OpAlloca, b.ctx.Ptr(tp))
}

func (b *Builder) CreateLoad(ptr Value) *Instr {
	return b.insert(OpLoad, ptr.Type().Elem, ptr)
}
