// Package gir is the generic SSA substrate the bridge converts into and back
// out of.  It carries no managed semantics of its own: object operations cross
// the boundary as opaque intrinsic calls, and the three marker struct types
// are never given a layout.
package gir

type (
	TypeKind int

	Type struct {
		Kind TypeKind

		// opaque struct name
		Name string

		// pointer element
		Elem *Type
	}

	// Context uniques types.  One context serves one method compilation and
	// is never shared.
	Context struct {
		void, i1, i32, i64, f32, f64 Type

		opaque map[string]*Type
		ptr    map[*Type]*Type
	}

	Module struct {
		Name string

		Funcs []*Func

		ctx *Context
	}

	Func struct {
		Name string

		Ret      *Type
		Params   []*Type
		Variadic bool

		// Decl is a bodyless declaration (an intrinsic).
		Decl bool

		Args   []*Arg
		Blocks []*Block

		Mod *Module
	}

	Block struct {
		name string

		Insns []*Instr

		Func *Func
	}
)

const (
	KindVoid TypeKind = iota
	KindInt1
	KindInt32
	KindInt64
	KindFloat
	KindDouble
	KindOpaque
	KindPtr
)

func NewContext() *Context {
	c := &Context{
		opaque: map[string]*Type{},
		ptr:    map[*Type]*Type{},
	}

	c.void = Type{Kind: KindVoid}
	c.i1 = Type{Kind: KindInt1}
	c.i32 = Type{Kind: KindInt32}
	c.i64 = Type{Kind: KindInt64}
	c.f32 = Type{Kind: KindFloat}
	c.f64 = Type{Kind: KindDouble}

	return c
}

func (c *Context) Void() *Type   { return &c.void }
func (c *Context) Int1() *Type   { return &c.i1 }
func (c *Context) Int32() *Type  { return &c.i32 }
func (c *Context) Int64() *Type  { return &c.i64 }
func (c *Context) Float() *Type  { return &c.f32 }
func (c *Context) Double() *Type { return &c.f64 }

// Opaque declares or returns the named opaque struct type.
func (c *Context) Opaque(name string) *Type {
	t, ok := c.opaque[name]
	if !ok {
		t = &Type{Kind: KindOpaque, Name: name}
		c.opaque[name] = t
	}

	return t
}

func (c *Context) Ptr(el *Type) *Type {
	t, ok := c.ptr[el]
	if !ok {
		t = &Type{Kind: KindPtr, Elem: el}
		c.ptr[el] = t
	}

	return t
}

func (c *Context) NewModule(name string) *Module {
	return &Module{Name: name, ctx: c}
}

func (t *Type) IsWide() bool {
	return t.Kind == KindInt64 || t.Kind == KindDouble
}

func (t *Type) IsFP() bool {
	return t.Kind == KindFloat || t.Kind == KindDouble
}

func (t *Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindInt1:
		return "i1"
	case KindInt32:
		return "i32"
	case KindInt64:
		return "i64"
	case KindFloat:
		return "f32"
	case KindDouble:
		return "f64"
	case KindOpaque:
		return "%" + t.Name
	case KindPtr:
		return "*" + t.Elem.String()
	default:
		panic(t.Kind)
	}
}

func (m *Module) Ctx() *Context { return m.ctx }

func (m *Module) NewFunc(name string, ret *Type, params []*Type) *Func {
	f := &Func{
		Name:   name,
		Ret:    ret,
		Params: params,
		Mod:    m,
	}

	for i, p := range params {
		a := &Arg{Index: i}
		a.typ = p
		a.fn = f

		f.Args = append(f.Args, a)
	}

	m.Funcs = append(m.Funcs, f)

	return f
}

// NewDecl declares a bodyless function.
func (m *Module) NewDecl(name string, ret *Type, params []*Type, variadic bool) *Func {
	f := m.NewFunc(name, ret, params)
	f.Decl = true
	f.Variadic = variadic

	return f
}

func (m *Module) FuncByName(name string) *Func {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}

	return nil
}

func (f *Func) NewBlock(name string) *Block {
	b := &Block{name: name, Func: f}
	f.Blocks = append(f.Blocks, b)

	return b
}

func (f *Func) Entry() *Block {
	if len(f.Blocks) == 0 {
		return nil
	}

	return f.Blocks[0]
}

// EraseBlock unlinks the block from the function.  The block must have no
// remaining uses.
func (f *Func) EraseBlock(b *Block) {
	for i, x := range f.Blocks {
		if x == b {
			f.Blocks = append(f.Blocks[:i], f.Blocks[i+1:]...)
			b.Func = nil

			return
		}
	}

	panic("erase of foreign block")
}

func (b *Block) Name() string        { return b.name }
func (b *Block) SetName(name string) { b.name = name }

// Term returns the block terminator, nil if the block is not terminated yet.
func (b *Block) Term() *Instr {
	if len(b.Insns) == 0 {
		return nil
	}

	last := b.Insns[len(b.Insns)-1]
	if last.Op.IsTerm() {
		return last
	}

	return nil
}
