package gir

import (
	"github.com/segmentio/encoding/json"
	"tlog.app/go/errors"
)

// On-disk module format.  Values are referenced by a per-function number:
// arguments first, then instructions in block order.  Importing a dump must
// reconstruct an identical module; that is the interchange contract with the
// external optimizer.
type (
	bcModule struct {
		Name  string   `json:"name"`
		Funcs []bcFunc `json:"funcs"`
	}

	bcFunc struct {
		Name     string   `json:"name"`
		Ret      string   `json:"ret"`
		Params   []string `json:"params"`
		Variadic bool     `json:"variadic,omitempty"`
		Decl     bool     `json:"decl,omitempty"`

		ArgNames []string  `json:"arg_names,omitempty"`
		Blocks   []bcBlock `json:"blocks,omitempty"`
	}

	bcBlock struct {
		Name  string    `json:"name"`
		Insns []bcInstr `json:"insns"`
	}

	bcInstr struct {
		Op   string `json:"op"`
		Type string `json:"type"`
		Name string `json:"name,omitempty"`

		Pred   string `json:"pred,omitempty"`
		Callee string `json:"callee,omitempty"`

		Args     []bcRef `json:"args,omitempty"`
		Targets  []int   `json:"targets,omitempty"`
		Incoming []int   `json:"incoming,omitempty"`

		MD map[string][]int64 `json:"md,omitempty"`
	}

	// operand reference: a numbered value, an int immediate or null
	bcRef struct {
		V    *int   `json:"v,omitempty"`
		C    *int64 `json:"c,omitempty"`
		Null bool   `json:"null,omitempty"`
		Type string `json:"type,omitempty"`
	}
)

var (
	opByName   = map[string]Op{}
	predByName = map[string]Pred{}
)

func init() {
	for op := Op(0); op < NumOps; op++ {
		opByName[op.String()] = op
	}

	for p, name := range predNames {
		predByName[name] = Pred(p)
	}
}

// WriteModule serializes the module.
func WriteModule(m *Module) ([]byte, error) {
	enc := bcModule{Name: m.Name}

	for _, f := range m.Funcs {
		enc.Funcs = append(enc.Funcs, encodeFunc(f))
	}

	return json.Marshal(enc)
}

func encodeFunc(f *Func) bcFunc {
	ef := bcFunc{
		Name:     f.Name,
		Ret:      f.Ret.String(),
		Variadic: f.Variadic,
		Decl:     f.Decl,
	}

	for _, p := range f.Params {
		ef.Params = append(ef.Params, p.String())
	}

	if f.Decl {
		return ef
	}

	for _, a := range f.Args {
		ef.ArgNames = append(ef.ArgNames, a.Name())
	}

	num := map[Value]int{}

	for _, a := range f.Args {
		num[a] = len(num)
	}

	bnum := map[*Block]int{}

	for i, bb := range f.Blocks {
		bnum[bb] = i

		for _, x := range bb.Insns {
			num[x] = len(num)
		}
	}

	for _, bb := range f.Blocks {
		eb := bcBlock{Name: bb.Name()}

		for _, x := range bb.Insns {
			ei := bcInstr{
				Op:   x.Op.String(),
				Type: x.Type().String(),
				Name: x.Name(),
				MD:   x.MD,
			}

			if x.Op == OpICmp {
				ei.Pred = x.Pred.String()
			}

			if x.Callee != nil {
				ei.Callee = x.Callee.Name
			}

			for _, a := range x.Args {
				ei.Args = append(ei.Args, encodeRef(num, a))
			}

			for _, t := range x.Targets {
				ei.Targets = append(ei.Targets, bnum[t])
			}

			for _, p := range x.Incoming {
				ei.Incoming = append(ei.Incoming, bnum[p])
			}

			eb.Insns = append(eb.Insns, ei)
		}

		ef.Blocks = append(ef.Blocks, eb)
	}

	return ef
}

func encodeRef(num map[Value]int, v Value) bcRef {
	switch v := v.(type) {
	case *Const:
		if v.Null {
			return bcRef{Null: true, Type: v.Type().String()}
		}

		c := v.Int

		return bcRef{C: &c, Type: v.Type().String()}
	default:
		id, ok := num[v]
		if !ok {
			panic("operand outside the function")
		}

		return bcRef{V: &id}
	}
}

// ReadModule rebuilds a module from its serialized form.
func ReadModule(ctx *Context, data []byte) (m *Module, err error) {
	var dec bcModule

	err = json.Unmarshal(data, &dec)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal")
	}

	m = ctx.NewModule(dec.Name)

	for _, ef := range dec.Funcs {
		err = decodeFunc(m, ef)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", ef.Name)
		}
	}

	return m, nil
}

func decodeFunc(m *Module, ef bcFunc) (err error) {
	ret, err := ParseType(m.ctx, ef.Ret)
	if err != nil {
		return errors.Wrap(err, "ret type")
	}

	params := make([]*Type, len(ef.Params))

	for i, p := range ef.Params {
		params[i], err = ParseType(m.ctx, p)
		if err != nil {
			return errors.Wrap(err, "param %d", i)
		}
	}

	f := m.NewFunc(ef.Name, ret, params)
	f.Decl = ef.Decl
	f.Variadic = ef.Variadic

	if ef.Decl {
		return nil
	}

	for i, name := range ef.ArgNames {
		if i < len(f.Args) {
			f.Args[i].SetName(name)
		}
	}

	var vals []Value

	for _, a := range f.Args {
		vals = append(vals, a)
	}

	// first create every block and instruction so references resolve in
	// any order, then wire the operands
	for _, eb := range ef.Blocks {
		bb := f.NewBlock(eb.Name)

		for _, ei := range eb.Insns {
			op, ok := opByName[ei.Op]
			if !ok {
				return errors.New("unknown op %v", ei.Op)
			}

			tp, err := ParseType(m.ctx, ei.Type)
			if err != nil {
				return errors.Wrap(err, "instr type")
			}

			x := &Instr{Op: op, Blk: bb}
			x.typ = tp
			x.SetName(ei.Name)

			if ei.MD != nil {
				x.MD = ei.MD
			}

			bb.Insns = append(bb.Insns, x)
			vals = append(vals, x)
		}
	}

	for bi, eb := range ef.Blocks {
		bb := f.Blocks[bi]

		for ii, ei := range eb.Insns {
			x := bb.Insns[ii]

			if ei.Pred != "" {
				p, ok := predByName[ei.Pred]
				if !ok {
					return errors.New("unknown predicate %v", ei.Pred)
				}

				x.Pred = p
			}

			if ei.Callee != "" {
				x.Callee = m.FuncByName(ei.Callee)
				if x.Callee == nil {
					return errors.New("unknown callee %v", ei.Callee)
				}
			}

			for _, r := range ei.Args {
				a, err := decodeRef(m.ctx, vals, r)
				if err != nil {
					return errors.Wrap(err, "operand of %v", ei.Op)
				}

				x.Args = append(x.Args, a)
				x.addUse(a)
			}

			for _, t := range ei.Targets {
				if t < 0 || t >= len(f.Blocks) {
					return errors.New("branch target out of range: %d", t)
				}

				x.Targets = append(x.Targets, f.Blocks[t])
			}

			for _, p := range ei.Incoming {
				if p < 0 || p >= len(f.Blocks) {
					return errors.New("phi incoming out of range: %d", p)
				}

				x.Incoming = append(x.Incoming, f.Blocks[p])
			}
		}
	}

	return nil
}

func decodeRef(ctx *Context, vals []Value, r bcRef) (Value, error) {
	switch {
	case r.V != nil:
		if *r.V < 0 || *r.V >= len(vals) {
			return nil, errors.New("value ref out of range: %d", *r.V)
		}

		return vals[*r.V], nil
	case r.Null:
		tp, err := ParseType(ctx, r.Type)
		if err != nil {
			return nil, err
		}

		c := &Const{Null: true}
		c.typ = tp

		return c, nil
	case r.C != nil:
		tp, err := ParseType(ctx, r.Type)
		if err != nil {
			return nil, err
		}

		c := &Const{Int: *r.C}
		c.typ = tp

		return c, nil
	default:
		return nil, errors.New("empty operand ref")
	}
}

// ParseType resolves the textual form produced by Type.String.
func ParseType(ctx *Context, s string) (*Type, error) {
	switch s {
	case "void":
		return ctx.Void(), nil
	case "i1":
		return ctx.Int1(), nil
	case "i32":
		return ctx.Int32(), nil
	case "i64":
		return ctx.Int64(), nil
	case "f32":
		return ctx.Float(), nil
	case "f64":
		return ctx.Double(), nil
	}

	switch {
	case len(s) > 1 && s[0] == '%':
		return ctx.Opaque(s[1:]), nil
	case len(s) > 1 && s[0] == '*':
		el, err := ParseType(ctx, s[1:])
		if err != nil {
			return nil, err
		}

		return ctx.Ptr(el), nil
	}

	return nil, errors.New("bad type: %q", s)
}

// SafeName maps a qualified method name onto a file-system safe dump name.
func SafeName(name string) string {
	b := []byte(name)

	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9',
			c == '_', c == '.':
		default:
			b[i] = '-'
		}
	}

	return string(b)
}
