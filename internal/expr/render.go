package expr

import (
	"fmt"
	"strconv"
)

// NameFilter maps a schema field name to a target identifier.
type NameFilter func(name string) string

// Code re-serializes the expression. Symbols get prefix and the filter,
// type checks render as IsDerivedType(T::TYPE), version literals as 0x%08X.
// With brackets set the whole expression and every sub-expression are
// parenthesized; sub-expressions always are.
func (e *Expr) Code(prefix string, brackets bool, filter NameFilter) string {
	if e.IsEmpty() {
		return ""
	}

	if filter == nil {
		filter = func(s string) string { return s }
	}

	return code(e.Root, prefix, brackets, filter)
}

func code(n Node, prefix string, brackets bool, filter NameFilter) string {
	lb, rb := "", ""
	if brackets {
		lb, rb = "(", ")"
	}

	switch t := n.(type) {
	case *Unary:
		return lb + "!" + code(t.X, prefix, true, filter) + rb
	case *Binary:
		return fmt.Sprintf("%s%s %s %s%s", lb,
			code(t.X, prefix, true, filter), t.Op, code(t.Y, prefix, true, filter), rb)
	case *Literal:
		return terminalText(t)
	case *VersionLit:
		return fmt.Sprintf("0x%08X", t.Value)
	case *TypeCheck:
		return "IsDerivedType(" + t.Type + "::TYPE)"
	case *Symbol:
		return prefix + filter(t.Name)
	default:
		return ""
	}
}

// Operand is a rendered symbol. Bool marks operands that are already truth
// values in the target language.
type Operand struct {
	Text string
	Bool bool
}

// RenderOptions control typed rendering.
type RenderOptions struct {
	// Symbol renders a field reference. Required.
	Symbol func(name string) Operand
	// TypeCheck renders a test against a block type. Required when the
	// expression contains one.
	TypeCheck func(typeName string) string
	// BoolToInt converts a truth value for use in arithmetic.
	BoolToInt func(text string) string
	// Bool requests a truth value rather than an integer.
	Bool bool
}

// Render serializes the expression as a typed target expression: operands
// of && || and ! become truth values (x != 0), arithmetic and ordering
// operands become integers, and == / != compare like with like. The result
// carries no outer brackets.
func (e *Expr) Render(opts RenderOptions) string {
	if e.IsEmpty() {
		return ""
	}

	if opts.BoolToInt == nil {
		opts.BoolToInt = func(t string) string { return "boolToInt(" + t + ")" }
	}

	r := renderer{opts: opts}
	v := r.node(e.Root)

	if opts.Bool {
		v = r.asBool(v)
	} else {
		v = r.asInt(v)
	}

	return v.text
}

type value struct {
	text   string
	isBool bool
	atomic bool
}

type renderer struct {
	opts RenderOptions
}

func (r renderer) node(n Node) value {
	switch t := n.(type) {
	case *Literal:
		return value{text: terminalText(t), atomic: true}
	case *VersionLit:
		return value{text: fmt.Sprintf("0x%08X", t.Value), atomic: true}
	case *Symbol:
		op := r.opts.Symbol(t.Name)
		return value{text: op.Text, isBool: op.Bool, atomic: true}
	case *TypeCheck:
		text := "isDerivedType(" + strconv.Quote(t.Type) + ")"
		if r.opts.TypeCheck != nil {
			text = r.opts.TypeCheck(t.Type)
		}

		return value{text: text, isBool: true, atomic: true}
	case *Unary:
		x := r.asBool(r.node(t.X))
		return value{text: "!" + paren(x), isBool: true, atomic: true}
	case *Binary:
		return r.binary(t)
	default:
		return value{}
	}
}

func (r renderer) binary(b *Binary) value {
	x, y := r.node(b.X), r.node(b.Y)

	switch {
	case b.Op.IsLogical():
		x, y = r.asBool(x), r.asBool(y)
	case (b.Op == OpEq || b.Op == OpNe) && x.isBool && y.isBool:
	default:
		x, y = r.asInt(x), r.asInt(y)
	}

	return value{
		text:   paren(x) + " " + string(b.Op) + " " + paren(y),
		isBool: b.Op.IsLogical() || b.Op.IsComparison(),
	}
}

func (r renderer) asBool(v value) value {
	if v.isBool {
		return v
	}

	return value{text: paren(v) + " != 0", isBool: true}
}

func (r renderer) asInt(v value) value {
	if !v.isBool {
		return v
	}

	return value{text: r.opts.BoolToInt(v.text), atomic: true}
}

func paren(v value) string {
	if v.atomic {
		return v.text
	}

	return "(" + v.text + ")"
}
