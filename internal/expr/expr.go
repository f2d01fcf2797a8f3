package expr

import (
	"strconv"
	"strings"
)

// Op is an expression operator.
type Op string

const (
	OpEq     Op = "=="
	OpNe     Op = "!="
	OpGe     Op = ">="
	OpLe     Op = "<="
	OpAnd    Op = "&&"
	OpOr     Op = "||"
	OpBitAnd Op = "&"
	OpBitOr  Op = "|"
	OpSub    Op = "-"
	OpAdd    Op = "+"
	OpGt     Op = ">"
	OpLt     Op = "<"
	OpDiv    Op = "/"
	OpMul    Op = "*"
	OpNot    Op = "!"
)

// binaryOps in scan order. Two-character operators are tried before
// one-character ones at every position, so the order here only matters for
// documentation.
var binaryOps = []Op{
	OpEq, OpNe, OpGe, OpLe, OpAnd, OpOr,
	OpBitAnd, OpBitOr, OpSub, OpAdd, OpGt, OpLt, OpDiv, OpMul,
}

func isBinaryOp(s string) bool {
	for _, op := range binaryOps {
		if string(op) == s {
			return true
		}
	}

	return false
}

// IsComparison reports whether op yields a truth value from two integers.
func (op Op) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpGe, OpLe, OpGt, OpLt:
		return true
	default:
		return false
	}
}

// IsLogical reports whether op combines two truth values.
func (op Op) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// Node is one element of a parsed expression: *Literal, *VersionLit,
// *TypeCheck, *Symbol, *Unary or *Binary.
type Node interface {
	node()
}

// Literal is an integer constant.
type Literal struct {
	Value int64
	// Text is the literal as written (decimal or 0x hex).
	Text string
}

// VersionLit is a dotted version constant, already packed.
type VersionLit struct {
	Value uint32
	Text  string
}

// TypeCheck tests whether the object being processed derives from a block type.
type TypeCheck struct {
	Type string
}

// Symbol names a sibling field, an inherited field or ARG.
type Symbol struct {
	Name string
}

// Unary is logical negation.
type Unary struct {
	Op Op
	X  Node
}

// Binary applies Op to X and Y.
type Binary struct {
	Op Op
	X  Node
	Y  Node
}

func (*Literal) node()    {}
func (*VersionLit) node() {}
func (*TypeCheck) node()  {}
func (*Symbol) node()     {}
func (*Unary) node()      {}
func (*Binary) node()     {}

// Expr is a parsed expression and the text it came from. The zero Expr is
// the empty expression.
type Expr struct {
	Text string
	Root Node
}

// IsEmpty reports whether the expression was blank.
func (e *Expr) IsEmpty() bool {
	return e == nil || e.Root == nil
}

// Op returns the root operator, or "" for a single terminal.
func (e *Expr) Op() Op {
	if e.IsEmpty() {
		return ""
	}

	switch n := e.Root.(type) {
	case *Unary:
		return n.Op
	case *Binary:
		return n.Op
	default:
		return ""
	}
}

// LHS returns the text of the left terminal: the whole expression when it is
// a single terminal, the operand of a negation, or the left operand of a
// binary expression. It returns "" when that side is itself a compound
// expression.
func (e *Expr) LHS() string {
	if e.IsEmpty() {
		return ""
	}

	switch n := e.Root.(type) {
	case *Unary:
		return terminalText(n.X)
	case *Binary:
		return terminalText(n.X)
	default:
		return terminalText(n)
	}
}

// RHS returns the text of the right terminal of a binary expression, or "".
func (e *Expr) RHS() string {
	if b, ok := e.binary(); ok {
		return terminalText(b.Y)
	}

	return ""
}

// RHSIsEmptyOrNumeric reports whether the expression has no right side or an
// integer literal right side, i.e. whether it is an unmasked reference to
// its left terminal.
func (e *Expr) RHSIsEmptyOrNumeric() bool {
	b, ok := e.binary()
	if !ok {
		return true
	}

	_, lit := b.Y.(*Literal)

	return lit
}

// LHSIsNumeric reports whether the left terminal is an integer literal.
func (e *Expr) LHSIsNumeric() bool {
	return isNumeric(e.LHS())
}

// RHSIsNumeric reports whether the right terminal is an integer literal.
func (e *Expr) RHSIsNumeric() bool {
	return isNumeric(e.RHS())
}

// LHSSymbol returns the left terminal when it is a symbol.
func (e *Expr) LHSSymbol() (string, bool) {
	if e.IsEmpty() {
		return "", false
	}

	n := e.Root
	switch t := n.(type) {
	case *Unary:
		n = t.X
	case *Binary:
		n = t.X
	}

	if s, ok := n.(*Symbol); ok {
		return s.Name, true
	}

	return "", false
}

// SymbolName returns the name when the whole expression is one symbol.
func (e *Expr) SymbolName() (string, bool) {
	if e.IsEmpty() {
		return "", false
	}

	if s, ok := e.Root.(*Symbol); ok {
		return s.Name, true
	}

	return "", false
}

// IsLiteral returns the value when the whole expression is an integer literal.
func (e *Expr) IsLiteral() (int64, bool) {
	if e.IsEmpty() {
		return 0, false
	}

	if l, ok := e.Root.(*Literal); ok {
		return l.Value, true
	}

	return 0, false
}

// Terminals returns the text of every leaf, left to right.
func (e *Expr) Terminals() []string {
	var out []string

	if e.IsEmpty() {
		return out
	}

	walk(e.Root, func(n Node) {
		if t := terminalText(n); t != "" {
			out = append(out, t)
		}
	})

	return out
}

// Symbols returns the distinct symbol names, in first-use order.
func (e *Expr) Symbols() []string {
	var out []string

	if e.IsEmpty() {
		return out
	}

	seen := make(map[string]bool)

	walk(e.Root, func(n Node) {
		if s, ok := n.(*Symbol); ok && !seen[s.Name] {
			seen[s.Name] = true
			out = append(out, s.Name)
		}
	})

	return out
}

// TypeChecks returns the block names the expression tests against.
func (e *Expr) TypeChecks() []string {
	var out []string

	if e.IsEmpty() {
		return out
	}

	walk(e.Root, func(n Node) {
		if tc, ok := n.(*TypeCheck); ok {
			out = append(out, tc.Type)
		}
	})

	return out
}

func (e *Expr) binary() (*Binary, bool) {
	if e.IsEmpty() {
		return nil, false
	}

	b, ok := e.Root.(*Binary)

	return b, ok
}

// String re-serializes the expression without prefix or outer brackets.
func (e *Expr) String() string {
	if e.IsEmpty() {
		return ""
	}

	return e.Code("", false, nil)
}

func walk(n Node, fn func(Node)) {
	switch t := n.(type) {
	case *Unary:
		walk(t.X, fn)
	case *Binary:
		walk(t.X, fn)
		walk(t.Y, fn)
	default:
		fn(n)
	}
}

func terminalText(n Node) string {
	switch t := n.(type) {
	case *Literal:
		if t.Text != "" {
			return t.Text
		}

		return strconv.FormatInt(t.Value, 10)
	case *VersionLit:
		return t.Text
	case *TypeCheck:
		return t.Type
	case *Symbol:
		return t.Name
	default:
		return ""
	}
}

func isNumeric(s string) bool {
	return isDigits(strings.TrimPrefix(s, "-")) || strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
