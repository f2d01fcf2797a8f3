package expr

import (
	"regexp"
	"strconv"
	"strings"
)

var versionPattern = regexp.MustCompile(`^([0-9]+)\.([0-9]+)\.([0-9]+)\.([0-9]+)$`)

// TypeLookup reports whether name is a declared block type. Terminals naming
// a block parse as type checks.
type TypeLookup func(name string) bool

// Parse parses s. An empty (or blank) s yields the empty expression.
func Parse(s string, types TypeLookup) (*Expr, error) {
	if types == nil {
		types = func(string) bool { return false }
	}

	e := &Expr{Text: s}

	if strings.TrimSpace(s) == "" {
		return e, nil
	}

	p := parser{text: s, types: types}

	root, err := p.expression(s)
	if err != nil {
		return nil, err
	}

	e.Root = root

	return e, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(s string, types TypeLookup) *Expr {
	e, err := Parse(s, types)
	if err != nil {
		panic(err)
	}

	return e
}

type parser struct {
	// text is the whole input, reported in errors.
	text  string
	types TypeLookup
}

func (p *parser) fail(reason string) error {
	return &SyntaxError{Text: p.text, Reason: reason}
}

// expression parses a string known to hold an operator or brackets.
func (p *parser) expression(s string) (Node, error) {
	left, op, right, err := p.partition(s)
	if err != nil {
		return nil, err
	}

	if op == "" {
		return p.terminal(left)
	}

	if op == OpNot {
		x, err := p.side(left)
		if err != nil {
			return nil, err
		}

		return &Unary{Op: OpNot, X: x}, nil
	}

	if left == "" {
		// "-1" has no left operand.
		if op == OpSub && isDigits(right) {
			v, err := strconv.ParseInt(right, 10, 64)
			if err != nil {
				return nil, p.fail("integer out of range: " + right)
			}

			return &Literal{Value: -v, Text: "-" + right}, nil
		}

		return nil, p.fail("missing left operand for " + string(op))
	}

	if right == "" {
		return nil, p.fail("missing right operand for " + string(op))
	}

	x, err := p.side(left)
	if err != nil {
		return nil, err
	}

	y, err := p.side(right)
	if err != nil {
		return nil, err
	}

	return &Binary{Op: op, X: x, Y: y}, nil
}

// side parses one operand: a sub-expression when it contains brackets or an
// operator, a terminal otherwise.
func (p *parser) side(s string) (Node, error) {
	if strings.ContainsAny(s, "()") || containsOp(s) {
		return p.expression(s)
	}

	return p.terminal(s)
}

// partition splits s into left operand, operator and right operand. A
// leading ! is unary and returns the operand as left. A bracketed left
// operand is unwrapped; when nothing follows the closing bracket the inner
// text is partitioned again. Otherwise the first operator outside brackets
// splits the string, trying two-character operators first at each position.
func (p *parser) partition(s string) (string, Op, string, error) {
	t := strings.TrimSpace(s)

	if strings.HasPrefix(t, "!") && !strings.HasPrefix(t, "!=") {
		return strings.TrimSpace(t[1:]), OpNot, "", nil
	}

	if strings.HasPrefix(t, "(") {
		end, err := p.closing(t)
		if err != nil {
			return "", "", "", err
		}

		inner := strings.TrimSpace(t[1:end])
		rest := strings.TrimSpace(t[end+1:])

		if inner == "" {
			return "", "", "", p.fail("empty brackets")
		}

		if rest == "" {
			return p.partition(inner)
		}

		op, n := operatorAt(rest, 0)
		if op == "" {
			return "", "", "", p.fail("expected operator after " + t[:end+1])
		}

		return inner, op, strings.TrimSpace(rest[n:]), nil
	}

	for i := 0; i < len(t); i++ {
		switch t[i] {
		case ' ':
			continue
		case '(', ')':
			return "", "", "", p.fail("expected operator before bracket in " + strconv.Quote(t))
		}

		if op, n := operatorAt(t, i); op != "" {
			return strings.TrimSpace(t[:i]), op, strings.TrimSpace(t[i+n:]), nil
		}
	}

	return t, "", "", nil
}

// closing returns the index of the bracket matching the one at t[0].
func (p *parser) closing(t string) (int, error) {
	depth := 0

	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}

			if depth < 0 {
				return 0, p.fail("unbalanced brackets")
			}
		}
	}

	return 0, p.fail("unbalanced brackets")
}

func (p *parser) terminal(s string) (Node, error) {
	t := strings.TrimSpace(s)

	switch {
	case t == "":
		return nil, p.fail("missing operand")
	case strings.ContainsAny(t, "()"):
		return nil, p.fail("unexpected bracket in " + strconv.Quote(t))
	case isDigits(t):
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil, p.fail("integer out of range: " + t)
		}

		return &Literal{Value: v, Text: t}, nil
	case strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X"):
		v, err := strconv.ParseUint(t[2:], 16, 64)
		if err != nil {
			return nil, p.fail("invalid hex literal " + t)
		}

		return &Literal{Value: int64(v), Text: t}, nil
	}

	if m := versionPattern.FindStringSubmatch(t); m != nil {
		var packed uint32

		for _, part := range m[1:] {
			b, err := strconv.ParseUint(part, 10, 8)
			if err != nil {
				return nil, p.fail("invalid version " + t)
			}

			packed = packed<<8 | uint32(b)
		}

		return &VersionLit{Value: packed, Text: t}, nil
	}

	if p.types(t) {
		return &TypeCheck{Type: t}, nil
	}

	return &Symbol{Name: t}, nil
}

// operatorAt returns the operator starting at t[i] and its length.
func operatorAt(t string, i int) (Op, int) {
	if i+2 <= len(t) && isBinaryOp(t[i:i+2]) {
		return Op(t[i : i+2]), 2
	}

	if isBinaryOp(t[i : i+1]) {
		return Op(t[i : i+1]), 1
	}

	return "", 0
}

func containsOp(s string) bool {
	for i := 0; i < len(s); i++ {
		if op, _ := operatorAt(s, i); op != "" {
			return true
		}
	}

	return strings.HasPrefix(strings.TrimSpace(s), "!")
}
