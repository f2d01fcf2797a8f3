package expr

import "fmt"

// Env supplies symbol values for Eval.
type Env interface {
	Lookup(name string) (int64, bool)
}

// TypeEnv is an Env that can also answer type checks.
type TypeEnv interface {
	Env
	IsDerived(typeName string) bool
}

// MapEnv is an Env backed by a map. It answers no type checks.
type MapEnv map[string]int64

func (m MapEnv) Lookup(name string) (int64, bool) {
	v, ok := m[name]
	return v, ok
}

// Eval computes the expression. Truth values are 0 and 1. The empty
// expression evaluates to 1 (always present).
func (e *Expr) Eval(env Env) (int64, error) {
	if e.IsEmpty() {
		return 1, nil
	}

	if env == nil {
		env = MapEnv(nil)
	}

	return eval(e.Root, env)
}

func eval(n Node, env Env) (int64, error) {
	switch t := n.(type) {
	case *Literal:
		return t.Value, nil
	case *VersionLit:
		return int64(t.Value), nil
	case *Symbol:
		v, ok := env.Lookup(t.Name)
		if !ok {
			return 0, &UndefinedError{Name: t.Name}
		}

		return v, nil
	case *TypeCheck:
		te, ok := env.(TypeEnv)
		if !ok {
			return 0, fmt.Errorf("type check %q: environment has no type information", t.Type)
		}

		return truth(te.IsDerived(t.Type)), nil
	case *Unary:
		x, err := eval(t.X, env)
		if err != nil {
			return 0, err
		}

		return truth(x == 0), nil
	case *Binary:
		return evalBinary(t, env)
	default:
		return 0, fmt.Errorf("unknown expression node %T", n)
	}
}

func evalBinary(b *Binary, env Env) (int64, error) {
	x, err := eval(b.X, env)
	if err != nil {
		return 0, err
	}

	// Logical operators short-circuit, so the right side may be undefined.
	switch b.Op {
	case OpAnd:
		if x == 0 {
			return 0, nil
		}
	case OpOr:
		if x != 0 {
			return 1, nil
		}
	}

	y, err := eval(b.Y, env)
	if err != nil {
		return 0, err
	}

	switch b.Op {
	case OpAnd, OpOr:
		return truth(y != 0), nil
	case OpEq:
		return truth(x == y), nil
	case OpNe:
		return truth(x != y), nil
	case OpGe:
		return truth(x >= y), nil
	case OpLe:
		return truth(x <= y), nil
	case OpGt:
		return truth(x > y), nil
	case OpLt:
		return truth(x < y), nil
	case OpBitAnd:
		return x & y, nil
	case OpBitOr:
		return x | y, nil
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		if y == 0 {
			return 0, ErrDivideByZero
		}

		return x / y, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", b.Op)
	}
}

func truth(b bool) int64 {
	if b {
		return 1
	}

	return 0
}
