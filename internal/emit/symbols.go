package emit

import (
	"fmt"
	"strings"

	"schemagen/internal/expr"
	"schemagen/internal/naming"
	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

// render translates an expression of field f into Go. Symbols become
// accesses below sc.access, ARG becomes sc.arg and stream properties read
// info. When index is set, symbols naming array fields are indexed by it.
//
// Fields of different integer types cannot be mixed in Go, so an
// expression with more than one symbol widens every integer operand to
// int64. Symbols that resolved to nothing render as 0.
func (s *state) render(sc scope, f *resolve.Field, e *expr.Expr, asBool bool, index string) string {
	return s.renderAs(sc, f, e, asBool, index, len(e.Symbols()) > 1)
}

// size renders an array bound as an int. A bound with arithmetic is
// computed in int64 and clamped at zero, so "Num Pairs - 1" with no pairs
// sizes an empty slice instead of wrapping around.
func (s *state) size(sc scope, f *resolve.Field, e *expr.Expr, index string) string {
	if e.Op() == "" {
		return "int(" + s.render(sc, f, e, false, index) + ")"
	}

	return "max(0, int(" + s.renderAs(sc, f, e, false, index, true) + "))"
}

func (s *state) renderAs(sc scope, f *resolve.Field, e *expr.Expr, asBool bool, index string, widen bool) string {
	if e.IsEmpty() {
		return ""
	}

	wide := func(text string) string {
		if widen {
			return "int64(" + text + ")"
		}

		return text
	}

	symbol := func(name string) expr.Operand {
		ref, ok := f.Refs[name]
		if !ok {
			ref, ok = f.InfoRefs[name]
		}

		if !ok {
			return expr.Operand{Text: "0"}
		}

		switch ref.Kind {
		case resolve.RefArgument:
			return expr.Operand{Text: wide(sc.arg)}
		case resolve.RefInfo:
			return expr.Operand{Text: wide("info." + ref.Info)}
		}

		rf := ref.Field
		text := sc.access + rf.GoName

		if index != "" && rf.IsArray() {
			text += "[" + index + "]"
		} else if rf.IsArray() {
			return expr.Operand{Text: text}
		}

		if rf.Family == schema.FamilyBool {
			return expr.Operand{Text: text, Bool: true}
		}

		return expr.Operand{Text: wide(text)}
	}

	return e.Render(expr.RenderOptions{
		Symbol: symbol,
		TypeCheck: func(typeName string) string {
			return fmt.Sprintf("%s(%s, Type%s)", s.rt("IsDerivedType"), s.receiver, naming.Ident(typeName))
		},
		BoolToInt: func(text string) string {
			return s.rt("BoolInt") + "(" + text + ")"
		},
		Bool: asBool,
	})
}

// versionKey is the version metadata of a field. Consecutive fields with
// equal keys share one version guard.
type versionKey struct {
	ver1, ver2        uint32
	userVer, userVer2 int64
	verCond           string
}

func userVersion(v *uint32) int64 {
	if v == nil {
		return -1
	}

	return int64(*v)
}

func (s *state) versionKey(sc scope, f *resolve.Field) versionKey {
	return versionKey{
		ver1:     f.Ver1,
		ver2:     f.Ver2,
		userVer:  userVersion(f.UserVer),
		userVer2: userVersion(f.UserVer2),
		verCond:  s.render(sc, f, f.VerCond, true, ""),
	}
}

// versionGuard conjoins every version check of k. Each check is
// bracketed; the brackets are dropped when only one remains.
func versionGuard(k versionKey) string {
	var parts []string

	if k.ver1 != 0 {
		parts = append(parts, fmt.Sprintf("info.Version >= 0x%08X", k.ver1))
	}

	if k.ver2 != 0 {
		parts = append(parts, fmt.Sprintf("info.Version <= 0x%08X", k.ver2))
	}

	if k.userVer >= 0 {
		parts = append(parts, fmt.Sprintf("info.UserVersion == %d", k.userVer))
	}

	if k.userVer2 >= 0 {
		parts = append(parts, fmt.Sprintf("info.UserVersion2 == %d", k.userVer2))
	}

	if k.verCond != "" {
		parts = append(parts, k.verCond)
	}

	if len(parts) == 0 {
		return ""
	}

	return stripOuter("(" + strings.Join(parts, ") && (") + ")")
}

// stripOuter removes brackets enclosing the whole of s.
func stripOuter(s string) string {
	if !strings.HasPrefix(s, "(") {
		return s
	}

	depth := 0

	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}

	return s[1 : len(s)-1]
}
