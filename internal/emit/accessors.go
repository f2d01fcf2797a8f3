package emit

import (
	"fmt"
	"strings"

	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

// Accessors renders a getter and a setter for every field of t a caller may
// set freely: array sizes, compute-function results and unknowns are left
// out.
func (e *Emitter) Accessors(t *resolve.Type) (string, error) {
	if t == nil {
		return "", fmt.Errorf("type is required")
	}

	recv := Receiver(t)

	var parts []string

	for _, f := range t.Fields {
		if !accessible(f) {
			continue
		}

		typ := e.fieldGoType(f, schema.TemplateParam)

		parts = append(parts,
			fmt.Sprintf("func (x *%s) Get%s() %s {\n\treturn x.%s\n}\n", recv, f.GoName, typ, f.GoName),
			fmt.Sprintf("func (x *%s) Set%s(value %s) {\n\tx.%s = value\n}\n", recv, f.GoName, typ, f.GoName))
	}

	return strings.Join(parts, "\n"), nil
}

func accessible(f *resolve.Field) bool {
	switch {
	case f.IsDuplicate, f.Function != "":
		return false
	case len(f.Arr1Ref) > 0, len(f.Arr2Ref) > 0:
		return false
	}

	return !strings.Contains(strings.ToLower(f.GoName), "unk")
}

// Receiver renders the receiver type of t's methods, with the type
// parameter for templated types.
func Receiver(t *resolve.Type) string {
	if t.Templated {
		return t.GoName + "[" + typeParam + "]"
	}

	return t.GoName
}

// TypeParams renders the type parameter list of t's declaration and
// constructor, empty for non-templated types.
func TypeParams(t *resolve.Type) string {
	if t.Templated {
		return "[" + typeParam + " any]"
	}

	return ""
}
