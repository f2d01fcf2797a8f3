package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"schemagen/internal/naming"
	"schemagen/internal/schema"
)

// stringOffsetNone is the synthesized default of a StringOffset: no string.
const stringOffsetNone = "0xFFFFFFFF"

// synthesizeDefault renders the Go default of f. Zero values need no
// initialization and yield the zero Default; arrays sized at run time
// never get one.
func (r *Resolver) synthesizeDefault(t *Type, f *Field) Default {
	if f.IsDuplicate || f.Type == schema.TemplateParam || !f.Arr2.IsEmpty() {
		return Default{}
	}

	raw := strings.TrimSpace(f.Field.Default)
	if len(raw) >= 2 && raw[0] == '(' && raw[len(raw)-1] == ')' {
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}

	if raw == "" {
		if f.Arr1.IsEmpty() && f.TypeName == "StringOffset" {
			return Default{Values: []string{stringOffsetNone}}
		}

		return Default{}
	}

	if !f.Arr1.IsEmpty() {
		n, static := f.Arr1.IsLiteral()
		if !static {
			return Default{}
		}

		return r.arrayDefault(t, f, raw, int(n))
	}

	lit, zero, err := r.scalarDefault(f, raw)
	if err != nil {
		r.unsupportedDefault(t, f, err)
		return Default{}
	}

	if zero {
		return Default{}
	}

	return Default{Values: []string{lit}, Composite: f.Family == schema.FamilyStruct}
}

// arrayDefault redistributes a whitespace separated default over n
// elements. A single value fills every element.
func (r *Resolver) arrayDefault(t *Type, f *Field, raw string, n int) Default {
	parts := strings.Fields(raw)
	if len(parts) == 1 && n > 1 {
		for len(parts) < n {
			parts = append(parts, parts[0])
		}
	}

	if len(parts) > n {
		parts = parts[:n]
	}

	values := make([]string, 0, len(parts))
	allZero := true

	for _, p := range parts {
		lit, zero, err := r.scalarDefault(f, p)
		if err != nil {
			r.unsupportedDefault(t, f, err)
			return Default{}
		}

		if !zero {
			allZero = false
		}

		values = append(values, lit)
	}

	if allZero || f.Family == schema.FamilyStruct {
		return Default{}
	}

	return Default{Values: values}
}

// scalarDefault converts one default literal for the field family and
// reports whether it is the Go zero value.
func (r *Resolver) scalarDefault(f *Field, raw string) (string, bool, error) {
	switch f.Family {
	case schema.FamilyBool:
		switch strings.ToLower(raw) {
		case "1", "true":
			return "true", false, nil
		case "0", "false":
			return "false", true, nil
		}

		return "", false, fmt.Errorf("invalid bool %q", raw)

	case schema.FamilyInteger:
		return integerDefault(raw, r.goType(f.Type))

	case schema.FamilyEnum:
		return r.enumDefault(f, raw)

	case schema.FamilyFloat:
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "f"), 64)
		if err != nil {
			return "", false, fmt.Errorf("invalid float %q", raw)
		}

		lit := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(lit, ".eEn") {
			lit += ".0"
		}

		return lit, v == 0, nil

	case schema.FamilyString:
		return strconv.Quote(raw), false, nil

	case schema.FamilyStruct:
		if f.Target != nil {
			return "", false, fmt.Errorf("generated compound %q takes no default", f.TypeName)
		}

		parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
		zero := true

		for _, p := range parts {
			if v, err := strconv.ParseFloat(p, 64); err != nil || v != 0 {
				zero = false
			}
		}

		return strings.Join(parts, ", "), zero, nil

	case schema.FamilyRef, schema.FamilyPtr:
		return "", true, nil
	}

	return "", false, fmt.Errorf("no default for %s", f.TypeName)
}

func (r *Resolver) enumDefault(f *Field, raw string) (string, bool, error) {
	e, _ := schema.AsEnum(r.ctx.Entity(f.Type))

	if v, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return raw, v == 0, nil
	}

	for _, o := range e.Options {
		if o.Name == raw {
			return naming.ConstName(e.Name, o.Name), o.Value == 0, nil
		}
	}

	return "", false, fmt.Errorf("%q is not an option of %s", raw, e.Name)
}

// integerDefault validates an integer literal. Negative literals assigned
// to unsigned types are rendered as their two's complement.
func integerDefault(raw, goType string) (string, bool, error) {
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return "", false, fmt.Errorf("invalid integer %q", raw)
	}

	if v < 0 {
		if bits := unsignedBits(goType); bits > 0 {
			mask := ^uint64(0) >> (64 - bits)

			return fmt.Sprintf("0x%X", uint64(v)&mask), false, nil
		}
	}

	return raw, v == 0, nil
}

func unsignedBits(goType string) uint {
	switch goType {
	case "byte", "uint8":
		return 8
	case "uint16":
		return 16
	case "uint32", "uint":
		return 32
	case "uint64":
		return 64
	default:
		return 0
	}
}

// goType returns the Go type of a basic, or of an enum's storage.
func (r *Resolver) goType(id schema.TypeID) string {
	e := r.ctx.Entity(id)
	if en, ok := schema.AsEnum(e); ok {
		e = r.ctx.Entity(en.Storage)
	}

	if e == nil || e.Info().Native == nil {
		return ""
	}

	return e.Info().Native.GoType
}

func (r *Resolver) unsupportedDefault(t *Type, f *Field, err error) {
	r.plan.Diagnostics.Add(r.severity(r.config.StrictDefaults), CodeUnsupportedDefault,
		fmt.Sprintf("default %q: %v", f.Field.Default, err), t.Name, f.Name)
}
