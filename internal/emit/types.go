package emit

import (
	"fmt"
	"strings"

	"schemagen/internal/naming"
	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

// typeParam is the type parameter of templated compounds.
const typeParam = "T"

// fieldType is a field type with TEMPLATE substituted.
type fieldType struct {
	id     schema.TypeID
	tmpl   schema.TypeID
	family schema.Family
	// target is the generated compound the field embeds, nil otherwise.
	target *resolve.Type
}

// bind substitutes what TEMPLATE stands for.
func bind(id, binding schema.TypeID) schema.TypeID {
	if id == schema.TemplateParam {
		return binding
	}

	return id
}

func (e *Emitter) typeOf(f *resolve.Field, binding schema.TypeID) fieldType {
	ft := fieldType{
		id:   bind(f.Type, binding),
		tmpl: bind(f.Template, binding),
	}

	if ft.id < 0 {
		return ft
	}

	ent := e.ctx.Entity(ft.id)
	ft.family = ent.Info().Family

	switch ent.Kind() {
	case schema.KindEnum, schema.KindFlag:
		ft.family = schema.FamilyEnum
	case schema.KindCompound, schema.KindBlock:
		if t := e.plan.Type(ft.id); t != nil && !t.Native {
			ft.target = t
		}

		if ft.family == 0 {
			ft.family = schema.FamilyStruct
		}
	}

	return ft
}

// linked reports whether owning or non-owning references are reachable
// through a value of type id instantiated with tmpl.
func (e *Emitter) linked(id, tmpl schema.TypeID) (links, crossrefs bool) {
	if id < 0 {
		return false, false
	}

	ent := e.ctx.Entity(id)

	switch ent.Info().Family {
	case schema.FamilyRef:
		return true, false
	case schema.FamilyPtr:
		return false, true
	}

	t := e.plan.Type(id)
	if t == nil || t.Native {
		return false, false
	}

	links, crossrefs = t.HasLinks, t.HasCrossrefs

	if t.Templated {
		l, c := e.linked(tmpl, schema.NoType)
		links, crossrefs = links || l, crossrefs || c
	}

	return links, crossrefs
}

// goType renders the Go type of a value of type id instantiated with tmpl.
func (e *Emitter) goType(id, tmpl schema.TypeID) string {
	switch id {
	case schema.TemplateParam:
		return typeParam
	case schema.NoType:
		return "any"
	}

	ent := e.ctx.Entity(id)
	info := ent.Info()

	switch ent.Kind() {
	case schema.KindEnum, schema.KindFlag:
		return naming.Ident(info.Name)
	case schema.KindBasic:
		if info.Family.IsLink() {
			return e.refType(tmpl)
		}
	}

	if nt := info.Native; nt != nil {
		if nt.Runtime {
			return e.config.RuntimeAlias + "." + nt.GoType
		}

		return nt.GoType
	}

	t := e.plan.Type(id)
	if t == nil {
		return naming.Ident(info.Name)
	}

	if t.Templated {
		return t.GoName + "[" + e.goType(tmpl, schema.NoType) + "]"
	}

	return t.GoName
}

// refType renders a reference to a block: a pointer to the generated
// struct, or the runtime Object interface when the target is unknown.
func (e *Emitter) refType(target schema.TypeID) string {
	switch {
	case target == schema.TemplateParam:
		return typeParam
	case target >= 0 && e.ctx.Entity(target).Kind() == schema.KindBlock:
		if t := e.plan.Type(target); t != nil {
			return "*" + t.GoName
		}
	}

	return e.config.RuntimeAlias + ".Object"
}

// dims renders the array dimensions of f: "[N]" for literal bounds, "[]"
// otherwise. A dynamic second dimension is always a slice.
func dims(f *resolve.Field) (outer, inner string) {
	if f.Arr1.IsEmpty() {
		return "", ""
	}

	outer = "[]"
	if n, ok := f.Arr1.IsLiteral(); ok {
		outer = fmt.Sprintf("[%d]", n)
	}

	if f.Arr2.IsEmpty() {
		return outer, ""
	}

	inner = "[]"
	if n, ok := f.Arr2.IsLiteral(); ok && !f.Arr2Dynamic {
		inner = fmt.Sprintf("[%d]", n)
	}

	return outer, inner
}

// fieldGoType renders the declared Go type of f.
func (e *Emitter) fieldGoType(f *resolve.Field, binding schema.TypeID) string {
	outer, inner := dims(f)
	return outer + inner + e.goType(bind(f.Type, binding), bind(f.Template, binding))
}

// Declare renders the struct declaration of t. Blocks embed their parent;
// duplicates share the first declaration and are omitted.
func (e *Emitter) Declare(t *resolve.Type) (string, error) {
	if t == nil {
		return "", fmt.Errorf("type is required")
	}

	if t.Native {
		return "", fmt.Errorf("%s is implemented by the runtime", t.Name)
	}

	var w codeWriter

	comment(&w, t.Compound.Description)

	if t.Templated {
		w.Linef("type %s[%s any] struct {", t.GoName, typeParam)
	} else {
		w.Linef("type %s struct {", t.GoName)
	}

	if t.Parent != nil {
		w.Line(t.Parent.GoName)
	}

	for _, f := range t.Fields {
		if f.IsDuplicate {
			continue
		}

		comment(&w, f.Description)
		w.Linef("%s %s", f.GoName, e.fieldGoType(f, schema.TemplateParam))
	}

	w.Line("}")

	return w.String(), nil
}

// Construct renders the statements of t's applyDefaults method: the
// parent's defaults, then every own field with a non-zero default, then
// the defaults of embedded generated compounds.
func (e *Emitter) Construct(t *resolve.Type) (string, error) {
	if t == nil {
		return "", fmt.Errorf("type is required")
	}

	var w codeWriter

	if t.Parent != nil {
		w.Linef("x.%s.applyDefaults()", t.Parent.GoName)
	}

	for _, f := range t.Fields {
		if f.IsDuplicate {
			continue
		}

		z := "x." + f.GoName

		if !f.Default.IsZero() {
			w.Linef("%s = %s", z, e.defaultLiteral(f))
			continue
		}

		ft := e.typeOf(f, schema.TemplateParam)
		if ft.target == nil || (f.IsArray() && !f.IsStaticArray()) {
			continue
		}

		if !f.IsArray() {
			w.Linef("%s.applyDefaults()", z)
			continue
		}

		w.Linef("for i := range %s {", z)
		if f.Arr2.IsEmpty() {
			w.Linef("%s[i].applyDefaults()", z)
		} else {
			w.Linef("for j := range %s[i] {", z)
			w.Linef("%s[i][j].applyDefaults()", z)
			w.Line("}")
		}
		w.Line("}")
	}

	return w.String(), nil
}

func (e *Emitter) defaultLiteral(f *resolve.Field) string {
	d := f.Default

	if f.IsArray() {
		return e.fieldGoType(f, schema.TemplateParam) + "{" + strings.Join(d.Values, ", ") + "}"
	}

	if d.Composite {
		return e.goType(f.Type, f.Template) + "{" + d.Values[0] + "}"
	}

	return d.Values[0]
}

func comment(w *codeWriter, text string) {
	for _, l := range strings.Split(strings.TrimSpace(text), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			w.Comment(l)
		}
	}
}
