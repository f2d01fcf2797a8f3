package resolve

import (
	"fmt"

	"schemagen/internal/expr"
	"schemagen/internal/match"
	"schemagen/internal/naming"
	"schemagen/internal/schema"
)

// reservedNames are Go identifiers taken by generated methods.
var reservedNames = map[string]bool{
	"Type":     true,
	"Read":     true,
	"Write":    true,
	"Describe": true,
	"FixLinks": true,
	"GetRefs":  true,
	"GetPtrs":  true,
	"Release":  true,
}

// infoProperties maps the symbols a version condition may use to the
// stream properties they read.
var infoProperties = map[string]string{
	"Version":        "Version",
	"User Version":   "UserVersion",
	"User Version 2": "UserVersion2",
}

var infoNames = []string{"Version", "User Version", "User Version 2"}

const maxSuggestions = 3

type backRef struct {
	index int
	name  string
}

// resolveFields builds the resolved fields of t in two passes: the first
// parses expressions and records per-name indices, the second derives every
// fact from those indices without rescanning the field list.
func (r *Resolver) resolveFields(t *Type) {
	decl := t.Compound.Fields
	t.Fields = make([]*Field, len(decl))

	// firstPlain holds the first suffix-less declaration of each name and
	// hasArr1 whether any earlier declaration of a name is an array.
	var (
		firstPlain = make(map[string]int)
		hasArr1    = make(map[string]bool)
		arr1Users  = make(map[string][]backRef)
		arr2Users  = make(map[string][]backRef)
		condUsers  = make(map[string][]backRef)
		goNames    = make(map[string]bool)
	)

	for i, sf := range decl {
		f := &Field{Field: sf}
		t.Fields[i] = f

		f.Arr1 = r.parse(t, sf, "arr1", sf.Arr1)
		f.Arr2 = r.parse(t, sf, "arr2", sf.Arr2)
		f.Cond = r.parse(t, sf, "cond", sf.Cond)
		f.VerCond = r.parse(t, sf, "vercond", sf.VerCond)
		f.ArgExpr = r.parse(t, sf, "arg", sf.Arg)

		r.classify(f)

		if j, ok := firstPlain[sf.Name]; ok && sf.Suffix == "" {
			f.IsDuplicate = true
			f.First = t.Fields[j]
		} else if sf.Suffix == "" {
			firstPlain[sf.Name] = i
		}

		// Symbols resolve to the first plain declaration of a name.
		if j, seen := t.byName[sf.Name]; !seen || (t.Fields[j].Suffix != "" && sf.Suffix == "") {
			t.byName[sf.Name] = i
		}

		if lhs := f.Arr2.LHS(); lhs != "" && hasArr1[lhs] {
			f.Arr2Dynamic = true
		}

		if !f.Arr1.IsEmpty() {
			hasArr1[sf.Name] = true
		}

		if lhs := f.Arr1.LHS(); lhs != "" && f.Arr1.RHSIsEmptyOrNumeric() {
			arr1Users[lhs] = append(arr1Users[lhs], backRef{i, sf.Name})
		}

		if lhs := f.Arr2.LHS(); lhs != "" && f.Arr2.RHSIsEmptyOrNumeric() {
			arr2Users[lhs] = append(arr2Users[lhs], backRef{i, sf.Name})
		}

		if lhs := f.Cond.LHS(); lhs != "" && f.Cond.RHSIsEmptyOrNumeric() {
			condUsers[lhs] = append(condUsers[lhs], backRef{i, sf.Name})
		}

		f.UsesArgument = mentions(naming.Argument, f.Arr1, f.Arr2, f.Cond)

		if f.IsDuplicate {
			f.GoName = f.First.GoName
		} else {
			f.GoName = uniqueGoName(sf, goNames)
		}

		f.Default = r.synthesizeDefault(t, f)
	}

	for i, f := range t.Fields {
		f.Arr1Ref = laterNames(arr1Users[f.Name], i)
		f.Arr2Ref = laterNames(arr2Users[f.Name], i)
		f.CondRef = laterNames(condUsers[f.Name], i)

		r.resolveSymbols(t, f, i)
	}
}

func (r *Resolver) parse(t *Type, f *schema.Field, attr, text string) *expr.Expr {
	e, err := expr.Parse(text, r.ctx.HasBlock)
	if err != nil {
		r.plan.Diagnostics.AddError(CodeExpressionSyntax,
			fmt.Sprintf("%s: %v", attr, err), t.Name, f.Name)

		return &expr.Expr{Text: text}
	}

	return e
}

// classify records the kind, family and resolved target of the field type.
func (r *Resolver) classify(f *Field) {
	if f.Type == schema.TemplateParam {
		return
	}

	e := r.ctx.Entity(f.Type)
	f.Kind = e.Kind()
	f.Family = e.Info().Family

	switch e.Kind() {
	case schema.KindCompound, schema.KindBlock:
		if t := r.plan.byID[f.Type]; !t.Native {
			f.Target = t
		}

		if f.Family == 0 {
			f.Family = schema.FamilyStruct
		}
	case schema.KindEnum, schema.KindFlag:
		f.Family = schema.FamilyEnum
	}
}

func (r *Resolver) resolveSymbols(t *Type, f *Field, i int) {
	f.Refs = make(map[string]FieldRef)

	report := r.severity(r.config.StrictReferences)

	attrs := []struct {
		name string
		e    *expr.Expr
	}{
		{"arr1", f.Arr1},
		{"arr2", f.Arr2},
		{"cond", f.Cond},
		{"arg", f.ArgExpr},
	}

	for _, a := range attrs {
		for _, name := range a.e.Symbols() {
			if _, done := f.Refs[name]; done {
				continue
			}

			ref, forward, ok := r.lookupSymbol(t, i, name)
			if !ok {
				r.plan.Diagnostics.AddSuggested(report, CodeUnresolvedReference,
					fmt.Sprintf("%s names %q, which is neither a field nor %s", a.name, name, naming.Argument),
					t.Name, f.Name, match.Closest(name, visibleNames(t), maxSuggestions))

				continue
			}

			if forward {
				r.plan.Diagnostics.AddWarning(CodeForwardReference,
					fmt.Sprintf("%s names %q, which is declared later", a.name, name),
					t.Name, f.Name)
			}

			f.Refs[name] = ref
		}
	}

	if f.VerCond.IsEmpty() {
		return
	}

	f.InfoRefs = make(map[string]FieldRef)

	for _, name := range f.VerCond.Symbols() {
		prop, ok := infoProperties[name]
		if !ok {
			r.plan.Diagnostics.AddSuggested(report, CodeUnresolvedReference,
				fmt.Sprintf("vercond names %q, which is not a stream property", name),
				t.Name, f.Name, match.Closest(name, infoNames, maxSuggestions))

			continue
		}

		f.InfoRefs[name] = FieldRef{Kind: RefInfo, Name: name, Info: prop}
	}
}

// lookupSymbol resolves name as seen from field i of t: ARG, an earlier
// sibling, an inherited field, and finally a later sibling (forward).
func (r *Resolver) lookupSymbol(t *Type, i int, name string) (FieldRef, bool, bool) {
	if name == naming.Argument {
		return FieldRef{Kind: RefArgument, Name: name}, false, true
	}

	j, sibling := t.byName[name]
	if sibling && j < i {
		return FieldRef{Kind: RefSibling, Name: name, Field: t.Fields[j]}, false, true
	}

	for p := t.Parent; p != nil; p = p.Parent {
		if pf, ok := p.Field(name); ok {
			return FieldRef{Kind: RefInherited, Name: name, Field: pf}, false, true
		}
	}

	if sibling {
		return FieldRef{Kind: RefSibling, Name: name, Field: t.Fields[j]}, true, true
	}

	return FieldRef{}, false, false
}

// visibleNames lists the field names an expression in t may use: its own
// fields, then those of each ancestor.
func visibleNames(t *Type) []string {
	var names []string

	for p := t; p != nil; p = p.Parent {
		for _, f := range p.Fields {
			names = append(names, f.Name)
		}
	}

	return names
}

func uniqueGoName(f *schema.Field, taken map[string]bool) string {
	name := naming.Ident(f.StorageName())
	if name == "" {
		name = "Field"
	}

	if reservedNames[name] {
		name += "Field"
	}

	if taken[name] {
		name = fmt.Sprintf("%s%d", name, f.Index)
	}

	taken[name] = true

	return name
}

func laterNames(refs []backRef, i int) []string {
	var out []string

	for _, ref := range refs {
		if ref.index > i {
			out = append(out, ref.name)
		}
	}

	return out
}

func mentions(name string, exprs ...*expr.Expr) bool {
	for _, e := range exprs {
		for _, s := range e.Symbols() {
			if s == name {
				return true
			}
		}
	}

	return false
}
