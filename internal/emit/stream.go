package emit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"schemagen/internal/naming"
	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

// truncatedNotice ends a Describe listing cut short by the array cap.
const truncatedNotice = "<Data Truncated. Use verbose mode to see complete listing.>"

// scope is one level of field processing: the type itself, or a compound
// embedded in it and emitted inline.
type scope struct {
	t *resolve.Type
	// access prefixes every field access ("x.", "x.Bounds.", "x.Keys[i0].").
	access string
	// label prefixes field names in Describe output. It is a format
	// fragment; labelArgs fill its verbs.
	label     string
	labelArgs []string
	// arg is the Go expression ARG stands for.
	arg string
	// binding is what TEMPLATE stands for.
	binding schema.TypeID
	// loops counts the enclosing loops; it names the next index variable.
	loops int
	// level is the inline nesting depth, used to indent Describe output.
	level int
}

func loopVar(n int) string {
	return "i" + strconv.Itoa(n)
}

// guards tracks the open version guard and the open condition guard nested
// inside it.
type guards struct {
	started  bool
	version  versionKey
	verOpen  bool
	cond     string
	condOpen bool
}

func (g *guards) openCond(w *codeWriter, cond string) {
	g.cond = cond
	if cond != "" {
		w.Linef("if %s {", cond)
		g.condOpen = true
	}
}

func (g *guards) closeCond(w *codeWriter) {
	if g.condOpen {
		w.Line("}")
		g.condOpen = false
	}

	g.cond = ""
}

func (g *guards) closeVersion(w *codeWriter) {
	if g.verOpen {
		w.Line("}")
		g.verOpen = false
	}
}

// stream emits the fields of sc.t for the current action.
func (s *state) stream(w *codeWriter, sc scope) error {
	if err := checkExpressions(sc.t); err != nil {
		return err
	}

	if s.action == Write || s.action == Describe {
		s.recompute(w, sc)
	}

	var g guards

	for _, f := range sc.t.Fields {
		if s.skip(sc, f) {
			continue
		}

		var payload codeWriter
		if err := s.field(&payload, sc, f); err != nil {
			return err
		}

		// A field producing no code must not disturb the open guards.
		if payload.Empty() {
			continue
		}

		s.enter(w, &g, sc, f)
		w.Append(&payload)
	}

	g.closeCond(w)
	g.closeVersion(w)

	return nil
}

// enter moves the open guards to those of f. A change of version metadata
// closes both guards and reopens them; a change of condition alone only
// replaces the condition guard.
func (s *state) enter(w *codeWriter, g *guards, sc scope, f *resolve.Field) {
	if !s.action.guarded() {
		return
	}

	cond := s.render(sc, f, f.Cond, true, "")

	if s.action.versioned() {
		key := s.versionKey(sc, f)
		if !g.started || key != g.version {
			g.closeCond(w)
			g.closeVersion(w)

			if text := versionGuard(key); text != "" {
				w.Linef("if %s {", text)
				g.verOpen = true
			}

			g.started = true
			g.version = key
			g.openCond(w, cond)

			return
		}
	}

	if cond != g.cond {
		g.closeCond(w)
		g.openCond(w, cond)
	}
}

// skip reports whether f produces nothing for the current action.
func (s *state) skip(sc scope, f *resolve.Field) bool {
	switch s.action {
	case Read, Write:
		return f.Abstract
	case Describe:
		return f.IsDuplicate
	}

	ft := s.e.typeOf(f, sc.binding)
	links, crossrefs := s.e.linked(ft.id, ft.tmpl)

	switch s.action {
	case FixLinks:
		return !links && !crossrefs
	case GetRefs:
		return f.IsDuplicate || !links
	case GetPtrs:
		return f.IsDuplicate || !crossrefs
	}

	return false
}

// field emits f, wrapped in loops over its array dimensions.
func (s *state) field(w *codeWriter, sc scope, f *resolve.Field) error {
	z := sc.access + f.GoName
	label := sc.label + strings.ReplaceAll(f.Name, "%", "%%")

	if !f.IsArray() {
		return s.leaf(w, sc, f, z, label, nil)
	}

	ft := s.e.typeOf(f, sc.binding)
	scalar := s.e.goType(ft.id, ft.tmpl)
	outer, inner := dims(f)

	i := loopVar(sc.loops)
	in := sc
	in.loops++

	var body codeWriter

	if f.Arr2.IsEmpty() {
		if err := s.leaf(&body, in, f, z+"["+i+"]", label, []string{i}); err != nil {
			return err
		}
	} else {
		j := loopVar(in.loops)
		innermost := in
		innermost.loops++

		var elem codeWriter
		if err := s.leaf(&elem, innermost, f, z+"["+i+"]["+j+"]", label, []string{i, j}); err != nil {
			return err
		}

		if !elem.Empty() {
			if s.action == Read && inner == "[]" {
				body.Linef("%s[%s] = make([]%s, %s)", z, i, scalar, s.size(sc, f, f.Arr2, i))
			}

			body.Line(rangeOver(j, z+"["+i+"]", &elem))

			if s.action == Describe {
				w := &body
				w.Linef("if !verbose && arrayOutputCount > %s {", s.maxArrayDump())
				w.Line("break")
				w.Line("}")
			}

			body.Append(&elem)
			body.Line("}")
		}
	}

	if body.Empty() {
		return nil
	}

	if s.action == Read && outer == "[]" {
		w.Linef("%s = make([]%s, %s)", z, inner+scalar, s.size(sc, f, f.Arr1, ""))
	}

	w.Line(rangeOver(i, z, &body))

	if s.action == Describe {
		s.needCount = true

		w.Linef("if !verbose && arrayOutputCount > %s {", s.maxArrayDump())
		w.Linef("out.WriteString(%q)", truncatedNotice+"\n")
		w.Line("break")
		w.Line("}")
	}

	w.Append(&body)
	w.Line("}")

	return nil
}

// leaf emits one value: an embedded compound is emitted inline with an
// extended access path, everything else goes through the runtime.
func (s *state) leaf(w *codeWriter, sc scope, f *resolve.Field, z, label string, idx []string) error {
	ft := s.e.typeOf(f, sc.binding)

	if ft.target != nil {
		return s.stream(w, scope{
			t:       ft.target,
			access:  z + ".",
			label:     label + strings.Repeat("[%d]", len(idx)) + ".",
			labelArgs: append(slices.Clip(sc.labelArgs), idx...),
			arg:       s.argText(sc, f),
			binding:   ft.tmpl,
			loops:     sc.loops,
			level:     sc.level + 1,
		})
	}

	switch s.action {
	case Read, Write:
		s.transfer(w, sc, f, ft, z, idx)
	case FixLinks:
		if ft.family.IsLink() {
			s.needErr = true

			w.Linef("if %s, err = %s[%s](objects, links, missing, info); err != nil {",
				z, s.rt("FixLink"), s.e.refType(ft.tmpl))
			w.Line("return err")
			w.Line("}")
		}
	case GetRefs, GetPtrs:
		want := schema.FamilyRef
		if s.action == GetPtrs {
			want = schema.FamilyPtr
		}

		if ft.family == want {
			name, _ := s.collection()

			w.Linef("if %s != nil {", z)
			w.Linef("%s = append(%s, %s)", name, name, z)
			w.Line("}")
		}
	case Describe:
		s.describe(w, sc, z, label, idx)
	}

	return nil
}

// transfer reads or writes a single value.
func (s *state) transfer(w *codeWriter, sc scope, f *resolve.Field, ft fieldType, z string, idx []string) {
	if ft.family.IsLink() {
		if s.action == Read {
			s.needBlockNum = true

			s.check(w, fmt.Sprintf("%s(in, &blockNum, info)", s.rt("Read")))
			w.Line("links.Push(blockNum)")
		} else {
			s.check(w, fmt.Sprintf("%s(out, %s, info, linkMap, missing)", s.rt("WriteRef"), z))
		}

		return
	}

	own := s.e.goType(ft.id, ft.tmpl)
	storage := own

	if f.IsDuplicate {
		first := s.e.typeOf(f.First, sc.binding)
		storage = s.e.goType(first.id, first.tmpl)
	}

	// Booleans inside arrays and duplicates stored with a different type
	// go through a temporary of the on-disk type.
	tmp := ""
	if storage != own || (ft.family == schema.FamilyBool && len(idx) > 0) {
		tmp = own
	}

	fn, arg := "Read", ""
	if s.action == Write {
		fn = "Write"
	}

	if !f.ArgExpr.IsEmpty() {
		fn += "Arg"
		arg = ", uint32(" + s.argText(sc, f) + ")"
	}

	switch {
	case tmp == "" && s.action == Read:
		s.check(w, fmt.Sprintf("%s(in, &%s, info%s)", s.rt(fn), z, arg))
	case tmp == "":
		s.check(w, fmt.Sprintf("%s(out, %s, info%s)", s.rt(fn), z, arg))
	case s.action == Read:
		w.Line("{")
		w.Linef("var tmp %s", tmp)
		s.check(w, fmt.Sprintf("%s(in, &tmp, info%s)", s.rt(fn), arg))
		w.Linef("%s = %s(tmp)", z, storage)
		w.Line("}")
	default:
		w.Line("{")
		w.Linef("tmp := %s(%s)", tmp, z)
		s.check(w, fmt.Sprintf("%s(out, tmp, info%s)", s.rt(fn), arg))
		w.Line("}")
	}
}

// rangeOver opens a loop over z, naming the index only when body uses it.
func rangeOver(index, z string, body *codeWriter) string {
	if body.Uses(index) {
		return "for " + index + " := range " + z + " {"
	}

	return "for range " + z + " {"
}

func (s *state) check(w *codeWriter, call string) {
	w.Linef("if err := %s; err != nil {", call)
	w.Line("return err")
	w.Line("}")
}

// argText renders the argument f passes to its type, "0" when it passes
// none.
func (s *state) argText(sc scope, f *resolve.Field) string {
	text := s.render(sc, f, f.ArgExpr, false, "")
	if text == "" {
		return "0"
	}

	if strings.ContainsAny(text, " ") {
		return "(" + text + ")"
	}

	return text
}

func (s *state) describe(w *codeWriter, sc scope, z, label string, idx []string) {
	format := strings.Repeat("  ", sc.level) + label
	args := make([]string, 0, len(sc.labelArgs)+len(idx)+1)
	args = append(args, sc.labelArgs...)

	for _, i := range idx {
		format += "[%d]"
		args = append(args, i)
	}

	format += ":  %v\n"
	args = append(args, z)

	w.Linef("fmt.Fprintf(&out, %s, %s)", strconv.Quote(format), strings.Join(args, ", "))

	if len(idx) > 0 {
		w.Line("arrayOutputCount++")
	}
}

func (s *state) maxArrayDump() string {
	if n := s.e.config.MaxArrayDump; n > 0 {
		return strconv.Itoa(n)
	}

	return s.rt("MaxArrayDump")
}

// recompute refreshes, last field first, every field derived from others
// before it is written or printed: compute functions, calculated fields
// and the sizes of later arrays.
func (s *state) recompute(w *codeWriter, sc scope) {
	fields := sc.t.Fields

	for k := len(fields) - 1; k >= 0; k-- {
		f := fields[k]
		if f.IsDuplicate || f.ManualUpdate {
			continue
		}

		z := sc.access + f.GoName

		switch {
		case f.Function != "":
			w.Linef("%s = %s%s()", z, sc.access, naming.Ident(f.Function))
		case f.Calculated:
			if s.action == Write {
				w.Linef("%s = %s%sCalc(info)", z, sc.access, f.GoName)
			}
		case len(f.Arr1Ref) > 0:
			if !f.IsArray() {
				s.countOf(w, sc, f, f.Arr1Ref[0], false)
			}
		case len(f.Arr2Ref) > 0:
			s.countOf(w, sc, f, f.Arr2Ref[0], true)
		}
	}
}

// countOf sets f from the length of the array named sized. With inner set
// the length is taken from the second dimension.
func (s *state) countOf(w *codeWriter, sc scope, f *resolve.Field, sized string, inner bool) {
	ft := s.e.typeOf(f, sc.binding)
	if ft.family != schema.FamilyInteger && ft.family != schema.FamilyEnum {
		return
	}

	arr, ok := sc.t.Field(sized)
	if !ok {
		return
	}

	z := sc.access + f.GoName
	a := sc.access + arr.GoName
	typ := s.e.goType(ft.id, ft.tmpl)

	switch {
	case !inner:
		w.Linef("%s = %s(len(%s))", z, typ, a)
	case !f.IsArray():
		w.Linef("%s = 0", z)
		w.Linef("if len(%s) > 0 {", a)
		w.Linef("%s = %s(len(%s[0]))", z, typ, a)
		w.Line("}")
	default:
		i := loopVar(sc.loops)
		if !f.IsStaticArray() {
			w.Linef("%s = make([]%s, len(%s))", z, typ, a)
		}

		w.Linef("for %s := range %s {", i, a)
		w.Linef("%s[%s] = %s(len(%s[%s]))", z, i, typ, a, i)
		w.Line("}")
	}
}

// checkExpressions rejects a type whose expressions failed to parse.
func checkExpressions(t *resolve.Type) error {
	for _, f := range t.Fields {
		for _, e := range []struct {
			attr string
			raw  string
			ok   bool
		}{
			{"arr1", f.Field.Arr1, !f.Arr1.IsEmpty()},
			{"arr2", f.Field.Arr2, !f.Arr2.IsEmpty()},
			{"cond", f.Field.Cond, !f.Cond.IsEmpty()},
			{"vercond", f.Field.VerCond, !f.VerCond.IsEmpty()},
			{"arg", f.Field.Arg, !f.ArgExpr.IsEmpty()},
		} {
			if !e.ok && strings.TrimSpace(e.raw) != "" {
				return fmt.Errorf("%s.%s: %s expression %q did not parse", t.Name, f.Name, e.attr, e.raw)
			}
		}
	}

	return nil
}
