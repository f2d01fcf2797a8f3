package emit

import (
	"errors"
	"fmt"
	"strings"

	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

// Emitter renders method bodies, declarations and constructors for the
// types of a resolved plan. It holds no state between calls.
type Emitter struct {
	plan   *resolve.Plan
	ctx    *schema.Context
	config Config
}

// New creates an Emitter for plan.
func New(plan *resolve.Plan, config Config) *Emitter {
	if config.RuntimeAlias == "" {
		config.RuntimeAlias = DefaultConfig().RuntimeAlias
	}

	return &Emitter{plan: plan, ctx: plan.Context, config: config}
}

// Body is an emitted method body split before its terminal statement, so
// hand-written code can be placed after the generated statements.
type Body struct {
	Code   string
	Return string
}

// String joins the statements and the terminal statement.
func (b Body) String() string {
	return b.Code + b.Return + "\n"
}

// Emit renders the body of one action method of t. namePrefix prefixes the
// field labels printed by Describe; accessPrefix is the receiver access
// path ("x." when empty).
func (e *Emitter) Emit(t *resolve.Type, action Action, namePrefix, accessPrefix string) (string, error) {
	b, err := e.Body(t, action, namePrefix, accessPrefix)
	if err != nil {
		return "", err
	}

	return b.String(), nil
}

// Body is Emit without joining the terminal statement.
func (e *Emitter) Body(t *resolve.Type, action Action, namePrefix, accessPrefix string) (Body, error) {
	if t == nil {
		return Body{}, errors.New("type is required")
	}

	if action < Read || action > GetPtrs {
		return Body{}, fmt.Errorf("unknown action %v", action)
	}

	if t.Native {
		return Body{}, fmt.Errorf("%s is implemented by the runtime", t.Name)
	}

	if t.Templated {
		return Body{}, fmt.Errorf("%s is templated: its fields are emitted inline by the types using it", t.Name)
	}

	if accessPrefix == "" {
		accessPrefix = "x."
	}

	s := &state{
		e:        e,
		action:   action,
		receiver: strings.TrimSuffix(accessPrefix, "."),
	}

	sc := scope{
		t:       t,
		access:  accessPrefix,
		label:   strings.ReplaceAll(namePrefix, "%", "%%"),
		arg:     argParam,
		binding: schema.NoType,
	}

	var main codeWriter

	s.inherited(&main, t)

	if err := s.stream(&main, sc); err != nil {
		return Body{}, err
	}

	var w codeWriter

	s.preamble(&w, t)
	w.Append(&main)

	return Body{Code: w.String(), Return: s.terminal()}, nil
}

// argParam is the parameter carrying ARG into the methods of a compound
// that consumes one.
const argParam = "arg"

type state struct {
	e        *Emitter
	action   Action
	receiver string

	needBlockNum bool
	needErr      bool
	needCount    bool
}

// rt qualifies a runtime symbol.
func (s *state) rt(name string) string {
	return s.e.config.RuntimeAlias + "." + name
}

func (s *state) preamble(w *codeWriter, t *resolve.Type) {
	switch s.action {
	case Read:
		if s.needBlockNum {
			w.Line("var blockNum uint32")
		}
	case FixLinks:
		if s.needErr {
			w.Line("var err error")
		}
	case Describe:
		w.Line("var out strings.Builder")

		if s.needCount {
			w.Line("arrayOutputCount := 0")
		}

		if t.Parent != nil {
			w.Linef("out.WriteString(%s.%s.Describe(verbose))", s.receiver, t.Parent.GoName)
		}
	case GetRefs, GetPtrs:
		name, method := s.collection()
		if t.Parent != nil {
			w.Linef("%s := %s.%s.%s()", name, s.receiver, t.Parent.GoName, method)
		} else {
			w.Linef("var %s []%s", name, s.rt("Object"))
		}
	}
}

// inherited calls the parent's method first, so fields are processed base
// before derived. Describe and the collecting actions do it in preamble.
func (s *state) inherited(w *codeWriter, t *resolve.Type) {
	if t.Parent == nil {
		return
	}

	parent := s.receiver + "." + t.Parent.GoName

	var call string

	switch s.action {
	case Read:
		call = parent + ".Read(in, links, info)"
	case Write:
		call = parent + ".Write(out, linkMap, missing, info)"
	case FixLinks:
		call = parent + ".FixLinks(objects, links, missing, info)"
	default:
		return
	}

	w.Linef("if err := %s; err != nil {", call)
	w.Line("return err")
	w.Line("}")
}

func (s *state) collection() (string, string) {
	if s.action == GetRefs {
		return "refs", "GetRefs"
	}

	return "ptrs", "GetPtrs"
}

func (s *state) terminal() string {
	switch s.action {
	case Describe:
		return "return out.String()"
	case GetRefs, GetPtrs:
		name, _ := s.collection()
		return "return " + name
	default:
		return "return nil"
	}
}
