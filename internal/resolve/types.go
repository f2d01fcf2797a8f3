package resolve

import (
	"schemagen/internal/diagnostic"
	"schemagen/internal/expr"
	"schemagen/internal/schema"
)

// Plan is the output of resolution: every compound and block with its fields
// annotated. It holds everything the emitter and generator need.
type Plan struct {
	Context *schema.Context
	// Types lists compounds then blocks, in declaration order.
	Types []*Type
	// Order lists the compounds so that every compound comes after the
	// compounds it embeds by value.
	Order []*Type
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics

	byID map[schema.TypeID]*Type
}

// Type returns the resolved compound or block with the given ID.
func (p *Plan) Type(id schema.TypeID) *Type {
	return p.byID[id]
}

// Lookup returns the resolved compound or block with the given schema name.
func (p *Plan) Lookup(name string) (*Type, bool) {
	e, ok := p.Context.Lookup(name)
	if !ok {
		return nil, false
	}

	t := p.byID[e.Info().ID]

	return t, t != nil
}

// Blocks returns the resolved blocks in declaration order.
func (p *Plan) Blocks() []*Type {
	var out []*Type

	for _, t := range p.Types {
		if t.Block != nil {
			out = append(out, t)
		}
	}

	return out
}

// Type is a resolved compound or block.
type Type struct {
	ID       schema.TypeID
	Name     string
	GoName   string
	Compound *schema.Compound
	// Block is nil for compounds.
	Block  *schema.Block
	Parent *Type
	Fields []*Field

	// HasLinks is set when an owning reference is reachable through the
	// type's own fields or its ancestors.
	HasLinks bool
	// HasCrossrefs is the same for non-owning references.
	HasCrossrefs bool
	HasArrays    bool
	// Templated types have a field typed (or templated) on TEMPLATE.
	Templated bool
	// Argument types take an external argument (ARG).
	Argument bool
	Native   bool

	byName map[string]int
}

// IsBlock reports whether the type participates in inheritance.
func (t *Type) IsBlock() bool { return t.Block != nil }

// Abstract reports whether the type is an abstract block.
func (t *Type) Abstract() bool { return t.Block != nil && t.Block.Abstract }

// Field returns the first own field with the given schema name.
func (t *Type) Field(name string) (*Field, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}

	return t.Fields[i], true
}

// RefKind says what a symbolic terminal refers to.
type RefKind int

//go:generate go tool stringer -type=RefKind -trimprefix=Ref -output=refkind_string.go
const (
	_ RefKind = iota
	// RefSibling is a field of the same type.
	RefSibling
	// RefInherited is a field of an ancestor block.
	RefInherited
	// RefArgument is the external argument (ARG).
	RefArgument
	// RefInfo is a property of the stream being processed (vercond only).
	RefInfo
)

// FieldRef is a resolved symbolic terminal.
type FieldRef struct {
	Kind RefKind
	Name string
	// Field is set for RefSibling and RefInherited.
	Field *Field
	// Info is the stream property for RefInfo.
	Info string
}

// Default is the synthesized Go default for a field. Values holds one
// literal per element (one for scalars). Composite values are element
// lists for a struct literal.
type Default struct {
	Values    []string
	Composite bool
}

// IsZero reports whether the field needs no explicit initialization.
func (d Default) IsZero() bool {
	return len(d.Values) == 0
}

// Field is a schema field with its parsed expressions and derived facts.
type Field struct {
	*schema.Field

	// GoName is the struct field name. Duplicates share the first
	// declaration's name.
	GoName string
	// Kind and Family describe the field type (or TEMPLATE).
	Kind   schema.Kind
	Family schema.Family
	// Target is the resolved compound or block when the field type is
	// generated, nil for basics, enums and native compounds.
	Target *Type

	Arr1    *expr.Expr
	Arr2    *expr.Expr
	Cond    *expr.Expr
	VerCond *expr.Expr
	ArgExpr *expr.Expr

	// Refs resolves the symbols of Arr1, Arr2, Cond and Arg.
	Refs map[string]FieldRef
	// InfoRefs resolves the symbols of VerCond.
	InfoRefs map[string]FieldRef

	IsDuplicate bool
	// First is the earlier declaration a duplicate shares storage with.
	First *Field
	// Arr2Dynamic is set when Arr2 is sized by a sibling array, one bound
	// per outer element.
	Arr2Dynamic bool
	// Arr1Ref, Arr2Ref and CondRef name the later siblings using this field
	// as an unmasked array size or condition.
	Arr1Ref []string
	Arr2Ref []string
	CondRef []string
	// UsesArgument is set when a dimension or the condition reads ARG.
	UsesArgument bool

	HasLinks     bool
	HasCrossrefs bool

	Default Default
}

// IsArray reports whether the field has a first dimension.
func (f *Field) IsArray() bool { return !f.Arr1.IsEmpty() }

// IsStaticArray reports whether the first dimension is a literal.
func (f *Field) IsStaticArray() bool {
	_, ok := f.Arr1.IsLiteral()
	return ok
}

// IsRef reports whether the field holds references directly.
func (f *Field) IsRef() bool { return f.Family.IsLink() }

// StorageField returns the field owning the storage: First for a duplicate,
// the field itself otherwise.
func (f *Field) StorageField() *Field {
	if f.First != nil {
		return f.First
	}

	return f
}
