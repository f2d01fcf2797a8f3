package resolve

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemagen/internal/schema"
)

const baseYAML = `
basics:
  - name: bool
  - name: byte
  - name: uint
  - name: ushort
  - name: float
  - name: StringOffset
  - name: Ref
    template: true
  - name: Ptr
    template: true
enums:
  - name: AlphaFormat
    storage: uint
    options:
      - {name: ALPHA_NONE, value: 0}
      - {name: ALPHA_BINARY, value: 1}
`

const resolveYAML = baseYAML + `
compounds:
  - name: Triangles
    fields:
      - {name: Num Triangles, type: ushort}
      - {name: Num Triangles, type: ushort, ver1: 20.0.0.5}
      - {name: Num Strips, type: ushort}
      - {name: Strip Lengths, type: ushort, arr1: Num Strips}
      - {name: Strips, type: ushort, arr1: Num Strips, arr2: Strip Lengths}
      - {name: Points, type: ushort, arr1: Num Triangles, arr2: 3}
      - {name: Has Normals, type: bool}
      - {name: Normals, type: float, arr1: Num Triangles, cond: Has Normals}
      - {name: Masked, type: ushort, arr1: Num Strips & Mask}
      - {name: Mask, type: ushort}
  - name: Keys
    template: true
    fields:
      - {name: Num Keys, type: uint}
      - {name: Keys, type: TEMPLATE, arr1: Num Keys}
  - name: Holder
    fields:
      - {name: Owned, type: Keys, template: Ref}
      - {name: Plain, type: Keys, template: float}
blocks:
  - name: NiObject
    abstract: true
  - name: NiAVObject
    inherit: NiObject
    fields:
      - {name: Num Children, type: uint}
      - {name: Parent, type: Ptr, template: NiAVObject}
  - name: NiNode
    inherit: NiAVObject
    fields:
      - {name: Children, type: Ref, template: NiAVObject, arr1: Num Children}
      - {name: Flags, type: ushort, default: "(8)"}
      - {name: Alpha, type: AlphaFormat, default: ALPHA_BINARY}
      - {name: Offset, type: StringOffset}
      - {name: Scale, type: float, default: "1"}
      - {name: Visible, type: bool, default: "1"}
      - {name: Hidden, type: bool, default: "0"}
      - {name: Weights, type: float, arr1: 4, default: "0.5"}
      - {name: Offsets, type: byte, arr1: 3, default: "1 2"}
      - {name: Signed, type: ushort, default: "-1"}
`

func resolveSchema(t *testing.T, doc string, cfg Config) (*Plan, error) {
	t.Helper()

	ctx, err := schema.Parse([]byte(doc), schema.FormatYAML, "test.yaml")
	require.NoError(t, err)

	return NewResolver(ctx, cfg).Resolve()
}

func mustResolve(t *testing.T, doc string) *Plan {
	t.Helper()

	plan, err := resolveSchema(t, doc, DefaultConfig())
	require.NoError(t, err, spew.Sdump(plan.Diagnostics))

	return plan
}

func field(t *testing.T, plan *Plan, typeName string, index int) *Field {
	t.Helper()

	typ, ok := plan.Lookup(typeName)
	require.True(t, ok, typeName)
	require.Greater(t, len(typ.Fields), index)

	return typ.Fields[index]
}

func TestResolve_Duplicates(t *testing.T) {
	plan := mustResolve(t, resolveYAML)

	first := field(t, plan, "Triangles", 0)
	dup := field(t, plan, "Triangles", 1)

	assert.False(t, first.IsDuplicate)
	assert.True(t, dup.IsDuplicate)
	assert.Same(t, first, dup.First)
	assert.Same(t, first, dup.StorageField())
	assert.Equal(t, first.GoName, dup.GoName)
	assert.Equal(t, "NumTriangles", dup.GoName)
}

func TestResolve_SuffixIsNotDuplicate(t *testing.T) {
	plan := mustResolve(t, baseYAML+`
compounds:
  - name: Pair
    fields:
      - {name: Value, type: uint}
      - {name: Value, suffix: Alt, type: uint}
`)

	alt := field(t, plan, "Pair", 1)
	assert.False(t, alt.IsDuplicate)
	assert.Equal(t, "ValueAlt", alt.GoName)
}

func TestResolve_ArraySizing(t *testing.T) {
	plan := mustResolve(t, resolveYAML)

	numTris := field(t, plan, "Triangles", 0)
	assert.Equal(t, []string{"Points", "Normals"}, numTris.Arr1Ref)

	numStrips := field(t, plan, "Triangles", 2)
	assert.Equal(t, []string{"Strip Lengths", "Strips"}, numStrips.Arr1Ref, "masked Masked is excluded")

	lengths := field(t, plan, "Triangles", 3)
	assert.Equal(t, []string{"Strips"}, lengths.Arr2Ref)

	strips := field(t, plan, "Triangles", 4)
	assert.True(t, strips.Arr2Dynamic)
	assert.True(t, strips.IsArray())
	assert.False(t, strips.IsStaticArray())

	points := field(t, plan, "Triangles", 5)
	assert.False(t, points.Arr2Dynamic, "literal second dimension")

	hasNormals := field(t, plan, "Triangles", 6)
	assert.Equal(t, []string{"Normals"}, hasNormals.CondRef)

	typ, _ := plan.Lookup("Triangles")
	assert.True(t, typ.HasArrays)
}

func TestResolve_ConditionRefs(t *testing.T) {
	plan := mustResolve(t, baseYAML+`
compounds:
  - name: Flagged
    fields:
      - {name: Flags, type: ushort}
      - {name: Mask, type: ushort}
      - {name: Bits, type: ushort}
      - {name: Masked, type: uint, cond: Flags & Mask}
      - {name: Literal, type: uint, cond: Bits & 4}
      - {name: Compared, type: uint, cond: Bits == 2}
      - {name: Plain, type: uint, cond: Mask}
`)

	flags := field(t, plan, "Flagged", 0)
	assert.Empty(t, flags.CondRef, "a field mask does not make Flags a condition source")

	mask := field(t, plan, "Flagged", 1)
	assert.Equal(t, []string{"Plain"}, mask.CondRef)

	bits := field(t, plan, "Flagged", 2)
	assert.Equal(t, []string{"Literal", "Compared"}, bits.CondRef)

	masked := field(t, plan, "Flagged", 3)
	assert.Equal(t, RefSibling, masked.Refs["Flags"].Kind)
	assert.Equal(t, RefSibling, masked.Refs["Mask"].Kind)
}

func TestResolve_SymbolRefs(t *testing.T) {
	plan := mustResolve(t, resolveYAML)

	children := field(t, plan, "NiNode", 0)
	ref := children.Refs["Num Children"]
	assert.Equal(t, RefInherited, ref.Kind)
	assert.Equal(t, "Num Children", ref.Field.Name)

	strips := field(t, plan, "Triangles", 4)
	assert.Equal(t, RefSibling, strips.Refs["Num Strips"].Kind)
	assert.Equal(t, RefSibling, strips.Refs["Strip Lengths"].Kind)

	masked := field(t, plan, "Triangles", 8)
	assert.Equal(t, RefSibling, masked.Refs["Mask"].Kind)

	fwd := plan.Diagnostics.WithCode(CodeForwardReference)
	require.Len(t, fwd, 1, spew.Sdump(plan.Diagnostics))
	assert.Equal(t, "Masked", fwd[0].FieldName)
}

func TestResolve_Argument(t *testing.T) {
	plan := mustResolve(t, baseYAML+`
compounds:
  - name: Block Data
    fields:
      - {name: Data, type: byte, arr1: ARG}
  - name: Owner
    fields:
      - {name: Size, type: uint}
      - {name: Data, type: Block Data, arg: Size}
`)

	data := field(t, plan, "Block Data", 0)
	assert.True(t, data.UsesArgument)
	assert.Equal(t, RefArgument, data.Refs["ARG"].Kind)

	typ, _ := plan.Lookup("Block Data")
	assert.True(t, typ.Argument)

	owner := field(t, plan, "Owner", 1)
	assert.Equal(t, RefSibling, owner.Refs["Size"].Kind)
	assert.Equal(t, typ, owner.Target)
}

const unresolvedYAML = baseYAML + `
compounds:
  - name: Broken
    fields:
      - {name: Items, type: uint, arr1: Missing Count}
`

func TestResolve_UnresolvedReference_Warning(t *testing.T) {
	plan, err := resolveSchema(t, unresolvedYAML, DefaultConfig())
	require.NoError(t, err)

	warns := plan.Diagnostics.WithCode(CodeUnresolvedReference)
	require.Len(t, warns, 1)
	assert.Equal(t, "Broken", warns[0].TypeName)
	assert.Equal(t, "Items", warns[0].FieldName)
	assert.Contains(t, warns[0].Message, `"Missing Count"`)
	assert.Empty(t, plan.Diagnostics.Errors)
}

func TestResolve_UnresolvedReference_Strict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictReferences = true

	plan, err := resolveSchema(t, unresolvedYAML, cfg)
	require.Error(t, err)
	require.NotNil(t, plan)
	require.Len(t, plan.Diagnostics.Errors, 1)
	assert.Equal(t, CodeUnresolvedReference, plan.Diagnostics.Errors[0].Code)
	assert.Contains(t, err.Error(), "[Broken] Items")
}

func TestResolve_UnresolvedReference_Suggestions(t *testing.T) {
	plan := mustResolve(t, baseYAML+`
compounds:
  - name: Mesh
    fields:
      - {name: Num Vertices, type: ushort}
      - {name: Vertices, type: float, arr1: Num Vertex}
      - {name: Flag, type: uint, vercond: "User Versoin >= 11"}
`)

	warns := plan.Diagnostics.WithCode(CodeUnresolvedReference)
	require.Len(t, warns, 2)
	assert.Equal(t, []string{"Num Vertices"}, warns[0].Suggestions)
	assert.Contains(t, warns[0].String(), `(did you mean "Num Vertices"?)`)
	assert.Equal(t, []string{"User Version"}, warns[1].Suggestions[:1])
}

func TestResolve_VersionCondition(t *testing.T) {
	plan := mustResolve(t, baseYAML+`
compounds:
  - name: Header
    fields:
      - {name: A, type: uint, vercond: "User Version >= 11"}
      - {name: B, type: uint, vercond: "Bogus == 1"}
`)

	a := field(t, plan, "Header", 0)
	assert.Equal(t, FieldRef{Kind: RefInfo, Name: "User Version", Info: "UserVersion"}, a.InfoRefs["User Version"])

	warns := plan.Diagnostics.WithCode(CodeUnresolvedReference)
	require.Len(t, warns, 1)
	assert.Equal(t, "B", warns[0].FieldName)
}

func TestResolve_ExpressionSyntax(t *testing.T) {
	plan, err := resolveSchema(t, baseYAML+`
compounds:
  - name: Bad
    fields:
      - {name: Count, type: uint}
      - {name: Items, type: uint, arr1: "(Count & 1", cond: "Count (1)"}
`, DefaultConfig())
	require.Error(t, err)

	errs := plan.Diagnostics.WithCode(CodeExpressionSyntax)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Message, "arr1")
	assert.Contains(t, errs[1].Message, "cond")
	assert.Equal(t, "Items", errs[0].FieldName)
}

func TestResolve_RecursiveCompound(t *testing.T) {
	plan, err := resolveSchema(t, baseYAML+`
compounds:
  - name: Node
    fields:
      - {name: Next, type: Link}
  - name: Link
    fields:
      - {name: Back, type: Node}
  - name: Tree
    fields:
      - {name: Num Kids, type: uint}
      - {name: Kids, type: Tree, arr1: Num Kids}
`, DefaultConfig())
	require.Error(t, err)

	errs := plan.Diagnostics.WithCode(CodeRecursiveCompound)
	require.Len(t, errs, 2, spew.Sdump(errs))
	assert.Equal(t, "Node", errs[0].TypeName)
	assert.Equal(t, "Link", errs[1].TypeName)
}

func TestResolve_CompoundOrder(t *testing.T) {
	plan := mustResolve(t, baseYAML+`
compounds:
  - name: Outer
    fields:
      - {name: In, type: Inner}
  - name: Inner
    fields:
      - {name: V, type: uint}
`)

	require.Len(t, plan.Order, 2)
	assert.Equal(t, "Inner", plan.Order[0].Name)
	assert.Equal(t, "Outer", plan.Order[1].Name)
}

func TestResolve_LinkFacts(t *testing.T) {
	plan := mustResolve(t, resolveYAML)

	obj, _ := plan.Lookup("NiObject")
	assert.False(t, obj.HasLinks)
	assert.False(t, obj.HasCrossrefs)

	av, _ := plan.Lookup("NiAVObject")
	assert.False(t, av.HasLinks)
	assert.True(t, av.HasCrossrefs)

	node, _ := plan.Lookup("NiNode")
	assert.True(t, node.HasLinks)
	assert.True(t, node.HasCrossrefs, "inherited from NiAVObject")
	assert.Same(t, av, node.Parent)

	keys, _ := plan.Lookup("Keys")
	assert.True(t, keys.Templated)
	assert.False(t, keys.HasLinks)

	owned := field(t, plan, "Holder", 0)
	assert.True(t, owned.HasLinks, "Keys of Ref carries links")

	plain := field(t, plan, "Holder", 1)
	assert.False(t, plain.HasLinks)
}

func TestResolve_Defaults(t *testing.T) {
	plan := mustResolve(t, resolveYAML)
	node, _ := plan.Lookup("NiNode")

	tests := []struct {
		field string
		want  []string
	}{
		{field: "Children"},
		{field: "Flags", want: []string{"8"}},
		{field: "Alpha", want: []string{"AlphaFormatAlphaBinary"}},
		{field: "Offset", want: []string{"0xFFFFFFFF"}},
		{field: "Scale", want: []string{"1.0"}},
		{field: "Visible", want: []string{"true"}},
		{field: "Hidden"},
		{field: "Weights", want: []string{"0.5", "0.5", "0.5", "0.5"}},
		{field: "Offsets", want: []string{"1", "2"}},
		{field: "Signed", want: []string{"0xFFFF"}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := node.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.want, f.Default.Values)
			assert.Equal(t, len(tt.want) == 0, f.Default.IsZero())
		})
	}

	dup := field(t, plan, "Triangles", 1)
	assert.True(t, dup.Default.IsZero(), "duplicates are never constructed")
}

func TestResolve_UnsupportedDefault(t *testing.T) {
	doc := baseYAML + `
compounds:
  - name: D
    fields:
      - {name: Flag, type: bool, default: maybe}
`

	plan, err := resolveSchema(t, doc, DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, plan.Diagnostics.WithCode(CodeUnsupportedDefault), 1)

	_, err = resolveSchema(t, doc, Config{StrictDefaults: true})
	assert.Error(t, err)
}

func TestResolve_ReservedNames(t *testing.T) {
	plan := mustResolve(t, baseYAML+`
compounds:
  - name: R
    fields:
      - {name: Type, type: uint}
      - {name: read, type: uint}
`)

	assert.Equal(t, "TypeField", field(t, plan, "R", 0).GoName)
	assert.Equal(t, "ReadField", field(t, plan, "R", 1).GoName)
}

func TestResolve_NilContext(t *testing.T) {
	_, err := NewResolver(nil, DefaultConfig()).Resolve()
	assert.Error(t, err)
}
