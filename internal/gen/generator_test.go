package gen

import (
	"context"
	"go/format"
	"regexp"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemagen/internal/output"
	"schemagen/internal/resolve"
	"schemagen/internal/schema"
)

const genYAML = `
versions:
  - {num: 4.0.0.2, description: Morrowind}
  - {num: 20.0.0.5, description: Oblivion}
basics:
  - name: bool
  - name: byte
  - name: uint
  - name: ushort
  - name: float
  - name: Ref
    template: true
  - name: Ptr
    template: true
  - name: Vector3
enums:
  - name: AlphaFormat
    storage: uint
    description: How alpha is stored.
    options:
      - {name: ALPHA_NONE, value: "0"}
      - {name: ALPHA_BINARY, value: "1", description: One bit.}
      - {name: ALPHA_SMOOTH, value: "2"}
bitflags:
  - name: VertexFlags
    storage: ushort
    options:
      - {name: Vertex, value: "4"}
      - {name: UVs, value: "5"}
compounds:
  - name: Bounds
    fields:
      - {name: Center, type: Vector3}
      - {name: Radius, type: float, default: "1.0"}
  - name: Keys
    template: true
    fields:
      - {name: Num Keys, type: uint}
      - {name: Keys, type: TEMPLATE, arr1: Num Keys}
blocks:
  - name: NiObject
    abstract: true
  - name: NiAVObject
    inherit: NiObject
    abstract: true
    fields:
      - {name: Flags, type: ushort, default: "8"}
      - {name: Alpha, type: AlphaFormat, ver1: 10.0.1.0}
  - name: NiNode
    inherit: NiAVObject
    description: A scene graph node.
    fields:
      - {name: Num Children, type: uint}
      - {name: Children, type: Ref, template: NiAVObject, arr1: Num Children}
      - {name: Parent, type: Ptr, template: NiNode}
      - {name: Bounds, type: Bounds}
      - {name: Times, type: Keys, template: float}
`

func newPlan(t *testing.T) *resolve.Plan {
	t.Helper()

	ctx, err := schema.Parse([]byte(genYAML), schema.FormatYAML, "test.yaml")
	require.NoError(t, err)

	plan, err := resolve.NewResolver(ctx, resolve.DefaultConfig()).Resolve()
	require.NoError(t, err, spew.Sdump(plan.Diagnostics))

	return plan
}

var regexpLegacyBegin = regexp.MustCompile(`// --BEGIN (.+?) CUSTOM CODE--`)

func testConfig() GeneratorConfig {
	cfg := DefaultGeneratorConfig()
	cfg.OutputDir = ""
	cfg.RuntimeImport = "example.com/nif"
	cfg.Source = "test.yaml"

	return cfg
}

func byName(files []GeneratedFile) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Filename] = string(f.Content)
	}

	return out
}

func TestGenerate_Files(t *testing.T) {
	files, err := NewGenerator(testConfig()).Generate(newPlan(t), nil)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Filename)
	}

	assert.Equal(t, []string{
		"bounds.go", "keys.go",
		"ni_object.go", "ni_av_object.go", "ni_node.go",
		"enums.go", "versions.go", "register.go",
	}, names)
}

func TestGenerate_BlockFile(t *testing.T) {
	files, err := NewGenerator(testConfig()).Generate(newPlan(t), nil)
	require.NoError(t, err)

	node := byName(files)["ni_node.go"]

	for _, want := range []string{
		"// --BEGIN FILE HEAD CUSTOM CODE--",
		"// Code generated by schemagen from test.yaml.",
		"package nifgen",
		`nif "example.com/nif"`,
		`"fmt"`,
		`"io"`,
		`"strings"`,
		"// --BEGIN INCLUDE CUSTOM CODE--",
		"// A scene graph node.",
		"type NiNode struct {",
		"\tNiAVObject\n",
		"func (x *NiNode) Type() *nif.Type {",
		"func NewNiNode() *NiNode {",
		"x.NiAVObject.applyDefaults()",
		"x.Bounds.applyDefaults()",
		"x.Times.applyDefaults()",
		"// --BEGIN CONSTRUCTOR CUSTOM CODE--",
		"func (x *NiNode) Release() {",
		"x.NiAVObject.Release()",
		"func (x *NiNode) Read(in io.Reader, links *nif.LinkStack, info nif.Info) error {",
		"func (x *NiNode) Write(out io.Writer, linkMap nif.LinkMap, missing *[]nif.Object, info nif.Info) error {",
		"func (x *NiNode) Describe(verbose bool) string {",
		"func (x *NiNode) FixLinks(objects nif.ObjectMap, links *nif.LinkStack, missing *[]nif.Object, info nif.Info) error {",
		"func (x *NiNode) GetRefs() []nif.Object {",
		"func (x *NiNode) GetPtrs() []nif.Object {",
		"// --BEGIN PRE-READ CUSTOM CODE--",
		"// --BEGIN POST-FIXLINKS CUSTOM CODE--",
		"// --BEGIN MISC CUSTOM CODE--",
		"// --BEGIN FILE FOOT CUSTOM CODE--",
	} {
		assert.Contains(t, node, want)
	}

	// The post region comes before the method's return.
	post := strings.Index(node, "// --BEGIN POST-READ CUSTOM CODE--")
	ret := strings.Index(node[post:], "return nil")
	assert.Positive(t, ret)
	assert.NotContains(t, node[post:post+ret], "x.Parent")

	assert.NotContains(t, node, "GetFlags", "accessors are off by default")
}

func TestGenerate_TemplatedCompound(t *testing.T) {
	files, err := NewGenerator(testConfig()).Generate(newPlan(t), nil)
	require.NoError(t, err)

	keys := byName(files)["keys.go"]

	assert.Contains(t, keys, "type Keys[T any] struct {")
	assert.Contains(t, keys, "func NewKeys[T any]() *Keys[T] {")
	assert.Contains(t, keys, "func (x *Keys[T]) Release() {")
	assert.NotContains(t, keys, "Read(")
	assert.NotContains(t, keys, "import")
}

func TestGenerate_Tables(t *testing.T) {
	files, err := NewGenerator(testConfig()).Generate(newPlan(t), nil)
	require.NoError(t, err)

	all := byName(files)

	enums := all["enums.go"]
	assert.Contains(t, enums, "// Code generated by schemagen. DO NOT EDIT.")
	assert.Contains(t, enums, "type AlphaFormat uint32")
	assert.Contains(t, enums, "AlphaFormatAlphaBinary AlphaFormat = 1 // One bit.")
	assert.Contains(t, enums, `return "ALPHA_SMOOTH"`)
	assert.Contains(t, enums, "type VertexFlags uint16")
	assert.Contains(t, enums, "VertexFlagsUvs    VertexFlags = 1 << 5")
	assert.Contains(t, enums, `strings.Join(names, "|")`)

	versions := all["versions.go"]
	assert.Contains(t, versions, "Version20_0_0_5 uint32 = 0x14000005 // Oblivion")
	assert.Contains(t, versions, "var Versions = []uint32{Version4_0_0_2, Version20_0_0_5}")

	register := all["register.go"]
	assert.Contains(t, register, `TypeNiObject   = nif.NewType("NiObject", nil)`)
	assert.Contains(t, register, `TypeNiNode     = nif.NewType("NiNode", TypeNiAVObject)`)
	assert.Contains(t, register, "func Register(r *nif.Registry) {")
	assert.Contains(t, register, "r.Register(TypeNiNode, func() nif.Object {")
	assert.NotContains(t, register, "NewNiAVObject", "abstract blocks have no factory")
}

func TestGenerate_Only(t *testing.T) {
	cfg := testConfig()
	cfg.Only = []string{"NiNode"}

	files, err := NewGenerator(cfg).Generate(newPlan(t), nil)
	require.NoError(t, err)

	all := byName(files)
	assert.Contains(t, all, "ni_node.go")
	assert.NotContains(t, all, "ni_object.go")
	assert.Contains(t, all, "register.go")
}

func TestGenerate_Accessors(t *testing.T) {
	cfg := testConfig()
	cfg.Accessors = true

	files, err := NewGenerator(cfg).Generate(newPlan(t), nil)
	require.NoError(t, err)

	av := byName(files)["ni_av_object.go"]
	assert.Contains(t, av, "func (x *NiAVObject) GetFlags() uint16 {")
	assert.Contains(t, av, "func (x *NiAVObject) SetAlpha(value AlphaFormat) {")

	node := byName(files)["ni_node.go"]
	assert.Contains(t, node, "func (x *NiNode) GetChildren() []*NiAVObject {")
	assert.NotContains(t, node, "GetNumChildren", "array sizes are maintained by Write")
}

func TestGenerate_Fixpoint(t *testing.T) {
	ctx := context.Background()
	sink := output.NewMemorySink()
	g := NewGenerator(testConfig())

	first, err := g.Generate(newPlan(t), SinkPrior(ctx, sink))
	require.NoError(t, err)

	sum, err := WriteFiles(ctx, sink, first)
	require.NoError(t, err)
	assert.Len(t, sum.Created, len(first))

	second, err := g.Generate(newPlan(t), SinkPrior(ctx, sink))
	require.NoError(t, err)
	assert.Equal(t, byName(first), byName(second))

	sum, err = WriteFiles(ctx, sink, second)
	require.NoError(t, err)
	assert.Empty(t, sum.Created)
	assert.Empty(t, sum.Updated)
	assert.Len(t, sum.Unchanged, len(second))
}

func TestGenerate_PreservesCustomCode(t *testing.T) {
	ctx := context.Background()
	sink := output.NewMemorySink()
	g := NewGenerator(testConfig())

	files, err := g.Generate(newPlan(t), nil)
	require.NoError(t, err)

	_, err = WriteFiles(ctx, sink, files)
	require.NoError(t, err)

	content, err := sink.ReadFile(ctx, "ni_node.go")
	require.NoError(t, err)

	edited := strings.Replace(string(content),
		"// --BEGIN POST-READ CUSTOM CODE--\n",
		"// --BEGIN POST-READ CUSTOM CODE--\n\tx.Flags |= 1\n", 1)
	edited = strings.Replace(edited,
		"// --BEGIN MISC CUSTOM CODE--\n",
		"// --BEGIN MISC CUSTOM CODE--\nfunc (x *NiNode) Depth() int { return 0 }\n", 1)
	require.NotEqual(t, string(content), edited)

	_, err = sink.WriteFile(ctx, "ni_node.go", []byte(edited))
	require.NoError(t, err)

	again, err := g.Generate(newPlan(t), SinkPrior(ctx, sink))
	require.NoError(t, err)

	node := byName(again)["ni_node.go"]
	assert.Contains(t, node, "\tx.Flags |= 1\n\n\t// --END CUSTOM CODE--\n\treturn nil")
	assert.Contains(t, node, "func (x *NiNode) Depth() int { return 0 }")
	assert.Equal(t, edited, node)
}

func TestGenerate_RegionsSurviveFormatting(t *testing.T) {
	ctx := context.Background()
	sink := output.NewMemorySink()
	g := NewGenerator(testConfig())

	files, err := g.Generate(newPlan(t), nil)
	require.NoError(t, err)

	// The hand-written function directly follows the marker, which makes the
	// marker its doc comment.
	const depth = "func (x *NiNode) Depth() int {\n\treturn 0\n}\n"

	for _, f := range files {
		src := string(f.Content)
		if f.Filename == "ni_node.go" {
			src = strings.Replace(src, "// --BEGIN MISC CUSTOM CODE--\n", "// --BEGIN MISC CUSTOM CODE--\n"+depth, 1)
		}

		formatted, err := format.Source([]byte(src))
		require.NoError(t, err, f.Filename)

		_, err = sink.WriteFile(ctx, f.Filename, formatted)
		require.NoError(t, err)
	}

	again, err := g.Generate(newPlan(t), SinkPrior(ctx, sink))
	require.NoError(t, err)

	for _, f := range again {
		stored, err := sink.ReadFile(ctx, f.Filename)
		require.NoError(t, err)
		assert.Equal(t, string(stored), string(f.Content), f.Filename)
	}

	assert.Contains(t, byName(again)["ni_node.go"], "// --BEGIN MISC CUSTOM CODE--\n"+depth)
}

func TestGenerate_LegacySentinelsAfterFormatting(t *testing.T) {
	ctx := context.Background()
	sink := output.NewMemorySink()
	g := NewGenerator(testConfig())

	files, err := g.Generate(newPlan(t), nil)
	require.NoError(t, err)

	current := byName(files)["ni_node.go"]

	legacy := strings.Replace(current,
		"// --BEGIN MISC CUSTOM CODE--\n",
		"// --BEGIN MISC CUSTOM CODE--\nfunc (x *NiNode) Depth() int {\n\treturn 0\n}\n", 1)
	legacy = strings.ReplaceAll(legacy, "// --END CUSTOM CODE--", "//--END CUSTOM CODE--//")
	legacy = regexpLegacyBegin.ReplaceAllString(legacy, "//--BEGIN $1 CUSTOM CODE--//")

	formatted, err := format.Source([]byte(legacy))
	require.NoError(t, err)

	_, err = sink.WriteFile(ctx, "ni_node.go", formatted)
	require.NoError(t, err)

	again, err := g.Generate(newPlan(t), SinkPrior(ctx, sink))
	require.NoError(t, err)

	node := byName(again)["ni_node.go"]
	assert.Contains(t, node, "// --BEGIN MISC CUSTOM CODE--\nfunc (x *NiNode) Depth() int {")
	assert.NotContains(t, node, "//--")
	assert.Equal(t, strings.Count(current, "// --END CUSTOM CODE--"), strings.Count(node, "// --END CUSTOM CODE--"))
}

func TestGenerate_PlanWithErrors(t *testing.T) {
	plan := newPlan(t)
	plan.Diagnostics.AddError("test", "broken", "NiNode", "")

	_, err := NewGenerator(testConfig()).Generate(plan, nil)
	assert.ErrorContains(t, err, "plan has errors")
}

func TestVersionConst(t *testing.T) {
	assert.Equal(t, "Version20_0_0_5", VersionConst("20.0.0.5"))
	assert.Equal(t, "Version4_0_0_2", VersionConst("4.0.0.2"))
}
