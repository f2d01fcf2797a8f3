package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemagen/internal/config"
	"schemagen/internal/output"
)

const appYAML = `
versions:
  - {num: 20.0.0.5}
basics:
  - name: uint
  - name: Ref
    template: true
blocks:
  - name: NiObject
    abstract: true
  - name: NiNode
    inherit: NiObject
    fields:
      - {name: Num Children, type: uint}
      - {name: Children, type: Ref, template: NiObject, arr1: Num Children}
      - {name: Extra, type: uint, cond: Missing Field}
`

func newTestApp(t *testing.T, doc string, mutate func(*config.Config)) (*App, *output.MemorySink, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "nif.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := config.Default()
	cfg.Schema = path
	cfg.OutDir = filepath.Join(dir, "out")
	cfg.Log.Level = "debug"

	if mutate != nil {
		mutate(cfg)
	}

	require.NoError(t, cfg.Validate())

	sink := output.NewMemorySink()
	logs := &bytes.Buffer{}

	return New(logs, cfg, sink), sink, logs
}

func TestApp_Generate(t *testing.T) {
	a, sink, logs := newTestApp(t, appYAML, nil)
	ctx := a.Context(context.Background())

	sum, err := a.Generate(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ni_object.go", "ni_node.go", "enums.go", "versions.go", "register.go"}, sum.Created)
	assert.Contains(t, sink.Files(), "ni_node.go")
	assert.Contains(t, logs.String(), "unresolved_reference")
	assert.Contains(t, logs.String(), "Generation complete.")

	sum, err = a.Generate(ctx)
	require.NoError(t, err)
	assert.Empty(t, sum.Created)
	assert.Empty(t, sum.Updated)
	assert.Len(t, sum.Unchanged, 5)
}

func TestApp_StrictReferences(t *testing.T) {
	a, sink, _ := newTestApp(t, appYAML, func(c *config.Config) { c.StrictReferences = true })
	ctx := a.Context(context.Background())

	_, err := a.Generate(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "Missing Field")
	assert.Empty(t, sink.Files(), "nothing is written when resolution fails")

	assert.Error(t, a.Check(ctx))
}

func TestApp_ManualUpdates(t *testing.T) {
	a, sink, _ := newTestApp(t, appYAML, func(c *config.Config) {
		c.ManualUpdates = []config.ManualUpdate{{Type: "NiNode", Field: "Num Children"}}
	})
	ctx := a.Context(context.Background())

	_, err := a.Generate(ctx)
	require.NoError(t, err)

	node, err := sink.ReadFile(ctx, "ni_node.go")
	require.NoError(t, err)
	assert.NotContains(t, string(node), "x.NumChildren = uint32(len(x.Children))")
}

func TestApp_RecomputesArraySizes(t *testing.T) {
	a, sink, _ := newTestApp(t, appYAML, nil)
	ctx := a.Context(context.Background())

	_, err := a.Generate(ctx)
	require.NoError(t, err)

	node, err := sink.ReadFile(ctx, "ni_node.go")
	require.NoError(t, err)
	assert.Contains(t, string(node), "x.NumChildren = uint32(len(x.Children))")
}

func TestApp_Check(t *testing.T) {
	a, sink, logs := newTestApp(t, appYAML, nil)

	require.NoError(t, a.Check(a.Context(context.Background())))
	assert.Contains(t, logs.String(), "Schema is valid.")
	assert.Empty(t, sink.Files())
}

func TestApp_Dump(t *testing.T) {
	a, _, _ := newTestApp(t, appYAML, nil)

	var out bytes.Buffer
	require.NoError(t, a.Dump(a.Context(context.Background()), &out))

	s := out.String()
	assert.Regexp(t, `"name":\s?"NiNode"`, s)
	assert.Regexp(t, `"kind":\s?"block"`, s)
	assert.Regexp(t, `"parent":\s?"NiObject"`, s)
	assert.Regexp(t, `"arr1_ref":\s?\[`, s)
	assert.Regexp(t, `"code":\s?"unresolved_reference"`, s)
}

func TestApp_LoadError(t *testing.T) {
	a, _, _ := newTestApp(t, "blocks:\n  - name: A\n    inherit: Missing\n", nil)

	_, err := a.Generate(a.Context(context.Background()))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	NewLogger("warn", "json", &buf).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger("warn", "json", &buf).Warn("shown", "n", 1)
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
