package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemagen/internal/schema"
)

func TestParse_Defaults(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "nifgen", c.Package)
	assert.Equal(t, "nif", c.RuntimeAlias)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.ErrorContains(t, c.Validate(), "schema: required")
}

func TestParse_Values(t *testing.T) {
	c, err := Parse([]byte(`
schema: nif.xml
out_dir: gen
package: nifobj
runtime_import: example.com/nif/runtime
runtime_alias: rt
max_array_dump: 10
strict_references: true
accessors: true
only: [NiNode]
manual_updates:
  - {type: NiSkinData, field: Has Vertex Weights}
log: {level: debug, format: json}
`))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.True(t, c.ResolverConfig().StrictReferences)
	assert.False(t, c.ResolverConfig().StrictDefaults)

	g := c.GeneratorConfig()
	assert.Equal(t, "nifobj", g.PackageName)
	assert.Equal(t, "rt", g.RuntimeAlias)
	assert.Equal(t, "example.com/nif/runtime", g.RuntimeImport)
	assert.Equal(t, 10, g.MaxArrayDump)
	assert.Equal(t, "nif.xml", g.Source)
	assert.True(t, g.Accessors)
	assert.Equal(t, []string{"NiNode"}, g.Only)
	assert.Equal(t, []ManualUpdate{{Type: "NiSkinData", Field: "Has Vertex Weights"}}, c.ManualUpdates)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("schema: a.xml\nbogus: 1\n"))
	assert.ErrorContains(t, err, "bogus")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "package", mutate: func(c *Config) { c.Package = "my-pkg" }, wantErr: `package: "my-pkg" is not a Go identifier`},
		{name: "alias", mutate: func(c *Config) { c.RuntimeAlias = "1nif" }, wantErr: "runtime_alias"},
		{name: "level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level: must be one of: debug, info, warn, error"},
		{name: "dump", mutate: func(c *Config) { c.MaxArrayDump = -1 }, wantErr: "max_array_dump: must be at least 0"},
		{name: "manual", mutate: func(c *Config) { c.ManualUpdates = []ManualUpdate{{Type: "NiNode"}} }, wantErr: "manual_updates[0].field: required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Schema = "nif.xml"
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_RelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema: schema/nif.xml\nout_dir: out\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schema", "nif.xml"), c.Schema)
	assert.Equal(t, filepath.Join(dir, "out"), c.OutDir)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyManualUpdates(t *testing.T) {
	ctx, err := schema.Parse([]byte(`
basics:
  - name: uint
blocks:
  - name: NiObject
    fields:
      - {name: Count, type: uint}
`), schema.FormatYAML, "test.yaml")
	require.NoError(t, err)

	c := Default()
	c.ManualUpdates = []ManualUpdate{{Type: "NiObject", Field: "Count"}}
	require.NoError(t, c.ApplyManualUpdates(ctx))

	f, ok := ctx.FindField(ctx.Blocks()[0].ID, "Count", false)
	require.True(t, ok)
	assert.True(t, f.ManualUpdate)

	c.ManualUpdates = []ManualUpdate{{Type: "NiObject", Field: "Missing"}}
	assert.Error(t, c.ApplyManualUpdates(ctx))
}
