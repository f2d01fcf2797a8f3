package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hierarchyYAML = `
basics: [{name: uint}, {name: bool}]
blocks:
  - name: NiObject
    abstract: true
  - name: NiObjectNET
    inherit: NiObject
    fields:
      - {name: Name, type: uint}
  - name: NiAVObject
    inherit: NiObjectNET
    fields:
      - {name: Flags, type: uint}
  - name: NiKeyframeData
    inherit: NiObject
    fields:
      - {name: Num Rotation Keys, type: uint}
      - {name: Has Data, type: bool}
`

func loadHierarchy(t *testing.T) *Context {
	t.Helper()

	c, err := Parse([]byte(hierarchyYAML), FormatYAML, "hierarchy.yaml")
	require.NoError(t, err)

	return c
}

func TestContext_Ancestors(t *testing.T) {
	c := loadHierarchy(t)

	av, ok := c.Lookup("NiAVObject")
	require.True(t, ok)

	chain := c.Ancestors(av.(*Block))
	require.Len(t, chain, 2)
	assert.Equal(t, "NiObject", chain[0].Name)
	assert.Equal(t, "NiObjectNET", chain[1].Name)

	root, _ := c.Lookup("NiObject")
	assert.Empty(t, c.Ancestors(root.(*Block)))
	assert.Nil(t, c.Parent(root.(*Block)))
}

func TestContext_FindField(t *testing.T) {
	c := loadHierarchy(t)
	av, _ := c.Lookup("NiAVObject")

	_, ok := c.FindField(av.Info().ID, "Name", false)
	assert.False(t, ok)

	f, ok := c.FindField(av.Info().ID, "Name", true)
	require.True(t, ok)
	assert.Equal(t, "Name", f.Name)

	net, _ := c.Lookup("NiObjectNET")
	assert.Equal(t, net.Info().ID, f.Owner)

	_, ok = c.FindField(av.Info().ID, "Missing", true)
	assert.False(t, ok)
}

func TestContext_Lookups(t *testing.T) {
	c := loadHierarchy(t)

	assert.True(t, c.HasBlock("NiObject"))
	assert.False(t, c.HasBlock("uint"))
	assert.Equal(t, TemplateName, c.Name(TemplateParam))
	assert.Equal(t, "", c.Name(NoType))
	assert.Nil(t, c.Entity(NoType))
	assert.Equal(t, 6, c.Len())
}

func TestContext_SetManualUpdate(t *testing.T) {
	c := loadHierarchy(t)

	require.NoError(t, c.SetManualUpdate("NiKeyframeData", "Num Rotation Keys", true))

	f, ok := c.FindField(mustID(t, c, "NiKeyframeData"), "Num Rotation Keys", false)
	require.True(t, ok)
	assert.True(t, f.ManualUpdate)

	other, _ := c.FindField(mustID(t, c, "NiKeyframeData"), "Has Data", false)
	assert.False(t, other.ManualUpdate)

	assert.ErrorContains(t, c.SetManualUpdate("Nope", "x", true), `unknown type "Nope"`)
	assert.ErrorContains(t, c.SetManualUpdate("uint", "x", true), "has no fields")
	assert.ErrorContains(t, c.SetManualUpdate("NiKeyframeData", "x", true), `has no field "x"`)
}

func mustID(t *testing.T, c *Context, name string) TypeID {
	t.Helper()

	e, ok := c.Lookup(name)
	require.True(t, ok, name)

	return e.Info().ID
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "10.0.1.0", want: 0x0A000100},
		{in: "20.2.0.7", want: 0x14020007},
		{in: "4.22", want: 0x04020200},
		{in: "3.1", want: 0x03010000},
		{in: "3.03", want: 0x03000300},
		{in: "0x0A000100", want: 0x0A000100},
		{in: "1.2.3", want: 0x01020300},
		{in: "", wantErr: true},
		{in: "1.2.3.4.5", wantErr: true},
		{in: "256.0.0.0", wantErr: true},
		{in: "a.b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "20.0.0.5", FormatVersion(0x14000005))
}

func TestParseUserVersion(t *testing.T) {
	v, err := ParseUserVersion("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseUserVersion("0")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, uint32(0), *v)

	_, err = ParseUserVersion("x")
	assert.Error(t, err)
}

func TestKindAndFamilyStrings(t *testing.T) {
	assert.Equal(t, "Block", KindBlock.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.True(t, KindCompound.HasFields())
	assert.False(t, KindEnum.HasFields())

	f, ok := ParseFamily("ref")
	require.True(t, ok)
	assert.Equal(t, FamilyRef, f)
	assert.True(t, f.IsLink())

	_, ok = ParseFamily("bogus")
	assert.False(t, ok)
}
