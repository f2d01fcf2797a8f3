package regions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `package gen

// --BEGIN FILE HEAD CUSTOM CODE--
// keep me
// --END CUSTOM CODE--

func (x *NiNode) Read() error {
	//--BEGIN PRE-READ CUSTOM CODE--//
	x.prepare()

	if x.skip {
		return nil
	}
	//--END CUSTOM CODE--//
	return nil
}

//--BEGIN BOGUS CUSTOM CODE--//
dropped
//--END CUSTOM CODE--//

//--BEGIN POST-STRING CUSTOM CODE--//
	out.WriteString("legacy")
//--END CUSTOM CODE--//
`

func TestExtract(t *testing.T) {
	s, err := Extract(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"// keep me"}, s.Lines(FileHead))
	assert.Equal(t, []string{
		"\tx.prepare()",
		"",
		"\tif x.skip {",
		"\t\treturn nil",
		"\t}",
	}, s.Lines(PreRead))
	assert.Equal(t, []string{`	out.WriteString("legacy")`}, s.Lines(PostDescribe))
	assert.Equal(t, []string{"BOGUS"}, s.Unknown)
	assert.Empty(t, s.Lines(Misc))
	assert.Empty(t, s.Unterminated)
}

func TestExtract_SentinelSpellings(t *testing.T) {
	tests := []struct {
		name, begin, end string
	}{
		{"current", "\t// --BEGIN POST-WRITE CUSTOM CODE--", "\t// --END CUSTOM CODE--"},
		{"legacy", "//--BEGIN POST-WRITE CUSTOM CODE--//", "//--END CUSTOM CODE--//"},
		{"legacy reformatted", "\t// --BEGIN POST-WRITE CUSTOM CODE--//", "\t// --END CUSTOM CODE--//"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "func f() {\n" + tt.begin + "\n\tkeep()\n" + tt.end + "\n\tafter()\n}\n"

			s, err := Extract(strings.NewReader(in))
			require.NoError(t, err)
			assert.Equal(t, []string{"\tkeep()"}, s.Lines(PostWrite))
			assert.Empty(t, s.Unterminated)
		})
	}
}

func TestExtract_MarkerMentionedInCode(t *testing.T) {
	in := "// --BEGIN MISC CUSTOM CODE--\n" +
		"const note = \"see // --END CUSTOM CODE-- below\"\n" +
		"// --END CUSTOM CODE--\n"

	s, err := Extract(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, s.Lines(Misc), 1, "only a line holding nothing but the sentinel closes a region")
}

func TestExtract_Unterminated(t *testing.T) {
	s, err := Extract(strings.NewReader(Misc.Begin() + "\na\nb\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, s.Lines(Misc))
	assert.Equal(t, []Kind{Misc}, s.Unterminated)
}

func TestExtract_RepeatedRegionAccumulates(t *testing.T) {
	in := Misc.Begin() + "\none\n" + End + "\n" + Misc.Begin() + "\ntwo\n" + End + "\n"

	s, err := Extract(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, s.Lines(Misc))
}

func TestExtractFile_Missing(t *testing.T) {
	s, err := ExtractFile(filepath.Join(t.TempDir(), "absent.go"))
	require.NoError(t, err)

	for _, k := range Kinds {
		assert.Equal(t, []string{""}, s.Lines(k), k.String())
	}
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ni_node.go")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"// keep me"}, s.Lines(FileHead))
}

func TestBlock_RoundTrip(t *testing.T) {
	s := NewSet()
	s.Set(Constructor, []string{"\tx.cache = map[string]int{}", "", "\t// done"})

	var sb strings.Builder
	sb.WriteString("func NewX() *X {\n")
	require.NoError(t, s.Write(&sb, Constructor))
	sb.WriteString("}\n")

	again, err := Extract(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, s.Lines(Constructor), again.Lines(Constructor))
	assert.Equal(t, s.Block(Constructor), again.Block(Constructor))
}

func TestDefaults_Block(t *testing.T) {
	assert.Equal(t,
		"// --BEGIN PRE-DESCRIBE CUSTOM CODE--\n\n// --END CUSTOM CODE--\n",
		Defaults().Block(PreDescribe))
}

func TestKind_Markers(t *testing.T) {
	for _, k := range Kinds {
		name := k.MarkerName()
		require.NotEmpty(t, name, k.String())
		assert.Equal(t, k, byMarker[name])
	}
}
