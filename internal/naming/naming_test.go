package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Num Vertices", "NumVertices"},
		{"UV Sets", "UVSets"},
		{"bhkRigidBody", "BhkRigidBody"},
		{"NiNode", "NiNode"},
		{"Has Normals", "HasNormals"},
		{"BSShader:Property", "BSShaderProperty"},
		{"unknown int 1", "UnknownInt1"},
		{"2D Flags", "N2DFlags"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Ident(tt.in))
		})
	}
}

func TestConstName(t *testing.T) {
	assert.Equal(t, "AlphaFormatAlphaBinary", ConstName("AlphaFormat", "ALPHA_BINARY"))
	assert.Equal(t, "VertModeVertModeSrcIgnore", ConstName("VertMode", "VERT_MODE_SRC_IGNORE"))
}

func TestLocal(t *testing.T) {
	assert.Equal(t, "numVertices", Local("Num Vertices"))
	assert.Equal(t, "uvSets", Local("UV Sets"))
	assert.Equal(t, "niNode", Local("NiNode"))
	assert.Equal(t, "", Local(""))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NiNode", "ni_node"},
		{"bhkRigidBody", "bhk_rigid_body"},
		{"NiTriStripsData", "ni_tri_strips_data"},
		{"BSLODTriShape", "bslod_tri_shape"},
		{"NiAlphaTest", "ni_alpha_test_gen"},
		{"Footer", "footer"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.in))
		})
	}
}
