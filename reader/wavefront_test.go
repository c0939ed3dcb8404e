package reader

import (
	"strings"
	"testing"
)

func TestReadMeshVerticesAndFaces(t *testing.T) {
	payload := `
# a single quad split into two triangles
v -0.5 -0.5 0.0
v 0.5 -0.5 0.0
v 0.5 0.5 0.0
v -0.5 0.5 0.0
f 1 2 3 4
`
	mesh, err := ReadMeshFrom(strings.NewReader(payload), "quad.obj")
	if err != nil {
		t.Fatalf("expected parse to succeed; got %v", err)
	}

	if len(mesh.Positions) != 4 {
		t.Fatalf("expected 4 vertices; got %d", len(mesh.Positions))
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("expected the quad to fan-triangulate into 2 triangles; got %d", mesh.TriangleCount())
	}

	expIndices := []uint32{0, 1, 2, 0, 2, 3}
	for i, exp := range expIndices {
		if mesh.Indices[i] != exp {
			t.Fatalf("expected index %d to be %d; got %d", i, exp, mesh.Indices[i])
		}
	}
}

func TestReadMeshVertexReferenceForms(t *testing.T) {
	payload := `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f 1/1 2//2 -1/3/3
`
	mesh, err := ReadMeshFrom(strings.NewReader(payload), "forms.obj")
	if err != nil {
		t.Fatalf("expected parse to succeed; got %v", err)
	}

	expIndices := []uint32{0, 1, 2}
	for i, exp := range expIndices {
		if mesh.Indices[i] != exp {
			t.Fatalf("expected index %d to be %d; got %d", i, exp, mesh.Indices[i])
		}
	}
}

func TestReadMeshErrors(t *testing.T) {
	type spec struct {
		payload  string
		expError string
	}

	specs := []spec{
		{
			payload:  "v 1.0 2.0",
			expError: "[broken.obj: 1] error: unsupported syntax for 'v'; expected 3 arguments; got 2",
		},
		{
			payload:  "v 1.0 2.0 nan-sense",
			expError: "[broken.obj: 1] error: could not parse component 'nan-sense'",
		},
		{
			payload:  "f 1 2",
			expError: "[broken.obj: 1] error: unsupported syntax for 'f'; expected at least 3 vertex references; got 2",
		},
		{
			payload:  "v 0 0 0\nv 1 0 0\nf 1 2 3",
			expError: "[broken.obj: 3] error: vertex reference 3 out of range; 2 vertices defined so far",
		},
		{
			payload:  "v 0 0 0\nf 1 1 what",
			expError: "[broken.obj: 2] error: could not parse vertex reference 'what'",
		},
	}

	for idx, s := range specs {
		_, err := ReadMeshFrom(strings.NewReader(s.payload), "broken.obj")
		if err == nil {
			t.Fatalf("[spec %d] expected a parse error", idx)
		}
		if err.Error() != s.expError {
			t.Fatalf("[spec %d] expected error:\n %s\ngot:\n %s", idx, s.expError, err.Error())
		}
	}
}
