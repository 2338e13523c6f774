package geom

import (
	"math"
	"testing"
)

func TestStripIndicesCounts(t *testing.T) {
	// 3 samples -> 2 quads -> 4 triangles -> 12 indices
	indices := StripIndices(3)
	if len(indices) != 12 {
		t.Fatalf("expected 12 indices, got %d", len(indices))
	}

	want := []uint16{0, 1, 2, 1, 3, 2}
	for i, w := range want {
		if indices[i] != w {
			t.Errorf("index %d: expected %d, got %d", i, w, indices[i])
		}
	}
}

func TestStripIndicesDegenerate(t *testing.T) {
	if got := StripIndices(1); got != nil {
		t.Errorf("expected nil for a single sample, got %v", got)
	}
	if got := StripIndices(0); got != nil {
		t.Errorf("expected nil for zero samples, got %v", got)
	}
}

func TestStripIndicesBounds(t *testing.T) {
	const samples = 21
	indices := StripIndices(samples)
	if len(indices) != 6*(samples-1) {
		t.Fatalf("expected %d indices, got %d", 6*(samples-1), len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= samples*2 {
			t.Fatalf("index %d out of range (max %d)", idx, samples*2-1)
		}
	}
}

func TestComputeNormalsFlatSurface(t *testing.T) {
	// Horizontal plane in the XZ plane (Y up).
	vertices := []float32{
		0, 0, 0,
		0, 0, 1,
		1, 0, 0,
	}
	indices := []uint16{0, 1, 2}

	normals := ComputeNormals(vertices, indices)
	if len(normals) != 9 {
		t.Fatalf("expected 9 normal components, got %d", len(normals))
	}
	for i := 0; i < len(normals); i += 3 {
		if math.Abs(float64(normals[i])) > 1e-5 ||
			math.Abs(float64(normals[i+1])-1.0) > 1e-5 ||
			math.Abs(float64(normals[i+2])) > 1e-5 {
			t.Errorf("vertex %d: expected (0,1,0), got (%f,%f,%f)",
				i/3, normals[i], normals[i+1], normals[i+2])
		}
	}
}

func TestComputeNormalsDegenerateFallback(t *testing.T) {
	// A zero-area triangle accumulates no normal; the vertex falls back to up.
	vertices := []float32{
		0, 0, 0,
		0, 0, 0,
		0, 0, 0,
	}
	indices := []uint16{0, 1, 2}

	normals := ComputeNormals(vertices, indices)
	for i := 0; i < len(normals); i += 3 {
		if normals[i] != 0 || normals[i+1] != 1 || normals[i+2] != 0 {
			t.Errorf("vertex %d: expected up fallback, got (%f,%f,%f)",
				i/3, normals[i], normals[i+1], normals[i+2])
		}
	}
}

func TestMeshMergeOffsetsIndices(t *testing.T) {
	a := Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 0, 1},
		Indices:  []uint16{0, 1, 2},
		Normals:  []float32{0, 1, 0, 0, 1, 0, 0, 1, 0},
	}
	b := Mesh{
		Vertices: []float32{2, 0, 0, 3, 0, 0, 2, 0, 1},
		Indices:  []uint16{0, 1, 2},
		Normals:  []float32{0, 1, 0, 0, 1, 0, 0, 1, 0},
	}

	a.Merge(b)

	if a.VertexCount() != 6 {
		t.Errorf("expected 6 vertices after merge, got %d", a.VertexCount())
	}
	if a.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles after merge, got %d", a.TriangleCount())
	}
	wantTail := []uint16{3, 4, 5}
	for i, w := range wantTail {
		if a.Indices[3+i] != w {
			t.Errorf("merged index %d: expected %d, got %d", 3+i, w, a.Indices[3+i])
		}
	}
}

func TestMeshMergeEmptyIsNoop(t *testing.T) {
	a := Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 0, 1},
		Indices:  []uint16{0, 1, 2},
		Normals:  []float32{0, 1, 0, 0, 1, 0, 0, 1, 0},
	}
	a.Merge(Mesh{})
	if a.VertexCount() != 3 || a.TriangleCount() != 1 {
		t.Errorf("merge of empty mesh changed geometry: %d vertices, %d triangles",
			a.VertexCount(), a.TriangleCount())
	}
}
