// Package geom holds the mesh container and the small amount of vector
// arithmetic the mesh builders need. Vertex data is emitted as 32-bit floats
// with 16-bit indices; cross products and normalisation run in float64 via
// gonum's spatial types, while per-vertex normal sums accumulate in float32.
package geom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle list with per-vertex normals. Vertices and
// Normals are packed xyz triples; Indices reference vertices (not floats).
// Buffers are owned by whoever holds the Mesh; builders never retain them.
type Mesh struct {
	Vertices []float32
	Indices  []uint16
	Normals  []float32
}

// VertexCount returns the number of xyz vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty reports whether the mesh carries no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// Merge appends another mesh to m, offsetting the appended indices by the
// current vertex count. Merging an empty mesh is a no-op.
func (m *Mesh) Merge(other Mesh) {
	if len(other.Vertices) == 0 {
		return
	}
	vertexOffset := uint16(len(m.Vertices) / 3)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, idx+vertexOffset)
	}
	m.Normals = append(m.Normals, other.Normals...)
}

// StripIndices generates triangle-list indices for a band of paired
// vertices: vertex 2i is the first boundary sample of cross-section i,
// 2i+1 the second. Each consecutive pair of cross-sections contributes two
// triangles, so numSamples samples yield 2*(numSamples-1) triangles.
func StripIndices(numSamples int) []uint16 {
	if numSamples < 2 {
		return nil
	}
	indices := make([]uint16, 0, 6*(numSamples-1))
	for i := 0; i < numSamples-1; i++ {
		base := uint16(i * 2)
		// Triangle 1: first[i], second[i], first[i+1]
		indices = append(indices, base, base+1, base+2)
		// Triangle 2: second[i], second[i+1], first[i+1]
		indices = append(indices, base+1, base+3, base+2)
	}
	return indices
}

// ComputeNormals returns per-vertex normals for an indexed triangle list.
// Face normals are accumulated area-weighted onto each referenced vertex and
// normalised at the end. Vertices whose accumulated normal collapses below
// 1e-6 fall back to the up vector (0, 1, 0).
func ComputeNormals(vertices []float32, indices []uint16) []float32 {
	normals := make([]float32, len(vertices))

	for tri := 0; tri+2 < len(indices); tri += 3 {
		i0 := int(indices[tri]) * 3
		i1 := int(indices[tri+1]) * 3
		i2 := int(indices[tri+2]) * 3

		v0 := vertexAt(vertices, i0)
		v1 := vertexAt(vertices, i1)
		v2 := vertexAt(vertices, i2)

		// Cross product of the two edges; magnitude carries the area weight.
		n := r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0))

		for _, idx := range [3]int{i0, i1, i2} {
			normals[idx] += float32(n.X)
			normals[idx+1] += float32(n.Y)
			normals[idx+2] += float32(n.Z)
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		n := r3.Vec{X: float64(normals[i]), Y: float64(normals[i+1]), Z: float64(normals[i+2])}
		length := r3.Norm(n)
		if length > 1e-6 {
			normals[i] = float32(n.X / length)
			normals[i+1] = float32(n.Y / length)
			normals[i+2] = float32(n.Z / length)
		} else {
			normals[i] = 0
			normals[i+1] = 1
			normals[i+2] = 0
		}
	}

	return normals
}

func vertexAt(vertices []float32, base int) r3.Vec {
	return r3.Vec{
		X: float64(vertices[base]),
		Y: float64(vertices[base+1]),
		Z: float64(vertices[base+2]),
	}
}
