// Package mesh turns odr documents into triangulated render meshes: one
// strip mesh per lane surface and one mesh per colour per lane for road
// markings.
//
// Emitted vertices use a right-handed Y-up frame: OpenDRIVE (x, y, z) maps
// to (x - cx, z - cz, -(y - cy)) with c the map centre. The same frame and
// winding apply to lane surfaces, road marks and normals.
package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/mapmesh/internal/geom"
	"github.com/banshee-data/mapmesh/internal/monitoring"
	"github.com/banshee-data/mapmesh/internal/odr"
)

// DefaultLaneSampleStep is the sampling interval along s for lane surfaces.
const DefaultLaneSampleStep = 1.0

// LaneMeshBuilder builds per-lane triangle-strip meshes.
type LaneMeshBuilder struct {
	// SampleStep is the sampling interval along the reference line in
	// metres.
	SampleStep float64

	// Center is subtracted from every emitted vertex to keep f32 vertex
	// data well-conditioned for UTM-sized source coordinates.
	Center r3.Vec
}

// NewLaneMeshBuilder returns a builder with the given sample step; steps
// <= 0 fall back to DefaultLaneSampleStep.
func NewLaneMeshBuilder(sampleStep float64, center r3.Vec) *LaneMeshBuilder {
	if sampleStep <= 0 {
		sampleStep = DefaultLaneSampleStep
	}
	return &LaneMeshBuilder{SampleStep: sampleStep, Center: center}
}

// BuildLaneMesh builds the surface mesh for one lane over [sStart, sEnd].
// Centre lanes carry no surface and yield an empty mesh, as does a road
// without plan-view geometry.
func (b *LaneMeshBuilder) BuildLaneMesh(road *odr.Road, section *odr.LaneSection, lane *odr.Lane, sStart, sEnd float64) geom.Mesh {
	if lane.ID == 0 {
		return geom.Mesh{}
	}
	if len(road.PlanView) == 0 {
		monitoring.Logf("mesh: road %q has empty planView, emitting empty lane mesh", road.ID)
		return geom.Mesh{}
	}

	length := sEnd - sStart
	numSamples := sampleCount(length, b.SampleStep)

	vertices := make([]float32, 0, numSamples*6)
	for i := 0; i < numSamples; i++ {
		frac := float64(i) / float64(numSamples-1)
		s := sStart + frac*length
		ds := s - section.S

		laneOffset := road.LaneOffsetAt(s)
		tInner := section.InnerOffset(lane.ID, s) + laneOffset
		width := lane.WidthAt(ds)
		tOuter := tInner + width
		if lane.ID < 0 {
			tOuter = tInner - width
		}

		// Lane height lifts the boundary above the composed road surface
		// (elevation, superelevation and shape are applied by SthToXyz).
		hInner, hOuter := lane.HeightAt(ds)

		inner := road.SthToXyz(s, tInner, hInner)
		outer := road.SthToXyz(s, tOuter, hOuter)

		// The strip emits the larger-t boundary first; with the fixed quad
		// winding this yields +Y normals on flat sections for both sides
		// of the road.
		if tInner >= tOuter {
			vertices = appendVertex(vertices, inner, b.Center)
			vertices = appendVertex(vertices, outer, b.Center)
		} else {
			vertices = appendVertex(vertices, outer, b.Center)
			vertices = appendVertex(vertices, inner, b.Center)
		}
	}

	indices := geom.StripIndices(numSamples)
	normals := geom.ComputeNormals(vertices, indices)
	return geom.Mesh{Vertices: vertices, Indices: indices, Normals: normals}
}

// BuildRoadMesh builds and merges the surface meshes of every lane in every
// section of the road.
func (b *LaneMeshBuilder) BuildRoadMesh(road *odr.Road) geom.Mesh {
	var out geom.Mesh
	for idx := range road.Sections {
		section := &road.Sections[idx]
		sStart, sEnd := road.SectionRange(idx)

		for i := range section.Left {
			out.Merge(b.BuildLaneMesh(road, section, &section.Left[i], sStart, sEnd))
		}
		for i := range section.Right {
			out.Merge(b.BuildLaneMesh(road, section, &section.Right[i], sStart, sEnd))
		}
	}
	return out
}

// sampleCount returns the number of cross-sections for a span: one sample
// per step interval plus the closing fencepost, never fewer than two.
func sampleCount(length, step float64) int {
	n := int(math.Ceil(length/step)) + 1
	if n < 2 {
		return 2
	}
	return n
}

// appendVertex converts an OpenDRIVE-frame point to the emitted Y-up frame,
// subtracting the map centre.
func appendVertex(vertices []float32, p, center r3.Vec) []float32 {
	return append(vertices,
		float32(p.X-center.X),
		float32(p.Z-center.Z),
		float32(-(p.Y-center.Y)),
	)
}
