package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/mapmesh/internal/monitoring"
	"github.com/banshee-data/mapmesh/internal/odr"
)

func init() {
	monitoring.SetLogger(nil)
}

func constantWidthLane(id int, width float64) odr.Lane {
	return odr.Lane{
		ID:    id,
		Type:  "driving",
		Width: []odr.LaneWidth{{SOffset: 0, A: width}},
	}
}

// flatTwoLaneRoad is a 20 m straight, flat road with one 3.5 m lane on each
// side.
func flatTwoLaneRoad() *odr.Road {
	return &odr.Road{
		ID:     "1",
		Length: 20,
		PlanView: []odr.Geometry{
			{S: 0, Kind: odr.GeometryLine, Length: 20},
		},
		Sections: []odr.LaneSection{{
			S:      0,
			Left:   []odr.Lane{constantWidthLane(1, 3.5)},
			Right:  []odr.Lane{constantWidthLane(-1, 3.5)},
			Center: odr.Lane{ID: 0},
		}},
	}
}

func TestBuildLaneMeshTopology(t *testing.T) {
	road := flatTwoLaneRoad()
	section := &road.Sections[0]
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	// 20 m at 1 m step: 21 cross-sections, 42 vertices, 40 triangles.
	m := builder.BuildLaneMesh(road, section, &section.Left[0], 0, 20)
	if m.VertexCount() != 42 {
		t.Errorf("expected 42 vertices, got %d", m.VertexCount())
	}
	if len(m.Indices) != 120 {
		t.Errorf("expected 120 indices, got %d", len(m.Indices))
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals/vertices length mismatch: %d vs %d", len(m.Normals), len(m.Vertices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestBuildLaneMeshCenterLaneEmpty(t *testing.T) {
	road := flatTwoLaneRoad()
	section := &road.Sections[0]
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	m := builder.BuildLaneMesh(road, section, &section.Center, 0, 20)
	if !m.IsEmpty() {
		t.Errorf("centre lane should emit no mesh, got %d vertices", m.VertexCount())
	}
}

func TestBuildLaneMeshEmptyPlanView(t *testing.T) {
	road := flatTwoLaneRoad()
	road.PlanView = nil
	section := &road.Sections[0]
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	m := builder.BuildLaneMesh(road, section, &section.Left[0], 0, 20)
	if !m.IsEmpty() {
		t.Error("empty planView must yield an empty mesh")
	}
}

func TestBuildLaneMeshFlatNormalsPointUp(t *testing.T) {
	road := flatTwoLaneRoad()
	section := &road.Sections[0]
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	for _, lane := range []*odr.Lane{&section.Left[0], &section.Right[0]} {
		m := builder.BuildLaneMesh(road, section, lane, 0, 20)
		for i := 0; i < len(m.Normals); i += 3 {
			if math.Abs(float64(m.Normals[i])) > 1e-5 ||
				math.Abs(float64(m.Normals[i+1])-1) > 1e-5 ||
				math.Abs(float64(m.Normals[i+2])) > 1e-5 {
				t.Fatalf("lane %d normal %d not up: (%f,%f,%f)",
					lane.ID, i/3, m.Normals[i], m.Normals[i+1], m.Normals[i+2])
			}
		}
	}
}

func TestBuildLaneMeshVertexFrame(t *testing.T) {
	// Elevation 5 everywhere; the Y-up frame must carry OpenDRIVE z in the
	// vertex Y slot and -y in the Z slot.
	road := flatTwoLaneRoad()
	road.Elevations = []odr.Elevation{{S: 0, A: 5}}
	section := &road.Sections[0]
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	m := builder.BuildLaneMesh(road, section, &section.Left[0], 0, 20)
	// The larger-t boundary comes first: the left lane's outer border at
	// t=3.5 -> od (0, 3.5, 5) -> (0, 5, -3.5).
	if math.Abs(float64(m.Vertices[0])) > 1e-6 ||
		math.Abs(float64(m.Vertices[1])-5) > 1e-6 ||
		math.Abs(float64(m.Vertices[2])+3.5) > 1e-6 {
		t.Errorf("first vertex wrong: (%f,%f,%f)", m.Vertices[0], m.Vertices[1], m.Vertices[2])
	}
	// Second vertex: inner boundary at t=0 -> od (0, 0, 5) -> (0, 5, 0).
	if math.Abs(float64(m.Vertices[3])) > 1e-6 ||
		math.Abs(float64(m.Vertices[4])-5) > 1e-6 ||
		math.Abs(float64(m.Vertices[5])) > 1e-6 {
		t.Errorf("second vertex wrong: (%f,%f,%f)", m.Vertices[3], m.Vertices[4], m.Vertices[5])
	}
}

func TestBuildLaneMeshSubtractsCenter(t *testing.T) {
	road := flatTwoLaneRoad()
	road.PlanView[0].X = 500000
	road.PlanView[0].Y = 4000000
	section := &road.Sections[0]

	center := r3.Vec{X: 500000, Y: 4000000}
	builder := NewLaneMeshBuilder(1.0, center)

	m := builder.BuildLaneMesh(road, section, &section.Left[0], 0, 20)
	// With the centre subtracted the first vertex (the left lane's outer
	// border at t=3.5, emitted first) sits at local (0, 0, -3.5).
	if math.Abs(float64(m.Vertices[0])) > 1e-3 || math.Abs(float64(m.Vertices[2])+3.5) > 1e-3 {
		t.Errorf("map centre not subtracted: (%f,%f,%f)", m.Vertices[0], m.Vertices[1], m.Vertices[2])
	}
}

func TestBuildLaneMeshAppliesLaneHeight(t *testing.T) {
	road := flatTwoLaneRoad()
	section := &road.Sections[0]
	section.Left[0].Height = []odr.LaneHeight{{SOffset: 0, Inner: 0.0, Outer: 0.12}}
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	m := builder.BuildLaneMesh(road, section, &section.Left[0], 0, 20)
	// The outer boundary leads the pair on a left lane and carries the lift.
	if math.Abs(float64(m.Vertices[1])-0.12) > 1e-6 {
		t.Errorf("outer lane height not applied: %f", m.Vertices[1])
	}
	if math.Abs(float64(m.Vertices[4])) > 1e-6 {
		t.Errorf("inner boundary should stay on the surface: %f", m.Vertices[4])
	}
}

func TestBuildRoadMeshMergesAllLanes(t *testing.T) {
	road := flatTwoLaneRoad()
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	m := builder.BuildRoadMesh(road)
	// Two lanes, 42 vertices each.
	if m.VertexCount() != 84 {
		t.Errorf("expected 84 vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 80 {
		t.Errorf("expected 80 triangles, got %d", m.TriangleCount())
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("merged index %d out of range", idx)
		}
	}
}

func TestBuildLaneMeshShortSpanStillTwoSamples(t *testing.T) {
	road := flatTwoLaneRoad()
	section := &road.Sections[0]
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	m := builder.BuildLaneMesh(road, section, &section.Left[0], 0, 0.25)
	if m.VertexCount() < 4 {
		t.Errorf("expected at least 2 cross-sections, got %d vertices", m.VertexCount())
	}
}

func TestLaneOffsetShiftsBothBoundaries(t *testing.T) {
	road := flatTwoLaneRoad()
	road.LaneOffsets = []odr.LaneOffset{{S: 0, A: 1.0}}
	section := &road.Sections[0]
	builder := NewLaneMeshBuilder(1.0, r3.Vec{})

	m := builder.BuildLaneMesh(road, section, &section.Left[0], 0, 20)
	// Outer boundary at t=4.5 leads -> vertex z = -4.5; inner at t=1 -> -1.
	if math.Abs(float64(m.Vertices[2])+4.5) > 1e-6 {
		t.Errorf("outer boundary ignored laneOffset: %f", m.Vertices[2])
	}
	if math.Abs(float64(m.Vertices[5])+1) > 1e-6 {
		t.Errorf("inner boundary ignored laneOffset: %f", m.Vertices[5])
	}
}
