package mesh

import (
	"math"
	"testing"

	"github.com/banshee-data/mapmesh/internal/odr"
)

func TestBuildMapRebasesOnCenter(t *testing.T) {
	mkRoad := func(id string, x float64) odr.Road {
		lane := constantWidthLane(1, 3.5)
		lane.RoadMarks = []odr.RoadMark{{Type: odr.RoadMarkSolid, Color: odr.RoadMarkColorWhite}}
		return odr.Road{
			ID:     id,
			Length: 20,
			PlanView: []odr.Geometry{
				{S: 0, X: x, Kind: odr.GeometryLine, Length: 20},
			},
			Sections: []odr.LaneSection{{
				S:      0,
				Left:   []odr.Lane{lane},
				Center: odr.Lane{ID: 0},
			}},
		}
	}

	m := odr.NewMap(odr.Header{}, []odr.Road{
		mkRoad("1", 500000),
		mkRoad("2", 500100),
	}, nil)

	out := BuildMap(m, 1.0, 0.2)
	if len(out) != 2 {
		t.Fatalf("expected 2 road outputs, got %d", len(out))
	}

	for _, rm := range out {
		if rm.Surface.IsEmpty() {
			t.Errorf("road %s: empty surface mesh", rm.RoadID)
		}
		if len(rm.Marks) == 0 {
			t.Errorf("road %s: no road marks", rm.RoadID)
		}
		// Rebased coordinates stay near the origin despite UTM-sized input.
		for i := 0; i < len(rm.Surface.Vertices); i += 3 {
			if math.Abs(float64(rm.Surface.Vertices[i])) > 200 {
				t.Fatalf("road %s: vertex x %f not rebased", rm.RoadID, rm.Surface.Vertices[i])
			}
		}
	}
}

func TestBuildMapIncludesCenterLaneMarks(t *testing.T) {
	lane := constantWidthLane(1, 3.5)
	center := odr.Lane{ID: 0}
	center.RoadMarks = []odr.RoadMark{{Type: odr.RoadMarkBroken, Color: odr.RoadMarkColorYellow}}

	m := odr.NewMap(odr.Header{}, []odr.Road{{
		ID:     "1",
		Length: 20,
		PlanView: []odr.Geometry{
			{S: 0, Kind: odr.GeometryLine, Length: 20},
		},
		Sections: []odr.LaneSection{{S: 0, Left: []odr.Lane{lane}, Center: center}},
	}}, nil)

	out := BuildMap(m, 1.0, 0.2)
	if len(out) != 1 || len(out[0].Marks) != 1 {
		t.Fatalf("expected the centre-lane mark to be built, got %+v", out)
	}
	if out[0].Marks[0].Color != odr.RoadMarkColorYellow {
		t.Errorf("mark colour lost: %v", out[0].Marks[0].Color)
	}
}
