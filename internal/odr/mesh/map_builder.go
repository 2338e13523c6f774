package mesh

import (
	"github.com/banshee-data/mapmesh/internal/geom"
	"github.com/banshee-data/mapmesh/internal/odr"
)

// RoadMeshes is the build output for one road: the merged lane surface mesh
// and the per-lane marking meshes grouped by colour.
type RoadMeshes struct {
	RoadID  string
	Surface geom.Mesh
	Marks   []RoadMarkMesh
}

// BuildMap builds surface and marking meshes for every road of a map. All
// vertices are rebased on the map centre. Steps <= 0 use the builder
// defaults.
func BuildMap(m *odr.Map, laneStep, markStep float64) []RoadMeshes {
	laneBuilder := NewLaneMeshBuilder(laneStep, m.Center())
	markBuilder := NewRoadMarkMeshBuilder(markStep, m.Center())

	out := make([]RoadMeshes, 0, len(m.Roads))
	for ri := range m.Roads {
		road := &m.Roads[ri]
		rm := RoadMeshes{RoadID: road.ID}

		rm.Surface = laneBuilder.BuildRoadMesh(road)

		for si := range road.Sections {
			section := &road.Sections[si]
			sStart, sEnd := road.SectionRange(si)

			for i := range section.Left {
				rm.Marks = append(rm.Marks, markBuilder.BuildLaneRoadMarks(road, section, &section.Left[i], sStart, sEnd)...)
			}
			// The centre lane has no surface but its marking divides the
			// two directions of travel.
			rm.Marks = append(rm.Marks, markBuilder.BuildLaneRoadMarks(road, section, &section.Center, sStart, sEnd)...)
			for i := range section.Right {
				rm.Marks = append(rm.Marks, markBuilder.BuildLaneRoadMarks(road, section, &section.Right[i], sStart, sEnd)...)
			}
		}

		out = append(out, rm)
	}
	return out
}
