package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/mapmesh/internal/geom"
	"github.com/banshee-data/mapmesh/internal/monitoring"
	"github.com/banshee-data/mapmesh/internal/odr"
)

// Builder defaults for road markings, in metres.
const (
	DefaultMarkSampleStep = 0.2

	// DefaultLineWidth applies when neither the mark nor its line records
	// carry a width.
	DefaultLineWidth = 0.15

	// DefaultLineHeight is the lift of the marking above the road surface.
	DefaultLineHeight = 0.005

	// Broken-line pattern: 3 m painted, 6 m gap.
	DefaultBrokenLength = 3.0
	DefaultBrokenSpace  = 6.0

	// Gap between the two lines of a double marking.
	DefaultDoubleLineGap = 0.1
)

// RoadMarkMesh pairs one marking mesh with its colour so consumers can
// batch draw calls by material.
type RoadMarkMesh struct {
	Mesh  geom.Mesh
	Color odr.RoadMarkColor
}

// defaultLine is one synthesized line of a default mark pattern. A Space of
// 0 means solid; solid lines use an infinite length that the segment loop
// clips to the mark's end.
type defaultLine struct {
	tOffset float64
	length  float64
	space   float64
	width   float64
}

// RoadMarkMeshBuilder builds marking meshes for lane borders.
type RoadMarkMeshBuilder struct {
	// SampleStep is the sampling interval along the reference line in
	// metres.
	SampleStep float64

	// Center is subtracted from every emitted vertex.
	Center r3.Vec
}

// NewRoadMarkMeshBuilder returns a builder with the given sample step;
// steps <= 0 fall back to DefaultMarkSampleStep.
func NewRoadMarkMeshBuilder(sampleStep float64, center r3.Vec) *RoadMarkMeshBuilder {
	if sampleStep <= 0 {
		sampleStep = DefaultMarkSampleStep
	}
	return &RoadMarkMeshBuilder{SampleStep: sampleStep, Center: center}
}

// BuildLaneRoadMarks builds one mesh per mark definition on the lane over
// [sStart, sEnd], each paired with its colour. Marks that produce no
// geometry (type none, empty ranges) are omitted.
func (b *RoadMarkMeshBuilder) BuildLaneRoadMarks(road *odr.Road, section *odr.LaneSection, lane *odr.Lane, sStart, sEnd float64) []RoadMarkMesh {
	if len(road.PlanView) == 0 {
		monitoring.Logf("mesh: road %q has empty planView, emitting no road marks", road.ID)
		return nil
	}

	var items []RoadMarkMesh
	for i := range lane.RoadMarks {
		mark := &lane.RoadMarks[i]
		if mark.Type == odr.RoadMarkNone {
			continue
		}

		// A mark's range runs to the next mark's offset or the section end.
		markSStart := sStart + mark.SOffset
		markSEnd := sEnd
		if i+1 < len(lane.RoadMarks) {
			markSEnd = sStart + lane.RoadMarks[i+1].SOffset
		}
		if markSEnd <= markSStart {
			continue
		}

		// Dispatch priority: explicit, then type detail, then the default
		// pattern for the mark type.
		var m geom.Mesh
		switch {
		case mark.Explicit != nil:
			m = b.buildExplicitLines(road, section, lane, mark, markSStart)
		case mark.TypeDetail != nil:
			m = b.buildTypeLines(road, section, lane, mark, markSStart, markSEnd)
		default:
			m = b.buildDefaultLines(road, section, lane, mark, markSStart, markSEnd)
		}

		if !m.IsEmpty() {
			items = append(items, RoadMarkMesh{Mesh: m, Color: mark.Color})
		}
	}
	return items
}

// buildTypeLines renders a <type> block: each line repeats its
// length/space pattern along the mark range; non-positive length or space
// renders solid.
func (b *RoadMarkMeshBuilder) buildTypeLines(road *odr.Road, section *odr.LaneSection, lane *odr.Lane, mark *odr.RoadMark, markSStart, markSEnd float64) geom.Mesh {
	defaultWidth := DefaultLineWidth
	if mark.Width != nil {
		defaultWidth = *mark.Width
	}

	var out geom.Mesh
	for _, line := range mark.TypeDetail.Lines {
		lineWidth := defaultWidth
		if line.Width != nil {
			lineWidth = *line.Width
		}

		if line.Space <= 0 || line.Length <= 0 {
			start := markSStart + line.SOffset
			if start < markSEnd {
				out.Merge(b.buildLineSegment(road, section, lane, mark, start, markSEnd, line.TOffset, lineWidth))
			}
			continue
		}

		patternLength := line.Length + line.Space
		for s := markSStart + line.SOffset; s < markSEnd; s += patternLength {
			segmentEnd := math.Min(s+line.Length, markSEnd)
			if segmentEnd > s {
				out.Merge(b.buildLineSegment(road, section, lane, mark, s, segmentEnd, line.TOffset, lineWidth))
			}
		}
	}
	return out
}

// buildExplicitLines renders an <explicit> block: one literal segment per
// line, no repetition.
func (b *RoadMarkMeshBuilder) buildExplicitLines(road *odr.Road, section *odr.LaneSection, lane *odr.Lane, mark *odr.RoadMark, markSStart float64) geom.Mesh {
	defaultWidth := DefaultLineWidth
	if mark.Width != nil {
		defaultWidth = *mark.Width
	}

	var out geom.Mesh
	for _, line := range mark.Explicit.Lines {
		start := markSStart + line.SOffset
		end := start + line.Length
		lineWidth := defaultWidth
		if line.Width != nil {
			lineWidth = *line.Width
		}
		out.Merge(b.buildLineSegment(road, section, lane, mark, start, end, line.TOffset, lineWidth))
	}
	return out
}

// buildDefaultLines renders the default pattern for the mark type.
func (b *RoadMarkMeshBuilder) buildDefaultLines(road *odr.Road, section *odr.LaneSection, lane *odr.Lane, mark *odr.RoadMark, markSStart, markSEnd float64) geom.Mesh {
	lines := defaultLinesFor(mark)
	if len(lines) == 0 {
		return geom.Mesh{}
	}

	var out geom.Mesh
	for _, line := range lines {
		if line.space <= 0 {
			out.Merge(b.buildLineSegment(road, section, lane, mark, markSStart, markSEnd, line.tOffset, line.width))
			continue
		}

		patternLength := line.length + line.space
		for s := markSStart; s < markSEnd; s += patternLength {
			segmentEnd := math.Min(s+line.length, markSEnd)
			if segmentEnd > s {
				out.Merge(b.buildLineSegment(road, section, lane, mark, s, segmentEnd, line.tOffset, line.width))
			}
		}
	}
	return out
}

// defaultLinesFor expands a mark type into its default line patterns.
// Double-line variants split the mark width into two half-width lines a
// fixed gap apart; types that paint nothing return no lines.
func defaultLinesFor(mark *odr.RoadMark) []defaultLine {
	width := DefaultLineWidth
	if mark.Width != nil {
		width = *mark.Width
	}
	halfWidth := width / 2
	gap := DefaultDoubleLineGap

	solid := func(tOffset, w float64) defaultLine {
		return defaultLine{tOffset: tOffset, length: math.Inf(1), space: 0, width: w}
	}
	broken := func(tOffset, w float64) defaultLine {
		return defaultLine{tOffset: tOffset, length: DefaultBrokenLength, space: DefaultBrokenSpace, width: w}
	}

	switch mark.Type {
	case odr.RoadMarkSolid, odr.RoadMarkEdge:
		return []defaultLine{solid(0, width)}
	case odr.RoadMarkBroken:
		return []defaultLine{broken(0, width)}
	case odr.RoadMarkSolidSolid:
		return []defaultLine{
			solid(-(halfWidth + gap/2), halfWidth),
			solid(halfWidth+gap/2, halfWidth),
		}
	case odr.RoadMarkBrokenBroken:
		return []defaultLine{
			broken(-(halfWidth + gap/2), halfWidth),
			broken(halfWidth+gap/2, halfWidth),
		}
	case odr.RoadMarkSolidBroken:
		return []defaultLine{
			solid(-(halfWidth + gap/2), halfWidth),
			broken(halfWidth+gap/2, halfWidth),
		}
	case odr.RoadMarkBrokenSolid:
		return []defaultLine{
			broken(-(halfWidth + gap/2), halfWidth),
			solid(halfWidth+gap/2, halfWidth),
		}
	case odr.RoadMarkBottsDots:
		return []defaultLine{{tOffset: 0, length: 0.1, space: 0.3, width: 0.1}}
	default:
		// none, grass, curb, custom: nothing painted.
		return nil
	}
}

// buildLineSegment samples one painted segment along [sStart, sEnd] and
// builds its strip mesh. The line centre sits on the lane's outer border
// shifted by sway and tOffset along the signed normal, raised above the
// surface by the mark height.
func (b *RoadMarkMeshBuilder) buildLineSegment(road *odr.Road, section *odr.LaneSection, lane *odr.Lane, mark *odr.RoadMark, sStart, sEnd, tOffset, width float64) geom.Mesh {
	height := DefaultLineHeight
	if mark.Height != nil {
		height = *mark.Height
	}
	halfWidth := width / 2

	length := sEnd - sStart
	numSamples := sampleCount(length, b.SampleStep)

	// Left lanes and the centre lane offset leftward, right lanes rightward.
	sign := 1.0
	if lane.ID < 0 {
		sign = -1.0
	}

	vertices := make([]float32, 0, numSamples*6)
	for i := 0; i < numSamples; i++ {
		frac := float64(i) / float64(numSamples-1)
		s := sStart + frac*length

		// Sway runs in ds from the mark's own start.
		ds := s - (section.S + mark.SOffset)
		sway := odr.EvalSways(mark.Sways, ds)

		tBase := b.laneOuterT(road, section, lane, s)
		tCenter := tBase + sign*(sway+tOffset)

		// Larger-t edge first, matching the lane surface winding so flat
		// marks also get +Y normals.
		left := road.SthToXyz(s, tCenter+halfWidth, height)
		right := road.SthToXyz(s, tCenter-halfWidth, height)

		vertices = appendVertex(vertices, left, b.Center)
		vertices = appendVertex(vertices, right, b.Center)
	}

	indices := geom.StripIndices(numSamples)
	normals := geom.ComputeNormals(vertices, indices)
	return geom.Mesh{Vertices: vertices, Indices: indices, Normals: normals}
}

// laneOuterT returns the lateral position of the lane border the mark
// follows. For the centre lane the OpenDRIVE standard leaves this open; the
// road-level lane offset is used.
func (b *RoadMarkMeshBuilder) laneOuterT(road *odr.Road, section *odr.LaneSection, lane *odr.Lane, s float64) float64 {
	laneOffset := road.LaneOffsetAt(s)
	if lane.ID == 0 {
		return laneOffset
	}
	return section.OuterOffset(lane.ID, s) + laneOffset
}
