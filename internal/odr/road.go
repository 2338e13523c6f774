package odr

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// RoadLink points at the element continuing the road at one end.
type RoadLink struct {
	ElementType LinkElementType
	ElementID   string
	ContactPoint ContactPoint
	ElementDir  ElementDir
}

// RoadType is one <type> record of a road, optionally carrying a speed limit.
type RoadType struct {
	S       float64
	Type    string
	Country string

	// SpeedMax < 0 means no limit recorded.
	SpeedMax  float64
	SpeedUnit SpeedUnit
}

// Road is one OpenDRIVE road: a reference line (PlanView) with layered
// longitudinal profiles and a sequence of lane sections. The struct is
// treated as immutable after parsing; the evaluator methods never mutate it.
type Road struct {
	ID       string
	Name     string
	Junction string
	Length   float64
	Rule     TrafficRule

	Predecessor *RoadLink
	Successor   *RoadLink

	Types []RoadType

	PlanView        []Geometry
	Elevations      []Elevation
	Superelevations []Superelevation
	Shapes          []Shape
	LaneOffsets     []LaneOffset
	Sections        []LaneSection
}

// SectionRange returns the valid station range of section idx: from the
// section's own S to the next section's S, or the road length for the last
// section.
func (r *Road) SectionRange(idx int) (sStart, sEnd float64) {
	sStart = r.Sections[idx].S
	if idx+1 < len(r.Sections) {
		return sStart, r.Sections[idx+1].S
	}
	return sStart, r.Length
}

// EvalReferenceLine returns the plan-view pose at station s. The segment
// with the largest origin <= s applies, falling back to the first segment.
// A road without plan-view geometry yields the zero pose; callers that need
// to diagnose this check len(PlanView) themselves.
func (r *Road) EvalReferenceLine(s float64) PosHdg {
	if len(r.PlanView) == 0 {
		return PosHdg{}
	}
	geom := &r.PlanView[0]
	for i := range r.PlanView {
		if r.PlanView[i].S <= s {
			geom = &r.PlanView[i]
		}
	}
	return geom.EvalAt(s - geom.S)
}

// ElevationAt returns the base elevation z(s).
func (r *Road) ElevationAt(s float64) float64 {
	return EvalPoly3s(r.Elevations, s)
}

// SuperelevationAt returns the roll angle (radians) at station s.
func (r *Road) SuperelevationAt(s float64) float64 {
	return EvalPoly3s(r.Superelevations, s)
}

// LaneOffsetAt returns the lateral shift of the lane reference at station s.
func (r *Road) LaneOffsetAt(s float64) float64 {
	return EvalPoly3s(r.LaneOffsets, s)
}

// ShapeAt returns the cross-section surface height offset z(s, t).
func (r *Road) ShapeAt(s, t float64) float64 {
	return EvalShapes(r.Shapes, s, t)
}

// SthToXyz converts road coordinates (s, t, h) to Cartesian (x, y, z).
// Positive t is to the left of the travel direction; the lateral offset is
// applied along the left-hand normal (heading + pi/2), and the height
// composes base elevation, superelevation roll, cross-section shape and h.
func (r *Road) SthToXyz(s, t, h float64) r3.Vec {
	pose := r.EvalReferenceLine(s)

	baseZ := r.ElevationAt(s)
	roll := r.SuperelevationAt(s)
	shapeZ := r.ShapeAt(s, t)

	normal := pose.Hdg + math.Pi/2
	return r3.Vec{
		X: pose.X + t*math.Cos(normal),
		Y: pose.Y + t*math.Sin(normal),
		Z: baseZ + t*math.Tan(roll) + shapeZ + h,
	}
}

// Iteration limits for the inverse mapping.
const (
	inverseNewtonMaxIter = 50
	inverseNewtonTol     = 1e-8
)

// XyzToSth projects a Cartesian point back to road coordinates (s, t, h) by
// closest-point projection onto the reference line: a coarse scan seeds a
// Newton refinement of s, then t and h are resolved against the left-hand
// normal. The cross-section shape is intentionally ignored here; callers
// needing that precision iterate.
func (r *Road) XyzToSth(x, y, z float64) (s, t, h float64) {
	if len(r.PlanView) == 0 || r.Length <= 0 {
		return 0, 0, 0
	}

	// Coarse scan for the initial guess.
	samples := int(math.Max(100, r.Length/5))
	bestS := 0.0
	bestDist := math.Inf(1)
	for i := 0; i <= samples; i++ {
		cand := r.Length * float64(i) / float64(samples)
		pose := r.EvalReferenceLine(cand)
		dx, dy := x-pose.X, y-pose.Y
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			bestS = cand
		}
	}

	// Newton refinement: advance by the tangential component of the error.
	s = bestS
	var pose PosHdg
	for i := 0; i < inverseNewtonMaxIter; i++ {
		pose = r.EvalReferenceLine(s)
		delta := (x-pose.X)*math.Cos(pose.Hdg) + (y-pose.Y)*math.Sin(pose.Hdg)
		next := math.Min(math.Max(s+delta, 0), r.Length)
		step := next - s
		s = next
		if math.Abs(step) < inverseNewtonTol {
			break
		}
	}

	pose = r.EvalReferenceLine(s)
	normal := pose.Hdg + math.Pi/2
	t = (x-pose.X)*math.Cos(normal) + (y-pose.Y)*math.Sin(normal)
	h = z - r.ElevationAt(s) - t*math.Tan(r.SuperelevationAt(s))
	return s, t, h
}
