package odr

import (
	"math"
)

// GeometryKind discriminates the four plan-view geometry variants. The set
// is closed, so the variants live as a kind tag plus payload fields on one
// struct rather than an interface hierarchy.
type GeometryKind int

const (
	GeometryLine GeometryKind = iota
	GeometryArc
	GeometrySpiral
	GeometryParamPoly3
)

// PRange selects the parameter range convention for paramPoly3 geometry.
type PRange int

const (
	// PRangeNormalized runs the polynomial parameter over [0,1] regardless
	// of arc length. This is the OpenDRIVE default when pRange is absent.
	PRangeNormalized PRange = iota
	PRangeArcLength
)

// ParsePRange maps the OpenDRIVE spelling to a PRange.
func ParsePRange(s string) PRange {
	if s == "arcLength" {
		return PRangeArcLength
	}
	return PRangeNormalized
}

// Geometry is one plan-view segment of a road reference line. The common
// fields position the segment origin in the world frame; the payload fields
// used depend on Kind.
type Geometry struct {
	S      float64
	X      float64
	Y      float64
	Hdg    float64
	Length float64
	Kind   GeometryKind

	// Arc
	Curvature float64

	// Spiral: curvature varies linearly from CurvStart to CurvEnd over Length.
	CurvStart float64
	CurvEnd   float64

	// ParamPoly3
	AU, BU, CU, DU float64
	AV, BV, CV, DV float64
	PRange         PRange
}

// PosHdg is a planar pose: a point on (or offset from) the reference line
// and the tangent heading at that point.
type PosHdg struct {
	X   float64
	Y   float64
	Hdg float64
}

// Curvature below this magnitude is treated as a straight line.
const minArcCurvature = 1e-15

// Simpson sub-interval count for spiral position integration. Tests assert
// positions against this exact scheme, so it is part of the contract.
const spiralSimpsonIntervals = 100

// EvalAt evaluates the segment at arc length ds from its origin and returns
// the world-frame position and tangent heading.
func (g *Geometry) EvalAt(ds float64) PosHdg {
	switch g.Kind {
	case GeometryArc:
		return g.evalArc(ds)
	case GeometrySpiral:
		return g.evalSpiral(ds)
	case GeometryParamPoly3:
		return g.evalParamPoly3(ds)
	default:
		return g.evalLine(ds)
	}
}

// EndPose returns the pose at the far end of the segment.
func (g *Geometry) EndPose() PosHdg {
	return g.EvalAt(g.Length)
}

func (g *Geometry) evalLine(ds float64) PosHdg {
	return PosHdg{
		X:   g.X + ds*math.Cos(g.Hdg),
		Y:   g.Y + ds*math.Sin(g.Hdg),
		Hdg: g.Hdg,
	}
}

func (g *Geometry) evalArc(ds float64) PosHdg {
	k := g.Curvature
	if math.Abs(k) < minArcCurvature {
		return g.evalLine(ds)
	}
	// Circle centre sits one signed radius to the segment's left; positive
	// curvature turns counter-clockwise.
	theta := ds * k
	return PosHdg{
		X:   g.X + (math.Sin(g.Hdg+theta)-math.Sin(g.Hdg))/k,
		Y:   g.Y - (math.Cos(g.Hdg+theta)-math.Cos(g.Hdg))/k,
		Hdg: g.Hdg + theta,
	}
}

// evalSpiral integrates the Euler clothoid position by composite Simpson's
// rule over [0, ds]. The tangent angle in the segment-local frame is
// theta(u) = CurvStart*u + 0.5*rate*u^2 with rate linear in arc length.
func (g *Geometry) evalSpiral(ds float64) PosHdg {
	if g.Length <= 0 || ds == 0 {
		return PosHdg{X: g.X, Y: g.Y, Hdg: g.Hdg}
	}
	rate := (g.CurvEnd - g.CurvStart) / g.Length
	theta := func(u float64) float64 {
		return g.CurvStart*u + 0.5*rate*u*u
	}

	h := ds / float64(spiralSimpsonIntervals)
	var sumCos, sumSin float64
	for i := 0; i <= spiralSimpsonIntervals; i++ {
		u := float64(i) * h
		w := simpsonWeight(i, spiralSimpsonIntervals)
		a := theta(u)
		sumCos += w * math.Cos(a)
		sumSin += w * math.Sin(a)
	}
	localX := sumCos * h / 3.0
	localY := sumSin * h / 3.0

	// Rotate the local integral into the world frame.
	cosH, sinH := math.Cos(g.Hdg), math.Sin(g.Hdg)
	return PosHdg{
		X:   g.X + localX*cosH - localY*sinH,
		Y:   g.Y + localX*sinH + localY*cosH,
		Hdg: g.Hdg + theta(ds),
	}
}

func simpsonWeight(i, n int) float64 {
	switch {
	case i == 0 || i == n:
		return 1
	case i%2 == 1:
		return 4
	default:
		return 2
	}
}

func (g *Geometry) evalParamPoly3(ds float64) PosHdg {
	p := ds
	if g.PRange == PRangeNormalized && g.Length > 0 {
		p = ds / g.Length
	}

	u := g.AU + g.BU*p + g.CU*p*p + g.DU*p*p*p
	v := g.AV + g.BV*p + g.CV*p*p + g.DV*p*p*p

	du := g.BU + 2*g.CU*p + 3*g.DU*p*p
	dv := g.BV + 2*g.CV*p + 3*g.DV*p*p
	localHdg := math.Atan2(dv, du)

	cosH, sinH := math.Cos(g.Hdg), math.Sin(g.Hdg)
	return PosHdg{
		X:   g.X + u*cosH - v*sinH,
		Y:   g.Y + u*sinH + v*cosH,
		Hdg: g.Hdg + localHdg,
	}
}
