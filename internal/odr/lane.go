package odr

// LaneWidth is one width entry of a lane, keyed by SOffset relative to the
// containing lane section. width(ds) = a + b*ds + c*ds^2 + d*ds^3 with
// ds measured from SOffset.
type LaneWidth struct {
	SOffset float64
	A       float64
	B       float64
	C       float64
	D       float64
}

// Eval evaluates the width cubic at local distance ds from the entry start.
func (w *LaneWidth) Eval(ds float64) float64 {
	return w.A + w.B*ds + w.C*ds*ds + w.D*ds*ds*ds
}

// EvalLaneWidths evaluates a lane's width at distance ds from the section
// start. The last entry with SOffset <= ds applies, falling back to the
// first entry. Empty widths evaluate to 0 (the centre lane case).
func EvalLaneWidths(widths []LaneWidth, ds float64) float64 {
	if len(widths) == 0 {
		return 0
	}
	best := &widths[0]
	for i := range widths {
		if widths[i].SOffset <= ds {
			best = &widths[i]
		}
	}
	return best.Eval(ds - best.SOffset)
}

// LaneBorder is one border entry of a lane: the absolute lateral position of
// the outer boundary, an alternative to width accumulation.
type LaneBorder struct {
	SOffset float64
	A       float64
	B       float64
	C       float64
	D       float64
}

// LaneHeight is one height entry of a lane: a small vertical lift of the
// inner and outer boundary, used for raised sidewalks and kerbs.
type LaneHeight struct {
	SOffset float64
	Inner   float64
	Outer   float64
}

// EvalLaneHeights returns the (inner, outer) lift at distance ds from the
// section start. The last entry with SOffset <= ds applies; no entries
// means no lift.
func EvalLaneHeights(heights []LaneHeight, ds float64) (inner, outer float64) {
	var best *LaneHeight
	for i := range heights {
		if heights[i].SOffset <= ds {
			best = &heights[i]
		}
	}
	if best == nil {
		return 0, 0
	}
	return best.Inner, best.Outer
}

// LaneSpeed is one speed entry of a lane.
type LaneSpeed struct {
	SOffset float64
	Max     float64
	Unit    SpeedUnit
}

// LaneAccess is one access restriction entry of a lane.
type LaneAccess struct {
	SOffset     float64
	Rule        string
	Restriction string
}

// LaneRule is one free-text rule entry of a lane.
type LaneRule struct {
	SOffset float64
	Value   string
}

// LaneMaterial is one surface material entry of a lane.
type LaneMaterial struct {
	SOffset  float64
	Surface  string
	Friction float64
}

// LaneLink connects a lane to its predecessor and successor in neighbouring
// sections. Nil means no link.
type LaneLink struct {
	Predecessor *int
	Successor   *int
}

// Lane is one lane of a section. IDs are signed: positive left of the
// reference line, negative right, |id| growing outward; the centre lane has
// id 0 and no width.
type Lane struct {
	ID   int
	Type string

	// Level records the OpenDRIVE level flag (lane kept horizontal, exempt
	// from superelevation). It is parsed only; the evaluator and the mesh
	// builders apply superelevation to every lane regardless of it.
	Level     bool
	RoadWorks bool

	Link      LaneLink
	Width     []LaneWidth
	Border    []LaneBorder
	Height    []LaneHeight
	Speed     []LaneSpeed
	Access    []LaneAccess
	Rule      []LaneRule
	Material  []LaneMaterial
	RoadMarks []RoadMark
}

// WidthAt evaluates the lane width at distance ds from the section start.
func (l *Lane) WidthAt(ds float64) float64 {
	return EvalLaneWidths(l.Width, ds)
}

// HeightAt returns the (inner, outer) boundary lift at distance ds from the
// section start.
func (l *Lane) HeightAt(ds float64) (inner, outer float64) {
	return EvalLaneHeights(l.Height, ds)
}
