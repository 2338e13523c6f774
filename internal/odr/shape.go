package odr

import "sort"

// Shape is one lateral-profile shape entry. Entries are keyed by station S
// and lateral anchor T; the cubic evaluates in dt = t - T and yields the
// surface height offset at that lateral position. Several entries may share
// one station to describe a full cross-section (crown, gutters).
type Shape struct {
	S float64
	T float64
	A float64
	B float64
	C float64
	D float64
}

// Eval evaluates the shape cubic at lateral position tQuery.
func (sh *Shape) Eval(tQuery float64) float64 {
	dt := tQuery - sh.T
	return sh.A + sh.B*dt + sh.C*dt*dt + sh.D*dt*dt*dt
}

// EvalShapes returns the surface height offset z(s, t). The entry group with
// the largest station <= s applies. Within the group, the two entries
// bracketing tQuery are each evaluated and linearly interpolated by lateral
// position; outside the covered range the nearest entry's polynomial is
// used directly. Empty shapes evaluate to 0.
func EvalShapes(shapes []Shape, s, tQuery float64) float64 {
	group := shapeGroupAt(shapes, s)
	if len(group) == 0 {
		return 0
	}
	if len(group) == 1 {
		return group[0].Eval(tQuery)
	}

	sort.Slice(group, func(i, j int) bool { return group[i].T < group[j].T })

	if tQuery <= group[0].T {
		return group[0].Eval(tQuery)
	}
	last := group[len(group)-1]
	if tQuery >= last.T {
		return last.Eval(tQuery)
	}

	for i := 0; i+1 < len(group); i++ {
		lo, hi := group[i], group[i+1]
		if tQuery < lo.T || tQuery > hi.T {
			continue
		}
		span := hi.T - lo.T
		if span <= 0 {
			return lo.Eval(tQuery)
		}
		frac := (tQuery - lo.T) / span
		return (1-frac)*lo.Eval(tQuery) + frac*hi.Eval(tQuery)
	}
	return last.Eval(tQuery)
}

// shapeGroupAt collects the entries sharing the largest station <= s,
// falling back to the earliest station when none precedes s.
func shapeGroupAt(shapes []Shape, s float64) []Shape {
	if len(shapes) == 0 {
		return nil
	}

	bestS := shapes[0].S
	found := false
	for i := range shapes {
		if shapes[i].S <= s && (!found || shapes[i].S > bestS) {
			bestS = shapes[i].S
			found = true
		}
	}
	if !found {
		// No entry precedes s: use the earliest station group.
		bestS = shapes[0].S
		for i := range shapes {
			if shapes[i].S < bestS {
				bestS = shapes[i].S
			}
		}
	}

	var group []Shape
	for i := range shapes {
		if shapes[i].S == bestS {
			group = append(group, shapes[i])
		}
	}
	return group
}
