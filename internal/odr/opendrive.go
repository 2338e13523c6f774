// Package odr models ASAM OpenDRIVE documents and evaluates their nested
// road coordinate system. The document tree is built once by the parser and
// treated as immutable; evaluator methods and the mesh builders only borrow
// it.
package odr

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Map is a parsed OpenDRIVE document: the header, the ordered roads and
// junctions, plus a precomputed map centre.
//
// The centre is the bounding-box midpoint of each road's first plan-view
// origin. Source coordinates are often UTM eastings/northings of 1e6
// magnitude, which 32-bit vertex floats cannot carry; evaluation stays in
// float64 and only emitted vertices subtract the centre.
type Map struct {
	Header    Header
	Roads     []Road
	Junctions []Junction

	center r3.Vec
}

// NewMap assembles a map and computes its centre.
func NewMap(header Header, roads []Road, junctions []Junction) *Map {
	return &Map{
		Header:    header,
		Roads:     roads,
		Junctions: junctions,
		center:    computeCenter(roads),
	}
}

// Center returns the map centre in OpenDRIVE coordinates (z always 0).
func (m *Map) Center() r3.Vec { return m.center }

// RoadByID returns the road with the given ID, or nil.
func (m *Map) RoadByID(id string) *Road {
	for i := range m.Roads {
		if m.Roads[i].ID == id {
			return &m.Roads[i]
		}
	}
	return nil
}

func computeCenter(roads []Road) r3.Vec {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)

	for i := range roads {
		if len(roads[i].PlanView) == 0 {
			continue
		}
		g := &roads[i].PlanView[0]
		minX = math.Min(minX, g.X)
		maxX = math.Max(maxX, g.X)
		minY = math.Min(minY, g.Y)
		maxY = math.Max(maxY, g.Y)
	}

	if math.IsInf(minX, 1) {
		return r3.Vec{}
	}
	return r3.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
}
