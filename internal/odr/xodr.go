package odr

import (
	"encoding/xml"
	"fmt"
)

// ParseXodr decodes an OpenDRIVE XML document into an immutable Map.
// Malformed XML or unparsable numerics surface as wrapped errors; elements
// the model does not carry are skipped.
func ParseXodr(data []byte) (*Map, error) {
	var doc xmlOpenDrive
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse OpenDRIVE document: %w", err)
	}

	header := convertHeader(doc.Header)

	roads := make([]Road, 0, len(doc.Roads))
	for i := range doc.Roads {
		road, err := convertRoad(&doc.Roads[i])
		if err != nil {
			return nil, fmt.Errorf("road %q: %w", doc.Roads[i].ID, err)
		}
		roads = append(roads, road)
	}

	junctions := make([]Junction, 0, len(doc.Junctions))
	for i := range doc.Junctions {
		junctions = append(junctions, convertJunction(&doc.Junctions[i]))
	}

	return NewMap(header, roads, junctions), nil
}

// XML document shapes. These mirror the OpenDRIVE element layout and exist
// only during decoding; the model structs above are what callers see.

type xmlOpenDrive struct {
	XMLName   xml.Name      `xml:"OpenDRIVE"`
	Header    xmlHeader     `xml:"header"`
	Roads     []xmlRoad     `xml:"road"`
	Junctions []xmlJunction `xml:"junction"`
}

type xmlHeader struct {
	RevMajor     int     `xml:"revMajor,attr"`
	RevMinor     int     `xml:"revMinor,attr"`
	Name         string  `xml:"name,attr"`
	Version      string  `xml:"version,attr"`
	Date         string  `xml:"date,attr"`
	Vendor       string  `xml:"vendor,attr"`
	North        float64 `xml:"north,attr"`
	South        float64 `xml:"south,attr"`
	East         float64 `xml:"east,attr"`
	West         float64 `xml:"west,attr"`
	GeoReference *struct {
		Value string `xml:",chardata"`
	} `xml:"geoReference"`
	Offset *struct {
		X   float64 `xml:"x,attr"`
		Y   float64 `xml:"y,attr"`
		Z   float64 `xml:"z,attr"`
		Hdg float64 `xml:"hdg,attr"`
	} `xml:"offset"`
}

type xmlRoad struct {
	ID       string  `xml:"id,attr"`
	Name     string  `xml:"name,attr"`
	Junction string  `xml:"junction,attr"`
	Length   float64 `xml:"length,attr"`
	Rule     string  `xml:"rule,attr"`

	Link *struct {
		Predecessor *xmlRoadLink `xml:"predecessor"`
		Successor   *xmlRoadLink `xml:"successor"`
	} `xml:"link"`

	Types []struct {
		S       float64 `xml:"s,attr"`
		Type    string  `xml:"type,attr"`
		Country string  `xml:"country,attr"`
		Speed   *struct {
			Max  float64 `xml:"max,attr"`
			Unit string  `xml:"unit,attr"`
		} `xml:"speed"`
	} `xml:"type"`

	PlanView struct {
		Geometries []xmlGeometry `xml:"geometry"`
	} `xml:"planView"`

	ElevationProfile struct {
		Elevations []xmlPoly3 `xml:"elevation"`
	} `xml:"elevationProfile"`

	LateralProfile struct {
		Superelevations []xmlPoly3 `xml:"superelevation"`
		Shapes          []struct {
			S float64 `xml:"s,attr"`
			T float64 `xml:"t,attr"`
			A float64 `xml:"a,attr"`
			B float64 `xml:"b,attr"`
			C float64 `xml:"c,attr"`
			D float64 `xml:"d,attr"`
		} `xml:"shape"`
	} `xml:"lateralProfile"`

	Lanes struct {
		LaneOffsets []xmlPoly3       `xml:"laneOffset"`
		Sections    []xmlLaneSection `xml:"laneSection"`
	} `xml:"lanes"`
}

type xmlRoadLink struct {
	ElementType  string `xml:"elementType,attr"`
	ElementID    string `xml:"elementId,attr"`
	ContactPoint string `xml:"contactPoint,attr"`
	ElementDir   string `xml:"elementDir,attr"`
}

type xmlGeometry struct {
	S      float64 `xml:"s,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Hdg    float64 `xml:"hdg,attr"`
	Length float64 `xml:"length,attr"`

	Line *struct{} `xml:"line"`
	Arc  *struct {
		Curvature float64 `xml:"curvature,attr"`
	} `xml:"arc"`
	Spiral *struct {
		CurvStart float64 `xml:"curvStart,attr"`
		CurvEnd   float64 `xml:"curvEnd,attr"`
	} `xml:"spiral"`
	ParamPoly3 *struct {
		AU     float64 `xml:"aU,attr"`
		BU     float64 `xml:"bU,attr"`
		CU     float64 `xml:"cU,attr"`
		DU     float64 `xml:"dU,attr"`
		AV     float64 `xml:"aV,attr"`
		BV     float64 `xml:"bV,attr"`
		CV     float64 `xml:"cV,attr"`
		DV     float64 `xml:"dV,attr"`
		PRange string  `xml:"pRange,attr"`
	} `xml:"paramPoly3"`
}

type xmlPoly3 struct {
	S float64 `xml:"s,attr"`
	A float64 `xml:"a,attr"`
	B float64 `xml:"b,attr"`
	C float64 `xml:"c,attr"`
	D float64 `xml:"d,attr"`
}

type xmlLaneSection struct {
	S          float64 `xml:"s,attr"`
	SingleSide string  `xml:"singleSide,attr"`

	Left *struct {
		Lanes []xmlLane `xml:"lane"`
	} `xml:"left"`
	Center struct {
		Lanes []xmlLane `xml:"lane"`
	} `xml:"center"`
	Right *struct {
		Lanes []xmlLane `xml:"lane"`
	} `xml:"right"`
}

type xmlLane struct {
	ID        int    `xml:"id,attr"`
	Type      string `xml:"type,attr"`
	Level     string `xml:"level,attr"`
	RoadWorks string `xml:"roadWorks,attr"`

	Link *struct {
		Predecessor *struct {
			ID int `xml:"id,attr"`
		} `xml:"predecessor"`
		Successor *struct {
			ID int `xml:"id,attr"`
		} `xml:"successor"`
	} `xml:"link"`

	Widths []struct {
		SOffset float64 `xml:"sOffset,attr"`
		A       float64 `xml:"a,attr"`
		B       float64 `xml:"b,attr"`
		C       float64 `xml:"c,attr"`
		D       float64 `xml:"d,attr"`
	} `xml:"width"`

	Borders []struct {
		SOffset float64 `xml:"sOffset,attr"`
		A       float64 `xml:"a,attr"`
		B       float64 `xml:"b,attr"`
		C       float64 `xml:"c,attr"`
		D       float64 `xml:"d,attr"`
	} `xml:"border"`

	Heights []struct {
		SOffset float64 `xml:"sOffset,attr"`
		Inner   float64 `xml:"inner,attr"`
		Outer   float64 `xml:"outer,attr"`
	} `xml:"height"`

	Speeds []struct {
		SOffset float64 `xml:"sOffset,attr"`
		Max     float64 `xml:"max,attr"`
		Unit    string  `xml:"unit,attr"`
	} `xml:"speed"`

	Accesses []struct {
		SOffset     float64 `xml:"sOffset,attr"`
		Rule        string  `xml:"rule,attr"`
		Restriction string  `xml:"restriction,attr"`
	} `xml:"access"`

	Rules []struct {
		SOffset float64 `xml:"sOffset,attr"`
		Value   string  `xml:"value,attr"`
	} `xml:"rule"`

	Materials []struct {
		SOffset  float64 `xml:"sOffset,attr"`
		Surface  string  `xml:"surface,attr"`
		Friction float64 `xml:"friction,attr"`
	} `xml:"material"`

	RoadMarks []xmlRoadMark `xml:"roadMark"`
}

type xmlRoadMark struct {
	SOffset    float64  `xml:"sOffset,attr"`
	Type       string   `xml:"type,attr"`
	Color      string   `xml:"color,attr"`
	Weight     string   `xml:"weight,attr"`
	LaneChange string   `xml:"laneChange,attr"`
	Material   string   `xml:"material,attr"`
	Width      *float64 `xml:"width,attr"`
	Height     *float64 `xml:"height,attr"`

	TypeDetail *struct {
		Name  string  `xml:"name,attr"`
		Width float64 `xml:"width,attr"`
		Lines []struct {
			SOffset float64  `xml:"sOffset,attr"`
			Length  float64  `xml:"length,attr"`
			Space   float64  `xml:"space,attr"`
			TOffset float64  `xml:"tOffset,attr"`
			Color   string   `xml:"color,attr"`
			Rule    string   `xml:"rule,attr"`
			Width   *float64 `xml:"width,attr"`
		} `xml:"line"`
	} `xml:"type"`

	Explicit *struct {
		Lines []struct {
			SOffset float64  `xml:"sOffset,attr"`
			Length  float64  `xml:"length,attr"`
			TOffset float64  `xml:"tOffset,attr"`
			Rule    string   `xml:"rule,attr"`
			Width   *float64 `xml:"width,attr"`
		} `xml:"line"`
	} `xml:"explicit"`

	Sways []struct {
		DS float64 `xml:"ds,attr"`
		A  float64 `xml:"a,attr"`
		B  float64 `xml:"b,attr"`
		C  float64 `xml:"c,attr"`
		D  float64 `xml:"d,attr"`
	} `xml:"sway"`
}

type xmlJunction struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`

	Connections []struct {
		ID             string `xml:"id,attr"`
		IncomingRoad   string `xml:"incomingRoad,attr"`
		ConnectingRoad string `xml:"connectingRoad,attr"`
		ContactPoint   string `xml:"contactPoint,attr"`
		LaneLinks      []struct {
			From int `xml:"from,attr"`
			To   int `xml:"to,attr"`
		} `xml:"laneLink"`
	} `xml:"connection"`

	Priorities []struct {
		High string `xml:"high,attr"`
		Low  string `xml:"low,attr"`
	} `xml:"priority"`

	Controllers []struct {
		ID       string `xml:"id,attr"`
		Type     string `xml:"type,attr"`
		Sequence int    `xml:"sequence,attr"`
	} `xml:"controller"`
}

func convertHeader(h xmlHeader) Header {
	out := Header{
		RevMajor: h.RevMajor,
		RevMinor: h.RevMinor,
		Name:     h.Name,
		Version:  h.Version,
		Date:     h.Date,
		Vendor:   h.Vendor,
		North:    h.North,
		South:    h.South,
		East:     h.East,
		West:     h.West,
	}
	if h.GeoReference != nil {
		out.GeoReference = h.GeoReference.Value
	}
	if h.Offset != nil {
		out.Offset = &Offset{X: h.Offset.X, Y: h.Offset.Y, Z: h.Offset.Z, Hdg: h.Offset.Hdg}
	}
	return out
}

func convertRoad(xr *xmlRoad) (Road, error) {
	road := Road{
		ID:       xr.ID,
		Name:     xr.Name,
		Junction: xr.Junction,
		Length:   xr.Length,
		Rule:     ParseTrafficRule(xr.Rule),
	}
	if road.Junction == "" {
		road.Junction = "-1"
	}

	if xr.Link != nil {
		road.Predecessor = convertRoadLink(xr.Link.Predecessor)
		road.Successor = convertRoadLink(xr.Link.Successor)
	}

	for _, t := range xr.Types {
		rt := RoadType{S: t.S, Type: t.Type, Country: t.Country, SpeedMax: -1}
		if t.Speed != nil {
			rt.SpeedMax = t.Speed.Max
			rt.SpeedUnit = ParseSpeedUnit(t.Speed.Unit)
		}
		road.Types = append(road.Types, rt)
	}

	for i := range xr.PlanView.Geometries {
		g, err := convertGeometry(&xr.PlanView.Geometries[i])
		if err != nil {
			return Road{}, err
		}
		road.PlanView = append(road.PlanView, g)
	}

	for _, e := range xr.ElevationProfile.Elevations {
		road.Elevations = append(road.Elevations, Elevation{S: e.S, A: e.A, B: e.B, C: e.C, D: e.D})
	}
	for _, e := range xr.LateralProfile.Superelevations {
		road.Superelevations = append(road.Superelevations, Superelevation{S: e.S, A: e.A, B: e.B, C: e.C, D: e.D})
	}
	for _, sh := range xr.LateralProfile.Shapes {
		road.Shapes = append(road.Shapes, Shape{S: sh.S, T: sh.T, A: sh.A, B: sh.B, C: sh.C, D: sh.D})
	}
	for _, o := range xr.Lanes.LaneOffsets {
		road.LaneOffsets = append(road.LaneOffsets, LaneOffset{S: o.S, A: o.A, B: o.B, C: o.C, D: o.D})
	}

	for i := range xr.Lanes.Sections {
		sec, err := convertLaneSection(&xr.Lanes.Sections[i])
		if err != nil {
			return Road{}, fmt.Errorf("laneSection at s=%v: %w", xr.Lanes.Sections[i].S, err)
		}
		road.Sections = append(road.Sections, sec)
	}
	if len(road.Sections) == 0 {
		return Road{}, fmt.Errorf("road has no lane sections")
	}

	return road, nil
}

func convertRoadLink(xl *xmlRoadLink) *RoadLink {
	if xl == nil {
		return nil
	}
	return &RoadLink{
		ElementType:  ParseLinkElementType(xl.ElementType),
		ElementID:    xl.ElementID,
		ContactPoint: ParseContactPoint(xl.ContactPoint),
		ElementDir:   ParseElementDir(xl.ElementDir),
	}
}

func convertGeometry(xg *xmlGeometry) (Geometry, error) {
	g := Geometry{S: xg.S, X: xg.X, Y: xg.Y, Hdg: xg.Hdg, Length: xg.Length}
	switch {
	case xg.Arc != nil:
		g.Kind = GeometryArc
		g.Curvature = xg.Arc.Curvature
	case xg.Spiral != nil:
		g.Kind = GeometrySpiral
		g.CurvStart = xg.Spiral.CurvStart
		g.CurvEnd = xg.Spiral.CurvEnd
	case xg.ParamPoly3 != nil:
		g.Kind = GeometryParamPoly3
		p := xg.ParamPoly3
		g.AU, g.BU, g.CU, g.DU = p.AU, p.BU, p.CU, p.DU
		g.AV, g.BV, g.CV, g.DV = p.AV, p.BV, p.CV, p.DV
		g.PRange = ParsePRange(p.PRange)
	case xg.Line != nil:
		g.Kind = GeometryLine
	default:
		return Geometry{}, fmt.Errorf("geometry at s=%v has no variant child", xg.S)
	}
	return g, nil
}

func convertLaneSection(xs *xmlLaneSection) (LaneSection, error) {
	sec := LaneSection{
		S:          xs.S,
		SingleSide: xs.SingleSide == "true",
	}

	if xs.Left != nil {
		for i := range xs.Left.Lanes {
			sec.Left = append(sec.Left, convertLane(&xs.Left.Lanes[i]))
		}
	}
	if xs.Right != nil {
		for i := range xs.Right.Lanes {
			sec.Right = append(sec.Right, convertLane(&xs.Right.Lanes[i]))
		}
	}
	if len(xs.Center.Lanes) == 0 {
		return LaneSection{}, fmt.Errorf("missing center lane")
	}
	sec.Center = convertLane(&xs.Center.Lanes[0])

	return sec, nil
}

func convertLane(xl *xmlLane) Lane {
	lane := Lane{
		ID:        xl.ID,
		Type:      xl.Type,
		Level:     xl.Level == "true",
		RoadWorks: xl.RoadWorks == "true",
	}

	if xl.Link != nil {
		if xl.Link.Predecessor != nil {
			id := xl.Link.Predecessor.ID
			lane.Link.Predecessor = &id
		}
		if xl.Link.Successor != nil {
			id := xl.Link.Successor.ID
			lane.Link.Successor = &id
		}
	}

	for _, w := range xl.Widths {
		lane.Width = append(lane.Width, LaneWidth{SOffset: w.SOffset, A: w.A, B: w.B, C: w.C, D: w.D})
	}
	for _, b := range xl.Borders {
		lane.Border = append(lane.Border, LaneBorder{SOffset: b.SOffset, A: b.A, B: b.B, C: b.C, D: b.D})
	}
	for _, h := range xl.Heights {
		lane.Height = append(lane.Height, LaneHeight{SOffset: h.SOffset, Inner: h.Inner, Outer: h.Outer})
	}
	for _, sp := range xl.Speeds {
		lane.Speed = append(lane.Speed, LaneSpeed{SOffset: sp.SOffset, Max: sp.Max, Unit: ParseSpeedUnit(sp.Unit)})
	}
	for _, a := range xl.Accesses {
		lane.Access = append(lane.Access, LaneAccess{SOffset: a.SOffset, Rule: a.Rule, Restriction: a.Restriction})
	}
	for _, rl := range xl.Rules {
		lane.Rule = append(lane.Rule, LaneRule{SOffset: rl.SOffset, Value: rl.Value})
	}
	for _, m := range xl.Materials {
		lane.Material = append(lane.Material, LaneMaterial{SOffset: m.SOffset, Surface: m.Surface, Friction: m.Friction})
	}
	for i := range xl.RoadMarks {
		lane.RoadMarks = append(lane.RoadMarks, convertRoadMark(&xl.RoadMarks[i]))
	}

	return lane
}

func convertRoadMark(xm *xmlRoadMark) RoadMark {
	mark := RoadMark{
		SOffset:    xm.SOffset,
		Type:       ParseRoadMarkType(xm.Type),
		Color:      ParseRoadMarkColor(xm.Color),
		Weight:     ParseRoadMarkWeight(xm.Weight),
		LaneChange: ParseRoadMarkLaneChange(xm.LaneChange),
		Material:   xm.Material,
		Width:      xm.Width,
		Height:     xm.Height,
	}

	if xm.TypeDetail != nil {
		detail := &RoadMarkTypeDetail{
			Name:  xm.TypeDetail.Name,
			Width: xm.TypeDetail.Width,
		}
		for _, l := range xm.TypeDetail.Lines {
			line := RoadMarkTypeLine{
				SOffset: l.SOffset,
				Length:  l.Length,
				Space:   l.Space,
				TOffset: l.TOffset,
				Rule:    ParseRoadMarkRule(l.Rule),
				Width:   l.Width,
			}
			if l.Color != "" {
				c := ParseRoadMarkColor(l.Color)
				line.Color = &c
			}
			detail.Lines = append(detail.Lines, line)
		}
		mark.TypeDetail = detail
	}

	if xm.Explicit != nil {
		explicit := &RoadMarkExplicit{}
		for _, l := range xm.Explicit.Lines {
			explicit.Lines = append(explicit.Lines, RoadMarkExplicitLine{
				SOffset: l.SOffset,
				Length:  l.Length,
				TOffset: l.TOffset,
				Rule:    ParseRoadMarkRule(l.Rule),
				Width:   l.Width,
			})
		}
		mark.Explicit = explicit
	}

	for _, sw := range xm.Sways {
		mark.Sways = append(mark.Sways, RoadMarkSway{DS: sw.DS, A: sw.A, B: sw.B, C: sw.C, D: sw.D})
	}

	return mark
}

func convertJunction(xj *xmlJunction) Junction {
	j := Junction{
		ID:   xj.ID,
		Name: xj.Name,
		Kind: ParseJunctionKind(xj.Type),
	}
	for _, c := range xj.Connections {
		conn := JunctionConnection{
			ID:             c.ID,
			IncomingRoad:   c.IncomingRoad,
			ConnectingRoad: c.ConnectingRoad,
			ContactPoint:   ParseContactPoint(c.ContactPoint),
		}
		for _, ll := range c.LaneLinks {
			conn.LaneLinks = append(conn.LaneLinks, JunctionLaneLink{From: ll.From, To: ll.To})
		}
		j.Connections = append(j.Connections, conn)
	}
	for _, p := range xj.Priorities {
		j.Priorities = append(j.Priorities, JunctionPriority{High: p.High, Low: p.Low})
	}
	for _, c := range xj.Controllers {
		j.Controllers = append(j.Controllers, JunctionController{ID: c.ID, Type: c.Type, Sequence: c.Sequence})
	}
	return j
}
