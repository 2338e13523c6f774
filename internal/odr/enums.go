package odr

// TrafficRule is the road-level rule attribute (left- or right-hand traffic).
type TrafficRule int

const (
	TrafficRuleRHT TrafficRule = iota
	TrafficRuleLHT
)

// ParseTrafficRule maps the OpenDRIVE spelling to a TrafficRule. Unknown
// values fall back to right-hand traffic, the OpenDRIVE default.
func ParseTrafficRule(s string) TrafficRule {
	if s == "LHT" {
		return TrafficRuleLHT
	}
	return TrafficRuleRHT
}

// ContactPoint identifies which end of a linked element is touched.
type ContactPoint int

const (
	ContactPointStart ContactPoint = iota
	ContactPointEnd
)

// ParseContactPoint maps the OpenDRIVE spelling to a ContactPoint.
func ParseContactPoint(s string) ContactPoint {
	if s == "end" {
		return ContactPointEnd
	}
	return ContactPointStart
}

// ElementDir is the direction attribute on road links ("+" or "-").
type ElementDir int

const (
	ElementDirPlus ElementDir = iota
	ElementDirMinus
)

// ParseElementDir maps the OpenDRIVE spelling to an ElementDir.
func ParseElementDir(s string) ElementDir {
	if s == "-" {
		return ElementDirMinus
	}
	return ElementDirPlus
}

// LinkElementType distinguishes road links from junction links.
type LinkElementType int

const (
	LinkElementRoad LinkElementType = iota
	LinkElementJunction
)

// ParseLinkElementType maps the OpenDRIVE spelling to a LinkElementType.
func ParseLinkElementType(s string) LinkElementType {
	if s == "junction" {
		return LinkElementJunction
	}
	return LinkElementRoad
}

// SpeedUnit is the unit attribute on speed records.
type SpeedUnit int

const (
	SpeedUnitMS SpeedUnit = iota
	SpeedUnitMPH
	SpeedUnitKMH
)

// ParseSpeedUnit maps the OpenDRIVE spelling ("m/s", "mph", "km/h") to a
// SpeedUnit. Unknown values fall back to m/s.
func ParseSpeedUnit(s string) SpeedUnit {
	switch s {
	case "mph":
		return SpeedUnitMPH
	case "km/h":
		return SpeedUnitKMH
	default:
		return SpeedUnitMS
	}
}

// RoadMarkType is the closed set of roadMark type keywords.
type RoadMarkType int

const (
	RoadMarkNone RoadMarkType = iota
	RoadMarkSolid
	RoadMarkBroken
	RoadMarkSolidSolid
	RoadMarkSolidBroken
	RoadMarkBrokenSolid
	RoadMarkBrokenBroken
	RoadMarkBottsDots
	RoadMarkGrass
	RoadMarkCurb
	RoadMarkEdge
	RoadMarkCustom
)

// ParseRoadMarkType maps the OpenDRIVE spelling (including the two-word
// double-line forms like "solid solid") to a RoadMarkType. Unknown values
// fall back to none.
func ParseRoadMarkType(s string) RoadMarkType {
	switch s {
	case "solid":
		return RoadMarkSolid
	case "broken":
		return RoadMarkBroken
	case "solid solid":
		return RoadMarkSolidSolid
	case "solid broken":
		return RoadMarkSolidBroken
	case "broken solid":
		return RoadMarkBrokenSolid
	case "broken broken":
		return RoadMarkBrokenBroken
	case "botts dots":
		return RoadMarkBottsDots
	case "grass":
		return RoadMarkGrass
	case "curb":
		return RoadMarkCurb
	case "edge":
		return RoadMarkEdge
	case "custom":
		return RoadMarkCustom
	default:
		return RoadMarkNone
	}
}

// RoadMarkColor is the colour attribute on road marks.
type RoadMarkColor int

const (
	// RoadMarkColorStandard is equivalent to white.
	RoadMarkColorStandard RoadMarkColor = iota
	RoadMarkColorWhite
	RoadMarkColorYellow
	RoadMarkColorBlue
	RoadMarkColorGreen
	RoadMarkColorRed
	RoadMarkColorOrange
	RoadMarkColorViolet
	RoadMarkColorBlack
)

// ParseRoadMarkColor maps the OpenDRIVE spelling to a RoadMarkColor.
// Unknown values fall back to standard.
func ParseRoadMarkColor(s string) RoadMarkColor {
	switch s {
	case "white":
		return RoadMarkColorWhite
	case "yellow":
		return RoadMarkColorYellow
	case "blue":
		return RoadMarkColorBlue
	case "green":
		return RoadMarkColorGreen
	case "red":
		return RoadMarkColorRed
	case "orange":
		return RoadMarkColorOrange
	case "violet":
		return RoadMarkColorViolet
	case "black":
		return RoadMarkColorBlack
	default:
		return RoadMarkColorStandard
	}
}

// String returns the OpenDRIVE spelling of the colour.
func (c RoadMarkColor) String() string {
	switch c {
	case RoadMarkColorWhite:
		return "white"
	case RoadMarkColorYellow:
		return "yellow"
	case RoadMarkColorBlue:
		return "blue"
	case RoadMarkColorGreen:
		return "green"
	case RoadMarkColorRed:
		return "red"
	case RoadMarkColorOrange:
		return "orange"
	case RoadMarkColorViolet:
		return "violet"
	case RoadMarkColorBlack:
		return "black"
	default:
		return "standard"
	}
}

// RoadMarkWeight is the weight attribute on road marks.
type RoadMarkWeight int

const (
	RoadMarkWeightStandard RoadMarkWeight = iota
	RoadMarkWeightBold
)

// ParseRoadMarkWeight maps the OpenDRIVE spelling to a RoadMarkWeight.
func ParseRoadMarkWeight(s string) RoadMarkWeight {
	if s == "bold" {
		return RoadMarkWeightBold
	}
	return RoadMarkWeightStandard
}

// RoadMarkLaneChange is the laneChange attribute on road marks.
type RoadMarkLaneChange int

const (
	LaneChangeBoth RoadMarkLaneChange = iota
	LaneChangeIncrease
	LaneChangeDecrease
	LaneChangeNone
)

// ParseRoadMarkLaneChange maps the OpenDRIVE spelling to a RoadMarkLaneChange.
func ParseRoadMarkLaneChange(s string) RoadMarkLaneChange {
	switch s {
	case "increase":
		return LaneChangeIncrease
	case "decrease":
		return LaneChangeDecrease
	case "none":
		return LaneChangeNone
	default:
		return LaneChangeBoth
	}
}

// RoadMarkRule is the rule attribute on road mark lines.
type RoadMarkRule int

const (
	RoadMarkRuleNone RoadMarkRule = iota
	RoadMarkRuleNoPassing
	RoadMarkRuleCaution
)

// ParseRoadMarkRule maps the OpenDRIVE spelling ("no passing", "caution") to
// a RoadMarkRule.
func ParseRoadMarkRule(s string) RoadMarkRule {
	switch s {
	case "no passing":
		return RoadMarkRuleNoPassing
	case "caution":
		return RoadMarkRuleCaution
	default:
		return RoadMarkRuleNone
	}
}

// JunctionKind is the junction type attribute.
type JunctionKind int

const (
	JunctionKindDefault JunctionKind = iota
	JunctionKindVirtual
	JunctionKindDirect
)

// ParseJunctionKind maps the OpenDRIVE spelling to a JunctionKind.
func ParseJunctionKind(s string) JunctionKind {
	switch s {
	case "virtual":
		return JunctionKindVirtual
	case "direct":
		return JunctionKindDirect
	default:
		return JunctionKindDefault
	}
}
