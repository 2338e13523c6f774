package odr

// LaneSection is one interval of constant lane layout. Left lanes carry
// positive IDs growing outward, right lanes negative IDs growing outward in
// magnitude, and the mandatory centre lane has ID 0.
type LaneSection struct {
	S          float64
	SingleSide bool
	Left       []Lane
	Right      []Lane
	Center     Lane
}

// LaneByID returns the lane with the given ID, or nil if the section does
// not carry it.
func (sec *LaneSection) LaneByID(id int) *Lane {
	if id == 0 {
		return &sec.Center
	}
	lanes := sec.Left
	if id < 0 {
		lanes = sec.Right
	}
	for i := range lanes {
		if lanes[i].ID == id {
			return &lanes[i]
		}
	}
	return nil
}

// InnerOffset returns the signed lateral position of a lane's inner
// boundary at station s: the cumulative width of every lane strictly
// between the centre line and laneID. The sum runs over lane IDs, not list
// positions, so the stored order of Left/Right does not matter.
func (sec *LaneSection) InnerOffset(laneID int, s float64) float64 {
	ds := s - sec.S
	offset := 0.0

	if laneID > 0 {
		for i := range sec.Left {
			other := &sec.Left[i]
			if other.ID > 0 && other.ID < laneID {
				offset += other.WidthAt(ds)
			}
		}
	} else if laneID < 0 {
		for i := range sec.Right {
			other := &sec.Right[i]
			if other.ID < 0 && other.ID > laneID {
				offset -= other.WidthAt(ds)
			}
		}
	}

	return offset
}

// OuterOffset returns the signed lateral position of a lane's outer
// boundary at station s: the inner boundary plus the lane's own width,
// accumulated away from the centre line. The centre lane has no width, so
// its outer boundary equals its inner boundary.
func (sec *LaneSection) OuterOffset(laneID int, s float64) float64 {
	inner := sec.InnerOffset(laneID, s)
	lane := sec.LaneByID(laneID)
	if lane == nil || laneID == 0 {
		return inner
	}
	width := lane.WidthAt(s - sec.S)
	if laneID > 0 {
		return inner + width
	}
	return inner - width
}
