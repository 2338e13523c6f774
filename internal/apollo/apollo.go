// Package apollo provides a tolerant, field-level decode of Apollo HD-Map
// protobuf bytes. The full hdmap schema is owned upstream and is not
// redefined here; the decoder walks the wire format directly to extract
// header metadata and element counts for format detection and diagnostics.
package apollo

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Top-level field numbers of the apollo.hdmap.Map message.
const (
	fieldHeader   = 1
	fieldCrosswalk = 2
	fieldJunction = 3
	fieldLane     = 4
	fieldStopSign = 5
	fieldSignal   = 6
	fieldYield    = 7
	fieldOverlap  = 8
	fieldClearArea = 9
	fieldSpeedBump = 10
	fieldRoad     = 11
)

// Header field numbers of apollo.hdmap.Header.
const (
	headerFieldVersion    = 1
	headerFieldDate       = 2
	headerFieldProjection = 3
	headerFieldDistrict   = 4
	headerFieldVendor     = 9
)

// MapInfo is the metadata extracted from an Apollo map blob.
type MapInfo struct {
	Version    string
	Date       string
	District   string
	Vendor     string
	Projection string

	LaneCount     int
	RoadCount     int
	JunctionCount int
	SignalCount   int

	// FieldCounts holds the occurrence count of every top-level field
	// number seen, including ones this package does not name.
	FieldCounts map[int]int
}

// DecodeMapInfo scans an apollo.hdmap.Map blob and returns its metadata.
// Unknown fields are counted and skipped; an error is returned only when
// the bytes are not valid protobuf wire format.
func DecodeMapInfo(buf []byte) (*MapInfo, error) {
	info := &MapInfo{FieldCounts: make(map[int]int)}

	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("decode Apollo map: invalid tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]

		info.FieldCounts[int(num)]++

		switch typ {
		case protowire.BytesType:
			payload, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return nil, fmt.Errorf("decode Apollo map: field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]

			switch int(num) {
			case fieldHeader:
				if err := decodeHeader(payload, info); err != nil {
					return nil, err
				}
			case fieldLane:
				info.LaneCount++
			case fieldRoad:
				info.RoadCount++
			case fieldJunction:
				info.JunctionCount++
			case fieldSignal:
				info.SignalCount++
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("decode Apollo map: field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]
		}
	}

	return info, nil
}

func decodeHeader(buf []byte, info *MapInfo) error {
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return fmt.Errorf("decode Apollo header: invalid tag: %w", protowire.ParseError(n))
		}
		buf = buf[n:]

		if typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return fmt.Errorf("decode Apollo header: field %d: %w", num, protowire.ParseError(n))
			}
			buf = buf[n:]
			continue
		}

		payload, n := protowire.ConsumeBytes(buf)
		if n < 0 {
			return fmt.Errorf("decode Apollo header: field %d: %w", num, protowire.ParseError(n))
		}
		buf = buf[n:]

		switch int(num) {
		case headerFieldVersion:
			info.Version = string(payload)
		case headerFieldDate:
			info.Date = string(payload)
		case headerFieldProjection:
			// projection is a nested message holding a proj string.
			info.Projection = firstStringField(payload)
		case headerFieldDistrict:
			info.District = string(payload)
		case headerFieldVendor:
			info.Vendor = string(payload)
		}
	}
	return nil
}

// firstStringField returns the payload of the first length-delimited field
// of a nested message, or "" when none decodes.
func firstStringField(buf []byte) string {
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return ""
		}
		buf = buf[n:]

		if typ == protowire.BytesType {
			payload, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return ""
			}
			return string(payload)
		}

		n = protowire.ConsumeFieldValue(num, typ, buf)
		if n < 0 {
			return ""
		}
		buf = buf[n:]
	}
	return ""
}
