package odr

// Offset is the header <offset> child: a rigid transform applied by tooling
// that exported the document.
type Offset struct {
	X   float64
	Y   float64
	Z   float64
	Hdg float64
}

// Header is the document header. GeoReference carries the PROJ string from
// the geoReference child element (text or CDATA), untouched.
type Header struct {
	RevMajor int
	RevMinor int
	Name     string
	Version  string
	Date     string
	Vendor   string

	North float64
	South float64
	East  float64
	West  float64

	GeoReference string
	Offset       *Offset
}
