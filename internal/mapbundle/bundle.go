// Package mapbundle groups the raw files of one map into a bundle and
// dispatches parsing by file format. A bundle is a plain sequence of
// (name, bytes) records; nothing here touches the filesystem.
package mapbundle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/banshee-data/mapmesh/internal/apollo"
	"github.com/banshee-data/mapmesh/internal/monitoring"
	"github.com/banshee-data/mapmesh/internal/odr"
)

// Format identifies the map format carried by a bundle.
type Format int

const (
	FormatUnknown Format = iota
	FormatOpenDrive
	FormatApollo
)

// String returns a readable format name.
func (f Format) String() string {
	switch f {
	case FormatOpenDrive:
		return "opendrive"
	case FormatApollo:
		return "apollo"
	default:
		return "unknown"
	}
}

// ErrNoFormat is returned when no file in the bundle matches a known format.
var ErrNoFormat = errors.New("no map format detected")

// File is one named byte record of a bundle.
type File struct {
	Name string
	Data []byte
}

// Bundle is an ordered collection of files making up one map.
type Bundle struct {
	files []File
}

// Add appends a file to the bundle.
func (b *Bundle) Add(name string, data []byte) {
	b.files = append(b.files, File{Name: name, Data: data})
}

// Files returns the bundle's files in insertion order.
func (b *Bundle) Files() []File { return b.files }

// FindByExtension returns the first file whose name carries the extension,
// or nil.
func (b *Bundle) FindByExtension(ext string) *File {
	for i := range b.files {
		if strings.HasSuffix(b.files[i].Name, ext) {
			return &b.files[i]
		}
	}
	return nil
}

// DetectFormat inspects file suffixes to decide the bundle's format:
// .xodr means OpenDRIVE, .bin Apollo protobuf.
func (b *Bundle) DetectFormat() (Format, error) {
	if b.FindByExtension(".xodr") != nil {
		return FormatOpenDrive, nil
	}
	if b.FindByExtension(".bin") != nil {
		return FormatApollo, nil
	}
	return FormatUnknown, ErrNoFormat
}

// LoadOpenDrive parses the bundle's OpenDRIVE document into a Map. The
// bundle must contain a .xodr file.
func (b *Bundle) LoadOpenDrive() (*odr.Map, error) {
	f := b.FindByExtension(".xodr")
	if f == nil {
		return nil, fmt.Errorf("load OpenDRIVE: no .xodr file in bundle")
	}
	m, err := odr.ParseXodr(f.Data)
	if err != nil {
		return nil, fmt.Errorf("load OpenDRIVE %q: %w", f.Name, err)
	}
	monitoring.Logf("mapbundle: parsed %q: %d roads, %d junctions", f.Name, len(m.Roads), len(m.Junctions))
	return m, nil
}

// LoadApolloInfo decodes metadata from the bundle's Apollo map blob. The
// bundle must contain a .bin file.
func (b *Bundle) LoadApolloInfo() (*apollo.MapInfo, error) {
	f := b.FindByExtension(".bin")
	if f == nil {
		return nil, fmt.Errorf("load Apollo map: no .bin file in bundle")
	}
	info, err := apollo.DecodeMapInfo(f.Data)
	if err != nil {
		return nil, fmt.Errorf("load Apollo map %q: %w", f.Name, err)
	}
	return info, nil
}
