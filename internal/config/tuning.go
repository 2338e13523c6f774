package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// maxConfigFileSize bounds the config file read to keep malformed paths
// from dragging in arbitrary data.
const maxConfigFileSize = 1 << 20

// MeshTuning holds the tunable parameters of the mesh builders and the
// inverse mapping. All fields are pointers so partial JSON files only
// override what they name. The inverse-mapping fields are loaded and merged
// only: odr.Road.XyzToSth does not read them and always uses its fixed limits
// of 50 iterations and a 1e-8 step tolerance.
type MeshTuning struct {
	// Builder sample steps in metres.
	LaneSampleStep *float64 `json:"lane_sample_step,omitempty"`
	MarkSampleStep *float64 `json:"mark_sample_step,omitempty"`

	// Inverse mapping controls.
	InverseMaxIterations *int     `json:"inverse_max_iterations,omitempty"`
	InverseTolerance     *float64 `json:"inverse_tolerance,omitempty"`
}

// EmptyMeshTuning returns a MeshTuning with all fields unset. Use
// LoadMeshTuning to load actual values from the defaults file.
func EmptyMeshTuning() *MeshTuning {
	return &MeshTuning{}
}

// LoadMeshTuning loads a MeshTuning from a JSON file. The file must have a
// .json extension and stay under the size cap. Fields omitted from the file
// stay nil, so partial configs are safe.
func LoadMeshTuning(path string) (*MeshTuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes", info.Size())
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg MeshTuning
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", cleanPath, err)
	}
	return &cfg, nil
}

// Merge overlays other onto cfg: fields set in other replace cfg's.
func (cfg *MeshTuning) Merge(other *MeshTuning) {
	if other == nil {
		return
	}
	if other.LaneSampleStep != nil {
		cfg.LaneSampleStep = other.LaneSampleStep
	}
	if other.MarkSampleStep != nil {
		cfg.MarkSampleStep = other.MarkSampleStep
	}
	if other.InverseMaxIterations != nil {
		cfg.InverseMaxIterations = other.InverseMaxIterations
	}
	if other.InverseTolerance != nil {
		cfg.InverseTolerance = other.InverseTolerance
	}
}

// LaneStep returns the lane sample step or fallback when unset.
func (cfg *MeshTuning) LaneStep(fallback float64) float64 {
	if cfg != nil && cfg.LaneSampleStep != nil {
		return *cfg.LaneSampleStep
	}
	return fallback
}

// MarkStep returns the mark sample step or fallback when unset.
func (cfg *MeshTuning) MarkStep(fallback float64) float64 {
	if cfg != nil && cfg.MarkSampleStep != nil {
		return *cfg.MarkSampleStep
	}
	return fallback
}
