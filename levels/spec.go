package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TileSpec is one static ground box, positioned by its center.
type TileSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnSpec places one dynamic entity at level start. Kind selects the
// spawner; see the game shell's spawn registry for the known kinds.
type SpawnSpec struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Spec is a level document.
type Spec struct {
	Name   string      `yaml:"name"`
	Tiles  []TileSpec  `yaml:"tiles"`
	Spawns []SpawnSpec `yaml:"spawns"`
}

// LoadSpec loads and parses a level by file name, checking the on-disk
// levels directory before the embedded copies.
func LoadSpec(name string) (*Spec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	return ParseSpec(name, data)
}

// ParseSpec parses a level document and validates its shape.
func ParseSpec(name string, data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	for i, tile := range spec.Tiles {
		if tile.Width <= 0 || tile.Height <= 0 {
			return nil, fmt.Errorf("levels: %s: tile %d has non-positive size %gx%g", name, i, tile.Width, tile.Height)
		}
	}
	for i, spawn := range spec.Spawns {
		if spawn.Kind == "" {
			return nil, fmt.Errorf("levels: %s: spawn %d has no kind", name, i)
		}
		if spawn.Width <= 0 || spawn.Height <= 0 {
			return nil, fmt.Errorf("levels: %s: spawn %d (%s) has non-positive size %gx%g", name, i, spawn.Kind, spawn.Width, spawn.Height)
		}
	}
	return &spec, nil
}
