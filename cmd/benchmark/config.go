package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type graphConfig struct {
	Name           string  `yaml:"name"`           // friendly name for the test, should be unique
	Width          int     `yaml:"width"`          // width of dependency graph to construct
	TotalLayers    int     `yaml:"totalLayers"`    // depth of dependency graph to construct
	StaticFraction float64 `yaml:"staticFraction"` // fraction of nodes that are static
	NSources       int     `yaml:"nSources"`       // construct a graph with number of sources in each node
	ReadFraction   float64 `yaml:"readFraction"`   // fraction of [0, 1] elements in the last layer from which to read values in each test iteration
	Iterations     int     `yaml:"iterations"`     // number of test iterations
}

type graphFile struct {
	Graphs []graphConfig `yaml:"graphs"`
}

func defaultGraphConfigs() []graphConfig {
	return []graphConfig{
		{
			Name:           "simple component",
			Width:          10,
			StaticFraction: 1,
			NSources:       2,
			TotalLayers:    5,
			ReadFraction:   0.2,
			Iterations:     600000,
		},
		{
			Name:           "dynamic component",
			Width:          10,
			TotalLayers:    10,
			StaticFraction: 0.75,
			NSources:       6,
			ReadFraction:   0.2,
			Iterations:     15000,
		},
		{
			Name:           "large web app",
			Width:          1000,
			TotalLayers:    12,
			StaticFraction: 0.95,
			NSources:       4,
			ReadFraction:   1,
			Iterations:     7000,
		},
		{
			Name:           "wide dense",
			Width:          1000,
			TotalLayers:    5,
			StaticFraction: 1,
			NSources:       25,
			ReadFraction:   1,
			Iterations:     3000,
		},
		{
			Name:           "deep",
			Width:          5,
			TotalLayers:    500,
			StaticFraction: 1,
			NSources:       3,
			ReadFraction:   1,
			Iterations:     500,
		},
		{
			Name:           "very dynamic",
			Width:          100,
			TotalLayers:    15,
			StaticFraction: 0.5,
			NSources:       6,
			ReadFraction:   1,
			Iterations:     2000,
		},
	}
}

// loadGraphConfigs reads graph shapes from a YAML file. An empty path
// returns the built-in shapes.
func loadGraphConfigs(path string) ([]graphConfig, error) {
	if path == "" {
		return defaultGraphConfigs(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph config: %w", err)
	}

	var f graphFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parsing graph config %s: %w", path, err)
	}
	if len(f.Graphs) == 0 {
		return nil, fmt.Errorf("graph config %s: no graphs defined", path)
	}

	var errs []error
	for i, cfg := range f.Graphs {
		if err := cfg.validate(); err != nil {
			errs = append(errs, fmt.Errorf("graph %d (%q): %w", i, cfg.Name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return f.Graphs, nil
}

func (c graphConfig) validate() error {
	switch {
	case c.Name == "":
		return errors.New("name is required")
	case c.Width < 1:
		return errors.New("width must be at least 1")
	case c.TotalLayers < 2:
		return errors.New("totalLayers must be at least 2")
	case c.NSources < 1:
		return errors.New("nSources must be at least 1")
	case c.StaticFraction < 0 || c.StaticFraction > 1:
		return errors.New("staticFraction must be within [0, 1]")
	case c.ReadFraction < 0 || c.ReadFraction > 1:
		return errors.New("readFraction must be within [0, 1]")
	case c.Iterations < 1:
		return errors.New("iterations must be at least 1")
	case c.StaticFraction < 1 && c.NSources < 2:
		return errors.New("dynamic nodes need at least 2 sources")
	}
	return nil
}
