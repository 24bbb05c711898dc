package stops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/jusunglee/signage-go/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultStops is the platform layout of the station's south exit map
func DefaultStops() []models.Stop {
	return []models.Stop{
		{ID: "1", Left: 67.38, Top: 40.03, Width: 3.67, Height: 2.83},
		{ID: "2", Left: 67.38, Top: 35.66, Width: 3.67, Height: 2.83},
		{ID: "3", Left: 67.38, Top: 31.29, Width: 3.67, Height: 2.78},
		{ID: "4", Left: 67.38, Top: 26.97, Width: 3.67, Height: 2.78},
		{ID: "5", Left: 67.38, Top: 22.69, Width: 3.67, Height: 2.87},
		{ID: "6", Left: 46.38, Top: 35.87, Width: 3.56, Height: 2.83},
		{ID: "7", Left: 46.38, Top: 31.72, Width: 3.62, Height: 2.74},
		{ID: "8", Left: 46.38, Top: 27.31, Width: 3.62, Height: 2.91},
		{ID: "9", Left: 46.38, Top: 23.07, Width: 3.62, Height: 2.87},
		{ID: "16", Left: 37.72, Top: 92.29, Width: 4.44, Height: 3.38},
		{ID: "17", Left: 24.89, Top: 64.51, Width: 4.22, Height: 3.25},
		{ID: "20", Left: 25.66, Top: 28.77, Width: 4.5, Height: 3.34},
		{ID: "21", Left: 37.94, Top: 6.59, Width: 4.61, Height: 3.42},
		{ID: "23", Left: 25, Top: 4.45, Width: 4.44, Height: 3.25},
	}
}

type yamlFile struct {
	Stops []models.Stop `yaml:"stops"`
}

// LoadFile reads stop geometry from a .yaml/.yml or .csv file
func LoadFile(path string) ([]models.Stop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stops file: %w", err)
	}

	var stops []models.Stop
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var f yamlFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse stops yaml: %w", err)
		}
		stops = f.Stops
	case ".csv":
		if err := gocsv.UnmarshalBytes(data, &stops); err != nil {
			return nil, fmt.Errorf("parse stops csv: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported stops file %q", path)
	}

	return stops, nil
}

// Load builds the registry from path, or from the built-in geometry when path is empty
func Load(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(DefaultStops())
	}
	stops, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(stops)
}
