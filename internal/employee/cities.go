package employee

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed cities.yaml
var citiesYAML []byte

type city struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

type cityTables struct {
	Reference []city `yaml:"reference"`
	Seeds     []city `yaml:"seeds"`
}

var cities = mustLoadCities(citiesYAML)

func mustLoadCities(data []byte) cityTables {
	var t cityTables
	if err := yaml.Unmarshal(data, &t); err != nil {
		panic(fmt.Sprintf("employee: parse cities.yaml: %v", err))
	}
	if len(t.Reference) == 0 || len(t.Seeds) == 0 {
		panic("employee: cities.yaml has an empty table")
	}
	return t
}

// defaultLocation is used when an employee gets a status before any position.
var defaultLocation = cities.Seeds[0]

// Label turns coordinates into a display address. Points inside India's
// bounding box are named after the closest reference city; this is a
// presentation hint, not geocoding.
func Label(lat, lng float64) string {
	if lat >= 6.0 && lat <= 37.6 && lng >= 68.0 && lng <= 97.5 {
		return fmt.Sprintf("%s, India (%.4f, %.4f)", nearestCity(lat, lng), lat, lng)
	}
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}

func nearestCity(lat, lng float64) string {
	best := cities.Reference[0]
	bestDist := math.Hypot(lat-best.Lat, lng-best.Lng)
	for _, c := range cities.Reference[1:] {
		if d := math.Hypot(lat-c.Lat, lng-c.Lng); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best.Name
}
