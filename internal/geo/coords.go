// Package geo holds the static district coordinate table and builds map
// payloads from indicator rows.
package geo

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed districts.yaml
var districtsYAML []byte

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

type districtEntry struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

type districtFile struct {
	City      string          `yaml:"city"`
	Districts []districtEntry `yaml:"districts"`
}

// Gazetteer maps district names to coordinates.
type Gazetteer struct {
	City   string
	names  []string
	points map[string]Point
}

// ParseGazetteer decodes a district coordinate table from YAML.
func ParseGazetteer(data []byte) (*Gazetteer, error) {
	var f districtFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "geo: parse district table")
	}

	g := &Gazetteer{City: f.City, points: make(map[string]Point, len(f.Districts))}
	for _, d := range f.Districts {
		name := Normalize(d.Name)
		if name == "" {
			return nil, eris.New("geo: district entry without a name")
		}
		if _, dup := g.points[name]; dup {
			return nil, eris.Errorf("geo: duplicate district %q", name)
		}
		g.points[name] = Point{Lat: d.Lat, Lon: d.Lon}
		g.names = append(g.names, name)
	}
	return g, nil
}

var (
	seoulOnce sync.Once
	seoul     *Gazetteer
)

// Seoul returns the built-in table of the 25 Seoul districts.
func Seoul() *Gazetteer {
	seoulOnce.Do(func() {
		g, err := ParseGazetteer(districtsYAML)
		if err != nil {
			panic(err) // embedded file is fixed at build time
		}
		seoul = g
	})
	return seoul
}

// Lookup returns the coordinates for a district name.
func (g *Gazetteer) Lookup(name string) (Point, bool) {
	p, ok := g.points[Normalize(name)]
	return p, ok
}

// Known returns the district names in table order.
func (g *Gazetteer) Known() []string {
	return append([]string(nil), g.names...)
}

// Len returns the number of districts in the table.
func (g *Gazetteer) Len() int { return len(g.names) }

// Normalize trims a district name and puts it in Unicode NFC, so names
// exported in decomposed Hangul still compare equal.
func Normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
