// Package refdata loads the static reference tables used for destination lookup,
// climate classification, and destination tiers.
package refdata

import (
	"crypto/sha256"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Destination is a location record. Records are never mutated after loading.
type Destination struct {
	Name       string `yaml:"name" json:"name"`
	Country    string `yaml:"country" json:"country"`
	Admin      string `yaml:"admin" json:"admin,omitempty"`
	Population int    `yaml:"population" json:"population,omitempty"`
	Type       string `yaml:"type" json:"type"`
	Display    string `yaml:"display" json:"display"`
	Source     string `yaml:"source" json:"source"`
}

// Source values for Destination.Source.
const (
	SourceDatabase = "database"
	SourceCustom   = "custom"
)

// Tiers lists destination names by friendliness tier.
type Tiers struct {
	Excellent []string `yaml:"excellent"`
	Good      []string `yaml:"good"`
}

// ClimateEntry describes the typical climate of a city.
type ClimateEntry struct {
	Tier    string `yaml:"tier" json:"tier"`
	Temp    string `yaml:"temp" json:"temp"`
	Label   string `yaml:"label" json:"label"`
	Season  string `yaml:"season" json:"season"`
	Comfort string `yaml:"comfort" json:"comfort"`
}

// Climate holds the per-city climate table, the per-country tier fallback,
// and seasonal descriptions keyed by destination name then season.
type Climate struct {
	Default   ClimateEntry                 `yaml:"default"`
	Cities    map[string]ClimateEntry      `yaml:"cities"`
	Countries map[string]string            `yaml:"countries"`
	Seasons   map[string]map[string]string `yaml:"seasons"`
}

// InsightLists groups countries by the destination insight they unlock.
type InsightLists struct {
	EnglishSpeaking []string `yaml:"english_speaking"`
	Developed       []string `yaml:"developed"`
	Premium         []string `yaml:"premium"`
}

// Data is the full set of reference tables.
type Data struct {
	Popular        []string            `yaml:"popular"`
	Locations      []Destination       `yaml:"locations"`
	Tiers          Tiers               `yaml:"tiers"`
	FamilyFriendly []string            `yaml:"family_friendly"`
	Regions        map[string][]string `yaml:"regions"`
	Insights       InsightLists        `yaml:"insights"`
	Climate        Climate             `yaml:"climate"`

	// Hash identifies an override file; empty for builtin data.
	Hash string `yaml:"-"`
}

// builtinFiles are merged in order. climate.yaml is nested under the climate key.
var builtinFiles = []string{"locations", "destinations", "climate"}

// LoadBuiltin loads and merges the embedded reference tables.
func LoadBuiltin() (*Data, error) {
	d := &Data{}
	for _, name := range builtinFiles {
		raw, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("refdata.LoadBuiltin: %q: %w", name, err)
		}
		var part Data
		if name == "climate" {
			err = yaml.Unmarshal(raw, &part.Climate)
		} else {
			err = yaml.Unmarshal(raw, &part)
		}
		if err != nil {
			return nil, fmt.Errorf("refdata.LoadBuiltin: parse %q: %w", name, err)
		}
		d.merge(&part)
	}
	d.normalize()
	return d, nil
}

// List returns the names of the embedded reference tables.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadFile reads an override file and merges it over the builtin tables.
// Any section present in the file replaces the builtin section; locations are
// appended, with file records replacing builtin records of the same name.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refdata.LoadFile: %w", err)
	}
	var over Data
	if err := yaml.Unmarshal(raw, &over); err != nil {
		return nil, fmt.Errorf("refdata.LoadFile: parse %s: %w", path, err)
	}
	d, err := LoadBuiltin()
	if err != nil {
		return nil, err
	}
	d.merge(&over)
	d.normalize()
	d.Hash = fmt.Sprintf("sha256:%x", sha256.Sum256(raw))
	return d, nil
}

func (d *Data) merge(o *Data) {
	if len(o.Popular) > 0 {
		d.Popular = o.Popular
	}
	if len(o.Locations) > 0 {
		idx := make(map[string]int, len(d.Locations))
		for i, l := range d.Locations {
			idx[strings.ToLower(l.Name)] = i
		}
		for _, l := range o.Locations {
			if i, ok := idx[strings.ToLower(l.Name)]; ok {
				d.Locations[i] = l
				continue
			}
			idx[strings.ToLower(l.Name)] = len(d.Locations)
			d.Locations = append(d.Locations, l)
		}
	}
	if len(o.Tiers.Excellent) > 0 || len(o.Tiers.Good) > 0 {
		d.Tiers = o.Tiers
	}
	if len(o.FamilyFriendly) > 0 {
		d.FamilyFriendly = o.FamilyFriendly
	}
	if len(o.Regions) > 0 {
		d.Regions = o.Regions
	}
	if len(o.Insights.EnglishSpeaking) > 0 || len(o.Insights.Developed) > 0 || len(o.Insights.Premium) > 0 {
		d.Insights = o.Insights
	}
	if o.Climate.Default.Tier != "" {
		d.Climate.Default = o.Climate.Default
	}
	if d.Climate.Cities == nil {
		d.Climate.Cities = map[string]ClimateEntry{}
	}
	for k, v := range o.Climate.Cities {
		d.Climate.Cities[k] = v
	}
	if d.Climate.Countries == nil {
		d.Climate.Countries = map[string]string{}
	}
	for k, v := range o.Climate.Countries {
		d.Climate.Countries[k] = v
	}
	if d.Climate.Seasons == nil {
		d.Climate.Seasons = map[string]map[string]string{}
	}
	for k, v := range o.Climate.Seasons {
		d.Climate.Seasons[k] = v
	}
}

// normalize fills display strings and sources for records that omit them.
func (d *Data) normalize() {
	for i := range d.Locations {
		l := &d.Locations[i]
		if l.Type == "" {
			l.Type = "city"
		}
		if l.Display == "" {
			l.Display = DisplayName(*l)
		}
		if l.Source == "" {
			l.Source = SourceDatabase
		}
	}
}

// DisplayName formats the canonical display string for a destination.
// Countries display as their bare name; everything else as "name, country".
func DisplayName(l Destination) string {
	if l.Type == "country" || l.Country == "" || l.Country == l.Name {
		return l.Name
	}
	return l.Name + ", " + l.Country
}

// Custom builds an ad-hoc destination for a name that is not in the tables.
func Custom(name string) Destination {
	name = strings.TrimSpace(name)
	return Destination{
		Name:    name,
		Type:    "city",
		Display: name,
		Source:  SourceCustom,
	}
}
