// Package locations provides destination lookup and search over the reference
// location table.
package locations

import (
	"sort"
	"strings"

	"github.com/dshills/gobabygo/internal/refdata"
)

// DefaultSearchLimit caps Search results when no limit is given.
const DefaultSearchLimit = 8

// Directory is a read-only index of destinations. Safe for concurrent use.
type Directory struct {
	all            []refdata.Destination
	byName         map[string]int
	byDisplay      map[string]int
	popular        []string
	familyFriendly map[string]bool
	familyOrder    []string
	regions        map[string][]string
	insights       refdata.InsightLists
}

// New indexes the locations in d.
func New(d *refdata.Data) *Directory {
	dir := &Directory{
		all:            d.Locations,
		byName:         make(map[string]int, len(d.Locations)),
		byDisplay:      make(map[string]int, len(d.Locations)),
		popular:        d.Popular,
		familyFriendly: make(map[string]bool, len(d.FamilyFriendly)),
		familyOrder:    d.FamilyFriendly,
		regions:        d.Regions,
		insights:       d.Insights,
	}
	for i, l := range d.Locations {
		name := strings.ToLower(l.Name)
		if _, ok := dir.byName[name]; !ok {
			dir.byName[name] = i
		}
		dir.byDisplay[strings.ToLower(l.Display)] = i
	}
	for _, n := range d.FamilyFriendly {
		dir.familyFriendly[n] = true
	}
	return dir
}

// Len returns the number of indexed destinations.
func (d *Directory) Len() int { return len(d.all) }

// Lookup finds a destination by name or display string, case-insensitively.
func (d *Directory) Lookup(query string) (refdata.Destination, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return refdata.Destination{}, false
	}
	if i, ok := d.byName[q]; ok {
		return d.all[i], true
	}
	if i, ok := d.byDisplay[q]; ok {
		return d.all[i], true
	}
	return refdata.Destination{}, false
}

// Resolve returns the table record for query, or a custom record when the
// name is not in the table.
func (d *Directory) Resolve(query string) refdata.Destination {
	if dest, ok := d.Lookup(query); ok {
		return dest
	}
	return refdata.Custom(query)
}

// Search returns destinations whose name, country, or admin region contains
// query. Exact name or country matches rank first. An empty query returns the
// popular destinations.
func (d *Directory) Search(query string, limit int) []refdata.Destination {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.Popular(limit)
	}

	var exact, partial []refdata.Destination
	for _, l := range d.all {
		name, country, admin := strings.ToLower(l.Name), strings.ToLower(l.Country), strings.ToLower(l.Admin)
		switch {
		case name == q || country == q:
			exact = append(exact, l)
		case strings.Contains(name, q) || strings.Contains(country, q) || strings.Contains(admin, q):
			partial = append(partial, l)
		}
	}
	return truncate(append(exact, partial...), limit)
}

// Suggestions returns up to 10 sorted city and country names starting with prefix.
// Prefixes shorter than two characters yield nothing.
func (d *Directory) Suggestions(prefix string) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	if len(p) < 2 {
		return nil
	}
	seen := map[string]bool{}
	add := func(s string) {
		if len(seen) < 10 && strings.HasPrefix(strings.ToLower(s), p) {
			seen[s] = true
		}
	}
	for _, l := range d.all {
		add(l.Name)
		add(l.Country)
		if len(seen) >= 10 {
			break
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Popular returns the popular destinations in curated order.
func (d *Directory) Popular(limit int) []refdata.Destination {
	var out []refdata.Destination
	for _, n := range d.popular {
		if dest, ok := d.Lookup(n); ok {
			out = append(out, dest)
		}
	}
	return truncate(out, limit)
}

// FamilyFriendly returns the curated family destinations in curated order.
func (d *Directory) FamilyFriendly(limit int) []refdata.Destination {
	var out []refdata.Destination
	for _, n := range d.familyOrder {
		if dest, ok := d.Lookup(n); ok {
			out = append(out, dest)
		}
	}
	return truncate(out, limit)
}

// Region returns the region key containing country, or "".
func (d *Directory) Region(country string) string {
	keys := make([]string, 0, len(d.regions))
	for k := range d.regions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, c := range d.regions[k] {
			if c == country {
				return k
			}
		}
	}
	return ""
}

// ByRegion returns every destination in the named region.
func (d *Directory) ByRegion(region string) []refdata.Destination {
	countries := map[string]bool{}
	for _, c := range d.regions[strings.ToLower(region)] {
		countries[c] = true
	}
	var out []refdata.Destination
	for _, l := range d.all {
		if countries[l.Country] {
			out = append(out, l)
		}
	}
	return out
}

// Nearby returns other destinations in the same country, topped up from the
// same region when the country has fewer than limit.
func (d *Directory) Nearby(dest refdata.Destination, limit int) []refdata.Destination {
	if limit <= 0 {
		limit = 5
	}
	var out []refdata.Destination
	for _, l := range d.all {
		if l.Country == dest.Country && l.Name != dest.Name {
			out = append(out, l)
		}
	}
	if len(out) >= limit || dest.Country == "" {
		return truncate(out, limit)
	}
	region := d.Region(dest.Country)
	if region == "" {
		return out
	}
	for _, l := range d.ByRegion(region) {
		if l.Country != dest.Country && l.Name != dest.Name {
			out = append(out, l)
		}
	}
	return truncate(out, limit)
}

// Insights describes how well a destination serves families.
type Insights struct {
	FamilyRating      string `json:"family_rating"`
	Infrastructure    string `json:"infrastructure"`
	LanguageBarrier   string `json:"language_barrier"`
	MedicalFacilities string `json:"medical_facilities"`
	BabyFacilities    string `json:"baby_facilities"`
}

// Insights rates dest for family travel.
func (d *Directory) Insights(dest refdata.Destination) Insights {
	ins := Insights{
		FamilyRating:      "Standard",
		Infrastructure:    "Good",
		LanguageBarrier:   "Low",
		MedicalFacilities: "Available",
		BabyFacilities:    "Basic",
	}
	if d.familyFriendly[dest.Name] {
		ins.FamilyRating = "Excellent"
		ins.Infrastructure = "World-class"
		ins.BabyFacilities = "Comprehensive"
	}
	if contains(d.insights.EnglishSpeaking, dest.Country) {
		ins.LanguageBarrier = "None"
	}
	if contains(d.insights.Developed, dest.Country) {
		ins.Infrastructure = "Excellent"
		ins.MedicalFacilities = "World-class"
	}
	if contains(d.insights.Premium, dest.Country) {
		ins = Insights{
			FamilyRating:      "Excellent",
			Infrastructure:    "World-class",
			LanguageBarrier:   "Low",
			MedicalFacilities: "Excellent",
			BabyFacilities:    "Comprehensive",
		}
	}
	return ins
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func truncate(ds []refdata.Destination, limit int) []refdata.Destination {
	if limit > 0 && len(ds) > limit {
		return ds[:limit]
	}
	return ds
}
