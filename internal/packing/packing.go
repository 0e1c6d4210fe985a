// Package packing generates and checks baby packing lists.
package packing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/gobabygo/internal/climate"
	"github.com/dshills/gobabygo/internal/trip"
)

// Priority orders items for truncation. Lower values are kept first.
type Priority int

const (
	Essential Priority = iota
	Recommended
	Optional
)

func (p Priority) String() string {
	switch p {
	case Essential:
		return "essential"
	case Recommended:
		return "recommended"
	default:
		return "optional"
	}
}

// MarshalText lets priorities serialize by name.
func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Priority) UnmarshalText(b []byte) error {
	switch string(b) {
	case "essential":
		*p = Essential
	case "recommended":
		*p = Recommended
	case "optional":
		*p = Optional
	default:
		return fmt.Errorf("packing: unknown priority %q", string(b))
	}
	return nil
}

// Item is one entry on a packing list.
type Item struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Priority Priority `json:"priority"`
}

// Categories.
const (
	CatEssentials = "Essentials"
	CatClothing   = "Clothing"
	CatFeeding    = "Feeding"
	CatHealth     = "Health"
	CatComfort    = "Comfort & Play"
	CatFlight     = "Flight"
	CatClimate    = "Climate"
)

var baseItems = []Item{
	{"Diapers", CatEssentials, Essential},
	{"Wipes", CatEssentials, Essential},
	{"Changing mat", CatEssentials, Recommended},
	{"Onesies", CatClothing, Essential},
	{"Socks", CatClothing, Recommended},
	{"Swaddle blankets", CatComfort, Optional},
	{"Pacifiers", CatComfort, Recommended},
	{"Bottles", CatFeeding, Essential},
	{"Nursing cover", CatFeeding, Optional},
	{"Baby carrier", CatEssentials, Recommended},
	{"Basic meds", CatHealth, Essential},
	{"Thermometer", CatHealth, Recommended},
	{"Snacks", CatFeeding, Optional},
}

var (
	infantItems = []Item{
		{"Formula or breastmilk storage", CatFeeding, Essential},
		{"Burp cloths", CatFeeding, Recommended},
		{"Portable sterilizer", CatFeeding, Optional},
	}
	babyItems = []Item{
		{"Teething toys", CatComfort, Recommended},
		{"Light books", CatComfort, Optional},
	}
	toddlerItems = []Item{
		{"Activity books", CatComfort, Recommended},
		{"Utensils", CatFeeding, Optional},
		{"Travel stroller", CatEssentials, Optional},
	}
	laundryItems = []Item{
		{"Portable laundry detergent", CatClothing, Recommended},
	}
	longTripItems = []Item{
		{"Extra clothes", CatClothing, Essential},
		{"Medicine kit", CatHealth, Recommended},
	}
	flightItems = []Item{
		{"Extra diapers for flight", CatFlight, Essential},
		{"Flight pillow", CatFlight, Optional},
		{"Tablet with baby videos", CatFlight, Optional},
	}
	specialNeedsItems = []Item{
		{"Medical documentation", CatHealth, Essential},
		{"Prescription supplies", CatHealth, Essential},
	}
	pumpingItems = []Item{
		{"Pump kit", CatFeeding, Essential},
		{"Extra bottles", CatFeeding, Recommended},
		{"Cooler bag", CatFeeding, Recommended},
	}
	climateItems = map[string][]Item{
		climate.TierHot: {
			{"Light cotton clothes", CatClimate, Essential},
			{"Baby sunscreen", CatClimate, Essential},
			{"Sunhat or cap", CatClimate, Recommended},
			{"Hydration bottle", CatClimate, Recommended},
		},
		climate.TierCold: {
			{"Winter jacket", CatClimate, Essential},
			{"Wool socks", CatClimate, Recommended},
			{"Mittens", CatClimate, Recommended},
			{"Thermal onesies", CatClimate, Essential},
		},
		climate.TierTemperate: {
			{"Light jacket", CatClimate, Recommended},
			{"Layered outfits", CatClimate, Recommended},
		},
	}
)

// Thresholds that add sublists.
const (
	infantMaxMonths    = 6
	babyMaxMonths      = 12
	laundryMinDays     = 7
	longTripMinDays    = 10
	lowComfortScore    = 5
	longFlightMinHours = 5
	baseMaxItems       = 15
	extraItemsPerNDays = 3
)

// MaxItems is the list length cap for a trip of the given length.
func MaxItems(days int) int {
	if days < 0 {
		days = 0
	}
	return baseMaxItems + days/extraItemsPerNDays
}

// Generate builds the packing list for a trip. comfortScore is on the comfort
// scale (higher is easier); tier is a climate tier. The result has no
// duplicate names and at most MaxItems(in.TripDurationDays) entries; when the
// cap applies, lower-priority items are dropped first and the remaining items
// keep their order.
func Generate(in trip.Input, comfortScore int, tier string) []Item {
	var items []Item
	items = append(items, baseItems...)

	switch {
	case in.BabyAgeMonths <= infantMaxMonths:
		items = append(items, infantItems...)
	case in.BabyAgeMonths <= babyMaxMonths:
		items = append(items, babyItems...)
	default:
		items = append(items, toddlerItems...)
	}

	if in.TripDurationDays > laundryMinDays {
		items = append(items, laundryItems...)
	}
	if comfortScore < lowComfortScore || in.TripDurationDays > longTripMinDays {
		items = append(items, longTripItems...)
	}
	if ci, ok := climateItems[tier]; ok {
		items = append(items, ci...)
	} else {
		items = append(items, climateItems[climate.TierTemperate]...)
	}
	if in.FlightHours > longFlightMinHours {
		items = append(items, flightItems...)
	}
	if in.SpecialNeeds {
		items = append(items, specialNeedsItems...)
	}
	if in.PumpingNeeded {
		items = append(items, pumpingItems...)
	}

	return limit(dedupe(items), MaxItems(in.TripDurationDays))
}

// Names returns the item names in order.
func Names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

// ByCategory groups items by category, preserving order within each group.
// Categories are returned in first-appearance order.
func ByCategory(items []Item) (order []string, groups map[string][]Item) {
	groups = map[string][]Item{}
	for _, it := range items {
		if _, ok := groups[it.Category]; !ok {
			order = append(order, it.Category)
		}
		groups[it.Category] = append(groups[it.Category], it)
	}
	return order, groups
}

func dedupe(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(it.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

func limit(items []Item, max int) []Item {
	if len(items) <= max {
		return items
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].Priority < items[idx[b]].Priority
	})
	keep := idx[:max]
	sort.Ints(keep)
	out := make([]Item, 0, max)
	for _, i := range keep {
		out = append(out, items[i])
	}
	return out
}
