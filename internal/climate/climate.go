// Package climate classifies destinations into climate tiers and describes
// seasonal weather for a travel date.
package climate

import (
	"strings"
	"time"

	"github.com/dshills/gobabygo/internal/refdata"
)

// Climate tiers.
const (
	TierHot       = "hot"
	TierCold      = "cold"
	TierTemperate = "temperate"
)

// Seasons.
const (
	Winter = "winter"
	Spring = "spring"
	Summer = "summer"
	Autumn = "autumn"
)

const defaultSeasonsKey = "default"

// Table answers climate questions from the reference climate data.
type Table struct {
	data refdata.Climate
}

// New returns a Table over c.
func New(c refdata.Climate) *Table {
	return &Table{data: c}
}

// Tier returns the climate tier for d: city entry first, then country, then temperate.
func (t *Table) Tier(d refdata.Destination) string {
	if e, ok := t.data.Cities[d.Name]; ok && validTier(e.Tier) {
		return e.Tier
	}
	if tier, ok := t.data.Countries[d.Country]; ok && validTier(tier) {
		return tier
	}
	if validTier(t.data.Default.Tier) {
		return t.data.Default.Tier
	}
	return TierTemperate
}

// Info returns the typical climate for d, or the default entry.
// The returned Tier always matches Tier(d).
func (t *Table) Info(d refdata.Destination) refdata.ClimateEntry {
	e, ok := t.data.Cities[d.Name]
	if !ok {
		e = t.data.Default
	}
	e.Tier = t.Tier(d)
	return e
}

// Season returns the meteorological season of date and a weather description
// for the named destination. Unknown destinations get a generic description.
func (t *Table) Season(date time.Time, name string) (season, description string) {
	season = SeasonOf(date.Month())
	if byCity, ok := t.data.Seasons[name]; ok {
		if desc, ok := byCity[season]; ok {
			return season, desc
		}
	}
	return season, t.data.Seasons[defaultSeasonsKey][season]
}

// SeasonOf maps a month to its northern-hemisphere meteorological season.
func SeasonOf(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Autumn
	}
}

// Temperature labels returned by ClassifyTemperature.
const (
	TempCold     = "cold"
	TempCool     = "cool"
	TempPleasant = "pleasant"
	TempHot      = "hot"
)

// ClassifyTemperature buckets a temperature in Celsius.
func ClassifyTemperature(celsius float64) string {
	switch {
	case celsius < 10:
		return TempCold
	case celsius < 20:
		return TempCool
	case celsius < 30:
		return TempPleasant
	default:
		return TempHot
	}
}

// TierForTemperature maps a measured temperature onto a climate tier.
func TierForTemperature(celsius float64) string {
	switch ClassifyTemperature(celsius) {
	case TempCold:
		return TierCold
	case TempHot:
		return TierHot
	default:
		return TierTemperate
	}
}

// Alert returns a short packing alert for a weather description, or "".
func Alert(description string) string {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "hot"):
		return "Hot weather: extra sun protection and cooling items recommended"
	case strings.Contains(d, "cold"):
		return "Cold weather: warm layers and heating items essential"
	case strings.Contains(d, "rain"):
		return "Rainy season: pack waterproof items"
	default:
		return ""
	}
}

func validTier(t string) bool {
	return t == TierHot || t == TierCold || t == TierTemperate
}
