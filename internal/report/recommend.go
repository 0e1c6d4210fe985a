package report

import (
	"sort"

	"github.com/dshills/gobabygo/internal/scoring"
	"github.com/dshills/gobabygo/internal/trip"
)

// DefaultMaxRecommendations caps the recommendation list.
const DefaultMaxRecommendations = 5

// Recommendations derives advice from the trip and its score. Advice is
// produced in a fixed order and capped at DefaultMaxRecommendations.
func Recommendations(in trip.Input, r scoring.Result) []Recommendation {
	var recs []Recommendation
	if r.ComfortEquivalent() <= 4 {
		title := "Low comfort detected"
		if r.Strategy == scoring.NameStress {
			title = "High stress detected"
		}
		recs = append(recs, Recommendation{SeverityCritical, title,
			"Consider postponing or choosing a closer destination"})
	}
	switch {
	case in.BabyAgeMonths < 3:
		recs = append(recs, Recommendation{SeverityInfo, "Newborn advantage",
			"Use feeding times for ear pressure relief during takeoff and landing"})
	case in.BabyAgeMonths >= 12:
		recs = append(recs, Recommendation{SeverityInfo, "Entertainment prep",
			"Download content and pack quiet activities"})
	}
	if in.FlightHours > 10 {
		recs = append(recs, Recommendation{SeverityWarn, "Long-haul prep",
			"Book bulkhead seats and request a bassinet"})
	}
	if !in.HasPartner {
		recs = append(recs, Recommendation{SeverityWarn, "Solo parent",
			"Pre-book airport assistance"})
	}
	if in.PumpingNeeded {
		recs = append(recs, Recommendation{SeverityInfo, "Pumping logistics",
			"Research nursing rooms at your airports"})
	}
	if in.FirstInternational {
		recs = append(recs, Recommendation{SeverityWarn, "Documentation",
			"Check passport validity (6+ months) and visa rules for the baby"})
	}
	if in.TripDurationDays > 14 {
		recs = append(recs, Recommendation{SeverityInfo, "Extended stay",
			"Plan laundry access and where to restock baby supplies locally"})
	}
	return Truncate(recs, DefaultMaxRecommendations)
}

// Truncate keeps the first max recommendations.
func Truncate(recs []Recommendation, max int) []Recommendation {
	if max <= 0 {
		max = DefaultMaxRecommendations
	}
	if len(recs) > max {
		return recs[:max]
	}
	if recs == nil {
		return []Recommendation{}
	}
	return recs
}

// SortBySeverity orders recommendations most urgent first, keeping the
// original order within a severity.
func SortBySeverity(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Severity.Order() < recs[j].Severity.Order()
	})
}

// CountBySeverity tallies recommendations per severity.
func CountBySeverity(recs []Recommendation) map[Severity]int {
	counts := map[Severity]int{}
	for _, r := range recs {
		counts[r.Severity]++
	}
	return counts
}
