// Package render produces Markdown and PDF output from a report.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/gobabygo/internal/packing"
	"github.com/dshills/gobabygo/internal/report"
	"github.com/dshills/gobabygo/internal/scoring"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *report.Report) string {
	var b strings.Builder

	// Summary
	fmt.Fprintf(&b, "# Baby Travel Report: %s\n\n", r.Trip.Destination.Display)
	fmt.Fprintf(&b, "**Score:** %d / %d (%s, %s strategy)\n", r.Summary.Score, r.Summary.MaxScore, r.Summary.Level, r.Input.Strategy)
	fmt.Fprintf(&b, "**Points:** %.1f / %.0f\n\n", r.Summary.Total, r.Summary.Max)
	fmt.Fprintf(&b, "%s\n\n", r.Summary.Message)
	if r.Summary.Assessment != "" {
		fmt.Fprintf(&b, "**Assessment:** %s\n\n", r.Summary.Assessment)
	}

	b.WriteString("## Trip\n\n")
	for _, line := range tripLines(r) {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n")

	b.WriteString("## Factor Breakdown\n\n")
	b.WriteString("| Factor | Points | Max | Share |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, f := range r.Factors {
		fmt.Fprintf(&b, "| %s | %.2f | %.0f | %.0f%% |\n", f.Label, f.Value, f.Weight, f.Percent()*100)
	}
	b.WriteString("\n")

	writeList(&b, "Strengths", r.Strengths)
	writeList(&b, improvementsHeading(r.Input.Strategy), r.Improvements)

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(&b, "## Recommendations\n\n%s\n\n", severityCounts(r.Recommendations))
		for _, rec := range bySeverity(r.Recommendations) {
			fmt.Fprintf(&b, "- **[%s] %s:** %s\n", rec.Severity, rec.Title, rec.Detail)
		}
		b.WriteString("\n")
	}

	// Packing
	fmt.Fprintf(&b, "## Packing List (%d items)\n\n", len(r.Packing.Items))
	order, groups := packing.ByCategory(r.Packing.Items)
	for _, cat := range order {
		fmt.Fprintf(&b, "### %s\n\n", cat)
		for _, it := range groups[cat] {
			fmt.Fprintf(&b, "- %s (%s)\n", it.Name, it.Priority)
		}
		b.WriteString("\n")
	}
	v := r.Packing.Validation
	fmt.Fprintf(&b, "**Essentials coverage:** %.0f%%\n", v.Score)
	if len(v.Missing) > 0 {
		fmt.Fprintf(&b, "**Missing:** %s\n", strings.Join(v.Missing, ", "))
	}
	b.WriteString("\n")

	if len(r.Hotels) > 0 {
		b.WriteString("## Family-Friendly Stays\n\n")
		for _, h := range r.Hotels {
			fmt.Fprintf(&b, "- [%s](%s): %s\n", h.Platform, h.URL, h.Description)
			if len(h.Filters) > 0 {
				fmt.Fprintf(&b, "  - Filters: %s\n", strings.Join(h.Filters, ", "))
			}
		}
		b.WriteString("\n")
	}
	writeList(&b, "Booking Checklist", r.BookingChecklist)

	b.WriteString("## Destination Insights\n\n")
	for _, kv := range insightRows(r) {
		fmt.Fprintf(&b, "- **%s:** %s\n", kv[0], kv[1])
	}
	b.WriteString("\n")

	if len(r.Nearby) > 0 {
		names := make([]string, len(r.Nearby))
		for i, n := range r.Nearby {
			names[i] = n.Display
		}
		fmt.Fprintf(&b, "**Nearby:** %s\n", strings.Join(names, ", "))
	}

	return b.String()
}

// bySeverity returns a copy of recs with the most urgent first.
func bySeverity(recs []report.Recommendation) []report.Recommendation {
	out := append([]report.Recommendation(nil), recs...)
	report.SortBySeverity(out)
	return out
}

func severityCounts(recs []report.Recommendation) string {
	counts := report.CountBySeverity(recs)
	var parts []string
	for _, sev := range []report.Severity{report.SeverityCritical, report.SeverityWarn, report.SeverityInfo} {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(string(sev))))
		}
	}
	return strings.Join(parts, ", ")
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func improvementsHeading(strategy string) string {
	if strategy == scoring.NameStress {
		return "Biggest Stress Sources"
	}
	return "Areas to Improve"
}

func tripLines(r *report.Report) []string {
	t := r.Trip
	var lines []string
	route := t.Destination.Display
	if t.Origin != nil {
		route = t.Origin.Display + " to " + route
	}
	lines = append(lines, "Route: "+route)
	switch {
	case t.DepartureDate != "" && t.ReturnDate != "":
		lines = append(lines, fmt.Sprintf("Dates: %s to %s (%d days)", t.DepartureDate, t.ReturnDate, t.DurationDays))
	case t.DepartureDate != "":
		lines = append(lines, fmt.Sprintf("Departing: %s (%d days)", t.DepartureDate, t.DurationDays))
	default:
		lines = append(lines, fmt.Sprintf("Duration: %d days", t.DurationDays))
	}
	lines = append(lines, fmt.Sprintf("Baby age: %d months", t.BabyAgeMonths))
	flight := fmt.Sprintf("Flight: %.1f h, %d layover(s)", t.FlightHours, t.Layovers)
	if t.DepartureTime != "" {
		flight += ", " + t.DepartureTime
	}
	lines = append(lines, flight)
	if t.HasPartner {
		lines = append(lines, "Travelling with a partner")
	} else {
		lines = append(lines, "Travelling solo")
	}
	c := t.Climate
	lines = append(lines, fmt.Sprintf("Climate: %s, %s (%s)", c.Label, c.Temp, c.Tier))
	if t.Season != "" {
		lines = append(lines, fmt.Sprintf("Weather in %s: %s", t.Season, t.Weather))
	}
	if t.WeatherAlert != "" {
		lines = append(lines, "Alert: "+t.WeatherAlert)
	}
	return lines
}

func insightRows(r *report.Report) [][2]string {
	d := r.Destination
	return [][2]string{
		{"Family rating", d.FamilyRating},
		{"Infrastructure", d.Infrastructure},
		{"Language barrier", d.LanguageBarrier},
		{"Medical facilities", d.MedicalFacilities},
		{"Baby facilities", d.BabyFacilities},
	}
}
