package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/dshills/gobabygo/internal/packing"
	"github.com/dshills/gobabygo/internal/report"
)

// PDF renders a report as an A4 PDF document.
func PDF(r *report.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Baby Travel Report", false)
	pdf.SetCreator(r.Tool+" "+r.Version, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Baby Travel Report: "+r.Trip.Destination.Display))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Score: %d / %d  (%s)", r.Summary.Score, r.Summary.MaxScore, r.Summary.Level))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(r.Summary.Message), "", "", false)
	if r.Summary.Assessment != "" {
		pdf.MultiCell(0, 6, tr(r.Summary.Assessment), "", "", false)
	}
	pdf.Ln(4)

	heading := func(title string) {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
	}
	bullets := func(lines []string) {
		for _, l := range lines {
			pdf.MultiCell(0, 6, tr("- "+l), "", "", false)
		}
		pdf.Ln(3)
	}

	heading("Trip")
	bullets(tripLines(r))

	heading("Factor Breakdown")
	for _, f := range r.Factors {
		pdf.CellFormat(90, 6, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f / %.0f", f.Value, f.Weight), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.0f%%", f.Percent()*100), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	if len(r.Strengths) > 0 {
		heading("Strengths")
		bullets(r.Strengths)
	}
	if len(r.Improvements) > 0 {
		heading(improvementsHeading(r.Input.Strategy))
		bullets(r.Improvements)
	}
	if len(r.Recommendations) > 0 {
		heading(fmt.Sprintf("Recommendations (%s)", severityCounts(r.Recommendations)))
		recs := make([]string, len(r.Recommendations))
		for i, rec := range bySeverity(r.Recommendations) {
			recs[i] = fmt.Sprintf("[%s] %s: %s", rec.Severity, rec.Title, rec.Detail)
		}
		bullets(recs)
	}

	heading(fmt.Sprintf("Packing List (%d items)", len(r.Packing.Items)))
	order, groups := packing.ByCategory(r.Packing.Items)
	for _, cat := range order {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, tr(cat))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		names := packing.Names(groups[cat])
		pdf.MultiCell(0, 6, tr(strings.Join(names, ", ")), "", "", false)
	}
	pdf.Ln(3)

	if len(r.Hotels) > 0 {
		heading("Family-Friendly Stays")
		for _, h := range r.Hotels {
			pdf.SetTextColor(0, 0, 200)
			pdf.WriteLinkString(6, tr(h.Platform), h.URL)
			pdf.SetTextColor(0, 0, 0)
			pdf.Write(6, tr(": "+h.Description))
			pdf.Ln(6)
		}
		pdf.Ln(3)
	}

	heading("Destination Insights")
	for _, kv := range insightRows(r) {
		pdf.Cell(0, 6, tr(kv[0]+": "+kv[1]))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Scores are guidance for planning, not medical advice. Check airline and health requirements before travel.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render.PDF: %w", err)
	}
	return buf.Bytes(), nil
}
