// Package report defines the output of a trip analysis.
package report

import (
	"github.com/dshills/gobabygo/internal/hotels"
	"github.com/dshills/gobabygo/internal/locations"
	"github.com/dshills/gobabygo/internal/packing"
	"github.com/dshills/gobabygo/internal/refdata"
	"github.com/dshills/gobabygo/internal/scoring"
)

// Report is the top-level output object.
type Report struct {
	Tool             string                `json:"tool"`
	Version          string                `json:"version"`
	Input            Input                 `json:"input"`
	Trip             Trip                  `json:"trip"`
	Summary          Summary               `json:"summary"`
	Factors          []scoring.Factor      `json:"factors"`
	Strengths        []string              `json:"strengths"`
	Improvements     []string              `json:"improvements"`
	Recommendations  []Recommendation      `json:"recommendations"`
	Packing          Packing               `json:"packing"`
	Hotels           []hotels.Link         `json:"hotels"`
	BookingChecklist []string              `json:"booking_checklist"`
	Destination      locations.Insights    `json:"destination_insights"`
	Nearby           []refdata.Destination `json:"nearby,omitempty"`
}

// Input describes the files and settings used for the analysis.
type Input struct {
	TripFile string `json:"trip_file,omitempty"`
	TripHash string `json:"trip_hash,omitempty"`
	DataHash string `json:"data_hash,omitempty"`
	Strategy string `json:"strategy"`
}

// Trip echoes the normalized trip and its derived context.
type Trip struct {
	Destination   refdata.Destination  `json:"destination"`
	Origin        *refdata.Destination `json:"origin,omitempty"`
	DepartureDate string               `json:"departure_date,omitempty"`
	ReturnDate    string               `json:"return_date,omitempty"`
	DurationDays  int                  `json:"duration_days"`
	BabyAgeMonths int                  `json:"baby_age_months"`
	FlightHours   float64              `json:"flight_hours"`
	Layovers      int                  `json:"layovers"`
	DepartureTime string               `json:"departure_time,omitempty"`
	Experience    string               `json:"parent_experience,omitempty"`
	HasPartner    bool                 `json:"has_partner"`
	Climate       refdata.ClimateEntry `json:"climate"`
	Season        string               `json:"season,omitempty"`
	Weather       string               `json:"weather,omitempty"`
	WeatherAlert  string               `json:"weather_alert,omitempty"`
}

// Summary holds the score and its interpretation.
type Summary struct {
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	Level      string  `json:"level"`
	Message    string  `json:"message"`
	Assessment string  `json:"assessment"`
	Total      float64 `json:"total"`
	Max        float64 `json:"max"`
}

// Packing is the generated list and its essentials check.
type Packing struct {
	Items      []packing.Item     `json:"items"`
	MaxItems   int                `json:"max_items"`
	Validation packing.Validation `json:"validation"`
}

// Recommendation is a single piece of travel advice.
type Recommendation struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
}

// Severity indicates how urgent a recommendation is.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarn     Severity = "WARN"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarn, SeverityCritical:
		return true
	}
	return false
}

// Order returns a sort key (lower = more urgent).
func (s Severity) Order() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarn:
		return 1
	default:
		return 2
	}
}

// Summarize builds the summary from a scoring result and its insights.
func Summarize(r scoring.Result, ins scoring.Insights) Summary {
	return Summary{
		Score:      r.Score,
		MaxScore:   scoring.MaxScore,
		Level:      ins.Level,
		Message:    ins.Message,
		Assessment: ins.Assessment,
		Total:      r.Total,
		Max:        r.Max,
	}
}
