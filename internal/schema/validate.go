// Package schema validates trip requests at the boundary and checks reports
// for internal consistency.
package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/gobabygo/internal/packing"
	"github.com/dshills/gobabygo/internal/report"
	"github.com/dshills/gobabygo/internal/scoring"
	"github.com/dshills/gobabygo/internal/trip"
)

const epsilon = 1e-6

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Errors collects validation failures. A nil or empty Errors means valid.
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Error()
	}
	return strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when there are no failures.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateRequest rejects malformed trip requests. Unknown enum labels are
// accepted; scoring treats them as neutral.
func ValidateRequest(r *trip.Request, strategy string) Errors {
	var errs Errors
	if r == nil {
		return Errors{{"", "request required"}}
	}

	if strings.TrimSpace(r.Destination) == "" {
		errs = append(errs, ValidationError{"destination", "required"})
	}
	if r.BabyAgeMonths < 0 {
		errs = append(errs, ValidationError{"baby_age_months", "must be >= 0"})
	}
	if r.FlightHours < 0 || math.IsNaN(r.FlightHours) || math.IsInf(r.FlightHours, 0) {
		errs = append(errs, ValidationError{"flight_hours", "must be a finite number >= 0"})
	}
	if r.Layovers < 0 {
		errs = append(errs, ValidationError{"layovers", "must be >= 0"})
	}
	if r.TripDurationDays < 0 {
		errs = append(errs, ValidationError{"trip_duration_days", "must be >= 0"})
	}
	if r.TemperatureC != nil && (math.IsNaN(*r.TemperatureC) || math.IsInf(*r.TemperatureC, 0)) {
		errs = append(errs, ValidationError{"temperature_c", "must be a finite number"})
	}

	dep, ret, err := r.Dates()
	switch {
	case err != nil:
		path, msg, _ := strings.Cut(err.Error(), ": ")
		errs = append(errs, ValidationError{path, fmt.Sprintf("expected %s: %s", trip.DateLayout, msg)})
	case !dep.IsZero() && !ret.IsZero() && ret.Before(dep):
		errs = append(errs, ValidationError{"return_date", "must not be before departure_date"})
	}

	if strategy != "" && !validStrategy(strategy) {
		errs = append(errs, ValidationError{"strategy", fmt.Sprintf("unknown strategy %q (want one of %s)", strategy, strings.Join(scoring.Names(), ", "))})
	}
	return errs
}

// ValidateReport checks a Report for structural validity and internal consistency.
func ValidateReport(r *report.Report) Errors {
	var errs Errors

	if r.Tool == "" {
		errs = append(errs, ValidationError{"tool", "required"})
	}
	if r.Version == "" {
		errs = append(errs, ValidationError{"version", "required"})
	}
	if !validStrategy(r.Input.Strategy) {
		errs = append(errs, ValidationError{"input.strategy", fmt.Sprintf("invalid: %q", r.Input.Strategy)})
	}
	if r.Trip.DurationDays < 1 {
		errs = append(errs, ValidationError{"trip.duration_days", "must be >= 1"})
	}

	s := r.Summary
	if s.Score < scoring.MinScore || s.Score > scoring.MaxScore {
		errs = append(errs, ValidationError{"summary.score", fmt.Sprintf("%d out of range %d-%d", s.Score, scoring.MinScore, scoring.MaxScore)})
	}
	if s.MaxScore != scoring.MaxScore {
		errs = append(errs, ValidationError{"summary.max_score", fmt.Sprintf("expected %d, got %d", scoring.MaxScore, s.MaxScore)})
	}
	if s.Level == "" {
		errs = append(errs, ValidationError{"summary.level", "required"})
	}

	// Factor bounds and totals
	var total, max float64
	seen := make(map[string]bool)
	for i, f := range r.Factors {
		prefix := fmt.Sprintf("factors[%d]", i)
		if f.Key == "" {
			errs = append(errs, ValidationError{prefix + ".key", "required"})
		} else if seen[f.Key] {
			errs = append(errs, ValidationError{prefix + ".key", fmt.Sprintf("duplicate key: %q", f.Key)})
		} else {
			seen[f.Key] = true
		}
		if f.Value < -epsilon || f.Value > f.Weight+epsilon {
			errs = append(errs, ValidationError{prefix + ".value", fmt.Sprintf("%g outside [0, %g]", f.Value, f.Weight)})
		}
		total += f.Value
		max += f.Weight
	}
	if len(r.Factors) == 0 {
		errs = append(errs, ValidationError{"factors", "at least one factor required"})
	} else {
		if math.Abs(total-s.Total) > epsilon {
			errs = append(errs, ValidationError{"summary.total", fmt.Sprintf("%g does not match factor sum %g", s.Total, total)})
		}
		if math.Abs(max-s.Max) > epsilon {
			errs = append(errs, ValidationError{"summary.max", fmt.Sprintf("%g does not match weight sum %g", s.Max, max)})
		}
		if expected := scoring.ScoreFromTotal(r.Input.Strategy, total, max); s.Score != expected {
			errs = append(errs, ValidationError{"summary.score", fmt.Sprintf("score %d does not match computed %d", s.Score, expected)})
		}
	}

	if len(r.Recommendations) > report.DefaultMaxRecommendations {
		errs = append(errs, ValidationError{"recommendations", fmt.Sprintf("at most %d allowed, got %d", report.DefaultMaxRecommendations, len(r.Recommendations))})
	}
	for i, rec := range r.Recommendations {
		prefix := fmt.Sprintf("recommendations[%d]", i)
		if !rec.Severity.Valid() {
			errs = append(errs, ValidationError{prefix + ".severity", fmt.Sprintf("invalid: %q", rec.Severity)})
		}
		if rec.Title == "" {
			errs = append(errs, ValidationError{prefix + ".title", "required"})
		}
	}

	errs = append(errs, validatePacking(r.Packing)...)

	for i, h := range r.Hotels {
		if h.URL == "" {
			errs = append(errs, ValidationError{fmt.Sprintf("hotels[%d].url", i), "required"})
		}
	}
	return errs
}

func validatePacking(p report.Packing) Errors {
	var errs Errors
	if p.MaxItems > 0 && len(p.Items) > p.MaxItems {
		errs = append(errs, ValidationError{"packing.items", fmt.Sprintf("%d items exceed cap %d", len(p.Items), p.MaxItems)})
	}
	names := make(map[string]bool)
	for i, it := range p.Items {
		prefix := fmt.Sprintf("packing.items[%d]", i)
		key := strings.ToLower(it.Name)
		switch {
		case it.Name == "":
			errs = append(errs, ValidationError{prefix + ".name", "required"})
		case names[key]:
			errs = append(errs, ValidationError{prefix + ".name", fmt.Sprintf("duplicate item: %q", it.Name)})
		default:
			names[key] = true
		}
		if it.Priority < packing.Essential || it.Priority > packing.Optional {
			errs = append(errs, ValidationError{prefix + ".priority", fmt.Sprintf("invalid: %d", it.Priority)})
		}
	}
	if v := p.Validation.Score; v < 0 || v > 100 {
		errs = append(errs, ValidationError{"packing.validation.score", fmt.Sprintf("%g outside [0, 100]", v)})
	}
	return errs
}

func validStrategy(name string) bool {
	for _, n := range scoring.Names() {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
