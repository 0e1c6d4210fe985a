package internal

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dshills/gobabygo/internal/packing"
	"github.com/dshills/gobabygo/internal/planner"
	"github.com/dshills/gobabygo/internal/report"
	"github.com/dshills/gobabygo/internal/schema"
	"github.com/dshills/gobabygo/internal/trip"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

type goldenFactor struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// goldenView is the stable projection of a report checked against testdata/golden.
type goldenView struct {
	Strategy        string         `json:"strategy"`
	Score           int            `json:"score"`
	Level           string         `json:"level"`
	Factors         []goldenFactor `json:"factors"`
	Strengths       []string       `json:"strengths"`
	Improvements    []string       `json:"improvements"`
	Recommendations []string       `json:"recommendations"`
	Season          string         `json:"season"`
	Packing         []string       `json:"packing"`
	Hotels          []string       `json:"hotels"`
}

func viewOf(r *report.Report) goldenView {
	v := goldenView{
		Strategy:     r.Input.Strategy,
		Score:        r.Summary.Score,
		Level:        r.Summary.Level,
		Strengths:    r.Strengths,
		Improvements: r.Improvements,
		Season:       r.Trip.Season,
		Packing:      packing.Names(r.Packing.Items),
	}
	for _, f := range r.Factors {
		v.Factors = append(v.Factors, goldenFactor{f.Key, f.Value})
	}
	for _, rec := range r.Recommendations {
		v.Recommendations = append(v.Recommendations, rec.Title)
	}
	for _, h := range r.Hotels {
		v.Hotels = append(v.Hotels, h.Platform)
	}
	return v
}

func analyzeFile(t *testing.T, name string) *report.Report {
	t.Helper()
	tf, err := trip.Load(filepath.Join(projectRoot(), "testdata", "trips", name))
	if err != nil {
		t.Fatalf("failed to load trip: %v", err)
	}
	svc, err := planner.NewBuiltin(nil)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := svc.Analyze(context.Background(), &tf.Request, planner.Options{TripFile: name, TripHash: tf.Hash})
	if err != nil {
		t.Fatalf("analyze %s: %v", name, err)
	}
	return rep
}

func TestGoldenLondonReport(t *testing.T) {
	rep := analyzeFile(t, "london.yaml")

	goldenData, err := os.ReadFile(filepath.Join(projectRoot(), "testdata", "golden", "london.json"))
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	var want goldenView
	if err := json.Unmarshal(goldenData, &want); err != nil {
		t.Fatalf("failed to parse golden JSON: %v", err)
	}

	if diff := cmp.Diff(want, viewOf(rep), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if rep.Trip.Origin == nil || rep.Trip.Origin.Name != "New York" {
		t.Errorf("origin = %+v, want New York", rep.Trip.Origin)
	}
}

func TestGoldenReportRoundTrip(t *testing.T) {
	rep := analyzeFile(t, "dubai-solo.json")

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatal(err)
	}
	var back report.Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	for _, e := range schema.ValidateReport(&back) {
		t.Errorf("validation error after round trip: %s", e)
	}
	if diff := cmp.Diff(viewOf(rep), viewOf(&back)); diff != "" {
		t.Errorf("round trip changed report (-orig +decoded):\n%s", diff)
	}
}

func TestGoldenDubaiSoloTrip(t *testing.T) {
	rep := analyzeFile(t, "dubai-solo.json")

	if rep.Trip.DurationDays != 18 {
		t.Errorf("duration = %d, want 18", rep.Trip.DurationDays)
	}
	if rep.Trip.Climate.Tier != "hot" {
		t.Errorf("climate tier = %q, want hot", rep.Trip.Climate.Tier)
	}
	if n, max := len(rep.Packing.Items), packing.MaxItems(18); n > max {
		t.Errorf("packing list has %d items, cap %d", n, max)
	}
	want := []string{"Booking.com", "Airbnb", "Hotels.com", "Expedia", "Google Maps", "Beach Resorts"}
	if diff := cmp.Diff(want, viewOf(rep).Hotels); diff != "" {
		t.Errorf("hotel platforms (-want +got):\n%s", diff)
	}
	if len(rep.Recommendations) != report.DefaultMaxRecommendations {
		t.Errorf("recommendations = %d, want %d", len(rep.Recommendations), report.DefaultMaxRecommendations)
	}
}
