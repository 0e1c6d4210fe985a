package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dshills/gobabygo/internal/report"
)

func tripPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "trips", name)
}

func newFlags() (*scoreFlags, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &scoreFlags{
		strategy:          "comfort",
		format:            "json",
		severityThreshold: "info",
		logLevel:          "error",
		noColor:           true,
		stdout:            &out,
		stderr:            &errOut,
	}, &out, &errOut
}

func assertExitCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if wantCode == 0 {
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", wantCode)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr, got %T: %v", err, err)
	}
	if ee.code != wantCode {
		t.Errorf("exit code = %d, want %d (msg: %s)", ee.code, wantCode, ee.msg)
	}
}

// --- Pure function tests ---

func TestSeverityThresholdOrder(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"critical", 0},
		{"CRITICAL", 0},
		{"warn", 1},
		{"info", 2},
		{"", 2},
		{"unknown", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := severityThresholdOrder(tt.input); got != tt.want {
				t.Errorf("severityThresholdOrder(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterBySeverity(t *testing.T) {
	recs := []report.Recommendation{
		{Title: "C1", Severity: report.SeverityCritical},
		{Title: "W1", Severity: report.SeverityWarn},
		{Title: "I1", Severity: report.SeverityInfo},
	}
	tests := []struct {
		threshold string
		want      []string
	}{
		{"critical", []string{"C1"}},
		{"warn", []string{"C1", "W1"}},
		{"info", []string{"C1", "W1", "I1"}},
	}
	for _, tt := range tests {
		t.Run(tt.threshold, func(t *testing.T) {
			got := filterBySeverity(recs, tt.threshold)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d recommendations, want %d", len(got), len(tt.want))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Errorf("[%d] = %q, want %q", i, got[i].Title, title)
				}
			}
		})
	}
}

// --- runScore tests ---

func TestRunScoreJSON(t *testing.T) {
	f, out, _ := newFlags()
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 0)

	var rep report.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("output is not a report: %v", err)
	}
	if rep.Summary.Score != 8 {
		t.Errorf("score = %d, want 8", rep.Summary.Score)
	}
	if rep.Input.TripFile != "london.yaml" || !strings.HasPrefix(rep.Input.TripHash, "sha256:") {
		t.Errorf("input = %+v", rep.Input)
	}
}

func TestRunScoreJSONTripFile(t *testing.T) {
	f, out, _ := newFlags()
	f.strategy = "stress"
	assertExitCode(t, runScore(tripPath("dubai-solo.json"), f), 0)
	if !strings.Contains(out.String(), `"strategy": "stress"`) {
		t.Error("expected stress strategy in output")
	}
}

func TestRunScoreMarkdownToFile(t *testing.T) {
	dir := t.TempDir()
	f, out, errOut := newFlags()
	f.format = "md"
	f.out = filepath.Join(dir, "report.md")
	f.checklistOut = filepath.Join(dir, "checklist.md")

	assertExitCode(t, runScore(tripPath("london.yaml"), f), 0)

	if out.Len() != 0 {
		t.Error("stdout should be empty when --out is set")
	}
	if !strings.Contains(errOut.String(), "8/10 Excellent Comfort") {
		t.Errorf("banner missing: %q", errOut.String())
	}
	md, err := os.ReadFile(f.out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "# Baby Travel Report: London") {
		t.Error("expected markdown report")
	}
	cl, err := os.ReadFile(f.checklistOut)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cl), "- [ ] Diapers") {
		t.Error("expected checklist entries")
	}
}

func TestRunScorePDF(t *testing.T) {
	f, _, _ := newFlags()
	f.format = "pdf"
	f.out = filepath.Join(t.TempDir(), "report.pdf")
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 0)

	data, err := os.ReadFile(f.out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("expected PDF output")
	}
}

func TestRunScorePDFNeedsOut(t *testing.T) {
	f, _, _ := newFlags()
	f.format = "pdf"
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 3)
}

func TestRunScoreFormatUnknown(t *testing.T) {
	f, _, _ := newFlags()
	f.format = "xml"
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 3)
}

func TestRunScoreMissingTripFile(t *testing.T) {
	f, _, _ := newFlags()
	assertExitCode(t, runScore("/nonexistent/trip.yaml", f), 3)
}

func TestRunScoreInvalidTrip(t *testing.T) {
	f, _, errOut := newFlags()
	assertExitCode(t, runScore(tripPath("invalid.yaml"), f), 3)
	for _, path := range []string{"baby_age_months", "flight_hours", "destination", "return_date"} {
		if !strings.Contains(errOut.String(), path) {
			t.Errorf("stderr missing %s: %q", path, errOut.String())
		}
	}
}

func TestRunScoreUnknownStrategy(t *testing.T) {
	f, _, _ := newFlags()
	f.strategy = "luck"
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 3)
}

func TestRunScoreFailBelow(t *testing.T) {
	f, _, _ := newFlags()
	f.failBelow = 9
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 2)

	f, _, _ = newFlags()
	f.failBelow = 8
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 0)
}

func TestRunScoreDataOverride(t *testing.T) {
	f, out, _ := newFlags()
	f.dataPath = filepath.Join(filepath.Dir(tripPath("london.yaml")), "..", "data", "override.yaml")
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 0)

	var rep report.Report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Input.DataHash == "" {
		t.Error("expected data hash for override file")
	}
}

func TestRunScoreBadDataFile(t *testing.T) {
	f, _, _ := newFlags()
	f.dataPath = "/nonexistent/data.yaml"
	assertExitCode(t, runScore(tripPath("london.yaml"), f), 3)
}

func TestRunDestinations(t *testing.T) {
	var out bytes.Buffer
	if err := runDestinations(&out, "dubai", &destinationsFlags{limit: 5}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "NAME") || !strings.Contains(out.String(), "Dubai") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := runDestinations(&out, "", &destinationsFlags{family: true, limit: 3}); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(strings.TrimSpace(out.String()), "\n"); lines != 3 {
		t.Errorf("expected header plus 3 rows, got:\n%s", out.String())
	}

	out.Reset()
	if err := runDestinations(&out, "qqqqq", &destinationsFlags{limit: 5}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No destinations match") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestRunDestinationsTables(t *testing.T) {
	var out bytes.Buffer
	if err := runDestinations(&out, "", &destinationsFlags{tables: true}); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"climate\n", "destinations\n", "locations\n", "data hash: builtin"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunScoreInfiniteFlightHours(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.yaml")
	if err := os.WriteFile(path, []byte("destination: London\nflight_hours: .inf\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, _, errOut := newFlags()
	assertExitCode(t, runScore(path, f), 3)
	if !strings.Contains(errOut.String(), "flight_hours") {
		t.Errorf("stderr missing flight_hours: %q", errOut.String())
	}
}
