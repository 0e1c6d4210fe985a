package planner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/gobabygo/internal/packing"
	"github.com/dshills/gobabygo/internal/report"
	"github.com/dshills/gobabygo/internal/schema"
	"github.com/dshills/gobabygo/internal/scoring"
	"github.com/dshills/gobabygo/internal/trip"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewBuiltin(zaptest.NewLogger(t))
	require.NoError(t, err)
	return svc
}

func londonRequest() *trip.Request {
	return &trip.Request{
		BabyAgeMonths: 6,
		FlightHours:   7,
		Layovers:      1,
		DepartureTime: trip.DepartureMorning,
		PumpingNeeded: true,
		Experience:    trip.ExperienceExperienced,
		Destination:   "London",
		DepartureDate: "2026-06-01",
		ReturnDate:    "2026-06-06",
	}
}

func TestAnalyzeLondon(t *testing.T) {
	svc := newService(t)
	rep, err := svc.Analyze(context.Background(), londonRequest(), Options{TripFile: "london.yaml"})
	require.NoError(t, err)

	assert.Equal(t, Tool, rep.Tool)
	assert.Equal(t, scoring.NameComfort, rep.Input.Strategy)
	assert.Equal(t, 8, rep.Summary.Score)
	assert.Equal(t, "Excellent Comfort", rep.Summary.Level)
	assert.InDelta(t, 14.847, rep.Summary.Total, 1e-9)
	assert.Equal(t, 5, rep.Trip.DurationDays)
	assert.Equal(t, "summer", rep.Trip.Season)
	assert.Empty(t, rep.Trip.WeatherAlert)
	assert.Equal(t, "temperate", rep.Trip.Climate.Tier)

	assert.Len(t, rep.Packing.Items, 16)
	assert.Equal(t, packing.MaxItems(5), rep.Packing.MaxItems)
	assert.Contains(t, packing.Names(rep.Packing.Items), "Pump kit")
	assert.Empty(t, rep.Packing.Validation.Missing)

	require.Len(t, rep.Recommendations, 1)
	assert.Equal(t, "Pumping logistics", rep.Recommendations[0].Title)

	require.NotEmpty(t, rep.Hotels)
	assert.Equal(t, "Booking.com", rep.Hotels[0].Platform)
	assert.Contains(t, rep.Hotels[0].URL, "checkin=2026-06-01")
	assert.Equal(t, "Excellent", rep.Destination.FamilyRating)
	assert.Empty(t, schema.ValidateReport(rep))
}

func TestAnalyzeStressStrategy(t *testing.T) {
	svc := newService(t)
	rep, err := svc.Analyze(context.Background(), londonRequest(), Options{Strategy: "stress"})
	require.NoError(t, err)
	assert.Equal(t, scoring.NameStress, rep.Input.Strategy)
	assert.GreaterOrEqual(t, rep.Summary.Score, scoring.MinScore)
	assert.LessOrEqual(t, rep.Summary.Score, scoring.MaxScore)
	assert.Contains(t, rep.Summary.Level, "Stress")
}

func TestAnalyzeValidationErrors(t *testing.T) {
	svc := newService(t)
	req := londonRequest()
	req.FlightHours = -1
	req.Destination = ""

	_, err := svc.Analyze(context.Background(), req, Options{})
	require.Error(t, err)

	var verrs schema.Errors
	require.True(t, errors.As(err, &verrs))
	paths := make([]string, len(verrs))
	for i, v := range verrs {
		paths[i] = v.Path
	}
	assert.Contains(t, paths, "flight_hours")
	assert.Contains(t, paths, "destination")
}

func TestAnalyzeRejectsInfiniteFlight(t *testing.T) {
	req, err := trip.Parse([]byte("destination: London\nflight_hours: .inf\n"))
	require.NoError(t, err)

	_, err = newService(t).Analyze(context.Background(), req, Options{})
	var verrs schema.Errors
	require.True(t, errors.As(err, &verrs), "got %v", err)
	assert.Equal(t, "flight_hours", verrs[0].Path)
}

func TestAnalyzeStressHugeLayovers(t *testing.T) {
	req := &trip.Request{Destination: "London", Layovers: 1<<62 + 1<<61 + 1<<60}
	rep, err := newService(t).Analyze(context.Background(), req, Options{Strategy: scoring.NameStress})
	require.NoError(t, err)

	_, err = json.Marshal(rep)
	require.NoError(t, err)
	for _, f := range rep.Factors {
		assert.GreaterOrEqual(t, f.Value, 0.0, f.Key)
		assert.LessOrEqual(t, f.Value, f.Weight, f.Key)
	}
}

func TestAnalyzeLogsUnknownLabels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	svc, err := NewBuiltin(zap.New(core))
	require.NoError(t, err)

	req := londonRequest()
	req.DepartureTime = "whenever"
	req.Experience = "astronaut"
	_, err = svc.Analyze(context.Background(), req, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("unknown departure time scored as neutral").Len())
	assert.Equal(t, 1, logs.FilterMessage("unknown experience scored as neutral").Len())

	logs.TakeAll()
	_, err = svc.Analyze(context.Background(), londonRequest(), Options{})
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessageSnippet("unknown").Len())
}

func TestAnalyzeUnknownStrategy(t *testing.T) {
	svc := newService(t)
	_, err := svc.Analyze(context.Background(), londonRequest(), Options{Strategy: "luck"})
	var verrs schema.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "strategy", verrs[0].Path)
}

func TestAnalyzeCustomDestination(t *testing.T) {
	svc := newService(t)
	req := londonRequest()
	req.Destination = "Atlantis"
	rep, err := svc.Analyze(context.Background(), req, Options{})
	require.NoError(t, err)
	assert.Equal(t, "custom", rep.Trip.Destination.Source)
	assert.Equal(t, "temperate", rep.Trip.Climate.Tier)
}

func TestAnalyzeTemperatureOverridesTier(t *testing.T) {
	svc := newService(t)
	req := londonRequest()
	hot := 34.0
	req.TemperatureC = &hot
	rep, err := svc.Analyze(context.Background(), req, Options{})
	require.NoError(t, err)
	assert.Equal(t, "hot", rep.Trip.Climate.Tier)
	assert.Contains(t, packing.Names(rep.Packing.Items), "Baby sunscreen")
}

func TestAnalyzeWinterAlert(t *testing.T) {
	svc := newService(t)
	req := londonRequest()
	req.DepartureDate = "2026-01-10"
	req.ReturnDate = "2026-01-15"
	rep, err := svc.Analyze(context.Background(), req, Options{})
	require.NoError(t, err)
	assert.Equal(t, "winter", rep.Trip.Season)
	assert.Contains(t, rep.Trip.WeatherAlert, "Cold weather")
}

func TestAnalyzeCanceledContext(t *testing.T) {
	svc := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Analyze(ctx, londonRequest(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAnalyzeLongSoloTrip(t *testing.T) {
	svc := newService(t)
	solo := false
	req := &trip.Request{
		BabyAgeMonths:      1,
		FlightHours:        14,
		Layovers:           2,
		HasPartner:         &solo,
		FirstInternational: true,
		Destination:        "Sydney",
		TripDurationDays:   21,
	}
	rep, err := svc.Analyze(context.Background(), req, Options{})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rep.Packing.Items), packing.MaxItems(21))
	assert.LessOrEqual(t, len(rep.Recommendations), report.DefaultMaxRecommendations)
	assert.Contains(t, packing.Names(rep.Packing.Items), "Portable laundry detergent")
}

func TestStrategies(t *testing.T) {
	assert.Equal(t, []string{"comfort", "stress"}, newService(t).Strategies())
}
