// Package planner runs a trip request through validation, scoring, packing
// and hotel search, and assembles the report.
package planner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/gobabygo/internal/climate"
	"github.com/dshills/gobabygo/internal/hotels"
	"github.com/dshills/gobabygo/internal/locations"
	"github.com/dshills/gobabygo/internal/packing"
	"github.com/dshills/gobabygo/internal/refdata"
	"github.com/dshills/gobabygo/internal/report"
	"github.com/dshills/gobabygo/internal/schema"
	"github.com/dshills/gobabygo/internal/scoring"
	"github.com/dshills/gobabygo/internal/trip"
)

// Tool is the report's tool name.
const Tool = "gobabygo"

// Version is stamped into every report.
var Version = "1.0.0"

// Options control a single analysis.
type Options struct {
	Strategy string
	TripFile string
	TripHash string
}

// Service holds the read-only tables shared by every analysis.
type Service struct {
	data    *refdata.Data
	dir     *locations.Directory
	climate *climate.Table
	log     *zap.Logger
}

// New builds a Service over data. A nil logger disables logging.
func New(data *refdata.Data, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		data:    data,
		dir:     locations.New(data),
		climate: climate.New(data.Climate),
		log:     log,
	}
}

// NewBuiltin builds a Service over the embedded reference data.
func NewBuiltin(log *zap.Logger) (*Service, error) {
	data, err := refdata.LoadBuiltin()
	if err != nil {
		return nil, fmt.Errorf("planner.NewBuiltin: %w", err)
	}
	return New(data, log), nil
}

// Directory exposes the destination directory.
func (s *Service) Directory() *locations.Directory { return s.dir }

// Climate exposes the climate table.
func (s *Service) Climate() *climate.Table { return s.climate }

// Strategies lists the available scoring strategies.
func (s *Service) Strategies() []string { return scoring.Names() }

// Analyze validates req and produces a full report. Validation failures are
// returned as schema.Errors.
func (s *Service) Analyze(ctx context.Context, req *trip.Request, opts Options) (*report.Report, error) {
	if err := schema.ValidateRequest(req, opts.Strategy).Err(); err != nil {
		s.log.Debug("request rejected", zap.Error(err))
		return nil, err
	}
	strat, err := scoring.New(opts.Strategy, s.data.Tiers)
	if err != nil {
		return nil, fmt.Errorf("planner.Analyze: %w", err)
	}

	dest := s.dir.Resolve(req.Destination)
	var origin *refdata.Destination
	if strings.TrimSpace(req.DepartureCity) != "" {
		o := s.dir.Resolve(req.DepartureCity)
		origin = &o
	}
	in := trip.NewInput(req, dest, origin)
	if in.DepartureTime != "" && !in.DepartureTime.Valid() {
		s.log.Debug("unknown departure time scored as neutral", zap.String("departure_time", string(in.DepartureTime)))
	}
	if in.Experience != "" && !in.Experience.Valid() {
		s.log.Debug("unknown experience scored as neutral", zap.String("experience", string(in.Experience)))
	}

	tier := s.climate.Tier(dest)
	if in.TemperatureC != nil {
		tier = climate.TierForTemperature(*in.TemperatureC)
	}

	res := strat.Score(in)
	ins := strat.Insights(res)
	s.log.Debug("scored trip",
		zap.String("strategy", res.Strategy),
		zap.String("destination", dest.Name),
		zap.Int("score", res.Score),
		zap.Float64("total", res.Total),
	)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("planner.Analyze: %w", err)
	}

	items := packing.Generate(in, res.ComfortEquivalent(), tier)
	rep := &report.Report{
		Tool:    Tool,
		Version: Version,
		Input: report.Input{
			TripFile: opts.TripFile,
			TripHash: opts.TripHash,
			DataHash: s.data.Hash,
			Strategy: res.Strategy,
		},
		Trip:            s.tripSummary(in, tier),
		Summary:         report.Summarize(res, ins),
		Factors:         res.Factors,
		Strengths:       nonNil(ins.Strengths),
		Improvements:    nonNil(ins.Improvements),
		Recommendations: report.Recommendations(in, res),
		Packing: report.Packing{
			Items:      items,
			MaxItems:   packing.MaxItems(in.TripDurationDays),
			Validation: packing.Validate(packing.Names(items), in.BabyAgeMonths, in.TripDurationDays),
		},
		Hotels:           hotels.Build(in),
		BookingChecklist: hotels.Checklist(),
		Destination:      s.dir.Insights(dest),
		Nearby:           s.dir.Nearby(dest, 0),
	}

	if errs := schema.ValidateReport(rep); len(errs) > 0 {
		s.log.Error("inconsistent report", zap.Error(errs))
		return nil, fmt.Errorf("planner.Analyze: inconsistent report: %w", errs)
	}
	s.log.Info("analysis complete",
		zap.String("destination", dest.Display),
		zap.String("strategy", res.Strategy),
		zap.Int("score", res.Score),
		zap.Int("packing_items", len(items)),
	)
	return rep, nil
}

func (s *Service) tripSummary(in trip.Input, tier string) report.Trip {
	t := report.Trip{
		Destination:   in.Destination,
		Origin:        in.Origin,
		DurationDays:  in.TripDurationDays,
		BabyAgeMonths: in.BabyAgeMonths,
		FlightHours:   in.FlightHours,
		Layovers:      in.Layovers,
		DepartureTime: string(in.DepartureTime),
		Experience:    string(in.Experience),
		HasPartner:    in.HasPartner,
		Climate:       s.climate.Info(in.Destination),
	}
	t.Climate.Tier = tier
	if !in.DepartureDate.IsZero() {
		t.DepartureDate = in.DepartureDate.Format(trip.DateLayout)
		t.Season, t.Weather = s.climate.Season(in.DepartureDate, in.Destination.Name)
		t.WeatherAlert = climate.Alert(t.Weather)
	}
	if !in.ReturnDate.IsZero() {
		t.ReturnDate = in.ReturnDate.Format(trip.DateLayout)
	}
	return t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
