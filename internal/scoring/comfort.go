package scoring

import (
	"math"

	"github.com/dshills/gobabygo/internal/refdata"
	"github.com/dshills/gobabygo/internal/trip"
)

// Comfort factor keys, in canonical order.
const (
	FactorBabyAge      = "baby_age_comfort"
	FactorFlight       = "flight_comfort"
	FactorLogistics    = "logistical_ease"
	FactorTiming       = "timing_convenience"
	FactorSupport      = "support_system"
	FactorMedical      = "medical_preparedness"
	FactorExperience   = "experience_advantage"
	FactorDestination  = "destination_friendliness"
	FactorTripDuration = "trip_duration_comfort"
)

type factorDef struct {
	key    string
	label  string
	weight float64
}

var comfortFactors = []factorDef{
	{FactorBabyAge, "Baby age suitability", 3},
	{FactorFlight, "Flight convenience", 3},
	{FactorLogistics, "Travel logistics", 2},
	{FactorTiming, "Departure timing", 2},
	{FactorSupport, "Support system", 2},
	{FactorMedical, "Medical considerations", 1},
	{FactorExperience, "Travel experience", 2},
	{FactorDestination, "Destination suitability", 1},
	{FactorTripDuration, "Trip length appropriateness", 2},
}

var timingComfort = map[trip.DepartureTime]float64{
	trip.DepartureMorning:   1.0,
	trip.DepartureAfternoon: 0.75,
	trip.DepartureEvening:   1.0,
	trip.DepartureVeryEarly: 0.25,
	trip.DepartureLateNight: 0.5,
	trip.DepartureRedEye:    0.0,
}

var experienceComfort = map[trip.Experience]float64{
	trip.ExperienceFirstTime:   0.25,
	trip.ExperienceFewFlights:  0.5,
	trip.ExperienceExperienced: 0.75,
	trip.ExperienceVeteran:     1.0,
}

// Used for unrecognized departure or experience labels.
const neutralComfort = 0.5

// Destination tier values.
const (
	tierExcellent = 1.0
	tierGood      = 0.7
	tierOther     = 0.5
)

// Comfort is the weighted comfort model: nine normalized factors, each scaled
// by its weight, averaged over the weight sum.
type Comfort struct {
	excellent map[string]bool
	good      map[string]bool
}

// NewComfort builds the comfort model using the given destination tiers.
func NewComfort(t refdata.Tiers) *Comfort {
	c := &Comfort{
		excellent: make(map[string]bool, len(t.Excellent)),
		good:      make(map[string]bool, len(t.Good)),
	}
	for _, n := range t.Excellent {
		c.excellent[n] = true
	}
	for _, n := range t.Good {
		c.good[n] = true
	}
	return c
}

// Name returns NameComfort.
func (c *Comfort) Name() string { return NameComfort }

// Score computes the comfort score. It never fails.
func (c *Comfort) Score(in trip.Input) Result {
	norm := map[string]float64{
		FactorBabyAge:      babyAgeComfort(in.BabyAgeMonths),
		FactorFlight:       flightComfort(in.FlightHours, in.Layovers),
		FactorLogistics:    logisticsComfort(in.PumpingNeeded, in.FirstInternational),
		FactorTiming:       lookupOr(timingComfort, in.DepartureTime, neutralComfort),
		FactorSupport:      supportComfort(in.HasPartner),
		FactorMedical:      medicalComfort(in.SpecialNeeds),
		FactorExperience:   lookupOr(experienceComfort, in.Experience, neutralComfort),
		FactorDestination:  c.destinationComfort(in.Destination.Name),
		FactorTripDuration: durationComfort(in.TripDurationDays),
	}

	factors := make([]Factor, 0, len(comfortFactors))
	for _, d := range comfortFactors {
		factors = append(factors, Factor{
			Key:    d.key,
			Label:  d.label,
			Value:  unit(norm[d.key]) * d.weight,
			Weight: d.weight,
		})
	}

	total, max := sum(factors)
	return Result{
		Strategy: NameComfort,
		Score:    ScoreFromTotal(NameComfort, total, max),
		Factors:  factors,
		Total:    total,
		Max:      max,
	}
}

// Tier returns "excellent", "good", or "other" for a destination name.
func (c *Comfort) Tier(name string) string {
	switch {
	case c.excellent[name]:
		return "excellent"
	case c.good[name]:
		return "good"
	default:
		return "other"
	}
}

func (c *Comfort) destinationComfort(name string) float64 {
	switch c.Tier(name) {
	case "excellent":
		return tierExcellent
	case "good":
		return tierGood
	default:
		return tierOther
	}
}

// Insights classifies the score and picks strengths and improvement areas.
// Factors are ranked by raw value, not by percentage of weight.
func (c *Comfort) Insights(r Result) Insights {
	ins := Insights{Strengths: []string{}, Improvements: []string{}}
	switch {
	case r.Score >= 8:
		ins.Level = "Excellent Comfort"
		ins.Message = "Outstanding! This trip should be very comfortable and enjoyable for your family."
		ins.Assessment = "Excellent comfort level - this trip is well-suited for traveling with a baby!"
	case r.Score >= 6:
		ins.Level = "Good Comfort"
		ins.Message = "Great setup! With good preparation, this will be a comfortable experience."
		ins.Assessment = "Good comfort level - with proper preparation, this should be a pleasant trip."
	case r.Score >= 4:
		ins.Level = "Moderate Comfort"
		ins.Message = "Manageable trip - some preparation will help ensure comfort."
		ins.Assessment = "Moderate comfort level - some planning adjustments could improve the experience."
	default:
		ins.Level = "Needs Planning"
		ins.Message = "This trip needs extra planning - but it's definitely doable with the right preparation!"
		ins.Assessment = "Lower comfort level - consider modifications or extensive preparation."
	}

	for _, f := range byValueDesc(r.Factors) {
		pct := f.Percent()
		switch {
		case pct >= 0.75:
			ins.Strengths = append(ins.Strengths, f.Label)
		case pct < 0.5:
			ins.Improvements = append(ins.Improvements, f.Label)
		}
	}
	if len(ins.Strengths) > 3 {
		ins.Strengths = ins.Strengths[:3]
	}
	if len(ins.Improvements) > 3 {
		ins.Improvements = ins.Improvements[len(ins.Improvements)-3:]
	}
	return ins
}

func babyAgeComfort(months int) float64 {
	switch {
	case months <= 3:
		return 0.83
	case months <= 6:
		return 1.0
	case months <= 11:
		return 0.33
	case months <= 18:
		return 0.5
	default:
		return 0.83
	}
}

func flightComfort(hours float64, layovers int) float64 {
	var duration float64
	switch {
	case hours <= 3:
		duration = 1.0
	case hours <= 6:
		duration = 0.83
	case hours <= 10:
		duration = 0.5
	default:
		duration = 0.17
	}
	var stops float64
	switch {
	case layovers <= 0:
		stops = 0.67
	case layovers == 1:
		stops = 0.33
	}
	return 0.7*duration + 0.3*stops
}

func logisticsComfort(pumping, firstInternational bool) float64 {
	v := 1.0
	if pumping {
		v -= 0.25
	}
	if firstInternational {
		v -= 0.25
	}
	return math.Max(0, v)
}

func supportComfort(hasPartner bool) float64 {
	if hasPartner {
		return 1.0
	}
	return 0.25
}

func medicalComfort(specialNeeds bool) float64 {
	if specialNeeds {
		return 0.5
	}
	return 1.0
}

func durationComfort(days int) float64 {
	switch {
	case days <= 3:
		return 1.0
	case days <= 7:
		return 0.75
	case days <= 14:
		return 0.5
	default:
		return 0.25
	}
}

func lookupOr[K comparable](m map[K]float64, k K, def float64) float64 {
	if v, ok := m[k]; ok {
		return v
	}
	return def
}

// unit clamps a normalized value to [0, 1].
func unit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
