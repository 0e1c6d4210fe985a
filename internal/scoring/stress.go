package scoring

import "github.com/dshills/gobabygo/internal/trip"

// Stress factor keys, in canonical order.
const (
	StressBabyAge   = "baby_age"
	StressFlight    = "flight_duration"
	StressLayovers  = "layovers"
	StressSupport   = "support"
	StressMedical   = "medical"
	StressLogistics = "logistics"
)

var stressFactors = []factorDef{
	{StressBabyAge, "Baby age", 4},
	{StressFlight, "Flight duration", 4},
	{StressLayovers, "Layovers", 3},
	{StressSupport, "Solo parenting", 3},
	{StressMedical, "Medical needs", 3},
	{StressLogistics, "Travel logistics", 2},
}

// Stress is the additive stress model: integer points per factor, summed and
// clamped without normalization. Higher means harder.
type Stress struct{}

// NewStress returns the stress model.
func NewStress() *Stress { return &Stress{} }

// Name returns NameStress.
func (s *Stress) Name() string { return NameStress }

// Score computes the stress score. It never fails.
func (s *Stress) Score(in trip.Input) Result {
	points := map[string]int{
		StressBabyAge:  babyAgeStress(in.BabyAgeMonths),
		StressFlight:   flightStress(in.FlightHours),
		StressLayovers: layoverStress(in.Layovers),
	}
	if !in.HasPartner {
		points[StressSupport] = 3
	}
	if in.SpecialNeeds {
		points[StressMedical] = 3
	}
	if in.PumpingNeeded || in.FirstInternational {
		points[StressLogistics] = 2
	}

	factors := make([]Factor, 0, len(stressFactors))
	total := 0
	for _, d := range stressFactors {
		p := points[d.key]
		total += p
		factors = append(factors, Factor{Key: d.key, Label: d.label, Value: float64(p), Weight: d.weight})
	}
	_, max := sum(factors)
	return Result{
		Strategy: NameStress,
		Score:    ScoreFromTotal(NameStress, float64(total), max),
		Factors:  factors,
		Total:    float64(total),
		Max:      max,
	}
}

// Insights classifies the stress level. Strengths are factors adding no stress;
// improvements are the three largest contributors.
func (s *Stress) Insights(r Result) Insights {
	ins := Insights{Strengths: []string{}, Improvements: []string{}}
	switch {
	case r.Score <= 3:
		ins.Level = "Low Stress"
		ins.Message = "Excellent! This trip should be very manageable."
	case r.Score <= 6:
		ins.Level = "Medium Stress"
		ins.Message = "Moderate challenge - good preparation will help."
	default:
		ins.Level = "High Stress"
		ins.Message = "Challenging trip - extensive preparation needed."
	}
	switch {
	case r.Score <= 4:
		ins.Assessment = "Great setup! You're well-prepared for a successful trip!"
	case r.Score <= 7:
		ins.Assessment = "Good foundation! With proper preparation, this will go well."
	default:
		ins.Assessment = "Consider modifications to reduce stress and improve the experience."
	}

	for _, f := range r.Factors {
		if f.Value == 0 && len(ins.Strengths) < 3 {
			ins.Strengths = append(ins.Strengths, f.Label)
		}
	}
	for _, f := range byValueDesc(r.Factors) {
		if f.Value > 0 && len(ins.Improvements) < 3 {
			ins.Improvements = append(ins.Improvements, f.Label)
		}
	}
	return ins
}

func babyAgeStress(months int) int {
	switch {
	case months <= 2:
		return 4
	case months <= 5:
		return 3
	case months <= 11:
		return 3
	case months <= 18:
		return 4
	default:
		return 3
	}
}

func flightStress(hours float64) int {
	switch {
	case hours > 15:
		return 4
	case hours > 10:
		return 3
	case hours > 6:
		return 2
	case hours > 3:
		return 1
	default:
		return 0
	}
}

func layoverStress(layovers int) int {
	switch {
	case layovers <= 0:
		return 0
	case layovers >= 2:
		return 3
	default:
		return 1
	}
}
