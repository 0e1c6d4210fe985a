// Package scoring turns a trip into a bounded 1-10 score with a factor breakdown.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dshills/gobabygo/internal/refdata"
	"github.com/dshills/gobabygo/internal/trip"
)

// Strategy names.
const (
	NameComfort = "comfort"
	NameStress  = "stress"
)

// MinScore and MaxScore bound every strategy's score.
const (
	MinScore = 1
	MaxScore = 10
)

// Factor is one weighted contribution to a score. Value never exceeds Weight.
type Factor struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// Percent returns Value as a fraction of Weight.
func (f Factor) Percent() float64 {
	if f.Weight == 0 {
		return 0
	}
	return f.Value / f.Weight
}

// Result is the output of a single scoring call.
type Result struct {
	Strategy string   `json:"strategy"`
	Score    int      `json:"score"`
	Factors  []Factor `json:"factors"`
	Total    float64  `json:"total"`
	Max      float64  `json:"max"`
}

// Factor returns the factor with the given key.
func (r Result) Factor(key string) (Factor, bool) {
	for _, f := range r.Factors {
		if f.Key == key {
			return f, true
		}
	}
	return Factor{}, false
}

// ComfortEquivalent maps the score onto the comfort scale, where higher is easier.
func (r Result) ComfortEquivalent() int {
	if r.Strategy == NameStress {
		return MaxScore + 1 - r.Score
	}
	return r.Score
}

// Insights is the textual interpretation of a Result.
type Insights struct {
	Level        string   `json:"level"`
	Message      string   `json:"message"`
	Assessment   string   `json:"assessment"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Strategy is a named scoring model. Implementations are pure and safe for concurrent use.
type Strategy interface {
	Name() string
	Score(in trip.Input) Result
	Insights(r Result) Insights
}

// Names returns the available strategy names, canonical first.
func Names() []string {
	return []string{NameComfort, NameStress}
}

// New returns the strategy registered under name. An empty name selects comfort.
func New(name string, tiers refdata.Tiers) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameComfort:
		return NewComfort(tiers), nil
	case NameStress:
		return NewStress(), nil
	default:
		return nil, fmt.Errorf("scoring.New: unknown strategy %q", name)
	}
}

// ScoreFromTotal derives the bounded score from factor totals. Comfort scales the
// weighted total onto 0-10; stress uses the summed points directly.
func ScoreFromTotal(strategy string, total, max float64) int {
	var score int
	switch {
	case strategy == NameStress:
		score = int(total)
	case max > 0:
		score = int(math.RoundToEven(total / max * 10))
	}
	return clamp(score, MinScore, MaxScore)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// byValueDesc returns a copy of factors sorted by raw value, highest first.
// Ties keep their canonical order.
func byValueDesc(factors []Factor) []Factor {
	sorted := make([]Factor, len(factors))
	copy(sorted, factors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	return sorted
}

func sum(factors []Factor) (total, max float64) {
	for _, f := range factors {
		total += f.Value
		max += f.Weight
	}
	return total, max
}
