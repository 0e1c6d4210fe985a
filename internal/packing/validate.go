package packing

import "strings"

// Validation reports which essentials a packing list covers.
type Validation struct {
	Missing  []string `json:"missing"`
	Included []string `json:"included"`
	Score    float64  `json:"score"`
}

type essential struct {
	name     string
	keywords []string
}

var essentials = []essential{
	{"Diapers", []string{"diaper"}},
	{"Wipes", []string{"wipes"}},
	{"Bottles", []string{"bottle"}},
	{"Clothes", []string{"clothes", "onesie", "outfit"}},
	{"Basic meds", []string{"meds", "medic"}},
}

// Validate checks a list of item names for essentials. Burp cloths are
// expected for babies up to 6 months and laundry supplies for trips over a week.
// Score is the percentage of the core essentials present.
func Validate(items []string, babyAgeMonths, tripDays int) Validation {
	text := strings.ToLower(strings.Join(items, " "))
	v := Validation{Missing: []string{}, Included: []string{}}
	for _, e := range essentials {
		if containsAny(text, e.keywords) {
			v.Included = append(v.Included, e.name)
		} else {
			v.Missing = append(v.Missing, e.name)
		}
	}
	if babyAgeMonths <= infantMaxMonths && !strings.Contains(text, "burp") {
		v.Missing = append(v.Missing, "Burp cloths")
	}
	if tripDays > laundryMinDays && !strings.Contains(text, "laundry") {
		v.Missing = append(v.Missing, "Laundry detergent")
	}
	v.Score = float64(len(v.Included)) / float64(len(essentials)) * 100
	return v
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
