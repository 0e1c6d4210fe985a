// Package trip handles reading, hashing, and normalizing trip requests.
package trip

import (
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/gobabygo/internal/refdata"
)

// DateLayout is the accepted format for departure and return dates.
const DateLayout = "2006-01-02"

// DefaultDurationDays is used when neither dates nor a duration are given.
const DefaultDurationDays = 5

// HotelPreferences selects which hotel search links are built and how they are filtered.
type HotelPreferences struct {
	Budget             string   `yaml:"budget" json:"budget,omitempty"`
	AccommodationTypes []string `yaml:"accommodation_types" json:"accommodation_types,omitempty"`
	Amenities          []string `yaml:"amenities" json:"amenities,omitempty"`
	LocationPriorities []string `yaml:"location_priorities" json:"location_priorities,omitempty"`
}

// Request is the file and wire form of a trip. Zero values mean "not supplied".
type Request struct {
	BabyAgeMonths      int              `yaml:"baby_age_months" json:"baby_age_months"`
	FlightHours        float64          `yaml:"flight_hours" json:"flight_hours"`
	Layovers           int              `yaml:"layovers" json:"layovers"`
	DepartureTime      DepartureTime    `yaml:"departure_time" json:"departure_time"`
	HasPartner         *bool            `yaml:"has_partner" json:"has_partner,omitempty"`
	SpecialNeeds       bool             `yaml:"special_needs" json:"special_needs"`
	PumpingNeeded      bool             `yaml:"pumping_needed" json:"pumping_needed"`
	FirstInternational bool             `yaml:"first_international" json:"first_international"`
	Experience         Experience       `yaml:"parent_experience" json:"parent_experience"`
	Destination        string           `yaml:"destination" json:"destination"`
	DepartureCity      string           `yaml:"departure_city" json:"departure_city,omitempty"`
	DepartureDate      string           `yaml:"departure_date" json:"departure_date,omitempty"`
	ReturnDate         string           `yaml:"return_date" json:"return_date,omitempty"`
	TripDurationDays   int              `yaml:"trip_duration_days" json:"trip_duration_days,omitempty"`
	TemperatureC       *float64         `yaml:"temperature_c" json:"temperature_c,omitempty"`
	Hotel              HotelPreferences `yaml:"hotel" json:"hotel"`
}

// File holds a loaded trip file with its parsed request and content hash.
type File struct {
	FilePath string
	Request  Request
	Hash     string
}

// Load reads a YAML or JSON trip file and computes its SHA-256 hash.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trip.Load: %w", err)
	}
	req, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("trip.Load: %s: %w", path, err)
	}
	h := sha256.Sum256(data)
	return &File{
		FilePath: path,
		Request:  *req,
		Hash:     fmt.Sprintf("sha256:%x", h),
	}, nil
}

// Parse decodes a trip request. JSON input is accepted as a YAML subset.
func Parse(data []byte) (*Request, error) {
	var r Request
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("trip.Parse: %w", err)
	}
	return &r, nil
}

// Partner reports whether a second caregiver travels. Unset means yes.
func (r *Request) Partner() bool {
	if r.HasPartner == nil {
		return true
	}
	return *r.HasPartner
}

// Dates parses the optional departure and return dates. Missing dates are zero.
func (r *Request) Dates() (dep, ret time.Time, err error) {
	if r.DepartureDate != "" {
		dep, err = time.Parse(DateLayout, r.DepartureDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("departure_date: %w", err)
		}
	}
	if r.ReturnDate != "" {
		ret, err = time.Parse(DateLayout, r.ReturnDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("return_date: %w", err)
		}
	}
	return dep, ret, nil
}

// DurationDays derives the trip length. Both dates win over an explicit duration;
// a same-day return counts as one day.
func (r *Request) DurationDays() int {
	dep, ret, err := r.Dates()
	if err == nil && !dep.IsZero() && !ret.IsZero() {
		return DaysBetween(dep, ret)
	}
	if r.TripDurationDays > 0 {
		return r.TripDurationDays
	}
	return DefaultDurationDays
}

// DaysBetween returns the whole days from dep to ret, at least 1.
func DaysBetween(dep, ret time.Time) int {
	days := int(ret.Sub(dep).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// Input is the immutable scoring input built once per request.
type Input struct {
	BabyAgeMonths      int
	FlightHours        float64
	Layovers           int
	DepartureTime      DepartureTime
	HasPartner         bool
	SpecialNeeds       bool
	PumpingNeeded      bool
	FirstInternational bool
	Experience         Experience
	Destination        refdata.Destination
	Origin             *refdata.Destination
	TripDurationDays   int
	DepartureDate      time.Time
	ReturnDate         time.Time
	TemperatureC       *float64
	Hotel              HotelPreferences
}

// NewInput builds the scoring input from a validated request and resolved destinations.
func NewInput(r *Request, dest refdata.Destination, origin *refdata.Destination) Input {
	dep, ret, _ := r.Dates()
	return Input{
		BabyAgeMonths:      r.BabyAgeMonths,
		FlightHours:        r.FlightHours,
		Layovers:           r.Layovers,
		DepartureTime:      r.DepartureTime,
		HasPartner:         r.Partner(),
		SpecialNeeds:       r.SpecialNeeds,
		PumpingNeeded:      r.PumpingNeeded,
		FirstInternational: r.FirstInternational,
		Experience:         r.Experience,
		Destination:        dest,
		Origin:             origin,
		TripDurationDays:   r.DurationDays(),
		DepartureDate:      dep,
		ReturnDate:         ret,
		TemperatureC:       r.TemperatureC,
		Hotel:              r.Hotel,
	}
}
