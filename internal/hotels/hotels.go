// Package hotels builds family-friendly accommodation search links.
package hotels

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dshills/gobabygo/internal/trip"
)

// Amenity labels accepted in trip.HotelPreferences.Amenities.
const (
	AmenityCrib      = "Crib/baby cot"
	AmenityKitchen   = "Kitchenette/kitchen"
	AmenityLaundry   = "Laundry facilities"
	AmenityHighChair = "High chair"
)

// Accommodation types that enable rental searches.
const (
	TypeVacationRental    = "Vacation rentals"
	TypeServicedApartment = "Serviced apartments"
)

// Location priorities that add specialized searches.
const (
	PriorityHospital = "Near hospital/medical center"
	PriorityBeach    = "Beach/water access"
)

// Budget labels.
const (
	BudgetLow     = "Budget ($50-100/night)"
	BudgetMid     = "Mid-range ($100-200/night)"
	BudgetLuxury  = "Luxury ($200-400/night)"
	BudgetUltra   = "Ultra-luxury ($400+/night)"
	DefaultBudget = BudgetMid
)

const bookingBaseURL = "https://www.booking.com/searchresults.html"

var priceFilters = map[string][2]string{
	BudgetLow:    {"50", "100"},
	BudgetMid:    {"100", "200"},
	BudgetLuxury: {"200", "400"},
	BudgetUltra:  {"400", ""},
}

// Link is a prebuilt search on one booking platform.
type Link struct {
	Platform    string   `json:"platform"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Filters     []string `json:"filters"`
}

// Build returns search links for the trip's destination and preferences.
// Booking.com, Hotels.com, and Expedia are always included.
func Build(in trip.Input) []Link {
	prefs := in.Hotel
	amen := set(prefs.Amenities)
	types := set(prefs.AccommodationTypes)
	priorities := set(prefs.LocationPriorities)

	links := []Link{{
		Platform:    "Booking.com",
		URL:         bookingURL(in, amen),
		Description: "Comprehensive filters for family facilities, cribs, and kitchenettes",
		Filters:     appliedFilters(amen, "booking"),
	}}
	if types[TypeVacationRental] || types[TypeServicedApartment] {
		links = append(links, Link{
			Platform:    "Airbnb",
			URL:         airbnbURL(in, amen),
			Description: "Entire homes and apartments with baby amenities",
			Filters:     appliedFilters(amen, "airbnb"),
		})
	}
	links = append(links,
		Link{
			Platform:    "Hotels.com",
			URL:         hotelsURL(in, amen),
			Description: "Hotels with cribs and kitchen facilities",
			Filters:     appliedFilters(amen, "hotels"),
		},
		Link{
			Platform:    "Expedia",
			URL:         expediaURL(in, amen),
			Description: "Family-friendly hotels with baby amenities",
			Filters:     appliedFilters(amen, "expedia"),
		},
	)
	if priorities[PriorityHospital] {
		q := in.Destination.Name + " hotels near hospital family friendly"
		links = append(links, Link{
			Platform:    "Google Maps",
			URL:         "https://www.google.com/maps/search/" + escape(q),
			Description: "Hotels near medical facilities with reviews",
			Filters:     []string{"Near hospitals", "Family-friendly", "User reviews"},
		})
	}
	if priorities[PriorityBeach] {
		var q query
		q.add("ss", in.Destination.Name+" beach resort")
		q.add("group_adults", "2")
		q.add("group_children", "1")
		q.add("sb_travel_purpose", "leisure")
		q.add("family_facilities", "96")
		q.add("hotelfacility", "53")
		links = append(links, Link{
			Platform:    "Beach Resorts",
			URL:         bookingBaseURL + "?" + q.encode(),
			Description: "Beach resorts with family amenities",
			Filters:     []string{"Beach access", "Family rooms", "Resort facilities"},
		})
	}
	return links
}

func bookingURL(in trip.Input, amen map[string]bool) string {
	var q query
	ss := in.Destination.Name
	if in.Destination.Country != "" && in.Destination.Country != in.Destination.Name {
		ss += ", " + in.Destination.Country
	}
	q.add("ss", ss)
	q.add("group_adults", "2")
	q.add("group_children", "1")
	q.add("age", strconv.Itoa(childAgeYears(in.BabyAgeMonths)))
	q.add("no_rooms", "1")
	q.add("sb_travel_purpose", "leisure")
	budget := in.Hotel.Budget
	if budget == "" {
		budget = DefaultBudget
	}
	if p, ok := priceFilters[budget]; ok {
		q.add("price_min", p[0])
		if p[1] != "" {
			q.add("price_max", p[1])
		}
	}
	if !in.DepartureDate.IsZero() && !in.ReturnDate.IsZero() {
		q.add("checkin", in.DepartureDate.Format(trip.DateLayout))
		q.add("checkout", in.ReturnDate.Format(trip.DateLayout))
	}
	if amen[AmenityCrib] {
		q.add("family_facilities", "96")
		q.add("roomfacility", "175")
	}
	if amen[AmenityKitchen] {
		q.add("roomfacility", "22")
	}
	if amen[AmenityLaundry] {
		q.add("hotelfacility", "17")
	}
	q.add("review_score_group", "review_score_over_8")
	q.add("family_friendly", "1")
	q.add("popular_filters", "family_friendly")
	return bookingBaseURL + "?" + q.encode()
}

func airbnbURL(in trip.Input, amen map[string]bool) string {
	var q query
	q.add("adults", "2")
	q.add("children", "1")
	q.add("infants", "1")
	q.add("refinement_paths[]", "/homes")
	q.add("search_type", "filter_change")
	if !in.DepartureDate.IsZero() && !in.ReturnDate.IsZero() {
		q.add("checkin", in.DepartureDate.Format(trip.DateLayout))
		q.add("checkout", in.ReturnDate.Format(trip.DateLayout))
	}
	q.add("property_type_id[]", "1")
	q.add("property_type_id[]", "2")
	q.add("min_bedrooms", "1")
	if amen[AmenityCrib] {
		q.add("amenities[]", "45")
	}
	if amen[AmenityKitchen] {
		q.add("amenities[]", "8")
	}
	if amen[AmenityLaundry] {
		q.add("amenities[]", "33")
		q.add("amenities[]", "34")
	}
	if amen[AmenityHighChair] {
		q.add("amenities[]", "37")
	}
	return "https://www.airbnb.com/s/" + escape(in.Destination.Name) + "/homes?" + q.encode()
}

func hotelsURL(in trip.Input, amen map[string]bool) string {
	var q query
	q.add("destination", in.Destination.Name)
	if !in.DepartureDate.IsZero() && !in.ReturnDate.IsZero() {
		q.add("startDate", in.DepartureDate.Format(trip.DateLayout))
		q.add("endDate", in.ReturnDate.Format(trip.DateLayout))
	}
	q.add("adults", "2")
	q.add("children", "1")
	q.add("rooms", "1")
	codes := amenityCodes(amen, "CRIB", "KITCHEN", "LAUNDRY")
	if codes != "" {
		q.add("amenities", codes)
	}
	return "https://www.hotels.com/search.do?" + q.encode()
}

func expediaURL(in trip.Input, amen map[string]bool) string {
	var q query
	q.add("destination", in.Destination.Name)
	if !in.DepartureDate.IsZero() && !in.ReturnDate.IsZero() {
		q.add("startDate", in.DepartureDate.Format(trip.DateLayout))
		q.add("endDate", in.ReturnDate.Format(trip.DateLayout))
	}
	q.add("adults", "2")
	q.add("children", "1")
	q.add("childAge", strconv.Itoa(childAgeYears(in.BabyAgeMonths)))
	q.add("rooms", "1")
	codes := amenityCodes(amen, "CRIBS_ALLOWED", "KITCHEN", "LAUNDRY")
	if codes != "" {
		q.add("amenities", codes)
	}
	return "https://www.expedia.com/Hotel-Search?" + q.encode()
}

func amenityCodes(amen map[string]bool, crib, kitchen, laundry string) string {
	var codes []string
	if amen[AmenityCrib] {
		codes = append(codes, crib)
	}
	if amen[AmenityKitchen] {
		codes = append(codes, kitchen)
	}
	if amen[AmenityLaundry] {
		codes = append(codes, laundry)
	}
	return strings.Join(codes, ",")
}

func appliedFilters(amen map[string]bool, platform string) []string {
	applied := []string{}
	if amen[AmenityCrib] {
		applied = append(applied, "Cribs/Baby cots")
	}
	if amen[AmenityKitchen] {
		applied = append(applied, "Kitchen facilities")
	}
	if amen[AmenityLaundry] {
		applied = append(applied, "Laundry access")
	}
	if amen[AmenityHighChair] {
		applied = append(applied, "High chairs")
	}
	switch platform {
	case "booking":
		applied = append(applied, "Family rooms", "High ratings (8+)")
	case "airbnb":
		applied = append(applied, "Entire homes", "Multiple bedrooms")
	}
	return applied
}

// Children under a year are sent as age 0.
func childAgeYears(months int) int {
	if months < 12 {
		return 0
	}
	return months / 12
}

// Checklist returns steps to confirm before booking accommodation.
func Checklist() []string {
	return []string{
		"Call or email the property to confirm crib availability and setup",
		"Request photos of the baby facilities",
		"Verify the distance to the nearest hospital or clinic",
		"Check for a nearby pharmacy, supermarket, and restaurants",
		"Arrange airport transfer and local transport",
		"Confirm kitchen details: microwave, refrigerator, bottle sterilizer",
		"Check laundry options: in-room, on-site, or nearby service",
		"Ask about safety features: baby-proofing, pool fencing, balcony locks",
		"Prefer a flexible cancellation policy",
		"Read recent reviews from families",
	}
}

// query is an ordered query string that allows repeated keys.
type query struct {
	pairs [][2]string
}

func (q *query) add(k, v string) {
	q.pairs = append(q.pairs, [2]string{k, v})
}

func (q *query) encode() string {
	parts := make([]string, len(q.pairs))
	for i, p := range q.pairs {
		parts[i] = p[0] + "=" + escape(p[1])
	}
	return strings.Join(parts, "&")
}

// escape percent-encodes s, using %20 for spaces.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func set(list []string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, s := range list {
		m[s] = true
	}
	return m
}
