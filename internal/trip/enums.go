package trip

// DepartureTime is a time-of-day label for the outbound flight.
type DepartureTime string

const (
	DepartureMorning   DepartureTime = "Morning (7-11 AM)"
	DepartureAfternoon DepartureTime = "Afternoon (11 AM-5 PM)"
	DepartureEvening   DepartureTime = "Evening (5-10 PM)"
	DepartureVeryEarly DepartureTime = "Very Early (5-7 AM)"
	DepartureLateNight DepartureTime = "Late Night (10 PM-12 AM)"
	DepartureRedEye    DepartureTime = "Red-eye (12-5 AM)"
)

// DepartureTimes lists every recognized label in display order.
func DepartureTimes() []DepartureTime {
	return []DepartureTime{
		DepartureMorning, DepartureAfternoon, DepartureEvening,
		DepartureVeryEarly, DepartureLateNight, DepartureRedEye,
	}
}

// Valid reports whether d is a recognized label.
func (d DepartureTime) Valid() bool {
	for _, v := range DepartureTimes() {
		if d == v {
			return true
		}
	}
	return false
}

// Experience describes how often the parents have flown with a baby.
type Experience string

const (
	ExperienceFirstTime   Experience = "First time flying with baby"
	ExperienceFewFlights  Experience = "2-3 previous flights"
	ExperienceExperienced Experience = "Experienced traveler (4+ flights)"
	ExperienceVeteran     Experience = "Travel veteran (10+ flights)"
)

// Experiences lists every recognized label in display order.
func Experiences() []Experience {
	return []Experience{ExperienceFirstTime, ExperienceFewFlights, ExperienceExperienced, ExperienceVeteran}
}

// Valid reports whether e is a recognized label.
func (e Experience) Valid() bool {
	for _, v := range Experiences() {
		if e == v {
			return true
		}
	}
	return false
}
