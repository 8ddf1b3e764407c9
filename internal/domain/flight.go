package domain

type FlightStatus string

const (
	FlightStatusOnTime    FlightStatus = "On Time"
	FlightStatusDelayed   FlightStatus = "Delayed"
	FlightStatusCancelled FlightStatus = "Cancelled"
	FlightStatusBoarding  FlightStatus = "Boarding"
	FlightStatusDeparted  FlightStatus = "Departed"
	FlightStatusLanded    FlightStatus = "Landed"
)

// ValidFlightStatuses lists every status a flight may be moved to,
// in the order they are reported to clients on validation failure.
var ValidFlightStatuses = []FlightStatus{
	FlightStatusOnTime,
	FlightStatusDelayed,
	FlightStatusCancelled,
	FlightStatusBoarding,
	FlightStatusDeparted,
	FlightStatusLanded,
}

func (s FlightStatus) Valid() bool {
	for _, v := range ValidFlightStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Flight is a stored flight document. Departure and arrival times are
// kept as ISO-8601 strings so that date filtering is a plain prefix
// match and lexicographic ordering matches chronological ordering.
type Flight struct {
	FlightNumber     string       `json:"flight_number"`
	Airline          string       `json:"airline"`
	DepartureAirport string       `json:"departure_airport"`
	ArrivalAirport   string       `json:"arrival_airport"`
	DepartureTime    string       `json:"departure_time"`
	ArrivalTime      string       `json:"arrival_time"`
	Price            float64      `json:"price"`
	SeatsAvailable   int          `json:"seats_available"`
	Status           FlightStatus `json:"status"`
	Reviews          []Review     `json:"reviews"`
}
