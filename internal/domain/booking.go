package domain

import "time"

type Booking struct {
	ID             string    `json:"_id"`
	PassengerName  string    `json:"passenger_name"`
	PassportNumber string    `json:"passport_number"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	FlightNumber   string    `json:"flight_number"`
	SeatClass      string    `json:"seat_class"`
	ContactDetails string    `json:"contact_details"`
	BookingTime    time.Time `json:"booking_time"`
}

// BookingSummary is the projection returned by the booking listing.
type BookingSummary struct {
	ID            string `json:"_id"`
	PassengerName string `json:"passenger_name"`
	FlightNumber  string `json:"flight_number"`
	SeatClass     string `json:"seat_class"`
}
