package email

import (
	"context"

	"github.com/Korolev2000/flightbooking/internal/kafka"
	"github.com/rs/zerolog"
)

type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log}
}

// Send delivers a booking notification. Delivery is currently a log
// line; the worker treats it as fire-and-forget either way.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info().
		Str("email", event.Email).
		Str("type", event.Type).
		Str("flight_number", event.FlightNumber).
		Str("booking_id", event.BookingID).
		Msg("send booking notification email")
	return nil
}
