package booking

import (
	"context"
	"time"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/kafka"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.BookingSummary, error)
	Update(ctx context.Context, id string, upd repository.BookingUpdate) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	PassengerName  string
	PassportNumber string
	Email          string
	PhoneNumber    string
	FlightNumber   string
	SeatClass      string
	ContactDetails string
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	// releaseSeatOnDelete restores the flight's seat counter when a
	// booking is deleted. Off by default: a consumed seat stays
	// consumed.
	releaseSeatOnDelete bool
	log                 zerolog.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithSeatReleaseOnDelete() BookingServiceOption {
	return func(s *BookingService) {
		s.releaseSeatOnDelete = true
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	producer Producer,
	bookingTopic string,
	log zerolog.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books one seat on the flight. The seat decrement and the
// booking insert commit together in the repository, conditioned on a
// seat still being available, so concurrent callers cannot overbook
// the flight or drive the counter negative.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if _, err := s.flights.GetByNumber(ctx, input.FlightNumber); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:             uuid.NewString(),
		PassengerName:  input.PassengerName,
		PassportNumber: input.PassportNumber,
		Email:          input.Email,
		PhoneNumber:    input.PhoneNumber,
		FlightNumber:   input.FlightNumber,
		SeatClass:      input.SeatClass,
		ContactDetails: input.ContactDetails,
		BookingTime:    time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]domain.BookingSummary, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, domain.ErrNoBookingsFound
	}
	return bookings, nil
}

func (s *BookingService) Update(ctx context.Context, id string, upd repository.BookingUpdate) (*domain.Booking, error) {
	return s.bookings.Update(ctx, id, upd)
}

// Delete removes the booking. Whether the seat returns to the flight's
// pool depends on the service's configuration; the stock behaviour
// leaves the counter alone.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	booking, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return err
	}

	if s.releaseSeatOnDelete {
		if err := s.flights.ReleaseSeat(ctx, booking.FlightNumber); err != nil {
			s.log.Error().Err(err).Str("flight_number", booking.FlightNumber).Msg("failed to release seat after booking deletion")
		}
	}

	s.publish(ctx, kafka.EventBookingCancelled, booking)
	return nil
}

// publish emits the booking event to the booking topic and, when
// configured, the notifications topic. Event delivery is best-effort:
// a broker failure is logged and never fails the booking operation.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		FlightNumber:  booking.FlightNumber,
		PassengerName: booking.PassengerName,
		Email:         booking.Email,
		SeatClass:     booking.SeatClass,
		BookingTime:   booking.BookingTime,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		s.log.Warn().Err(err).Str("booking_id", booking.ID).Str("type", eventType).Msg("failed to publish booking event")
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			s.log.Warn().Err(err).Str("booking_id", booking.ID).Str("type", eventType).Msg("failed to publish notification event")
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
