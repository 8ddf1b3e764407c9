package repository

import (
	"context"
	"errors"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingUpdate carries the fields a caller may change after booking.
// Nil means "leave unchanged". The flight number and seat counter are
// deliberately absent: a booking can never move to another flight.
type BookingUpdate struct {
	PassengerName  *string
	PassportNumber *string
	Email          *string
	PhoneNumber    *string
	SeatClass      *string
	ContactDetails *string
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.BookingSummary, error)
	Update(ctx context.Context, id string, upd BookingUpdate) (*domain.Booking, error)
	Delete(ctx context.Context, id string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create inserts the booking and decrements the flight's seat counter
// in one transaction. The decrement is conditional on seats_available
// remaining positive, so under concurrent bookings the last seat goes
// to exactly one caller and the counter never drops below zero.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available - 1 WHERE flight_number=$1 AND seats_available > 0`, booking.FlightNumber)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNoSeatsAvailable
	}

	if _, err := tx.Exec(ctx, `INSERT INTO bookings (id, passenger_name, passport_number, email, phone_number, flight_number, seat_class, contact_details, booking_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		booking.ID, booking.PassengerName, booking.PassportNumber, booking.Email, booking.PhoneNumber,
		booking.FlightNumber, booking.SeatClass, booking.ContactDetails, booking.BookingTime); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const bookingColumns = `id, passenger_name, passport_number, email, phone_number, flight_number, seat_class, contact_details, booking_time`

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.BookingSummary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, passenger_name, flight_number, seat_class FROM bookings ORDER BY booking_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingSummary, 0)
	for rows.Next() {
		var b domain.BookingSummary
		if err := rows.Scan(&b.ID, &b.PassengerName, &b.FlightNumber, &b.SeatClass); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Update(ctx context.Context, id string, upd BookingUpdate) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET
		passenger_name  = COALESCE($2, passenger_name),
		passport_number = COALESCE($3, passport_number),
		email           = COALESCE($4, email),
		phone_number    = COALESCE($5, phone_number),
		seat_class      = COALESCE($6, seat_class),
		contact_details = COALESCE($7, contact_details)
		WHERE id=$1 RETURNING `+bookingColumns,
		id, upd.PassengerName, upd.PassportNumber, upd.Email, upd.PhoneNumber, upd.SeatClass, upd.ContactDetails)
	return scanBooking(row)
}

// Delete removes the booking record only. Restoring the seat count is
// the service's decision, not the store's.
func (r *PGBookingRepository) Delete(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM bookings WHERE id=$1 RETURNING `+bookingColumns, id)
	return scanBooking(row)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.PassengerName, &b.PassportNumber, &b.Email, &b.PhoneNumber,
		&b.FlightNumber, &b.SeatClass, &b.ContactDetails, &b.BookingTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
