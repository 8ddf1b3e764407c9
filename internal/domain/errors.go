package domain

import "errors"

// Error kinds. Services wrap these (or return the named errors below)
// and the API boundary maps each kind to an HTTP status with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error pairs one of the kinds above with the message clients see.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrFlightNotFound   = NewError(ErrNotFound, "Flight not found")
	ErrBookingNotFound  = NewError(ErrNotFound, "Booking not found")
	ErrReviewNotFound   = NewError(ErrNotFound, "Review not found")
	ErrNoFlightsFound   = NewError(ErrNotFound, "No flights found for the given criteria")
	ErrNoBookingsFound  = NewError(ErrNotFound, "No bookings found")
	ErrNoReviewsFound   = NewError(ErrNotFound, "Flight not found or no reviews available")
	ErrUsernameTaken    = NewError(ErrConflict, "Username already exists")
	ErrBadCredentials   = NewError(ErrUnauthorized, "Invalid username or password")
	ErrTokenInvalid     = NewError(ErrUnauthorized, "Token is invalid or expired")
	ErrTokenMissing     = NewError(ErrInvalidInput, "Token is missing")
	ErrAdminRequired    = NewError(ErrForbidden, "Admin privilege required")
	ErrNoSeatsAvailable = NewError(ErrConflict, "No seats available")
)
