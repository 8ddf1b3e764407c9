package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightFilter composes conjunctively: every set field narrows the
// result. DatePrefix matches the start of the ISO departure timestamp.
type FlightFilter struct {
	DepartureAirport string
	ArrivalAirport   string
	DatePrefix       string
	MinPrice         *float64
	MaxPrice         *float64
	SortBy           string
	SortDesc         bool
}

// IsZero reports whether the filter neither narrows nor reorders the
// result, i.e. the query is the plain cacheable listing.
func (f FlightFilter) IsZero() bool {
	return f.DepartureAirport == "" && f.ArrivalAirport == "" && f.DatePrefix == "" &&
		f.MinPrice == nil && f.MaxPrice == nil && f.SortBy == "" && !f.SortDesc
}

type FlightRepository interface {
	Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	ReleaseSeat(ctx context.Context, flightNumber string) error
	UpdateStatus(ctx context.Context, flightNumber string, status domain.FlightStatus) error
	UpdateReviews(ctx context.Context, flightNumber string, reviews []domain.Review) error
	ListWithReviews(ctx context.Context) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `flight_number, airline, departure_airport, arrival_airport, departure_time, arrival_time, price, seats_available, status, reviews`

// sortColumns is the allow-list for caller-chosen ordering. Anything
// outside it falls back to departure_time, the default sort.
var sortColumns = map[string]string{
	"flight_number":     "flight_number",
	"airline":           "airline",
	"departure_airport": "departure_airport",
	"arrival_airport":   "arrival_airport",
	"departure_time":    "departure_time",
	"arrival_time":      "arrival_time",
	"price":             "price",
	"seats_available":   "seats_available",
	"status":            "status",
}

func (r *PGFlightRepository) Search(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	var (
		conds []string
		args  []any
	)
	if filter.DepartureAirport != "" {
		args = append(args, filter.DepartureAirport)
		conds = append(conds, fmt.Sprintf("departure_airport = $%d", len(args)))
	}
	if filter.ArrivalAirport != "" {
		args = append(args, filter.ArrivalAirport)
		conds = append(conds, fmt.Sprintf("arrival_airport = $%d", len(args)))
	}
	if filter.DatePrefix != "" {
		args = append(args, filter.DatePrefix+"%")
		conds = append(conds, fmt.Sprintf("departure_time LIKE $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	sortCol, ok := sortColumns[filter.SortBy]
	if !ok {
		sortCol = "departure_time"
	}
	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortCol, dir)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, flightNumber)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) ReleaseSeat(ctx context.Context, flightNumber string) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET seats_available = seats_available + 1 WHERE flight_number=$1`, flightNumber)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) UpdateStatus(ctx context.Context, flightNumber string, status domain.FlightStatus) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET status=$2 WHERE flight_number=$1`, flightNumber, status)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

// UpdateReviews replaces the flight's embedded review list. Concurrent
// edits to the same flight resolve last-writer-wins.
func (r *PGFlightRepository) UpdateReviews(ctx context.Context, flightNumber string, reviews []domain.Review) error {
	if reviews == nil {
		reviews = []domain.Review{}
	}
	payload, err := json.Marshal(reviews)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(ctx, `UPDATE flights SET reviews=$2 WHERE flight_number=$1`, flightNumber, payload)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) ListWithReviews(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE jsonb_array_length(reviews) > 0 ORDER BY flight_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFlights(rows)
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var (
		f           domain.Flight
		reviewsJSON []byte
	)
	if err := row.Scan(&f.FlightNumber, &f.Airline, &f.DepartureAirport, &f.ArrivalAirport,
		&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.SeatsAvailable, &f.Status, &reviewsJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reviewsJSON, &f.Reviews); err != nil {
		return nil, fmt.Errorf("decode reviews for flight %s: %w", f.FlightNumber, err)
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
