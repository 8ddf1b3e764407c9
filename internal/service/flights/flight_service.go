package flights

import (
	"context"
	"fmt"
	"strings"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/rs/zerolog"
)

type FlightUseCase interface {
	Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	UpdateStatus(ctx context.Context, flightNumber, status string) error
}

// Cache holds the unfiltered flight listing. A nil cache disables
// caching entirely.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
	log   zerolog.Logger
}

func NewFlightService(repo repository.FlightRepository, cache Cache, log zerolog.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

// Search applies the caller's filters conjunctively and sorts by the
// chosen field. An empty result is reported as not found rather than
// as an empty list. Only the plain, unfiltered listing is cached; any
// narrowed or reordered query goes straight to the store.
func (s *FlightService) Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	cacheable := filter.IsZero() && s.cache != nil

	if cacheable {
		if cached, err := s.cache.GetFlights(ctx); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, domain.ErrNoFlightsFound
	}

	if cacheable {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache flight listing")
		}
	}
	return flights, nil
}

func (s *FlightService) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	return s.repo.GetByNumber(ctx, flightNumber)
}

// UpdateStatus moves the flight to one of the fixed statuses. A value
// outside the enumeration is rejected before touching the store, so
// the stored status never changes on invalid input.
func (s *FlightService) UpdateStatus(ctx context.Context, flightNumber, status string) error {
	newStatus := domain.FlightStatus(status)
	if !newStatus.Valid() {
		return domain.NewError(domain.ErrInvalidInput,
			fmt.Sprintf("Invalid status. Choose from: %s", joinStatuses()))
	}

	if err := s.repo.UpdateStatus(ctx, flightNumber, newStatus); err != nil {
		return err
	}

	s.log.Info().Str("flight_number", flightNumber).Str("status", status).Msg("flight status updated")
	return nil
}

func joinStatuses() string {
	names := make([]string, len(domain.ValidFlightStatuses))
	for i, s := range domain.ValidFlightStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

var _ FlightUseCase = (*FlightService)(nil)
