// Package reviews manages the review list embedded in each flight
// document. Mutations are read-modify-write over the whole list;
// concurrent edits to the same flight resolve last-writer-wins, which
// is acceptable because review ids are random and therefore stay
// unique without any coordination.
package reviews

import (
	"context"
	"errors"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ReviewUseCase interface {
	ListForFlight(ctx context.Context, flightNumber string) ([]domain.Review, error)
	ListAll(ctx context.Context) ([]domain.FlightReview, error)
	Add(ctx context.Context, flightNumber string, input ReviewInput) (*domain.Review, error)
	Update(ctx context.Context, flightNumber, reviewID string, upd ReviewUpdate) error
	Delete(ctx context.Context, flightNumber, reviewID string) error
}

type ReviewInput struct {
	Username string
	Comment  string
	Star     int
}

// ReviewUpdate is a partial update; nil leaves the field unchanged.
type ReviewUpdate struct {
	Username *string
	Comment  *string
	Star     *int
}

type ReviewService struct {
	flights repository.FlightRepository
	log     zerolog.Logger
}

func NewReviewService(flights repository.FlightRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{flights: flights, log: log}
}

// ListForFlight reports an absent flight and a flight with zero
// reviews identically: from the caller's view there is nothing to
// list either way.
func (s *ReviewService) ListForFlight(ctx context.Context, flightNumber string) ([]domain.Review, error) {
	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoReviewsFound
		}
		return nil, err
	}
	if len(flight.Reviews) == 0 {
		return nil, domain.ErrNoReviewsFound
	}
	return flight.Reviews, nil
}

func (s *ReviewService) ListAll(ctx context.Context) ([]domain.FlightReview, error) {
	flights, err := s.flights.ListWithReviews(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]domain.FlightReview, 0)
	for _, flight := range flights {
		for _, review := range flight.Reviews {
			all = append(all, domain.FlightReview{Review: review, FlightNumber: flight.FlightNumber})
		}
	}
	if len(all) == 0 {
		return nil, domain.NewError(domain.ErrNotFound, "No reviews found for any flight")
	}
	return all, nil
}

func (s *ReviewService) Add(ctx context.Context, flightNumber string, input ReviewInput) (*domain.Review, error) {
	if input.Username == "" || input.Comment == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Missing required fields")
	}
	if input.Star < 1 || input.Star > 5 {
		return nil, domain.NewError(domain.ErrInvalidInput, "Star rating must be between 1 and 5")
	}

	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		return nil, err
	}

	review := domain.Review{
		ID:       uuid.NewString(),
		Username: input.Username,
		Comment:  input.Comment,
		Star:     input.Star,
	}

	if err := s.flights.UpdateReviews(ctx, flightNumber, append(flight.Reviews, review)); err != nil {
		return nil, err
	}

	s.log.Info().Str("flight_number", flightNumber).Str("review_id", review.ID).Msg("review added")
	return &review, nil
}

func (s *ReviewService) Update(ctx context.Context, flightNumber, reviewID string, upd ReviewUpdate) error {
	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		return err
	}

	found := false
	for i := range flight.Reviews {
		if flight.Reviews[i].ID != reviewID {
			continue
		}
		if upd.Username != nil {
			flight.Reviews[i].Username = *upd.Username
		}
		if upd.Comment != nil {
			flight.Reviews[i].Comment = *upd.Comment
		}
		if upd.Star != nil {
			if *upd.Star < 1 || *upd.Star > 5 {
				return domain.NewError(domain.ErrInvalidInput, "Star rating must be between 1 and 5")
			}
			flight.Reviews[i].Star = *upd.Star
		}
		found = true
		break
	}
	if !found {
		return domain.ErrReviewNotFound
	}

	return s.flights.UpdateReviews(ctx, flightNumber, flight.Reviews)
}

func (s *ReviewService) Delete(ctx context.Context, flightNumber, reviewID string) error {
	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		return err
	}

	remaining := make([]domain.Review, 0, len(flight.Reviews))
	for _, review := range flight.Reviews {
		if review.ID != reviewID {
			remaining = append(remaining, review)
		}
	}
	if len(remaining) == len(flight.Reviews) {
		return domain.ErrReviewNotFound
	}

	if err := s.flights.UpdateReviews(ctx, flightNumber, remaining); err != nil {
		return err
	}

	s.log.Info().Str("flight_number", flightNumber).Str("review_id", reviewID).Msg("review deleted")
	return nil
}

var _ ReviewUseCase = (*ReviewService)(nil)
