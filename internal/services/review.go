package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventpay/internal/clock"
	"eventpay/internal/domain"
)

type reviewService struct {
	events       domain.EventRepository
	reservations domain.ReservationRepository
	reviews      domain.ReviewRepository
	clock        clock.Clock
	timeout      time.Duration
}

func NewReviewService(
	events domain.EventRepository,
	reservations domain.ReservationRepository,
	reviews domain.ReviewRepository,
	clk clock.Clock,
	timeout time.Duration,
) domain.ReviewService {
	return &reviewService{
		events:       events,
		reservations: reservations,
		reviews:      reviews,
		clock:        clk,
		timeout:      timeout,
	}
}

// AddReview stores a review from a participant of an event that has already taken place.
func (s *reviewService) AddReview(ctx context.Context, caller domain.Caller, in domain.AddReviewInput) (*domain.Review, error) {
	if caller.Role != domain.RoleUser {
		return nil, domain.ErrForbidden
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if _, err := s.reservations.GetByEventAndUser(ctx, event.ID, caller.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotParticipant
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}

	now := s.clock.Now()
	if !event.HasStarted(now) {
		return nil, domain.ErrEventNotCompleted
	}

	rating, err := domain.NewRating(in.Rating)
	if err != nil {
		return nil, err
	}

	review := &domain.Review{
		EventID:    event.ID,
		ReviewerID: caller.UserID,
		HostID:     event.HostID,
		Rating:     rating,
		Comment:    in.Comment,
		CreatedAt:  now,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListMyReviews(ctx context.Context, caller domain.Caller) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	switch caller.Role {
	case domain.RoleUser:
		return s.reviews.ListByReviewerID(ctx, caller.UserID)
	case domain.RoleHost:
		return s.reviews.ListByHostID(ctx, caller.UserID)
	default:
		return nil, domain.ErrForbidden
	}
}
