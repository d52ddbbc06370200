package domain

import (
	"context"
	"time"
)

// Rating is a review score in [1, 5].
type Rating int

// NewRating validates v and returns it as a Rating.
func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return 0, ErrInvalidRating
	}
	return Rating(v), nil
}

// Review is an immutable rating of an event by one of its participants.
// HostID is copied from the event so hosts can list reviews about them directly.
// swagger:model Review
type Review struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	ReviewerID string    `json:"reviewerId"`
	HostID     string    `json:"hostId"`
	Rating     Rating    `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewRepository defines storage operations for reviews.
type ReviewRepository interface {
	// Create inserts the review. Returns ErrAlreadyReviewed on an (event, reviewer) conflict.
	Create(ctx context.Context, r *Review) error
	ListByReviewerID(ctx context.Context, reviewerID string) ([]*Review, error)
	ListByHostID(ctx context.Context, hostID string) ([]*Review, error)
}

// AddReviewInput is the validated payload for a new review.
type AddReviewInput struct {
	EventID string
	Rating  int
	Comment *string
}

// ReviewService gates and stores reviews.
type ReviewService interface {
	AddReview(ctx context.Context, caller Caller, in AddReviewInput) (*Review, error)
	// ListMyReviews returns reviews given by a USER or received by a HOST.
	ListMyReviews(ctx context.Context, caller Caller) ([]*Review, error)
}
