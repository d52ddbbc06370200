package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventpay/internal/domain"
)

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) domain.ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `
		INSERT INTO reviews (event_id, reviewer_id, host_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var comment sql.NullString
	if rv.Comment != nil {
		comment = sql.NullString{String: *rv.Comment, Valid: true}
	}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		rv.EventID, rv.ReviewerID, rv.HostID, int(rv.Rating), comment, rv.CreatedAt,
	).Scan(&rv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyReviewed
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListByReviewerID(ctx context.Context, reviewerID string) ([]*domain.Review, error) {
	return r.list(ctx, `WHERE reviewer_id = $1`, reviewerID)
}

func (r *reviewRepository) ListByHostID(ctx context.Context, hostID string) ([]*domain.Review, error) {
	return r.list(ctx, `WHERE host_id = $1`, hostID)
}

func (r *reviewRepository) list(ctx context.Context, where string, arg string) ([]*domain.Review, error) {
	query := `
		SELECT id, event_id, reviewer_id, host_id, rating, comment, created_at
		FROM reviews
		` + where + `
		ORDER BY created_at DESC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		rv := &domain.Review{}
		var rating int
		var comment sql.NullString
		if err := rows.Scan(&rv.ID, &rv.EventID, &rv.ReviewerID, &rv.HostID, &rating, &comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		rv.Rating = domain.Rating(rating)
		if comment.Valid {
			rv.Comment = &comment.String
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
