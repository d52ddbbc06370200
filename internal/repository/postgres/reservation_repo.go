package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventpay/internal/domain"
)

type reservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) domain.ReservationRepository {
	return &reservationRepository{
		DB: db,
	}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, event_id, paid, joined_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, res.UserID, res.EventID, res.Paid, res.JoinedAt).
		Scan(&res.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyJoined
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	query := `
		SELECT id, user_id, event_id, paid, joined_at
		FROM reservations
		WHERE id = $1
	`
	res := &domain.Reservation{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).
		Scan(&res.ID, &res.UserID, &res.EventID, &res.Paid, &res.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Reservation, error) {
	query := `
		SELECT id, user_id, event_id, paid, joined_at
		FROM reservations
		WHERE event_id = $1 AND user_id = $2
	`
	res := &domain.Reservation{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, userID).
		Scan(&res.ID, &res.UserID, &res.EventID, &res.Paid, &res.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	query := `
		SELECT id, user_id, event_id, paid, joined_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY joined_at DESC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*domain.Reservation
	for rows.Next() {
		res := &domain.Reservation{}
		if err := rows.Scan(&res.ID, &res.UserID, &res.EventID, &res.Paid, &res.JoinedAt); err != nil {
			return nil, err
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if list == nil {
		list = []*domain.Reservation{}
	}
	return list, nil
}

// MarkPaid only touches rows that are still unpaid, so repeated deliveries converge on the same row.
func (r *reservationRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	q := conn(ctx, r.DB)
	result, err := q.ExecContext(ctx, `UPDATE reservations SET paid = TRUE WHERE id = $1 AND paid = FALSE`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrReservationNotFound
		}
		return false, fmt.Errorf("mark reservation paid: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark reservation paid: %w", err)
	}
	if rows > 0 {
		return true, nil
	}

	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check reservation: %w", err)
	}
	if !exists {
		return false, domain.ErrReservationNotFound
	}
	return false, nil
}
