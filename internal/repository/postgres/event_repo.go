package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventpay/internal/domain"
)

const eventColumns = `id, host_id, name, date, fee, max_participants, participant_count, status, created_at, updated_at`

type EventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns the Postgres event store. It also serves as the capacity ledger.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{
		DB: db,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (host_id, name, date, fee, max_participants, participant_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.HostID, e.Name, e.Date, e.Fee, e.MaxParticipants, e.ParticipantCount, e.Status, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	query := `
		UPDATE events SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event status: %w", err)
	}
	return e, nil
}

// Admit increments participant_count with a single conditional UPDATE. Postgres re-checks the
// WHERE clause against the latest row version after a concurrent writer commits, so N racing
// admits against a bound of M succeed exactly min(N, M) times.
func (r *EventRepository) Admit(ctx context.Context, eventID string) (int, error) {
	query := `
		UPDATE events
		SET participant_count = participant_count + 1, updated_at = NOW()
		WHERE id = $1 AND participant_count < max_participants
		RETURNING participant_count
	`
	var count int
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrCapacityExceeded
		}
		return 0, fmt.Errorf("admit participant: %w", err)
	}
	return count, nil
}

func scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var status string
	err := row.Scan(
		&e.ID, &e.HostID, &e.Name, &e.Date, &e.Fee, &e.MaxParticipants, &e.ParticipantCount,
		&status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	return e, nil
}
