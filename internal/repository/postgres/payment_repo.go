package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"eventpay/internal/domain"
)

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) domain.PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (user_id, event_id, amount, transaction_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		p.UserID, p.EventID, p.Amount, p.TransactionID, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		SELECT id, user_id, event_id, amount, transaction_id, status, gateway_session_id, gateway_payload, created_at, updated_at
		FROM payments
		WHERE id = $1
	`
	p := &domain.Payment{}
	var status string
	var sessionID sql.NullString
	var payload []byte
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.EventID, &p.Amount, &p.TransactionID, &status,
		&sessionID, &payload, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.Status = domain.PaymentStatus(status)
	if sessionID.Valid {
		p.GatewaySessionID = sessionID.String
	}
	if len(payload) > 0 {
		p.GatewayPayload = json.RawMessage(payload)
	}
	return p, nil
}

func (r *paymentRepository) HasPaid(ctx context.Context, userID, eventID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE user_id = $1 AND event_id = $2 AND status = $3)`
	var exists bool
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, userID, eventID, domain.PaymentStatusPaid).Scan(&exists); err != nil {
		return false, fmt.Errorf("check paid payment: %w", err)
	}
	return exists, nil
}

func (r *paymentRepository) AttachCheckoutSession(ctx context.Context, id, sessionID string) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE payments SET gateway_session_id = $2, updated_at = NOW() WHERE id = $1`, id, sessionID)
	if err != nil {
		return fmt.Errorf("attach checkout session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("attach checkout session: %w", err)
	}
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// MarkPaid writes status and payload only while the payment is still PENDING. Amount and
// identity columns are never part of the update.
func (r *paymentRepository) MarkPaid(ctx context.Context, id string, payload json.RawMessage) (bool, error) {
	q := conn(ctx, r.DB)
	query := `
		UPDATE payments
		SET status = $2, gateway_payload = $3, updated_at = NOW()
		WHERE id = $1 AND status <> $2
	`
	result, err := q.ExecContext(ctx, query, id, domain.PaymentStatusPaid, string(payload))
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrPaymentNotFound
		}
		return false, fmt.Errorf("mark payment paid: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark payment paid: %w", err)
	}
	if rows > 0 {
		return true, nil
	}

	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check payment: %w", err)
	}
	if !exists {
		return false, domain.ErrPaymentNotFound
	}
	return false, nil
}

func (r *paymentRepository) SumByHostAndStatus(ctx context.Context, hostID string, status domain.PaymentStatus) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN events e ON e.id = p.event_id
		WHERE e.host_id = $1 AND p.status = $2
	`
	var total float64
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, hostID, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total, nil
}
