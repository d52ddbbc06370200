package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventpay/internal/clock"
	"eventpay/internal/domain"
)

type hostService struct {
	events  domain.EventRepository
	clock   clock.Clock
	logger  *slog.Logger
	timeout time.Duration
}

func NewHostService(events domain.EventRepository, clk clock.Clock, logger *slog.Logger, timeout time.Duration) domain.HostService {
	return &hostService{
		events:  events,
		clock:   clk,
		logger:  logger,
		timeout: timeout,
	}
}

func (s *hostService) CreateEvent(ctx context.Context, caller domain.Caller, in domain.CreateEventInput) (*domain.Event, error) {
	if caller.Role != domain.RoleHost {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Date.IsZero() || in.Fee < 0 || in.MaxParticipants < 0 {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	event := domain.NewEvent(caller.UserID, name, in.Date.UTC(), in.Fee, in.MaxParticipants, s.clock.Now())
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.Info("event created", "event_id", event.ID, "host_id", event.HostID, "max_participants", event.MaxParticipants)
	return event, nil
}

// UpdateEventStatus changes the lifecycle status. Only the owning host or an admin may do so.
func (s *hostService) UpdateEventStatus(ctx context.Context, caller domain.Caller, eventID string, status domain.EventStatus) (*domain.Event, error) {
	if caller.Role != domain.RoleHost && caller.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if caller.Role == domain.RoleHost && event.HostID != caller.UserID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.events.UpdateStatus(ctx, event.ID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event status: %w", err)
	}
	return updated, nil
}
