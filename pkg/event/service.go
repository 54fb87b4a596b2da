package event

import (
	"context"
	"fmt"
)

// Service fronts the event storage. Its method set is what the calendar
// store consumes as its remote gateway.
type Service interface {
	CreateEvent(ctx context.Context, spaceId string, authorUid string, draft Draft) (Event, error)
	ListEvents(ctx context.Context, spaceId string) ([]Event, error)
	ListEventsInRange(ctx context.Context, spaceId string, fromDate, toDate string) ([]Event, error)
	UpdateEvent(ctx context.Context, eventId string, patch Patch) (Event, error)
	DeleteEvent(ctx context.Context, eventId string) error
}

type ServiceImpl struct {
	repo Repository
}

func NewEventService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateEvent(ctx context.Context, spaceId string, authorUid string, draft Draft) (Event, error) {
	if err := draft.Validate(); err != nil {
		return Event{}, err
	}
	e, err := s.repo.StoreEvent(ctx, spaceId, authorUid, draft)
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}
	return e, nil
}

func (s *ServiceImpl) ListEvents(ctx context.Context, spaceId string) ([]Event, error) {
	return s.repo.GetEvents(ctx, spaceId)
}

func (s *ServiceImpl) ListEventsInRange(ctx context.Context, spaceId string, fromDate, toDate string) ([]Event, error) {
	if fromDate > toDate {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, fromDate, toDate)
	}
	return s.repo.GetEventsInRange(ctx, spaceId, fromDate, toDate)
}

func (s *ServiceImpl) UpdateEvent(ctx context.Context, eventId string, patch Patch) (Event, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return Event{}, ErrInvalidType
	}
	return s.repo.UpdateEvent(ctx, eventId, patch)
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, eventId string) error {
	return s.repo.DeleteEvent(ctx, eventId)
}
