package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spacecal/spacecal/pkg/event"
)

// GatewayStub is an in-memory Gateway with switchable failure modes for
// exercising the store's optimistic fallback paths.
type GatewayStub struct {
	mu     sync.Mutex
	items  map[string]event.Event
	order  []string
	nextId int

	FailCreate bool
	FailList   bool
	FailUpdate bool
	FailDelete bool
}

var errGatewayDown = errors.New("gateway unavailable")

func NewGatewayStub() *GatewayStub {
	return &GatewayStub{items: make(map[string]event.Event), nextId: 1}
}

func (g *GatewayStub) CreateEvent(ctx context.Context, spaceId string, authorUid string, draft event.Draft) (event.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailCreate {
		return event.Event{}, errGatewayDown
	}

	e := event.Event{
		Id:          fmt.Sprintf("srv-%d", g.nextId),
		SpaceId:     spaceId,
		AuthorUid:   authorUid,
		Title:       draft.Title,
		Description: draft.Description,
		StartDate:   draft.StartDate,
		StartTime:   event.NormalizeTime(draft.StartTime),
		EndDate:     draft.EndDate,
		EndTime:     event.NormalizeTime(draft.EndTime),
		Type:        draft.Type,
	}
	e.SyncLegacyFields()
	g.nextId++
	g.items[e.Id] = e
	g.order = append(g.order, e.Id)
	return e, nil
}

func (g *GatewayStub) ListEvents(ctx context.Context, spaceId string) ([]event.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailList {
		return nil, errGatewayDown
	}

	result := make([]event.Event, 0, len(g.order))
	for _, id := range g.order {
		if e := g.items[id]; e.SpaceId == spaceId {
			result = append(result, e)
		}
	}
	return result, nil
}

func (g *GatewayStub) UpdateEvent(ctx context.Context, eventId string, patch event.Patch) (event.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailUpdate {
		return event.Event{}, errGatewayDown
	}

	e, ok := g.items[eventId]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	patch.Apply(&e)
	e.AuthorName = ""
	g.items[eventId] = e
	return e, nil
}

func (g *GatewayStub) DeleteEvent(ctx context.Context, eventId string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailDelete {
		return errGatewayDown
	}

	delete(g.items, eventId)
	for i, id := range g.order {
		if id == eventId {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count reports how many events the stub currently stores.
func (g *GatewayStub) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}
