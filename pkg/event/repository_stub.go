package event

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	items   map[string]Event
	order   []string // insertion order, resorted by start date on reads
	authors map[string]string // uid -> display name
	nextId  int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:   make(map[string]Event),
		authors: make(map[string]string),
		nextId:  1,
	}
}

// SetAuthorName registers a display name for denormalized reads.
func (r *RepositoryStub) SetAuthorName(uid, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors[uid] = name
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, spaceId string, authorUid string, draft Draft) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := Event{
		Id:          fmt.Sprintf("event-%d", r.nextId),
		SpaceId:     spaceId,
		AuthorUid:   authorUid,
		Title:       draft.Title,
		Description: draft.Description,
		StartDate:   draft.StartDate,
		StartTime:   NormalizeTime(draft.StartTime),
		EndDate:     draft.EndDate,
		EndTime:     NormalizeTime(draft.EndTime),
		Type:        draft.Type,
	}
	e.SyncLegacyFields()
	r.nextId++
	r.items[e.Id] = e
	r.order = append(r.order, e.Id)
	return e, nil
}

func (r *RepositoryStub) GetEvents(ctx context.Context, spaceId string) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.order))
	for _, id := range r.order {
		e := r.items[id]
		if e.SpaceId != spaceId {
			continue
		}
		if name, ok := r.authors[e.AuthorUid]; ok {
			e.AuthorName = name
		} else {
			e.AuthorName = UnknownAuthor
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].StartDate < result[j].StartDate })
	return result, nil
}

func (r *RepositoryStub) GetEventsInRange(ctx context.Context, spaceId string, fromDate, toDate string) ([]Event, error) {
	all, err := r.GetEvents(ctx, spaceId)
	if err != nil {
		return nil, err
	}
	result := make([]Event, 0, len(all))
	for _, e := range all {
		if e.StartDate >= fromDate && e.EndDate <= toDate {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, eventId string, patch Patch) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[eventId]
	if !ok {
		return Event{}, ErrNotFound
	}
	patch.Apply(&e)
	e.AuthorName = "" // update responses do not carry the author name
	r.items[eventId] = e
	return e, nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, eventId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, eventId)
	for i, id := range r.order {
		if id == eventId {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
