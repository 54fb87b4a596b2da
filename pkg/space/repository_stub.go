package space

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	spaces  map[string]Space
	members map[string]map[string]Role // spaceId -> userUid -> role
	nextId  int

	// Error hooks for failure-path tests.
	AddMemberErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		spaces:  make(map[string]Space),
		members: make(map[string]map[string]Role),
		nextId:  1,
	}
}

func (r *RepositoryStub) FindPersonalSpace(ctx context.Context, ownerUid string) (Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.spaces {
		if s.OwnerUid == ownerUid && s.Type == TypePersonal {
			return s, nil
		}
	}
	return Space{}, ErrSpaceNotFound
}

func (r *RepositoryStub) FindAnyOwnedSpace(ctx context.Context, ownerUid string) (Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var oldest *Space
	for _, s := range r.spaces {
		if s.OwnerUid != ownerUid {
			continue
		}
		if oldest == nil || s.CreatedAt.Before(oldest.CreatedAt) {
			copied := s
			oldest = &copied
		}
	}
	if oldest == nil {
		return Space{}, ErrSpaceNotFound
	}
	return *oldest, nil
}

func (r *RepositoryStub) CreateSpace(ctx context.Context, s Space) (Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Id = fmt.Sprintf("space-%d", r.nextId)
	s.CreatedAt = time.Now().Add(time.Duration(r.nextId) * time.Millisecond)
	r.nextId++
	r.spaces[s.Id] = s
	return s, nil
}

func (r *RepositoryStub) AddMember(ctx context.Context, spaceId string, userUid string, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AddMemberErr != nil {
		return r.AddMemberErr
	}
	if _, ok := r.members[spaceId]; !ok {
		r.members[spaceId] = make(map[string]Role)
	}
	r.members[spaceId][userUid] = role
	return nil
}

func (r *RepositoryStub) DeleteSpace(ctx context.Context, spaceId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.spaces, spaceId)
	delete(r.members, spaceId)
	return nil
}

func (r *RepositoryStub) ListForUser(ctx context.Context, userUid string) ([]Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []Space
	for spaceId, members := range r.members {
		if _, ok := members[userUid]; !ok {
			continue
		}
		if s, ok := r.spaces[spaceId]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}
