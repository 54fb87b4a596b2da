package user

import (
	"context"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{users: make(map[string]User)}
}

func (r *RepositoryStub) GetByUid(ctx context.Context, uid string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[uid]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *RepositoryStub) Upsert(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[u.Uid]; ok {
		u.CreatedAt = existing.CreatedAt
	} else if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.users[u.Uid] = u
	return u, nil
}
