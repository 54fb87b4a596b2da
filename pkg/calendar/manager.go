package calendar

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spacecal/spacecal/internal/utils"
	"github.com/spacecal/spacecal/pkg/user"
)

// StoreManager keeps one Store per signed-in user uid. A store is created
// and initialized on first use; signing out drops it so nothing leaks
// into the next session.
type StoreManager struct {
	mu          sync.Mutex
	stores      map[string]*Store
	gateway     Gateway
	resolver    SpaceResolver
	clock       utils.Clock
	settleDelay time.Duration
}

func NewStoreManager(gateway Gateway, resolver SpaceResolver, clock utils.Clock, settleDelay time.Duration) *StoreManager {
	return &StoreManager{
		stores:      make(map[string]*Store),
		gateway:     gateway,
		resolver:    resolver,
		clock:       clock,
		settleDelay: settleDelay,
	}
}

// StoreFor returns the user's store, creating and initializing it on
// first use. The store's own initialized flag makes repeated calls cheap.
func (m *StoreManager) StoreFor(ctx context.Context, u user.User) *Store {
	m.mu.Lock()
	s, ok := m.stores[u.Uid]
	if !ok {
		s = NewStore(m.gateway, m.resolver, m.clock, m.settleDelay)
		m.stores[u.Uid] = s
	}
	m.mu.Unlock()

	s.InitializeForSession(ctx, SignedIn(u.Uid, u.DisplayName))
	return s
}

// SignOut clears and drops the user's store.
func (m *StoreManager) SignOut(ctx context.Context, userUid string) {
	m.mu.Lock()
	s, ok := m.stores[userUid]
	delete(m.stores, userUid)
	m.mu.Unlock()

	if ok {
		s.InitializeForSession(ctx, SignedOut())
		log.Debugf("cleared calendar store for user %s", userUid)
	}
}

// ReconcileAll retries pending operations on every live store. Wired to
// the periodic reconciliation schedule.
func (m *StoreManager) ReconcileAll(ctx context.Context) {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	for _, s := range stores {
		s.Reconcile(ctx)
	}
}
