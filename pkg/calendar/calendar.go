package calendar

import (
	"context"
	"errors"

	"github.com/spacecal/spacecal/pkg/event"
)

// Gateway is the remote event store the sync store reconciles against.
// The storage-backed event service satisfies it in-process; a thin HTTP
// client could just as well.
type Gateway interface {
	CreateEvent(ctx context.Context, spaceId string, authorUid string, draft event.Draft) (event.Event, error)
	ListEvents(ctx context.Context, spaceId string) ([]event.Event, error)
	UpdateEvent(ctx context.Context, eventId string, patch event.Patch) (event.Event, error)
	DeleteEvent(ctx context.Context, eventId string) error
}

// SpaceResolver resolves the space the calendar opens with. Must be
// side-effect free; provisioning happens before it is called.
type SpaceResolver interface {
	DefaultSpaceID(ctx context.Context, userUid string) (string, error)
}

// ErrNoActiveSpace means a mutation was attempted before any space resolved.
var ErrNoActiveSpace = errors.New("no active space")

type AuthStatus int

const (
	AuthSignedOut AuthStatus = iota
	AuthLoading
	AuthSignedIn
)

// AuthState is the authentication snapshot injected into the store.
// The store is a pure function of (auth state, space id, gateway); it
// never reaches into a session singleton.
type AuthState struct {
	Status      AuthStatus
	UserUid     string
	DisplayName string
}

func SignedIn(uid, displayName string) AuthState {
	return AuthState{Status: AuthSignedIn, UserUid: uid, DisplayName: displayName}
}

func SignedOut() AuthState {
	return AuthState{Status: AuthSignedOut}
}

func Loading() AuthState {
	return AuthState{Status: AuthLoading}
}

// SyncStatus tags how far an entry has diverged from the remote store.
type SyncStatus string

const (
	StatusSynced        SyncStatus = "synced"
	StatusPendingCreate SyncStatus = "pendingCreate"
	StatusPendingUpdate SyncStatus = "pendingUpdate"
	StatusPendingDelete SyncStatus = "pendingDelete"
	// StatusLocalOnly marks placeholder entries; they are never retried
	// against the gateway and vanish on the next successful load.
	StatusLocalOnly SyncStatus = "localOnly"
)

// Entry is an event plus its synchronization state.
type Entry struct {
	event.Event
	Sync SyncStatus
}
