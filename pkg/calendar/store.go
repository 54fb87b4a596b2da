package calendar

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spacecal/spacecal/internal/utils"
	"github.com/spacecal/spacecal/pkg/event"
)

// Store owns the authoritative client-side event collection for one
// user's active space. Every mutation is applied optimistically: the
// local collection always reflects the user's intent, and divergence from
// the remote store is tracked per entry and retried by Reconcile.
//
// Operations serialize on the store mutex, so a second mutation issued
// while another is in flight waits instead of interleaving.
type Store struct {
	mu       sync.Mutex
	gateway  Gateway
	resolver SpaceResolver
	clock    utils.Clock

	// settleDelay is waited once after sign-in before resolving the
	// default space, so personal-space provisioning can finish first.
	settleDelay time.Duration

	events        []Entry
	refreshing    bool
	activeSpaceId string
	initialized   bool
	userUid       string
	displayName   string

	pendingDeletes map[string]struct{}
	localSeq       int
}

func NewStore(gateway Gateway, resolver SpaceResolver, clock utils.Clock, settleDelay time.Duration) *Store {
	return &Store{
		gateway:        gateway,
		resolver:       resolver,
		clock:          clock,
		settleDelay:    settleDelay,
		pendingDeletes: make(map[string]struct{}),
	}
}

// InitializeForSession reacts to an authentication state transition.
// Loading is a no-op so an in-flight sign-in is never raced. Sign-out
// clears every trace of the previous session. The first signed-in call
// loads the default space's events; the initialized flag guards against
// duplicate concurrent initial loads. Failures degrade to the placeholder
// dataset instead of an empty calendar and are logged for diagnosis.
func (s *Store) InitializeForSession(ctx context.Context, state AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state.Status {
	case AuthLoading:
		return
	case AuthSignedOut:
		s.events = nil
		s.activeSpaceId = ""
		s.initialized = false
		s.userUid = ""
		s.displayName = ""
		s.pendingDeletes = make(map[string]struct{})
		return
	}

	if s.initialized {
		return
	}
	s.initialized = true
	s.userUid = state.UserUid
	s.displayName = state.DisplayName

	if s.settleDelay > 0 {
		s.clock.Sleep(s.settleDelay)
	}
	s.initialLoadLocked(ctx)
}

func (s *Store) initialLoadLocked(ctx context.Context) {
	spaceId, err := s.resolver.DefaultSpaceID(ctx, s.userUid)
	if err != nil {
		s.loadPlaceholderLocked(fmt.Sprintf("default space resolution failed for user %s: %v", s.userUid, err))
		return
	}
	if err := s.loadEventsLocked(ctx, spaceId); err != nil {
		s.loadPlaceholderLocked(fmt.Sprintf("initial event load failed for space %s: %v", spaceId, err))
	}
}

// LoadEventsForSpace replaces the whole collection with the gateway's
// view of spaceId. Gateway failures propagate so callers can pick their
// own fallback policy. Entries still pending against the gateway survive
// the reload: pending updates overlay their fetched row, pending creates
// are re-appended.
func (s *Store) LoadEventsForSpace(ctx context.Context, spaceId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadEventsLocked(ctx, spaceId)
}

func (s *Store) loadEventsLocked(ctx context.Context, spaceId string) error {
	fetched, err := s.gateway.ListEvents(ctx, spaceId)
	if err != nil {
		return fmt.Errorf("failed to load events for space %s: %w", spaceId, err)
	}

	pendingCreates := make([]Entry, 0)
	pendingUpdates := make(map[string]Entry)
	for _, entry := range s.events {
		switch entry.Sync {
		case StatusPendingCreate:
			pendingCreates = append(pendingCreates, entry)
		case StatusPendingUpdate:
			pendingUpdates[entry.Id] = entry
		}
	}

	entries := make([]Entry, 0, len(fetched)+len(pendingCreates))
	for _, e := range fetched {
		// A pending local update wins over the fetched (stale) row.
		if overlay, ok := pendingUpdates[e.Id]; ok {
			entries = append(entries, overlay)
			continue
		}
		entries = append(entries, Entry{Event: e, Sync: StatusSynced})
	}
	entries = append(entries, pendingCreates...)

	s.events = entries
	s.activeSpaceId = spaceId
	return nil
}

func (s *Store) loadPlaceholderLocked(reason string) {
	log.Warnf("falling back to placeholder dataset: %s", reason)
	s.events = placeholderEntries()
}

// AddEvent creates an event optimistically. The returned entry is always
// part of the collection afterwards, even when the gateway rejects the
// create or no space has resolved yet; the user's typed entry is never
// lost. Only precondition failures (validation, no active space) surface
// as errors.
func (s *Store) AddEvent(ctx context.Context, draft event.Draft, authorUid, authorName string) (Entry, error) {
	normalizeDraft(&draft)
	if err := draft.Validate(); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeSpaceId == "" {
		entry := s.localEntryLocked(draft, authorUid, authorName)
		s.events = append(s.events, entry)
		log.Warnf("event %q added without an active space, kept local-only", draft.Title)
		return entry, ErrNoActiveSpace
	}

	created, err := s.gateway.CreateEvent(ctx, s.activeSpaceId, authorUid, draft)
	if err != nil {
		log.Errorf("event create failed, keeping local copy for reconciliation: %v", err)
		entry := s.localEntryLocked(draft, authorUid, authorName)
		s.events = append(s.events, entry)
		return entry, nil
	}

	created.AuthorName = authorName
	entry := Entry{Event: created, Sync: StatusSynced}
	s.events = append(s.events, entry)
	return entry, nil
}

// UpdateEvent patches an event. On gateway success the confirmed row
// replaces the local one (keeping the locally known author name, which
// update responses do not carry); on failure the patch is applied locally
// and the entry marked for reconciliation. The caller never sees a
// gateway error, only precondition failures.
func (s *Store) UpdateEvent(ctx context.Context, eventId string, patch event.Patch) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(eventId)
	if idx < 0 {
		return Entry{}, event.ErrNotFound
	}
	cur := s.events[idx]
	if err := validatePatchRange(cur.Event, patch); err != nil {
		return Entry{}, err
	}
	if s.activeSpaceId == "" {
		return Entry{}, ErrNoActiveSpace
	}

	// Entries the gateway has never seen are patched in place; the
	// pending create will carry the new fields when it is retried.
	if cur.Sync == StatusPendingCreate || cur.Sync == StatusLocalOnly {
		patch.Apply(&cur.Event)
		s.events[idx] = cur
		return cur, nil
	}

	updated, err := s.gateway.UpdateEvent(ctx, eventId, patch)
	if err != nil {
		log.Errorf("event update failed, applying patch locally: %v", err)
		patch.Apply(&cur.Event)
		cur.Sync = StatusPendingUpdate
		s.events[idx] = cur
		return cur, nil
	}

	updated.AuthorName = cur.AuthorName
	entry := Entry{Event: updated, Sync: StatusSynced}
	s.events[idx] = entry
	return entry, nil
}

// DeleteEvent removes the event from the collection no matter what the
// gateway says: the user's intent to remove it from their own view takes
// priority. A failed remote delete is logged and retried by Reconcile.
func (s *Store) DeleteEvent(ctx context.Context, eventId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(eventId)
	var removed Entry
	found := idx >= 0
	if found {
		removed = s.events[idx]
		s.events = append(s.events[:idx], s.events[idx+1:]...)
	}

	// Entries the gateway never stored have nothing to delete remotely.
	if found && (removed.Sync == StatusPendingCreate || removed.Sync == StatusLocalOnly) {
		return
	}

	if err := s.gateway.DeleteEvent(ctx, eventId); err != nil {
		log.Errorf("event delete failed remotely, already removed locally: %v", err)
		if found {
			s.pendingDeletes[eventId] = struct{}{}
		}
	}
}

// Refresh retries pending operations, then reloads the active space (or
// re-attempts full initialization when none resolved yet). Failures fall
// back to the placeholder dataset. The refreshing flag is cleared on
// every exit path so a UI spinner cannot get stuck.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshing = true
	defer func() { s.refreshing = false }()

	s.reconcileLocked(ctx)

	if s.activeSpaceId != "" {
		if err := s.loadEventsLocked(ctx, s.activeSpaceId); err != nil {
			s.loadPlaceholderLocked(fmt.Sprintf("refresh failed: %v", err))
		}
		return
	}

	if s.userUid == "" {
		s.loadPlaceholderLocked("refresh requested before sign-in")
		return
	}
	s.initialLoadLocked(ctx)
}

// Reconcile retries every pending create, update and delete against the
// gateway. Successes flip to synced (creates adopt the server-assigned
// id); failures stay pending for the next pass.
func (s *Store) Reconcile(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcileLocked(ctx)
}

func (s *Store) reconcileLocked(ctx context.Context) {
	for id := range s.pendingDeletes {
		if err := s.gateway.DeleteEvent(ctx, id); err != nil {
			log.Debugf("pending delete of %s still failing: %v", id, err)
			continue
		}
		delete(s.pendingDeletes, id)
	}

	for i, entry := range s.events {
		switch entry.Sync {
		case StatusPendingCreate:
			if s.activeSpaceId == "" {
				continue
			}
			created, err := s.gateway.CreateEvent(ctx, s.activeSpaceId, entry.AuthorUid, draftOf(entry.Event))
			if err != nil {
				log.Debugf("pending create of %q still failing: %v", entry.Title, err)
				continue
			}
			created.AuthorName = entry.AuthorName
			s.events[i] = Entry{Event: created, Sync: StatusSynced}
		case StatusPendingUpdate:
			updated, err := s.gateway.UpdateEvent(ctx, entry.Id, patchOf(entry.Event))
			if err != nil {
				log.Debugf("pending update of %s still failing: %v", entry.Id, err)
				continue
			}
			updated.AuthorName = entry.AuthorName
			s.events[i] = Entry{Event: updated, Sync: StatusSynced}
		}
	}
}

// Events returns a copy of the collection in insertion order.
func (s *Store) Events() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Store) IsRefreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshing
}

func (s *Store) ActiveSpaceId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSpaceId
}

// PendingDeletes reports how many remote deletes still await retry.
func (s *Store) PendingDeletes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pendingDeletes)
}

// EventsOnDate returns every event whose inclusive [StartDate, EndDate]
// range covers date, falling back to an exact match on the legacy Date
// field for entries without a range. Order follows the collection's
// insertion order; callers needing chronological order within a day sort
// explicitly.
func (s *Store) EventsOnDate(date string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Entry, 0, 4)
	for _, entry := range s.events {
		if entry.StartDate != "" && entry.EndDate != "" {
			if date >= entry.StartDate && date <= entry.EndDate {
				result = append(result, entry)
			}
			continue
		}
		if entry.Date == date {
			result = append(result, entry)
		}
	}
	return result
}

func (s *Store) indexOfLocked(eventId string) int {
	for i, entry := range s.events {
		if entry.Id == eventId {
			return i
		}
	}
	return -1
}

func (s *Store) hasIdLocked(id string) bool {
	return s.indexOfLocked(id) >= 0
}

// localEntryLocked builds the local-only fallback entry for a draft the
// gateway could not (or cannot yet) store. The id is the creation
// timestamp, suffixed on collision so it stays unique within the session.
func (s *Store) localEntryLocked(draft event.Draft, authorUid, authorName string) Entry {
	id := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	for s.hasIdLocked(id) {
		s.localSeq++
		id = fmt.Sprintf("%s-%d", strconv.FormatInt(s.clock.Now().UnixMilli(), 10), s.localSeq)
	}

	e := event.Event{
		Id:          id,
		SpaceId:     s.activeSpaceId,
		AuthorUid:   authorUid,
		AuthorName:  authorName,
		Title:       draft.Title,
		Description: draft.Description,
		StartDate:   draft.StartDate,
		StartTime:   draft.StartTime,
		EndDate:     draft.EndDate,
		EndTime:     draft.EndTime,
		Type:        draft.Type,
	}
	e.SyncLegacyFields()
	return Entry{Event: e, Sync: StatusPendingCreate}
}

func normalizeDraft(d *event.Draft) {
	d.StartTime = event.NormalizeTime(d.StartTime)
	d.EndTime = event.NormalizeTime(d.EndTime)
}

// validatePatchRange rejects patches that would leave the event with an
// inverted date range, before any local or remote apply.
func validatePatchRange(cur event.Event, patch event.Patch) error {
	start := cur.StartDate
	end := cur.EndDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if start > end {
		return fmt.Errorf("%w: %s > %s", event.ErrInvalidRange, start, end)
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return event.ErrInvalidType
	}
	return nil
}

func draftOf(e event.Event) event.Draft {
	return event.Draft{
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		StartTime:   e.StartTime,
		EndDate:     e.EndDate,
		EndTime:     e.EndTime,
		Type:        e.Type,
	}
}

func patchOf(e event.Event) event.Patch {
	return event.Patch{
		Title:       &e.Title,
		Description: &e.Description,
		StartDate:   &e.StartDate,
		StartTime:   &e.StartTime,
		EndDate:     &e.EndDate,
		EndTime:     &e.EndTime,
		Type:        &e.Type,
	}
}
