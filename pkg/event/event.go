package event

import (
	"errors"
	"fmt"
	"strings"
)

// Type classifies whose entry an event is within a space.
type Type string

const (
	TypeSelf   Type = "self"   // my event
	TypeOther  Type = "other"  // the other member's event
	TypeShared Type = "shared" // our joint event
)

func (t Type) Valid() bool {
	switch t {
	case TypeSelf, TypeOther, TypeShared:
		return true
	}
	return false
}

// UnknownAuthor is shown when the author row is gone or the name is missing.
const UnknownAuthor = "알 수 없음"

var (
	ErrNotFound     = errors.New("event not found")
	ErrEmptyTitle   = errors.New("event title must not be empty")
	ErrInvalidType  = errors.New("unknown event type")
	ErrInvalidRange = errors.New("event start date is after its end date")
)

// Event is one scheduled occurrence in a space. Dates are ISO YYYY-MM-DD
// strings and times HH:MM:SS strings (empty when the event has no time);
// ISO strings compare correctly as plain strings, which the date-range
// logic relies on.
type Event struct {
	Id          string
	SpaceId     string
	AuthorUid   string
	AuthorName  string // denormalized at read time, not authoritative
	Title       string
	Description string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	Type        Type

	// Date and Time mirror StartDate/StartTime for older call sites and
	// must be kept in sync with them.
	Date string
	Time string
}

// SyncLegacyFields re-points the legacy mirrors at the start fields.
func (e *Event) SyncLegacyFields() {
	e.Date = e.StartDate
	e.Time = e.StartTime
}

// Draft carries the user-entered fields of a new event.
type Draft struct {
	Title       string
	Description string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	Type        Type
}

// Validate rejects drafts that must not reach storage or the local
// collection: empty titles, unknown types and inverted date ranges.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if !d.Type.Valid() {
		return ErrInvalidType
	}
	if d.StartDate > d.EndDate {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange, d.StartDate, d.EndDate)
	}
	return nil
}

// Patch holds a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	StartDate   *string
	StartTime   *string
	EndDate     *string
	EndTime     *string
	Type        *Type
}

// Apply overlays the patch onto e, normalizing times and re-syncing the
// legacy mirrors. This is also what the optimistic local-only update uses.
func (p Patch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.StartTime != nil {
		e.StartTime = NormalizeTime(*p.StartTime)
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.EndTime != nil {
		e.EndTime = NormalizeTime(*p.EndTime)
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	e.SyncLegacyFields()
}

// NormalizeTime pads HH:MM values with an explicit seconds component.
// Empty strings (no time set) pass through unchanged.
func NormalizeTime(v string) string {
	if len(v) == len("15:04") && strings.Count(v, ":") == 1 {
		return v + ":00"
	}
	return v
}
