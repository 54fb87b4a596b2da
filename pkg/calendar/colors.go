package calendar

import "github.com/spacecal/spacecal/pkg/event"

// TypeColors are the fixed display colors of the three event categories,
// stable across the whole app and independent of session.
var TypeColors = map[event.Type]string{
	event.TypeSelf:   "#6366f1",
	event.TypeOther:  "#f59e0b",
	event.TypeShared: "#10b981",
}

// authorPalette is the positional fallback for events without a known
// category, indexed by distinct-author order within the collection.
var authorPalette = []string{
	"#6366f1",
	"#f59e0b",
	"#10b981",
	"#ef4444",
	"#8b5cf6",
	"#06b6d4",
}

// ColorFor returns the display color for an event: the fixed category
// color when the type is known, otherwise a palette color keyed by the
// author's position among distinct authors seen in the collection. The
// fallback ordering shifts as the collection mutates; that instability is
// a documented limitation, not a contract.
func (s *Store) ColorFor(authorUid string, eventType event.Type) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colorForLocked(authorUid, eventType)
}

func (s *Store) colorForLocked(authorUid string, eventType event.Type) string {
	if color, ok := TypeColors[eventType]; ok {
		return color
	}

	seen := make(map[string]bool)
	index := 0
	for _, entry := range s.events {
		if seen[entry.AuthorUid] {
			continue
		}
		if entry.AuthorUid == authorUid {
			return authorPalette[index%len(authorPalette)]
		}
		seen[entry.AuthorUid] = true
		index++
	}
	return authorPalette[0]
}
