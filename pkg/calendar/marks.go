package calendar

import "time"

// Mark is the per-date marking the calendar grid renders. A date carries
// either a single-day dot (Marked/DotColor) or one slice of a multi-day
// period span (StartingDay/EndingDay/Color/TextColor), never both.
type Mark struct {
	Marked      bool   `json:"marked,omitempty"`
	DotColor    string `json:"dotColor,omitempty"`
	StartingDay bool   `json:"startingDay,omitempty"`
	EndingDay   bool   `json:"endingDay,omitempty"`
	Color       string `json:"color,omitempty"`
	TextColor   string `json:"textColor,omitempty"`
}

const periodTextColor = "white"

// CalendarMarks rebuilds the date -> mark mapping from the full
// collection. Multi-day events emit a period slice for every date in
// their inclusive range, single-day events a dot on their one date. When
// two events mark the same date the later-iterated one wins; one date
// cannot show two distinct marks in this shape.
func (s *Store) CalendarMarks() map[string]Mark {
	s.mu.Lock()
	defer s.mu.Unlock()

	marks := make(map[string]Mark)
	for _, entry := range s.events {
		if entry.StartDate == "" || entry.EndDate == "" {
			continue
		}

		if entry.StartDate == entry.EndDate {
			marks[entry.StartDate] = Mark{
				Marked:   true,
				DotColor: s.colorForLocked(entry.AuthorUid, entry.Type),
			}
			continue
		}

		dates := dateRange(entry.StartDate, entry.EndDate)
		color := s.colorForLocked(entry.AuthorUid, entry.Type)
		for i, date := range dates {
			marks[date] = Mark{
				StartingDay: i == 0,
				EndingDay:   i == len(dates)-1,
				Color:       color,
				TextColor:   periodTextColor,
			}
		}
	}
	return marks
}

// dateRange expands [start, end] into every ISO date it covers,
// inclusive. Unparseable or inverted inputs yield nil.
func dateRange(start, end string) []string {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}
