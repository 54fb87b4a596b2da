package export

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/spacecal/spacecal/pkg/event"
)

// EventLister is the slice of the event service the exporter needs.
type EventLister interface {
	ListEvents(ctx context.Context, spaceId string) ([]event.Event, error)
}

// Exporter renders a space's events as an iCalendar feed so other
// calendar apps can subscribe to it.
type Exporter struct {
	events EventLister
}

func NewExporter(events EventLister) *Exporter {
	return &Exporter{events: events}
}

// RenderSpace serializes every event of the space. Date-only events
// become all-day entries; timed events carry their local wall-clock
// start and end.
func (e *Exporter) RenderSpace(ctx context.Context, spaceId string) (string, error) {
	events, err := e.events.ListEvents(ctx, spaceId)
	if err != nil {
		return "", fmt.Errorf("failed to list events for export: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//spacecal//calendar export//KO")

	for _, ev := range events {
		icsEvent := cal.AddEvent(ev.Id)
		icsEvent.SetSummary(ev.Title)
		if ev.Description != "" {
			icsEvent.SetDescription(ev.Description)
		}
		if ev.AuthorName != "" {
			icsEvent.SetOrganizer(ev.AuthorName)
		}

		start, end, allDay, err := eventInterval(ev)
		if err != nil {
			return "", err
		}
		if allDay {
			icsEvent.SetAllDayStartAt(start)
			// DTEND is exclusive for all-day entries.
			icsEvent.SetAllDayEndAt(end.AddDate(0, 0, 1))
		} else {
			icsEvent.SetStartAt(start)
			icsEvent.SetEndAt(end)
		}
	}

	return cal.Serialize(), nil
}

func eventInterval(ev event.Event) (start, end time.Time, allDay bool, err error) {
	startDate, err := time.Parse("2006-01-02", ev.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event %s has invalid start date: %w", ev.Id, err)
	}
	endDate, err := time.Parse("2006-01-02", ev.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event %s has invalid end date: %w", ev.Id, err)
	}

	if ev.StartTime == "" || ev.EndTime == "" {
		return startDate, endDate, true, nil
	}

	startClock, err := time.Parse("15:04:05", event.NormalizeTime(ev.StartTime))
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event %s has invalid start time: %w", ev.Id, err)
	}
	endClock, err := time.Parse("15:04:05", event.NormalizeTime(ev.EndTime))
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("event %s has invalid end time: %w", ev.Id, err)
	}

	start = startDate.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute + time.Duration(startClock.Second())*time.Second)
	end = endDate.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute + time.Duration(endClock.Second())*time.Second)
	return start, end, false, nil
}
