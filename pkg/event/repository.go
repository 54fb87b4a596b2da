package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEvent(ctx context.Context, spaceId string, authorUid string, draft Draft) (Event, error)
	GetEvents(ctx context.Context, spaceId string) ([]Event, error)
	GetEventsInRange(ctx context.Context, spaceId string, fromDate, toDate string) ([]Event, error)
	UpdateEvent(ctx context.Context, eventId string, patch Patch) (Event, error)
	DeleteEvent(ctx context.Context, eventId string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// Dates and times travel as the ISO strings the rest of the system uses,
// so they are formatted in SQL instead of scanned as driver-specific types.
const eventColumns = `id,
       space_id,
       user_uid,
       title,
       COALESCE(description, ''),
       to_char(start_date, 'YYYY-MM-DD'),
       COALESCE(to_char(start_time, 'HH24:MI:SS'), ''),
       to_char(end_date, 'YYYY-MM-DD'),
       COALESCE(to_char(end_time, 'HH24:MI:SS'), ''),
       event_type`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := row.Scan(&e.Id, &e.SpaceId, &e.AuthorUid, &e.Title, &e.Description,
		&e.StartDate, &e.StartTime, &e.EndDate, &e.EndTime, &e.Type)
	if err != nil {
		return Event{}, err
	}
	e.SyncLegacyFields()
	return e, nil
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, spaceId string, authorUid string, draft Draft) (Event, error) {
	query := `INSERT INTO events (id, space_id, user_uid, title, description, start_date, start_time, end_date, end_time, event_type)
              VALUES ($1, $2, $3, $4, $5, $6::date, NULLIF($7, '')::time, $8::date, NULLIF($9, '')::time, $10)
              RETURNING ` + eventColumns

	id := uuid.New().String()
	row := r.db.QueryRowContext(ctx, query, id, spaceId, authorUid,
		draft.Title, draft.Description,
		draft.StartDate, NormalizeTime(draft.StartTime),
		draft.EndDate, NormalizeTime(draft.EndTime),
		draft.Type)
	e, err := scanEvent(row)
	if err != nil {
		err := fmt.Errorf("could not insert event: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return e, nil
}

// GetEvents returns all events of a space ordered by start date, each with
// the author's display name denormalized from the users table.
func (r *RepositoryImpl) GetEvents(ctx context.Context, spaceId string) ([]Event, error) {
	query := `SELECT ` + eventColumns + `, COALESCE(u.display_name, '` + UnknownAuthor + `')
              FROM events e
              LEFT JOIN users u ON u.uid = e.user_uid
              WHERE e.space_id = $1
              ORDER BY e.start_date`

	return r.queryEvents(ctx, query, spaceId)
}

func (r *RepositoryImpl) GetEventsInRange(ctx context.Context, spaceId string, fromDate, toDate string) ([]Event, error) {
	query := `SELECT ` + eventColumns + `, COALESCE(u.display_name, '` + UnknownAuthor + `')
              FROM events e
              LEFT JOIN users u ON u.uid = e.user_uid
              WHERE e.space_id = $1
                AND e.start_date >= $2::date
                AND e.end_date <= $3::date
              ORDER BY e.start_date`

	return r.queryEvents(ctx, query, spaceId, fromDate, toDate)
}

func (r *RepositoryImpl) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		var e Event
		err := rows.Scan(&e.Id, &e.SpaceId, &e.AuthorUid, &e.Title, &e.Description,
			&e.StartDate, &e.StartTime, &e.EndDate, &e.EndTime, &e.Type, &e.AuthorName)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		e.SyncLegacyFields()
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEvent writes only the fields set in the patch. The returned row
// does not carry the author display name; callers that have it locally
// keep their copy.
func (r *RepositoryImpl) UpdateEvent(ctx context.Context, eventId string, patch Patch) (Event, error) {
	set := make([]string, 0, 8)
	args := make([]any, 0, 8)
	add := func(expr string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf(expr, len(args)))
	}

	if patch.Title != nil {
		add("title = $%d", *patch.Title)
	}
	if patch.Description != nil {
		add("description = $%d", *patch.Description)
	}
	if patch.StartDate != nil {
		add("start_date = $%d::date", *patch.StartDate)
	}
	if patch.StartTime != nil {
		add("start_time = NULLIF($%d, '')::time", NormalizeTime(*patch.StartTime))
	}
	if patch.EndDate != nil {
		add("end_date = $%d::date", *patch.EndDate)
	}
	if patch.EndTime != nil {
		add("end_time = NULLIF($%d, '')::time", NormalizeTime(*patch.EndTime))
	}
	if patch.Type != nil {
		add("event_type = $%d", *patch.Type)
	}
	set = append(set, "updated_at = now()")

	args = append(args, eventId)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d RETURNING `+eventColumns,
		strings.Join(set, ", "), len(args))

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not update event: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, eventId string) error {
	query := `DELETE FROM events WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, eventId); err != nil {
		err := fmt.Errorf("could not delete event: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
