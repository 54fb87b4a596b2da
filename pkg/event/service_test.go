package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, *RepositoryStub) {
	repo := NewRepositoryStub()
	return NewEventService(repo), repo
}

func TestService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid draft with normalized times", func(t *testing.T) {
		service, _ := setupServiceTest(t)

		created, err := service.CreateEvent(ctx, "space-1", "u1", Draft{
			Title:     "회의",
			StartDate: "2025-09-02",
			StartTime: "10:00",
			EndDate:   "2025-09-02",
			EndTime:   "11:00",
			Type:      TypeSelf,
		})

		assert.NoError(t, err)
		assert.Equal(t, "event-1", created.Id)
		assert.Equal(t, "10:00:00", created.StartTime)
		assert.Equal(t, "2025-09-02", created.Date)
	})

	t.Run("rejects invalid drafts before storage", func(t *testing.T) {
		service, repo := setupServiceTest(t)

		_, err := service.CreateEvent(ctx, "space-1", "u1", Draft{Title: "", Type: TypeSelf})

		assert.ErrorIs(t, err, ErrEmptyTitle)
		events, listErr := repo.GetEvents(ctx, "space-1")
		assert.NoError(t, listErr)
		assert.Empty(t, events)
	})
}

func TestService_ListEvents(t *testing.T) {
	ctx := context.Background()
	service, repo := setupServiceTest(t)
	repo.SetAuthorName("u1", "지수")

	_, err := service.CreateEvent(ctx, "space-1", "u1", Draft{
		Title: "회의", StartDate: "2025-09-05", EndDate: "2025-09-05", Type: TypeSelf,
	})
	assert.NoError(t, err)
	_, err = service.CreateEvent(ctx, "space-1", "u2", Draft{
		Title: "먼저", StartDate: "2025-09-02", EndDate: "2025-09-02", Type: TypeOther,
	})
	assert.NoError(t, err)
	_, err = service.CreateEvent(ctx, "space-2", "u1", Draft{
		Title: "다른 스페이스", StartDate: "2025-09-03", EndDate: "2025-09-03", Type: TypeSelf,
	})
	assert.NoError(t, err)

	events, err := service.ListEvents(ctx, "space-1")

	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "먼저", events[0].Title)
	assert.Equal(t, UnknownAuthor, events[0].AuthorName)
	assert.Equal(t, "회의", events[1].Title)
	assert.Equal(t, "지수", events[1].AuthorName)
}

func TestService_ListEventsInRange(t *testing.T) {
	ctx := context.Background()
	service, _ := setupServiceTest(t)

	_, err := service.CreateEvent(ctx, "space-1", "u1", Draft{
		Title: "안", StartDate: "2025-09-03", EndDate: "2025-09-04", Type: TypeSelf,
	})
	assert.NoError(t, err)
	_, err = service.CreateEvent(ctx, "space-1", "u1", Draft{
		Title: "밖", StartDate: "2025-09-10", EndDate: "2025-09-12", Type: TypeSelf,
	})
	assert.NoError(t, err)

	t.Run("returns only events inside the range", func(t *testing.T) {
		events, err := service.ListEventsInRange(ctx, "space-1", "2025-09-01", "2025-09-07")
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "안", events[0].Title)
	})

	t.Run("rejects inverted ranges", func(t *testing.T) {
		_, err := service.ListEventsInRange(ctx, "space-1", "2025-09-07", "2025-09-01")
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	service, _ := setupServiceTest(t)
	created, err := service.CreateEvent(ctx, "space-1", "u1", Draft{
		Title: "회의", StartDate: "2025-09-02", EndDate: "2025-09-02", Type: TypeSelf,
	})
	assert.NoError(t, err)

	t.Run("applies partial patches", func(t *testing.T) {
		newTitle := "변경된 회의"
		updated, err := service.UpdateEvent(ctx, created.Id, Patch{Title: &newTitle})
		assert.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
		assert.Equal(t, "2025-09-02", updated.StartDate)
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		badType := Type("party")
		_, err := service.UpdateEvent(ctx, created.Id, Patch{Type: &badType})
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("unknown id", func(t *testing.T) {
		newTitle := "변경"
		_, err := service.UpdateEvent(ctx, "missing", Patch{Title: &newTitle})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	service, _ := setupServiceTest(t)
	created, err := service.CreateEvent(ctx, "space-1", "u1", Draft{
		Title: "회의", StartDate: "2025-09-02", EndDate: "2025-09-02", Type: TypeSelf,
	})
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteEvent(ctx, created.Id))
	events, err := service.ListEvents(ctx, "space-1")
	assert.NoError(t, err)
	assert.Empty(t, events)

	// Deleting twice stays quiet.
	assert.NoError(t, service.DeleteEvent(ctx, created.Id))
}
