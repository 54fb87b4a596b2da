package calendar

import (
	"testing"

	"github.com/spacecal/spacecal/pkg/event"
	"github.com/stretchr/testify/assert"
)

func TestStore_ColorFor(t *testing.T) {
	t.Run("known types use the fixed category color", func(t *testing.T) {
		store, _, _, _ := setupStoreTest(t)

		assert.Equal(t, "#6366f1", store.ColorFor("anyone", event.TypeSelf))
		assert.Equal(t, "#f59e0b", store.ColorFor("anyone", event.TypeOther))
		assert.Equal(t, "#10b981", store.ColorFor("anyone", event.TypeShared))
	})

	t.Run("unknown types fall back to the author's palette position", func(t *testing.T) {
		store, _, _, _ := setupStoreTest(t)
		store.events = []Entry{
			{Event: event.Event{Id: "1", AuthorUid: "u1"}},
			{Event: event.Event{Id: "2", AuthorUid: "u1"}},
			{Event: event.Event{Id: "3", AuthorUid: "u2"}},
			{Event: event.Event{Id: "4", AuthorUid: "u3"}},
		}

		assert.Equal(t, authorPalette[0], store.ColorFor("u1", ""))
		assert.Equal(t, authorPalette[1], store.ColorFor("u2", ""))
		assert.Equal(t, authorPalette[2], store.ColorFor("u3", ""))
	})

	t.Run("unseen authors get the first palette color", func(t *testing.T) {
		store, _, _, _ := setupStoreTest(t)

		assert.Equal(t, authorPalette[0], store.ColorFor("stranger", ""))
	})
}
