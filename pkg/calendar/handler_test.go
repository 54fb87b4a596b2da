package calendar

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/spacecal/spacecal/internal/utils"
	"github.com/spacecal/spacecal/pkg/user"
	"github.com/stretchr/testify/assert"
)

// A middleware that sets the current user in the context
func withUser(u user.User, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(user.WithUser(r.Context(), u)))
	})
}

// Test setup helper
func setupHandlerTest(t *testing.T) (*mux.Router, *GatewayStub) {
	gateway := NewGatewayStub()
	resolver := &ResolverStub{SpaceId: "space-1"}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	manager := NewStoreManager(gateway, resolver, clock, 0)
	handler := NewHandler(manager)

	testUser := user.User{Uid: "u1", DisplayName: "지수"}
	r := mux.NewRouter()
	r.Handle("/api/calendar/event", withUser(testUser, http.HandlerFunc(handler.GetEventsOnDate))).Methods("GET")
	r.Handle("/api/calendar/event", withUser(testUser, http.HandlerFunc(handler.CreateEvent))).Methods("POST")
	r.Handle("/api/calendar/event/{eventId}", withUser(testUser, http.HandlerFunc(handler.UpdateEvent))).Methods("PUT")
	r.Handle("/api/calendar/event/{eventId}", withUser(testUser, http.HandlerFunc(handler.DeleteEvent))).Methods("DELETE")
	r.Handle("/api/calendar/marks", withUser(testUser, http.HandlerFunc(handler.GetMarks))).Methods("GET")
	r.Handle("/api/calendar/refresh", withUser(testUser, http.HandlerFunc(handler.Refresh))).Methods("POST")
	return r, gateway
}

func postEvent(t *testing.T, router *mux.Router, dto DraftDTO) *httptest.ResponseRecorder {
	body, err := json.Marshal(dto)
	assert.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/calendar/event", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func testDraftDTO() DraftDTO {
	return DraftDTO{
		Title:     "회의",
		StartDate: "2025-09-02",
		StartTime: "10:00",
		EndDate:   "2025-09-02",
		EndTime:   "11:00",
		EventType: "self",
	}
}

func TestHandler_CreateEvent(t *testing.T) {
	t.Run("creates and returns the synced entry", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		rec := postEvent(t, router, testDraftDTO())

		assert.Equal(t, http.StatusCreated, rec.Code)
		var dto EntryDTO
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, "srv-1", dto.Id)
		assert.Equal(t, "회의", dto.Title)
		assert.Equal(t, "synced", dto.SyncStatus)
		assert.Equal(t, "지수", dto.UserName)
		assert.Equal(t, "10:00:00", dto.StartTime)
		assert.Equal(t, "2025-09-02", dto.Date)
		assert.Equal(t, "#6366f1", dto.Color)
	})

	t.Run("invalid drafts return 400", func(t *testing.T) {
		router, _ := setupHandlerTest(t)
		dto := testDraftDTO()
		dto.Title = "  "

		rec := postEvent(t, router, dto)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("gateway failure still answers 201 with a pending entry", func(t *testing.T) {
		router, gateway := setupHandlerTest(t)
		gateway.FailCreate = true

		rec := postEvent(t, router, testDraftDTO())

		assert.Equal(t, http.StatusCreated, rec.Code)
		var dto EntryDTO
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, "pendingCreate", dto.SyncStatus)
	})

	t.Run("without a user the request is rejected", func(t *testing.T) {
		gateway := NewGatewayStub()
		manager := NewStoreManager(gateway, &ResolverStub{SpaceId: "space-1"}, &utils.MockClock{}, 0)
		handler := NewHandler(manager)

		body, err := json.Marshal(testDraftDTO())
		assert.NoError(t, err)
		req := httptest.NewRequest("POST", "/api/calendar/event", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.CreateEvent(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_GetEventsOnDate(t *testing.T) {
	t.Run("returns events covering the date", func(t *testing.T) {
		router, _ := setupHandlerTest(t)
		postEvent(t, router, testDraftDTO())

		req := httptest.NewRequest("GET", "/api/calendar/event?date=2025-09-02", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var dtos []EntryDTO
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dtos))
		assert.Len(t, dtos, 1)
		assert.Equal(t, "회의", dtos[0].Title)
	})

	t.Run("malformed date returns 400", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		req := httptest.NewRequest("GET", "/api/calendar/event?date=tomorrow", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetMarks(t *testing.T) {
	router, _ := setupHandlerTest(t)
	postEvent(t, router, testDraftDTO())

	req := httptest.NewRequest("GET", "/api/calendar/marks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var marks map[string]Mark
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&marks))
	assert.Len(t, marks, 1)
	assert.True(t, marks["2025-09-02"].Marked)
}

func TestHandler_UpdateEvent(t *testing.T) {
	t.Run("patches an existing event", func(t *testing.T) {
		router, _ := setupHandlerTest(t)
		postEvent(t, router, testDraftDTO())

		newTitle := "변경된 회의"
		body, err := json.Marshal(PatchDTO{Title: &newTitle})
		assert.NoError(t, err)
		req := httptest.NewRequest("PUT", "/api/calendar/event/srv-1", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var dto EntryDTO
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, newTitle, dto.Title)
		assert.Equal(t, "지수", dto.UserName)
	})

	t.Run("unknown event returns 404", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		newTitle := "변경된 회의"
		body, err := json.Marshal(PatchDTO{Title: &newTitle})
		assert.NoError(t, err)
		req := httptest.NewRequest("PUT", "/api/calendar/event/missing", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_DeleteEvent(t *testing.T) {
	router, gateway := setupHandlerTest(t)
	postEvent(t, router, testDraftDTO())

	req := httptest.NewRequest("DELETE", "/api/calendar/event/srv-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, gateway.Count())
}

func TestHandler_Refresh(t *testing.T) {
	router, _ := setupHandlerTest(t)
	postEvent(t, router, testDraftDTO())

	req := httptest.NewRequest("POST", "/api/calendar/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp RefreshResponseDTO
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.IsRefreshing)
	assert.Len(t, resp.Events, 1)
}
