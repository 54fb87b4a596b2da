package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spacecal/spacecal/internal/rest"
	"github.com/spacecal/spacecal/pkg/event"
	"github.com/spacecal/spacecal/pkg/user"
)

type Handler struct {
	manager *StoreManager
}

func NewHandler(manager *StoreManager) *Handler {
	return &Handler{manager: manager}
}

// EntryDTO mirrors the event shape the mobile client renders, legacy
// date/time fields included.
type EntryDTO struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate"`
	StartTime   string `json:"startTime,omitempty"`
	EndDate     string `json:"endDate"`
	EndTime     string `json:"endTime,omitempty"`
	EventType   string `json:"eventType"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	UserId      string `json:"userId"`
	UserName    string `json:"userName"`
	SyncStatus  string `json:"syncStatus"`
	Color       string `json:"color"`
}

type DraftDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	StartTime   string `json:"startTime"`
	EndDate     string `json:"endDate"`
	EndTime     string `json:"endTime"`
	EventType   string `json:"eventType"`
}

type PatchDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	StartTime   *string `json:"startTime"`
	EndDate     *string `json:"endDate"`
	EndTime     *string `json:"endTime"`
	EventType   *string `json:"eventType"`
}

type RefreshResponseDTO struct {
	IsRefreshing bool       `json:"isRefreshing"`
	Events       []EntryDTO `json:"events"`
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request) (*Store, bool) {
	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return h.manager.StoreFor(r.Context(), currentUser), true
}

func (h *Handler) GetEventsOnDate(w http.ResponseWriter, r *http.Request) {
	dateString := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", dateString); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date format",
			Details: "'date' must be in YYYY-MM-DD format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	store, ok := h.store(w, r)
	if !ok {
		return
	}

	entries := store.EventsOnDate(dateString)
	writeJSON(w, http.StatusOK, entriesToDTOs(store, entries))
}

func (h *Handler) GetMarks(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, store.CalendarMarks())
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto DraftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	store := h.manager.StoreFor(r.Context(), currentUser)

	draft := event.Draft{
		Title:       dto.Title,
		Description: dto.Description,
		StartDate:   dto.StartDate,
		StartTime:   dto.StartTime,
		EndDate:     dto.EndDate,
		EndTime:     dto.EndTime,
		Type:        event.Type(dto.EventType),
	}

	entry, err := store.AddEvent(r.Context(), draft, currentUser.Uid, currentUser.DisplayName)
	switch {
	case errors.Is(err, event.ErrEmptyTitle),
		errors.Is(err, event.ErrInvalidType),
		errors.Is(err, event.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "Invalid event", err)
		return
	case errors.Is(err, ErrNoActiveSpace):
		// The entry was still kept locally; tell the client why it is
		// not persisted.
		writeError(w, http.StatusConflict, "No active space", err)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, entryToDTO(store, entry))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var dto PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	store, ok := h.store(w, r)
	if !ok {
		return
	}

	patch := event.Patch{
		Title:       dto.Title,
		Description: dto.Description,
		StartDate:   dto.StartDate,
		StartTime:   dto.StartTime,
		EndDate:     dto.EndDate,
		EndTime:     dto.EndTime,
	}
	if dto.EventType != nil {
		t := event.Type(*dto.EventType)
		patch.Type = &t
	}

	eventId := mux.Vars(r)["eventId"]
	entry, err := store.UpdateEvent(r.Context(), eventId, patch)
	switch {
	case errors.Is(err, event.ErrNotFound):
		writeError(w, http.StatusNotFound, "Event not found", err)
		return
	case errors.Is(err, event.ErrInvalidRange), errors.Is(err, event.ErrInvalidType):
		writeError(w, http.StatusBadRequest, "Invalid event", err)
		return
	case errors.Is(err, ErrNoActiveSpace):
		writeError(w, http.StatusConflict, "No active space", err)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entryToDTO(store, entry))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.DeleteEvent(r.Context(), mux.Vars(r)["eventId"])
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(w, r)
	if !ok {
		return
	}

	store.Refresh(r.Context())
	writeJSON(w, http.StatusOK, RefreshResponseDTO{
		IsRefreshing: store.IsRefreshing(),
		Events:       entriesToDTOs(store, store.Events()),
	})
}

func entryToDTO(s *Store, entry Entry) EntryDTO {
	return EntryDTO{
		Id:          entry.Id,
		Title:       entry.Title,
		Description: entry.Description,
		StartDate:   entry.StartDate,
		StartTime:   entry.StartTime,
		EndDate:     entry.EndDate,
		EndTime:     entry.EndTime,
		EventType:   string(entry.Type),
		Date:        entry.Date,
		Time:        entry.Time,
		UserId:      entry.AuthorUid,
		UserName:    entry.AuthorName,
		SyncStatus:  string(entry.Sync),
		Color:       s.ColorFor(entry.AuthorUid, entry.Type),
	}
}

func entriesToDTOs(s *Store, entries []Entry) []EntryDTO {
	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryToDTO(s, entry))
	}
	return dtos
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   message,
		Details: err.Error(),
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}
