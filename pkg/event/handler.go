package event

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spacecal/spacecal/internal/rest"
	"github.com/spacecal/spacecal/pkg/user"
)

// Handler exposes direct gateway reads; mutations go through the
// calendar store so they stay optimistic.
type Handler struct {
	service Service
}

type EventDTO struct {
	Id          string `json:"id"`
	SpaceId     string `json:"spaceId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate"`
	StartTime   string `json:"startTime,omitempty"`
	EndDate     string `json:"endDate"`
	EndTime     string `json:"endTime,omitempty"`
	EventType   string `json:"eventType"`
	UserId      string `json:"userId"`
	UserName    string `json:"userName"`
}

func NewEventHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	if _, err := user.CurrentUser(r.Context()); err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	spaceId := mux.Vars(r)["spaceId"]
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	var (
		events []Event
		err    error
	)
	if from == "" && to == "" {
		events, err = h.service.ListEvents(r.Context(), spaceId)
	} else {
		if !validDate(from) || !validDate(to) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date range",
				Details: "'from' and 'to' must be in YYYY-MM-DD format",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		events, err = h.service.ListEventsInRange(r.Context(), spaceId, from, to)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func validDate(v string) bool {
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		Id:          e.Id,
		SpaceId:     e.SpaceId,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		StartTime:   e.StartTime,
		EndDate:     e.EndDate,
		EndTime:     e.EndTime,
		EventType:   string(e.Type),
		UserId:      e.AuthorUid,
		UserName:    e.AuthorName,
	}
}
