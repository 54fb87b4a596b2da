package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Authentication
	r.HandleFunc("/api/auth/login", deps.OAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/auth/callback", deps.OAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/auth/session", deps.OAuth.Logout).Methods("DELETE")

	// Current user
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Spaces
	r.HandleFunc("/api/space", deps.SpaceHandler.ListSpaces).Methods("GET")
	r.HandleFunc("/api/space/personal", deps.SpaceHandler.EnsurePersonalSpace).Methods("POST")

	// Calendar store (optimistic, per-session)
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEventsOnDate).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/calendar/marks", deps.CalendarHandler.GetMarks).Methods("GET")
	r.HandleFunc("/api/calendar/refresh", deps.CalendarHandler.Refresh).Methods("POST")

	// Direct gateway reads and export
	r.HandleFunc("/api/space/{spaceId}/event", deps.EventHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/space/{spaceId}/export.ics", deps.ExportHandler.ExportSpace).Methods("GET")
}
