package user

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	service Service
}

type UserDTO struct {
	Uid         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	PhotoUrl    string `json:"photoUrl,omitempty"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u, err := CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(UserDTO{
		Uid:         u.Uid,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		PhotoUrl:    u.PhotoUrl,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
