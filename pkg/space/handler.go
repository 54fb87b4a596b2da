package space

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spacecal/spacecal/pkg/user"
)

type Handler struct {
	service *Service
}

type SpaceDTO struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"spaceType"`
	OwnerUid    string    `json:"ownerUid"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	spaces, err := h.service.ListUserSpaces(r.Context(), currentUser.Uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]SpaceDTO, 0, len(spaces))
	for _, s := range spaces {
		dtos = append(dtos, spaceToDTO(s))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) EnsurePersonalSpace(w http.ResponseWriter, r *http.Request) {
	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	s, err := h.service.EnsurePersonalSpace(r.Context(), currentUser.Uid, currentUser.DisplayName)
	if err != nil {
		log.Errorf("failed to ensure personal space: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(spaceToDTO(s)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func spaceToDTO(s Space) SpaceDTO {
	return SpaceDTO{
		Id:          s.Id,
		Name:        s.Name,
		Description: s.Description,
		Type:        string(s.Type),
		OwnerUid:    s.OwnerUid,
		CreatedAt:   s.CreatedAt,
	}
}
