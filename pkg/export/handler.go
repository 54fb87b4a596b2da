package export

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spacecal/spacecal/pkg/user"
)

type Handler struct {
	exporter *Exporter
}

func NewHandler(exporter *Exporter) *Handler {
	return &Handler{exporter: exporter}
}

func (h *Handler) ExportSpace(w http.ResponseWriter, r *http.Request) {
	if _, err := user.CurrentUser(r.Context()); err != nil {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	spaceId := mux.Vars(r)["spaceId"]
	serialized, err := h.exporter.RenderSpace(r.Context(), spaceId)
	if err != nil {
		log.Errorf("failed to export space %s: %v", spaceId, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(serialized)); err != nil {
		log.Errorf("failed to write ICS response: %v", err)
	}
}
