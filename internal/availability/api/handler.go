package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"eventspark/internal/availability"
	"eventspark/internal/logger"
	"eventspark/internal/models"
	"eventspark/internal/utils"
)

type Handler struct {
	Availability *availability.Service
	Logger       *logger.Logger
}

func NewHandler(svc *availability.Service, log *logger.Logger) *Handler {
	return &Handler{Availability: svc, Logger: log}
}

// GetEventSeats handles GET /api/events/{eventId}/seats.
func (h *Handler) GetEventSeats(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	if strings.TrimSpace(eventID) == "" {
		h.Logger.LogAPI(r.Method, r.URL.Path, "400")
		utils.WriteJSON(w, http.StatusBadRequest,
			utils.ErrorResponse("Invalid event ID format", ""))
		return
	}

	view, err := h.Availability.SeatMap(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			h.Logger.LogAPI(r.Method, r.URL.Path, "404")
			utils.WriteJSON(w, http.StatusNotFound,
				utils.ErrorResponse("Event not found", ""))
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GetEventSeats: %v", err))
		utils.WriteJSON(w, http.StatusInternalServerError,
			utils.ErrorResponse("Internal server error", err.Error()))
		return
	}

	h.Logger.LogAPI(r.Method, r.URL.Path, "200")
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", view))
}
