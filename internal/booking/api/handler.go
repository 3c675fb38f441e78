package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventspark/internal/booking"
	"eventspark/internal/logger"
	"eventspark/internal/models"
	"eventspark/internal/utils"
)

type Handler struct {
	Bookings *booking.Service
	Logger   *logger.Logger
}

func NewHandler(bookings *booking.Service, log *logger.Logger) *Handler {
	return &Handler{Bookings: bookings, Logger: log}
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateBooking: bad request body: %v", err))
		utils.WriteJSON(w, http.StatusBadRequest,
			utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	confirmation, err := h.Bookings.CreateBooking(r.Context(), req)
	if err != nil {
		h.writeBookingError(w, r, err)
		return
	}

	h.Logger.LogAPI(r.Method, r.URL.Path, "201")
	utils.WriteJSON(w, http.StatusCreated,
		utils.SuccessResponse("Booking created successfully", confirmation))
}

// GetBooking handles GET /api/bookings/{bookingId}.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")

	bookingData, ticketList, err := h.Bookings.GetBooking(r.Context(), bookingID)
	if err != nil {
		h.writeBookingError(w, r, err)
		return
	}

	h.Logger.LogAPI(r.Method, r.URL.Path, "200")
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("", map[string]interface{}{
		"booking": bookingData,
		"tickets": ticketList,
	}))
}

// CancelBooking handles DELETE /api/bookings/{bookingId}.
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")

	if err := h.Bookings.CancelBooking(r.Context(), bookingID); err != nil {
		h.writeBookingError(w, r, err)
		return
	}

	h.Logger.LogAPI(r.Method, r.URL.Path, "200")
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking cancelled", nil))
}

// writeBookingError maps the error taxonomy onto HTTP statuses. Conflicts
// are expected under contention and logged at info level only.
func (h *Handler) writeBookingError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *models.ValidationError
		invalidSeats  *models.InvalidSeatsError
		conflict      *models.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		h.Logger.LogAPI(r.Method, r.URL.Path, "400")
		utils.WriteJSON(w, http.StatusBadRequest,
			utils.ErrorResponse("Missing or malformed fields", validationErr.Error()))

	case errors.As(err, &invalidSeats):
		h.Logger.LogAPI(r.Method, r.URL.Path, "400")
		utils.WriteJSON(w, http.StatusBadRequest,
			utils.ErrorResponse("Seats do not belong to the requested event", invalidSeats.Error()))

	case errors.Is(err, models.ErrEventNotFound):
		h.Logger.LogAPI(r.Method, r.URL.Path, "404")
		utils.WriteJSON(w, http.StatusNotFound,
			utils.ErrorResponse("Event not found", ""))

	case errors.Is(err, models.ErrBookingNotFound):
		h.Logger.LogAPI(r.Method, r.URL.Path, "404")
		utils.WriteJSON(w, http.StatusNotFound,
			utils.ErrorResponse("Booking not found", ""))

	case errors.As(err, &conflict):
		h.Logger.LogAPI(r.Method, r.URL.Path, "409")
		resp := utils.ErrorResponse("Some seats are no longer available", "")
		resp.Data = map[string]interface{}{"conflictingSeatIds": conflict.SeatIDs}
		utils.WriteJSON(w, http.StatusConflict, resp)

	case errors.Is(err, models.ErrBookingNotConfirmed):
		h.Logger.LogAPI(r.Method, r.URL.Path, "400")
		utils.WriteJSON(w, http.StatusBadRequest,
			utils.ErrorResponse("Booking is not in a cancellable state", ""))

	default:
		h.Logger.Error("API", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
		utils.WriteJSON(w, http.StatusInternalServerError,
			utils.ErrorResponse("Internal server error", err.Error()))
	}
}
