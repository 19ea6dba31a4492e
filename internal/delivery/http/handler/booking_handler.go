package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/service"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"
	"salon-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	phone, err := h.validator.NormalizePhone(req.Phone)
	if err != nil {
		response.ValidationError(w, map[string]string{"phone": "phone must be a valid phone number"})
		return
	}
	req.Phone = phone

	result, err := h.bookingUsecase.RequestBooking(r.Context(), &req)
	if err != nil {
		writeBookingError(w, err, "Failed to book appointment, please try again later")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked", result)
}

func (h *BookingHandler) LookupAppointments(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("phone")
	if raw == "" {
		response.ValidationError(w, map[string]string{"phone": "phone is required"})
		return
	}

	phone, err := h.validator.NormalizePhone(raw)
	if err != nil {
		response.ValidationError(w, map[string]string{"phone": "phone must be a valid phone number"})
		return
	}

	appointments, err := h.bookingUsecase.Lookup(r.Context(), phone)
	if err != nil {
		writeBookingError(w, err, "Failed to get appointments, please try again later")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// CancelAppointment always answers 200 for a well-formed id; whether
// anything changed is reported in the body.
func (h *BookingHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}

	result, err := h.bookingUsecase.RequestCancel(r.Context(), id)
	if err != nil {
		writeBookingError(w, err, "Failed to cancel appointment, please try again later")
		return
	}

	message := "Appointment cancelled"
	if !result.Cancelled {
		message = "No booked appointment to cancel"
	}
	response.Success(w, http.StatusOK, message, result)
}

func (h *BookingHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.bookingUsecase.RequestReschedule(r.Context(), id, &req)
	if err != nil {
		writeBookingError(w, err, "Failed to reschedule appointment, please try again later")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled", result)
}

func (h *BookingHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}

	notifications, err := h.bookingUsecase.GetNotifications(r.Context(), id)
	if err != nil {
		writeBookingError(w, err, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func appointmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func writeBookingError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, validationErr.Fields)
	case errors.Is(err, service.ErrSlotTaken):
		response.Conflict(w, "This slot is already booked, please choose another time")
	case errors.Is(err, service.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, service.ErrAppointmentCancelled):
		response.Conflict(w, "Appointment is cancelled and cannot be changed")
	default:
		response.InternalServerError(w, fallback)
	}
}
