package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/service"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"
	"salon-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookingUsecase struct {
	bookFn       func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResultResponse, error)
	lookupFn     func(ctx context.Context, phone string) (*dto.AppointmentListResponse, error)
	cancelFn     func(ctx context.Context, id uuid.UUID) (*dto.CancelAppointmentResponse, error)
	rescheduleFn func(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResultResponse, error)
	notifFn      func(ctx context.Context, id uuid.UUID) (*dto.NotificationLogListResponse, error)
}

func (m *mockBookingUsecase) RequestBooking(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResultResponse, error) {
	return m.bookFn(ctx, req)
}
func (m *mockBookingUsecase) Lookup(ctx context.Context, phone string) (*dto.AppointmentListResponse, error) {
	return m.lookupFn(ctx, phone)
}
func (m *mockBookingUsecase) RequestCancel(ctx context.Context, id uuid.UUID) (*dto.CancelAppointmentResponse, error) {
	return m.cancelFn(ctx, id)
}
func (m *mockBookingUsecase) RequestReschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResultResponse, error) {
	return m.rescheduleFn(ctx, id, req)
}
func (m *mockBookingUsecase) GetNotifications(ctx context.Context, id uuid.UUID) (*dto.NotificationLogListResponse, error) {
	return m.notifFn(ctx, id)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

const validBooking = `{"name":"Ana","phone":"0470 12 34 56","preference":"sms","date":"2024-06-01","time":"10:00"}`

func TestCreateAppointment_Success(t *testing.T) {
	var got *dto.CreateAppointmentRequest
	uc := &mockBookingUsecase{
		bookFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResultResponse, error) {
			got = req
			return &dto.AppointmentResultResponse{
				Appointment:  dto.AppointmentResponse{ID: uuid.New(), Date: req.Date, Time: req.Time, Status: "booked"},
				Notification: dto.DeliveryResponse{Status: "sent", Channel: "sms", Message: "SMS sent!"},
			}, nil
		},
	}
	h := NewBookingHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validBooking))
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "+32470123456", got.Phone)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "SMS sent!", data["notification"].(map[string]interface{})["message"])
}

func TestCreateAppointment_InvalidBody(t *testing.T) {
	h := NewBookingHandler(&mockBookingUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeResponse(t, rec).Message)
}

func TestCreateAppointment_ValidationFailure(t *testing.T) {
	h := NewBookingHandler(&mockBookingUsecase{}, validator.NewValidator())

	body := `{"name":"","phone":"12","preference":"sms","date":"01/06/2024","time":"10am"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Validation failed", resp.Message)
	fields := resp.Error.(map[string]interface{})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "time")
	assert.NotContains(t, fields, "Name")
}

func TestCreateAppointment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"slot taken", service.ErrSlotTaken, http.StatusConflict},
		{"usecase validation", &usecase.ValidationError{Fields: map[string]string{"preference": "bad"}}, http.StatusBadRequest},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockBookingUsecase{
				bookFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResultResponse, error) {
					return nil, tt.err
				},
			}
			h := NewBookingHandler(uc, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validBooking))
			rec := httptest.NewRecorder()
			h.CreateAppointment(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, decodeResponse(t, rec).Success)
		})
	}
}

func TestLookupAppointments(t *testing.T) {
	var gotPhone string
	uc := &mockBookingUsecase{
		lookupFn: func(ctx context.Context, phone string) (*dto.AppointmentListResponse, error) {
			gotPhone = phone
			return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}, Total: 0}, nil
		},
	}
	h := NewBookingHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?phone=%2B32+470+12+34+56", nil)
	rec := httptest.NewRecorder()
	h.LookupAppointments(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "+32470123456", gotPhone)
}

func TestLookupAppointments_MissingPhone(t *testing.T) {
	h := NewBookingHandler(&mockBookingUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()
	h.LookupAppointments(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelAppointment(t *testing.T) {
	id := uuid.New()
	uc := &mockBookingUsecase{
		cancelFn: func(ctx context.Context, got uuid.UUID) (*dto.CancelAppointmentResponse, error) {
			return &dto.CancelAppointmentResponse{AppointmentID: got, Cancelled: got == id}, nil
		},
	}
	h := NewBookingHandler(uc, validator.NewValidator())

	t.Run("cancelled", func(t *testing.T) {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"id": id.String()})
		rec := httptest.NewRecorder()
		h.CancelAppointment(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Appointment cancelled", decodeResponse(t, rec).Message)
	})

	t.Run("nothing to cancel", func(t *testing.T) {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"id": uuid.NewString()})
		rec := httptest.NewRecorder()
		h.CancelAppointment(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "No booked appointment to cancel", decodeResponse(t, rec).Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", nil), map[string]string{"id": "abc"})
		rec := httptest.NewRecorder()
		h.CancelAppointment(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRescheduleAppointment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", service.ErrAppointmentNotFound, http.StatusNotFound},
		{"cancelled", service.ErrAppointmentCancelled, http.StatusConflict},
		{"slot taken", service.ErrSlotTaken, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockBookingUsecase{
				rescheduleFn: func(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResultResponse, error) {
					return nil, tt.err
				},
			}
			h := NewBookingHandler(uc, validator.NewValidator())

			body := strings.NewReader(`{"date":"2024-06-02","time":"11:00"}`)
			req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", body), map[string]string{"id": uuid.NewString()})
			rec := httptest.NewRecorder()
			h.RescheduleAppointment(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRescheduleAppointment_Success(t *testing.T) {
	id := uuid.New()
	uc := &mockBookingUsecase{
		rescheduleFn: func(ctx context.Context, got uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResultResponse, error) {
			return &dto.AppointmentResultResponse{
				Appointment: dto.AppointmentResponse{ID: got, Date: req.Date, Time: req.Time, Status: "booked"},
			}, nil
		},
	}
	h := NewBookingHandler(uc, validator.NewValidator())

	body := strings.NewReader(`{"date":"2024-06-02","time":"11:00"}`)
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/", body), map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.RescheduleAppointment(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	appt := decodeResponse(t, rec).Data.(map[string]interface{})["appointment"].(map[string]interface{})
	assert.Equal(t, "2024-06-02", appt["date"])
	assert.Equal(t, "11:00", appt["time"])
}
