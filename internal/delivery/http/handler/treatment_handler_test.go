package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type mockTreatmentUsecase struct {
	createFn  func(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error)
	getAllFn  func(ctx context.Context, includeInactive bool, page, limit int) ([]dto.TreatmentResponse, int64, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (*dto.TreatmentResponse, error)
	updateFn  func(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error)
}

func (m *mockTreatmentUsecase) Create(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	return m.createFn(ctx, req)
}
func (m *mockTreatmentUsecase) GetAll(ctx context.Context, includeInactive bool, page, limit int) ([]dto.TreatmentResponse, int64, error) {
	return m.getAllFn(ctx, includeInactive, page, limit)
}
func (m *mockTreatmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.TreatmentResponse, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockTreatmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error) {
	return m.updateFn(ctx, id, req)
}

func TestTreatmentGetAll_Pagination(t *testing.T) {
	var gotInactive bool
	var gotPage, gotLimit int
	uc := &mockTreatmentUsecase{
		getAllFn: func(ctx context.Context, includeInactive bool, page, limit int) ([]dto.TreatmentResponse, int64, error) {
			gotInactive, gotPage, gotLimit = includeInactive, page, limit
			return []dto.TreatmentResponse{{ID: uuid.New(), Name: "Basic pedicure", Price: decimal.NewFromInt(35)}}, 5, nil
		},
	}
	h := NewTreatmentHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/treatments?page=2&limit=2&include_inactive=true", nil)
	rec := httptest.NewRecorder()
	h.GetAll(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotInactive)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 2, gotLimit)

	resp := decodeResponse(t, rec)
	if assert.NotNil(t, resp.Meta) {
		assert.Equal(t, int64(5), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	}
}

func TestTreatmentCreate_Conflict(t *testing.T) {
	uc := &mockTreatmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
			return nil, usecase.ErrTreatmentExists
		},
	}
	h := NewTreatmentHandler(uc, validator.NewValidator())

	body := `{"name":"Basic pedicure","duration_minutes":45,"price":"35"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/treatments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTreatmentGetByID(t *testing.T) {
	uc := &mockTreatmentUsecase{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*dto.TreatmentResponse, error) {
			return nil, usecase.ErrTreatmentNotFound
		},
	}
	h := NewTreatmentHandler(uc, validator.NewValidator())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.GetByID(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "nope"})
	rec = httptest.NewRecorder()
	h.GetByID(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
