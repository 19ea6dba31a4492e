package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"
	"salon-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TreatmentHandler struct {
	treatmentUsecase usecase.TreatmentUsecase
	validator        *validator.CustomValidator
}

func NewTreatmentHandler(treatmentUsecase usecase.TreatmentUsecase, validator *validator.CustomValidator) *TreatmentHandler {
	return &TreatmentHandler{
		treatmentUsecase: treatmentUsecase,
		validator:        validator,
	}
}

// Create handles treatment creation
// @Summary Add a treatment to the catalog
// @Tags Treatments
// @Accept json
// @Produce json
// @Param request body dto.CreateTreatmentRequest true "Create Treatment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /treatments [post]
func (h *TreatmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	treatment, err := h.treatmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeTreatmentError(w, err, "Failed to create treatment")
		return
	}

	response.Success(w, http.StatusCreated, "Treatment created successfully", treatment)
}

// GetAll handles listing the catalog
// @Summary List treatments
// @Description Offered treatments with pagination. include_inactive=true also lists retired ones.
// @Tags Treatments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param include_inactive query bool false "Include inactive treatments"
// @Success 200 {object} response.Response
// @Router /treatments [get]
func (h *TreatmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("include_inactive"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	treatments, total, err := h.treatmentUsecase.GetAll(r.Context(), includeInactive, page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get treatments")
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	meta := &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}

	response.SuccessWithMeta(w, http.StatusOK, "Treatments retrieved successfully", treatments, meta)
}

// GetByID handles getting a treatment by ID
// @Summary Get treatment by ID
// @Tags Treatments
// @Produce json
// @Param id path string true "Treatment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /treatments/{id} [get]
func (h *TreatmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment ID", nil)
		return
	}

	treatment, err := h.treatmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeTreatmentError(w, err, "Failed to get treatment")
		return
	}

	response.Success(w, http.StatusOK, "Treatment retrieved successfully", treatment)
}

// Update handles treatment update
// @Summary Update a treatment
// @Description Set is_active=false to stop offering a treatment.
// @Tags Treatments
// @Accept json
// @Produce json
// @Param id path string true "Treatment ID"
// @Param request body dto.UpdateTreatmentRequest true "Update Treatment Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /treatments/{id} [put]
func (h *TreatmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid treatment ID", nil)
		return
	}

	var req dto.UpdateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	treatment, err := h.treatmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeTreatmentError(w, err, "Failed to update treatment")
		return
	}

	response.Success(w, http.StatusOK, "Treatment updated successfully", treatment)
}

func writeTreatmentError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, validationErr.Fields)
	case errors.Is(err, usecase.ErrTreatmentNotFound):
		response.NotFound(w, "Treatment not found")
	case errors.Is(err, usecase.ErrTreatmentExists):
		response.Conflict(w, "Treatment with this name already exists")
	default:
		response.InternalServerError(w, fallback)
	}
}
