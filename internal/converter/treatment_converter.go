package converter

import (
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
)

// TreatmentToResponse converts a Treatment entity to TreatmentResponse DTO
func TreatmentToResponse(treatment *entity.Treatment) *dto.TreatmentResponse {
	if treatment == nil {
		return nil
	}

	return &dto.TreatmentResponse{
		ID:              treatment.ID,
		Name:            treatment.Name,
		Description:     treatment.Description,
		DurationMinutes: treatment.DurationMinutes,
		Price:           treatment.Price,
		IsActive:        treatment.IsActive,
		CreatedAt:       treatment.CreatedAt,
		UpdatedAt:       treatment.UpdatedAt,
	}
}

func TreatmentsToResponses(treatments []entity.Treatment) []dto.TreatmentResponse {
	responses := make([]dto.TreatmentResponse, len(treatments))
	for i := range treatments {
		responses[i] = *TreatmentToResponse(&treatments[i])
	}
	return responses
}
