package converter

import (
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// customer may be nil, in which case the preloaded relation is used when present.
func AppointmentToResponse(appointment *entity.Appointment, customer *entity.Customer) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	if customer == nil && appointment.Customer.ID == appointment.CustomerID {
		customer = &appointment.Customer
	}

	resp := &dto.AppointmentResponse{
		ID:         appointment.ID,
		CustomerID: appointment.CustomerID,
		Date:       appointment.SlotDate,
		Time:       appointment.SlotTime,
		Treatment:  appointment.Treatment,
		Status:     string(appointment.Status),
		CreatedAt:  appointment.CreatedAt,
		UpdatedAt:  appointment.UpdatedAt,
	}

	if customer != nil {
		resp.CustomerName = customer.Name
		resp.CustomerPhone = customer.Phone
		resp.Preference = string(customer.NotificationPreference)
	}

	return resp
}

// AppointmentsToResponses converts appointments with preloaded customers
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i], nil)
	}
	return responses
}

func DeliveryToResponse(result entity.DeliveryResult) dto.DeliveryResponse {
	return dto.DeliveryResponse{
		Status:    string(result.Status),
		Channel:   string(result.Channel),
		Message:   result.Text(),
		Reason:    result.Reason,
		MessageID: result.MessageID,
	}
}

func NotificationLogsToResponses(logs []entity.NotificationLog) []dto.NotificationLogResponse {
	responses := make([]dto.NotificationLogResponse, len(logs))
	for i, log := range logs {
		responses[i] = dto.NotificationLogResponse{
			ID:          log.ID,
			Action:      string(log.Action),
			Date:        log.SlotDate,
			Time:        log.SlotTime,
			Channel:     string(log.Channel),
			Status:      string(log.Status),
			Destination: log.Destination,
			Message:     log.Message,
			Error:       log.ErrorMessage,
			CreatedAt:   log.CreatedAt,
		}
	}
	return responses
}
