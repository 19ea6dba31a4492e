package service

import "errors"

var (
	ErrSlotTaken            = errors.New("slot is already booked")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentCancelled = errors.New("appointment is cancelled")
)
