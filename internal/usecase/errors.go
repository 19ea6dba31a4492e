package usecase

import (
	"errors"
	"sort"
	"strings"

	"salon-booking/internal/service"
)

// ValidationError lists rejected input fields with a message per field.
// Nothing is mutated when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// IsDomainError separates expected outcomes (bad input, conflicts) from
// infrastructure failures.
func IsDomainError(err error) bool {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrAppointmentNotFound),
		errors.Is(err, service.ErrAppointmentCancelled),
		errors.Is(err, ErrTreatmentNotFound),
		errors.Is(err, ErrTreatmentExists),
		errors.Is(err, ErrAuditLogNotFound):
		return true
	}
	return false
}
