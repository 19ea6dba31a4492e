package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,phone"`
	Date  string `json:"date" validate:"required,date"`
	Time  string `validate:"required,clock"`
}

func TestCustomValidator_Tags(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&bookingForm{Name: "Ana", Phone: "+32 470 12 34 56", Date: "2024-06-01", Time: "10:00"})
	assert.NoError(t, err)

	err = v.Validate(&bookingForm{Phone: "12", Date: "01-06-2024", Time: "10am"})
	require.Error(t, err)

	fields := v.FormatValidationErrors(err)
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "phone must be a valid phone number", fields["phone"])
	assert.Equal(t, "date must be formatted as YYYY-MM-DD", fields["date"])
	// Without a json tag the struct field name is used.
	assert.Equal(t, "Time must be formatted as HH:MM", fields["Time"])
}

func TestCustomValidator_NormalizePhone(t *testing.T) {
	v := NewValidator(WithPhoneRegion("be"))

	tests := []struct {
		raw  string
		want string
	}{
		{"+32 470 12 34 56", "+32470123456"},
		{"+32470123456", "+32470123456"},
		{"0470 12 34 56", "+32470123456"},
		{"+31 6 12345678", "+31612345678"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := v.NormalizePhone(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := v.NormalizePhone("not a number")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = v.NormalizePhone("")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
