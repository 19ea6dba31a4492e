package validator

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "BE"

var ErrInvalidPhone = errors.New("invalid phone number")

type CustomValidator struct {
	validator   *validator.Validate
	phoneRegion string
}

type Option func(*CustomValidator)

// WithPhoneRegion sets the region used for numbers written without a
// country code.
func WithPhoneRegion(region string) Option {
	return func(cv *CustomValidator) {
		if region != "" {
			cv.phoneRegion = strings.ToUpper(region)
		}
	}
}

func NewValidator(opts ...Option) *CustomValidator {
	cv := &CustomValidator{
		validator:   validator.New(),
		phoneRegion: defaultPhoneRegion,
	}
	for _, opt := range opts {
		opt(cv)
	}

	// Report fields by their json names, the same keys clients send.
	cv.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	cv.validator.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := cv.NormalizePhone(fl.Field().String())
		return err == nil
	})
	cv.validator.RegisterValidation("date", layoutValidator("2006-01-02"))
	cv.validator.RegisterValidation("clock", layoutValidator("15:04"))

	return cv
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, strings.TrimSpace(fl.Field().String()))
		return err == nil
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// NormalizePhone parses raw and formats it as E.164, so the same number
// typed with spaces or a local prefix maps to one customer.
func (cv *CustomValidator) NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}
	num, err := phonenumbers.Parse(raw, cv.phoneRegion)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "phone":
				errors[field] = field + " must be a valid phone number"
			case "date":
				errors[field] = field + " must be formatted as YYYY-MM-DD"
			case "clock":
				errors[field] = field + " must be formatted as HH:MM"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
