package validator

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"bookingdesk/pkg/logger"
	"bookingdesk/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	// Local part, @, domain with at least one dot, no whitespace anywhere.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// requiredFields is the reporting order for missing-field errors; the
// first absent field names the failure.
var requiredFields = []string{"name", "email", "date", "time", "duration", "reason"}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return v.Message
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks an intake payload. Required-field presence is reported
// first, in field order; the email shape check runs only once every
// required field is present.
func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !emailRegex.MatchString(req.Email) {
		return ValidationError{
			Field:   "email",
			Message: "Invalid email address",
		}
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return ValidationError{
			Field:   "date",
			Message: "Date must be in YYYY-MM-DD format",
		}
	}

	if !clockRegex.MatchString(req.Time) {
		return ValidationError{
			Field:   "time",
			Message: "Time must be in HH:MM format (00:00-23:59)",
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) error {
	byField := make(map[string]validator.FieldError, len(errs))
	for _, err := range errs {
		byField[jsonFieldName(err.Field())] = err
	}

	for _, field := range requiredFields {
		err, ok := byField[field]
		if !ok {
			continue
		}
		switch err.Tag() {
		case "required":
			return ValidationError{
				Field:   field,
				Message: fmt.Sprintf("Missing required field: %s", field),
			}
		case "min":
			return ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at least %s", field, err.Param()),
			}
		}
	}

	// Optional fields can still fail their max-length constraints.
	for _, err := range errs {
		field := jsonFieldName(err.Field())
		if err.Tag() == "max" {
			return ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at most %s characters", field, err.Param()),
			}
		}
	}

	first := errs[0]
	return ValidationError{
		Field:   jsonFieldName(first.Field()),
		Message: first.Error(),
	}
}

// jsonFieldName maps the struct field names of model.BookingRequest to
// their wire names.
func jsonFieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Date":
		return "date"
	case "Time":
		return "time"
	case "Duration":
		return "duration"
	case "Reason":
		return "reason"
	case "Business":
		return "business"
	case "Notes":
		return "notes"
	}
	return structField
}
