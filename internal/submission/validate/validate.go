// Package validate is the authoritative validation gate for submissions.
// The same rules run server-side on every request and client-side before
// a form step may advance, so both ends agree on what a valid record is.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	dErrors "merididi/pkg/domain-errors"
)

// MinDOBYear is the earliest accepted birth year. Matches the lower bound
// of the registration form's date picker.
const MinDOBYear = 1940

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field errors reference json field names, which are the canonical
	// names clients submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("dob", validDOB)
	return v
}

// validDOB accepts a real calendar date, not in the future and not before
// MinDOBYear. Both plain dates and RFC 3339 timestamps are accepted since
// browser date pickers have sent either over time.
func validDOB(fl validator.FieldLevel) bool {
	dob, ok := ParseDOB(fl.Field().String())
	if !ok {
		return false
	}
	if dob.After(time.Now()) {
		return false
	}
	return dob.Year() >= MinDOBYear
}

// ParseDOB parses a date of birth as 2006-01-02 or RFC 3339.
func ParseDOB(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Record validates a full request and returns every violation, one entry
// per failing field. An empty slice means the record is acceptable;
// there is no partial acceptance.
func Record(req any) []dErrors.FieldError {
	return collect(defaultValidator.Struct(req))
}

// Partial validates only the named struct fields. Used by the
// registration client to gate step transitions without touching fields
// the user has not reached yet.
func Partial(req any, fields ...string) []dErrors.FieldError {
	return collect(defaultValidator.StructPartial(req, fields...))
}

// Error wraps field errors into a domain validation error with the given
// top-level message. Returns nil when there are no violations.
func Error(msg string, fields []dErrors.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return dErrors.NewValidation(msg, fields)
}

func collect(err error) []dErrors.FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dErrors.FieldError{{Field: "", Message: "invalid request body"}}
	}
	out := make([]dErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, dErrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

// message converts a validator error into a human-readable message.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "dob":
		return fmt.Sprintf("%s must be a real date, not in the future and not before %d", field, MinDOBYear)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
