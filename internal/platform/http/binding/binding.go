// Package binding translates gin binding failures into validation errors keyed by JSON field name.
package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"auth_backend/internal/shared/apperr"
)

// ErrInvalidBody is the base error for request bodies that fail to bind.
var ErrInvalidBody = apperr.New(apperr.KindValidation, "invalid_body", "invalid request")

func init() {
	// Report JSON field names instead of Go struct field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// Translate converts err from ShouldBindJSON into a validation error with the given message.
// Field-level failures are listed under Fields.
func Translate(err error, message string) *apperr.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidBody.WithMessage(message).Wrap(err)
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], describe(fe))
	}
	return ErrInvalidBody.WithMessage(message).WithFields(fields).Wrap(err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	case "numeric":
		return "A valid number is required."
	case "len":
		return fmt.Sprintf("Ensure this field has exactly %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
