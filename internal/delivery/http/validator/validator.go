// Package validator adapts go-playground/validator to echo.
package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	domainerrors "shopfront/internal/domain/errors"
	"shopfront/internal/errors"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// CustomValidator is registered as echo's Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// New returns a validator that also knows the phone rule.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}

		return field.Name
	})

	return &CustomValidator{validator: v}
}

// Validate reports the first failed rule as ErrInvalidInput with a readable message.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	return domainerrors.ErrInvalidInput.WithDetails(describe(fieldErrs[0]))
}

func describe(fe validator.FieldError) string {
	field := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required."
	case "email":
		return field + " must be a valid email address."
	case "phone":
		return "Enter a valid phone number."
	case "eqfield":
		return "Passwords do not match."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", field, fe.Param())
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format."
	default:
		return field + " is invalid."
	}
}

func humanize(field string) string {
	words := strings.Split(field, "_")
	if len(words) > 0 && words[0] != "" {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}

	return strings.Join(words, " ")
}
