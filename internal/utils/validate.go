package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/starwave-dev/starboard/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs validator tags and translates failures into the
// field-to-messages shape both the board form and the API report.
func ValidateStruct(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	validationErr := errors.NewValidationError()
	for _, fe := range fieldErrs {
		validationErr.Add(fieldName(fe), fieldMessage(fe))
	}
	return validationErr
}

// DecodeValidate decodes a JSON body and validates it in one step.
func DecodeValidate(r io.Reader, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	return ValidateStruct(body)
}

// fieldName converts the Go struct field into its wire name
// (TitleMaxLen -> title_max_len style snake case).
func fieldName(fe validator.FieldError) string {
	var b strings.Builder
	for i, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("Select a valid choice: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
