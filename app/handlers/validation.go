package main

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/pmpmaster/pmp-api/app/errors"
)

var validate = validator.New()

// validateRequest validates a request DTO and returns a formatted error
func validateRequest(req interface{}) *errors.AppError {
	if err := validate.Struct(req); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors formats validator errors into user-friendly messages
func formatValidationErrors(err error) *errors.AppError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewInvalidInput(err.Error())
	}

	var messages []string
	for _, fieldError := range validationErrors {
		messages = append(messages, formatFieldError(fieldError))
	}
	return errors.NewInvalidInput(strings.Join(messages, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// sanitizeInput trims whitespace, drops null bytes and control characters,
// and caps length in runes. Passwords skip the control-character filter so
// no accepted character is silently altered.
func sanitizeInput(input string, maxLength int, preserveSpecialChars bool) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if !preserveSpecialChars {
		var builder strings.Builder
		for _, r := range input {
			if unicode.IsPrint(r) || r == '\n' || r == '\t' {
				builder.WriteRune(r)
			}
		}
		input = builder.String()
	}

	if maxLength > 0 && utf8.RuneCountInString(input) > maxLength {
		runes := []rune(input)
		input = string(runes[:maxLength])
	}

	return input
}

// sanitizeEmail trims, filters and lowercases (email addresses are
// case-insensitive).
func sanitizeEmail(email string, maxLength int) string {
	return strings.ToLower(sanitizeInput(email, maxLength, false))
}
