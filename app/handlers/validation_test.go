package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmpmaster/pmp-api/app/dto"
)

func TestValidateRequest_Valid(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "alice@x.com",
		Password: "secret1",
		FullName: "Alice",
	}
	assert.Nil(t, validateRequest(&req))
}

func TestValidateRequest_MissingFields(t *testing.T) {
	req := dto.RegisterRequest{Email: "alice@x.com"}

	appErr := validateRequest(&req)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "Password is required")
	assert.Contains(t, appErr.Message, "FullName is required")
}

func TestValidateRequest_InvalidEmail(t *testing.T) {
	req := dto.LoginRequest{Email: "not-an-email", Password: "secret1"}

	appErr := validateRequest(&req)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "valid email address")
}

func TestValidateRequest_ShortPasswordAccepted(t *testing.T) {
	// No password-strength rules: a short password is valid input.
	req := dto.RegisterRequest{
		Email:    "alice@x.com",
		Password: "a",
		FullName: "Alice",
	}
	assert.Nil(t, validateRequest(&req))
}

func TestValidateRequest_BadStatus(t *testing.T) {
	status := "bogus"
	req := dto.CreateProjectRequest{Name: "Website", Status: &status}

	appErr := validateRequest(&req)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "must be one of")
}

func TestValidateRequest_BadDate(t *testing.T) {
	due := "31-12-2025"
	req := dto.CreateTaskRequest{Title: "Ship it", DueDate: &due}

	appErr := validateRequest(&req)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "2006-01-02")
}

func TestSanitizeInput_TrimsAndFilters(t *testing.T) {
	assert.Equal(t, "Alice", sanitizeInput("  Alice  ", 255, false))
	assert.Equal(t, "Alice", sanitizeInput("Alice\x00", 255, false))
	assert.Equal(t, "AliceBob", sanitizeInput("Alice\x07Bob", 255, false))
}

func TestSanitizeInput_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	assert.Len(t, sanitizeInput(long, 255, false), 255)
}

func TestSanitizeInput_PreservesPasswordCharacters(t *testing.T) {
	// Passwords only get trimmed and capped, never filtered.
	assert.Equal(t, `p@$$w0rd!"#`, sanitizeInput(`  p@$$w0rd!"#  `, 128, true))
}

func TestSanitizeEmail_Lowercases(t *testing.T) {
	assert.Equal(t, "alice@x.com", sanitizeEmail("  Alice@X.COM  ", 255))
}
