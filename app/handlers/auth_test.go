package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmpmaster/pmp-api/app/dto"
	"github.com/pmpmaster/pmp-api/app/errors"
	"github.com/pmpmaster/pmp-api/app/models"
)

// mockAuthService is a mock implementation for testing
type mockAuthService struct {
	registerFunc         func(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, *errors.AppError)
	loginFunc            func(ctx context.Context, req dto.LoginRequest) (*dto.AuthData, *errors.AppError)
	resolveSessionFunc   func(ctx context.Context, token string) (*models.User, *errors.AppError)
	createTeamMemberFunc func(ctx context.Context, req dto.CreateTeamMemberRequest) (*models.User, *errors.AppError)
}

func (m *mockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, *errors.AppError) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errors.NewInternal("mock not configured")
}

func (m *mockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthData, *errors.AppError) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, errors.NewInternal("mock not configured")
}

func (m *mockAuthService) ResolveSession(ctx context.Context, token string) (*models.User, *errors.AppError) {
	if m.resolveSessionFunc != nil {
		return m.resolveSessionFunc(ctx, token)
	}
	return nil, errors.NewInternal("mock not configured")
}

func (m *mockAuthService) CreateTeamMember(ctx context.Context, req dto.CreateTeamMemberRequest) (*models.User, *errors.AppError) {
	if m.createTeamMemberFunc != nil {
		return m.createTeamMemberFunc(ctx, req)
	}
	return nil, errors.NewInternal("mock not configured")
}

// setupTestApp creates a test application with a mock auth service
func setupTestApp(mockService *mockAuthService) *application {
	return &application{
		config:      config{addr: ":8080"},
		authService: mockService,
	}
}

// createTestRequest builds a JSON request for handler tests
func createTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(method, url, bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range recorder.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestRegisterHandler_Success(t *testing.T) {
	mockService := &mockAuthService{
		registerFunc: func(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, *errors.AppError) {
			return &dto.AuthData{
				User: &models.User{
					ID:       1,
					Email:    req.Email,
					FullName: req.FullName,
					Role:     "user",
				},
				Token: "signed-token",
			}, nil
		},
	}

	app := setupTestApp(mockService)

	reqBody := dto.RegisterRequest{
		Email:    "alice@x.com",
		Password: "secret1",
		FullName: "Alice",
	}

	req := createTestRequest(t, "POST", "/api/auth/register", reqBody)
	recorder := httptest.NewRecorder()

	app.registerHandler(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	cookie := sessionCookie(t, recorder)
	require.NotNil(t, cookie, "register must set the session cookie")
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.False(t, cookie.Secure)

	// The body must never expose password material.
	assert.NotContains(t, recorder.Body.String(), "password")

	var response dto.DataResponse
	err := json.NewDecoder(recorder.Body).Decode(&response)
	require.NoError(t, err)
	assert.True(t, response.Success)
}

func TestRegisterHandler_InvalidJSON(t *testing.T) {
	app := setupTestApp(&mockAuthService{})

	req, err := http.NewRequest("POST", "/api/auth/register", bytes.NewBufferString(`{"email": "alice@x.com"`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	app.registerHandler(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResp dto.ErrorResponse
	err = json.NewDecoder(recorder.Body).Decode(&errorResp)
	require.NoError(t, err)
	assert.False(t, errorResp.Success)
	assert.Equal(t, "invalid request body", errorResp.Error)
}

func TestRegisterHandler_MissingRequiredFields(t *testing.T) {
	app := setupTestApp(&mockAuthService{})

	req := createTestRequest(t, "POST", "/api/auth/register", dto.RegisterRequest{
		Email: "alice@x.com",
		// Missing password and full name
	})
	recorder := httptest.NewRecorder()

	app.registerHandler(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResp dto.ErrorResponse
	err := json.NewDecoder(recorder.Body).Decode(&errorResp)
	require.NoError(t, err)
	assert.Contains(t, errorResp.Error, "required")
}

func TestRegisterHandler_InvalidEmail(t *testing.T) {
	app := setupTestApp(&mockAuthService{})

	req := createTestRequest(t, "POST", "/api/auth/register", dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "secret1",
		FullName: "Alice",
	})
	recorder := httptest.NewRecorder()

	app.registerHandler(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	mockService := &mockAuthService{
		registerFunc: func(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, *errors.AppError) {
			return nil, errors.NewConflict("email already exists")
		},
	}
	app := setupTestApp(mockService)

	req := createTestRequest(t, "POST", "/api/auth/register", dto.RegisterRequest{
		Email:    "alice@x.com",
		Password: "secret1",
		FullName: "Alice",
	})
	recorder := httptest.NewRecorder()

	app.registerHandler(recorder, req)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Nil(t, sessionCookie(t, recorder), "no cookie on failure")
}

func TestRegisterHandler_EmailSanitization(t *testing.T) {
	var seen string
	mockService := &mockAuthService{
		registerFunc: func(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, *errors.AppError) {
			seen = req.Email
			return &dto.AuthData{User: &models.User{Email: req.Email}, Token: "t"}, nil
		},
	}
	app := setupTestApp(mockService)

	req := createTestRequest(t, "POST", "/api/auth/register", dto.RegisterRequest{
		Email:    "  Alice@X.COM  ",
		Password: "secret1",
		FullName: "Alice",
	})
	recorder := httptest.NewRecorder()

	app.registerHandler(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "alice@x.com", seen)
}

func TestLoginHandler_Success(t *testing.T) {
	mockService := &mockAuthService{
		loginFunc: func(ctx context.Context, req dto.LoginRequest) (*dto.AuthData, *errors.AppError) {
			return &dto.AuthData{
				User:  &models.User{ID: 1, Email: req.Email, FullName: "Alice", Role: "user"},
				Token: "signed-token",
			}, nil
		},
	}
	app := setupTestApp(mockService)

	req := createTestRequest(t, "POST", "/api/auth/login", dto.LoginRequest{
		Email:    "alice@x.com",
		Password: "secret1",
	})
	recorder := httptest.NewRecorder()

	app.loginHandler(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	cookie := sessionCookie(t, recorder)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	mockService := &mockAuthService{
		loginFunc: func(ctx context.Context, req dto.LoginRequest) (*dto.AuthData, *errors.AppError) {
			return nil, errors.NewUnauthorized("invalid email or password")
		},
	}
	app := setupTestApp(mockService)

	req := createTestRequest(t, "POST", "/api/auth/login", dto.LoginRequest{
		Email:    "alice@x.com",
		Password: "wrong",
	})
	recorder := httptest.NewRecorder()

	app.loginHandler(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var errorResp dto.ErrorResponse
	err := json.NewDecoder(recorder.Body).Decode(&errorResp)
	require.NoError(t, err)
	assert.Equal(t, "invalid email or password", errorResp.Error)
	assert.Nil(t, sessionCookie(t, recorder))
}

func TestMeHandler_NoCookie(t *testing.T) {
	mockService := &mockAuthService{
		resolveSessionFunc: func(ctx context.Context, token string) (*models.User, *errors.AppError) {
			require.Empty(t, token)
			return nil, errors.NewUnauthorized("not logged in")
		},
	}
	app := setupTestApp(mockService)

	req, err := http.NewRequest("GET", "/api/auth/me", nil)
	require.NoError(t, err)
	recorder := httptest.NewRecorder()

	app.meHandler(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var errorResp dto.ErrorResponse
	err = json.NewDecoder(recorder.Body).Decode(&errorResp)
	require.NoError(t, err)
	assert.Equal(t, "not logged in", errorResp.Error)
}

func TestMeHandler_Success(t *testing.T) {
	mockService := &mockAuthService{
		resolveSessionFunc: func(ctx context.Context, token string) (*models.User, *errors.AppError) {
			require.Equal(t, "signed-token", token)
			return &models.User{ID: 1, Email: "alice@x.com", FullName: "Alice", Role: "user"}, nil
		},
	}
	app := setupTestApp(mockService)

	req, err := http.NewRequest("GET", "/api/auth/me", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "token", Value: "signed-token"})
	recorder := httptest.NewRecorder()

	app.meHandler(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "alice@x.com")
	assert.NotContains(t, recorder.Body.String(), "password")
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	app := setupTestApp(&mockAuthService{})

	req, err := http.NewRequest("POST", "/api/auth/logout", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "token", Value: "signed-token"})
	recorder := httptest.NewRecorder()

	app.logoutHandler(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	cookie := sessionCookie(t, recorder)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
