package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/pmpmaster/pmp-api/app/dto"
	"github.com/pmpmaster/pmp-api/app/errors"
	"github.com/pmpmaster/pmp-api/app/metrics"
	authmw "github.com/pmpmaster/pmp-api/app/middleware"
)

// sessionCookieMaxAge matches the token TTL: the cookie and the signature
// expire together.
const sessionCookieMaxAge = 7 * 24 * time.Hour

// setSessionCookie sets the session cookie alongside the JSON response.
// SameSite=Lax because the dashboard navigates to the API from page loads;
// Secure only in production so local HTTP dev still works.
func setSessionCookie(w http.ResponseWriter, token string) {
	secureCookie := os.Getenv("ENVIRONMENT") == "production" || os.Getenv("COOKIE_SECURE") == "true"
	http.SetCookie(w, &http.Cookie{
		Name:     authmw.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secureCookie,
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	secureCookie := os.Getenv("ENVIRONMENT") == "production" || os.Getenv("COOKIE_SECURE") == "true"
	http.SetCookie(w, &http.Cookie{
		Name:     authmw.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secureCookie,
		MaxAge:   -1,
	})
}

// sessionTokenFromRequest pulls the session token out of the cookie, if any.
func sessionTokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(authmw.SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// registerHandler handles user registration. Registration implies login:
// the response carries a session token and sets the cookie.
func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	req.Email = sanitizeEmail(req.Email, 255)
	req.FullName = sanitizeInput(req.FullName, 255, false)
	// Passwords keep their special characters; only trim and cap length.
	req.Password = sanitizeInput(req.Password, 128, true)

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	data, appErr := app.authService.Register(r.Context(), req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	metrics.RecordRegistration()
	setSessionCookie(w, data.Token)
	writeData(w, http.StatusCreated, data)
}

// loginHandler handles user login.
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, errors.NewInvalidInput("invalid request body"))
		return
	}

	req.Email = sanitizeEmail(req.Email, 255)
	req.Password = sanitizeInput(req.Password, 128, true)

	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	data, appErr := app.authService.Login(r.Context(), req)
	if appErr != nil {
		metrics.RecordLogin(false)
		writeErrorResponse(w, appErr)
		return
	}

	metrics.RecordLogin(true)
	setSessionCookie(w, data.Token)
	writeData(w, http.StatusOK, data)
}

// meHandler resolves the session cookie into the current user. Unlike the
// route guard this is the authoritative check: signature, expiry and user
// existence are all verified.
func (app *application) meHandler(w http.ResponseWriter, r *http.Request) {
	user, appErr := app.authService.ResolveSession(r.Context(), sessionTokenFromRequest(r))
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeData(w, http.StatusOK, user)
}

// logoutHandler drops the cookie. Tokens have no server-side revocation,
// so logout is purely a client-side affair.
func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeMessage(w, "Logged out successfully")
}
