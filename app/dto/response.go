package dto

import "github.com/pmpmaster/pmp-api/app/models"

// DataResponse is the success envelope every endpoint returns.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Count   *int        `json:"count,omitempty"`
}

// MessageResponse is the success envelope for operations with no payload
// (deletes, logout).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// AuthData is the payload for register and login: the user (hash excluded
// by the model's serialization) plus the session token that is also set as
// a cookie.
type AuthData struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
