package main

import (
	"encoding/json"
	"net/http"

	"github.com/pmpmaster/pmp-api/app/dto"
	"github.com/pmpmaster/pmp-api/app/errors"
	"github.com/pmpmaster/pmp-api/app/logger"
)

// writeData writes the success envelope.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.DataResponse{Success: true, Data: data})
}

// writeList writes the success envelope with a row count, matching the
// listing endpoints' shape.
func writeList(w http.ResponseWriter, data interface{}, count int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dto.DataResponse{Success: true, Data: data, Count: &count})
}

// writeMessage writes the payload-less success envelope.
func writeMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dto.MessageResponse{Success: true, Message: message})
}

// writeErrorResponse is the single error-to-HTTP mapping: the AppError's
// status and client message go out, the wrapped cause only goes to the log.
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError) {
	if appErr.Status >= http.StatusInternalServerError {
		logger.Logger.Error().Err(appErr.Err).Str("code", string(appErr.Code)).Msg(appErr.Message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Success: false, Error: appErr.Message})
}
