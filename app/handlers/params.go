package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pmpmaster/pmp-api/app/errors"
)

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, *errors.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInput("invalid id")
	}
	return id, nil
}

// int64Query parses an optional numeric query parameter; nil means absent
// or unparsable, which the stores treat as "no filter".
func int64Query(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &val
}

// intQuery parses an optional numeric query parameter with a fallback.
func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
