package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pmpmaster/pmp-api/app/dto"
	appErrors "github.com/pmpmaster/pmp-api/app/errors"
	"github.com/pmpmaster/pmp-api/app/models"
	"github.com/pmpmaster/pmp-api/app/store"
)

func (app *application) listTeamHandler(w http.ResponseWriter, r *http.Request) {
	members, err := app.store.Users.List(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		writeErrorResponse(w, appErrors.NewInternal("failed to fetch team members").WithErr(err))
		return
	}
	if members == nil {
		members = []models.TeamMember{}
	}
	writeList(w, members, len(members))
}

func (app *application) createTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}
	req.Email = sanitizeEmail(req.Email, 255)
	req.FullName = sanitizeInput(req.FullName, 255, false)
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	user, appErr := app.authService.CreateTeamMember(r.Context(), req)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeData(w, http.StatusCreated, user)
}

func (app *application) getTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	member, err := app.store.Users.GetMemberDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("team member"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to fetch team member").WithErr(err))
		return
	}
	writeData(w, http.StatusOK, member)
}

func (app *application) updateTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	var req dto.UpdateTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	user, err := app.store.Users.Update(r.Context(), id, store.UserUpdate{
		FullName:  req.FullName,
		Role:      req.Role,
		Position:  req.Position,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("team member"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to update team member").WithErr(err))
		return
	}
	writeData(w, http.StatusOK, user)
}

func (app *application) deleteTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	if err := app.store.Users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("team member"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to delete team member").WithErr(err))
		return
	}
	writeMessage(w, "Team member deleted successfully")
}
