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

func (app *application) listMeetingsHandler(w http.ResponseWriter, r *http.Request) {
	meetings, err := app.store.Meetings.List(r.Context(), int64Query(r, "project_id"))
	if err != nil {
		writeErrorResponse(w, appErrors.NewInternal("failed to fetch meetings").WithErr(err))
		return
	}
	if meetings == nil {
		meetings = []models.Meeting{}
	}
	writeList(w, meetings, len(meetings))
}

func (app *application) createMeetingHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	meeting, err := app.store.Meetings.Create(r.Context(), store.MeetingCreate{
		Title:           req.Title,
		ProjectID:       req.ProjectID,
		MeetingDate:     req.MeetingDate,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		ZoomLink:        req.ZoomLink,
		CreatedBy:       req.CreatedBy,
		AttendeeIDs:     req.AttendeeIDs,
	})
	if err != nil {
		writeErrorResponse(w, appErrors.NewInternal("failed to create meeting").WithErr(err))
		return
	}
	writeData(w, http.StatusCreated, meeting)
}

func (app *application) getMeetingHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	meeting, err := app.store.Meetings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("meeting"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to fetch meeting").WithErr(err))
		return
	}
	writeData(w, http.StatusOK, meeting)
}

func (app *application) updateMeetingHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	var req dto.UpdateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	meeting, err := app.store.Meetings.Update(r.Context(), id, store.MeetingUpdate{
		Title:           req.Title,
		MeetingDate:     req.MeetingDate,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		ZoomLink:        req.ZoomLink,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("meeting"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to update meeting").WithErr(err))
		return
	}
	writeData(w, http.StatusOK, meeting)
}

func (app *application) deleteMeetingHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	if err := app.store.Meetings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("meeting"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to delete meeting").WithErr(err))
		return
	}
	writeMessage(w, "Meeting deleted successfully")
}
