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

func (app *application) listProjectsHandler(w http.ResponseWriter, r *http.Request) {
	filter := store.ProjectFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  intQuery(r, "limit", 50),
	}

	projects, err := app.store.Projects.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, appErrors.NewInternal("failed to fetch projects").WithErr(err))
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeList(w, projects, len(projects))
}

func (app *application) createProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	project, err := app.store.Projects.Create(r.Context(), store.ProjectCreate{
		Name:        req.Name,
		Client:      req.Client,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		writeErrorResponse(w, appErrors.NewInternal("failed to create project").WithErr(err))
		return
	}
	writeData(w, http.StatusCreated, project)
}

func (app *application) getProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	project, err := app.store.Projects.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("project"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to fetch project").WithErr(err))
		return
	}
	writeData(w, http.StatusOK, project)
}

func (app *application) updateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	var req dto.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	project, err := app.store.Projects.Update(r.Context(), id, store.ProjectUpdate{
		Name:        req.Name,
		Client:      req.Client,
		Description: req.Description,
		Progress:    req.Progress,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("project"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to update project").WithErr(err))
		return
	}
	writeData(w, http.StatusOK, project)
}

func (app *application) deleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	if err := app.store.Projects.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("project"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to delete project").WithErr(err))
		return
	}
	writeMessage(w, "Project deleted successfully")
}
