package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pmpmaster/pmp-api/app/dto"
	appErrors "github.com/pmpmaster/pmp-api/app/errors"
	"github.com/pmpmaster/pmp-api/app/middleware"
	"github.com/pmpmaster/pmp-api/app/models"
	"github.com/pmpmaster/pmp-api/app/store"
)

func (app *application) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	filter := store.TaskFilter{
		ProjectID:  int64Query(r, "project_id"),
		Status:     r.URL.Query().Get("status"),
		AssigneeID: int64Query(r, "assignee_id"),
		Limit:      intQuery(r, "limit", 50),
	}

	tasks, err := app.store.Tasks.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, appErrors.NewInternal("failed to fetch tasks").WithErr(err))
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeList(w, tasks, len(tasks))
}

func (app *application) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	task, err := app.store.Tasks.Create(r.Context(), store.TaskCreate{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeErrorResponse(w, appErrors.NewInternal("failed to create task").WithErr(err))
		return
	}

	app.publishTaskAssigned(r, task)
	writeData(w, http.StatusCreated, task)
}

func (app *application) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	task, err := app.store.Tasks.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("task"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to fetch task").WithErr(err))
		return
	}
	writeData(w, http.StatusOK, task)
}

func (app *application) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, appErrors.NewInvalidInput("invalid request body"))
		return
	}
	if err := validateRequest(&req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	task, err := app.store.Tasks.Update(r.Context(), id, store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("task"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to update task").WithErr(err))
		return
	}

	if req.AssigneeID != nil {
		app.publishTaskAssigned(r, task)
	}
	writeData(w, http.StatusOK, task)
}

func (app *application) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r)
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}

	if err := app.store.Tasks.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeErrorResponse(w, appErrors.NewNotFound("task"))
			return
		}
		writeErrorResponse(w, appErrors.NewInternal("failed to delete task").WithErr(err))
		return
	}
	writeMessage(w, "Task deleted successfully")
}

// publishTaskAssigned emits a task.assigned event when the task has an
// assignee. Publishing is best-effort: a broker failure never fails the
// request.
func (app *application) publishTaskAssigned(r *http.Request, task *models.Task) {
	if app.publisher == nil || task.AssigneeID == nil {
		return
	}
	if err := app.publisher.PublishTaskAssigned(r.Context(), task.ID, *task.AssigneeID, task.Title); err != nil {
		logger := middleware.LoggerFromContext(r)
		logger.Warn().Err(err).Int64("task_id", task.ID).Msg("failed to publish task.assigned event")
	}
}
