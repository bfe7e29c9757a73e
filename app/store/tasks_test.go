package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskListColumns = []string{
	"id", "title", "description", "project_id", "assignee_id", "status", "priority",
	"due_date", "created_at", "updated_at", "project_name", "assignee_name", "assignee_avatar",
}

var taskRowColumns = []string{
	"id", "title", "description", "project_id", "assignee_id", "status", "priority",
	"due_date", "created_at", "updated_at",
}

func setupTasksStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *TasksStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, &TasksStore{db: db}
}

func TestTasksStore_List_Filters(t *testing.T) {
	db, mock, store := setupTasksStore(t)
	defer db.Close()

	createdAt := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	projectID := int64(2)

	mock.ExpectQuery(`FROM tasks t`).
		WithArgs(projectID, "pending", nil, 50).
		WillReturnRows(sqlmock.NewRows(taskListColumns).
			AddRow(7, "Write docs", nil, projectID, nil, "pending", "medium", nil, createdAt, nil, "Website Redesign", nil, nil))

	tasks, err := store.List(context.Background(), TaskFilter{ProjectID: &projectID, Status: "pending"})

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write docs", tasks[0].Title)
	require.NotNil(t, tasks[0].ProjectName)
	assert.Equal(t, "Website Redesign", *tasks[0].ProjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTasksStore_List_NoFilters(t *testing.T) {
	db, mock, store := setupTasksStore(t)
	defer db.Close()

	mock.ExpectQuery(`FROM tasks t`).
		WithArgs(nil, "", nil, 50).
		WillReturnRows(sqlmock.NewRows(taskListColumns))

	tasks, err := store.List(context.Background(), TaskFilter{})

	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTasksStore_Create_DefaultsStatusAndPriority(t *testing.T) {
	db, mock, store := setupTasksStore(t)
	defer db.Close()

	createdAt := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs("Write docs", nil, nil, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(1, "Write docs", nil, nil, nil, "pending", "medium", nil, createdAt, nil))

	task, err := store.Create(context.Background(), TaskCreate{Title: "Write docs"})

	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "pending", task.Status)
	assert.Equal(t, "medium", task.Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTasksStore_Update_Reassignment(t *testing.T) {
	db, mock, store := setupTasksStore(t)
	defer db.Close()

	createdAt := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	assignee := int64(5)

	mock.ExpectQuery(`UPDATE tasks`).
		WithArgs(nil, nil, nil, assignee, nil, nil, nil, int64(1)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(1, "Write docs", nil, nil, assignee, "pending", "medium", nil, createdAt, time.Now()))

	task, err := store.Update(context.Background(), 1, TaskUpdate{AssigneeID: &assignee})

	require.NoError(t, err)
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, int64(5), *task.AssigneeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTasksStore_Get_NotFound(t *testing.T) {
	db, mock, store := setupTasksStore(t)
	defer db.Close()

	mock.ExpectQuery(`FROM tasks t`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	task, err := store.Get(context.Background(), 99)

	assert.Nil(t, task)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTasksStore_Delete_NotFound(t *testing.T) {
	db, mock, store := setupTasksStore(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM tasks`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	err := store.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
