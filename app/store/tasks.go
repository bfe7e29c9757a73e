package store

import (
	"context"
	"database/sql"

	"github.com/pmpmaster/pmp-api/app/models"
)

type TasksStore struct {
	db *sql.DB
}

type TaskFilter struct {
	ProjectID  *int64
	Status     string
	AssigneeID *int64
	Limit      int
}

type TaskCreate struct {
	Title       string
	Description *string
	ProjectID   *int64
	AssigneeID  *int64
	Status      *string
	Priority    *string
	DueDate     *string
}

type TaskUpdate struct {
	Title       *string
	Description *string
	ProjectID   *int64
	AssigneeID  *int64
	Status      *string
	Priority    *string
	DueDate     *string
}

const taskColumns = `t.id, t.title, t.description, t.project_id, t.assignee_id, t.status, t.priority, t.due_date, t.created_at, t.updated_at`

func (s *TasksStore) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT ` + taskColumns + `,
		p.name as project_name,
		u.full_name as assignee_name,
		u.avatar_url as assignee_avatar
	FROM tasks t
	LEFT JOIN projects p ON t.project_id = p.id
	LEFT JOIN users u ON t.assignee_id = u.id
	WHERE ($1::bigint IS NULL OR t.project_id = $1)
	  AND ($2 = '' OR t.status = $2)
	  AND ($3::bigint IS NULL OR t.assignee_id = $3)
	ORDER BY t.created_at DESC
	LIMIT $4`

	rows, err := s.db.QueryContext(ctx, query, f.ProjectID, f.Status, f.AssigneeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.ProjectID,
			&t.AssigneeID,
			&t.Status,
			&t.Priority,
			&t.DueDate,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.ProjectName,
			&t.AssigneeName,
			&t.AssigneeAvatar,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *TasksStore) Get(ctx context.Context, id int64) (*models.Task, error) {
	query := `
	SELECT ` + taskColumns + `,
		p.name as project_name,
		u.full_name as assignee_name,
		u.avatar_url as assignee_avatar,
		u.email as assignee_email
	FROM tasks t
	LEFT JOIN projects p ON t.project_id = p.id
	LEFT JOIN users u ON t.assignee_id = u.id
	WHERE t.id = $1`

	var t models.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.ProjectID,
		&t.AssigneeID,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ProjectName,
		&t.AssigneeName,
		&t.AssigneeAvatar,
		&t.AssigneeEmail,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TasksStore) Create(ctx context.Context, c TaskCreate) (*models.Task, error) {
	query := `
	INSERT INTO tasks AS t (title, description, project_id, assignee_id, status, priority, due_date)
	VALUES ($1, $2, $3, $4, COALESCE($5, 'pending'), COALESCE($6, 'medium'), $7::date)
	RETURNING ` + taskColumns

	var t models.Task
	err := s.db.QueryRowContext(ctx, query,
		c.Title,
		c.Description,
		c.ProjectID,
		c.AssigneeID,
		c.Status,
		c.Priority,
		c.DueDate,
	).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.ProjectID,
		&t.AssigneeID,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TasksStore) Update(ctx context.Context, id int64, upd TaskUpdate) (*models.Task, error) {
	query := `
	UPDATE tasks t
	SET title = COALESCE($1, title),
	    description = COALESCE($2, description),
	    project_id = COALESCE($3, project_id),
	    assignee_id = COALESCE($4, assignee_id),
	    status = COALESCE($5, status),
	    priority = COALESCE($6, priority),
	    due_date = COALESCE($7::date, due_date),
	    updated_at = NOW()
	WHERE id = $8
	RETURNING ` + taskColumns

	var t models.Task
	err := s.db.QueryRowContext(ctx, query,
		upd.Title,
		upd.Description,
		upd.ProjectID,
		upd.AssigneeID,
		upd.Status,
		upd.Priority,
		upd.DueDate,
		id,
	).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.ProjectID,
		&t.AssigneeID,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TasksStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = $1 RETURNING id`
	var deleted int64
	return s.db.QueryRowContext(ctx, query, id).Scan(&deleted)
}
