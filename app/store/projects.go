package store

import (
	"context"
	"database/sql"

	"github.com/pmpmaster/pmp-api/app/models"
)

type ProjectsStore struct {
	db *sql.DB
}

type ProjectFilter struct {
	Status string
	Limit  int
}

type ProjectCreate struct {
	Name        string
	Client      *string
	Description *string
	Status      *string
	DueDate     *string
	CreatedBy   *int64
}

type ProjectUpdate struct {
	Name        *string
	Client      *string
	Description *string
	Progress    *int
	Status      *string
	DueDate     *string
}

const projectColumns = `p.id, p.name, p.client, p.description, p.progress, p.status, p.due_date, p.created_by, p.created_at, p.updated_at`

func (s *ProjectsStore) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT ` + projectColumns + `,
		u.full_name as created_by_name,
		COUNT(DISTINCT pm.user_id) as member_count,
		COUNT(DISTINCT t.id) as task_count
	FROM projects p
	LEFT JOIN users u ON p.created_by = u.id
	LEFT JOIN project_members pm ON p.id = pm.project_id
	LEFT JOIN tasks t ON p.id = t.project_id
	WHERE ($1 = '' OR p.status = $1)
	GROUP BY p.id, u.full_name
	ORDER BY p.created_at DESC
	LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, f.Status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Client,
			&p.Description,
			&p.Progress,
			&p.Status,
			&p.DueDate,
			&p.CreatedBy,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.CreatedByName,
			&p.MemberCount,
			&p.TaskCount,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *ProjectsStore) Get(ctx context.Context, id int64) (*models.ProjectDetail, error) {
	query := `
	SELECT ` + projectColumns + `,
		u.full_name as created_by_name,
		(SELECT COUNT(*) FROM tasks WHERE project_id = p.id) as task_count,
		(SELECT COUNT(*) FROM tasks WHERE project_id = p.id AND status = 'completed') as completed_tasks
	FROM projects p
	LEFT JOIN users u ON p.created_by = u.id
	WHERE p.id = $1`

	var d models.ProjectDetail
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.Client,
		&d.Description,
		&d.Progress,
		&d.Status,
		&d.DueDate,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.CreatedByName,
		&d.TaskCount,
		&d.CompletedTasks,
	)
	if err != nil {
		return nil, err
	}

	membersQuery := `
	SELECT u.id, u.full_name, u.email, u.avatar_url, u.position, pm.role
	FROM project_members pm
	JOIN users u ON pm.user_id = u.id
	WHERE pm.project_id = $1`

	rows, err := s.db.QueryContext(ctx, membersQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Members = []models.ProjectMember{}
	for rows.Next() {
		var m models.ProjectMember
		if err := rows.Scan(&m.ID, &m.FullName, &m.Email, &m.AvatarURL, &m.Position, &m.Role); err != nil {
			return nil, err
		}
		d.Members = append(d.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasksQuery := `
	SELECT t.id, t.title, t.description, t.project_id, t.assignee_id, t.status, t.priority, t.due_date, t.created_at, t.updated_at,
		u.full_name as assignee_name
	FROM tasks t
	LEFT JOIN users u ON t.assignee_id = u.id
	WHERE t.project_id = $1
	ORDER BY t.created_at DESC`

	taskRows, err := s.db.QueryContext(ctx, tasksQuery, id)
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()

	d.Tasks = []models.Task{}
	for taskRows.Next() {
		var t models.Task
		err := taskRows.Scan(
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
			&t.AssigneeName,
		)
		if err != nil {
			return nil, err
		}
		d.Tasks = append(d.Tasks, t)
	}
	return &d, taskRows.Err()
}

func (s *ProjectsStore) Create(ctx context.Context, p ProjectCreate) (*models.Project, error) {
	query := `
	INSERT INTO projects AS p (name, client, description, status, due_date, created_by)
	VALUES ($1, $2, $3, COALESCE($4, 'planning'), $5::date, $6)
	RETURNING ` + projectColumns

	var created models.Project
	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		p.Client,
		p.Description,
		p.Status,
		p.DueDate,
		p.CreatedBy,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Client,
		&created.Description,
		&created.Progress,
		&created.Status,
		&created.DueDate,
		&created.CreatedBy,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *ProjectsStore) Update(ctx context.Context, id int64, upd ProjectUpdate) (*models.Project, error) {
	query := `
	UPDATE projects p
	SET name = COALESCE($1, name),
	    client = COALESCE($2, client),
	    description = COALESCE($3, description),
	    progress = COALESCE($4, progress),
	    status = COALESCE($5, status),
	    due_date = COALESCE($6::date, due_date),
	    updated_at = NOW()
	WHERE id = $7
	RETURNING ` + projectColumns

	var p models.Project
	err := s.db.QueryRowContext(ctx, query,
		upd.Name,
		upd.Client,
		upd.Description,
		upd.Progress,
		upd.Status,
		upd.DueDate,
		id,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Client,
		&p.Description,
		&p.Progress,
		&p.Status,
		&p.DueDate,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectsStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM projects WHERE id = $1 RETURNING id`
	var deleted int64
	return s.db.QueryRowContext(ctx, query, id).Scan(&deleted)
}
