package store

import (
	"context"
	"database/sql"

	"github.com/pmpmaster/pmp-api/app/models"
)

// UsersStore is the credential store: it is the only place password hashes
// are read or written.
type UsersStore struct {
	db *sql.DB
}

// UserUpdate carries the profile fields a team-member edit may change.
// Nil fields keep their stored values.
type UserUpdate struct {
	FullName  *string
	Role      *string
	Position  *string
	AvatarURL *string
}

func (s *UsersStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, full_name, role, position, avatar_url, created_at
	FROM users WHERE email = $1`
	var user models.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		&user.Position,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, email, full_name, role, position, avatar_url, created_at
	FROM users WHERE id = $1`
	var user models.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
		&user.Position,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersStore) Create(ctx context.Context, user *models.User) error {
	query := `
	INSERT INTO users (email, password_hash, full_name, role, position, avatar_url)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Role,
		user.Position,
		user.AvatarURL,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return err
	}

	return nil
}

func (s *UsersStore) List(ctx context.Context, role string) ([]models.TeamMember, error) {
	query := `
	SELECT
		u.id, u.email, u.full_name, u.role, u.position, u.avatar_url, u.created_at,
		(SELECT COUNT(*) FROM project_members pm WHERE pm.user_id = u.id) as project_count,
		(SELECT COUNT(*) FROM tasks t WHERE t.assignee_id = u.id) as task_count,
		(SELECT COUNT(*) FROM tasks t WHERE t.assignee_id = u.id AND t.status = 'completed') as completed_tasks
	FROM users u
	WHERE ($1 = '' OR u.role = $1)
	ORDER BY u.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		err := rows.Scan(
			&m.ID,
			&m.Email,
			&m.FullName,
			&m.Role,
			&m.Position,
			&m.AvatarURL,
			&m.CreatedAt,
			&m.ProjectCount,
			&m.TaskCount,
			&m.CompletedTasks,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *UsersStore) GetMemberDetail(ctx context.Context, id int64) (*models.TeamMemberDetail, error) {
	query := `
	SELECT
		u.id, u.email, u.full_name, u.role, u.position, u.avatar_url, u.created_at,
		(SELECT COUNT(*) FROM project_members pm WHERE pm.user_id = u.id) as project_count,
		(SELECT COUNT(*) FROM tasks t WHERE t.assignee_id = u.id) as task_count,
		(SELECT COUNT(*) FROM tasks t WHERE t.assignee_id = u.id AND t.status = 'completed') as completed_tasks
	FROM users u
	WHERE u.id = $1`

	var d models.TeamMemberDetail
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.Email,
		&d.FullName,
		&d.Role,
		&d.Position,
		&d.AvatarURL,
		&d.CreatedAt,
		&d.ProjectCount,
		&d.TaskCount,
		&d.CompletedTasks,
	)
	if err != nil {
		return nil, err
	}

	projectsQuery := `
	SELECT p.id, p.name, p.status, pm.role as member_role
	FROM project_members pm
	JOIN projects p ON pm.project_id = p.id
	WHERE pm.user_id = $1`

	rows, err := s.db.QueryContext(ctx, projectsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Projects = []models.MemberProject{}
	for rows.Next() {
		var p models.MemberProject
		if err := rows.Scan(&p.ID, &p.Name, &p.Status, &p.MemberRole); err != nil {
			return nil, err
		}
		d.Projects = append(d.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasksQuery := `
	SELECT t.id, t.title, t.status, t.priority, t.due_date, p.name as project_name
	FROM tasks t
	LEFT JOIN projects p ON t.project_id = p.id
	WHERE t.assignee_id = $1
	ORDER BY t.due_date ASC NULLS LAST
	LIMIT 10`

	taskRows, err := s.db.QueryContext(ctx, tasksQuery, id)
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()

	d.RecentTasks = []models.Task{}
	for taskRows.Next() {
		var t models.Task
		if err := taskRows.Scan(&t.ID, &t.Title, &t.Status, &t.Priority, &t.DueDate, &t.ProjectName); err != nil {
			return nil, err
		}
		d.RecentTasks = append(d.RecentTasks, t)
	}
	return &d, taskRows.Err()
}

func (s *UsersStore) Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error) {
	query := `
	UPDATE users
	SET full_name = COALESCE($1, full_name),
	    role = COALESCE($2, role),
	    position = COALESCE($3, position),
	    avatar_url = COALESCE($4, avatar_url),
	    updated_at = NOW()
	WHERE id = $5
	RETURNING id, email, full_name, role, position, avatar_url, created_at`

	var user models.User
	err := s.db.QueryRowContext(ctx, query,
		upd.FullName,
		upd.Role,
		upd.Position,
		upd.AvatarURL,
		id,
	).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
		&user.Position,
		&user.AvatarURL,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1 RETURNING id`
	var deleted int64
	return s.db.QueryRowContext(ctx, query, id).Scan(&deleted)
}
