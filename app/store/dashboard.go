package store

import (
	"context"
	"database/sql"

	"github.com/pmpmaster/pmp-api/app/models"
)

// DashboardStore computes the cross-table statistics behind the dashboard
// landing page. Plain reporting SQL, no state.
type DashboardStore struct {
	db *sql.DB
}

func (s *DashboardStore) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	projectsQuery := `
	SELECT
		COUNT(*) as total_projects,
		COUNT(*) FILTER (WHERE status = 'in_progress') as active_projects
	FROM projects`

	if err := s.db.QueryRowContext(ctx, projectsQuery).Scan(
		&stats.Overview.TotalProjects,
		&stats.Overview.ActiveProjects,
	); err != nil {
		return nil, err
	}

	tasksQuery := `
	SELECT
		COUNT(*) FILTER (WHERE status = 'pending') as pending_tasks,
		COUNT(*) FILTER (WHERE due_date = CURRENT_DATE AND status != 'completed') as due_today,
		COUNT(*) FILTER (WHERE due_date < CURRENT_DATE AND status != 'completed') as overdue_tasks
	FROM tasks`

	if err := s.db.QueryRowContext(ctx, tasksQuery).Scan(
		&stats.Overview.PendingTasks,
		&stats.Overview.TasksDueToday,
		&stats.Overview.OverdueTasks,
	); err != nil {
		return nil, err
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) as total_members FROM users`,
	).Scan(&stats.Overview.TotalMembers); err != nil {
		return nil, err
	}

	performanceQuery := `
	SELECT
		CASE
			WHEN COUNT(*) > 0 THEN ROUND(COUNT(*) FILTER (WHERE status = 'completed') * 100.0 / COUNT(*), 0)
			ELSE 0
		END as performance
	FROM tasks
	WHERE assignee_id IS NOT NULL`

	if err := s.db.QueryRowContext(ctx, performanceQuery).Scan(
		&stats.Overview.TeamPerformance,
	); err != nil {
		return nil, err
	}

	recentQuery := `
	SELECT t.id, t.title, t.status, t.due_date,
		p.name as project_name,
		u.full_name as assignee_name
	FROM tasks t
	LEFT JOIN projects p ON t.project_id = p.id
	LEFT JOIN users u ON t.assignee_id = u.id
	ORDER BY t.updated_at DESC
	LIMIT 5`

	rows, err := s.db.QueryContext(ctx, recentQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.RecentTasks = []models.RecentTask{}
	for rows.Next() {
		var t models.RecentTask
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.DueDate, &t.ProjectName, &t.AssigneeName); err != nil {
			return nil, err
		}
		stats.RecentTasks = append(stats.RecentTasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	healthQuery := `
	SELECT id, name, progress, status
	FROM projects
	WHERE status != 'completed'
	ORDER BY updated_at DESC
	LIMIT 5`

	healthRows, err := s.db.QueryContext(ctx, healthQuery)
	if err != nil {
		return nil, err
	}
	defer healthRows.Close()

	stats.ProjectHealth = []models.ProjectHealth{}
	for healthRows.Next() {
		var h models.ProjectHealth
		if err := healthRows.Scan(&h.ID, &h.Name, &h.Progress, &h.Status); err != nil {
			return nil, err
		}
		stats.ProjectHealth = append(stats.ProjectHealth, h)
	}
	return stats, healthRows.Err()
}
