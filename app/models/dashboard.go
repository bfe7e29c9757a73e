package models

import "time"

// DashboardStats is the aggregate computed in one round trip for the
// dashboard landing page.
type DashboardStats struct {
	Overview      DashboardOverview `json:"overview"`
	RecentTasks   []RecentTask      `json:"recent_tasks"`
	ProjectHealth []ProjectHealth   `json:"project_health"`
}

type DashboardOverview struct {
	TotalProjects   int64 `json:"total_projects"`
	ActiveProjects  int64 `json:"active_projects"`
	PendingTasks    int64 `json:"pending_tasks"`
	TasksDueToday   int64 `json:"tasks_due_today"`
	OverdueTasks    int64 `json:"overdue_tasks"`
	TeamPerformance int64 `json:"team_performance"`
	TotalMembers    int64 `json:"total_members"`
}

type RecentTask struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ProjectName  *string    `json:"project_name,omitempty"`
	AssigneeName *string    `json:"assignee_name,omitempty"`
}

type ProjectHealth struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}
