package models

import "time"

type Project struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Client        *string    `json:"client,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Progress      int        `json:"progress"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CreatedBy     *int64     `json:"created_by,omitempty"`
	CreatedByName *string    `json:"created_by_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`

	// Listing aggregates
	MemberCount int64 `json:"member_count"`
	TaskCount   int64 `json:"task_count"`
}

// ProjectMember is one row of a project's roster.
type ProjectMember struct {
	ID        int64   `json:"id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Position  *string `json:"position,omitempty"`
	Role      string  `json:"role"`
}

// ProjectDetail is a project with its roster and task list.
type ProjectDetail struct {
	Project
	CompletedTasks int64           `json:"completed_tasks"`
	Members        []ProjectMember `json:"members"`
	Tasks          []Task          `json:"tasks"`
}
