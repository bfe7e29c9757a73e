package models

import "time"

type Task struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	ProjectID      *int64     `json:"project_id,omitempty"`
	ProjectName    *string    `json:"project_name,omitempty"`
	AssigneeID     *int64     `json:"assignee_id,omitempty"`
	AssigneeName   *string    `json:"assignee_name,omitempty"`
	AssigneeAvatar *string    `json:"assignee_avatar,omitempty"`
	AssigneeEmail  *string    `json:"assignee_email,omitempty"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
