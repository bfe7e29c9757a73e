package models

import "time"

type Meeting struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	ProjectID       *int64    `json:"project_id,omitempty"`
	ProjectName     *string   `json:"project_name,omitempty"`
	MeetingDate     time.Time `json:"meeting_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           *string   `json:"notes,omitempty"`
	ZoomLink        *string   `json:"zoom_link,omitempty"`
	CreatedBy       *int64    `json:"created_by,omitempty"`
	CreatedByName   *string   `json:"created_by_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	// Listing aggregates
	AttendeeCount int64 `json:"attendee_count"`
	ActionCount   int64 `json:"action_count"`
}

// MeetingDetail is a meeting with its attendee roster and action items.
type MeetingDetail struct {
	Meeting
	Attendees []ProjectMember `json:"attendees"`
	Actions   []MeetingAction `json:"actions"`
}

type MeetingAction struct {
	ID           int64     `json:"id"`
	MeetingID    int64     `json:"meeting_id"`
	Text         string    `json:"text"`
	AssigneeID   *int64    `json:"assignee_id,omitempty"`
	AssigneeName *string   `json:"assignee_name,omitempty"`
	LinkedTaskID *int64    `json:"linked_task_id,omitempty"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}
