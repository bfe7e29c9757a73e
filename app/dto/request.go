package dto

// RegisterRequest carries the data needed to register a new user. Unlike a
// hardened identity provider there are no password-strength rules here: the
// dashboard only requires the field to be present.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,max=128"`
	FullName string  `json:"full_name" validate:"required,max=255"`
	Position *string `json:"position,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest carries the data needed to login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Client      *string `json:"client,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=planning in_progress completed on_hold"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CreatedBy   *int64  `json:"created_by,omitempty"`
}

// UpdateProjectRequest updates only the fields that are present; nil fields
// keep their stored values (COALESCE in the store).
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Client      *string `json:"client,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Progress    *int    `json:"progress,omitempty" validate:"omitempty,min=0,max=100"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=planning in_progress completed on_hold"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
	ProjectID   *int64  `json:"project_id,omitempty"`
	AssigneeID  *int64  `json:"assignee_id,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress in_review completed overdue"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	ProjectID   *int64  `json:"project_id,omitempty"`
	AssigneeID  *int64  `json:"assignee_id,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress in_review completed overdue"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreateMeetingRequest struct {
	Title           string  `json:"title" validate:"required,max=255"`
	ProjectID       *int64  `json:"project_id,omitempty"`
	MeetingDate     string  `json:"meeting_date" validate:"required"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	Notes           *string `json:"notes,omitempty"`
	ZoomLink        *string `json:"zoom_link,omitempty"`
	CreatedBy       *int64  `json:"created_by,omitempty"`
	AttendeeIDs     []int64 `json:"attendee_ids,omitempty"`
}

type UpdateMeetingRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,max=255"`
	MeetingDate     *string `json:"meeting_date,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1"`
	Notes           *string `json:"notes,omitempty"`
	ZoomLink        *string `json:"zoom_link,omitempty"`
}

// CreateTeamMemberRequest adds a member without going through registration;
// the store assigns the well-known starter password.
type CreateTeamMemberRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	FullName  string  `json:"full_name" validate:"required,max=255"`
	Role      *string `json:"role,omitempty" validate:"omitempty,max=50"`
	Position  *string `json:"position,omitempty" validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type UpdateTeamMemberRequest struct {
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Role      *string `json:"role,omitempty" validate:"omitempty,max=50"`
	Position  *string `json:"position,omitempty" validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
