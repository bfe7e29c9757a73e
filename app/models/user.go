package models

import "time"

// User is a row in the users table. PasswordHash never leaves the store
// boundary in API responses: it is excluded from serialization here and the
// stores only scan it for the columns login needs.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	Position     *string    `json:"position,omitempty"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// TeamMember is a user decorated with the per-member workload counts the
// team listing shows.
type TeamMember struct {
	User
	ProjectCount   int64 `json:"project_count"`
	TaskCount      int64 `json:"task_count"`
	CompletedTasks int64 `json:"completed_tasks"`
}

// TeamMemberDetail adds the member's project assignments and upcoming tasks.
type TeamMemberDetail struct {
	TeamMember
	Projects    []MemberProject `json:"projects"`
	RecentTasks []Task          `json:"recent_tasks"`
}

// MemberProject is one row of a member's project assignments.
type MemberProject struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	MemberRole string `json:"member_role"`
}
