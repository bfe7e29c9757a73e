package store

import (
	"context"
	"database/sql"

	"github.com/pmpmaster/pmp-api/app/models"
)

type MeetingsStore struct {
	db *sql.DB
}

type MeetingCreate struct {
	Title           string
	ProjectID       *int64
	MeetingDate     string
	DurationMinutes *int
	Notes           *string
	ZoomLink        *string
	CreatedBy       *int64
	AttendeeIDs     []int64
}

type MeetingUpdate struct {
	Title           *string
	MeetingDate     *string
	DurationMinutes *int
	Notes           *string
	ZoomLink        *string
}

const meetingColumns = `m.id, m.title, m.project_id, m.meeting_date, m.duration_minutes, m.notes, m.zoom_link, m.created_by, m.created_at`

func (s *MeetingsStore) List(ctx context.Context, projectID *int64) ([]models.Meeting, error) {
	query := `
	SELECT ` + meetingColumns + `,
		p.name as project_name,
		u.full_name as created_by_name,
		(SELECT COUNT(*) FROM meeting_attendees ma WHERE ma.meeting_id = m.id) as attendee_count,
		(SELECT COUNT(*) FROM meeting_actions act WHERE act.meeting_id = m.id) as action_count
	FROM meetings m
	LEFT JOIN projects p ON m.project_id = p.id
	LEFT JOIN users u ON m.created_by = u.id
	WHERE ($1::bigint IS NULL OR m.project_id = $1)
	ORDER BY m.meeting_date DESC`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		var m models.Meeting
		err := rows.Scan(
			&m.ID,
			&m.Title,
			&m.ProjectID,
			&m.MeetingDate,
			&m.DurationMinutes,
			&m.Notes,
			&m.ZoomLink,
			&m.CreatedBy,
			&m.CreatedAt,
			&m.ProjectName,
			&m.CreatedByName,
			&m.AttendeeCount,
			&m.ActionCount,
		)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (s *MeetingsStore) Get(ctx context.Context, id int64) (*models.MeetingDetail, error) {
	query := `
	SELECT ` + meetingColumns + `,
		p.name as project_name,
		u.full_name as created_by_name
	FROM meetings m
	LEFT JOIN projects p ON m.project_id = p.id
	LEFT JOIN users u ON m.created_by = u.id
	WHERE m.id = $1`

	var d models.MeetingDetail
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.Title,
		&d.ProjectID,
		&d.MeetingDate,
		&d.DurationMinutes,
		&d.Notes,
		&d.ZoomLink,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.ProjectName,
		&d.CreatedByName,
	)
	if err != nil {
		return nil, err
	}

	attendeesQuery := `
	SELECT u.id, u.full_name, u.email, u.avatar_url, u.position, u.role
	FROM meeting_attendees ma
	JOIN users u ON ma.user_id = u.id
	WHERE ma.meeting_id = $1`

	rows, err := s.db.QueryContext(ctx, attendeesQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Attendees = []models.ProjectMember{}
	for rows.Next() {
		var a models.ProjectMember
		if err := rows.Scan(&a.ID, &a.FullName, &a.Email, &a.AvatarURL, &a.Position, &a.Role); err != nil {
			return nil, err
		}
		d.Attendees = append(d.Attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	actionsQuery := `
	SELECT act.id, act.meeting_id, act.text, act.assignee_id, act.linked_task_id, act.completed, act.created_at,
		u.full_name as assignee_name
	FROM meeting_actions act
	LEFT JOIN users u ON act.assignee_id = u.id
	WHERE act.meeting_id = $1
	ORDER BY act.created_at ASC`

	actionRows, err := s.db.QueryContext(ctx, actionsQuery, id)
	if err != nil {
		return nil, err
	}
	defer actionRows.Close()

	d.Actions = []models.MeetingAction{}
	for actionRows.Next() {
		var a models.MeetingAction
		err := actionRows.Scan(
			&a.ID,
			&a.MeetingID,
			&a.Text,
			&a.AssigneeID,
			&a.LinkedTaskID,
			&a.Completed,
			&a.CreatedAt,
			&a.AssigneeName,
		)
		if err != nil {
			return nil, err
		}
		d.Actions = append(d.Actions, a)
	}
	return &d, actionRows.Err()
}

func (s *MeetingsStore) Create(ctx context.Context, c MeetingCreate) (*models.Meeting, error) {
	query := `
	INSERT INTO meetings AS m (title, project_id, meeting_date, duration_minutes, notes, zoom_link, created_by)
	VALUES ($1, $2, $3::timestamp, COALESCE($4, 60), $5, $6, $7)
	RETURNING ` + meetingColumns

	var m models.Meeting
	err := s.db.QueryRowContext(ctx, query,
		c.Title,
		c.ProjectID,
		c.MeetingDate,
		c.DurationMinutes,
		c.Notes,
		c.ZoomLink,
		c.CreatedBy,
	).Scan(
		&m.ID,
		&m.Title,
		&m.ProjectID,
		&m.MeetingDate,
		&m.DurationMinutes,
		&m.Notes,
		&m.ZoomLink,
		&m.CreatedBy,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Attendee rows ride on the meeting insert; a duplicate or dangling id
	// should not fail the whole meeting, matching single-statement atomicity.
	for _, userID := range c.AttendeeIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO meeting_attendees (meeting_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			m.ID, userID,
		)
		if err != nil {
			return nil, err
		}
	}
	m.AttendeeCount = int64(len(c.AttendeeIDs))

	return &m, nil
}

func (s *MeetingsStore) Update(ctx context.Context, id int64, upd MeetingUpdate) (*models.Meeting, error) {
	query := `
	UPDATE meetings m
	SET title = COALESCE($1, title),
	    meeting_date = COALESCE($2::timestamp, meeting_date),
	    duration_minutes = COALESCE($3, duration_minutes),
	    notes = COALESCE($4, notes),
	    zoom_link = COALESCE($5, zoom_link)
	WHERE id = $6
	RETURNING ` + meetingColumns

	var m models.Meeting
	err := s.db.QueryRowContext(ctx, query,
		upd.Title,
		upd.MeetingDate,
		upd.DurationMinutes,
		upd.Notes,
		upd.ZoomLink,
		id,
	).Scan(
		&m.ID,
		&m.Title,
		&m.ProjectID,
		&m.MeetingDate,
		&m.DurationMinutes,
		&m.Notes,
		&m.ZoomLink,
		&m.CreatedBy,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MeetingsStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM meetings WHERE id = $1 RETURNING id`
	var deleted int64
	return s.db.QueryRowContext(ctx, query, id).Scan(&deleted)
}
