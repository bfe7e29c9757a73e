package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"

	"github.com/pmpmaster/pmp-api/app/migrations"
	"github.com/pmpmaster/pmp-api/app/models"
)

type Storage struct {
	Users interface {
		List(ctx context.Context, role string) ([]models.TeamMember, error)
		GetByID(ctx context.Context, id int64) (*models.User, error)
		GetByEmail(ctx context.Context, email string) (*models.User, error)
		GetMemberDetail(ctx context.Context, id int64) (*models.TeamMemberDetail, error)
		Create(ctx context.Context, user *models.User) error
		Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error)
		Delete(ctx context.Context, id int64) error
	}
	Projects interface {
		List(ctx context.Context, f ProjectFilter) ([]models.Project, error)
		Get(ctx context.Context, id int64) (*models.ProjectDetail, error)
		Create(ctx context.Context, p ProjectCreate) (*models.Project, error)
		Update(ctx context.Context, id int64, upd ProjectUpdate) (*models.Project, error)
		Delete(ctx context.Context, id int64) error
	}
	Tasks interface {
		List(ctx context.Context, f TaskFilter) ([]models.Task, error)
		Get(ctx context.Context, id int64) (*models.Task, error)
		Create(ctx context.Context, t TaskCreate) (*models.Task, error)
		Update(ctx context.Context, id int64, upd TaskUpdate) (*models.Task, error)
		Delete(ctx context.Context, id int64) error
	}
	Meetings interface {
		List(ctx context.Context, projectID *int64) ([]models.Meeting, error)
		Get(ctx context.Context, id int64) (*models.MeetingDetail, error)
		Create(ctx context.Context, m MeetingCreate) (*models.Meeting, error)
		Update(ctx context.Context, id int64, upd MeetingUpdate) (*models.Meeting, error)
		Delete(ctx context.Context, id int64) error
	}
	Dashboard interface {
		Stats(ctx context.Context) (*models.DashboardStats, error)
	}
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Users:     &UsersStore{db: db},
		Projects:  &ProjectsStore{db: db},
		Tasks:     &TasksStore{db: db},
		Meetings:  &MeetingsStore{db: db},
		Dashboard: &DashboardStore{db: db},
	}
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, db, ".")
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (duplicate email on users, duplicate roster rows).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
