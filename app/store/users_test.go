package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmpmaster/pmp-api/app/models"
)

/*
UsersStore test cases:

1. Create sets ID and CreatedAt from RETURNING
2. Create propagates database errors
3. GetByEmail returns the row including the password hash
4. GetByEmail returns sql.ErrNoRows for unknown emails
5. GetByID does not select the password hash
6. List applies the role filter and decorates workload counts
7. Update coalesces nil fields and returns the updated row
8. Delete returns sql.ErrNoRows for a missing id
*/

// setupMockDB creates a mock database and UsersStore for testing
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *UsersStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock database")

	store := &UsersStore{db: db}

	return db, mock, store
}

func TestUsersStore_Create_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	user := &models.User{
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$hashedpassword",
		FullName:     "Alice",
		Role:         "user",
	}

	expectedID := int64(1)
	expectedCreatedAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.Email, user.PasswordHash, user.FullName, user.Role, user.Position, user.AvatarURL).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(expectedID, expectedCreatedAt))

	err := store.Create(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, expectedID, user.ID)
	assert.Equal(t, expectedCreatedAt, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_Create_DatabaseError(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	user := &models.User{
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$hashedpassword",
		FullName:     "Alice",
		Role:         "user",
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.Email, user.PasswordHash, user.FullName, user.Role, user.Position, user.AvatarURL).
		WillReturnError(sql.ErrConnDone)

	err := store.Create(context.Background(), user)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_GetByEmail_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	createdAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, email, password_hash, full_name, role, position, avatar_url, created_at`).
		WithArgs("alice@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "role", "position", "avatar_url", "created_at"}).
			AddRow(1, "alice@x.com", "$2a$10$hashedpassword", "Alice", "user", nil, nil, createdAt))

	user, err := store.GetByEmail(context.Background(), "alice@x.com")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "$2a$10$hashedpassword", user.PasswordHash)
	assert.Equal(t, "Alice", user.FullName)
	assert.Nil(t, user.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_GetByEmail_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, email, password_hash`).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	user, err := store.GetByEmail(context.Background(), "nobody@x.com")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_GetByID_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	createdAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	position := "Engineer"

	mock.ExpectQuery(`SELECT id, email, full_name, role, position, avatar_url, created_at`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "role", "position", "avatar_url", "created_at"}).
			AddRow(1, "alice@x.com", "Alice", "user", position, nil, createdAt))

	user, err := store.GetByID(context.Background(), 1)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Empty(t, user.PasswordHash, "GetByID must not select the hash")
	require.NotNil(t, user.Position)
	assert.Equal(t, "Engineer", *user.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_List_RoleFilter(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	createdAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM users u`).
		WithArgs("manager").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "role", "position", "avatar_url", "created_at", "project_count", "task_count", "completed_tasks"}).
			AddRow(2, "bob@x.com", "Bob", "manager", nil, nil, createdAt, 3, 12, 7))

	members, err := store.List(context.Background(), "manager")

	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "bob@x.com", members[0].Email)
	assert.Equal(t, int64(3), members[0].ProjectCount)
	assert.Equal(t, int64(12), members[0].TaskCount)
	assert.Equal(t, int64(7), members[0].CompletedTasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_Update_Success(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	createdAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	newName := "Alice Smith"

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(newName, nil, nil, nil, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "role", "position", "avatar_url", "created_at"}).
			AddRow(1, "alice@x.com", newName, "user", nil, nil, createdAt))

	user, err := store.Update(context.Background(), 1, UserUpdate{FullName: &newName})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice Smith", user.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersStore_Delete_NotFound(t *testing.T) {
	db, mock, store := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM users`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	err := store.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
