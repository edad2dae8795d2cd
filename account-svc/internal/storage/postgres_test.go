package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"restaurant-ordering/account-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

var userColumns = []string{"id", "email", "password_hash", "verified", "full_name", "created_at", "roles"}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ada@example.com", "hash", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("user-1", now))
	mock.ExpectExec("INSERT INTO profiles").WithArgs("user-1", "Ada").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_roles").WithArgs("user-1", "customer").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &domain.User{Email: "ada@example.com", PasswordHash: "hash", Verified: true, FullName: "Ada"}
	require.NoError(t, repo.CreateUser(context.Background(), user, "customer"))
	assert.Equal(t, "user-1", user.ID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
	mock.ExpectRollback()

	err := repo.CreateUser(context.Background(), &domain.User{Email: "ada@example.com"}, "customer")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGetUserByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM users u (.+) WHERE u.email = \$1 GROUP BY u.id, p.full_name`).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("user-1", "ada@example.com", "hash", true, "Ada", now, "{admin,customer}"))

	user, err := repo.GetUserByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "customer"}, user.Roles)
	assert.Equal(t, "Ada", user.FullName)
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`WHERE u.id = \$1`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users .* ON CONFLICT \(email\) DO UPDATE SET verified = FALSE`).WithArgs("chef@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-9"))
	mock.ExpectExec("INSERT INTO profiles").WithArgs("user-9", "Chef").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_roles").WithArgs("user-9").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`WHERE u.id = \$1`).WithArgs("user-9").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("user-9", "chef@example.com", "", false, "Chef", now, "{admin}"))

	user, err := repo.EnsureAdmin(context.Background(), "chef@example.com", "Chef")
	require.NoError(t, err)
	assert.False(t, user.Verified)
	assert.Equal(t, []string{"admin"}, user.Roles)
}

func TestSetPassword(t *testing.T) {
	repo, mock := newMockRepo(t)
	const query = `UPDATE users SET password_hash = \$1, verified = TRUE WHERE id = \$2 AND NOT verified`

	mock.ExpectExec(query).WithArgs("hash", "user-9").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("hash", "ghost").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.SetPassword(context.Background(), "user-9", "hash"))
	assert.ErrorIs(t, repo.SetPassword(context.Background(), "ghost", "hash"), domain.ErrNotFound)
}

func TestSetPassword_AlreadyVerified(t *testing.T) {
	repo, mock := newMockRepo(t)
	const query = `UPDATE users SET password_hash = \$1, verified = TRUE WHERE id = \$2 AND NOT verified`

	mock.ExpectExec(query).WithArgs("first", "user-9").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("second", "user-9").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetPassword(context.Background(), "user-9", "first"))
	assert.ErrorIs(t, repo.SetPassword(context.Background(), "user-9", "second"), domain.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs("user-1", "Ada", "5550100100", "12 Engine Road").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM profiles p JOIN users u").WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "full_name", "phone", "address", "updated_at"}).
			AddRow("user-1", "ada@example.com", "Ada", "5550100100", "12 Engine Road", now))

	p, err := repo.UpdateProfile(context.Background(), "user-1", domain.ProfileUpdate{FullName: "Ada", Phone: "5550100100", Address: "12 Engine Road"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", p.Email)
}
