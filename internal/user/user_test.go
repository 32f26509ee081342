package user

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	myErr "adboard/internal/types/errors"
	types "adboard/internal/types/user"

	"go.uber.org/zap/zaptest"
)

var userColumns = []string{"id", "username", "first_name", "last_name", "role", "name", "password_hash"}

func TestUserDBRepository_CreateUser(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserDBRepository(db, zaptest.NewLogger(t).Sugar())

	locationID := int64(3)
	u := types.CreateUser{
		Username:   "john",
		Password:   "securepass123",
		FirstName:  "John",
		LastName:   "Doe",
		LocationID: &locationID,
	}

	t.Run("successfully_create_user", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE username = $1`)).
			WithArgs(u.Username).
			WillReturnError(sql.ErrNoRows)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs(u.Username, u.FirstName, u.LastName, RoleMember, int64(3), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE u.id = $1`)).
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(11, "john", "John", "Doe", RoleMember, "Kazan", "hash"))

		created, err := repo.CreateUser(context.Background(), u)
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.Equal(t, RoleMember, created.Role)
		require.NotNil(t, created.Location)
		assert.Equal(t, "Kazan", *created.Location)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user_already_exists", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE username = $1`)).
			WithArgs(u.Username).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		_, err := repo.CreateUser(context.Background(), u)
		require.ErrorIs(t, err, myErr.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("password_too_long", func(t *testing.T) {
		long := u
		long.Password = strings.Repeat("p", 73)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE username = $1`)).
			WithArgs(u.Username).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.CreateUser(context.Background(), long)
		require.ErrorIs(t, err, myErr.ErrPasswordTooLong)
		assert.Equal(t, http.StatusBadRequest, myErr.StatusCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	constraintCases := []struct {
		name    string
		code    pq.ErrorCode
		wantErr error
		status  int
	}{
		{name: "concurrent_registration_hits_unique", code: "23505", wantErr: myErr.ErrAlreadyExists, status: http.StatusUnprocessableEntity},
		{name: "unknown_location_hits_fk", code: "23503", wantErr: myErr.ErrLocationNotFound, status: http.StatusNotFound},
		{name: "other_db_error", code: "08006", wantErr: myErr.ErrDBInternal, status: http.StatusInternalServerError},
	}
	for _, tc := range constraintCases {
		t.Run(tc.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE username = $1`)).
				WithArgs(u.Username).
				WillReturnError(sql.ErrNoRows)
			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
				WillReturnError(&pq.Error{Code: tc.code})

			_, err := repo.CreateUser(context.Background(), u)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.status, myErr.StatusCode(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserDBRepository_CheckUser(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserDBRepository(db, zaptest.NewLogger(t).Sugar())

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	require.NoError(t, err)

	query := regexp.QuoteMeta(`WHERE u.username = $1`)

	tests := []struct {
		name        string
		username    string
		password    string
		mockQuery   func()
		expectUser  bool
		expectError error
	}{
		{
			name:     "valid credentials",
			username: "valid",
			password: "correct_password",
			mockQuery: func() {
				mock.ExpectQuery(query).
					WithArgs("valid").
					WillReturnRows(sqlmock.NewRows(userColumns).
						AddRow(1, "valid", "John", "Doe", RoleAdmin, nil, string(hashedPassword)))
			},
			expectUser: true,
		},
		{
			name:     "user not found",
			username: "notfound",
			password: "whatever",
			mockQuery: func() {
				mock.ExpectQuery(query).
					WithArgs("notfound").
					WillReturnError(sql.ErrNoRows)
			},
			expectError: myErr.ErrNotFound,
		},
		{
			name:     "wrong password",
			username: "valid",
			password: "wrong_password",
			mockQuery: func() {
				mock.ExpectQuery(query).
					WithArgs("valid").
					WillReturnRows(sqlmock.NewRows(userColumns).
						AddRow(1, "valid", "John", "Doe", RoleMember, nil, string(hashedPassword)))
			},
			expectError: myErr.ErrBadPassword,
		},
		{
			name:     "db error",
			username: "error",
			password: "irrelevant",
			mockQuery: func() {
				mock.ExpectQuery(query).
					WithArgs("error").
					WillReturnError(errors.New("db failure"))
			},
			expectError: myErr.ErrDBInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tt.mockQuery()
			user, err := repository.CheckUser(context.Background(), tt.username, tt.password)

			if tt.expectUser {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Nil(t, user.Location)
			} else {
				assert.Nil(t, user)
				assert.ErrorIs(t, err, tt.expectError)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserDBRepository_Info(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewUserDBRepository(db, zaptest.NewLogger(t).Sugar())

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE u.id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(5, "anna", "Anna", "K", RoleModerator, "Tver", "secret-hash"))

	u, err := repository.Info(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "anna", u.String())
	assert.Equal(t, RoleModerator, u.Role)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE u.id = $1`)).
		WithArgs(int64(6)).
		WillReturnError(sql.ErrNoRows)

	_, err = repository.Info(context.Background(), 6)
	assert.ErrorIs(t, err, myErr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
