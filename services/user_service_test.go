package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WithArgs("frontdesk", "ops@hotel.example").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "frontdesk",
		Email:    " Ops@Hotel.example ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "ops@hotel.example", user.Email)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(context.Background(), RegisterInput{Username: "a", Email: "a@b.c", Password: "secret123"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	cases := []struct {
		name     string
		rows     *sqlmock.Rows
		password string
		wantErr  error
	}{
		{
			name:     "valid",
			rows:     sqlmock.NewRows([]string{"id", "username", "email", "password"}).AddRow(1, "frontdesk", "ops@hotel.example", string(hash)),
			password: "secret123",
		},
		{
			name:     "wrong password",
			rows:     sqlmock.NewRows([]string{"id", "username", "email", "password"}).AddRow(1, "frontdesk", "ops@hotel.example", string(hash)),
			password: "nope",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			rows:     sqlmock.NewRows([]string{"id"}),
			password: "secret123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := NewUserService(db)
			mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(tc.rows)

			user, err := svc.Authenticate(context.Background(), "OPS@hotel.example", tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "frontdesk", user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
