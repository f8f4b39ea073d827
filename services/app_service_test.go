package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppService_CreateAndList(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppService(db, NopNotifier{})

	mock.ExpectExec("INSERT INTO `apps`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT \\* FROM `apps`").
		WithArgs(uint(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "packageName", "user_id"}).AddRow(1, "com.netflix.ninja", 3))

	app, err := svc.Create(context.Background(), 3, "com.netflix.ninja")
	require.NoError(t, err)
	assert.Equal(t, uint(1), app.ID)

	apps, err := svc.List(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "com.netflix.ninja", apps[0].PackageName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppService_Update(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppService(db, NopNotifier{})

	mock.ExpectExec("UPDATE `apps` SET `packageName`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	app, err := svc.Update(context.Background(), 3, 1, "com.google.android.youtube.tv")
	require.NoError(t, err)
	assert.Equal(t, "com.google.android.youtube.tv", app.PackageName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppService_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &recordingNotifier{}
	svc := NewAppService(db, notifier)

	mock.ExpectExec("DELETE FROM `apps`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, svc.Delete(context.Background(), 3, 1), ErrNotFound)
	assert.Empty(t, notifier.Events())
	assert.NoError(t, mock.ExpectationsWereMet())
}
