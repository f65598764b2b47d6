package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockRepository(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestReassignByCreator_ReturnsModifiedCount(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET")).
		WithArgs("assignee-1", "assignee@example.com", sqlmock.AnyArg(), "creator-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.ReassignByCreator("creator-1", "assignee-1", "assignee@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReassignByCreator_NoOwnedTasks(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET")).
		WithArgs("assignee-1", "assignee@example.com", sqlmock.AnyArg(), "creator-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err := repo.ReassignByCreator("creator-1", "assignee-1", "assignee@example.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
