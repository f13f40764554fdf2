package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jmcastellanos/doctrack-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, sqlDB
}

func TestCountActiveByDocument_Query(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `assignments` WHERE \\(document_id = \\? AND active = \\?\\) AND `assignments`\\.`deleted_at` IS NULL").
		WithArgs(uint64(7), true).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	repo := NewAssignmentRepository(db)
	count, err := repo.CountActiveByDocument(7)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPendingExtensions_Query(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	// Requested but not yet approved, soft-deleted rows excluded
	mock.ExpectQuery("SELECT \\* FROM `assignments` WHERE \\(extension_requested_at IS NOT NULL AND extension_due_at IS NULL\\) AND `assignments`\\.`deleted_at` IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewAssignmentRepository(db)
	assignments, err := repo.ListPendingExtensions()

	require.NoError(t, err)
	assert.Len(t, assignments, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentUpdateStatus_Query(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `documents` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewDocumentRepository(db)
	err := repo.UpdateStatus(3, models.DocumentStatusFinished)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
