package repositories

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mwork_admission/internal/models"
	"mwork_admission/pkg/apperrors"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestCastingRepository_LockForUpdateIssuesRowLock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCastingRepository()

	castingID := "7b0c7a1e-2f4c-4a0e-9d55-0a3b1c9e1f10"

	mock.ExpectQuery(`SELECT \* FROM "castings" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "organizer_id", "title", "status"}).
			AddRow(castingID, "org-1", "Fashion week", "active"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "casting_roles" WHERE casting_id = $1 ORDER BY position ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "casting_id", "role", "capacity", "position"}).
			AddRow("r-1", castingID, "model", 2, 1).
			AddRow("r-2", castingID, "photographer", 1, 2))

	casting, err := repo.LockForUpdate(db, castingID)
	require.NoError(t, err)
	assert.Equal(t, models.CastingStatusActive, casting.Status)
	require.Len(t, casting.Roles, 2)

	role, ok := casting.Role(models.RolePhotographer)
	require.True(t, ok)
	assert.Equal(t, 1, role.Capacity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCastingRepository_LockForUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCastingRepository()

	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.LockForUpdate(db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrCastingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
