package repositories_test

import (
	"testing"
	"time"

	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"
	"mwork_admission/pkg/apperrors"
	"mwork_admission/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastingRepository_UpdateStatusGuardsCurrentStatus(t *testing.T) {
	db := helpers.OpenTestDB(t)
	repo := repositories.NewCastingRepository()

	organizer := helpers.CreateUser(t, db, models.UserRoleEmployer)
	casting := helpers.CreateCasting(t, db, organizer.ID, helpers.Role(models.RoleModel, 1))

	// Воркер успел закрыть кастинг, пока организатор читал его как active
	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Casting{}).Where("id = ?", casting.ID).Update("casting_date", past).Error)
	closed, err := repo.CloseExpired(db, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, closed)

	err = repo.UpdateStatus(db, casting.ID, models.CastingStatusActive, models.CastingStatusClosed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCastingStatus)

	err = repo.UpdateStatus(db, casting.ID, models.CastingStatusDraft, models.CastingStatusActive)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCastingStatus)

	stored, err := repo.FindByID(db, casting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CastingStatusClosed, stored.Status, "статус не перезаписан")

	err = repo.UpdateStatus(db, "00000000-0000-0000-0000-000000000000", models.CastingStatusActive, models.CastingStatusClosed)
	assert.ErrorIs(t, err, apperrors.ErrCastingNotFound)
}

func TestCastingRepository_UpdateStatusFromExpected(t *testing.T) {
	db := helpers.OpenTestDB(t)
	repo := repositories.NewCastingRepository()

	organizer := helpers.CreateUser(t, db, models.UserRoleEmployer)
	casting := helpers.CreateCasting(t, db, organizer.ID, helpers.Role(models.RoleModel, 1))

	require.NoError(t, repo.UpdateStatus(db, casting.ID, models.CastingStatusActive, models.CastingStatusClosed))

	stored, err := repo.FindByID(db, casting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CastingStatusClosed, stored.Status)
}
