package workers

import (
	"context"
	"testing"
	"time"

	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"
	"mwork_admission/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastingWorker_ClosesExpiredCastings(t *testing.T) {
	db := helpers.OpenTestDB(t)
	castings := repositories.NewCastingRepository()

	organizer := helpers.CreateUser(t, db, models.UserRoleEmployer)
	casting := helpers.CreateCasting(t, db, organizer.ID, helpers.Role(models.RoleModel, 1))

	w := NewCastingWorker(db, castings, time.Hour)
	assert.Zero(t, w.RunOnce(context.Background()))

	// Через две недели дата кастинга уже прошла
	w.now = func() time.Time { return time.Now().Add(14 * 24 * time.Hour) }
	assert.EqualValues(t, 1, w.RunOnce(context.Background()))

	got, err := castings.FindByID(db, casting.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CastingStatusClosed, got.Status)
}

func TestCastingWorker_StopsOnCancel(t *testing.T) {
	db := helpers.OpenTestDB(t)
	w := NewCastingWorker(db, repositories.NewCastingRepository(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
