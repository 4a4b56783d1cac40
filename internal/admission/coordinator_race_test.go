package admission

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"
	"mwork_admission/pkg/apperrors"
	"mwork_admission/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// slowCountRepository растягивает окно между подсчетом active и записью
// и запоминает, сколько подсчетов шло одновременно.
type slowCountRepository struct {
	repositories.AssignmentRepository
	pause time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (r *slowCountRepository) CountActive(db *gorm.DB, castingID string, role models.RoleTag) (int64, error) {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)

	for {
		seen := r.maxInFlight.Load()
		if n <= seen || r.maxInFlight.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(r.pause)
	return r.AssignmentRepository.CountActive(db, castingID, role)
}

// openLocker пропускает всех сразу
type openLocker struct{}

func (openLocker) acquire(ctx context.Context, _ string) (func(), error) {
	return func() {}, ctx.Err()
}

type raceFixture struct {
	db     *gorm.DB
	coord  *Coordinator
	repo   *slowCountRepository
	ledger *Ledger
	ids    []string
	cast   *models.Casting
}

// newRaceFixture готовит кастинг с capacity местами и total заявками на пуле,
// который сам не сериализует транзакции.
func newRaceFixture(t *testing.T, capacity, total int) *raceFixture {
	t.Helper()

	db := helpers.OpenPooledTestDB(t, total+2)
	castings := repositories.NewCastingRepository()
	repo := &slowCountRepository{AssignmentRepository: repositories.NewAssignmentRepository(), pause: 30 * time.Millisecond}
	dir := repositories.NewDirectory(db, repositories.NewUserRepository(), castings)

	organizer := helpers.CreateUser(t, db, models.UserRoleEmployer)
	casting := helpers.CreateCasting(t, db, organizer.ID, helpers.Role(models.RoleModel, capacity))

	ids := make([]string, 0, total)
	for i := 0; i < total; i++ {
		user := helpers.CreateUser(t, db, models.UserRoleModel)
		a := helpers.CreateAssignment(t, db, casting.ID, user.ID, models.RoleModel, models.AssignmentStatusPending)
		ids = append(ids, a.ID)
	}

	return &raceFixture{
		db:     db,
		coord:  NewCoordinator(db, castings, repo, dir, dir),
		repo:   repo,
		ledger: NewLedger(db, castings, repositories.NewAssignmentRepository()),
		ids:    ids,
		cast:   casting,
	}
}

// acceptAll запускает accept по всем заявкам одновременно
func (f *raceFixture) acceptAll() (accepted, exceeded int32, errs []error) {
	var ok, full atomic.Int32
	results := make([]error, len(f.ids))

	var g errgroup.Group
	start := make(chan struct{})
	for i, id := range f.ids {
		i, id := i, id
		g.Go(func() error {
			<-start
			_, err := f.coord.Accept(context.Background(), id)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, apperrors.ErrCapacityExceeded):
				full.Add(1)
			default:
				results[i] = err
			}
			return nil
		})
	}
	close(start)
	_ = g.Wait()

	for _, err := range results {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return ok.Load(), full.Load(), errs
}

func TestCoordinator_DomainSerializesCountAndWrite(t *testing.T) {
	const capacity, extra = 2, 4
	f := newRaceFixture(t, capacity, capacity+extra)

	accepted, exceeded, errs := f.acceptAll()
	require.Empty(t, errs)

	assert.EqualValues(t, 1, f.repo.maxInFlight.Load(), "подсчет и запись одного кастинга не пересекаются")
	assert.EqualValues(t, capacity, accepted)
	assert.EqualValues(t, extra, exceeded)

	active, err := f.ledger.ActiveCount(context.Background(), f.cast.ID, models.RoleModel)
	require.NoError(t, err)
	assert.Equal(t, capacity, active)
	assert.Equal(t, 0, registrySize(f.coord))
}

// Без домена те же accept пересекаются в окне подсчета: тест выше держится на домене, а не на пуле.
func TestCoordinator_WithoutDomainCountsOverlap(t *testing.T) {
	const capacity, extra = 2, 4
	f := newRaceFixture(t, capacity, capacity+extra)
	f.coord.domains = openLocker{}

	_, _, _ = f.acceptAll()

	assert.Greater(t, f.repo.maxInFlight.Load(), int32(1))
}

func registrySize(c *Coordinator) int {
	r, ok := c.domains.(*domainRegistry)
	if !ok {
		return 0
	}
	return r.size()
}
