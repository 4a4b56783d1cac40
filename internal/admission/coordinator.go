package admission

import (
	"context"
	"errors"
	"time"

	"mwork_admission/internal/logger"
	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"
	"mwork_admission/pkg/apperrors"

	"gorm.io/gorm"
)

// Coordinator - единственная точка изменения заявок. Все мутации одного кастинга
// проходят через его домен: семафор в процессе и FOR UPDATE по строке кастинга в БД.
type Coordinator struct {
	db          *gorm.DB
	castings    repositories.CastingRepository
	assignments repositories.AssignmentRepository
	identity    IdentityLookup
	lookup      CastingLookup
	notifier    Notifier

	domains     castingLocker
	lockTimeout time.Duration
	now         func() time.Time
}

type Option func(*Coordinator)

// WithLockTimeout ограничивает ожидание входа в домен кастинга.
func WithLockTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.lockTimeout = d }
}

func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) {
		if n != nil {
			c.notifier = n
		}
	}
}

// TransitionRequest - элемент пакетного перехода
type TransitionRequest struct {
	AssignmentID string
	Target       models.AssignmentStatus
}

// TransitionResult - исход одного элемента пакета. Err изолирован от остальных элементов.
type TransitionResult struct {
	AssignmentID string
	Assignment   *models.Assignment
	Err          error
}

func NewCoordinator(
	db *gorm.DB,
	castings repositories.CastingRepository,
	assignments repositories.AssignmentRepository,
	identity IdentityLookup,
	lookup CastingLookup,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		db:          db,
		castings:    castings,
		assignments: assignments,
		identity:    identity,
		lookup:      lookup,
		notifier:    nopNotifier{},
		domains:     newDomainRegistry(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply создает pending заявку. В домен кастинга не входит: повторную заявку
// отсекает частичный уникальный индекс (casting_id, user_id).
func (c *Coordinator) Apply(ctx context.Context, castingID, userID string, role models.RoleTag) (*models.Assignment, error) {
	ctx = logger.WithCastingID(ctx, castingID)

	declared, err := c.identity.DeclaredRole(ctx, userID)
	if err != nil {
		return nil, cancelled(err)
	}
	if role != "" && role != declared {
		return nil, apperrors.ErrRoleMismatch.WithDetails(map[string]string{
			"requested": string(role),
			"declared":  string(declared),
		})
	}

	casting, err := c.lookup.FindCasting(ctx, castingID)
	if err != nil {
		return nil, cancelled(err)
	}
	if _, ok := casting.Role(declared); !ok || !casting.IsRecruiting() {
		return nil, apperrors.ErrRoleNotRecruiting.WithDetails(map[string]string{
			"role":           string(declared),
			"casting_status": string(casting.Status),
		})
	}

	db := c.db.WithContext(ctx)
	_, err = c.assignments.FindOpenByCastingAndUser(db, castingID, userID)
	switch {
	case err == nil:
		return nil, apperrors.ErrAlreadyApplied
	case !errors.Is(err, apperrors.ErrAssignmentNotFound):
		return nil, cancelled(err)
	}

	assignment := &models.Assignment{
		CastingID: castingID,
		UserID:    userID,
		Role:      declared,
		Status:    models.AssignmentStatusPending,
	}
	if err := c.assignments.Create(db, assignment); err != nil {
		return nil, cancelled(err)
	}

	logger.CtxInfo(ctx, "assignment created", "assignment_id", assignment.ID, "role", declared)
	c.notify(StatusChange{
		AssignmentID: assignment.ID,
		CastingID:    castingID,
		UserID:       userID,
		Role:         declared,
		NewStatus:    models.AssignmentStatusPending,
		At:           assignment.CreatedAt,
	})
	return assignment, nil
}

// Accept переводит заявку в active, если у роли есть свободное место.
func (c *Coordinator) Accept(ctx context.Context, assignmentID string) (*models.Assignment, error) {
	return c.Transition(ctx, assignmentID, models.AssignmentStatusActive)
}

func (c *Coordinator) Reject(ctx context.Context, assignmentID string) (*models.Assignment, error) {
	return c.Transition(ctx, assignmentID, models.AssignmentStatusRejected)
}

// Withdraw - заявитель сам снимает заявку
func (c *Coordinator) Withdraw(ctx context.Context, assignmentID string) (*models.Assignment, error) {
	return c.Transition(ctx, assignmentID, models.AssignmentStatusRemoved)
}

// Remove - организатор снимает участника с кастинга
func (c *Coordinator) Remove(ctx context.Context, assignmentID string) (*models.Assignment, error) {
	return c.Transition(ctx, assignmentID, models.AssignmentStatusRemoved)
}

// Transition выполняет один переход внутри домена кастинга заявки.
func (c *Coordinator) Transition(ctx context.Context, assignmentID string, target models.AssignmentStatus) (*models.Assignment, error) {
	// Кастинг заявки не меняется, его можно узнать до входа в домен
	existing, err := c.assignments.FindByID(c.db.WithContext(ctx), assignmentID)
	if err != nil {
		return nil, cancelled(err)
	}

	var result *models.Assignment
	err = c.withCasting(ctx, existing.CastingID, func(tx *gorm.DB, casting *models.Casting) ([]StatusChange, error) {
		current, err := c.assignments.FindByID(tx, assignmentID)
		if err != nil {
			return nil, err
		}
		change, err := c.decideAndWrite(tx, casting, current, target)
		result = current
		if err != nil || change == nil {
			return nil, err
		}
		return []StatusChange{*change}, nil
	})
	if err != nil {
		logger.CtxDebug(logger.WithCastingID(ctx, existing.CastingID), "transition refused",
			"assignment_id", assignmentID, "target", target, "error", err)
		return nil, err
	}
	return result, nil
}

// BatchTransition применяет переходы одного кастинга за один вход в домен.
// Каждый элемент в своем savepoint: ошибка элемента не откатывает остальные.
func (c *Coordinator) BatchTransition(ctx context.Context, castingID string, items []TransitionRequest) ([]TransitionResult, error) {
	results := make([]TransitionResult, len(items))
	changed := 0

	err := c.withCasting(ctx, castingID, func(tx *gorm.DB, casting *models.Casting) ([]StatusChange, error) {
		var changes []StatusChange
		for i, item := range items {
			results[i] = TransitionResult{AssignmentID: item.AssignmentID}

			var change *StatusChange
			err := tx.Transaction(func(itemTx *gorm.DB) error {
				current, err := c.assignments.FindByID(itemTx, item.AssignmentID)
				if err != nil {
					return err
				}
				if current.CastingID != castingID {
					return apperrors.ErrAssignmentNotFound.WithDetails(map[string]string{
						"assignment_id": item.AssignmentID,
						"casting_id":    castingID,
					})
				}
				change, err = c.decideAndWrite(itemTx, casting, current, item.Target)
				if err == nil {
					results[i].Assignment = current
				}
				return err
			})
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				results[i].Err = err
				continue
			}
			if change != nil {
				changes = append(changes, *change)
			}
		}
		changed = len(changes)
		return changes, nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(logger.WithCastingID(ctx, castingID), "batch transition committed",
		"items", len(items), "changed", changed)
	return results, nil
}

// ResizeRole меняет лимит роли. Лимит ниже числа активных участников отклоняется,
// существующие active заявки не пересматриваются.
func (c *Coordinator) ResizeRole(ctx context.Context, castingID string, role models.RoleTag, capacity int) (*models.CastingRole, error) {
	if capacity < 1 {
		return nil, apperrors.ErrInvalidCapacity.WithDetails(map[string]int{"capacity": capacity})
	}

	var updated models.CastingRole
	err := c.withCasting(ctx, castingID, func(tx *gorm.DB, casting *models.Casting) ([]StatusChange, error) {
		declared, ok := casting.Role(role)
		if !ok {
			return nil, apperrors.ErrRoleNotFound.WithDetails(map[string]string{"role": string(role)})
		}

		active, err := c.assignments.CountActive(tx, castingID, role)
		if err != nil {
			return nil, err
		}
		if int64(capacity) < active {
			return nil, apperrors.ErrCapacityBelowActive.WithDetails(map[string]int64{
				"capacity": int64(capacity),
				"active":   active,
			})
		}

		if err := c.castings.UpdateRoleCapacity(tx, castingID, role, capacity); err != nil {
			return nil, err
		}
		updated = *declared
		updated.Capacity = capacity
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(logger.WithCastingID(ctx, castingID), "role capacity changed", "role", role, "capacity", capacity)
	return &updated, nil
}

func (c *Coordinator) GetAssignment(ctx context.Context, assignmentID string) (*models.Assignment, error) {
	return c.assignments.FindByID(c.db.WithContext(ctx), assignmentID)
}

func (c *Coordinator) ListByCasting(ctx context.Context, castingID string) ([]models.Assignment, error) {
	if _, err := c.lookup.FindCasting(ctx, castingID); err != nil {
		return nil, err
	}
	return c.assignments.ListByCasting(c.db.WithContext(ctx), castingID)
}

// withCasting входит в домен кастинга и выполняет fn в транзакции,
// начатой после входа и под блокировкой строки кастинга.
// События fn уходят в notifier после коммита, но до выхода из домена:
// так переходы одного кастинга попадают в очередь в порядке коммитов.
func (c *Coordinator) withCasting(ctx context.Context, castingID string, fn func(tx *gorm.DB, casting *models.Casting) ([]StatusChange, error)) error {
	ctx = logger.WithCastingID(ctx, castingID)

	acquireCtx := ctx
	if c.lockTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, c.lockTimeout)
		defer cancel()
	}

	release, err := c.domains.acquire(acquireCtx, castingID)
	if err != nil {
		logger.CtxWarn(ctx, "gave up waiting for casting", "error", err)
		return apperrors.ErrCancelled.WithError(err)
	}
	defer release()

	var changes []StatusChange
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		casting, err := c.castings.LockForUpdate(tx, castingID)
		if err != nil {
			return err
		}
		changes, err = fn(tx, casting)
		return err
	})
	if err != nil {
		return cancelled(err)
	}

	for _, change := range changes {
		c.notify(change)
	}
	return nil
}

// decideAndWrite пересчитывает занятость роли, проверяет переход и пишет его.
// nil без ошибки означает идемпотентный no-op.
func (c *Coordinator) decideAndWrite(tx *gorm.DB, casting *models.Casting, a *models.Assignment, target models.AssignmentStatus) (*StatusChange, error) {
	role, ok := casting.Role(a.Role)
	if !ok {
		return nil, apperrors.ErrRoleNotFound.WithDetails(map[string]string{"role": string(a.Role)})
	}

	var active int64
	if target == models.AssignmentStatusActive && a.Status != models.AssignmentStatusActive {
		n, err := c.assignments.CountActive(tx, casting.ID, a.Role)
		if err != nil {
			return nil, err
		}
		active = n
	}

	decision, err := Decide(a.Status, target, int(active), role.Capacity)
	if err != nil {
		return nil, err
	}
	if decision.NoOp {
		return nil, nil
	}

	if err := c.assignments.UpdateStatus(tx, a, decision.From, decision.To); err != nil {
		return nil, err
	}
	return &StatusChange{
		AssignmentID: a.ID,
		CastingID:    a.CastingID,
		UserID:       a.UserID,
		Role:         a.Role,
		OldStatus:    decision.From,
		NewStatus:    decision.To,
		At:           c.now(),
	}, nil
}

func (c *Coordinator) notify(change StatusChange) {
	c.notifier.Notify(change)
}

// cancelled сводит отмену контекста к ErrCancelled, остальные ошибки не трогает.
func cancelled(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if _, ok := apperrors.AsAppError(err); !ok {
			return apperrors.ErrCancelled.WithError(err)
		}
	}
	return err
}
