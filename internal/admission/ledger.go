package admission

import (
	"context"

	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"
	"mwork_admission/pkg/apperrors"

	"gorm.io/gorm"
)

// Ledger - чтение занятости ролей. Никогда не входит в домен кастинга:
// ответ может устареть сразу после возврата.
type Ledger struct {
	db          *gorm.DB
	castings    repositories.CastingRepository
	assignments repositories.AssignmentRepository
}

// RoleUsage - сводка по одной роли кастинга
type RoleUsage struct {
	Role     models.RoleTag `json:"role"`
	Capacity int            `json:"capacity"`
	Active   int            `json:"active"`
	Pending  int            `json:"pending"`
	Rejected int            `json:"rejected"`
	Free     int            `json:"free"`
}

func NewLedger(db *gorm.DB, castings repositories.CastingRepository, assignments repositories.AssignmentRepository) *Ledger {
	return &Ledger{db: db, castings: castings, assignments: assignments}
}

func (l *Ledger) ActiveCount(ctx context.Context, castingID string, role models.RoleTag) (int, error) {
	db := l.db.WithContext(ctx)
	if _, err := l.declaredRole(db, castingID, role); err != nil {
		return 0, err
	}
	n, err := l.assignments.CountActive(db, castingID, role)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return int(n), nil
}

func (l *Ledger) CapacityOf(ctx context.Context, castingID string, role models.RoleTag) (int, error) {
	r, err := l.declaredRole(l.db.WithContext(ctx), castingID, role)
	if err != nil {
		return 0, err
	}
	return r.Capacity, nil
}

// Snapshot - занятость всех ролей кастинга в порядке объявления
func (l *Ledger) Snapshot(ctx context.Context, castingID string) ([]RoleUsage, error) {
	db := l.db.WithContext(ctx)

	casting, err := l.castings.FindByID(db, castingID)
	if err != nil {
		return nil, err
	}
	counts, err := l.assignments.CountByStatus(db, castingID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	usage := make([]RoleUsage, 0, len(casting.Roles))
	index := make(map[models.RoleTag]int, len(casting.Roles))
	for _, r := range casting.Roles {
		index[r.Role] = len(usage)
		usage = append(usage, RoleUsage{Role: r.Role, Capacity: r.Capacity})
	}

	for _, c := range counts {
		i, ok := index[c.Role]
		if !ok {
			continue
		}
		switch c.Status {
		case models.AssignmentStatusActive:
			usage[i].Active = int(c.Count)
		case models.AssignmentStatusPending:
			usage[i].Pending = int(c.Count)
		case models.AssignmentStatusRejected:
			usage[i].Rejected = int(c.Count)
		}
	}

	for i := range usage {
		if free := usage[i].Capacity - usage[i].Active; free > 0 {
			usage[i].Free = free
		}
	}
	return usage, nil
}

func (l *Ledger) declaredRole(db *gorm.DB, castingID string, role models.RoleTag) (*models.CastingRole, error) {
	casting, err := l.castings.FindByID(db, castingID)
	if err != nil {
		return nil, err
	}
	r, ok := casting.Role(role)
	if !ok {
		return nil, apperrors.ErrRoleNotFound.WithDetails(map[string]string{"role": string(role)})
	}
	return r, nil
}
