package admission

import (
	"context"
	"time"

	"mwork_admission/internal/models"
)

// IdentityLookup отдает роль, под которой пользователь подает заявки.
type IdentityLookup interface {
	DeclaredRole(ctx context.Context, userID string) (models.RoleTag, error)
}

// CastingLookup отдает кастинг вместе с объявленными ролями.
type CastingLookup interface {
	FindCasting(ctx context.Context, castingID string) (*models.Casting, error)
}

// StatusChange - зафиксированный переход заявки. OldStatus пуст для новой заявки.
type StatusChange struct {
	AssignmentID string                  `json:"assignment_id"`
	CastingID    string                  `json:"casting_id"`
	UserID       string                  `json:"user_id"`
	Role         models.RoleTag          `json:"role"`
	OldStatus    models.AssignmentStatus `json:"old_status"`
	NewStatus    models.AssignmentStatus `json:"new_status"`
	At           time.Time               `json:"at"`
}

// Notifier получает события после коммита. Notify не должен блокировать.
type Notifier interface {
	Notify(change StatusChange)
}

type nopNotifier struct{}

func (nopNotifier) Notify(StatusChange) {}
