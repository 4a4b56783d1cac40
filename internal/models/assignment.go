package models

// Assignment - отношение одного заявителя к одному кастингу.
// Не удаляется физически: снятие с кастинга - статус removed.
type Assignment struct {
	BaseModel
	CastingID string           `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_open_casting_user,where:status <> 'removed';index:idx_assignments_ledger,priority:1" json:"casting_id"`
	UserID    string           `gorm:"type:uuid;not null;uniqueIndex:idx_assignments_open_casting_user,where:status <> 'removed'" json:"user_id"`
	Role      RoleTag          `gorm:"type:varchar(20);not null;index:idx_assignments_ledger,priority:2" json:"role"`
	Status    AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_assignments_ledger,priority:3" json:"status"`
}

// IsRemoved - терминальное состояние
func (a *Assignment) IsRemoved() bool {
	return a.Status == AssignmentStatusRemoved
}
