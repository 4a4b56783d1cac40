package models

type UserStatus string
type UserRole string
type RoleTag string
type CastingStatus string
type AssignmentStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	// Талант-роли: такие пользователи подают заявки
	UserRoleModel        UserRole = "model"
	UserRolePhotographer UserRole = "photographer"
	UserRoleDesigner     UserRole = "designer"
	UserRoleVolunteer    UserRole = "volunteer"
	// Организаторы и администраторы
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	RoleModel        RoleTag = "model"
	RolePhotographer RoleTag = "photographer"
	RoleDesigner     RoleTag = "designer"
	RoleVolunteer    RoleTag = "volunteer"

	CastingStatusDraft     CastingStatus = "draft"
	CastingStatusActive    CastingStatus = "active"
	CastingStatusClosed    CastingStatus = "closed"
	CastingStatusCancelled CastingStatus = "cancelled"
	CastingStatusFinished  CastingStatus = "finished"

	AssignmentStatusPending  AssignmentStatus = "pending"
	AssignmentStatusActive   AssignmentStatus = "active"
	AssignmentStatusRejected AssignmentStatus = "rejected"
	AssignmentStatusRemoved  AssignmentStatus = "removed"
)

var roleTags = map[RoleTag]struct{}{
	RoleModel:        {},
	RolePhotographer: {},
	RoleDesigner:     {},
	RoleVolunteer:    {},
}

// Valid - тег входит в набор ролей кастинга
func (r RoleTag) Valid() bool {
	_, ok := roleTags[r]
	return ok
}

// TalentRole возвращает тег роли, на которую пользователь может подаваться.
func (r UserRole) TalentRole() (RoleTag, bool) {
	tag := RoleTag(r)
	return tag, tag.Valid()
}

// Valid - известный статус заявки
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusActive, AssignmentStatusRejected, AssignmentStatusRemoved:
		return true
	}
	return false
}
