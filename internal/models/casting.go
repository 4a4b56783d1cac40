package models

import (
	"time"

	"gorm.io/datatypes"
)

type Casting struct {
	BaseModel
	OrganizerID  string         `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `json:"description"`
	City         string         `json:"city"`
	CastingDate  *time.Time     `json:"casting_date,omitempty"`
	Requirements datatypes.JSON `gorm:"type:jsonb" json:"requirements,omitempty"` // ✅ JSONB, свободные требования к ролям
	Status       CastingStatus  `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	// Relations
	Roles []CastingRole `gorm:"foreignKey:CastingID" json:"roles"`
}

// CastingRole - объявленная роль кастинга с лимитом мест.
type CastingRole struct {
	BaseModel
	CastingID string  `gorm:"type:uuid;not null;uniqueIndex:idx_casting_roles_casting_role" json:"casting_id"`
	Role      RoleTag `gorm:"type:varchar(20);not null;uniqueIndex:idx_casting_roles_casting_role" json:"role"`
	Capacity  int     `gorm:"not null;check:capacity >= 1" json:"capacity"`
	Position  int     `gorm:"not null;default:0" json:"position"`
}

// Role ищет объявленную роль по тегу
func (c *Casting) Role(tag RoleTag) (*CastingRole, bool) {
	for i := range c.Roles {
		if c.Roles[i].Role == tag {
			return &c.Roles[i], true
		}
	}
	return nil, false
}

// IsRecruiting - кастинг принимает заявки
func (c *Casting) IsRecruiting() bool {
	return c.Status == CastingStatusActive
}
