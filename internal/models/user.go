package models

type User struct {
	BaseModel
	Email  string     `gorm:"uniqueIndex;not null" json:"email"`
	Name   string     `json:"name"`
	Role   UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
}
