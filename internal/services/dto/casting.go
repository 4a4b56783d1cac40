package dto

import (
	"encoding/json"
	"time"

	"mwork_admission/internal/models"
)

// --- Casting Requests ---

type CreateCastingRequest struct {
	OrganizerID  string                 `json:"organizer_id" validate:"-"` // Устанавливается сервером
	Title        string                 `json:"title" validate:"required,min=3,max=100"`
	Description  string                 `json:"description" validate:"omitempty,max=5000"`
	City         string                 `json:"city" validate:"required"`
	CastingDate  *time.Time             `json:"casting_date"`
	Requirements map[string]interface{} `json:"requirements"`
	Publish      bool                   `json:"publish"`
	// 'dive' проверяет каждую роль
	Roles []CastingRoleRequest `json:"roles" validate:"required,min=1,max=4,unique=Role,dive"`
}

type CastingRoleRequest struct {
	Role     string `json:"role" validate:"required,is-role-tag"` // Кастомное правило
	Capacity int    `json:"capacity" validate:"required,min=1,max=10000"`
}

// ToModel собирает кастинг с ролями в порядке объявления
func (r *CreateCastingRequest) ToModel() (*models.Casting, error) {
	casting := &models.Casting{
		OrganizerID: r.OrganizerID,
		Title:       r.Title,
		Description: r.Description,
		City:        r.City,
		CastingDate: r.CastingDate,
		Status:      models.CastingStatusDraft,
	}
	if r.Publish {
		casting.Status = models.CastingStatusActive
	}
	if len(r.Requirements) > 0 {
		raw, err := json.Marshal(r.Requirements)
		if err != nil {
			return nil, err
		}
		casting.Requirements = raw
	}
	for i, role := range r.Roles {
		casting.Roles = append(casting.Roles, models.CastingRole{
			Role:     models.RoleTag(role.Role),
			Capacity: role.Capacity,
			Position: i + 1,
		})
	}
	return casting, nil
}
