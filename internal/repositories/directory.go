package repositories

import (
	"context"

	"mwork_admission/internal/models"
	"mwork_admission/pkg/apperrors"

	"gorm.io/gorm"
)

// Directory - справочник пользователей и кастингов для координатора допуска.
type Directory struct {
	db       *gorm.DB
	users    UserRepository
	castings CastingRepository
}

func NewDirectory(db *gorm.DB, users UserRepository, castings CastingRepository) *Directory {
	return &Directory{db: db, users: users, castings: castings}
}

// DeclaredRole возвращает роль, под которой пользователь подает заявки.
func (d *Directory) DeclaredRole(ctx context.Context, userID string) (models.RoleTag, error) {
	user, err := d.users.FindByID(d.db.WithContext(ctx), userID)
	if err != nil {
		return "", err
	}
	tag, ok := user.Role.TalentRole()
	if !ok {
		return "", apperrors.ErrNotApplicant.WithDetails(map[string]string{"role": string(user.Role)})
	}
	return tag, nil
}

func (d *Directory) FindCasting(ctx context.Context, castingID string) (*models.Casting, error) {
	return d.castings.FindByID(d.db.WithContext(ctx), castingID)
}
