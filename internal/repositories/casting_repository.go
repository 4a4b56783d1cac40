package repositories

import (
	"errors"
	"time"

	"mwork_admission/internal/models"
	"mwork_admission/pkg/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы принимают db первым аргументом: вызывающий передает либо пул, либо открытую транзакцию.
type CastingRepository interface {
	Create(db *gorm.DB, casting *models.Casting) error
	FindByID(db *gorm.DB, id string) (*models.Casting, error)
	// LockForUpdate берет строчную блокировку кастинга (SELECT ... FOR UPDATE) внутри транзакции
	LockForUpdate(db *gorm.DB, id string) (*models.Casting, error)
	// UpdateStatus меняет статус только из from; иначе ErrInvalidCastingStatus
	UpdateStatus(db *gorm.DB, id string, from, to models.CastingStatus) error
	UpdateRoleCapacity(db *gorm.DB, castingID string, role models.RoleTag, capacity int) error
	CloseExpired(db *gorm.DB, now time.Time) (int64, error)
}

type CastingRepositoryImpl struct{}

func NewCastingRepository() CastingRepository {
	return &CastingRepositoryImpl{}
}

func (r *CastingRepositoryImpl) Create(db *gorm.DB, casting *models.Casting) error {
	for i := range casting.Roles {
		if casting.Roles[i].Position == 0 {
			casting.Roles[i].Position = i + 1
		}
	}
	return db.Create(casting).Error
}

func (r *CastingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Casting, error) {
	var casting models.Casting
	err := db.Preload("Roles", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&casting, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrCastingNotFound)
	}
	return &casting, nil
}

func (r *CastingRepositoryImpl) LockForUpdate(db *gorm.DB, id string) (*models.Casting, error) {
	var casting models.Casting
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&casting, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrCastingNotFound)
	}

	// Роли читаем уже под блокировкой кастинга
	if err := db.Where("casting_id = ?", id).Order("position ASC").Find(&casting.Roles).Error; err != nil {
		return nil, err
	}
	return &casting, nil
}

func (r *CastingRepositoryImpl) UpdateStatus(db *gorm.DB, id string, from, to models.CastingStatus) error {
	result := db.Model(&models.Casting{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Статус успели сменить между чтением и записью, либо кастинга нет
		if _, err := r.FindByID(db, id); err != nil {
			return err
		}
		return apperrors.ErrInvalidCastingStatus.WithDetails(map[string]string{"required": string(from)})
	}
	return nil
}

func (r *CastingRepositoryImpl) UpdateRoleCapacity(db *gorm.DB, castingID string, role models.RoleTag, capacity int) error {
	result := db.Model(&models.CastingRole{}).
		Where("casting_id = ? AND role = ?", castingID, role).
		Updates(map[string]interface{}{
			"capacity":   capacity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRoleNotFound
	}
	return nil
}

// CloseExpired закрывает активные кастинги, дата которых прошла
func (r *CastingRepositoryImpl) CloseExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Casting{}).
		Where("status = ? AND casting_date IS NOT NULL AND casting_date < ?", models.CastingStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.CastingStatusClosed,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func translateNotFound(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
