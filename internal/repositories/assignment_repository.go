package repositories

import (
	"errors"
	"time"

	"mwork_admission/internal/models"
	"mwork_admission/pkg/apperrors"

	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(db *gorm.DB, assignment *models.Assignment) error
	FindByID(db *gorm.DB, id string) (*models.Assignment, error)
	FindOpenByCastingAndUser(db *gorm.DB, castingID, userID string) (*models.Assignment, error)
	ListByCasting(db *gorm.DB, castingID string) ([]models.Assignment, error)

	CountActive(db *gorm.DB, castingID string, role models.RoleTag) (int64, error)
	CountByStatus(db *gorm.DB, castingID string) ([]StatusCount, error)

	// UpdateStatus меняет статус только если текущий статус равен from
	UpdateStatus(db *gorm.DB, assignment *models.Assignment, from, to models.AssignmentStatus) error
}

// StatusCount - строка агрегата для леджера
type StatusCount struct {
	Role   models.RoleTag
	Status models.AssignmentStatus
	Count  int64
}

type AssignmentRepositoryImpl struct{}

func NewAssignmentRepository() AssignmentRepository {
	return &AssignmentRepositoryImpl{}
}

func (r *AssignmentRepositoryImpl) Create(db *gorm.DB, assignment *models.Assignment) error {
	err := db.Create(assignment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrAlreadyApplied
	}
	return err
}

func (r *AssignmentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := db.First(&assignment, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, apperrors.ErrAssignmentNotFound)
	}
	return &assignment, nil
}

func (r *AssignmentRepositoryImpl) FindOpenByCastingAndUser(db *gorm.DB, castingID, userID string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := db.Where("casting_id = ? AND user_id = ? AND status <> ?", castingID, userID, models.AssignmentStatusRemoved).
		First(&assignment).Error
	if err != nil {
		return nil, translateNotFound(err, apperrors.ErrAssignmentNotFound)
	}
	return &assignment, nil
}

func (r *AssignmentRepositoryImpl) ListByCasting(db *gorm.DB, castingID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := db.Where("casting_id = ?", castingID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepositoryImpl) CountActive(db *gorm.DB, castingID string, role models.RoleTag) (int64, error) {
	var count int64
	err := db.Model(&models.Assignment{}).
		Where("casting_id = ? AND role = ? AND status = ?", castingID, role, models.AssignmentStatusActive).
		Count(&count).Error
	return count, err
}

func (r *AssignmentRepositoryImpl) CountByStatus(db *gorm.DB, castingID string) ([]StatusCount, error) {
	var rows []StatusCount
	err := db.Model(&models.Assignment{}).
		Select("role, status, COUNT(*) AS count").
		Where("casting_id = ?", castingID).
		Group("role, status").
		Scan(&rows).Error
	return rows, err
}

func (r *AssignmentRepositoryImpl) UpdateStatus(db *gorm.DB, assignment *models.Assignment, from, to models.AssignmentStatus) error {
	now := time.Now()
	result := db.Model(&models.Assignment{}).
		Where("id = ? AND status = ?", assignment.ID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": now,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyApplied
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Статус сменился мимо домена кастинга
		return apperrors.ErrInvalidTransition.WithDetails(map[string]string{
			"assignment_id": assignment.ID,
			"expected":      string(from),
		})
	}
	assignment.Status = to
	assignment.UpdatedAt = now
	return nil
}
