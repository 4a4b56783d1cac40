package services

import (
	"context"

	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"
	"mwork_admission/internal/services/dto"
	"mwork_admission/pkg/apperrors"

	"gorm.io/gorm"
)

type CastingService interface {
	CreateCasting(ctx context.Context, requester Requester, req *dto.CreateCastingRequest) (*models.Casting, error)
	GetCasting(ctx context.Context, castingID string) (*models.Casting, error)
	PublishCasting(ctx context.Context, requester Requester, castingID string) (*models.Casting, error)
	CloseCasting(ctx context.Context, requester Requester, castingID string) (*models.Casting, error)
}

type castingService struct {
	db          *gorm.DB
	castingRepo repositories.CastingRepository
}

func NewCastingService(db *gorm.DB, castingRepo repositories.CastingRepository) CastingService {
	return &castingService{db: db, castingRepo: castingRepo}
}

func (s *castingService) CreateCasting(ctx context.Context, requester Requester, req *dto.CreateCastingRequest) (*models.Casting, error) {
	if requester.Role != models.UserRoleEmployer && !requester.isAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	req.OrganizerID = requester.UserID
	casting, err := req.ToModel()
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid requirements")
	}

	if err := s.castingRepo.Create(s.db.WithContext(ctx), casting); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return casting, nil
}

func (s *castingService) GetCasting(ctx context.Context, castingID string) (*models.Casting, error) {
	return s.castingRepo.FindByID(s.db.WithContext(ctx), castingID)
}

func (s *castingService) PublishCasting(ctx context.Context, requester Requester, castingID string) (*models.Casting, error) {
	return s.changeStatus(ctx, requester, castingID, models.CastingStatusDraft, models.CastingStatusActive)
}

// CloseCasting останавливает набор. Уже принятые участники остаются.
func (s *castingService) CloseCasting(ctx context.Context, requester Requester, castingID string) (*models.Casting, error) {
	return s.changeStatus(ctx, requester, castingID, models.CastingStatusActive, models.CastingStatusClosed)
}

func (s *castingService) changeStatus(ctx context.Context, requester Requester, castingID string, from, to models.CastingStatus) (*models.Casting, error) {
	db := s.db.WithContext(ctx)
	casting, err := s.castingRepo.FindByID(db, castingID)
	if err != nil {
		return nil, err
	}

	if casting.OrganizerID != requester.UserID && !requester.isAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if casting.Status != from {
		return nil, apperrors.ErrInvalidCastingStatus.WithDetails(map[string]string{
			"status":   string(casting.Status),
			"required": string(from),
		})
	}

	if err := s.castingRepo.UpdateStatus(db, castingID, from, to); err != nil {
		return nil, err
	}
	casting.Status = to
	return casting, nil
}
