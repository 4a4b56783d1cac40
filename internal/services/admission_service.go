package services

import (
	"context"

	"mwork_admission/internal/admission"
	"mwork_admission/internal/models"
	"mwork_admission/internal/services/dto"
	"mwork_admission/pkg/apperrors"
)

// Requester - аутентифицированный пользователь запроса
type Requester struct {
	UserID string
	Role   models.UserRole
}

func (r Requester) isAdmin() bool {
	return r.Role == models.UserRoleAdmin
}

type AdmissionService interface {
	Apply(ctx context.Context, requester Requester, castingID string, req *dto.ApplyRequest) (*models.Assignment, error)
	Accept(ctx context.Context, requester Requester, assignmentID string) (*models.Assignment, error)
	Reject(ctx context.Context, requester Requester, assignmentID string) (*models.Assignment, error)
	Remove(ctx context.Context, requester Requester, assignmentID string) (*models.Assignment, error)
	Withdraw(ctx context.Context, requester Requester, assignmentID string) (*models.Assignment, error)
	BatchTransition(ctx context.Context, requester Requester, castingID string, req *dto.BatchTransitionRequest) (*dto.BatchTransitionResponse, error)
	ResizeRole(ctx context.Context, requester Requester, castingID string, role models.RoleTag, req *dto.ResizeRoleRequest) (*models.CastingRole, error)

	Ledger(ctx context.Context, castingID string) (*dto.LedgerResponse, error)
	RoleLedger(ctx context.Context, castingID string, role models.RoleTag) (*dto.RoleLedgerResponse, error)
	ListAssignments(ctx context.Context, requester Requester, castingID string) (*dto.AssignmentListResponse, error)
}

type admissionService struct {
	coordinator *admission.Coordinator
	ledger      *admission.Ledger
	castings    admission.CastingLookup
}

func NewAdmissionService(coordinator *admission.Coordinator, ledger *admission.Ledger, castings admission.CastingLookup) AdmissionService {
	return &admissionService{
		coordinator: coordinator,
		ledger:      ledger,
		castings:    castings,
	}
}

func (s *admissionService) Apply(ctx context.Context, requester Requester, castingID string, req *dto.ApplyRequest) (*models.Assignment, error) {
	return s.coordinator.Apply(ctx, castingID, requester.UserID, models.RoleTag(req.Role))
}

func (s *admissionService) Accept(ctx context.Context, requester Requester, assignmentID string) (*models.Assignment, error) {
	if err := s.authorizeOrganizerOf(ctx, requester, assignmentID); err != nil {
		return nil, err
	}
	return s.coordinator.Accept(ctx, assignmentID)
}

func (s *admissionService) Reject(ctx context.Context, requester Requester, assignmentID string) (*models.Assignment, error) {
	if err := s.authorizeOrganizerOf(ctx, requester, assignmentID); err != nil {
		return nil, err
	}
	return s.coordinator.Reject(ctx, assignmentID)
}

func (s *admissionService) Remove(ctx context.Context, requester Requester, assignmentID string) (*models.Assignment, error) {
	if err := s.authorizeOrganizerOf(ctx, requester, assignmentID); err != nil {
		return nil, err
	}
	return s.coordinator.Remove(ctx, assignmentID)
}

func (s *admissionService) Withdraw(ctx context.Context, requester Requester, assignmentID string) (*models.Assignment, error) {
	assignment, err := s.coordinator.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	// Снять заявку может только сам заявитель
	if assignment.UserID != requester.UserID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.coordinator.Withdraw(ctx, assignmentID)
}

func (s *admissionService) BatchTransition(ctx context.Context, requester Requester, castingID string, req *dto.BatchTransitionRequest) (*dto.BatchTransitionResponse, error) {
	if err := s.authorizeOrganizer(ctx, requester, castingID); err != nil {
		return nil, err
	}

	items := make([]admission.TransitionRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, admission.TransitionRequest{
			AssignmentID: item.AssignmentID,
			Target:       models.AssignmentStatus(item.Status),
		})
	}

	results, err := s.coordinator.BatchTransition(ctx, castingID, items)
	if err != nil {
		return nil, err
	}

	resp := &dto.BatchTransitionResponse{
		CastingID: castingID,
		Results:   make([]dto.BatchItemResult, 0, len(results)),
	}
	for _, r := range results {
		item := dto.BatchItemResult{AssignmentID: r.AssignmentID, Assignment: r.Assignment}
		if r.Err != nil {
			appErr, ok := apperrors.AsAppError(r.Err)
			if !ok {
				appErr = apperrors.InternalError(r.Err)
			}
			item.Error = appErr
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, item)
	}
	return resp, nil
}

func (s *admissionService) ResizeRole(ctx context.Context, requester Requester, castingID string, role models.RoleTag, req *dto.ResizeRoleRequest) (*models.CastingRole, error) {
	if err := s.authorizeOrganizer(ctx, requester, castingID); err != nil {
		return nil, err
	}
	return s.coordinator.ResizeRole(ctx, castingID, role, req.Capacity)
}

func (s *admissionService) Ledger(ctx context.Context, castingID string) (*dto.LedgerResponse, error) {
	usage, err := s.ledger.Snapshot(ctx, castingID)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerResponse{CastingID: castingID, Roles: usage}, nil
}

func (s *admissionService) RoleLedger(ctx context.Context, castingID string, role models.RoleTag) (*dto.RoleLedgerResponse, error) {
	active, err := s.ledger.ActiveCount(ctx, castingID, role)
	if err != nil {
		return nil, err
	}
	capacity, err := s.ledger.CapacityOf(ctx, castingID, role)
	if err != nil {
		return nil, err
	}
	return &dto.RoleLedgerResponse{
		CastingID: castingID,
		Role:      role,
		Active:    active,
		Capacity:  capacity,
	}, nil
}

func (s *admissionService) ListAssignments(ctx context.Context, requester Requester, castingID string) (*dto.AssignmentListResponse, error) {
	if err := s.authorizeOrganizer(ctx, requester, castingID); err != nil {
		return nil, err
	}
	list, err := s.coordinator.ListByCasting(ctx, castingID)
	if err != nil {
		return nil, err
	}
	return &dto.AssignmentListResponse{CastingID: castingID, Assignments: list, Total: len(list)}, nil
}

func (s *admissionService) authorizeOrganizerOf(ctx context.Context, requester Requester, assignmentID string) error {
	assignment, err := s.coordinator.GetAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}
	return s.authorizeOrganizer(ctx, requester, assignment.CastingID)
}

func (s *admissionService) authorizeOrganizer(ctx context.Context, requester Requester, castingID string) error {
	casting, err := s.castings.FindCasting(ctx, castingID)
	if err != nil {
		return err
	}
	if casting.OrganizerID != requester.UserID && !requester.isAdmin() {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}
