package dto

import (
	"mwork_admission/internal/admission"
	"mwork_admission/internal/models"
	"mwork_admission/pkg/apperrors"
)

// --- Requests ---

type ApplyRequest struct {
	// Пусто - роль берется из профиля заявителя
	Role string `json:"role" validate:"omitempty,is-role-tag"`
}

type BatchTransitionRequest struct {
	Items []BatchTransitionItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type BatchTransitionItem struct {
	AssignmentID string `json:"assignment_id" validate:"required,uuid"`
	Status       string `json:"status" validate:"required,is-assignment-target"`
}

type ResizeRoleRequest struct {
	Capacity int `json:"capacity" validate:"required,min=1,max=10000"`
}

// --- Responses ---

type BatchItemResult struct {
	AssignmentID string              `json:"assignment_id"`
	Assignment   *models.Assignment  `json:"assignment,omitempty"`
	Error        *apperrors.AppError `json:"error,omitempty"`
}

type BatchTransitionResponse struct {
	CastingID string            `json:"casting_id"`
	Results   []BatchItemResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

type LedgerResponse struct {
	CastingID string                `json:"casting_id"`
	Roles     []admission.RoleUsage `json:"roles"`
}

type RoleLedgerResponse struct {
	CastingID string         `json:"casting_id"`
	Role      models.RoleTag `json:"role"`
	Active    int            `json:"active"`
	Capacity  int            `json:"capacity"`
}

type AssignmentListResponse struct {
	CastingID   string              `json:"casting_id"`
	Assignments []models.Assignment `json:"assignments"`
	Total       int                 `json:"total"`
}
