package handlers

import (
	"context"
	"net/http"

	"mwork_admission/internal/models"
	"mwork_admission/internal/services"
	"mwork_admission/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	*BaseHandler
	admissionService services.AdmissionService
}

func NewAssignmentHandler(base *BaseHandler, admissionService services.AdmissionService) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:      base,
		admissionService: admissionService,
	}
}

// RegisterRoutes ожидает группу, уже закрытую AuthMiddleware
func (h *AssignmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	castings := r.Group("/castings/:castingId")
	{
		// Заявитель
		castings.POST("/applications", h.Apply)

		// Организатор
		castings.GET("/assignments", h.ListAssignments)
		castings.POST("/assignments/batch", h.BatchTransition)
		castings.PUT("/roles/:role/capacity", h.ResizeRole)

		// Леджер доступен всем аутентифицированным
		castings.GET("/ledger", h.GetLedger)
		castings.GET("/roles/:role/ledger", h.GetRoleLedger)
	}

	assignments := r.Group("/assignments/:assignmentId")
	{
		assignments.POST("/accept", h.Accept)
		assignments.POST("/reject", h.Reject)
		assignments.POST("/remove", h.Remove)
		assignments.POST("/withdraw", h.Withdraw)
	}
}

func (h *AssignmentHandler) Apply(c *gin.Context) {
	requester, ok := h.GetRequester(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	// Тело необязательно: без него роль берется из профиля
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	assignment, err := h.admissionService.Apply(c.Request.Context(), requester, c.Param("castingId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Accept(c *gin.Context) {
	h.transition(c, h.admissionService.Accept)
}

func (h *AssignmentHandler) Reject(c *gin.Context) {
	h.transition(c, h.admissionService.Reject)
}

func (h *AssignmentHandler) Remove(c *gin.Context) {
	h.transition(c, h.admissionService.Remove)
}

func (h *AssignmentHandler) Withdraw(c *gin.Context) {
	h.transition(c, h.admissionService.Withdraw)
}

type transitionFunc func(ctx context.Context, requester services.Requester, assignmentID string) (*models.Assignment, error)

func (h *AssignmentHandler) transition(c *gin.Context, fn transitionFunc) {
	requester, ok := h.GetRequester(c)
	if !ok {
		return
	}

	assignment, err := fn(c.Request.Context(), requester, c.Param("assignmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) BatchTransition(c *gin.Context) {
	requester, ok := h.GetRequester(c)
	if !ok {
		return
	}

	var req dto.BatchTransitionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.admissionService.BatchTransition(c.Request.Context(), requester, c.Param("castingId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AssignmentHandler) ResizeRole(c *gin.Context) {
	requester, ok := h.GetRequester(c)
	if !ok {
		return
	}

	var req dto.ResizeRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	role, err := h.admissionService.ResizeRole(c.Request.Context(), requester, c.Param("castingId"), models.RoleTag(c.Param("role")), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, role)
}

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	requester, ok := h.GetRequester(c)
	if !ok {
		return
	}

	resp, err := h.admissionService.ListAssignments(c.Request.Context(), requester, c.Param("castingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AssignmentHandler) GetLedger(c *gin.Context) {
	resp, err := h.admissionService.Ledger(c.Request.Context(), c.Param("castingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AssignmentHandler) GetRoleLedger(c *gin.Context) {
	resp, err := h.admissionService.RoleLedger(c.Request.Context(), c.Param("castingId"), models.RoleTag(c.Param("role")))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
