package handlers

import (
	"net/http"

	"mwork_admission/internal/middleware"
	"mwork_admission/internal/models"
	"mwork_admission/internal/services"
	"mwork_admission/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CastingHandler struct {
	*BaseHandler
	castingService services.CastingService
}

func NewCastingHandler(base *BaseHandler, castingService services.CastingService) *CastingHandler {
	return &CastingHandler{
		BaseHandler:    base,
		castingService: castingService,
	}
}

func (h *CastingHandler) RegisterRoutes(r *gin.RouterGroup) {
	castings := r.Group("/castings")
	{
		castings.POST("", middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin), h.CreateCasting)
		castings.GET("/:castingId", h.GetCasting)
		castings.POST("/:castingId/publish", h.PublishCasting)
		castings.POST("/:castingId/close", h.CloseCasting)
	}
}

func (h *CastingHandler) CreateCasting(c *gin.Context) {
	requester, ok := h.GetRequester(c)
	if !ok {
		return
	}

	var req dto.CreateCastingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	casting, err := h.castingService.CreateCasting(c.Request.Context(), requester, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, casting)
}

func (h *CastingHandler) GetCasting(c *gin.Context) {
	casting, err := h.castingService.GetCasting(c.Request.Context(), c.Param("castingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, casting)
}

func (h *CastingHandler) PublishCasting(c *gin.Context) {
	requester, ok := h.GetRequester(c)
	if !ok {
		return
	}

	casting, err := h.castingService.PublishCasting(c.Request.Context(), requester, c.Param("castingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, casting)
}

func (h *CastingHandler) CloseCasting(c *gin.Context) {
	requester, ok := h.GetRequester(c)
	if !ok {
		return
	}

	casting, err := h.castingService.CloseCasting(c.Request.Context(), requester, c.Param("castingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, casting)
}
