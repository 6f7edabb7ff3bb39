package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub-backend/internal/domains/tag/model"
	"stayhub-backend/internal/domains/tag/service"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/middleware"
	"stayhub-backend/internal/shared/response"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// List handles GET /api/v1/tags
func (h *Handler) List(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)
	filter := crud.FilterFromQuery(c)

	tags, total, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, tags, &response.Meta{
		Page:  crud.PageOf(filter),
		Limit: filter.Limit,
		Total: total,
	})
}

// GetPopular handles GET /api/v1/tags/popular
func (h *Handler) GetPopular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tags, err := h.service.GetPopular(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tags)
}

// Create handles POST /api/v1/tags (admin)
func (h *Handler) Create(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	req, ok := response.Bind[model.CreateTagRequest](c)
	if !ok {
		return
	}

	tag, err := h.service.Create(c.Request.Context(), act, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tag)
}

// Delete handles DELETE /api/v1/tags/:id (admin)
func (h *Handler) Delete(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	if err := h.service.HardDelete(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Tag deleted"})
}

// ListForEntity handles GET /api/v1/tags/:entityType/:entityId
func (h *Handler) ListForEntity(c *gin.Context) {
	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		response.BadRequest(c, "Invalid entity ID")
		return
	}

	tags, err := h.service.ListForEntity(c.Request.Context(), c.Param("entityType"), entityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tags)
}

// Attach handles PUT /api/v1/tags/:entityType/:entityId/:tagId
func (h *Handler) Attach(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		response.BadRequest(c, "Invalid entity ID")
		return
	}
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	if err := h.service.Attach(c.Request.Context(), act, c.Param("entityType"), entityID, tagID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Tag attached"})
}

// Detach handles DELETE /api/v1/tags/:entityType/:entityId/:tagId
func (h *Handler) Detach(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		response.BadRequest(c, "Invalid entity ID")
		return
	}
	tagID, err := uuid.Parse(c.Param("tagId"))
	if err != nil {
		response.BadRequest(c, "Invalid tag ID")
		return
	}

	if err := h.service.Detach(c.Request.Context(), act, c.Param("entityType"), entityID, tagID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Tag detached"})
}
