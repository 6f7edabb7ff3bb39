package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub-backend/internal/domains/destination/model"
	"stayhub-backend/internal/domains/destination/service"
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

// List handles GET /api/v1/destinations
func (h *Handler) List(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)
	filter := crud.FilterFromQuery(c)
	if country := c.Query("country"); country != "" {
		filter = filter.WithCondition("country", country)
	}

	items, total, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Page:  crud.PageOf(filter),
		Limit: filter.Limit,
		Total: total,
	})
}

// ListFeatured handles GET /api/v1/destinations/featured
func (h *Handler) ListFeatured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	items, err := h.service.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// Search handles GET /api/v1/destinations/search?q=
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Missing search query")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.service.SearchFullText(c.Request.Context(), query, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// GetByID handles GET /api/v1/destinations/:id (accepts id or slug)
func (h *Handler) GetByID(c *gin.Context) {
	param := c.Param("id")

	if id, err := uuid.Parse(param); err == nil {
		dest, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, dest)
		return
	}

	dest, err := h.service.GetBySlug(c.Request.Context(), param)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dest)
}

// Create handles POST /api/v1/destinations (admin)
func (h *Handler) Create(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	req, ok := response.Bind[model.CreateDestinationRequest](c)
	if !ok {
		return
	}

	dest, err := h.service.Create(c.Request.Context(), act, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dest)
}

// Update handles PUT /api/v1/destinations/:id (admin)
func (h *Handler) Update(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid destination ID")
		return
	}

	req, ok := response.Bind[model.UpdateDestinationRequest](c)
	if !ok {
		return
	}

	dest, err := h.service.Update(c.Request.Context(), act, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dest)
}

// Delete handles DELETE /api/v1/destinations/:id (admin, soft delete)
func (h *Handler) Delete(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid destination ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Destination deleted"})
}

// Restore handles POST /api/v1/destinations/:id/restore (admin)
func (h *Handler) Restore(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid destination ID")
		return
	}

	if err := h.service.Restore(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Destination restored"})
}
