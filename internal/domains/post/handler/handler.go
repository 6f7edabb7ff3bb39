package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub-backend/internal/domains/post/model"
	"stayhub-backend/internal/domains/post/service"
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

// List handles GET /api/v1/posts (optional ?category=)
func (h *Handler) List(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)
	filter := crud.FilterFromQuery(c)
	if category := c.Query("category"); category != "" {
		filter = filter.WithCondition("category", category)
	}

	posts, total, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{
		Page:  crud.PageOf(filter),
		Limit: filter.Limit,
		Total: total,
	})
}

// Search handles GET /api/v1/posts/search?q=
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

// GetByID handles GET /api/v1/posts/:id (accepts id or slug)
func (h *Handler) GetByID(c *gin.Context) {
	param := c.Param("id")

	if id, err := uuid.Parse(param); err == nil {
		post, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, post)
		return
	}

	post, err := h.service.GetBySlug(c.Request.Context(), param)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// ListByAuthor handles GET /api/v1/users/:id/posts
func (h *Handler) ListByAuthor(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	filter := crud.FilterFromQuery(c)
	posts, total, err := h.service.ListByAuthor(c.Request.Context(), act, id, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, posts, &response.Meta{
		Page:  crud.PageOf(filter),
		Limit: filter.Limit,
		Total: total,
	})
}

// Create handles POST /api/v1/posts
func (h *Handler) Create(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	req, ok := response.Bind[model.CreatePostRequest](c)
	if !ok {
		return
	}

	post, err := h.service.Create(c.Request.Context(), act, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, post)
}

// Update handles PUT /api/v1/posts/:id
func (h *Handler) Update(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	req, ok := response.Bind[model.UpdatePostRequest](c)
	if !ok {
		return
	}

	post, err := h.service.Update(c.Request.Context(), act, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post)
}

// Delete handles DELETE /api/v1/posts/:id
func (h *Handler) Delete(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

// Restore handles POST /api/v1/posts/:id/restore
func (h *Handler) Restore(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.service.Restore(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Post restored"})
}
