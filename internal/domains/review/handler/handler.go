package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub-backend/internal/domains/review/model"
	"stayhub-backend/internal/domains/review/service"
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

// Create handles POST /api/v1/reviews
func (h *Handler) Create(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	req, ok := response.Bind[model.CreateReviewRequest](c)
	if !ok {
		return
	}

	review, err := h.service.Create(c.Request.Context(), act, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// Update handles PUT /api/v1/reviews/:id
func (h *Handler) Update(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	req, ok := response.Bind[model.UpdateReviewRequest](c)
	if !ok {
		return
	}

	review, err := h.service.Update(c.Request.Context(), act, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// Delete handles DELETE /api/v1/reviews/:id
func (h *Handler) Delete(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Review deleted"})
}

// ListByAccommodation handles GET /api/v1/accommodations/:id/reviews
func (h *Handler) ListByAccommodation(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid accommodation ID")
		return
	}

	filter := crud.FilterFromQuery(c)
	reviews, total, err := h.service.ListByAccommodation(c.Request.Context(), act, id, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reviews, &response.Meta{
		Page:  crud.PageOf(filter),
		Limit: filter.Limit,
		Total: total,
	})
}

// ListByAuthor handles GET /api/v1/users/:id/reviews
func (h *Handler) ListByAuthor(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	filter := crud.FilterFromQuery(c)
	reviews, total, err := h.service.ListByAuthor(c.Request.Context(), act, id, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reviews, &response.Meta{
		Page:  crud.PageOf(filter),
		Limit: filter.Limit,
		Total: total,
	})
}
