package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub-backend/internal/domains/event/model"
	"stayhub-backend/internal/domains/event/service"
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

// List handles GET /api/v1/events (optional ?category= &destination_id=)
func (h *Handler) List(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)
	filter := crud.FilterFromQuery(c)

	if category := c.Query("category"); category != "" {
		filter = filter.WithCondition("category", category)
	}
	if dest := c.Query("destination_id"); dest != "" {
		if destID, err := uuid.Parse(dest); err == nil {
			filter = filter.WithCondition("destination_id", destID)
		}
	}

	events, total, err := h.service.List(c.Request.Context(), act, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, events, &response.Meta{
		Page:  crud.PageOf(filter),
		Limit: filter.Limit,
		Total: total,
	})
}

// ListUpcoming handles GET /api/v1/events/upcoming
func (h *Handler) ListUpcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	events, err := h.service.ListUpcoming(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, events)
}

// GetByID handles GET /api/v1/events/:id
// Search handles GET /api/v1/events/search?q=
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

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, event)
}

// Create handles POST /api/v1/events
func (h *Handler) Create(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	req, ok := response.Bind[model.CreateEventRequest](c)
	if !ok {
		return
	}

	event, err := h.service.Create(c.Request.Context(), act, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, event)
}

// Update handles PUT /api/v1/events/:id
func (h *Handler) Update(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid event ID")
		return
	}

	req, ok := response.Bind[model.UpdateEventRequest](c)
	if !ok {
		return
	}

	event, err := h.service.Update(c.Request.Context(), act, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, event)
}

// Delete handles DELETE /api/v1/events/:id
func (h *Handler) Delete(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Event deleted"})
}

// Restore handles POST /api/v1/events/:id/restore
func (h *Handler) Restore(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.service.Restore(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Event restored"})
}
