package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub-backend/internal/domains/accommodation/model"
	"stayhub-backend/internal/domains/accommodation/service"
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

func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid "+label)
		return uuid.Nil, false
	}
	return id, true
}

// ===== LISTINGS =====

// List handles GET /api/v1/accommodations
func (h *Handler) List(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)
	filter := crud.FilterFromQuery(c)

	if accType := c.Query("type"); accType != "" {
		filter = filter.WithCondition("type", accType)
	}
	if city := c.Query("city"); city != "" {
		filter = filter.WithCondition("city", city)
	}
	filter = filter.WithCondition("state", model.StatePublished)

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

// ListByDestination handles GET /api/v1/destinations/:id/accommodations
func (h *Handler) ListByDestination(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)
	destinationID, ok := parseID(c, "id", "destination ID")
	if !ok {
		return
	}

	filter := crud.FilterFromQuery(c)
	items, total, err := h.service.ListByDestination(c.Request.Context(), act, destinationID, filter)
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

// GetByID handles GET /api/v1/accommodations/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	act, _ := middleware.ActorFromContext(c)
	details, err := h.service.GetWithDetails(c.Request.Context(), act, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, details)
}

// Create handles POST /api/v1/accommodations
func (h *Handler) Create(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	req, ok := response.Bind[model.CreateAccommodationRequest](c)
	if !ok {
		return
	}

	acc, err := h.service.Create(c.Request.Context(), act, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, acc)
}

// Update handles PUT /api/v1/accommodations/:id
func (h *Handler) Update(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	req, ok := response.Bind[model.UpdateAccommodationRequest](c)
	if !ok {
		return
	}

	acc, err := h.service.Update(c.Request.Context(), act, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, acc)
}

// GenerateImage handles POST /api/v1/accommodations/:id/generate-image.
// The actual generation runs in the worker; 202 means queued.
func (h *Handler) GenerateImage(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	req, ok := response.Bind[model.GenerateImageRequest](c)
	if !ok {
		return
	}

	if err := h.service.RequestImageGeneration(c.Request.Context(), act, id, req.Prompt); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"status": "queued"})
}

// Delete handles DELETE /api/v1/accommodations/:id (soft delete)
func (h *Handler) Delete(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Accommodation deleted"})
}

// Restore handles POST /api/v1/accommodations/:id/restore
func (h *Handler) Restore(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	if err := h.service.Restore(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Accommodation restored"})
}

// HardDelete handles DELETE /api/v1/admin/accommodations/:id
func (h *Handler) HardDelete(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	if err := h.service.HardDelete(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Accommodation permanently deleted"})
}

// ===== DERIVED READS =====

// GetAverageRating handles GET /api/v1/accommodations/:id/rating
func (h *Handler) GetAverageRating(c *gin.Context) {
	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	rating, err := h.service.GetAverageRating(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rating)
}

// GetTopRated handles GET /api/v1/accommodations/top-rated
func (h *Handler) GetTopRated(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.service.GetTopRated(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// RecommendSimilar handles GET /api/v1/accommodations/:id/similar
func (h *Handler) RecommendSimilar(c *gin.Context) {
	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	items, err := h.service.RecommendSimilar(c.Request.Context(), id, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// Search handles GET /api/v1/accommodations/search?q=
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Missing search query")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	act, _ := middleware.ActorFromContext(c)
	items, err := h.service.SearchFullText(c.Request.Context(), act, query, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

// GetByOwner handles GET /api/v1/hosts/:id/accommodations
func (h *Handler) GetByOwner(c *gin.Context) {
	hostID, ok := parseID(c, "id", "host ID")
	if !ok {
		return
	}

	act, _ := middleware.ActorFromContext(c)
	filter := crud.FilterFromQuery(c)

	items, total, err := h.service.GetByOwner(c.Request.Context(), act, hostID, filter)
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

// GetByState handles GET /api/v1/admin/accommodations?state=
func (h *Handler) GetByState(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)
	state := c.DefaultQuery("state", model.StateDraft)
	filter := crud.FilterFromQuery(c)

	items, total, err := h.service.GetByState(c.Request.Context(), act, state, filter)
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
