package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub-backend/internal/domains/accommodation/model"
	"stayhub-backend/internal/shared/crud"
	"stayhub-backend/internal/shared/middleware"
	"stayhub-backend/internal/shared/response"
)

// ===== AMENITIES =====

// ListAmenityCatalog handles GET /api/v1/amenities
func (h *Handler) ListAmenityCatalog(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)
	filter := crud.FilterFromQuery(c)

	items, total, err := h.service.ListAmenityCatalog(c.Request.Context(), act, filter)
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

// CreateAmenity handles POST /api/v1/amenities (admin)
func (h *Handler) CreateAmenity(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	req, ok := response.Bind[model.CreateAmenityRequest](c)
	if !ok {
		return
	}

	amenity, err := h.service.CreateAmenity(c.Request.Context(), act, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, amenity)
}

// DeleteAmenity handles DELETE /api/v1/amenities/:id (admin)
func (h *Handler) DeleteAmenity(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "amenity ID")
	if !ok {
		return
	}

	if err := h.service.DeleteAmenity(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Amenity deleted"})
}

// AttachAmenity handles PUT /api/v1/accommodations/:id/amenities/:amenityId
func (h *Handler) AttachAmenity(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	accommodationID, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}
	amenityID, ok := parseID(c, "amenityId", "amenity ID")
	if !ok {
		return
	}

	if err := h.service.AttachAmenity(c.Request.Context(), act, accommodationID, amenityID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Amenity attached"})
}

// DetachAmenity handles DELETE /api/v1/accommodations/:id/amenities/:amenityId
func (h *Handler) DetachAmenity(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	accommodationID, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}
	amenityID, ok := parseID(c, "amenityId", "amenity ID")
	if !ok {
		return
	}

	if err := h.service.DetachAmenity(c.Request.Context(), act, accommodationID, amenityID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Amenity detached"})
}

// ===== FAQS =====

// ListFaqs handles GET /api/v1/accommodations/:id/faqs
func (h *Handler) ListFaqs(c *gin.Context) {
	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	faqs, err := h.service.ListFaqs(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, faqs)
}

// AddFaq handles POST /api/v1/accommodations/:id/faqs
func (h *Handler) AddFaq(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	req, ok := response.Bind[model.CreateFaqRequest](c)
	if !ok {
		return
	}

	faq, err := h.service.AddFaq(c.Request.Context(), act, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, faq)
}

// UpdateFaq handles PUT /api/v1/faqs/:id
func (h *Handler) UpdateFaq(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "FAQ ID")
	if !ok {
		return
	}

	req, ok := response.Bind[model.CreateFaqRequest](c)
	if !ok {
		return
	}

	faq, err := h.service.UpdateFaq(c.Request.Context(), act, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, faq)
}

// DeleteFaq handles DELETE /api/v1/faqs/:id
func (h *Handler) DeleteFaq(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "FAQ ID")
	if !ok {
		return
	}

	if err := h.service.DeleteFaq(c.Request.Context(), act, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "FAQ deleted"})
}

// ===== AI CONTENT =====

// ListAiContents handles GET /api/v1/accommodations/:id/ai-content
func (h *Handler) ListAiContents(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	contents, err := h.service.ListAiContents(c.Request.Context(), act, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, contents)
}

// UpsertAiContent handles PUT /api/v1/accommodations/:id/ai-content
func (h *Handler) UpsertAiContent(c *gin.Context) {
	act, _ := middleware.ActorFromContext(c)

	id, ok := parseID(c, "id", "accommodation ID")
	if !ok {
		return
	}

	req, ok := response.Bind[model.CreateAiContentRequest](c)
	if !ok {
		return
	}

	content, err := h.service.UpsertAiContent(c.Request.Context(), act, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, content)
}
