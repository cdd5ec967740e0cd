package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loadboard/internal/domain"
	"loadboard/internal/middleware"
	"loadboard/internal/service"
)

// BenefitHandler handles HTTP requests for benefits.
type BenefitHandler struct {
	benefitService *service.BenefitService
}

// NewBenefitHandler creates a new BenefitHandler.
func NewBenefitHandler(benefitService *service.BenefitService) *BenefitHandler {
	return &BenefitHandler{benefitService: benefitService}
}

// CreateBenefitRequest is the HTTP request body for creating a benefit.
type CreateBenefitRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Type        string                     `json:"type" binding:"required"`
	Description string                     `json:"description"`
	Discount    float64                    `json:"discount"`
	Provider    string                     `json:"provider"`
	Criteria    domain.EligibilityCriteria `json:"eligibilityCriteria"`
	Category    string                     `json:"category"`
	ValidFrom   time.Time                  `json:"validFrom"`
	ValidUntil  time.Time                  `json:"validUntil"`
}

// UpdateBenefitRequest is the HTTP request body for updating a benefit.
type UpdateBenefitRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Type        string                     `json:"type" binding:"required"`
	Description string                     `json:"description"`
	Discount    float64                    `json:"discount"`
	Provider    string                     `json:"provider"`
	Criteria    domain.EligibilityCriteria `json:"eligibilityCriteria"`
	Category    string                     `json:"category"`
	ValidFrom   time.Time                  `json:"validFrom"`
	ValidUntil  time.Time                  `json:"validUntil"`
	IsActive    *bool                      `json:"isActive"`
}

// BenefitResponse is the HTTP representation of a benefit.
type BenefitResponse struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Type        string                     `json:"type"`
	Description string                     `json:"description"`
	Discount    float64                    `json:"discount"`
	Provider    string                     `json:"provider"`
	Criteria    domain.EligibilityCriteria `json:"eligibilityCriteria"`
	Category    string                     `json:"category"`
	ValidFrom   time.Time                  `json:"validFrom"`
	ValidUntil  time.Time                  `json:"validUntil"`
	IsActive    bool                       `json:"isActive"`
	CreatedAt   time.Time                  `json:"createdAt"`
}

func toBenefitResponse(b *domain.Benefit) BenefitResponse {
	return BenefitResponse{
		ID:          b.ID,
		Name:        b.Name,
		Type:        string(b.Type),
		Description: b.Description,
		Discount:    b.Discount,
		Provider:    b.Provider,
		Criteria:    b.Criteria,
		Category:    b.Category,
		ValidFrom:   b.ValidFrom,
		ValidUntil:  b.ValidUntil,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
	}
}

func toBenefitResponses(benefits []*domain.Benefit) []BenefitResponse {
	out := make([]BenefitResponse, 0, len(benefits))
	for _, b := range benefits {
		out = append(out, toBenefitResponse(b))
	}
	return out
}

// ListBenefits handles GET /api/benefits
func (h *BenefitHandler) ListBenefits(c *gin.Context) {
	benefits, err := h.benefitService.ListActiveBenefits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBenefitResponses(benefits))
}

// ListEligibleBenefits handles GET /api/benefits/eligible
// Returns the active benefits whose criteria the calling trucker meets.
func (h *BenefitHandler) ListEligibleBenefits(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)

	benefits, err := h.benefitService.ListEligibleBenefits(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBenefitResponses(benefits))
}

// GetBenefit handles GET /api/benefits/:id
func (h *BenefitHandler) GetBenefit(c *gin.Context) {
	benefit, err := h.benefitService.GetBenefit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBenefitResponse(benefit))
}

// CreateBenefit handles POST /api/benefits (admin only)
func (h *BenefitHandler) CreateBenefit(c *gin.Context) {
	var req CreateBenefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	benefit, err := h.benefitService.CreateBenefit(c.Request.Context(), service.CreateBenefitRequest{
		Name:        req.Name,
		Type:        domain.BenefitType(req.Type),
		Description: req.Description,
		Discount:    req.Discount,
		Provider:    req.Provider,
		Criteria:    req.Criteria,
		Category:    req.Category,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBenefitResponse(benefit))
}

// UpdateBenefit handles PUT /api/benefits/:id (admin only)
func (h *BenefitHandler) UpdateBenefit(c *gin.Context) {
	var req UpdateBenefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	benefit, err := h.benefitService.GetBenefit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	benefit.Name = req.Name
	benefit.Type = domain.BenefitType(req.Type)
	benefit.Description = req.Description
	benefit.Discount = req.Discount
	benefit.Provider = req.Provider
	benefit.Criteria = req.Criteria
	benefit.Category = req.Category
	benefit.ValidFrom = req.ValidFrom
	benefit.ValidUntil = req.ValidUntil
	if req.IsActive != nil {
		benefit.IsActive = *req.IsActive
	}

	updated, err := h.benefitService.UpdateBenefit(c.Request.Context(), benefit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBenefitResponse(updated))
}

// DeleteBenefit handles DELETE /api/benefits/:id (admin only)
func (h *BenefitHandler) DeleteBenefit(c *gin.Context) {
	if err := h.benefitService.DeleteBenefit(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
