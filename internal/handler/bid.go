package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loadboard/internal/domain"
	"loadboard/internal/middleware"
	"loadboard/internal/service"
)

// BidHandler handles HTTP requests for bids.
type BidHandler struct {
	bidService *service.BidService
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(bidService *service.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

// CreateBidRequest is the HTTP request body for placing a bid.
type CreateBidRequest struct {
	LoadID string  `json:"loadId" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Notes  string  `json:"notes"`
}

// BidResponse is the HTTP representation of a bid. TruckerEligible is the
// verdict frozen at placement time, which shippers read to know which bids
// are acceptable.
type BidResponse struct {
	ID              string     `json:"id"`
	LoadID          string     `json:"loadId"`
	TruckerID       string     `json:"truckerId"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	TruckerEligible bool       `json:"truckerEligible"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	AcceptedAt      *time.Time `json:"acceptedAt,omitempty"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// CreateBidResponse is the HTTP response for placing a bid. IsEligible
// reports the eligibility verdict frozen on the bid at placement time.
type CreateBidResponse struct {
	Bid        BidResponse `json:"bid"`
	IsEligible bool        `json:"isEligible"`
}

// AcceptBidResponse is the HTTP response for accepting a bid.
type AcceptBidResponse struct {
	Bid  BidResponse  `json:"bid"`
	Load LoadResponse `json:"load"`
}

func toBidResponse(b *domain.Bid) BidResponse {
	resp := BidResponse{
		ID:              b.ID,
		LoadID:          b.LoadID,
		TruckerID:       b.TruckerID,
		Amount:          b.Amount,
		Status:          string(b.Status),
		Notes:           b.Notes,
		TruckerEligible: b.TruckerEligible,
		ExpiresAt:       b.ExpiresAt,
		CreatedAt:       b.CreatedAt,
	}
	if !b.AcceptedAt.IsZero() {
		t := b.AcceptedAt
		resp.AcceptedAt = &t
	}
	if !b.RejectedAt.IsZero() {
		t := b.RejectedAt
		resp.RejectedAt = &t
	}
	return resp
}

func toBidResponses(bids []*domain.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, toBidResponse(b))
	}
	return out
}

// CreateBid handles POST /api/bids
func (h *BidHandler) CreateBid(c *gin.Context) {
	var req CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	callerID, _ := middleware.CallerID(c)

	result, err := h.bidService.PlaceBid(c.Request.Context(), service.PlaceBidRequest{
		LoadID:    req.LoadID,
		TruckerID: callerID,
		Amount:    req.Amount,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CreateBidResponse{
		Bid:        toBidResponse(result.Bid),
		IsEligible: result.IsEligible,
	})
}

// GetBid handles GET /api/bids/:id
func (h *BidHandler) GetBid(c *gin.Context) {
	bid, err := h.bidService.GetBid(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBidResponse(bid))
}

// ListMyBids handles GET /api/bids
func (h *BidHandler) ListMyBids(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)

	bids, err := h.bidService.ListBidsForTrucker(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBidResponses(bids))
}

// AcceptBid handles POST /api/bids/:id/accept
func (h *BidHandler) AcceptBid(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)

	result, err := h.bidService.AcceptBid(c.Request.Context(), service.AcceptBidRequest{
		BidID:    c.Param("id"),
		CallerID: callerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AcceptBidResponse{
		Bid:  toBidResponse(result.Bid),
		Load: toLoadResponse(result.Load),
	})
}

// RejectBid handles POST /api/bids/:id/reject
func (h *BidHandler) RejectBid(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)
	role, _ := middleware.CallerRole(c)

	bid, err := h.bidService.RejectBid(c.Request.Context(), c.Param("id"), callerID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBidResponse(bid))
}
