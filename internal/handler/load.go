package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"loadboard/internal/domain"
	"loadboard/internal/middleware"
	"loadboard/internal/repository"
	"loadboard/internal/service"
)

// LoadHandler handles HTTP requests for loads.
type LoadHandler struct {
	loadService *service.LoadService
	bidService  *service.BidService
}

// NewLoadHandler creates a new LoadHandler.
func NewLoadHandler(loadService *service.LoadService, bidService *service.BidService) *LoadHandler {
	return &LoadHandler{
		loadService: loadService,
		bidService:  bidService,
	}
}

// CreateLoadRequest is the HTTP request body for posting a load.
type CreateLoadRequest struct {
	Origin       string            `json:"origin" binding:"required"`
	Destination  string            `json:"destination" binding:"required"`
	ShipmentDate time.Time         `json:"shipmentDate" binding:"required"`
	Weight       float64           `json:"weight" binding:"required,gt=0"`
	Dimensions   domain.Dimensions `json:"dimensions"`
}

// UpdateStatusRequest is the HTTP request body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateLocationRequest is the HTTP request body for a tracking update.
type UpdateLocationRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// AddAlertRequest is the HTTP request body for attaching an alert.
type AddAlertRequest struct {
	Type    string `json:"type" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// LoadResponse is the HTTP representation of a load.
type LoadResponse struct {
	ID                string            `json:"id"`
	ShipperID         string            `json:"shipperId"`
	Origin            string            `json:"origin"`
	Destination       string            `json:"destination"`
	ShipmentDate      time.Time         `json:"shipmentDate"`
	Weight            float64           `json:"weight"`
	Dimensions        domain.Dimensions `json:"dimensions"`
	Status            string            `json:"status"`
	WinningBidID      string            `json:"winningBid,omitempty"`
	AssignedTruckerID string            `json:"assignedTrucker,omitempty"`
	Price             float64           `json:"price"`
	CurrentLocation   *domain.Location  `json:"currentLocation,omitempty"`
	PaymentStatus     string            `json:"paymentStatus"`
	Alerts            []domain.Alert    `json:"alerts,omitempty"`
	PickupTime        *time.Time        `json:"pickupTime,omitempty"`
	DeliveryTime      *time.Time        `json:"deliveryTime,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
}

func toLoadResponse(l *domain.Load) LoadResponse {
	resp := LoadResponse{
		ID:                l.ID,
		ShipperID:         l.ShipperID,
		Origin:            l.Origin,
		Destination:       l.Destination,
		ShipmentDate:      l.ShipmentDate,
		Weight:            l.Weight,
		Dimensions:        l.Dimensions,
		Status:            string(l.Status),
		WinningBidID:      l.WinningBidID,
		AssignedTruckerID: l.AssignedTruckerID,
		Price:             l.Price,
		CurrentLocation:   l.CurrentLocation,
		PaymentStatus:     string(l.PaymentStatus),
		Alerts:            l.Alerts,
		CreatedAt:         l.CreatedAt,
	}
	if !l.PickupTime.IsZero() {
		t := l.PickupTime
		resp.PickupTime = &t
	}
	if !l.DeliveryTime.IsZero() {
		t := l.DeliveryTime
		resp.DeliveryTime = &t
	}
	return resp
}

func toLoadResponses(loads []*domain.Load) []LoadResponse {
	out := make([]LoadResponse, 0, len(loads))
	for _, l := range loads {
		out = append(out, toLoadResponse(l))
	}
	return out
}

// CreateLoad handles POST /api/loads
func (h *LoadHandler) CreateLoad(c *gin.Context) {
	var req CreateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	callerID, _ := middleware.CallerID(c)

	load, err := h.loadService.CreateLoad(c.Request.Context(), service.CreateLoadRequest{
		ShipperID:    callerID,
		Origin:       req.Origin,
		Destination:  req.Destination,
		ShipmentDate: req.ShipmentDate,
		Weight:       req.Weight,
		Dimensions:   req.Dimensions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toLoadResponse(load))
}

// ListLoads handles GET /api/loads
// Query parameters: origin, destination, status, shipmentFrom (RFC 3339).
// Shippers only see their own loads, truckers only the pending board;
// admins see everything matching the filter.
func (h *LoadHandler) ListLoads(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)
	role, _ := middleware.CallerRole(c)

	filter := repository.LoadFilter{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Status:      domain.LoadStatus(c.Query("status")),
	}

	if from := c.Query("shipmentFrom"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid shipmentFrom"})
			return
		}
		filter.ShipmentFrom = t
	}

	switch role {
	case domain.RoleShipper:
		filter.ShipperID = callerID
	case domain.RoleTrucker:
		filter.Status = domain.LoadStatusPending
	}

	loads, err := h.loadService.ListLoads(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponses(loads))
}

// Nearby handles GET /api/loads/nearby
// Query parameters: lat, lng, radius (km, default 50).
func (h *LoadHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng are required"})
		return
	}

	radius := 50.0
	if raw := c.Query("radius"); raw != "" {
		if r, err := strconv.ParseFloat(raw, 64); err == nil && r > 0 {
			radius = r
		}
	}

	positions, err := h.loadService.FindNearbyLoads(c.Request.Context(), lat, lng, radius)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, positions)
}

// GetLoad handles GET /api/loads/:id
func (h *LoadHandler) GetLoad(c *gin.Context) {
	load, err := h.loadService.GetLoad(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponse(load))
}

// UpdateStatus handles PATCH /api/loads/:id/status
func (h *LoadHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	callerID, _ := middleware.CallerID(c)
	role, _ := middleware.CallerRole(c)

	load, err := h.loadService.UpdateStatus(c.Request.Context(), service.UpdateStatusRequest{
		LoadID:     c.Param("id"),
		NewStatus:  domain.LoadStatus(req.Status),
		CallerID:   callerID,
		CallerRole: role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponse(load))
}

// Deliver handles POST /api/loads/:id/deliver
// Shorthand for the in transit to delivered status update.
func (h *LoadHandler) Deliver(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)
	role, _ := middleware.CallerRole(c)

	load, err := h.loadService.UpdateStatus(c.Request.Context(), service.UpdateStatusRequest{
		LoadID:     c.Param("id"),
		NewStatus:  domain.LoadStatusDelivered,
		CallerID:   callerID,
		CallerRole: role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponse(load))
}

// UpdateLocation handles POST /api/loads/:id/location
func (h *LoadHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	callerID, _ := middleware.CallerID(c)

	load, err := h.loadService.UpdateLocation(c.Request.Context(), service.UpdateLocationRequest{
		LoadID:    c.Param("id"),
		TruckerID: callerID,
		Lat:       req.Lat,
		Lng:       req.Lng,
		Address:   req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponse(load))
}

// AddAlert handles POST /api/loads/:id/alerts
func (h *LoadHandler) AddAlert(c *gin.Context) {
	var req AddAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	callerID, _ := middleware.CallerID(c)
	role, _ := middleware.CallerRole(c)

	load, err := h.loadService.AddAlert(c.Request.Context(), c.Param("id"), callerID, role, req.Type, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponse(load))
}

// ListBids handles GET /api/loads/:id/bids
func (h *LoadHandler) ListBids(c *gin.Context) {
	bids, err := h.bidService.ListBidsForLoad(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBidResponses(bids))
}
