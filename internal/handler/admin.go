package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"loadboard/internal/domain"
	"loadboard/internal/middleware"
	"loadboard/internal/repository"
	"loadboard/internal/service"
)

// AdminHandler handles HTTP requests for the admin API.
type AdminHandler struct {
	userService        *service.UserService
	transactionService *service.TransactionService
	userRepo           repository.UserRepository
	loadRepo           repository.LoadRepository
	bidRepo            repository.BidRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	userService *service.UserService,
	transactionService *service.TransactionService,
	userRepo repository.UserRepository,
	loadRepo repository.LoadRepository,
	bidRepo repository.BidRepository,
) *AdminHandler {
	return &AdminHandler{
		userService:        userService,
		transactionService: transactionService,
		userRepo:           userRepo,
		loadRepo:           loadRepo,
		bidRepo:            bidRepo,
	}
}

// DashboardResponse is the HTTP response for the admin dashboard.
type DashboardResponse struct {
	TotalUsers     int `json:"totalUsers"`
	TotalShippers  int `json:"totalShippers"`
	TotalTruckers  int `json:"totalTruckers"`
	TotalLoads     int `json:"totalLoads"`
	PendingLoads   int `json:"pendingLoads"`
	AssignedLoads  int `json:"assignedLoads"`
	InTransitLoads int `json:"inTransitLoads"`
	DeliveredLoads int `json:"deliveredLoads"`
	TotalBids      int `json:"totalBids"`
}

// SystemStatsResponse is the HTTP response for system statistics.
type SystemStatsResponse struct {
	TotalTruckers    int     `json:"totalTruckers"`
	EligibleTruckers int     `json:"eligibleTruckers"`
	EligibleShare    float64 `json:"eligibleShare"`
}

// CreateUserRequest is the HTTP request body for admin user creation.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`

	Accidents           int  `json:"accidents"`
	TheftComplaints     int  `json:"theftComplaints"`
	TruckAge            int  `json:"truckAge"`
	DriversLicenseYears int  `json:"driversLicenseYears"`
	IsVerified          bool `json:"isVerified"`
}

// UpdateUserRequest is the HTTP request body for admin user updates.
// Absent fields leave the current value unchanged.
type UpdateUserRequest struct {
	Name                *string `json:"name"`
	Accidents           *int    `json:"accidents"`
	TheftComplaints     *int    `json:"theftComplaints"`
	TruckAge            *int    `json:"truckAge"`
	DriversLicenseYears *int    `json:"driversLicenseYears"`
	IsVerified          *bool   `json:"isVerified"`
	Status              *string `json:"status"`
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var resp DashboardResponse
	var err error

	if resp.TotalUsers, err = h.userRepo.Count(ctx); err != nil {
		respondError(c, err)
		return
	}
	if resp.TotalShippers, err = h.userRepo.CountByRole(ctx, domain.RoleShipper); err != nil {
		respondError(c, err)
		return
	}
	if resp.TotalTruckers, err = h.userRepo.CountByRole(ctx, domain.RoleTrucker); err != nil {
		respondError(c, err)
		return
	}
	if resp.TotalLoads, err = h.loadRepo.Count(ctx); err != nil {
		respondError(c, err)
		return
	}
	if resp.PendingLoads, err = h.loadRepo.CountByStatus(ctx, domain.LoadStatusPending); err != nil {
		respondError(c, err)
		return
	}
	if resp.AssignedLoads, err = h.loadRepo.CountByStatus(ctx, domain.LoadStatusAssigned); err != nil {
		respondError(c, err)
		return
	}
	if resp.InTransitLoads, err = h.loadRepo.CountByStatus(ctx, domain.LoadStatusInTransit); err != nil {
		respondError(c, err)
		return
	}
	if resp.DeliveredLoads, err = h.loadRepo.CountByStatus(ctx, domain.LoadStatusDelivered); err != nil {
		respondError(c, err)
		return
	}
	if resp.TotalBids, err = h.bidRepo.Count(ctx); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, resp)
}

// SystemStats handles GET /api/admin/stats
func (h *AdminHandler) SystemStats(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := h.userRepo.CountByRole(ctx, domain.RoleTrucker)
	if err != nil {
		respondError(c, err)
		return
	}

	eligible, err := h.userRepo.CountEligibleTruckers(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := SystemStatsResponse{
		TotalTruckers:    total,
		EligibleTruckers: eligible,
	}
	if total > 0 {
		resp.EligibleShare = float64(eligible) / float64(total)
	}

	respondJSON(c, http.StatusOK, resp)
}

// ListShippers handles GET /api/admin/shippers
func (h *AdminHandler) ListShippers(c *gin.Context) {
	h.listUsersByRole(c, domain.RoleShipper)
}

// ListTruckers handles GET /api/admin/truckers
func (h *AdminHandler) ListTruckers(c *gin.Context) {
	h.listUsersByRole(c, domain.RoleTrucker)
}

func (h *AdminHandler) listUsersByRole(c *gin.Context, role domain.Role) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	users, err := h.userService.ListByRole(c.Request.Context(), role, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	respondJSON(c, http.StatusOK, out)
}

// GetUser handles GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// ListLoads handles GET /api/admin/loads
func (h *AdminHandler) ListLoads(c *gin.Context) {
	filter := repository.LoadFilter{
		Status: domain.LoadStatus(c.Query("status")),
	}

	loads, err := h.loadRepo.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponses(loads))
}

// CreateUser handles POST /api/admin/users
// Creating admin accounts requires the superadmin role.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	role := domain.Role(req.Role)
	callerRole, _ := middleware.CallerRole(c)
	if role.IsAdmin() && callerRole != domain.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "superadmin required"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), service.CreateUserRequest{
		Name:                req.Name,
		Email:               req.Email,
		Password:            req.Password,
		Role:                role,
		Accidents:           req.Accidents,
		TheftComplaints:     req.TheftComplaints,
		TruckAge:            req.TruckAge,
		DriversLicenseYears: req.DriversLicenseYears,
		IsVerified:          req.IsVerified,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toUserResponse(user))
}

// UpdateUser handles PATCH /api/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdateProfileRequest{
		UserID:              c.Param("id"),
		Name:                req.Name,
		Accidents:           req.Accidents,
		TheftComplaints:     req.TheftComplaints,
		TruckAge:            req.TruckAge,
		DriversLicenseYears: req.DriversLicenseYears,
		IsVerified:          req.IsVerified,
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		update.Status = &status
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// ListBids handles GET /api/admin/bids
func (h *AdminHandler) ListBids(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	bids, err := h.bidRepo.ListAll(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBidResponses(bids))
}

// ListTransactions handles GET /api/admin/transactions
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	txns, err := h.transactionService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransactionResponses(txns))
}

// UpdateTransactionStatus handles PATCH /api/admin/transactions/:id/status
func (h *AdminHandler) UpdateTransactionStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	txn, err := h.transactionService.UpdateStatus(c.Request.Context(), c.Param("id"), domain.TransactionStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTransactionResponse(txn))
}
