package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loadboard/internal/domain"
	"loadboard/internal/middleware"
	"loadboard/internal/service"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	userService *service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RegisterRequest is the HTTP request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`

	Accidents           int `json:"accidents"`
	TheftComplaints     int `json:"theftComplaints"`
	TruckAge            int `json:"truckAge"`
	DriversLicenseYears int `json:"driversLicenseYears"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the HTTP representation of a user. The password hash
// never leaves the server.
type UserResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	Role                string  `json:"role"`
	Accidents           int     `json:"accidents"`
	TheftComplaints     int     `json:"theftComplaints"`
	TruckAge            int     `json:"truckAge"`
	DriversLicenseYears int     `json:"driversLicenseYears"`
	Balance             float64 `json:"balance"`
	BenefitsEligible    bool    `json:"benefitsEligible"`
	IsVerified          bool    `json:"isVerified"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"createdAt"`
}

// AuthResponse is the HTTP response for register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Role:                string(u.Role),
		Accidents:           u.Accidents,
		TheftComplaints:     u.TheftComplaints,
		TruckAge:            u.TruckAge,
		DriversLicenseYears: u.DriversLicenseYears,
		Balance:             u.Balance,
		BenefitsEligible:    u.BenefitsEligible,
		IsVerified:          u.IsVerified,
		Status:              string(u.Status),
		CreatedAt:           u.CreatedAt.Format(time.RFC3339),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Role == "" {
		req.Role = string(domain.RoleTrucker)
	}

	result, err := h.userService.Register(c.Request.Context(), service.RegisterRequest{
		Name:                req.Name,
		Email:               req.Email,
		Password:            req.Password,
		Role:                domain.Role(req.Role),
		Accidents:           req.Accidents,
		TheftComplaints:     req.TheftComplaints,
		TruckAge:            req.TruckAge,
		DriversLicenseYears: req.DriversLicenseYears,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, AuthResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AuthResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}
