package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"loadboard/internal/auth"
	"loadboard/internal/domain"
	"loadboard/internal/repository"
)

// UserService handles registration, login, and profile management.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterRequest contains the parameters for self-registration.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role

	Accidents           int
	TheftComplaints     int
	TruckAge            int
	DriversLicenseYears int
}

// AuthResult contains the authenticated user and a signed token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates a shipper or trucker account. Admin accounts are only
// created through the admin API.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.Role != domain.RoleShipper && req.Role != domain.RoleTrucker {
		return nil, ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:                  uuid.New().String(),
		Name:                req.Name,
		Email:               req.Email,
		PasswordHash:        string(hash),
		Role:                req.Role,
		Accidents:           req.Accidents,
		TheftComplaints:     req.TheftComplaints,
		TruckAge:            req.TruckAge,
		DriversLicenseYears: req.DriversLicenseYears,
		Status:              domain.UserStatusPending,
		CreatedAt:           time.Now(),
	}

	if user.Role == domain.RoleTrucker {
		user.BenefitsEligible = user.IsEligible()
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates by email and password.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileRequest contains admin-editable user fields. Nil pointers
// leave the current value unchanged.
type UpdateProfileRequest struct {
	UserID string

	Name                *string
	Accidents           *int
	TheftComplaints     *int
	TruckAge            *int
	DriversLicenseYears *int
	IsVerified          *bool
	Status              *domain.UserStatus
}

// UpdateProfile applies partial updates to a user. Writes that touch a
// trucker's safety or experience fields recompute BenefitsEligible in the
// same call, keeping the persisted flag in sync with the profile.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Accidents != nil {
		user.Accidents = *req.Accidents
	}
	if req.TheftComplaints != nil {
		user.TheftComplaints = *req.TheftComplaints
	}
	if req.TruckAge != nil {
		user.TruckAge = *req.TruckAge
	}
	if req.DriversLicenseYears != nil {
		user.DriversLicenseYears = *req.DriversLicenseYears
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if user.Role == domain.RoleTrucker {
		user.BenefitsEligible = user.IsEligible()
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUserRequest contains the parameters for admin user creation.
type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role

	Accidents           int
	TheftComplaints     int
	TruckAge            int
	DriversLicenseYears int
	IsVerified          bool
}

// CreateUser creates a user of any role. Only admins reach this path; the
// handler enforces that superadmin is required to mint admin accounts.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:                  uuid.New().String(),
		Name:                req.Name,
		Email:               req.Email,
		PasswordHash:        string(hash),
		Role:                req.Role,
		Accidents:           req.Accidents,
		TheftComplaints:     req.TheftComplaints,
		TruckAge:            req.TruckAge,
		DriversLicenseYears: req.DriversLicenseYears,
		IsVerified:          req.IsVerified,
		Status:              domain.UserStatusActive,
		CreatedAt:           time.Now(),
	}

	if user.Role == domain.RoleTrucker {
		user.BenefitsEligible = user.IsEligible()
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicateEmail {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// ListByRole retrieves users of a given role.
func (s *UserService) ListByRole(ctx context.Context, role domain.Role, limit int) ([]*domain.User, error) {
	return s.userRepo.ListByRole(ctx, role, limit)
}
