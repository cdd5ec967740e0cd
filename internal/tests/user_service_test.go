package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"loadboard/internal/auth"
	"loadboard/internal/domain"
	"loadboard/internal/service"
)

// ──────────────────────────────────────────────
// REGISTRATION AND LOGIN
// ──────────────────────────────────────────────

func newUserServiceForTest(userRepo *MockUserRepository) *service.UserService {
	tokens := auth.NewTokenManager("test-secret", "loadboard", time.Hour)
	return service.NewUserService(userRepo, tokens)
}

func TestRegister_TruckerEligibilityComputedAtSignup(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newUserServiceForTest(userRepo)

	result, err := svc.Register(context.Background(), service.RegisterRequest{
		Name:                "Dana",
		Email:               "dana@example.com",
		Password:            "correct horse",
		Role:                domain.RoleTrucker,
		TruckAge:            3,
		DriversLicenseYears: 8,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !result.User.BenefitsEligible {
		t.Error("clean-record trucker should be eligible at signup")
	}
	if result.Token == "" {
		t.Error("expected a signed token")
	}

	result, err = svc.Register(context.Background(), service.RegisterRequest{
		Name:                "Sam",
		Email:               "sam@example.com",
		Password:            "correct horse",
		Role:                domain.RoleTrucker,
		Accidents:           2,
		TruckAge:            3,
		DriversLicenseYears: 8,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.User.BenefitsEligible {
		t.Error("trucker with accidents must not be eligible")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newUserServiceForTest(userRepo)

	req := service.RegisterRequest{
		Name: "Dana", Email: "dana@example.com", Password: "correct horse", Role: domain.RoleShipper,
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got: %v", err)
	}
}

// Admin accounts are only minted through the admin API.
func TestRegister_AdminRolesRejected(t *testing.T) {
	t.Parallel()

	svc := newUserServiceForTest(NewMockUserRepository())

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin} {
		_, err := svc.Register(context.Background(), service.RegisterRequest{
			Name: "Mallory", Email: "mallory@example.com", Password: "correct horse", Role: role,
		})
		if !errors.Is(err, service.ErrUnauthorized) {
			t.Errorf("role %s: expected ErrUnauthorized, got: %v", role, err)
		}
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := newUserServiceForTest(userRepo)

	if _, err := svc.Register(context.Background(), service.RegisterRequest{
		Name: "Dana", Email: "dana@example.com", Password: "correct horse", Role: domain.RoleShipper,
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	result, err := svc.Login(context.Background(), "dana@example.com", "correct horse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.User.Email != "dana@example.com" || result.Token == "" {
		t.Error("expected authenticated user with token")
	}

	if _, err := svc.Login(context.Background(), "dana@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got: %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "correct horse"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// PROFILE UPDATES
// ──────────────────────────────────────────────

// Eligibility is recomputed on every profile write, so fixing the failing
// dimension flips the flag back.
func TestUpdateProfile_RecomputesEligibility(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	trucker := ineligibleTrucker("trucker-1")
	trucker.BenefitsEligible = false
	userRepo.AddUser(trucker)

	svc := newUserServiceForTest(userRepo)

	clean := 0
	updated, err := svc.UpdateProfile(context.Background(), service.UpdateProfileRequest{
		UserID:          "trucker-1",
		TheftComplaints: &clean,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !updated.BenefitsEligible {
		t.Error("clearing the theft record should restore eligibility")
	}

	oldTruck := 12
	updated, err = svc.UpdateProfile(context.Background(), service.UpdateProfileRequest{
		UserID:   "trucker-1",
		TruckAge: &oldTruck,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.BenefitsEligible {
		t.Error("aging truck past the limit should revoke eligibility")
	}
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newUserServiceForTest(NewMockUserRepository())

	name := "Ghost"
	_, err := svc.UpdateProfile(context.Background(), service.UpdateProfileRequest{
		UserID: "ghost",
		Name:   &name,
	})
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

// Token round trip through the manager the service signs with.
func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenManager("test-secret", "loadboard", time.Hour)
	user := eligibleTrucker("trucker-1")

	signed, err := tokens.Generate(user)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if claims.UserID != "trucker-1" || claims.Role != domain.RoleTrucker {
		t.Errorf("unexpected claims: %+v", claims)
	}

	other := auth.NewTokenManager("other-secret", "loadboard", time.Hour)
	if _, err := other.Parse(signed); err == nil {
		t.Error("expected parse to fail with a different secret")
	}
}
