package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"loadboard/internal/domain"
	"loadboard/internal/service"
)

// ──────────────────────────────────────────────
// BENEFIT ELIGIBILITY
// ──────────────────────────────────────────────

func activeBenefit(id, name string, criteria domain.EligibilityCriteria) *domain.Benefit {
	return &domain.Benefit{
		ID:        id,
		Name:      name,
		Type:      domain.BenefitTypeDiscount,
		Provider:  "Acme Fuel",
		Discount:  10,
		Criteria:  criteria,
		IsActive:  true,
		ValidFrom: time.Now().Add(-24 * time.Hour),
		CreatedAt: time.Now(),
	}
}

// A trucker who fails the global eligibility policy can still qualify for
// benefits whose criteria don't test the failing dimension.
func TestListEligibleBenefits_PerBenefitCriteria(t *testing.T) {
	t.Parallel()

	benefitRepo := NewMockBenefitRepository()
	userRepo := NewMockUserRepository()

	trucker := ineligibleTrucker("trucker-1")
	userRepo.AddUser(trucker)

	benefitRepo.AddBenefit(activeBenefit("ben-open", "Open to all", domain.EligibilityCriteria{}))
	benefitRepo.AddBenefit(activeBenefit("ben-exp", "Experience only", domain.EligibilityCriteria{
		MinDriverExperience: 5,
	}))
	benefitRepo.AddBenefit(activeBenefit("ben-theft", "Clean theft record", domain.EligibilityCriteria{
		NoTheftComplaints: true,
	}))

	svc := service.NewBenefitService(benefitRepo, userRepo, NewMockCacheStore())

	benefits, err := svc.ListEligibleBenefits(context.Background(), "trucker-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(benefits) != 2 {
		t.Fatalf("expected 2 eligible benefits, got %d", len(benefits))
	}
	got := map[string]bool{}
	for _, b := range benefits {
		got[b.ID] = true
	}
	if !got["ben-open"] || !got["ben-exp"] {
		t.Errorf("unexpected eligible set: %v", got)
	}
	if got["ben-theft"] {
		t.Error("theft-record benefit must be filtered out")
	}
}

func TestListEligibleBenefits_TruckersOnly(t *testing.T) {
	t.Parallel()

	benefitRepo := NewMockBenefitRepository()
	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "shipper-1", Role: domain.RoleShipper})

	svc := service.NewBenefitService(benefitRepo, userRepo, NewMockCacheStore())

	if _, err := svc.ListEligibleBenefits(context.Background(), "shipper-1"); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
	if _, err := svc.ListEligibleBenefits(context.Background(), "ghost"); !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// ACTIVE-BENEFITS CACHE
// ──────────────────────────────────────────────

func TestListActiveBenefits_SecondCallServedFromCache(t *testing.T) {
	t.Parallel()

	benefitRepo := NewMockBenefitRepository()
	benefitRepo.AddBenefit(activeBenefit("ben-1", "Fuel discount", domain.EligibilityCriteria{}))

	svc := service.NewBenefitService(benefitRepo, NewMockUserRepository(), NewMockCacheStore())

	for i := 0; i < 2; i++ {
		benefits, err := svc.ListActiveBenefits(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(benefits) != 1 || benefits[0].ID != "ben-1" {
			t.Fatalf("unexpected benefits on call %d: %+v", i+1, benefits)
		}
	}

	if n := atomic.LoadInt32(&benefitRepo.ListActiveCallCount); n != 1 {
		t.Errorf("repository hit %d times, want 1", n)
	}
}

func TestBenefitWrites_InvalidateActiveCache(t *testing.T) {
	t.Parallel()

	benefitRepo := NewMockBenefitRepository()
	cacheStore := NewMockCacheStore()
	svc := service.NewBenefitService(benefitRepo, NewMockUserRepository(), cacheStore)

	created, err := svc.CreateBenefit(context.Background(), service.CreateBenefitRequest{
		Name:     "Tire service",
		Type:     domain.BenefitTypeService,
		Provider: "RoadCo",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !created.IsActive {
		t.Error("new benefits start active")
	}

	created.Discount = 15
	if _, err := svc.UpdateBenefit(context.Background(), created); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if err := svc.DeleteBenefit(context.Background(), created.ID); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if n := atomic.LoadInt32(&cacheStore.InvalidateBenefitsCallCount); n != 3 {
		t.Errorf("cache invalidated %d times, want 3", n)
	}
}

func TestListActiveBenefits_FallsBackWhenCacheEmpty(t *testing.T) {
	t.Parallel()

	benefitRepo := NewMockBenefitRepository()
	benefitRepo.AddBenefit(activeBenefit("ben-1", "Insurance", domain.EligibilityCriteria{NoAccidents: true}))

	svc := service.NewBenefitService(benefitRepo, NewMockUserRepository(), nil)

	benefits, err := svc.ListActiveBenefits(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(benefits) != 1 {
		t.Fatalf("expected 1 benefit, got %d", len(benefits))
	}
}
