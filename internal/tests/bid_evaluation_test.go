package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"loadboard/internal/domain"
	"loadboard/internal/service"
)

// ──────────────────────────────────────────────
// BID PLACEMENT AND WINNER EVALUATION
// ──────────────────────────────────────────────

func eligibleTrucker(id string) *domain.User {
	return &domain.User{
		ID:                  id,
		Name:                "Trucker " + id,
		Email:               id + "@example.com",
		Role:                domain.RoleTrucker,
		Accidents:           0,
		TheftComplaints:     0,
		TruckAge:            3,
		DriversLicenseYears: 8,
		Status:              domain.UserStatusActive,
	}
}

func ineligibleTrucker(id string) *domain.User {
	u := eligibleTrucker(id)
	u.TheftComplaints = 1
	return u
}

func pendingLoad(id, shipperID string) *domain.Load {
	return &domain.Load{
		ID:           id,
		ShipperID:    shipperID,
		Origin:       "Chicago",
		Destination:  "Dallas",
		ShipmentDate: time.Now().Add(48 * time.Hour),
		Weight:       1200,
		Status:       domain.LoadStatusPending,
		CreatedAt:    time.Now(),
	}
}

func newBidServiceForTest(bidRepo *MockBidRepository, loadRepo *MockLoadRepository, userRepo *MockUserRepository, lockStore *MockLockStore) *service.BidService {
	return service.NewBidService(nil, bidRepo, loadRepo, userRepo, lockStore, NewMockCacheStore(), nil)
}

func TestPlaceBid_FirstEligibleBidWins(t *testing.T) {
	t.Parallel()

	bidRepo := NewMockBidRepository()
	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()

	userRepo.AddUser(eligibleTrucker("trucker-1"))
	loadRepo.AddLoad(pendingLoad("load-1", "shipper-1"))

	svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

	result, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
		LoadID:    "load-1",
		TruckerID: "trucker-1",
		Amount:    100,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !result.IsEligible {
		t.Error("expected trucker to be eligible")
	}

	load := loadRepo.GetLoad("load-1")
	if load.WinningBidID != result.Bid.ID {
		t.Errorf("expected winning bid %s, got %s", result.Bid.ID, load.WinningBidID)
	}
}

// The winner after each bid in the sequence (100 eligible, 90 ineligible,
// 80 eligible, 95 eligible) must be 100, 100, 80, 80: ineligible bids are
// stored but never compared, and higher amounts never displace the winner.
func TestPlaceBid_WinnerEvaluationSequence(t *testing.T) {
	t.Parallel()

	bidRepo := NewMockBidRepository()
	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()

	userRepo.AddUser(eligibleTrucker("trucker-a"))
	userRepo.AddUser(ineligibleTrucker("trucker-b"))
	userRepo.AddUser(eligibleTrucker("trucker-c"))
	userRepo.AddUser(eligibleTrucker("trucker-d"))
	loadRepo.AddLoad(pendingLoad("load-1", "shipper-1"))

	svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

	steps := []struct {
		trucker    string
		amount     float64
		wantAmount float64 // amount of the winning bid after this step
	}{
		{"trucker-a", 100, 100},
		{"trucker-b", 90, 100},
		{"trucker-c", 80, 80},
		{"trucker-d", 95, 80},
	}

	for i, step := range steps {
		result, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
			LoadID:    "load-1",
			TruckerID: step.trucker,
			Amount:    step.amount,
		})
		if err != nil {
			t.Fatalf("step %d: expected no error, got: %v", i, err)
		}
		if result.Bid == nil {
			t.Fatalf("step %d: expected bid to be stored", i)
		}

		load := loadRepo.GetLoad("load-1")
		winner := bidRepo.GetBid(load.WinningBidID)
		if winner == nil {
			t.Fatalf("step %d: expected a winning bid", i)
		}
		if winner.Amount != step.wantAmount {
			t.Errorf("step %d: winning amount = %.0f, want %.0f", i, winner.Amount, step.wantAmount)
		}
	}
}

// An equal amount does not displace the current winner.
func TestPlaceBid_EqualAmountKeepsEarlierWinner(t *testing.T) {
	t.Parallel()

	bidRepo := NewMockBidRepository()
	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()

	userRepo.AddUser(eligibleTrucker("trucker-1"))
	userRepo.AddUser(eligibleTrucker("trucker-2"))
	loadRepo.AddLoad(pendingLoad("load-1", "shipper-1"))

	svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

	first, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
		LoadID: "load-1", TruckerID: "trucker-1", Amount: 80,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
		LoadID: "load-1", TruckerID: "trucker-2", Amount: 80,
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	load := loadRepo.GetLoad("load-1")
	if load.WinningBidID != first.Bid.ID {
		t.Errorf("expected first bid %s to stay winner, got %s", first.Bid.ID, load.WinningBidID)
	}
}

// The eligibility verdict is frozen on the bid at placement time. Fixing
// the trucker's profile afterwards does not change the stored verdict.
func TestPlaceBid_EligibilitySnapshotFrozen(t *testing.T) {
	t.Parallel()

	bidRepo := NewMockBidRepository()
	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()

	trucker := ineligibleTrucker("trucker-1")
	userRepo.AddUser(trucker)
	loadRepo.AddLoad(pendingLoad("load-1", "shipper-1"))

	svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

	result, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
		LoadID: "load-1", TruckerID: "trucker-1", Amount: 50,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.IsEligible {
		t.Error("expected trucker to be ineligible at placement")
	}

	// Clean up the profile after the fact.
	trucker.TheftComplaints = 0
	userRepo.AddUser(trucker)

	stored := bidRepo.GetBid(result.Bid.ID)
	if stored.TruckerEligible {
		t.Error("stored verdict must stay frozen at placement time")
	}

	// The lowest amount on the board belongs to an ineligible bid, so
	// there is still no winner.
	load := loadRepo.GetLoad("load-1")
	if load.WinningBidID != "" {
		t.Errorf("expected no winning bid, got %s", load.WinningBidID)
	}
}

func TestPlaceBid_NonPendingLoadRejected(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.LoadStatus{
		domain.LoadStatusAssigned,
		domain.LoadStatusInTransit,
		domain.LoadStatusDelivered,
		domain.LoadStatusCancelled,
	} {
		status := status
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()

			bidRepo := NewMockBidRepository()
			loadRepo := NewMockLoadRepository()
			userRepo := NewMockUserRepository()
			lockStore := NewMockLockStore()

			userRepo.AddUser(eligibleTrucker("trucker-1"))
			load := pendingLoad("load-1", "shipper-1")
			load.Status = status
			loadRepo.AddLoad(load)

			svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

			_, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
				LoadID: "load-1", TruckerID: "trucker-1", Amount: 100,
			})
			if !errors.Is(err, service.ErrLoadNotBiddable) {
				t.Errorf("expected ErrLoadNotBiddable, got: %v", err)
			}

			if bidRepo.CreateCallCount != 0 {
				t.Error("no bid must be stored for a non-pending load")
			}
		})
	}
}

func TestPlaceBid_LockHeldReturnsBusy(t *testing.T) {
	t.Parallel()

	bidRepo := NewMockBidRepository()
	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()
	lockStore.DenyAcquire = true

	userRepo.AddUser(eligibleTrucker("trucker-1"))
	loadRepo.AddLoad(pendingLoad("load-1", "shipper-1"))

	svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

	_, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
		LoadID: "load-1", TruckerID: "trucker-1", Amount: 100,
	})
	if !errors.Is(err, service.ErrLoadBusy) {
		t.Errorf("expected ErrLoadBusy, got: %v", err)
	}

	if bidRepo.CreateCallCount != 0 {
		t.Error("no bid must be stored while the load is locked")
	}
}

func TestPlaceBid_LockReleasedAfterPlacement(t *testing.T) {
	t.Parallel()

	bidRepo := NewMockBidRepository()
	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()

	userRepo.AddUser(eligibleTrucker("trucker-1"))
	loadRepo.AddLoad(pendingLoad("load-1", "shipper-1"))

	svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

	if _, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
		LoadID: "load-1", TruckerID: "trucker-1", Amount: 100,
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if lockStore.IsLocked("load-1") {
		t.Error("lock must be released after placement")
	}
	if lockStore.ReleaseCallCount != 1 {
		t.Errorf("expected 1 release, got %d", lockStore.ReleaseCallCount)
	}
}

func TestPlaceBid_ExpiryIsTwentyFourHours(t *testing.T) {
	t.Parallel()

	bidRepo := NewMockBidRepository()
	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()

	userRepo.AddUser(eligibleTrucker("trucker-1"))
	loadRepo.AddLoad(pendingLoad("load-1", "shipper-1"))

	svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

	result, err := svc.PlaceBid(context.Background(), service.PlaceBidRequest{
		LoadID: "load-1", TruckerID: "trucker-1", Amount: 100,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := result.Bid.ExpiresAt.Sub(result.Bid.CreatedAt); got != domain.BidExpiry {
		t.Errorf("expected expiry %v after creation, got %v", domain.BidExpiry, got)
	}
}

func TestPlaceBid_Validation(t *testing.T) {
	t.Parallel()

	bidRepo := NewMockBidRepository()
	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	lockStore := NewMockLockStore()

	shipper := eligibleTrucker("shipper-1")
	shipper.Role = domain.RoleShipper
	userRepo.AddUser(shipper)
	userRepo.AddUser(eligibleTrucker("trucker-1"))
	loadRepo.AddLoad(pendingLoad("load-1", "shipper-1"))

	svc := newBidServiceForTest(bidRepo, loadRepo, userRepo, lockStore)

	testCases := []struct {
		name    string
		req     service.PlaceBidRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			req:     service.PlaceBidRequest{LoadID: "load-1", TruckerID: "trucker-1", Amount: 0},
			wantErr: service.ErrInvalidBidAmount,
		},
		{
			name:    "negative amount",
			req:     service.PlaceBidRequest{LoadID: "load-1", TruckerID: "trucker-1", Amount: -10},
			wantErr: service.ErrInvalidBidAmount,
		},
		{
			name:    "empty load id",
			req:     service.PlaceBidRequest{LoadID: "", TruckerID: "trucker-1", Amount: 100},
			wantErr: service.ErrInvalidLoadID,
		},
		{
			name:    "unknown load",
			req:     service.PlaceBidRequest{LoadID: "load-missing", TruckerID: "trucker-1", Amount: 100},
			wantErr: service.ErrLoadNotFound,
		},
		{
			name:    "unknown trucker",
			req:     service.PlaceBidRequest{LoadID: "load-1", TruckerID: "trucker-missing", Amount: 100},
			wantErr: service.ErrUserNotFound,
		},
		{
			name:    "shipper cannot bid",
			req:     service.PlaceBidRequest{LoadID: "load-1", TruckerID: "shipper-1", Amount: 100},
			wantErr: service.ErrUnauthorized,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceBid(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}
