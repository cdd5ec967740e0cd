package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"loadboard/internal/domain"
	"loadboard/internal/redis"
	"loadboard/internal/repository"
	"loadboard/internal/repository/postgres"
)

// loadLockTTL bounds how long a load stays locked if a bid evaluation dies.
const loadLockTTL = 10 * time.Second

// BidService handles bid placement, evaluation, and acceptance.
type BidService struct {
	db                  *sql.DB
	bidRepo             repository.BidRepository
	loadRepo            repository.LoadRepository
	userRepo            repository.UserRepository
	lockStore           redis.LockStoreInterface
	cacheStore          redis.CacheStoreInterface
	notificationService *NotificationService
}

// NewBidService creates a new BidService.
func NewBidService(
	db *sql.DB,
	bidRepo repository.BidRepository,
	loadRepo repository.LoadRepository,
	userRepo repository.UserRepository,
	lockStore redis.LockStoreInterface,
	cacheStore redis.CacheStoreInterface,
	notificationService *NotificationService,
) *BidService {
	return &BidService{
		db:                  db,
		bidRepo:             bidRepo,
		loadRepo:            loadRepo,
		userRepo:            userRepo,
		lockStore:           lockStore,
		cacheStore:          cacheStore,
		notificationService: notificationService,
	}
}

// PlaceBidRequest contains the parameters for placing a bid.
type PlaceBidRequest struct {
	LoadID    string
	TruckerID string
	Amount    float64
	Notes     string
}

// PlaceBidResult contains the stored bid and the eligibility verdict
// computed for the trucker at placement time.
type PlaceBidResult struct {
	Bid        *domain.Bid
	IsEligible bool
}

// PlaceBid records a bid on a pending load and updates the load's winning
// bid if the trucker is eligible and the amount is strictly lower than the
// current winner. Evaluation for a given load is serialized through a
// distributed lock, so at most one bid is compared against the winner at a
// time. Ineligible bids are stored but never considered for the win.
func (s *BidService) PlaceBid(ctx context.Context, req PlaceBidRequest) (*PlaceBidResult, error) {
	if req.LoadID == "" {
		return nil, ErrInvalidLoadID
	}
	if req.TruckerID == "" {
		return nil, ErrInvalidUserID
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidBidAmount
	}

	trucker, err := s.userRepo.GetByID(ctx, req.TruckerID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if trucker.Role != domain.RoleTrucker {
		return nil, ErrUnauthorized
	}

	// Serialize bid evaluation per load. Callers retry on ErrLoadBusy.
	locked, err := s.lockStore.AcquireLoadLock(ctx, req.LoadID, loadLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrLoadBusy
	}
	defer func() {
		_ = s.lockStore.ReleaseLoadLock(ctx, req.LoadID)
	}()

	// Read the load after the lock is held so the winner comparison below
	// sees the latest committed state.
	load, err := s.loadRepo.GetByID(ctx, req.LoadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	if load.Status != domain.LoadStatusPending {
		return nil, ErrLoadNotBiddable
	}

	// Eligibility is frozen here. Later profile changes do not alter the
	// verdict stored on this bid.
	isEligible := trucker.IsEligible()

	now := time.Now()
	bid := &domain.Bid{
		ID:              uuid.New().String(),
		LoadID:          req.LoadID,
		TruckerID:       req.TruckerID,
		Amount:          req.Amount,
		Status:          domain.BidStatusPending,
		Notes:           req.Notes,
		TruckerEligible: isEligible,
		ExpiresAt:       now.Add(domain.BidExpiry),
		CreatedAt:       now,
	}

	if err := s.bidRepo.Create(ctx, bid); err != nil {
		return nil, err
	}

	if isEligible && s.beatsCurrentWinner(ctx, load, req.Amount) {
		if err := s.loadRepo.SetWinningBid(ctx, req.LoadID, bid.ID); err != nil {
			return nil, err
		}
		s.invalidateLoadCache(ctx, req.LoadID)
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBidPlaced(ctx, bid, load)
	}

	return &PlaceBidResult{Bid: bid, IsEligible: isEligible}, nil
}

// beatsCurrentWinner reports whether amount is strictly lower than the
// load's current winning bid. Equal amounts keep the earlier winner. A
// missing or unreadable winner record counts as no winner.
func (s *BidService) beatsCurrentWinner(ctx context.Context, load *domain.Load, amount float64) bool {
	if load.WinningBidID == "" {
		return true
	}

	winner, err := s.bidRepo.GetByID(ctx, load.WinningBidID)
	if err != nil {
		return true
	}

	return amount < winner.Amount
}

// AcceptBidRequest contains the parameters for accepting a bid.
type AcceptBidRequest struct {
	BidID    string
	CallerID string
}

// AcceptBidResult contains the accepted bid and the updated load.
type AcceptBidResult struct {
	Bid  *domain.Bid
	Load *domain.Load
}

// AcceptBid assigns a load to the trucker behind a bid. Preconditions are
// checked in a fixed order before anything is written: the bid must exist,
// then its load, then the caller must be the shipper who owns the load,
// then the bid's stored eligibility verdict must be positive. The bid and
// load updates commit in one transaction.
func (s *BidService) AcceptBid(ctx context.Context, req AcceptBidRequest) (*AcceptBidResult, error) {
	if req.BidID == "" {
		return nil, ErrInvalidBidID
	}

	bid, err := s.bidRepo.GetByID(ctx, req.BidID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrBidNotFound
		}
		return nil, err
	}

	load, err := s.loadRepo.GetByID(ctx, bid.LoadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	// Only the shipper who owns the load accepts bids on it; admins get
	// no override here.
	if load.ShipperID != req.CallerID {
		return nil, ErrUnauthorized
	}

	if !bid.TruckerEligible {
		return nil, ErrIneligibleTrucker
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txBidRepo := postgres.NewBidRepositoryWithTx(tx)
	txLoadRepo := postgres.NewLoadRepositoryWithTx(tx)

	now := time.Now()
	bid.Status = domain.BidStatusAccepted
	bid.AcceptedAt = now

	if err = txBidRepo.Update(ctx, bid); err != nil {
		return nil, err
	}

	load.Status = domain.LoadStatusAssigned
	load.AssignedTruckerID = bid.TruckerID
	load.WinningBidID = bid.ID
	load.Price = bid.Amount

	if err = txLoadRepo.Update(ctx, load); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.invalidateLoadCache(ctx, load.ID)

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBidAccepted(ctx, bid, load)
	}

	return &AcceptBidResult{Bid: bid, Load: load}, nil
}

// RejectBid marks a bid as rejected. Only the load's shipper or an admin
// may reject.
func (s *BidService) RejectBid(ctx context.Context, bidID, callerID string, callerRole domain.Role) (*domain.Bid, error) {
	if bidID == "" {
		return nil, ErrInvalidBidID
	}

	bid, err := s.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrBidNotFound
		}
		return nil, err
	}

	load, err := s.loadRepo.GetByID(ctx, bid.LoadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	if load.ShipperID != callerID && !callerRole.IsAdmin() {
		return nil, ErrUnauthorized
	}

	bid.Status = domain.BidStatusRejected
	bid.RejectedAt = time.Now()

	if err := s.bidRepo.Update(ctx, bid); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyBidRejected(ctx, bid)
	}

	return bid, nil
}

// GetBid retrieves a bid by ID.
func (s *BidService) GetBid(ctx context.Context, bidID string) (*domain.Bid, error) {
	bid, err := s.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return bid, nil
}

// ListBidsForLoad retrieves all bids on a load, lowest amount first.
func (s *BidService) ListBidsForLoad(ctx context.Context, loadID string) ([]*domain.Bid, error) {
	if loadID == "" {
		return nil, ErrInvalidLoadID
	}
	return s.bidRepo.ListByLoad(ctx, loadID)
}

// ListBidsForTrucker retrieves a trucker's bids, newest first.
func (s *BidService) ListBidsForTrucker(ctx context.Context, truckerID string) ([]*domain.Bid, error) {
	if truckerID == "" {
		return nil, ErrInvalidUserID
	}
	return s.bidRepo.ListByTrucker(ctx, truckerID)
}

func (s *BidService) invalidateLoadCache(ctx context.Context, loadID string) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateLoad(ctx, loadID)
}
