package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"loadboard/internal/domain"
	"loadboard/internal/redis"
	"loadboard/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role, limit int) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0)
	for _, u := range m.users {
		if u.Role == role {
			copy := *u
			result = append(result, &copy)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, u := range m.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

func (m *MockUserRepository) CountEligibleTruckers(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, u := range m.users {
		if u.Role == domain.RoleTrucker && u.IsEligible() {
			count++
		}
	}
	return count, nil
}

// GetUser returns a user for test assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

// ──────────────────────────────────────────────
// MOCK LOAD REPOSITORY
// ──────────────────────────────────────────────

// MockLoadRepository is a mock implementation of LoadRepository.
type MockLoadRepository struct {
	mu    sync.RWMutex
	loads map[string]*domain.Load

	// Counters for verification
	CreateCallCount        int32
	UpdateCallCount        int32
	SetWinningBidCallCount int32

	// Error injection
	CreateError        error
	UpdateError        error
	SetWinningBidError error
}

// NewMockLoadRepository creates a new mock load repository.
func NewMockLoadRepository() *MockLoadRepository {
	return &MockLoadRepository{
		loads: make(map[string]*domain.Load),
	}
}

// AddLoad adds a load to the mock repository.
func (m *MockLoadRepository) AddLoad(load *domain.Load) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads[load.ID] = load
}

func (m *MockLoadRepository) Create(ctx context.Context, load *domain.Load) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads[load.ID] = load
	return nil
}

func (m *MockLoadRepository) GetByID(ctx context.Context, id string) (*domain.Load, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	load, ok := m.loads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *load
	return &copy, nil
}

func (m *MockLoadRepository) Update(ctx context.Context, load *domain.Load) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loads[load.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *load
	m.loads[load.ID] = &copy
	return nil
}

func (m *MockLoadRepository) SetWinningBid(ctx context.Context, loadID, bidID string) error {
	atomic.AddInt32(&m.SetWinningBidCallCount, 1)
	if m.SetWinningBidError != nil {
		return m.SetWinningBidError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	load, ok := m.loads[loadID]
	if !ok {
		return repository.ErrNotFound
	}
	load.WinningBidID = bidID
	return nil
}

func (m *MockLoadRepository) List(ctx context.Context, filter repository.LoadFilter) ([]*domain.Load, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Load, 0)
	for _, l := range m.loads {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.ShipperID != "" && l.ShipperID != filter.ShipperID {
			continue
		}
		copy := *l
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockLoadRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.loads), nil
}

func (m *MockLoadRepository) CountByStatus(ctx context.Context, status domain.LoadStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, l := range m.loads {
		if l.Status == status {
			count++
		}
	}
	return count, nil
}

// GetLoad returns a load for test assertions.
func (m *MockLoadRepository) GetLoad(id string) *domain.Load {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads[id]
}

// ──────────────────────────────────────────────
// MOCK BID REPOSITORY
// ──────────────────────────────────────────────

// MockBidRepository is a mock implementation of BidRepository.
type MockBidRepository struct {
	mu   sync.RWMutex
	bids map[string]*domain.Bid

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockBidRepository creates a new mock bid repository.
func NewMockBidRepository() *MockBidRepository {
	return &MockBidRepository{
		bids: make(map[string]*domain.Bid),
	}
}

// AddBid adds a bid to the mock repository.
func (m *MockBidRepository) AddBid(bid *domain.Bid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bids[bid.ID] = bid
}

func (m *MockBidRepository) Create(ctx context.Context, bid *domain.Bid) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *bid
	m.bids[bid.ID] = &copy
	return nil
}

func (m *MockBidRepository) GetByID(ctx context.Context, id string) (*domain.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bid, ok := m.bids[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *bid
	return &copy, nil
}

func (m *MockBidRepository) Update(ctx context.Context, bid *domain.Bid) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bids[bid.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *bid
	m.bids[bid.ID] = &copy
	return nil
}

func (m *MockBidRepository) ListByLoad(ctx context.Context, loadID string) ([]*domain.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Bid, 0)
	for _, b := range m.bids {
		if b.LoadID == loadID {
			copy := *b
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Amount < result[j].Amount
	})
	return result, nil
}

func (m *MockBidRepository) ListByTrucker(ctx context.Context, truckerID string) ([]*domain.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Bid, 0)
	for _, b := range m.bids {
		if b.TruckerID == truckerID {
			copy := *b
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockBidRepository) ListAll(ctx context.Context, limit int) ([]*domain.Bid, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Bid, 0, len(m.bids))
	for _, b := range m.bids {
		copy := *b
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockBidRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bids), nil
}

// GetBid returns a bid for test assertions.
func (m *MockBidRepository) GetBid(id string) *domain.Bid {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bids[id]
}

// ──────────────────────────────────────────────
// MOCK BENEFIT REPOSITORY
// ──────────────────────────────────────────────

// MockBenefitRepository is a mock implementation of BenefitRepository.
type MockBenefitRepository struct {
	mu       sync.RWMutex
	benefits map[string]*domain.Benefit

	// Counters for verification
	CreateCallCount     int32
	ListActiveCallCount int32

	// Error injection
	CreateError     error
	ListActiveError error
}

// NewMockBenefitRepository creates a new mock benefit repository.
func NewMockBenefitRepository() *MockBenefitRepository {
	return &MockBenefitRepository{
		benefits: make(map[string]*domain.Benefit),
	}
}

// AddBenefit adds a benefit to the mock repository.
func (m *MockBenefitRepository) AddBenefit(benefit *domain.Benefit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.benefits[benefit.ID] = benefit
}

func (m *MockBenefitRepository) Create(ctx context.Context, benefit *domain.Benefit) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.benefits[benefit.ID] = benefit
	return nil
}

func (m *MockBenefitRepository) GetByID(ctx context.Context, id string) (*domain.Benefit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	benefit, ok := m.benefits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *benefit
	return &copy, nil
}

func (m *MockBenefitRepository) Update(ctx context.Context, benefit *domain.Benefit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.benefits[benefit.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *benefit
	m.benefits[benefit.ID] = &copy
	return nil
}

func (m *MockBenefitRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.benefits[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.benefits, id)
	return nil
}

func (m *MockBenefitRepository) ListActive(ctx context.Context) ([]*domain.Benefit, error) {
	atomic.AddInt32(&m.ListActiveCallCount, 1)
	if m.ListActiveError != nil {
		return nil, m.ListActiveError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Benefit, 0)
	for _, b := range m.benefits {
		if b.IsActive {
			copy := *b
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *MockBenefitRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.benefits), nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Behavior control
	AcquireError error
	DenyAcquire  bool
	HeldLoadIDs  map[string]bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks:       make(map[string]bool),
		HeldLoadIDs: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireLoadLock(ctx context.Context, loadID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DenyAcquire || m.HeldLoadIDs[loadID] || m.locks[loadID] {
		return false, nil
	}
	m.locks[loadID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseLoadLock(ctx context.Context, loadID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, loadID)
	return nil
}

// IsLocked reports whether the mock currently holds a lock for the load.
func (m *MockLockStore) IsLocked(loadID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[loadID]
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu       sync.Mutex
	loads    map[string]*domain.Load
	benefits []byte

	// Counters for verification
	InvalidateLoadCallCount     int32
	InvalidateBenefitsCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		loads: make(map[string]*domain.Load),
	}
}

func (m *MockCacheStore) GetLoad(ctx context.Context, loadID string) (*domain.Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads[loadID], nil
}

func (m *MockCacheStore) SetLoad(ctx context.Context, load *domain.Load) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads[load.ID] = load
	return nil
}

func (m *MockCacheStore) InvalidateLoad(ctx context.Context, loadID string) error {
	atomic.AddInt32(&m.InvalidateLoadCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.loads, loadID)
	return nil
}

func (m *MockCacheStore) GetActiveBenefits(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.benefits, nil
}

func (m *MockCacheStore) SetActiveBenefits(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.benefits = data
	return nil
}

func (m *MockCacheStore) InvalidateActiveBenefits(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateBenefitsCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.benefits = nil
	return nil
}

// ──────────────────────────────────────────────
// MOCK TRACKING STORE
// ──────────────────────────────────────────────

// MockTrackingStore is a mock implementation of TrackingStoreInterface.
type MockTrackingStore struct {
	mu        sync.Mutex
	positions map[string]redis.LoadPosition

	// Counters for verification
	UpdateCallCount int32
	RemoveCallCount int32
}

// NewMockTrackingStore creates a new mock tracking store.
func NewMockTrackingStore() *MockTrackingStore {
	return &MockTrackingStore{
		positions: make(map[string]redis.LoadPosition),
	}
}

func (m *MockTrackingStore) UpdatePosition(ctx context.Context, loadID string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[loadID] = redis.LoadPosition{LoadID: loadID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockTrackingStore) FindNearbyLoads(ctx context.Context, lat, lng, radiusKm float64) ([]redis.LoadPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]redis.LoadPosition, 0, len(m.positions))
	for _, p := range m.positions {
		result = append(result, p)
	}
	return result, nil
}

func (m *MockTrackingStore) RemovePosition(ctx context.Context, loadID string) error {
	atomic.AddInt32(&m.RemoveCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, loadID)
	return nil
}

// GetPosition returns a position for test assertions.
func (m *MockTrackingStore) GetPosition(loadID string) (redis.LoadPosition, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[loadID]
	return p, ok
}

// ──────────────────────────────────────────────
// MOCK TRANSACTION REPOSITORY
// ──────────────────────────────────────────────

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.Transaction

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockTransactionRepository creates a new mock transaction repository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		txns: make(map[string]*domain.Transaction),
	}
}

// AddTransaction adds a transaction to the mock repository.
func (m *MockTransactionRepository) AddTransaction(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns[txn.ID] = txn
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *txn
	m.txns[txn.ID] = &copy
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	txn, ok := m.txns[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *txn
	return &copy, nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[txn.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *txn
	m.txns[txn.ID] = &copy
	return nil
}

func (m *MockTransactionRepository) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Transaction, 0, len(m.txns))
	for _, txn := range m.txns {
		copy := *txn
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	all, _ := m.ListAll(ctx)
	result := make([]*domain.Transaction, 0, len(all))
	for _, txn := range all {
		if txn.UserID == userID {
			result = append(result, txn)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) ListByLoad(ctx context.Context, loadID string) ([]*domain.Transaction, error) {
	all, _ := m.ListAll(ctx)
	result := make([]*domain.Transaction, 0, len(all))
	for _, txn := range all {
		if txn.LoadID == loadID {
			result = append(result, txn)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txns), nil
}
