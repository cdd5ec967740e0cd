package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"loadboard/internal/domain"
	"loadboard/internal/redis"
	"loadboard/internal/repository"
)

// LoadService handles load creation, lifecycle, and tracking.
type LoadService struct {
	loadRepo            repository.LoadRepository
	userRepo            repository.UserRepository
	trackingStore       redis.TrackingStoreInterface
	cacheStore          redis.CacheStoreInterface
	notificationService *NotificationService
}

// NewLoadService creates a new LoadService.
func NewLoadService(
	loadRepo repository.LoadRepository,
	userRepo repository.UserRepository,
	trackingStore redis.TrackingStoreInterface,
	cacheStore redis.CacheStoreInterface,
	notificationService *NotificationService,
) *LoadService {
	return &LoadService{
		loadRepo:            loadRepo,
		userRepo:            userRepo,
		trackingStore:       trackingStore,
		cacheStore:          cacheStore,
		notificationService: notificationService,
	}
}

// CreateLoadRequest contains the parameters for posting a load.
type CreateLoadRequest struct {
	ShipperID    string
	Origin       string
	Destination  string
	ShipmentDate time.Time
	Weight       float64
	Dimensions   domain.Dimensions
}

// CreateLoad posts a new load in pending status.
func (s *LoadService) CreateLoad(ctx context.Context, req CreateLoadRequest) (*domain.Load, error) {
	if req.ShipperID == "" {
		return nil, ErrInvalidUserID
	}

	shipper, err := s.userRepo.GetByID(ctx, req.ShipperID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if shipper.Role != domain.RoleShipper && !shipper.Role.IsAdmin() {
		return nil, ErrUnauthorized
	}

	load := &domain.Load{
		ID:            uuid.New().String(),
		ShipperID:     req.ShipperID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		ShipmentDate:  req.ShipmentDate,
		Weight:        req.Weight,
		Dimensions:    req.Dimensions,
		Status:        domain.LoadStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.loadRepo.Create(ctx, load); err != nil {
		return nil, err
	}

	return load, nil
}

// GetLoad retrieves a load by ID, serving from cache when possible.
// Every mutation path invalidates the cached entry, so staleness is
// bounded by the cache TTL between a miss and the next write.
func (s *LoadService) GetLoad(ctx context.Context, loadID string) (*domain.Load, error) {
	if loadID == "" {
		return nil, ErrInvalidLoadID
	}

	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetLoad(ctx, loadID); err == nil && cached != nil {
			return cached, nil
		}
	}

	load, err := s.loadRepo.GetByID(ctx, loadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetLoad(ctx, load)
	}

	return load, nil
}

// ListLoads retrieves loads matching the filter. Shippers only see their
// own loads; the handler layer sets ShipperID for them before calling.
func (s *LoadService) ListLoads(ctx context.Context, filter repository.LoadFilter) ([]*domain.Load, error) {
	return s.loadRepo.List(ctx, filter)
}

// UpdateStatusRequest contains the parameters for an explicit status change.
type UpdateStatusRequest struct {
	LoadID     string
	NewStatus  domain.LoadStatus
	CallerID   string
	CallerRole domain.Role
}

// UpdateStatus moves a load through its lifecycle. The transition must
// exist in the lifecycle table for the caller's role, and the caller must
// be the owning shipper (for cancellation), the assigned trucker (for
// transit and delivery), or an admin.
func (s *LoadService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*domain.Load, error) {
	if req.LoadID == "" {
		return nil, ErrInvalidLoadID
	}

	load, err := s.loadRepo.GetByID(ctx, req.LoadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	// Admins may perform any transition that exists; everyone else is
	// bound to the roles in the lifecycle table plus an ownership check.
	if req.CallerRole.IsAdmin() {
		if !domain.TransitionExists(load.Status, req.NewStatus) {
			return nil, ErrInvalidTransition
		}
	} else {
		if !domain.CanTransition(load.Status, req.NewStatus, req.CallerRole) {
			return nil, ErrInvalidTransition
		}
		switch req.CallerRole {
		case domain.RoleShipper:
			if load.ShipperID != req.CallerID {
				return nil, ErrUnauthorized
			}
		case domain.RoleTrucker:
			if load.AssignedTruckerID != req.CallerID {
				return nil, ErrUnauthorized
			}
		default:
			return nil, ErrUnauthorized
		}
	}

	now := time.Now()
	load.Status = req.NewStatus

	switch req.NewStatus {
	case domain.LoadStatusInTransit:
		if load.PickupTime.IsZero() {
			load.PickupTime = now
		}
	case domain.LoadStatusDelivered:
		load.DeliveryTime = now
	}

	if err := s.loadRepo.Update(ctx, load); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, load.ID)

	if req.NewStatus.IsTerminal() && s.trackingStore != nil {
		_ = s.trackingStore.RemovePosition(ctx, load.ID)
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyLoadStatusChanged(ctx, load)
	}

	return load, nil
}

// UpdateLocationRequest contains the parameters for a tracking update.
type UpdateLocationRequest struct {
	LoadID    string
	TruckerID string
	Lat       float64
	Lng       float64
	Address   string
}

// UpdateLocation records a tracking ping from the assigned trucker. The
// first ping on an assigned load moves it to in transit and stamps the
// pickup time; later pings only refresh the position.
func (s *LoadService) UpdateLocation(ctx context.Context, req UpdateLocationRequest) (*domain.Load, error) {
	if req.LoadID == "" {
		return nil, ErrInvalidLoadID
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		return nil, ErrInvalidLocation
	}

	load, err := s.loadRepo.GetByID(ctx, req.LoadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	if load.AssignedTruckerID != req.TruckerID {
		return nil, ErrUnauthorized
	}

	if load.Status != domain.LoadStatusAssigned && load.Status != domain.LoadStatusInTransit {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	load.CurrentLocation = &domain.Location{
		Lat:       req.Lat,
		Lng:       req.Lng,
		Address:   req.Address,
		UpdatedAt: now,
	}

	if load.Status == domain.LoadStatusAssigned {
		load.Status = domain.LoadStatusInTransit
		load.PickupTime = now
	}

	if err := s.loadRepo.Update(ctx, load); err != nil {
		return nil, err
	}

	if s.trackingStore != nil {
		_ = s.trackingStore.UpdatePosition(ctx, load.ID, req.Lat, req.Lng)
	}

	s.invalidateCache(ctx, load.ID)

	return load, nil
}

// AddAlert attaches an alert to a load. Only the owning shipper or an
// admin may add alerts.
func (s *LoadService) AddAlert(ctx context.Context, loadID, callerID string, callerRole domain.Role, alertType, message string) (*domain.Load, error) {
	if loadID == "" {
		return nil, ErrInvalidLoadID
	}

	load, err := s.loadRepo.GetByID(ctx, loadID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrLoadNotFound
		}
		return nil, err
	}

	if load.ShipperID != callerID && !callerRole.IsAdmin() {
		return nil, ErrUnauthorized
	}

	load.Alerts = append(load.Alerts, domain.Alert{
		Type:      alertType,
		Message:   message,
		CreatedAt: time.Now(),
	})

	if err := s.loadRepo.Update(ctx, load); err != nil {
		return nil, err
	}

	return load, nil
}

// FindNearbyLoads returns loads currently reporting positions within the
// given radius.
func (s *LoadService) FindNearbyLoads(ctx context.Context, lat, lng, radiusKm float64) ([]redis.LoadPosition, error) {
	if s.trackingStore == nil {
		return nil, nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidLocation
	}
	return s.trackingStore.FindNearbyLoads(ctx, lat, lng, radiusKm)
}

func (s *LoadService) invalidateCache(ctx context.Context, loadID string) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateLoad(ctx, loadID)
}
