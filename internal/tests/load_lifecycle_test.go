package tests

import (
	"context"
	"errors"
	"testing"

	"loadboard/internal/domain"
	"loadboard/internal/service"
)

// ──────────────────────────────────────────────
// LOAD LIFECYCLE
// ──────────────────────────────────────────────

func newLoadServiceForTest(loadRepo *MockLoadRepository, userRepo *MockUserRepository, trackingStore *MockTrackingStore) *service.LoadService {
	return service.NewLoadService(loadRepo, userRepo, trackingStore, NewMockCacheStore(), nil)
}

func assignedLoad(id, shipperID, truckerID string) *domain.Load {
	load := pendingLoad(id, shipperID)
	load.Status = domain.LoadStatusAssigned
	load.AssignedTruckerID = truckerID
	return load
}

func TestUpdateStatus_HappyPathToDelivered(t *testing.T) {
	t.Parallel()

	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	loadRepo.AddLoad(assignedLoad("load-1", "shipper-1", "trucker-1"))

	svc := newLoadServiceForTest(loadRepo, userRepo, NewMockTrackingStore())

	load, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		LoadID: "load-1", NewStatus: domain.LoadStatusInTransit,
		CallerID: "trucker-1", CallerRole: domain.RoleTrucker,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if load.Status != domain.LoadStatusInTransit {
		t.Errorf("status = %s, want in transit", load.Status)
	}
	if load.PickupTime.IsZero() {
		t.Error("expected pickup time on transit start")
	}

	load, err = svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		LoadID: "load-1", NewStatus: domain.LoadStatusDelivered,
		CallerID: "trucker-1", CallerRole: domain.RoleTrucker,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if load.Status != domain.LoadStatusDelivered {
		t.Errorf("status = %s, want delivered", load.Status)
	}
	if load.DeliveryTime.IsZero() {
		t.Error("expected delivery time")
	}
}

func TestUpdateStatus_SkippingStagesRejected(t *testing.T) {
	t.Parallel()

	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	loadRepo.AddLoad(assignedLoad("load-1", "shipper-1", "trucker-1"))

	svc := newLoadServiceForTest(loadRepo, userRepo, NewMockTrackingStore())

	_, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		LoadID: "load-1", NewStatus: domain.LoadStatusDelivered,
		CallerID: "trucker-1", CallerRole: domain.RoleTrucker,
	})
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got: %v", err)
	}

	if loadRepo.GetLoad("load-1").Status != domain.LoadStatusAssigned {
		t.Error("rejected transition must not change the load")
	}
}

func TestUpdateStatus_CancellationRules(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		status     domain.LoadStatus
		callerID   string
		callerRole domain.Role
		wantErr    error
	}{
		{"owning shipper cancels pending", domain.LoadStatusPending, "shipper-1", domain.RoleShipper, nil},
		{"admin cancels pending", domain.LoadStatusPending, "admin-1", domain.RoleAdmin, nil},
		{"other shipper cannot cancel", domain.LoadStatusPending, "shipper-2", domain.RoleShipper, service.ErrUnauthorized},
		{"trucker cannot cancel", domain.LoadStatusPending, "trucker-1", domain.RoleTrucker, service.ErrInvalidTransition},
		{"no cancel once assigned", domain.LoadStatusAssigned, "shipper-1", domain.RoleShipper, service.ErrInvalidTransition},
		{"no cancel in transit", domain.LoadStatusInTransit, "shipper-1", domain.RoleShipper, service.ErrInvalidTransition},
		{"no cancel after delivery", domain.LoadStatusDelivered, "shipper-1", domain.RoleShipper, service.ErrInvalidTransition},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			loadRepo := NewMockLoadRepository()
			userRepo := NewMockUserRepository()
			load := pendingLoad("load-1", "shipper-1")
			load.Status = tc.status
			load.AssignedTruckerID = "trucker-1"
			loadRepo.AddLoad(load)

			svc := newLoadServiceForTest(loadRepo, userRepo, NewMockTrackingStore())

			_, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
				LoadID: "load-1", NewStatus: domain.LoadStatusCancelled,
				CallerID: tc.callerID, CallerRole: tc.callerRole,
			})
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestUpdateStatus_AssignedTruckerOnly(t *testing.T) {
	t.Parallel()

	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	loadRepo.AddLoad(assignedLoad("load-1", "shipper-1", "trucker-1"))

	svc := newLoadServiceForTest(loadRepo, userRepo, NewMockTrackingStore())

	_, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		LoadID: "load-1", NewStatus: domain.LoadStatusInTransit,
		CallerID: "trucker-2", CallerRole: domain.RoleTrucker,
	})
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// TRACKING UPDATES
// ──────────────────────────────────────────────

// The first tracking ping on an assigned load moves it to in transit and
// stamps the pickup time.
func TestUpdateLocation_FirstPingStartsTransit(t *testing.T) {
	t.Parallel()

	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	trackingStore := NewMockTrackingStore()
	loadRepo.AddLoad(assignedLoad("load-1", "shipper-1", "trucker-1"))

	svc := newLoadServiceForTest(loadRepo, userRepo, trackingStore)

	load, err := svc.UpdateLocation(context.Background(), service.UpdateLocationRequest{
		LoadID: "load-1", TruckerID: "trucker-1", Lat: 41.88, Lng: -87.63, Address: "Chicago, IL",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if load.Status != domain.LoadStatusInTransit {
		t.Errorf("status = %s, want in transit", load.Status)
	}
	if load.PickupTime.IsZero() {
		t.Error("expected pickup time on first ping")
	}
	if load.CurrentLocation == nil || load.CurrentLocation.Lat != 41.88 {
		t.Error("expected current location to be recorded")
	}

	if pos, ok := trackingStore.GetPosition("load-1"); !ok || pos.Lat != 41.88 {
		t.Error("expected position mirrored to the tracking store")
	}
}

// Later pings refresh the position without touching status or pickup time.
func TestUpdateLocation_LaterPingsOnlyRefreshPosition(t *testing.T) {
	t.Parallel()

	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	trackingStore := NewMockTrackingStore()
	loadRepo.AddLoad(assignedLoad("load-1", "shipper-1", "trucker-1"))

	svc := newLoadServiceForTest(loadRepo, userRepo, trackingStore)

	first, err := svc.UpdateLocation(context.Background(), service.UpdateLocationRequest{
		LoadID: "load-1", TruckerID: "trucker-1", Lat: 41.88, Lng: -87.63,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	second, err := svc.UpdateLocation(context.Background(), service.UpdateLocationRequest{
		LoadID: "load-1", TruckerID: "trucker-1", Lat: 39.79, Lng: -89.64,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if second.Status != domain.LoadStatusInTransit {
		t.Errorf("status = %s, want in transit", second.Status)
	}
	if !second.PickupTime.Equal(first.PickupTime) {
		t.Error("pickup time must not move on later pings")
	}
	if second.CurrentLocation.Lat != 39.79 {
		t.Error("expected position to be refreshed")
	}
}

func TestUpdateLocation_Guards(t *testing.T) {
	t.Parallel()

	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	loadRepo.AddLoad(assignedLoad("load-1", "shipper-1", "trucker-1"))

	delivered := assignedLoad("load-2", "shipper-1", "trucker-1")
	delivered.Status = domain.LoadStatusDelivered
	loadRepo.AddLoad(delivered)

	svc := newLoadServiceForTest(loadRepo, userRepo, NewMockTrackingStore())

	testCases := []struct {
		name    string
		req     service.UpdateLocationRequest
		wantErr error
	}{
		{
			name:    "wrong trucker",
			req:     service.UpdateLocationRequest{LoadID: "load-1", TruckerID: "trucker-2", Lat: 1, Lng: 1},
			wantErr: service.ErrUnauthorized,
		},
		{
			name:    "delivered load rejects pings",
			req:     service.UpdateLocationRequest{LoadID: "load-2", TruckerID: "trucker-1", Lat: 1, Lng: 1},
			wantErr: service.ErrInvalidTransition,
		},
		{
			name:    "latitude out of range",
			req:     service.UpdateLocationRequest{LoadID: "load-1", TruckerID: "trucker-1", Lat: 91, Lng: 0},
			wantErr: service.ErrInvalidLocation,
		},
		{
			name:    "longitude out of range",
			req:     service.UpdateLocationRequest{LoadID: "load-1", TruckerID: "trucker-1", Lat: 0, Lng: -181},
			wantErr: service.ErrInvalidLocation,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.UpdateLocation(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

// Terminal transitions drop the load from the tracking geo index.
func TestUpdateStatus_DeliveredRemovesTrackedPosition(t *testing.T) {
	t.Parallel()

	loadRepo := NewMockLoadRepository()
	userRepo := NewMockUserRepository()
	trackingStore := NewMockTrackingStore()

	load := assignedLoad("load-1", "shipper-1", "trucker-1")
	load.Status = domain.LoadStatusInTransit
	loadRepo.AddLoad(load)
	_ = trackingStore.UpdatePosition(context.Background(), "load-1", 41.88, -87.63)

	svc := newLoadServiceForTest(loadRepo, userRepo, trackingStore)

	if _, err := svc.UpdateStatus(context.Background(), service.UpdateStatusRequest{
		LoadID: "load-1", NewStatus: domain.LoadStatusDelivered,
		CallerID: "trucker-1", CallerRole: domain.RoleTrucker,
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, ok := trackingStore.GetPosition("load-1"); ok {
		t.Error("expected position removed after delivery")
	}
}
