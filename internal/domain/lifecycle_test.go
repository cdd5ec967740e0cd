package domain

import "testing"

func TestTransitionExists(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		from LoadStatus
		to   LoadStatus
		want bool
	}{
		{LoadStatusPending, LoadStatusCancelled, true},
		{LoadStatusAssigned, LoadStatusInTransit, true},
		{LoadStatusInTransit, LoadStatusDelivered, true},

		// Assignment only happens through bid acceptance.
		{LoadStatusPending, LoadStatusAssigned, false},

		// No skipping stages.
		{LoadStatusPending, LoadStatusInTransit, false},
		{LoadStatusAssigned, LoadStatusDelivered, false},
		{LoadStatusPending, LoadStatusDelivered, false},

		// Terminal states stay terminal.
		{LoadStatusDelivered, LoadStatusInTransit, false},
		{LoadStatusCancelled, LoadStatusPending, false},
		{LoadStatusDelivered, LoadStatusPending, false},

		// No cancelling once assigned.
		{LoadStatusAssigned, LoadStatusCancelled, false},
		{LoadStatusInTransit, LoadStatusCancelled, false},
	}

	for _, tc := range testCases {
		if got := TransitionExists(tc.from, tc.to); got != tc.want {
			t.Errorf("TransitionExists(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		from LoadStatus
		to   LoadStatus
		role Role
		want bool
	}{
		{"shipper cancels pending", LoadStatusPending, LoadStatusCancelled, RoleShipper, true},
		{"admin cancels pending", LoadStatusPending, LoadStatusCancelled, RoleAdmin, true},
		{"superadmin cancels pending", LoadStatusPending, LoadStatusCancelled, RoleSuperAdmin, true},
		{"trucker cannot cancel", LoadStatusPending, LoadStatusCancelled, RoleTrucker, false},

		{"trucker starts transit", LoadStatusAssigned, LoadStatusInTransit, RoleTrucker, true},
		{"shipper cannot start transit", LoadStatusAssigned, LoadStatusInTransit, RoleShipper, false},

		{"trucker delivers", LoadStatusInTransit, LoadStatusDelivered, RoleTrucker, true},
		{"shipper cannot deliver", LoadStatusInTransit, LoadStatusDelivered, RoleShipper, false},

		{"unknown transition denied for everyone", LoadStatusDelivered, LoadStatusPending, RoleSuperAdmin, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CanTransition(tc.from, tc.to, tc.role); got != tc.want {
				t.Errorf("CanTransition(%s, %s, %s) = %v, want %v", tc.from, tc.to, tc.role, got, tc.want)
			}
		})
	}
}

func TestLoadStatusIsTerminal(t *testing.T) {
	t.Parallel()

	for _, s := range []LoadStatus{LoadStatusPending, LoadStatusAssigned, LoadStatusInTransit} {
		if s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
	for _, s := range []LoadStatus{LoadStatusDelivered, LoadStatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}
