package domain

import "testing"

func TestUserIsEligible(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		user User
		want bool
	}{
		{
			name: "clean record qualifies",
			user: User{Accidents: 0, TheftComplaints: 0, TruckAge: 3, DriversLicenseYears: 10},
			want: true,
		},
		{
			name: "boundary truck age and experience qualify",
			user: User{Accidents: 0, TheftComplaints: 0, TruckAge: 5, DriversLicenseYears: 5},
			want: true,
		},
		{
			name: "single accident disqualifies",
			user: User{Accidents: 1, TheftComplaints: 0, TruckAge: 3, DriversLicenseYears: 10},
			want: false,
		},
		{
			name: "single theft complaint disqualifies",
			user: User{Accidents: 0, TheftComplaints: 1, TruckAge: 3, DriversLicenseYears: 10},
			want: false,
		},
		{
			name: "truck older than five years disqualifies",
			user: User{Accidents: 0, TheftComplaints: 0, TruckAge: 6, DriversLicenseYears: 10},
			want: false,
		},
		{
			name: "less than five years experience disqualifies",
			user: User{Accidents: 0, TheftComplaints: 0, TruckAge: 3, DriversLicenseYears: 4},
			want: false,
		},
		{
			name: "zero experience disqualifies",
			user: User{Accidents: 0, TheftComplaints: 0, TruckAge: 0, DriversLicenseYears: 0},
			want: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.user.IsEligible(); got != tc.want {
				t.Errorf("IsEligible() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRoleIsAdmin(t *testing.T) {
	t.Parallel()

	if RoleShipper.IsAdmin() || RoleTrucker.IsAdmin() {
		t.Error("shipper and trucker must not be admins")
	}
	if !RoleAdmin.IsAdmin() || !RoleSuperAdmin.IsAdmin() {
		t.Error("admin and superadmin must be admins")
	}
}
