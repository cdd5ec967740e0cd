package domain

import "time"

// Role identifies what a user is allowed to do in the marketplace.
type Role string

const (
	RoleShipper    Role = "shipper"
	RoleTrucker    Role = "trucker"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin reports whether the role carries admin privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// UserStatus represents the account status of a user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusPending   UserStatus = "pending"
)

// User represents a shipper, trucker, or admin account.
// The four safety/experience fields only carry meaning for truckers.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	// Trucker eligibility profile.
	Accidents           int
	TheftComplaints     int
	TruckAge            int
	DriversLicenseYears int

	Balance float64

	// BenefitsEligible mirrors IsEligible as of the last write to the
	// trucker profile fields. Every write that touches those fields
	// recomputes and persists it in the same call.
	BenefitsEligible bool

	IsVerified bool
	Status     UserStatus
	CreatedAt  time.Time
}

// IsEligible reports whether a trucker meets the global eligibility
// criteria: clean safety record, a truck no older than five years, and
// at least five years of driving experience.
func (u *User) IsEligible() bool {
	return u.Accidents == 0 &&
		u.TheftComplaints == 0 &&
		u.TruckAge <= 5 &&
		u.DriversLicenseYears >= 5
}
