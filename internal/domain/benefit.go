package domain

import "time"

// BenefitType represents the kind of perk a benefit provides.
type BenefitType string

const (
	BenefitTypeInsurance BenefitType = "insurance"
	BenefitTypeDiscount  BenefitType = "discount"
	BenefitTypeService   BenefitType = "service"
)

// EligibilityCriteria are the per-benefit requirements. A zero-valued
// criterion imposes no constraint, which makes the benefit filter
// deliberately looser than the global eligibility policy: a trucker can
// fail IsEligible and still qualify for a benefit that doesn't test the
// failing dimension.
type EligibilityCriteria struct {
	MinDriverExperience int  `json:"minDriverExperience"`
	NoAccidents         bool `json:"noAccidents"`
	NoTheftComplaints   bool `json:"noTheftComplaints"`
	MaxTruckAge         int  `json:"maxTruckAge"`
}

// Benefit is a perk offered to truckers, with its own eligibility
// criteria independent of the global policy.
type Benefit struct {
	ID          string
	Name        string
	Type        BenefitType
	Description string
	Discount    float64
	Provider    string
	Criteria    EligibilityCriteria
	Category    string
	ValidFrom   time.Time
	ValidUntil  time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TruckerQualifies reports whether the trucker satisfies every criterion
// present on the benefit.
func (b *Benefit) TruckerQualifies(u *User) bool {
	c := b.Criteria
	return (!c.NoAccidents || u.Accidents == 0) &&
		(!c.NoTheftComplaints || u.TheftComplaints == 0) &&
		(c.MaxTruckAge == 0 || u.TruckAge <= c.MaxTruckAge) &&
		(c.MinDriverExperience == 0 || u.DriversLicenseYears >= c.MinDriverExperience)
}
