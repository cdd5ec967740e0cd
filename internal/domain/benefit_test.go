package domain

import "testing"

func TestBenefitTruckerQualifies(t *testing.T) {
	t.Parallel()

	// A trucker with one theft complaint: fails the global eligibility
	// policy but can still qualify for benefits that don't test theft.
	trucker := &User{
		Role:                RoleTrucker,
		Accidents:           0,
		TheftComplaints:     1,
		TruckAge:            4,
		DriversLicenseYears: 6,
	}

	testCases := []struct {
		name     string
		criteria EligibilityCriteria
		want     bool
	}{
		{
			name:     "no criteria binds nothing",
			criteria: EligibilityCriteria{},
			want:     true,
		},
		{
			name:     "experience only, met",
			criteria: EligibilityCriteria{MinDriverExperience: 5},
			want:     true,
		},
		{
			name:     "experience only, not met",
			criteria: EligibilityCriteria{MinDriverExperience: 10},
			want:     false,
		},
		{
			name:     "no accidents required, met",
			criteria: EligibilityCriteria{NoAccidents: true},
			want:     true,
		},
		{
			name:     "no theft required, not met",
			criteria: EligibilityCriteria{NoTheftComplaints: true},
			want:     false,
		},
		{
			name:     "max truck age, met",
			criteria: EligibilityCriteria{MaxTruckAge: 5},
			want:     true,
		},
		{
			name:     "max truck age, not met",
			criteria: EligibilityCriteria{MaxTruckAge: 3},
			want:     false,
		},
		{
			name: "all criteria except theft, met",
			criteria: EligibilityCriteria{
				MinDriverExperience: 5,
				NoAccidents:         true,
				MaxTruckAge:         5,
			},
			want: true,
		},
		{
			name: "one failing criterion fails the whole benefit",
			criteria: EligibilityCriteria{
				MinDriverExperience: 5,
				NoAccidents:         true,
				NoTheftComplaints:   true,
				MaxTruckAge:         5,
			},
			want: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			b := &Benefit{Criteria: tc.criteria}
			if got := b.TruckerQualifies(trucker); got != tc.want {
				t.Errorf("TruckerQualifies() = %v, want %v", got, tc.want)
			}
		})
	}
}
