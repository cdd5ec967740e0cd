package domain

// The load lifecycle is an explicit transition table rather than ad hoc
// status comparisons. A transition exists for a (from, to) pair, and each
// pair names the roles allowed to perform it via an explicit status
// update. pending -> assigned is deliberately absent: it only happens
// inside the bid acceptance workflow.

type loadTransition struct {
	From LoadStatus
	To   LoadStatus
}

var loadTransitions = map[loadTransition][]Role{
	{LoadStatusPending, LoadStatusCancelled}:   {RoleShipper, RoleAdmin, RoleSuperAdmin},
	{LoadStatusAssigned, LoadStatusInTransit}:  {RoleTrucker},
	{LoadStatusInTransit, LoadStatusDelivered}: {RoleTrucker},
}

// TransitionExists reports whether the (from, to) pair is a known
// lifecycle transition for any role.
func TransitionExists(from, to LoadStatus) bool {
	_, ok := loadTransitions[loadTransition{From: from, To: to}]
	return ok
}

// CanTransition reports whether the given role may move a load from one
// status to another via an explicit status update. Ownership checks
// (owning shipper, assigned trucker) are enforced by the caller.
func CanTransition(from, to LoadStatus, role Role) bool {
	roles, ok := loadTransitions[loadTransition{From: from, To: to}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
