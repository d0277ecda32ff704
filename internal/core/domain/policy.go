package domain

// Actor is the authenticated identity attached to a request, as decoded
// from the access token. The zero value represents an anonymous caller.
type Actor struct {
	ID      string
	Role    string
	IsStaff bool
}

// CanMutate is the single ownership decision used by every mutating path
// (update, partial update, delete). Staff overrides ownership in both
// directions; everyone else must own the resource. An ownerless resource
// can only be mutated by staff.
func CanMutate(actor Actor, ownerID string) bool {
	if actor.IsStaff {
		return true
	}
	return ownerID != "" && actor.ID == ownerID
}

// CanCreateProducts reports whether the actor may list new products:
// staff, or any user holding the VENDOR role.
func CanCreateProducts(actor Actor) bool {
	return actor.IsStaff || actor.Role == RoleVendor
}
