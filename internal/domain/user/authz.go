package user

import (
	"github.com/google/uuid"
)

// CanActOn is the self-or-admin rule: a caller may act on their own
// record, and an admin may act on any record. Pure predicate, no I/O.
func CanActOn(callerRole string, callerID, targetID uuid.UUID) bool {
	if callerRole == RoleAdmin {
		return true
	}
	return callerID == targetID
}

// RoleAllowed reports whether role is in the allowed set. An empty set
// denies everything.
func RoleAllowed(role string, allowedRoles ...string) bool {
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}
