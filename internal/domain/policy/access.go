// Package policy holds the authorization rules shared by every protected route.
package policy

import "shopfront/internal/domain/entity"

// Outcome is the tag of an access Decision.
type Outcome int

const (
	// OutcomeOK means the principal may run the operation.
	OutcomeOK Outcome = iota
	// OutcomeUnauthenticated means no principal is attached to the request.
	OutcomeUnauthenticated
	// OutcomeForbidden means the principal holds a different role.
	OutcomeForbidden
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnauthenticated:
		return "unauthenticated"
	case OutcomeForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Decision is the result of Authorize. Principal is set only for OutcomeOK.
type Decision struct {
	Outcome   Outcome
	Required  entity.Role
	Principal *entity.Principal
}

// Allowed reports whether the decision lets the operation run.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeOK
}

// Authorize checks authentication first and the role second, so an anonymous
// caller is always reported as unauthenticated regardless of the role asked for.
func Authorize(required entity.Role, principal *entity.Principal) Decision {
	if principal == nil || principal.Account == nil {
		return Decision{Outcome: OutcomeUnauthenticated, Required: required}
	}
	if principal.Role() != required {
		return Decision{Outcome: OutcomeForbidden, Required: required}
	}
	if required.OwnsShop() && principal.Shop == nil {
		// an admin without a shop profile breaks the account/profile invariant
		return Decision{Outcome: OutcomeForbidden, Required: required}
	}

	return Decision{Outcome: OutcomeOK, Required: required, Principal: principal}
}
