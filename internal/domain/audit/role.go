package audit

import "errors"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleHR     Role = "hr"
	RoleViewer Role = "viewer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleViewer:
		return true
	}
	return false
}

// CanMutate reports whether the role may persist payroll, move contracts or
// change leave balances.
func (r Role) CanMutate() bool {
	return r == RoleAdmin || r == RoleHR
}

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrInsufficientRole  = errors.New("insufficient role")
	ErrActorNotInContext = errors.New("actor not found in request context")
)
