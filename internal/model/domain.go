package model

import (
	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleOperator   UserRole = "OPERATOR"
	UserRoleTechnician UserRole = "TECHNICIAN"
)

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

// CanViewHistory reports whether the caller may read inspection history
// and export reports.
func (p Principal) CanViewHistory() bool {
	return p.Role == UserRoleAdmin || p.Role == UserRoleOperator || p.Role == UserRoleTechnician
}
