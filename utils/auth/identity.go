package auth

import (
	"github.com/acadbridge/campus-api/model"
)

// Identity is the authenticated caller: user id plus the roles attached to
// the session token. It is passed explicitly into every operation instead of
// being read from ambient request state.
type Identity struct {
	UserID uint
	Email  string
	Roles  []model.RoleName
}

// HasRole reports whether the identity holds the given role.
func (i Identity) HasRole(role model.RoleName) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the identity holds at least one of the given
// roles. An empty argument list never matches.
func (i Identity) HasAnyRole(roles ...model.RoleName) bool {
	for _, role := range roles {
		if i.HasRole(role) {
			return true
		}
	}
	return false
}
