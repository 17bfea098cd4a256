package entities

import "strings"

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleSeller        Role = "seller"
	RoleGuest         Role = "guest"
)

var legacyRoles = map[string]Role{
	"administrador": RoleAdministrator,
	"vendedor":      RoleSeller,
	"invitado":      RoleGuest,
}

// ParseRole maps stored role values to a Role. Unknown or empty values
// resolve to RoleGuest.
func ParseRole(s string) Role {
	v := strings.ToLower(strings.TrimSpace(s))
	switch Role(v) {
	case RoleAdministrator, RoleSeller, RoleGuest:
		return Role(v)
	}
	if r, ok := legacyRoles[v]; ok {
		return r
	}
	return RoleGuest
}

// Profile is the business identity behind an authenticated user.
type Profile struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	SellerID string `json:"seller_id,omitempty"`
}

// GuestProfile is used when an authenticated identity has no profile document.
func GuestProfile(id Identity) Profile {
	name := id.Email
	if name == "" {
		name = "Usuario"
	}
	return Profile{UID: id.UID, Email: id.Email, Name: name, Role: RoleGuest}
}
