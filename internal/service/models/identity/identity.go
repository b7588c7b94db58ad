package identity

// Actor is the authenticated caller as resolved from the identity provider's
// bearer token.
type Actor struct {
	ID          string
	DisplayName string
	Roles       []string
}

// HasRole reports whether the actor carries the given role claim.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// DisplayOrID returns the display name, falling back to a truncated
// identifier when the token carried no name claim.
func (a Actor) DisplayOrID() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	if len(a.ID) > 8 {
		return a.ID[:8]
	}

	return a.ID
}

// Role claims recognized by the authorization layer.
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)
